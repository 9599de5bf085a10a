package app

import (
	"context"

	"condocare/pkg/domain"
)

// Clearable is one independent piece of state wiped by a reset.
type Clearable interface {
	Clear(ctx context.Context) error
}

// ClearFunc adapts a function to Clearable.
type ClearFunc func(ctx context.Context) error

func (f ClearFunc) Clear(ctx context.Context) error { return f(ctx) }

// ResetStep names a Clearable in the reset sequence.
type ResetStep struct {
	Name   string
	Target Clearable
}

// StepResult is the outcome of one reset step.
type StepResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ResetReport lists every step in execution order. OK is true only when all
// steps succeeded.
type ResetReport struct {
	Steps []StepResult `json:"steps"`
	OK    bool         `json:"ok"`
}

// ResetSteps returns the reset sequence: the four collections, the payment
// snapshot, the whole key-value store, profile photos and sessions.
func (a *App) ResetSteps() []ResetStep {
	return []ResetStep{
		{Name: domain.KeyBookingHistory, Target: a.bookings},
		{Name: domain.KeyVisitorPassHistory, Target: a.passes},
		{Name: domain.KeyComplaintHistory, Target: a.complaints},
		{Name: domain.KeyRenovationHistory, Target: a.renovations},
		{Name: domain.KeyPaymentData, Target: ClearFunc(func(ctx context.Context) error {
			return a.store.Remove(ctx, domain.KeyPaymentData)
		})},
		{Name: "store", Target: ClearFunc(a.store.ClearAll)},
		{Name: "photos", Target: a.photos},
		{Name: "sessions", Target: a.sessions},
	}
}

// Reset wipes all resident data.
func (a *App) Reset(ctx context.Context) ResetReport {
	return a.RunReset(ctx, a.ResetSteps())
}

// RunReset runs steps in order. A failing step is recorded and the
// remaining steps still run; there is no rollback.
func (a *App) RunReset(ctx context.Context, steps []ResetStep) ResetReport {
	report := ResetReport{Steps: make([]StepResult, 0, len(steps)), OK: true}
	for _, step := range steps {
		res := StepResult{Name: step.Name, OK: true}
		if err := step.Target.Clear(ctx); err != nil {
			res.OK = false
			res.Error = err.Error()
			report.OK = false
			a.logger.Error("reset step failed", "step", step.Name, "err", err)
		} else {
			a.logger.Info("reset step done", "step", step.Name)
		}
		report.Steps = append(report.Steps, res)
	}
	return report
}
