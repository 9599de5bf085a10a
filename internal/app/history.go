package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"condocare/pkg/domain"
	"condocare/pkg/records"
)

// Bookings returns the booking history, most recent date first.
func (a *App) Bookings(ctx context.Context) ([]domain.Booking, error) {
	items, err := a.bookings.Load(ctx)
	return records.SortByDateDescending(items, func(b domain.Booking) string { return b.SelectedDate }, a.logger), err
}

// VisitorPasses returns the visitor pass history, most recent date first.
func (a *App) VisitorPasses(ctx context.Context) ([]domain.VisitorPass, error) {
	items, err := a.passes.Load(ctx)
	return records.SortByDateDescending(items, func(p domain.VisitorPass) string { return p.SelectedDate }, a.logger), err
}

// Complaints returns complaints in submission order. They carry no date.
func (a *App) Complaints(ctx context.Context) ([]domain.Complaint, error) {
	return a.complaints.Load(ctx)
}

// Renovations returns renovation requests, most recent start date first.
func (a *App) Renovations(ctx context.Context) ([]domain.RenovationRequest, error) {
	items, err := a.renovations.Load(ctx)
	return records.SortByDateDescending(items, func(r domain.RenovationRequest) string { return r.SelectedDate }, a.logger), err
}

func (a *App) Booking(ctx context.Context, id string) (domain.Booking, error) {
	return a.bookings.Find(ctx, id)
}

func (a *App) VisitorPass(ctx context.Context, id string) (domain.VisitorPass, error) {
	return a.passes.Find(ctx, id)
}

func (a *App) Complaint(ctx context.Context, id string) (domain.Complaint, error) {
	return a.complaints.Find(ctx, id)
}

func (a *App) Renovation(ctx context.Context, id string) (domain.RenovationRequest, error) {
	return a.renovations.Find(ctx, id)
}

// History is every collection at once. A section that failed to load is
// empty and its key is listed in Unavailable.
type History struct {
	Bookings      []domain.Booking           `json:"bookings"`
	VisitorPasses []domain.VisitorPass       `json:"visitorPasses"`
	Complaints    []domain.Complaint         `json:"complaints"`
	Renovations   []domain.RenovationRequest `json:"renovations"`
	Unavailable   []string                   `json:"unavailable,omitempty"`
}

// History loads the four collections concurrently. Read failures are logged
// and never fail the call; only a cancelled context does.
func (a *App) History(ctx context.Context) (History, error) {
	var (
		h      History
		failed [4]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	load := func(i int, key string, fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(gctx); err != nil {
				a.logger.Warn("history section unavailable", "collection", key, "err", err)
				failed[i] = true
			}
			return gctx.Err()
		})
	}
	load(0, domain.KeyBookingHistory, func(ctx context.Context) (err error) {
		h.Bookings, err = a.Bookings(ctx)
		return err
	})
	load(1, domain.KeyVisitorPassHistory, func(ctx context.Context) (err error) {
		h.VisitorPasses, err = a.VisitorPasses(ctx)
		return err
	})
	load(2, domain.KeyComplaintHistory, func(ctx context.Context) (err error) {
		h.Complaints, err = a.Complaints(ctx)
		return err
	})
	load(3, domain.KeyRenovationHistory, func(ctx context.Context) (err error) {
		h.Renovations, err = a.Renovations(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return History{}, err
	}
	for i, key := range domain.CollectionKeys {
		if failed[i] {
			h.Unavailable = append(h.Unavailable, key)
		}
	}
	return h, nil
}

// Home is the dashboard summary: the most recent booking and renovation
// request, nil when there is none.
type Home struct {
	NewestBooking    *domain.Booking           `json:"newestBooking"`
	NewestRenovation *domain.RenovationRequest `json:"newestRenovation"`
	Unavailable      []string                  `json:"unavailable,omitempty"`
}

// Home builds the dashboard summary. Like History, a collection that fails
// to load is reported in Unavailable rather than failing the call.
func (a *App) Home(ctx context.Context) (Home, error) {
	var home Home
	bookings, err := a.Bookings(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Home{}, ctx.Err()
		}
		a.logger.Warn("home section unavailable", "collection", domain.KeyBookingHistory, "err", err)
		home.Unavailable = append(home.Unavailable, domain.KeyBookingHistory)
	} else if len(bookings) > 0 {
		home.NewestBooking = &bookings[0]
	}
	renovations, err := a.Renovations(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Home{}, ctx.Err()
		}
		a.logger.Warn("home section unavailable", "collection", domain.KeyRenovationHistory, "err", err)
		home.Unavailable = append(home.Unavailable, domain.KeyRenovationHistory)
	} else if len(renovations) > 0 {
		home.NewestRenovation = &renovations[0]
	}
	return home, nil
}

func (a *App) ClearBookings(ctx context.Context) error      { return a.bookings.Clear(ctx) }
func (a *App) ClearVisitorPasses(ctx context.Context) error { return a.passes.Clear(ctx) }
func (a *App) ClearComplaints(ctx context.Context) error    { return a.complaints.Clear(ctx) }
func (a *App) ClearRenovations(ctx context.Context) error   { return a.renovations.Clear(ctx) }

// UpdateBookingStatus sets a booking to Pending or Complete.
func (a *App) UpdateBookingStatus(ctx context.Context, id, status string) (domain.Booking, error) {
	return a.bookings.UpdateStatus(ctx, id, status)
}

// UpdateRenovationStatus sets a renovation request to pending or complete.
func (a *App) UpdateRenovationStatus(ctx context.Context, id, status string) (domain.RenovationRequest, error) {
	return a.renovations.UpdateStatus(ctx, id, status)
}
