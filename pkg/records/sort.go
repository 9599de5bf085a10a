package records

import (
	"log/slog"
	"slices"
	"time"
)

// DateLayout is the calendar date format emitted by the date picker.
const DateLayout = "2006-01-02"

// SortByDateDescending returns a new slice ordered by dateOf, most recent
// first. Equal dates keep their relative order. Records whose date does not
// parse stay at their original index and are logged; the records with valid
// dates are sorted into the remaining slots. Nothing is dropped.
func SortByDateDescending[T any](items []T, dateOf func(T) string, logger *slog.Logger) []T {
	if logger == nil {
		logger = slog.Default()
	}
	out := slices.Clone(items)
	if len(out) < 2 {
		return out
	}

	type dated struct {
		item T
		t    time.Time
	}
	valid := make([]dated, 0, len(out))
	slots := make([]int, 0, len(out))
	for i, item := range out {
		d := dateOf(item)
		t, err := time.Parse(DateLayout, d)
		if err != nil {
			logger.Warn("invalid date format detected", "index", i, "date", d)
			continue
		}
		valid = append(valid, dated{item: item, t: t})
		slots = append(slots, i)
	}

	slices.SortStableFunc(valid, func(a, b dated) int {
		return b.t.Compare(a.t)
	})
	for k, i := range slots {
		out[i] = valid[k].item
	}
	return out
}
