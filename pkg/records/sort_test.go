package records

import (
	"reflect"
	"sort"
	"testing"

	"condocare/pkg/domain"
)

func bookingDate(b domain.Booking) string { return b.SelectedDate }

func bookingsOn(dates ...string) []domain.Booking {
	out := make([]domain.Booking, len(dates))
	for i, d := range dates {
		out[i] = domain.Booking{ID: string(rune('a' + i)), SelectedDate: d}
	}
	return out
}

func ids(items []domain.Booking) []string {
	out := make([]string, len(items))
	for i, b := range items {
		out[i] = b.ID
	}
	return out
}

func TestSortByDateDescending(t *testing.T) {
	in := bookingsOn("2024-05-01", "2024-06-01")
	got := SortByDateDescending(in, bookingDate, discard)
	if got[0].SelectedDate != "2024-06-01" {
		t.Fatalf("expected 2024-06-01 first, got %v", got)
	}
	if in[0].SelectedDate != "2024-05-01" {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestSortByDateDescendingStable(t *testing.T) {
	in := bookingsOn("2024-05-01", "2024-07-01", "2024-05-01", "2024-07-01")
	got := SortByDateDescending(in, bookingDate, discard)
	if want := []string{"b", "d", "a", "c"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("order = %v, want %v", ids(got), want)
	}
}

func TestSortByDateDescendingIdempotent(t *testing.T) {
	in := bookingsOn("2023-12-31", "2024-02-29", "2024-01-15", "2024-02-29", "2022-06-01")
	once := SortByDateDescending(in, bookingDate, discard)
	twice := SortByDateDescending(once, bookingDate, discard)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("sorting twice changed order: %v vs %v", ids(once), ids(twice))
	}
}

func TestSortByDateDescendingPreservesMultiset(t *testing.T) {
	cases := [][]domain.Booking{
		nil,
		{},
		bookingsOn("2024-05-01"),
		bookingsOn("not-a-date", "2024-05-01", "", "2024-06-01", "05/01/2024"),
		bookingsOn("x", "y", "z"),
	}
	for _, in := range cases {
		got := SortByDateDescending(in, bookingDate, discard)
		if len(got) != len(in) {
			t.Fatalf("length changed: %d -> %d", len(in), len(got))
		}
		a, b := ids(in), ids(got)
		sort.Strings(a)
		sort.Strings(b)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("records lost or duplicated: %v vs %v", a, b)
		}
	}
}

func TestSortByDateDescendingAllInvalidKeepsOrder(t *testing.T) {
	in := bookingsOn("x", "y", "z")
	got := SortByDateDescending(in, bookingDate, nil)
	if !reflect.DeepEqual(ids(got), []string{"a", "b", "c"}) {
		t.Fatalf("unparseable dates must keep relative order, got %v", ids(got))
	}
}

func TestSortByDateDescendingInvalidDatesKeepTheirSlots(t *testing.T) {
	in := bookingsOn("2024-01-01", "bad", "2024-06-01")
	got := SortByDateDescending(in, bookingDate, discard)
	if want := []string{"c", "b", "a"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("order = %v, want %v", ids(got), want)
	}
}

func TestSortByDateDescendingMixedInvalidIdempotent(t *testing.T) {
	dates := []string{"2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01", "bad"}
	for seed := 0; seed < 200; seed++ {
		n := 13 + seed%28
		in := make([]string, n)
		x := uint32(seed*2654435761 + 1)
		for i := range in {
			x ^= x << 13
			x ^= x >> 17
			x ^= x << 5
			in[i] = dates[x%uint32(len(dates))]
		}
		bookings := bookingsOn(in...)
		once := SortByDateDescending(bookings, bookingDate, discard)
		twice := SortByDateDescending(once, bookingDate, discard)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Fatalf("seed %d: sorting twice changed order:\n%v\n%v", seed, ids(once), ids(twice))
		}
		for i, b := range once {
			if (b.SelectedDate == "bad") != (in[i] == "bad") {
				t.Fatalf("seed %d: unparseable date moved from its slot at %d", seed, i)
			}
		}
	}
}
