package records

import (
	"strconv"
	"testing"
	"time"
)

func TestIDGeneratorUsesMilliseconds(t *testing.T) {
	g := NewIDGenerator(fixedClock(1714550400123))
	if got := g.Next(); got != "1714550400123" {
		t.Fatalf("id = %q", got)
	}
}

func TestIDGeneratorStrictlyIncreasing(t *testing.T) {
	g := NewIDGenerator(fixedClock(1000))
	prev := int64(0)
	for i := 0; i < 50; i++ {
		n, err := strconv.ParseInt(g.Next(), 10, 64)
		if err != nil {
			t.Fatalf("id is not numeric: %v", err)
		}
		if n <= prev {
			t.Fatalf("id %d not greater than %d", n, prev)
		}
		prev = n
	}
}

func TestIDGeneratorClockGoesBackwards(t *testing.T) {
	ticks := []int64{5000, 4000, 6000}
	i := 0
	g := NewIDGenerator(func() time.Time {
		ms := ticks[i]
		i++
		return time.UnixMilli(ms)
	})
	got := []string{g.Next(), g.Next(), g.Next()}
	want := []string{"5000", "5001", "6000"}
	for k := range want {
		if got[k] != want[k] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func TestIDGeneratorNextAbove(t *testing.T) {
	g := NewIDGenerator(fixedClock(1000))
	if got := g.NextAbove(2000); got != "2001" {
		t.Fatalf("id = %q, want 2001", got)
	}
	if got := g.NextAbove(0); got != "2002" {
		t.Fatalf("id = %q, want 2002", got)
	}
}
