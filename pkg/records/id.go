package records

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator hands out millisecond timestamps rendered as decimal strings.
// Ids are strictly increasing within one generator: when the clock has not
// advanced past the last id, the last id plus one is used.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDGenerator builds a generator on the given clock (time.Now when nil).
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns the next id.
func (g *IDGenerator) Next() string {
	return g.NextAbove(0)
}

// NextAbove returns the next id, also kept greater than floor. Callers pass
// the largest id already stored so ids that ran ahead of the clock before a
// restart are not handed out again.
func (g *IDGenerator) NextAbove(floor int64) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	if ms <= floor {
		ms = floor + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
