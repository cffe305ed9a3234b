package idgen

import (
	"strconv"
	"sync"
	"time"
)

const OrderIDPrefix = "ord_"

// OrderIDGenerator produces ord_<epoch_millis> identifiers. The millisecond
// component never repeats within a process: a second call in the same
// millisecond (or after a clock step back) takes last+1.
type OrderIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewOrderIDGenerator() *OrderIDGenerator {
	return &OrderIDGenerator{now: time.Now}
}

// Next returns a fresh order id and the wall-clock time it was taken at.
func (g *OrderIDGenerator) Next() (string, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return OrderIDPrefix + strconv.FormatInt(ms, 10), now
}
