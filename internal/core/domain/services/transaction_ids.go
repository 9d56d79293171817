package services

import (
	"strconv"
	"sync/atomic"
	"time"
)

const (
	TransactionPrefix = "TXN"
	SimulationPrefix  = "SIM"
)

// TransactionIDGenerator issues payment references derived from the clock in
// milliseconds. Values are strictly increasing within the process, so two
// payments never share a reference even inside the same millisecond.
type TransactionIDGenerator struct {
	prefix string
	clock  func() time.Time
	last   atomic.Int64
}

// NewTransactionIDGenerator returns a generator producing "<prefix><millis>" references.
func NewTransactionIDGenerator(prefix string, clock func() time.Time) *TransactionIDGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &TransactionIDGenerator{prefix: prefix, clock: clock}
}

// Next returns a fresh reference. Safe for concurrent use.
func (g *TransactionIDGenerator) Next() string {
	for {
		prev := g.last.Load()
		next := max(g.clock().UnixMilli(), prev+1)
		if g.last.CompareAndSwap(prev, next) {
			return g.prefix + strconv.FormatInt(next, 10)
		}
	}
}
