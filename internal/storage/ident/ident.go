package ident

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

// OrderID derives an identifier from a high-resolution timestamp plus a
// random suffix so concurrent creations never contend on a shared counter.
func OrderID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("ord_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}

// Sequence issues monotonic-looking order numbers. The base is taken from
// the current time, so numbers restart from a new range on process restart
// and are not unique across restarts.
type Sequence struct {
	last atomic.Int64
}

// NewSequence seeds the sequence from the current wall clock.
func NewSequence() *Sequence {
	s := &Sequence{}
	s.last.Store(time.Now().UnixMilli() * 100)
	return s
}

// Next returns the next order number.
func (s *Sequence) Next() string {
	return fmt.Sprintf("ORD-%d", s.last.Add(1))
}
