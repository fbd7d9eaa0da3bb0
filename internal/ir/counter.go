package ir

import (
	"fmt"
	"sync/atomic"
)

// Counter mints fresh identifier tokens: temporary variable names and
// (indirectly, through the caller) type-constructor identities. It is the
// only mutable state the three passes may touch beyond the tree they walk.
// Each compilation unit owns its own Counter; the zero value is ready to
// use.
type Counter struct {
	seq uint64
}

// NewCounter returns a Counter starting at zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Next returns the next value in the sequence, starting at 1 so that 0 stays
// available as a "no fresh id yet" sentinel for callers that want one.
func (c *Counter) Next() uint64 {
	return atomic.AddUint64(&c.seq, 1)
}

// FreshName builds a temporary identifier from hint and a fresh sequence
// number, e.g. FreshName("temp") -> "temp$3".
func (c *Counter) FreshName(hint string) string {
	return fmt.Sprintf("%s$%d", hint, c.Next())
}
