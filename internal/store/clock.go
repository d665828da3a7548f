package store

import "sync/atomic"

// Clock hands out the seq stamped on each stored conversion. Listings order
// by seq, never by wall time. It is safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClock returns a clock whose first seq is 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt resumes a clock after start, typically MAX(seq) of an existing
// table.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next advances the clock and returns the new seq.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last seq handed out, or the start position.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
