package store

import "sync/atomic"

// Counters holds the store metrics
type Counters struct {
	reads    atomic.Int64
	writes   atomic.Int64
	rejected atomic.Int64
}

func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) IncReads()    { c.reads.Add(1) }
func (c *Counters) IncWrites()   { c.writes.Add(1) }
func (c *Counters) IncRejected() { c.rejected.Add(1) }

func (c *Counters) GetReads() int64    { return c.reads.Load() }
func (c *Counters) GetWrites() int64   { return c.writes.Load() }
func (c *Counters) GetRejected() int64 { return c.rejected.Load() }
