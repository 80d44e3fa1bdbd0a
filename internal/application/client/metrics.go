package client

import "sync/atomic"

// Counters holds the client call metrics
type Counters struct {
	succeeded atomic.Int64
	failed    atomic.Int64
	retried   atomic.Int64
}

func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) IncSucceeded() { c.succeeded.Add(1) }
func (c *Counters) IncFailed()    { c.failed.Add(1) }
func (c *Counters) IncRetried()   { c.retried.Add(1) }

func (c *Counters) GetSucceeded() int64 { return c.succeeded.Load() }
func (c *Counters) GetFailed() int64    { return c.failed.Load() }
func (c *Counters) GetRetried() int64   { return c.retried.Load() }
