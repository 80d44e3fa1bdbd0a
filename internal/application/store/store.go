package store

import (
	"context"
	"sync"

	"github.com/kvoloboi/valueholder/internal/domain"
)

// HolderStore is the shared view of a holder that transports serve.
type HolderStore interface {
	Get(ctx context.Context) (float64, error)
	Set(ctx context.Context, v float64) error
}

// SyncHolder guards a single domain.Holder for concurrent use.
type SyncHolder struct {
	mu       sync.RWMutex
	holder   domain.Holder
	counters *Counters
}

func NewSyncHolder(initial domain.Holder, counters *Counters) *SyncHolder {
	if counters == nil {
		counters = NewCounters()
	}

	return &SyncHolder{
		holder:   initial,
		counters: counters,
	}
}

// Get returns the current value. The only error is a context that is
// already done.
func (s *SyncHolder) Get(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	v := s.holder.Value()
	s.mu.RUnlock()

	s.counters.IncReads()
	return v, nil
}

func (s *SyncHolder) Set(ctx context.Context, v float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.holder.SetValue(v)
	s.mu.Unlock()

	s.counters.IncWrites()
	return nil
}

// Snapshot returns a copy of the held value.
func (s *SyncHolder) Snapshot() domain.Holder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holder
}

func (s *SyncHolder) Counters() *Counters {
	return s.counters
}
