package ratelimit

import (
	"context"

	"github.com/kvoloboi/valueholder/internal/application/store"
)

type Mode int

const (
	// ModeWait blocks writers until the policy admits them.
	ModeWait Mode = iota
	// ModeReject fails writers with store.ErrRateLimited.
	ModeReject
)

// RateLimitedStore limits writes to the wrapped store. Reads pass through.
type RateLimitedStore struct {
	next     store.HolderStore
	policy   *WritePolicy
	mode     Mode
	counters *store.Counters
}

func NewRateLimitedStore(
	next store.HolderStore,
	policy *WritePolicy,
	mode Mode,
	counters *store.Counters,
) *RateLimitedStore {
	if counters == nil {
		counters = store.NewCounters()
	}

	return &RateLimitedStore{
		next:     next,
		policy:   policy,
		mode:     mode,
		counters: counters,
	}
}

func (r *RateLimitedStore) Get(ctx context.Context) (float64, error) {
	return r.next.Get(ctx)
}

func (r *RateLimitedStore) Set(ctx context.Context, v float64) error {
	var err error
	if r.mode == ModeReject {
		err = r.policy.Allow()
	} else {
		err = r.policy.Wait(ctx)
	}

	if err != nil {
		r.counters.IncRejected()
		return err
	}

	return r.next.Set(ctx, v)
}
