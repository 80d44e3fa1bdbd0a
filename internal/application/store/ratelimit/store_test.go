package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvoloboi/valueholder/internal/application/store"
	"github.com/kvoloboi/valueholder/internal/domain"
)

func TestRejectModeRefusesBeyondBurst(t *testing.T) {
	ctx := context.Background()
	counters := store.NewCounters()
	base := store.NewSyncHolder(domain.NewDefaultHolder(), counters)

	limited := NewRateLimitedStore(
		base,
		NewWritePolicy(NewMsgRateRule(1, 2)),
		ModeReject,
		counters,
	)

	require.NoError(t, limited.Set(ctx, 1))
	require.NoError(t, limited.Set(ctx, 2))
	require.ErrorIs(t, limited.Set(ctx, 3), store.ErrRateLimited)

	v, err := limited.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	assert.Equal(t, int64(2), counters.GetWrites())
	assert.Equal(t, int64(1), counters.GetRejected())
}

func TestReadsAreNotLimited(t *testing.T) {
	ctx := context.Background()
	base := store.NewSyncHolder(domain.NewHolder(9), nil)
	limited := NewRateLimitedStore(base, NewWritePolicy(NewMsgRateRule(1, 1)), ModeReject, nil)

	for range 10 {
		v, err := limited.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 9.0, v)
	}
}

func TestWaitModeHonoursContext(t *testing.T) {
	base := store.NewSyncHolder(domain.NewDefaultHolder(), nil)
	limited := NewRateLimitedStore(
		base,
		NewWritePolicy(NewMsgRateRule(1, 1)),
		ModeWait,
		nil,
	)

	require.NoError(t, limited.Set(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limited.Set(ctx, 2)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1.0, base.Snapshot().Value())
}

func TestWaitModeReportsCanceledContext(t *testing.T) {
	limited := NewRateLimitedStore(
		store.NewSyncHolder(domain.NewDefaultHolder(), nil),
		NewWritePolicy(NewMsgRateRule(1, 1)),
		ModeWait,
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, limited.Set(ctx, 1), context.Canceled)
}

func TestRefusedAllowReturnsEarlierTokens(t *testing.T) {
	roomy := NewMsgRateRule(1, 2)
	strict := NewMsgRateRule(1, 1)
	policy := NewWritePolicy(roomy, strict)

	require.NoError(t, policy.Allow())
	require.ErrorIs(t, policy.Allow(), store.ErrRateLimited)

	// roomy gave up one token for the first write; the refused one must not cost it another
	require.NoError(t, NewWritePolicy(roomy).Allow())
	require.ErrorIs(t, NewWritePolicy(roomy).Allow(), store.ErrRateLimited)
}

func TestEmptyPolicyAdmitsEverything(t *testing.T) {
	p := NewWritePolicy()
	require.NoError(t, p.Allow())
	require.NoError(t, p.Wait(context.Background()))
}
