package transportgrpc

import (
	"context"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/kvoloboi/valueholder/internal/application/client"
	"github.com/kvoloboi/valueholder/internal/application/store"
	"github.com/kvoloboi/valueholder/internal/application/store/ratelimit"
	"github.com/kvoloboi/valueholder/internal/domain"
)

func startServer(t *testing.T, s store.HolderStore) *HolderGrpcClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServerWithListener(lis, s, nil)

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	conn, err := Dial(
		"passthrough:///bufnet",
		nil,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)

	c := NewHolderGrpcClient(conn, nil)

	t.Cleanup(func() {
		_ = c.Close()
		srv.Shutdown(time.Second)
		require.NoError(t, <-done)
	})

	return c
}

func TestGRPCGetSetRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	holder := store.NewSyncHolder(domain.NewHolder(3.5), nil)
	c := startServer(t, holder)

	v, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	require.NoError(t, c.Set(ctx, -2.25))

	v, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, -2.25, v)
	assert.Equal(t, -2.25, holder.Snapshot().Value())
}

func TestGRPCCarriesNonFiniteValues(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := startServer(t, store.NewSyncHolder(domain.NewDefaultHolder(), nil))

	require.NoError(t, c.Set(ctx, math.NaN()))
	v, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	require.NoError(t, c.Set(ctx, math.Inf(1)))
	v, err = c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestGRPCRateLimitedWrite(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	base := store.NewSyncHolder(domain.NewDefaultHolder(), nil)
	limited := ratelimit.NewRateLimitedStore(
		base,
		ratelimit.NewWritePolicy(ratelimit.NewMsgRateRule(1, 1)),
		ratelimit.ModeReject,
		nil,
	)
	c := startServer(t, limited)

	require.NoError(t, c.Set(ctx, 1))

	err := c.Set(ctx, 2)
	require.ErrorIs(t, err, store.ErrRateLimited)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	assert.Equal(t, 1.0, base.Snapshot().Value())
}

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, codes.ResourceExhausted, status.Code(toStatus(store.ErrRateLimited)))
	assert.Equal(t, codes.Canceled, status.Code(toStatus(context.Canceled)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(toStatus(context.DeadlineExceeded)))

	assert.ErrorIs(t, fromStatus(status.Error(codes.InvalidArgument, "bad")), client.ErrNonRetriable)
	assert.ErrorIs(t, fromStatus(status.Error(codes.DeadlineExceeded, "slow")), context.DeadlineExceeded)
	assert.NotErrorIs(t, fromStatus(status.Error(codes.Unavailable, "down")), client.ErrNonRetriable)
}

func TestGRPCWaitingWriteOutlivingDeadline(t *testing.T) {
	base := store.NewSyncHolder(domain.NewDefaultHolder(), nil)
	limited := ratelimit.NewRateLimitedStore(
		base,
		ratelimit.NewWritePolicy(ratelimit.NewMsgRateRule(1, 1)),
		ratelimit.ModeWait,
		nil,
	)
	c := startServer(t, limited)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Set(ctx, 1))

	short, cancelShort := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancelShort()

	err := c.Set(short, 2)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
	assert.NotErrorIs(t, err, client.ErrNonRetriable)
	assert.Equal(t, 1.0, base.Snapshot().Value())
}
