package transportgrpc

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/kvoloboi/valueholder/internal/application/client"
	"github.com/kvoloboi/valueholder/internal/application/store"
)

// HolderGrpcClient implements client.RemoteHolder. It owns conn.
type HolderGrpcClient struct {
	conn   *grpc.ClientConn
	logger *slog.Logger
}

func NewHolderGrpcClient(conn *grpc.ClientConn, logger *slog.Logger) *HolderGrpcClient {
	if logger == nil {
		logger = slog.Default()
	}

	return &HolderGrpcClient{
		conn:   conn,
		logger: logger,
	}
}

var _ client.RemoteHolder = (*HolderGrpcClient)(nil)

func (c *HolderGrpcClient) Get(ctx context.Context) (float64, error) {
	out := new(wrapperspb.DoubleValue)
	if err := c.conn.Invoke(ctx, getValueMethod, &emptypb.Empty{}, out); err != nil {
		c.logger.Debug("GetValue failed", "err", err)
		return 0, fromStatus(err)
	}

	return out.GetValue(), nil
}

func (c *HolderGrpcClient) Set(ctx context.Context, v float64) error {
	if err := c.conn.Invoke(ctx, setValueMethod, wrapperspb.Double(v), new(emptypb.Empty)); err != nil {
		c.logger.Debug("SetValue failed", "value", v, "err", err)
		return fromStatus(err)
	}

	return nil
}

func (c *HolderGrpcClient) Close() error {
	return c.conn.Close()
}

// fromStatus maps gRPC codes onto the errors the retrier understands.
func fromStatus(err error) error {
	switch status.Code(err) {
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %w", store.ErrRateLimited, err)
	case codes.Canceled:
		return fmt.Errorf("%w: %w", context.Canceled, err)
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	case codes.InvalidArgument,
		codes.Unimplemented,
		codes.PermissionDenied,
		codes.Unauthenticated:
		return fmt.Errorf("%w: %w", client.ErrNonRetriable, err)
	default:
		return err
	}
}
