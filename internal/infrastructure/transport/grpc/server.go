package transportgrpc

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/kvoloboi/valueholder/internal/application/store"
)

type GRPCServer struct {
	server *grpc.Server
	logger *slog.Logger
	store  store.HolderStore
	lis    net.Listener
}

func NewGRPCServer(
	addr string,
	s store.HolderStore,
	logger *slog.Logger,
	opts ...grpc.ServerOption,
) (*GRPCServer, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	return NewGRPCServerWithListener(lis, s, logger, opts...), nil
}

func NewGRPCServerWithListener(
	lis net.Listener,
	s store.HolderStore,
	logger *slog.Logger,
	opts ...grpc.ServerOption,
) *GRPCServer {
	if logger == nil {
		logger = slog.Default()
	}

	opts = append(opts, grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))
	grpcServer := grpc.NewServer(opts...)

	self := &GRPCServer{
		server: grpcServer,
		store:  s,
		lis:    lis,
		logger: logger,
	}

	RegisterHolderServiceServer(grpcServer, self)

	return self
}

func (s *GRPCServer) GetValue(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.DoubleValue, error) {
	v, err := s.store.Get(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return wrapperspb.Double(v), nil
}

func (s *GRPCServer) SetValue(ctx context.Context, in *wrapperspb.DoubleValue) (*emptypb.Empty, error) {
	if err := s.store.Set(ctx, in.GetValue()); err != nil {
		return nil, toStatus(err)
	}

	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Addr() net.Addr {
	return s.lis.Addr()
}

func (s *GRPCServer) Run() error {
	return s.server.Serve(s.lis)
}

func (s *GRPCServer) Shutdown(timeout time.Duration) {
	s.logger.Info("initiating graceful shutdown of gRPC server")

	done := make(chan struct{})

	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("gRPC server stopped gracefully")
	case <-time.After(timeout):
		s.logger.Warn("graceful shutdown timed out; forcing stop")
		s.server.Stop()
	}
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, store.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		begin := time.Now()
		resp, err := handler(ctx, req)

		if err != nil {
			logger.Warn("rpc failed",
				"method", info.FullMethod,
				"code", status.Code(err).String(),
				"duration", time.Since(begin),
				"err", err,
			)
			return resp, err
		}

		logger.Debug("rpc handled", "method", info.FullMethod, "duration", time.Since(begin))
		return resp, nil
	}
}
