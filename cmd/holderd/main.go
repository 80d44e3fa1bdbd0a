package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kvoloboi/valueholder/cmd/holderd/config"
	"github.com/kvoloboi/valueholder/internal/application/store"
	"github.com/kvoloboi/valueholder/internal/application/store/ratelimit"
	"github.com/kvoloboi/valueholder/internal/domain"
	"github.com/kvoloboi/valueholder/internal/infrastructure/tlsconfig"
	transportgrpc "github.com/kvoloboi/valueholder/internal/infrastructure/transport/grpc"
	transporthttp "github.com/kvoloboi/valueholder/internal/infrastructure/transport/http"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		slog.Error("invalid cli parameters", "error", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.Level}))

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid cli parameters", "error", err)
		os.Exit(2)
	}
	logger.Info("starting holderd", "config", cfg)

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := run(ctx, cfg, logger, nil); err != nil {
		logger.Error("holderd failed", "err", err)
		os.Exit(1)
	}
}

// run serves the holder until ctx is done or a server fails. ready, when
// non-nil, receives the servers once they are listening.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger, ready chan<- servers) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	counters := store.NewCounters()
	holder := store.NewSyncHolder(domain.NewHolder(cfg.Holder.InitialValue), counters)

	var s store.HolderStore = holder

	if cfg.RateLimit.WritesPerSecond > 0 {
		mode := ratelimit.ModeWait
		if cfg.RateLimit.Reject {
			mode = ratelimit.ModeReject
		}
		s = ratelimit.NewRateLimitedStore(
			holder,
			ratelimit.NewWritePolicy(
				ratelimit.NewMsgRateRule(cfg.RateLimit.WritesPerSecond, cfg.RateLimit.Burst),
			),
			mode,
			counters,
		)
	}

	tls, err := tlsconfig.ServerTLSConfig(cfg.Transport.TLS)
	if err != nil {
		logger.Error("failed setup tls", "err", err)
		return err
	}

	var srv servers
	var wg sync.WaitGroup
	errs := make(chan error, 2)

	if cfg.Transport.GRPCAddress != "" {
		srv.grpc, err = transportgrpc.NewGRPCServer(
			cfg.Transport.GRPCAddress,
			s,
			logger,
			transportgrpc.ServerCredentials(tls)...,
		)
		if err != nil {
			logger.Error("failed to start grpc server", "err", err)
			return err
		}
		logger.Info("gRPC server listening", "addr", srv.grpc.Addr())

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.grpc.Run(); err != nil {
				logger.Error("gRPC server failed", "err", err)
				errs <- err
				cancel()
			}
		}()
	}

	if cfg.Transport.HTTPAddress != "" {
		srv.http, err = transporthttp.NewHTTPServer(cfg.Transport.HTTPAddress, s, logger, tls)
		if err != nil {
			logger.Error("failed to start http server", "err", err)
			srv.shutdown(cfg)
			wg.Wait()
			return err
		}
		logger.Info("HTTP server listening", "addr", srv.http.Addr())

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.http.Run(); err != nil {
				logger.Error("HTTP server failed", "err", err)
				errs <- err
				cancel()
			}
		}()
	}

	if ready != nil {
		ready <- srv
	}

	// ---- Wait for shutdown signal ----
	<-ctx.Done()
	logger.Info("shutdown signal received")

	srv.shutdown(cfg)
	wg.Wait()

	logger.Info("holderd shutdown complete",
		"value", holder.Snapshot().Value(),
		"total_reads", counters.GetReads(),
		"total_writes", counters.GetWrites(),
		"total_rejected", counters.GetRejected(),
	)

	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

type servers struct {
	grpc *transportgrpc.GRPCServer
	http *transporthttp.HTTPServer
}

func (s servers) shutdown(cfg config.Config) {
	if s.grpc != nil {
		s.grpc.Shutdown(cfg.Holder.ShutdownTimeout)
	}
	if s.http != nil {
		s.http.Shutdown(cfg.Holder.ShutdownTimeout)
	}
}
