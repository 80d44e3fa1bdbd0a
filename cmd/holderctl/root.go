package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kvoloboi/valueholder/internal/application/client"
	"github.com/kvoloboi/valueholder/internal/application/common"
	"github.com/kvoloboi/valueholder/internal/infrastructure/tlsconfig"
	transportgrpc "github.com/kvoloboi/valueholder/internal/infrastructure/transport/grpc"
	transporthttp "github.com/kvoloboi/valueholder/internal/infrastructure/transport/http"
)

func newRootCmd() *cobra.Command {
	cfg := &Config{}

	root := &cobra.Command{
		Use:           "holderctl",
		Short:         "Read and write the value served by holderd",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	bindFlags(root.PersistentFlags(), cfg)

	root.AddCommand(newGetCmd(cfg), newSetCmd(cfg))

	return root
}

func newGetCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHolder(cmd, cfg, func(ctx context.Context, h *client.RetryingHolder) error {
				v, err := h.Get(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
				return err
			})
		},
	}
}

func newSetCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "set [--] <value>",
		Short: "Replace the current value (accepts NaN, Inf, -Inf)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}

			return withHolder(cmd, cfg, func(ctx context.Context, h *client.RetryingHolder) error {
				return h.Set(ctx, v)
			})
		},
	}
}

func withHolder(
	cmd *cobra.Command,
	cfg *Config,
	fn func(ctx context.Context, h *client.RetryingHolder) error,
) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	remote, err := createRemoteFrom(*cfg, logger)
	if err != nil {
		logger.Error("failed to create client", "error", err)
		return err
	}

	retrier := client.NewRetrier(client.RetryConfig{
		MaxRetries: cfg.Retry.MaxRetries,
		Backoff:    common.NewBackoff(cfg.Retry.BaseDelay, cfg.Retry.MaxDelay),
	}, logger, nil)

	h := client.NewRetryingHolder(remote, retrier, logger)
	defer h.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Transport.Timeout)
	defer cancel()

	return fn(ctx, h)
}

func createRemoteFrom(cfg Config, logger *slog.Logger) (client.RemoteHolder, error) {
	tls, err := tlsconfig.ClientTLSConfig(cfg.Transport.TLS)
	if err != nil {
		logger.Error("failed to setup tls config", "err", err)
		return nil, err
	}

	switch cfg.Transport.Type {
	case "http":
		headers, err := parseHeaders(cfg.Transport.Headers)
		if err != nil {
			return nil, err
		}
		return transporthttp.NewHolderHttpClient(
			cfg.Transport.Address,
			logger,
			transporthttp.WithTimeout(cfg.Transport.Timeout),
			transporthttp.WithTLS(tls),
			transporthttp.WithHeaders(headers),
		)
	case "grpc":
		conn, err := transportgrpc.Dial(cfg.Transport.Address, tls)
		if err != nil {
			return nil, err
		}
		return transportgrpc.NewHolderGrpcClient(conn, logger), nil
	default:
		return nil, fmt.Errorf("unknown transport type: %s", cfg.Transport.Type)
	}
}
