package config

import (
	"flag"
	"fmt"
	"log/slog"
	"time"
)

// Parse reads flags from args (without the program name). When
// -config.file is given, keys present in that YAML file override flag values.
func Parse(args []string) (Config, error) {
	var cfg Config
	var configFile string

	fs := flag.NewFlagSet("holderd", flag.ContinueOnError)

	fs.StringVar(
		&configFile,
		"config.file",
		"",
		"optional YAML configuration file",
	)

	// Holder
	fs.Float64Var(
		&cfg.Holder.InitialValue,
		"holder.initial-value",
		0,
		"value the holder starts with",
	)

	fs.DurationVar(
		&cfg.Holder.ShutdownTimeout,
		"holder.shutdown-timeout",
		5*time.Second,
		"server shutdown timeout",
	)

	// Rate limit
	fs.IntVar(
		&cfg.RateLimit.WritesPerSecond,
		"ratelimit.writes-per-sec",
		0,
		"max writes per second (0 = unlimited)",
	)

	fs.IntVar(
		&cfg.RateLimit.Burst,
		"ratelimit.burst",
		0,
		"burst size for write rate limiter",
	)

	fs.BoolVar(
		&cfg.RateLimit.Reject,
		"ratelimit.reject",
		false,
		"reject writes over the limit instead of delaying them",
	)

	// Transport
	fs.StringVar(
		&cfg.Transport.GRPCAddress,
		"transport.grpc-address",
		":9000",
		"gRPC listen address (empty = disabled)",
	)

	fs.StringVar(
		&cfg.Transport.HTTPAddress,
		"transport.http-address",
		":8080",
		"HTTP listen address (empty = disabled)",
	)

	// ---- TLS flags ----
	fs.BoolVar(
		&cfg.Transport.TLS.Enabled,
		"transport.tls.enabled",
		false,
		"enable mTLS for both transports",
	)

	fs.StringVar(
		&cfg.Transport.TLS.CACertPath,
		"transport.tls.ca",
		"certs/ca/ca.pem",
		"path to CA certificate (PEM)",
	)

	fs.StringVar(
		&cfg.Transport.TLS.CertPath,
		"transport.tls.cert",
		"certs/holderd/holderd.pem",
		"path to server certificate (PEM)",
	)

	fs.StringVar(
		&cfg.Transport.TLS.KeyPath,
		"transport.tls.key",
		"certs/holderd/holderd.key",
		"path to server private key (PEM)",
	)

	fs.TextVar(
		&cfg.Log.Level,
		"log.level",
		slog.LevelInfo,
		"log level (debug, info, warn, error)",
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if configFile != "" {
		if err := LoadFile(configFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return cfg, nil
}
