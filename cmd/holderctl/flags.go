package main

import (
	"time"

	"github.com/spf13/pflag"
)

func bindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(
		&cfg.Transport.Type,
		"transport.type",
		"grpc",
		"http or grpc",
	)

	fs.StringVar(
		&cfg.Transport.Address,
		"transport.address",
		"localhost:9000",
		"holderd address (host:port for grpc, base URL for http)",
	)

	fs.DurationVar(
		&cfg.Transport.Timeout,
		"transport.timeout",
		5*time.Second,
		"deadline for the whole command, covering every retry attempt and backoff",
	)

	fs.StringArrayVar(
		&cfg.Transport.Headers,
		"transport.header",
		nil,
		"extra HTTP request header as \"Name: value\" (repeatable, http only)",
	)

	// ---- TLS flags ----
	fs.BoolVar(
		&cfg.Transport.TLS.Enabled,
		"transport.tls.enabled",
		false,
		"enable mTLS for transport",
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
		"certs/holderctl/holderctl.pem",
		"path to client certificate (PEM)",
	)

	fs.StringVar(
		&cfg.Transport.TLS.KeyPath,
		"transport.tls.key",
		"certs/holderctl/holderctl.key",
		"path to client private key (PEM)",
	)

	fs.StringVar(
		&cfg.Transport.TLS.ServerName,
		"transport.tls.server-name",
		"holderd",
		"TLS server name override (optional)",
	)

	fs.BoolVar(
		&cfg.Transport.TLS.InsecureSkipVerify,
		"transport.tls.insecure",
		false,
		"skip TLS verification (DEV ONLY)",
	)

	fs.IntVar(
		&cfg.Retry.MaxRetries,
		"retry.max",
		3,
		"maximum attempts per call",
	)

	fs.DurationVar(
		&cfg.Retry.BaseDelay,
		"retry.base-delay",
		200*time.Millisecond,
		"initial retry backoff delay",
	)

	fs.DurationVar(
		&cfg.Retry.MaxDelay,
		"retry.max-delay",
		2*time.Second,
		"maximum retry backoff delay",
	)

	fs.StringVar(
		&cfg.LogLevel,
		"log.level",
		"warn",
		"log level (debug, info, warn, error)",
	)
}
