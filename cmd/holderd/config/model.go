package config

import (
	"log/slog"
	"time"

	"github.com/kvoloboi/valueholder/internal/infrastructure/tlsconfig"
)

type Config struct {
	Holder    HolderConfig    `yaml:"holder"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type HolderConfig struct {
	InitialValue    float64       `yaml:"initial_value"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type RateLimitConfig struct {
	WritesPerSecond int `yaml:"writes_per_sec"`
	Burst           int `yaml:"burst"`
	// Reject fails excess writes instead of queueing them.
	Reject bool `yaml:"reject"`
}

type TransportConfig struct {
	GRPCAddress string           `yaml:"grpc_address"`
	HTTPAddress string           `yaml:"http_address"`
	TLS         tlsconfig.Config `yaml:"tls"`
}

type LogConfig struct {
	Level slog.Level `yaml:"level"`
}
