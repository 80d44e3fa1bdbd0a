package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kvoloboi/valueholder/internal/infrastructure/tlsconfig"
)

type Config struct {
	Transport struct {
		Type    string
		Address string
		Timeout time.Duration
		Headers []string
		TLS     tlsconfig.Config
	}
	Retry struct {
		MaxRetries int
		BaseDelay  time.Duration
		MaxDelay   time.Duration
	}
	LogLevel string
}

func (c Config) Validate() error {
	switch c.Transport.Type {
	case "http", "grpc":
	default:
		return fmt.Errorf("unsupported transport.type: %q", c.Transport.Type)
	}

	if c.Transport.Address == "" {
		return errors.New("transport.address must not be empty")
	}

	if c.Transport.Timeout <= 0 {
		return errors.New("transport.timeout must be > 0")
	}

	if len(c.Transport.Headers) > 0 {
		if c.Transport.Type != "http" {
			return errors.New("transport.header requires transport.type http")
		}
		if _, err := parseHeaders(c.Transport.Headers); err != nil {
			return err
		}
	}

	if err := c.Transport.TLS.Validate(); err != nil {
		return err
	}

	if c.Retry.MaxRetries < 1 {
		return errors.New("retry.max must be >= 1")
	}

	if c.Retry.BaseDelay <= 0 {
		return errors.New("retry.base-delay must be > 0")
	}

	if c.Retry.MaxDelay <= 0 {
		return errors.New("retry.max-delay must be > 0")
	}

	if c.Retry.BaseDelay > c.Retry.MaxDelay {
		return errors.New("retry.base-delay must be <= retry.max-delay")
	}

	return nil
}

// parseHeaders reads "Name: value" pairs. Repeated names keep every value.
func parseHeaders(raw []string) (http.Header, error) {
	h := make(http.Header, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid transport.header %q: want \"Name: value\"", kv)
		}
		h.Add(name, strings.TrimSpace(value))
	}
	return h, nil
}
