package config

import "errors"

func (c Config) Validate() error {
	if c.Holder.ShutdownTimeout <= 0 {
		return errors.New("holder.shutdown-timeout must be > 0")
	}

	r := c.RateLimit
	if r.WritesPerSecond < 0 {
		return errors.New("ratelimit.writes-per-sec must be >= 0")
	}
	if r.Burst < 0 {
		return errors.New("ratelimit.burst must be >= 0")
	}
	if r.WritesPerSecond == 0 && r.Burst > 0 {
		return errors.New("ratelimit.burst requires writes-per-sec > 0")
	}

	if c.Transport.GRPCAddress == "" && c.Transport.HTTPAddress == "" {
		return errors.New("at least one of transport.grpc-address or transport.http-address must be set")
	}

	if err := c.Transport.TLS.Validate(); err != nil {
		return err
	}

	return nil
}
