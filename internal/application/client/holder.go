package client

import (
	"context"
	"log/slog"
)

// RetryingHolder wraps a RemoteHolder so every call goes through a Retrier.
type RetryingHolder struct {
	remote  RemoteHolder
	retrier *Retrier
	logger  *slog.Logger
}

func NewRetryingHolder(remote RemoteHolder, retrier *Retrier, logger *slog.Logger) *RetryingHolder {
	if logger == nil {
		logger = slog.Default()
	}

	return &RetryingHolder{
		remote:  remote,
		retrier: retrier,
		logger:  logger,
	}
}

func (h *RetryingHolder) Get(ctx context.Context) (float64, error) {
	var v float64
	err := h.retrier.Do(ctx, "get", func(ctx context.Context) error {
		got, err := h.remote.Get(ctx)
		if err != nil {
			return err
		}
		v = got
		return nil
	})
	return v, err
}

func (h *RetryingHolder) Set(ctx context.Context, v float64) error {
	return h.retrier.Do(ctx, "set", func(ctx context.Context) error {
		return h.remote.Set(ctx, v)
	})
}

// Close releases the remote and logs final call metrics.
func (h *RetryingHolder) Close() error {
	c := h.retrier.Counters()
	h.logger.Debug("holder client closing",
		"total_succeeded", c.GetSucceeded(),
		"total_failed", c.GetFailed(),
		"total_retried", c.GetRetried(),
	)

	return h.remote.Close()
}
