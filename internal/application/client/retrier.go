package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kvoloboi/valueholder/internal/application/common"
)

// ErrNonRetriable marks errors that a retry cannot fix, such as a rejected
// request body. Wrap with fmt.Errorf("...: %w", ErrNonRetriable).
var ErrNonRetriable = errors.New("non-retriable")

type RetryConfig struct {
	MaxRetries int
	Backoff    common.Backoff
}

// Retrier runs holder calls with jittered exponential backoff between attempts.
type Retrier struct {
	maxRetries int
	backoff    common.Backoff
	logger     *slog.Logger
	counters   *Counters
}

func NewRetrier(cfg RetryConfig, logger *slog.Logger, counters *Counters) *Retrier {
	if logger == nil {
		logger = slog.Default()
	}
	if counters == nil {
		counters = NewCounters()
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Retrier{
		maxRetries: maxRetries,
		backoff:    cfg.Backoff,
		logger:     logger,
		counters:   counters,
	}
}

// Do calls op until it succeeds, returns a non-retriable error, or the
// attempt budget is spent.
func (r *Retrier) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	var err error

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err = op(ctx)

		if err == nil {
			r.counters.IncSucceeded()
			return nil
		}

		if isFinal(ctx, err) {
			r.counters.IncFailed()
			return err
		}

		if attempt == r.maxRetries {
			break
		}

		delay := r.backoff.Next(attempt)
		r.logger.Warn(
			"holder call failed, retrying",
			"op", name,
			"attempt", attempt,
			"delay", delay,
			"err", err,
		)
		r.counters.IncRetried()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.counters.IncFailed()
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.counters.IncFailed()
	r.logger.Error("holder call failed", "op", name, "attempts", r.maxRetries, "err", err)
	return fmt.Errorf("%s failed after %d attempts: %w", name, r.maxRetries, err)
}

func (r *Retrier) Counters() *Counters {
	return r.counters
}

func isFinal(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, ErrNonRetriable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
