package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/kvoloboi/valueholder/internal/application/store"
)

type WritePolicy struct {
	rules []WriteRule
}

func NewWritePolicy(rules ...WriteRule) *WritePolicy {
	return &WritePolicy{
		rules: rules,
	}
}

// Wait blocks until every rule admits the write or ctx is done.
func (p *WritePolicy) Wait(ctx context.Context) error {
	for _, rule := range p.rules {
		if err := rule.Wait(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Allow admits the write only if every rule has a token right now. When a
// rule refuses, tokens already taken from earlier rules are handed back.
func (p *WritePolicy) Allow() error {
	now := time.Now()
	taken := make([]*rate.Reservation, 0, len(p.rules))

	for _, rule := range p.rules {
		r := rule.ReserveAt(now)
		if !r.OK() || r.DelayFrom(now) > 0 {
			r.CancelAt(now)
			for _, prev := range taken {
				prev.CancelAt(now)
			}
			return store.ErrRateLimited
		}
		taken = append(taken, r)
	}

	return nil
}

type WriteRule interface {
	Wait(ctx context.Context) error
	ReserveAt(now time.Time) *rate.Reservation
}

type MsgRateRule struct {
	limiter *rate.Limiter
}

func NewMsgRateRule(writesPerSec, burst int) *MsgRateRule {
	if burst <= 0 {
		burst = 1
	}

	return &MsgRateRule{
		limiter: rate.NewLimiter(
			rate.Limit(writesPerSec),
			burst,
		),
	}
}

// Wait reports a limiter refusal caused by ctx's deadline as
// context.DeadlineExceeded, so transports map it like any other expiry.
func (r *MsgRateRule) Wait(ctx context.Context) error {
	err := r.limiter.Wait(ctx)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
}

func (r *MsgRateRule) ReserveAt(now time.Time) *rate.Reservation {
	return r.limiter.ReserveN(now, 1)
}
