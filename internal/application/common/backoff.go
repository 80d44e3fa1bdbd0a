package common

import (
	rand "math/rand/v2"
	"time"
)

// Backoff computes jittered exponential delays between retry attempts.
type Backoff struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Rand      *rand.Rand
}

func NewBackoff(base, max time.Duration) Backoff {
	seed := uint64(time.Now().UnixNano())

	return Backoff{
		BaseDelay: base,
		MaxDelay:  max,

		Rand: rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// Next returns the delay before the given attempt, in [0.5, 1.5) of
// min(BaseDelay*2^attempt, MaxDelay).
func (b Backoff) Next(attempt int) time.Duration {
	d := b.MaxDelay
	// shifting past the point where BaseDelay<<attempt exceeds MaxDelay overflows
	if attempt >= 0 && attempt < 32 && b.BaseDelay<<attempt < b.MaxDelay {
		d = b.BaseDelay << attempt
	}

	if b.Rand == nil {
		return d
	}

	jitter := 0.5 + b.Rand.Float64()

	return time.Duration(float64(d) * jitter)
}
