package client

import (
	"context"
	"io"
)

// RemoteHolder reads and writes a holder served by holderd.
type RemoteHolder interface {
	Get(ctx context.Context) (float64, error)
	Set(ctx context.Context, v float64) error
	io.Closer
}
