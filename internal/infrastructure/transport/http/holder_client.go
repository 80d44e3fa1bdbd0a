package transporthttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kvoloboi/valueholder/internal/application/client"
	"github.com/kvoloboi/valueholder/internal/application/store"
)

const valuePath = "/value"

var ErrMissingValue = errors.New("response has no value")

// HolderHttpClient implements client.RemoteHolder against holderd's HTTP API.
type HolderHttpClient struct {
	client *Client
	logger *slog.Logger
}

func NewHolderHttpClient(
	baseURL string,
	logger *slog.Logger,
	opts ...Option,
) (*HolderHttpClient, error) {
	if baseURL == "" {
		return nil, errors.New("endpoint is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	c, err := New(
		append(
			[]Option{
				WithBaseURL(baseURL),
			},
			opts...,
		)...,
	)
	if err != nil {
		return nil, err
	}

	return &HolderHttpClient{
		client: c,
		logger: logger,
	}, nil
}

var _ client.RemoteHolder = (*HolderHttpClient)(nil)

func (h *HolderHttpClient) Get(ctx context.Context) (float64, error) {
	var body valueJSON
	if err := h.client.Get(ctx, valuePath, &body); err != nil {
		h.logger.Debug("failed to get value", "err", err)
		return 0, classify(err)
	}

	if body.Value == nil {
		return 0, fmt.Errorf("%w: %w", ErrMissingValue, client.ErrNonRetriable)
	}

	return float64(*body.Value), nil
}

func (h *HolderHttpClient) Set(ctx context.Context, v float64) error {
	if err := h.client.Put(ctx, valuePath, newValueJSON(v), nil); err != nil {
		h.logger.Debug("failed to set value", "value", v, "err", err)
		return classify(err)
	}

	return nil
}

func (h *HolderHttpClient) Close() error {
	h.client.CloseIdleConnections()
	return nil
}

// classify maps HTTP failures onto the errors the retrier understands.
func classify(err error) error {
	var se *StatusError
	if !errors.As(err, &se) {
		return err
	}

	switch {
	case se.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", store.ErrRateLimited, err)
	case se.StatusCode >= 400 && se.StatusCode < 500:
		return fmt.Errorf("%w: %w", client.ErrNonRetriable, err)
	default:
		return err
	}
}
