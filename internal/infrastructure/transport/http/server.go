package transporthttp

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/kvoloboi/valueholder/internal/application/store"
)

const maxBodyBytes = 1 << 10

// HTTPServer exposes a HolderStore as GET/PUT /value.
type HTTPServer struct {
	server *http.Server
	lis    net.Listener
	store  store.HolderStore
	logger *slog.Logger
}

func NewHTTPServer(
	addr string,
	s store.HolderStore,
	logger *slog.Logger,
	tlsCfg *tls.Config,
) (*HTTPServer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		lis = tls.NewListener(lis, tlsCfg)
	}

	self := &HTTPServer{
		lis:    lis,
		store:  s,
		logger: logger,
	}
	self.server = &http.Server{
		Handler:           self.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return self, nil
}

func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+valuePath, s.getValue)
	mux.HandleFunc("PUT "+valuePath, s.setValue)
	return mux
}

func (s *HTTPServer) Addr() net.Addr {
	return s.lis.Addr()
}

func (s *HTTPServer) getValue(w http.ResponseWriter, r *http.Request) {
	v, err := s.store.Get(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newValueJSON(v)); err != nil {
		s.logger.Warn("failed to write response", "err", err)
	}
}

func (s *HTTPServer) setValue(w http.ResponseWriter, r *http.Request) {
	var body valueJSON

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, "malformed body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Value == nil {
		http.Error(w, "missing value", http.StatusBadRequest)
		return
	}

	if err := s.store.Set(r.Context(), float64(*body.Value)); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrRateLimited):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		s.logger.Error("holder store failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Run blocks until the server stops. A clean Shutdown returns nil.
func (s *HTTPServer) Run() error {
	err := s.server.Serve(s.lis)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *HTTPServer) Shutdown(timeout time.Duration) {
	s.logger.Info("initiating graceful shutdown of HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn("graceful shutdown timed out; forcing close", "err", err)
		_ = s.server.Close()
		return
	}

	s.logger.Info("HTTP server stopped gracefully")
}
