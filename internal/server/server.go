// Package server runs the REST API with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":3001"

	// DefaultReadTimeout bounds reading the entire request, body included.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout bounds waiting for the next keep-alive request.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the grace period given to in-flight requests.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes caps request header size.
	DefaultMaxHeaderBytes = 1 << 20
)

// Server serves an http.Handler until its context is canceled.
type Server struct {
	handler         http.Handler
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int
	logger          *zap.Logger

	mu      sync.RWMutex
	running bool
	bound   net.Addr
}

// Option is a functional option for configuring the Server.
type Option func(*Server)

// WithAddr sets the listen address, e.g. ":3001" or "127.0.0.1:0".
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration for writing the response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { s.writeTimeout = d }
}

// WithIdleTimeout sets the keep-alive idle timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) { s.idleTimeout = d }
}

// WithShutdownTimeout sets the grace period for in-flight requests on shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// WithLogger sets the logger for lifecycle events and net/http errors.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a server for handler.
func New(handler http.Handler, opts ...Option) *Server {
	s := &Server{
		handler:         handler,
		addr:            DefaultAddr,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsRunning reports whether the listener is bound and accepting connections.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound address once running, which resolves ":0" to the
// real port. It returns nil before Serve has bound its listener.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bound
}

// Serve binds the listener and blocks until ctx is canceled, then drains
// in-flight requests for up to the shutdown timeout. It returns nil on a
// clean shutdown.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	return s.serve(ctx, listener)
}

func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	errLog, err := zap.NewStdLogAt(s.logger, zap.WarnLevel)
	if err != nil {
		return fmt.Errorf("create error logger: %w", err)
	}
	srv := &http.Server{
		Handler:        s.handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       errLog,
	}

	s.logger.Info("starting server", zap.String("addr", listener.Addr().String()))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.mu.Lock()
		s.running = true
		s.bound = listener.Addr()
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down server", zap.Duration("grace_period", s.shutdownTimeout))
		start := time.Now()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", zap.Error(err))
		}
		s.logger.Info("server shutdown complete", zap.Duration("duration", time.Since(start)))
		return nil
	})

	return g.Wait()
}
