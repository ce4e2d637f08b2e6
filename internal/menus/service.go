// Package menus is the application service behind the REST API and the CLI.
// Every mutation of the tree runs through here so that depth maintenance and
// the single-transaction guarantee cannot be bypassed.
package menus

import (
	"context"
	"time"

	"menutree/internal/domain"
	"menutree/internal/graph"
	"menutree/internal/metrics"
	"menutree/internal/store"
)

// Service coordinates the store, the hierarchy builder and the depth
// maintainer.
type Service struct {
	store     *store.Store
	now       func() time.Time
	newID     func() string
	mutations metrics.IncrementalCounter
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.now = fn }
}

// WithIDGenerator overrides how new ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithMutationCounter records every mutation by operation and result.
func WithMutationCounter(c metrics.IncrementalCounter) Option {
	return func(s *Service) { s.mutations = c }
}

// NewService wires a service on top of an open store.
func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
		newID: domain.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// MenuTree is a menu together with its built forest.
type MenuTree struct {
	Menu   domain.Menu
	Forest *graph.Forest
}

func (s *Service) record(op string, err error) {
	if s.mutations == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.mutations.Increment(op, result)
}
