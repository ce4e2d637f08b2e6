// Package api exposes the menu service over REST.
package api

import (
	"context"
	"net/http"
	"time"

	"menutree/internal/domain"
	"menutree/internal/menus"
	"menutree/internal/metrics"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// MenuService is the slice of the application service the handlers use.
type MenuService interface {
	Ping(ctx context.Context) error

	ListMenus(ctx context.Context, search string) ([]domain.Menu, error)
	MenuStats(ctx context.Context) ([]domain.MenuStats, error)
	GetMenuTree(ctx context.Context, id string) (menus.MenuTree, error)
	CreateMenu(ctx context.Context, in menus.MenuInput) (domain.Menu, error)
	UpdateMenu(ctx context.Context, id string, in menus.MenuInput) (domain.Menu, error)
	DeleteMenu(ctx context.Context, id string) error

	GetItem(ctx context.Context, id string) (domain.MenuItem, error)
	ItemPath(ctx context.Context, id string) ([]domain.MenuItem, error)
	CreateItem(ctx context.Context, in menus.CreateItemInput) (domain.MenuItem, error)
	MoveItem(ctx context.Context, in menus.MoveItemInput) (domain.MenuItem, error)
	RenameItem(ctx context.Context, id, name string) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, id string) error
}

// Router creates and configures the HTTP router.
type Router struct {
	svc         MenuService
	logger      *zap.Logger
	metrics     *metrics.Set
	corsOrigins []string
	now         func() time.Time
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithMetrics records request metrics on set and serves it at /metrics.
func WithMetrics(set *metrics.Set) RouterOption {
	return func(rt *Router) { rt.metrics = set }
}

// WithCORSOrigins sets the origins allowed to call the API from a browser.
func WithCORSOrigins(origins []string) RouterOption {
	return func(rt *Router) { rt.corsOrigins = origins }
}

// WithClock overrides the time source used for error timestamps.
func WithClock(fn func() time.Time) RouterOption {
	return func(rt *Router) { rt.now = fn }
}

// NewRouter creates a new router instance.
func NewRouter(svc MenuService, logger *zap.Logger, opts ...RouterOption) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &Router{
		svc:    svc,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.recoverer)
	router.Use(Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(Metrics(rt.metrics))
	}

	if len(rt.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.NotFound(rt.notFound)
	router.MethodNotAllowed(rt.methodNotAllowed)

	health := &healthHandler{svc: rt.svc, responder: rt.responder()}
	router.Get("/healthz", health.Live)
	router.Get("/readyz", health.Ready)
	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/menus", func(r chi.Router) {
			h := newMenuHandler(rt.svc, rt.responder())
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Get("/stats", h.Stats)
			r.Get("/{menuID}", h.Get)
			r.Put("/{menuID}", h.Update)
			r.Delete("/{menuID}", h.Delete)
		})

		r.Route("/menu-items", func(r chi.Router) {
			h := newItemHandler(rt.svc, rt.responder())
			r.Post("/", h.Create)
			r.Get("/{itemID}", h.Get)
			r.Patch("/{itemID}", h.Rename)
			r.Delete("/{itemID}", h.Delete)
			r.Get("/{itemID}/path", h.Path)
			r.Patch("/{itemID}/move", h.Move)
		})
	})

	return router
}

func (rt *Router) responder() responder {
	return responder{logger: rt.logger, now: rt.now}
}

func (rt *Router) notFound(w http.ResponseWriter, r *http.Request) {
	rt.responder().respondStatus(w, r, http.StatusNotFound, "Cannot "+r.Method+" "+r.URL.Path)
}

func (rt *Router) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	rt.responder().respondStatus(w, r, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed on "+r.URL.Path)
}

// recoverer turns handler panics into the standard 500 envelope.
func (rt *Router) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				rt.logger.Error("panic serving request",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.String("requestID", chimiddleware.GetReqID(r.Context())),
					zap.Stack("stack"),
				)
				rt.responder().respondStatus(w, r, http.StatusInternalServerError, internalMessage)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
