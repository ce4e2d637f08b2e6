package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"menutree/internal/api"
	"menutree/internal/config"
	"menutree/internal/logging"
	"menutree/internal/menus"
	"menutree/internal/metrics"
	"menutree/internal/server"
	"menutree/internal/store"

	"go.uber.org/zap"
)

// ServeCmd runs the REST server until SIGINT or SIGTERM.
type ServeCmd struct {
	Addr     string `help:"Listen address (overrides server.addr)."`
	DB       string `name:"db" help:"SQLite database path (overrides database.path)." type:"path"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides log.level)."`
}

func (c *ServeCmd) overrides() map[string]any {
	o := map[string]any{}
	if c.Addr != "" {
		o[config.KeyServerAddr] = c.Addr
	}
	if c.DB != "" {
		o[config.KeyDatabasePath] = c.DB
	}
	if c.LogLevel != "" {
		o[config.KeyLogLevel] = c.LogLevel
	}
	return o
}

// Run starts the server with settings from config and flags.
func (c *ServeCmd) Run(out *Output) error {
	if err := config.ApplyOverrides(c.overrides()); err != nil {
		return err
	}
	settings := config.Server()
	if err := settings.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, settings, out.Stderr, nil)
}

// serve wires store, service, API and server. ready, when set, receives the
// server once it is constructed.
func serve(ctx context.Context, settings config.ServerSettings, logOut io.Writer, ready func(*server.Server)) error {
	logger, err := logging.NewWithWriter(settings.LogLevel, settings.LogFormat, logOut)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.Open(ctx, settings.DatabasePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	set := metrics.NewSet()
	svc := menus.NewService(st, menus.WithMutationCounter(set.Mutations))
	router := api.NewRouter(svc, logger.Named("api"),
		api.WithMetrics(set),
		api.WithCORSOrigins(settings.CORSOrigins),
	)

	srv := server.New(router.Setup(),
		server.WithAddr(settings.Addr),
		server.WithShutdownTimeout(settings.ShutdownTimeout),
		server.WithLogger(logger),
	)
	if ready != nil {
		ready(srv)
	}
	logger.Info("store ready", zap.String("path", st.Path()))
	return srv.Serve(ctx)
}
