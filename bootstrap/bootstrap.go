// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/blackroad/terramod/adapters/clock"
	"github.com/blackroad/terramod/adapters/idgen"
	"github.com/blackroad/terramod/adapters/memory"
	"github.com/blackroad/terramod/adapters/metrics"
	"github.com/blackroad/terramod/adapters/sqlite"
	"github.com/blackroad/terramod/app"
	"github.com/blackroad/terramod/config"
	"github.com/blackroad/terramod/ports"
	"github.com/blackroad/terramod/web"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Config
	Registry   *app.Registry
	Metrics    *metrics.Collector
	HTTPServer *http.Server

	holder *config.Holder
	db     *sqlite.DB
}

// New creates and initializes the application. configPath may be empty, in
// which case defaults plus environment overrides apply.
func New(configPath string) (*App, error) {
	var (
		cfg    *config.Config
		holder *config.Holder
	)
	if configPath != "" {
		h, err := config.NewHolder(configPath, zerolog.Nop())
		if err != nil {
			return nil, err
		}
		holder = h
		cfg = h.Get()
	} else {
		cfg = config.Default()
	}

	logger := SetupLogger(cfg.Logging)
	logger.Info().Msg("initializing terramod registry")

	a := &App{
		Logger: logger,
		Config: cfg,
		holder: holder,
	}

	store, err := a.initStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		logger.Info().Msg("prometheus metrics enabled")
	}

	a.Registry = app.NewRegistry(store, clock.Real{}, idgen.UUID{}, logger, app.RegistryConfig{
		Metrics: a.Metrics,
	})

	if cfg.Registry.SeedBuiltins {
		n, err := a.Registry.SeedBuiltins(context.Background())
		if err != nil {
			logger.Warn().Err(err).Msg("seeding built-in modules failed")
		} else if n > 0 {
			logger.Info().Int("count", n).Msg("seeded built-in modules")
		}
	}

	handler := web.NewHandler(a.Registry, logger, web.Config{
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	})
	a.HTTPServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return a, nil
}

func (a *App) initStore(cfg *config.Config) (ports.ModuleStore, error) {
	switch cfg.Database.Driver {
	case "memory":
		a.Logger.Info().Msg("using in-memory module store")
		return memory.NewModuleStore(), nil
	default:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.db = db
		a.Logger.Info().Str("path", cfg.Database.Path).Msg("database initialized")
		return sqlite.NewModuleStore(db), nil
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	if a.holder != nil {
		if err := a.holder.WatchFile(); err != nil {
			a.Logger.Warn().Err(err).Msg("config file watch unavailable")
		}
		a.holder.WatchSignals()
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.holder != nil {
		a.holder.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

// SetupLogger builds the process logger from logging configuration.
func SetupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
