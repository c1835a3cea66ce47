package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/ipadhilfe/internal/catalog"
	"github.com/kailas-cloud/ipadhilfe/internal/config"
	"github.com/kailas-cloud/ipadhilfe/internal/db"
	dbMongo "github.com/kailas-cloud/ipadhilfe/internal/db/mongo"
	dbRedis "github.com/kailas-cloud/ipadhilfe/internal/db/redis"
	logpkg "github.com/kailas-cloud/ipadhilfe/internal/logger"
	"github.com/kailas-cloud/ipadhilfe/internal/metrics"
	faqrepo "github.com/kailas-cloud/ipadhilfe/internal/repository/faq"
	prefsrepo "github.com/kailas-cloud/ipadhilfe/internal/repository/preferences"
	chiTransport "github.com/kailas-cloud/ipadhilfe/internal/transport/chi"
	faquc "github.com/kailas-cloud/ipadhilfe/internal/usecase/faq"
	healthuc "github.com/kailas-cloud/ipadhilfe/internal/usecase/health"
	preferencesuc "github.com/kailas-cloud/ipadhilfe/internal/usecase/preferences"
	searchuc "github.com/kailas-cloud/ipadhilfe/internal/usecase/search"
	seeduc "github.com/kailas-cloud/ipadhilfe/internal/usecase/seed"
	"github.com/kailas-cloud/ipadhilfe/internal/version"
)

const healthProbeTimeout = 2 * time.Second

// app is the composition root shared by the serve and seed commands.
type app struct {
	env     string
	cfg     config.Config
	logger  *zap.Logger
	store   db.Store
	catalog *catalog.Catalog
	items   *faqrepo.Repo
}

func newApp(ctx context.Context) (*app, error) {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Starting ipadhilfe",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	store, err := openStore(ctx, &cfg)
	if err != nil {
		logger.Error("Failed to create database store", zap.Error(err))
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to create database store: %w", err)
	}

	return &app{
		env:     env,
		cfg:     cfg,
		logger:  logger,
		store:   store,
		catalog: cat,
		items:   faqrepo.New(store),
	}, nil
}

// openStore creates the database store for the configured driver.
func openStore(ctx context.Context, cfg *config.Config) (db.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		return dbMongo.NewStore(ctx, dbMongo.Config{
			URI:                   cfg.Database.URI,
			Database:              cfg.Database.Name,
			ItemsCollection:       cfg.Storage.ItemsCollection,
			PreferencesCollection: cfg.Storage.PreferencesCollection,
			Username:              cfg.Database.Username,
			Password:              cfg.Database.Password,
			ServerSelection:       time.Duration(cfg.Database.ServerSelectionTimeout) * time.Second,
		})
	case config.DriverRedis:
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:       cfg.Database.Addrs,
			Username:    cfg.Database.Username,
			Password:    cfg.Database.Password,
			DB:          cfg.Database.DB,
			KeyPrefix:   cfg.Storage.KeyPrefix,
			DialTimeout: time.Duration(cfg.Database.DialTimeout) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

// prepare waits for the store, creates indexes and seeds.
// Every failure is logged and returned; callers decide whether it is fatal.
func (a *app) prepare(ctx context.Context) error {
	ctx = logpkg.ContextWithLogger(ctx, a.logger)

	timeout := time.Duration(a.cfg.Database.ReadinessTimeout) * time.Second
	if err := a.store.WaitForReady(ctx, timeout); err != nil {
		a.logger.Warn("Database not ready", zap.Error(err))
		return fmt.Errorf("database not ready: %w", err)
	}
	a.logger.Info("Connected to database")

	if err := a.store.EnsureSchema(ctx); err != nil {
		a.logger.Warn("Failed to ensure schema", zap.Error(err))
		return fmt.Errorf("ensure schema: %w", err)
	}

	if _, err := seeduc.New(a.items, a.catalog, a.logger).Seed(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func (a *app) seedOnce(ctx context.Context) error {
	metrics.RegisterFAQMetrics()
	return a.prepare(ctx)
}

func (a *app) serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		a.logger.Error("Failed to listen", zap.String("addr", addr), zap.Error(err))
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx, ln)
}

// handler builds the usecases and the HTTP router over the app's store.
func (a *app) handler() http.Handler {
	faqSvc := faquc.New(a.items, a.catalog, a.cfg.Query.ListDefaultLimit)
	searchSvc := searchuc.New(a.items, a.cfg.Query.SearchDefaultLimit)
	prefsSvc := preferencesuc.New(prefsrepo.New(a.store))
	healthSvc := healthuc.New(a.store, healthProbeTimeout)

	server := chiTransport.NewServer(faqSvc, searchSvc, prefsSvc, healthSvc, a.logger)
	return newRouter(server, a.cfg.CORS.AllowedOrigins, a.logger)
}

// run serves on ln until ctx is done. Startup seeding runs next to the listener,
// so the health endpoint answers while the store is still unreachable.
func (a *app) run(ctx context.Context, ln net.Listener) error {
	metrics.RegisterFAQMetrics()

	srv := &http.Server{
		Handler:      a.handler(),
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := a.prepare(gctx); err != nil {
			a.logger.Warn("Serving without completed startup seeding", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Error during shutdown", zap.Error(err))
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("Server stopped gracefully")
	return nil
}
