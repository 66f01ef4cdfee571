package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pressly/goose/v3"
	"github.com/stpnv0/EventRadar/internal/cache"
	"github.com/stpnv0/EventRadar/internal/config"
	"github.com/stpnv0/EventRadar/internal/handler"
	"github.com/stpnv0/EventRadar/internal/metrics"
	"github.com/stpnv0/EventRadar/internal/middleware"
	"github.com/stpnv0/EventRadar/internal/notification"
	"github.com/stpnv0/EventRadar/internal/provider"
	"github.com/stpnv0/EventRadar/internal/repository"
	"github.com/stpnv0/EventRadar/internal/router"
	"github.com/stpnv0/EventRadar/internal/scheduler"
	"github.com/stpnv0/EventRadar/internal/service"
	"github.com/stpnv0/EventRadar/internal/service/ports"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
	"github.com/wb-go/wbf/retry"
)

const migrationsDir = "migrations"

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	metrics    *metrics.Metrics
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg, metrics: metrics.New()}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"EventRadar",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	if cfg.Postgres.Enabled {
		if err = app.runMigrations(); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}

		if err = app.initDB(); err != nil {
			return nil, fmt.Errorf("init db: %w", err)
		}
	} else {
		log.Info("postgres disabled, events are not persisted")
	}

	if err = app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	db.Master.SetConnMaxLifetime(a.cfg.Postgres.ConnMaxLifetime)

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initServices() error {
	pc := a.cfg.Provider
	client := provider.NewClient(provider.Config{
		Name:        pc.Name,
		BaseURL:     pc.BaseURL,
		SearchPath:  pc.SearchPath,
		DetailsPath: pc.DetailsPath,
		APIKey:      pc.APIKey,
		Host:        pc.Host,
		Sort:        pc.Sort,
		Timeout:     pc.Timeout,
		OverFetch:   pc.OverFetch,
		MaxFetch:    pc.MaxFetch,
		Retry: retry.Strategy{
			Attempts: pc.Attempts,
			Delay:    pc.RetryDelay,
			Backoff:  pc.Backoff,
		},
	}, a.log)
	if pc.APIKey == "" {
		a.log.Warn("provider api key is empty, searches will use the fallback only",
			logger.String("provider", pc.Name),
		)
	}

	// Interfaces stay untyped nil when a backend is disabled.
	var store ports.EventStore
	if a.db != nil {
		store = repository.NewEventRepo(a.db)
	}

	n, err := notification.NewTelegramNotifier(
		a.cfg.Telegram.BotToken,
		a.cfg.Telegram.ChatID,
		a.cfg.Telegram.Throttle,
		a.log,
	)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	results := cache.New(a.cfg.Cache.TTL, cache.WithMaxEntries(a.cfg.Cache.MaxEntries))
	a.metrics.TrackCacheSize(results.Len)

	opts := []service.SearchOption{
		service.WithStore(store),
		service.WithOutageNotifier(n),
		service.WithMetrics(a.metrics),
	}
	if fc := a.cfg.Fallback; fc.URL != "" {
		headers := map[string]string{}
		if fc.APIKey != "" {
			headers["X-Api-Key"] = fc.APIKey
		}
		opts = append(opts, service.WithFallback(
			provider.NewFallbackClient(fc.Name, fc.URL, fc.Timeout, headers),
		))
	}

	searchService := service.NewSearchService(client, results, a.log, opts...)
	eventService := service.NewEventService(client, store, a.metrics, a.log)

	a.scheduler = scheduler.New(
		results,
		a.cfg.Scheduler.Interval,
		a.metrics,
		a.log,
	)

	h := handler.NewHandler(searchService, eventService)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		a.metrics,
		router.CORS{
			AllowOrigins: a.cfg.CORS.AllowOrigins,
			MaxAge:       a.cfg.CORS.MaxAge,
		},
		middleware.RequestID(),
		middleware.RequestLogger(a.log, a.metrics),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
