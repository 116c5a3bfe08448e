package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"sportify-admin/internal/config"
	"sportify-admin/internal/database"
	"sportify-admin/internal/handler"
	"sportify-admin/internal/model"
	"sportify-admin/internal/router"
)

// App is the dashboard edge server.
type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a := &App{}

	checks, err := a.storeChecks(cfg)
	if err != nil {
		a.cleanup()
		return nil, err
	}

	proxyHandler, err := handler.NewProxyHandler(cfg.APIBaseURL, cfg.RequestTimeout, reg)
	if err != nil {
		a.cleanup()
		return nil, fmt.Errorf("failed to initialize api proxy: %w", err)
	}

	if info, statErr := os.Stat(cfg.DashboardDir); statErr != nil || !info.IsDir() {
		slog.Warn("dashboard directory not found; pages will 404", "dir", cfg.DashboardDir)
	}

	appRouter := router.New(cfg, reg, router.Handlers{
		Config: handler.NewConfigHandler(model.AppConfig{
			Name:       cfg.AppName,
			Version:    cfg.AppVersion,
			APIBaseURL: cfg.APIBaseURL,
		}),
		Health:    handler.NewHealthHandler(checks),
		Proxy:     proxyHandler,
		Dashboard: handler.NewDashboardHandler(os.DirFS(cfg.DashboardDir)),
	})

	a.server = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return a, nil
}

// storeChecks connects to the shared session backend, if one is
// configured, so /health reports it and the schema exists before the
// first operator logs in.
func (a *App) storeChecks(cfg *config.Config) (map[string]handler.Pinger, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.SessionStore {
	case config.StorePostgres:
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.cleanupFuncs = append(a.cleanupFuncs, db.Close)
		if err := db.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		return map[string]handler.Pinger{"postgres": db}, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		a.cleanupFuncs = append(a.cleanupFuncs, func() { _ = client.Close() })
		return map[string]handler.Pinger{"redis": redisPinger{client}}, nil

	default:
		return map[string]handler.Pinger{}, nil
	}
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(ctx)
	a.cleanup()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func (a *App) cleanup() {
	for i := len(a.cleanupFuncs) - 1; i >= 0; i-- {
		a.cleanupFuncs[i]()
	}
	a.cleanupFuncs = nil
}
