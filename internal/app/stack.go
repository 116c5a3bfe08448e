package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"sportify-admin/internal/api"
	"sportify-admin/internal/apiclient"
	"sportify-admin/internal/config"
	"sportify-admin/internal/database"
	"sportify-admin/internal/query"
	"sportify-admin/internal/repository"
	"sportify-admin/internal/session"
)

// Stack is the full client side: session store, API client with the
// refresh flow, query cache and resource modules. The CLI builds one per
// process, the way a browser tab boots the dashboard.
type Stack struct {
	Config  *config.Config
	Session *session.Store
	Client  *apiclient.Client
	Cache   *query.Cache
	API     *api.API
	Jar     http.CookieJar

	cleanupFuncs []func()
}

type StackOptions struct {
	Redirector apiclient.Redirector
	Registerer prometheus.Registerer
	Transport  http.RoundTripper
	// Persister overrides the store selected by SESSION_STORE.
	Persister session.Persister
}

func NewStack(ctx context.Context, cfg *config.Config, opts StackOptions) (*Stack, error) {
	stack := &Stack{Config: cfg}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	persister := opts.Persister
	if persister == nil {
		selected, cleanup, err := newPersister(ctx, cfg)
		if err != nil {
			return nil, err
		}
		stack.cleanupFuncs = append(stack.cleanupFuncs, cleanup)
		persister = selected
	}
	if cfg.SessionEncryptionKey != "" {
		persister = session.NewSealedPersister(persister, cfg.SessionEncryptionKey)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		stack.Close()
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	dashboardURL, err := url.Parse(cfg.DashboardURL)
	if err != nil {
		stack.Close()
		return nil, fmt.Errorf("parse dashboard url: %w", err)
	}
	stack.Jar = jar

	stack.Session = session.NewStore(persister, session.JarMirror{Jar: jar, URL: dashboardURL}, cfg.CookieTTL)
	if err := stack.Session.Load(ctx); err != nil {
		slog.Warn("session could not be restored; starting logged out", "error", err)
	}

	client, err := apiclient.New(apiclient.Config{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.RequestTimeout,
		Session:    stack.Session,
		Redirector: opts.Redirector,
		Metrics:    apiclient.NewMetrics(reg),
		Transport:  opts.Transport,
	})
	if err != nil {
		stack.Close()
		return nil, fmt.Errorf("create api client: %w", err)
	}
	stack.Client = client

	stack.Cache = query.New(cfg.CacheStaleTime, query.NewMetrics(reg))
	stack.API = api.New(client, stack.Cache, stack.Session)

	return stack, nil
}

func (s *Stack) Close() {
	for i := len(s.cleanupFuncs) - 1; i >= 0; i-- {
		s.cleanupFuncs[i]()
	}
	s.cleanupFuncs = nil
}

// newPersister opens the store named by SESSION_STORE.
func newPersister(ctx context.Context, cfg *config.Config) (session.Persister, func(), error) {
	switch cfg.SessionStore {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return session.NewRedisPersister(client, "", cfg.CookieTTL), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure database schema: %w", err)
		}
		return repository.NewStateRepository(db.Pool), db.Close, nil

	default:
		persister, err := session.NewFilePersister(cfg.SessionDir)
		if err != nil {
			return nil, nil, err
		}
		return persister, func() {}, nil
	}
}
