package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sportify-admin/internal/config"
	"sportify-admin/internal/handler"
	"sportify-admin/internal/middleware"
)

type Handlers struct {
	Config    *handler.ConfigHandler
	Health    *handler.HealthHandler
	Proxy     *handler.ProxyHandler
	Dashboard http.Handler
}

func New(cfg *config.Config, reg *prometheus.Registry, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)
	guard := middleware.NewGuard(reg)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)
	r.Use(guard.Handler)

	r.Get("/health", h.Health.Health)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/app-config.json", h.Config.AppConfig)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		api.Handle("/*", h.Proxy)
	})

	r.Handle("/*", h.Dashboard)

	return r
}
