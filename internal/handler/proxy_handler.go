package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sportify-admin/pkg/apierror"
)

const proxyPrefix = "/api"

// ProxyHandler forwards /api/* to the upstream REST API so the dashboard
// can be served from a single origin.
type ProxyHandler struct {
	proxy    *httputil.ReverseProxy
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewProxyHandler(apiBaseURL string, timeout time.Duration, reg prometheus.Registerer) (*ProxyHandler, error) {
	target, err := url.Parse(apiBaseURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream url %q", apiBaseURL)
	}

	h := &ProxyHandler{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "sportify", Subsystem: "proxy", Name: "requests_total", Help: "Proxied API requests by upstream status class."},
			[]string{"method", "class"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Namespace: "sportify", Subsystem: "proxy", Name: "duration_seconds", Help: "Proxied API request latency.", Buckets: prometheus.DefBuckets},
			[]string{"method"},
		),
	}
	if reg != nil {
		reg.MustRegister(h.requests, h.latency)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	h.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = strings.TrimPrefix(pr.In.URL.Path, proxyPrefix)
			pr.Out.URL.RawPath = ""
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: transport,
		ModifyResponse: func(resp *http.Response) error {
			h.requests.WithLabelValues(resp.Request.Method, statusClass(resp.StatusCode)).Inc()
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			h.requests.WithLabelValues(r.Method, "error").Inc()
			if errors.Is(err, r.Context().Err()) {
				slog.Debug("proxy request cancelled", "path", r.URL.Path)
				return
			}
			slog.Warn("upstream request failed", "path", r.URL.Path, "error", err)
			writeError(w, apierror.New("UPSTREAM_UNAVAILABLE", "The API server could not be reached", nil, http.StatusBadGateway))
		},
	}

	return h, nil
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(h.latency.WithLabelValues(r.Method))
	defer timer.ObserveDuration()

	h.proxy.ServeHTTP(w, r)
}

func statusClass(status int) string {
	return fmt.Sprintf("%dxx", status/100)
}
