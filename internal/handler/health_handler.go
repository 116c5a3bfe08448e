package handler

import (
	"context"
	"net/http"
	"time"

	"sportify-admin/pkg/apierror"
)

// Pinger is anything the health endpoint should probe: the session
// database or the Redis session store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	report := map[string]string{}
	failed := false
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			report[name] = err.Error()
			failed = true
			continue
		}
		report[name] = "ok"
	}

	if failed {
		writeError(w, apierror.New("UNHEALTHY", "A dependency is unavailable", report, http.StatusServiceUnavailable))
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"status": "ok", "checks": report})
}
