package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// SessionCookie is the presence marker the session store mirrors. Its
	// value is never a token.
	SessionCookie = "sportify-auth-storage"

	loginPath = "/login"
)

var publicPrefixes = []string{
	loginPath,
	"/_next",
	"/api",
	"/static",
	"/public",
	"/favicon.ico",
	"/health",
	"/metrics",
	"/app-config.json",
}

// Guard is a coarse navigation gate. It only checks that the marker cookie
// exists; the backend authorizes every API call on its own.
type Guard struct {
	redirects *prometheus.CounterVec
}

func NewGuard(reg prometheus.Registerer) *Guard {
	redirects := prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sportify", Subsystem: "guard", Name: "redirects_total", Help: "Route guard redirects by target."},
		[]string{"target"},
	)
	if reg != nil {
		reg.MustRegister(redirects)
	}
	return &Guard{redirects: redirects}
}

func (g *Guard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		authenticated := hasSessionCookie(r)
		onLogin := strings.HasPrefix(path, loginPath)

		switch {
		case !authenticated && !isPublic(path):
			target := loginPath + "?" + url.Values{"from": {path}}.Encode()
			g.redirects.WithLabelValues("login").Inc()
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		case authenticated && onLogin:
			g.redirects.WithLabelValues("dashboard").Inc()
			http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func hasSessionCookie(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookie)
	return err == nil && cookie.Value != ""
}

func isPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
