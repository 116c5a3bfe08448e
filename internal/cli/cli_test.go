package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportify-admin/internal/app"
	"sportify-admin/internal/config"
	"sportify-admin/internal/session"
	"sportify-admin/pkg/apierror"
)

// backend is a small stand-in for the SportifyLife API.
type backend struct {
	t *testing.T

	mu           sync.Mutex
	valid        string
	rejectAll    bool
	lastQuery    string
	lastWorkout  map[string]any
	logoutCalled bool
}

func signedToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	reply := func(status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}

	switch r.URL.Path {
	case "/api/auth/login":
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secret" {
			reply(http.StatusUnauthorized, `{"success":false,"message":"Invalid credentials"}`)
			return
		}
		b.valid = signedToken(b.t, "u1")
		body, _ := json.Marshal(map[string]any{
			"success": true,
			"data": map[string]any{
				"user":         map[string]any{"id": "u1", "email": creds["email"], "firstName": "Ada", "lastName": "Admin", "role": "admin"},
				"accessToken":  b.valid,
				"refreshToken": "refresh-1",
			},
		})
		reply(http.StatusOK, string(body))
		return
	case "/api/auth/refresh":
		reply(http.StatusUnauthorized, `{"success":false,"message":"Refresh token revoked"}`)
		return
	case "/api/auth/logout":
		b.logoutCalled = true
		reply(http.StatusOK, `{"success":true}`)
		return
	}

	if b.rejectAll || r.Header.Get("Authorization") != "Bearer "+b.valid {
		reply(http.StatusUnauthorized, `{"success":false,"message":"Unauthorized"}`)
		return
	}

	switch {
	case r.URL.Path == "/api/auth/me":
		reply(http.StatusOK, `{"success":true,"data":{"id":"u1","email":"ada@sportify.test","firstName":"Ada","lastName":"Admin","role":"admin"}}`)
	case r.URL.Path == "/api/admin/users":
		b.lastQuery = r.URL.RawQuery
		reply(http.StatusOK, `{"success":true,"data":{"users":[{"id":"u2","email":"bob@sportify.test","name":"Bob","role":"user","status":"active"}],"pagination":{"page":2,"limit":10,"total":11,"totalPages":2}}}`)
	case r.URL.Path == "/api/admin/workouts" && r.Method == http.MethodPost:
		b.lastWorkout = map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&b.lastWorkout)
		reply(http.StatusCreated, `{"success":true,"data":{"id":"w1","name":"Leg day","description":"","exercises":[]},"message":"Workout created"}`)
	default:
		reply(http.StatusNotFound, `{"success":false,"message":"Not found"}`)
	}
}

type harness struct {
	backend   *backend
	cfg       *config.Config
	persister *session.MemoryPersister
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	b := &backend{t: t}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	return &harness{
		backend: b,
		cfg: &config.Config{
			APIBaseURL:     srv.URL + "/api",
			AppName:        "SportifyLife Admin",
			AppVersion:     "1.0.0",
			RequestTimeout: 5 * time.Second,
			CacheStaleTime: time.Minute,
			CookieTTL:      session.DefaultCookieTTL,
			DashboardURL:   "http://localhost:3000",
			LogLevel:       "error",
		},
		persister: session.NewMemoryPersister(),
	}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cfg := *h.cfg
	err := Execute(context.Background(), args, Options{
		Config: &cfg,
		Stack: app.StackOptions{
			Persister:  h.persister,
			Registerer: prometheus.NewRegistry(),
		},
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	return out.String(), errOut.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "", "login", "--email", "ada@sportify.test", "--password", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as Ada Admin (admin)\n", out)

	out, _, err = h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Admin <ada@sportify.test>")
	assert.Contains(t, out, "role: admin")
	assert.Contains(t, out, "access token expires:")

	out, _, err = h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)
	assert.True(t, h.backend.logoutCalled)

	_, errOut, err := h.run(t, "", "whoami")
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
	assert.Contains(t, errOut, "Error: no active session")
}

func TestLoginReadsPasswordFromStdin(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "secret\n", "login", "-e", "ada@sportify.test", "--password-stdin")
	require.NoError(t, err)

	_, errOut, err := h.run(t, "wrong\n", "login", "-e", "ada@sportify.test", "--password-stdin")
	require.Error(t, err)
	assert.True(t, apierror.IsStatus(err, http.StatusUnauthorized))
	assert.NotContains(t, errOut, "session has expired")
}

func TestUsersListSendsOnlyGivenFilters(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "login", "-e", "ada@sportify.test", "-p", "secret")
	require.NoError(t, err)

	out, _, err := h.run(t, "", "users", "list", "--page", "2", "--role", "admin")
	require.NoError(t, err)
	assert.Equal(t, "page=2&role=admin", h.backend.lastQuery)
	assert.Contains(t, out, "bob@sportify.test")
	assert.Contains(t, out, "page 2 of 2 (11 total)")

	out, _, err = h.run(t, "", "users", "list", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "", h.backend.lastQuery)

	var page struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u2", page.Items[0].ID)
}

func TestWorkoutCreateNormalizesPayload(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "login", "-e", "ada@sportify.test", "-p", "secret")
	require.NoError(t, err)

	payload := `{"name":"Leg day","level":"Beginner","exercises":[{"exerciseId":"e1","order":1,"sets":"3","reps":"10-12","restSeconds":"-5"}]}`
	out, _, err := h.run(t, payload, "workouts", "create", "-f", "-")
	require.NoError(t, err)
	assert.Equal(t, "Workout created\n", out)

	workout := h.backend.lastWorkout
	assert.Equal(t, "beginner", workout["level"])
	exercises := workout["exercises"].([]any)
	first := exercises[0].(map[string]any)
	assert.Equal(t, 3.0, first["sets"])
	assert.Equal(t, 10.0, first["reps"])
	assert.NotContains(t, first, "restSeconds")
}

func TestRejectedRefreshAsksToLogInAgain(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "login", "-e", "ada@sportify.test", "-p", "secret")
	require.NoError(t, err)

	h.backend.mu.Lock()
	h.backend.rejectAll = true
	h.backend.mu.Unlock()

	_, errOut, err := h.run(t, "", "users", "list")
	require.ErrorIs(t, err, apierror.ErrSessionExpired)
	assert.Contains(t, errOut, "Your session has expired. Run `sportifyctl login` to sign in again.")

	_, found, loadErr := h.persister.Load(context.Background(), session.StorageKey)
	require.NoError(t, loadErr)
	assert.False(t, found)
}

func TestConfigAndOutputValidation(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "", "config")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"SportifyLife Admin","version":"1.0.0","apiBaseUrl":"`+h.cfg.APIBaseURL+`"}`, out)

	_, _, err = h.run(t, "", "users", "list", "-o", "yaml")
	require.Error(t, err)
}
