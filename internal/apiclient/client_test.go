package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"sportify-admin/internal/model"
	"sportify-admin/internal/session"
	"sportify-admin/pkg/apierror"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// upstream is a fake backend. Protected routes accept only the token held in
// valid; /auth/refresh rotates it.
type upstream struct {
	mu        sync.Mutex
	valid     string
	rotateTo  string
	refreshOK bool
	// stale keeps the backend rejecting tokens even after a refresh.
	stale     bool
	refreshes atomic.Int32
	hits      atomic.Int32
	lastAuth  atomic.Value
	delay     time.Duration
}

func (u *upstream) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		u.refreshes.Add(1)
		time.Sleep(u.delay)

		var body model.RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&body)

		if !u.refreshOK || body.RefreshToken != "refresh-1" {
			writeJSON(w, http.StatusUnauthorized, `{"success":false,"error":{"code":"INVALID_REFRESH_TOKEN","message":"Refresh token expired"}}`)
			return
		}

		if !u.stale {
			u.mu.Lock()
			u.valid = u.rotateTo
			u.mu.Unlock()
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"token":"`+u.rotateTo+`","refreshToken":"refresh-2"}}`)
	})

	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		auth := r.Header.Get("Authorization")
		u.lastAuth.Store(auth)

		u.mu.Lock()
		valid := u.valid
		u.mu.Unlock()

		if auth != "Bearer "+valid {
			writeJSON(w, http.StatusUnauthorized, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"Token expired"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"users":[{"id":"1","email":"admin@sportify.test"}]}}`)
	})

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"error":{"code":"INVALID_CREDENTIALS","message":"Invalid email or password"}}`)
	})

	mux.HandleFunc("/admin/broken", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"id":"1"}}`)
	})

	mux.HandleFunc("/admin/text", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	mux.HandleFunc("/admin/conflict", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, `{"success":false,"error":{"code":"EMAIL_TAKEN","message":"Email already in use","details":{"field":"email"}}}`)
	})

	mux.HandleFunc("/admin/empty-error", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	mux.HandleFunc("DELETE /admin/roles/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/admin/echo", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"query":"`+r.URL.RawQuery+`","requestId":"`+r.Header.Get("X-Request-ID")+`"}}`)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

type harness struct {
	client    *Client
	store     *session.Store
	upstream  *upstream
	redirects *atomic.Int32
	registry  *prometheus.Registry
}

func newHarness(t *testing.T, up *upstream) *harness {
	t.Helper()

	server := httptest.NewServer(up.handler())
	transport := &http.Transport{}
	t.Cleanup(func() {
		transport.CloseIdleConnections()
		server.Close()
	})

	store := session.NewStore(session.NewMemoryPersister(), nil, 0)
	require.NoError(t, store.Login(context.Background(), model.User{ID: "1", Email: "admin@sportify.test"}, "access-1", "refresh-1"))

	registry := prometheus.NewRegistry()
	redirects := &atomic.Int32{}

	client, err := New(Config{
		BaseURL:    server.URL + "/",
		Timeout:    5 * time.Second,
		Session:    store,
		Redirector: RedirectFunc(func() { redirects.Add(1) }),
		Metrics:    NewMetrics(registry),
		Transport:  transport,
	})
	require.NoError(t, err)

	return &harness{client: client, store: store, upstream: up, redirects: redirects, registry: registry}
}

func TestNewRequiresBaseURLAndSession(t *testing.T) {
	_, err := New(Config{Session: session.NewStore(nil, nil, 0)})
	require.Error(t, err)

	_, err = New(Config{BaseURL: "http://localhost:3001/api"})
	require.Error(t, err)

	client, err := New(Config{BaseURL: " http://localhost:3001/api/ ", Session: session.NewStore(nil, nil, 0)})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/api", client.BaseURL())
}

func TestDoAttachesBearerToken(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-1"})

	envelope, err := Get[json.RawMessage](context.Background(), h.client, "/admin/users", nil)
	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Bearer access-1", h.upstream.lastAuth.Load())
	assert.Zero(t, h.upstream.refreshes.Load())
}

func TestDoSendsQueryAndRequestID(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-1"})

	query := url.Values{"search": {"john"}, "page": {"1"}}
	envelope, err := Get[map[string]string](context.Background(), h.client, "admin/echo", query)
	require.NoError(t, err)
	assert.Equal(t, "page=1&search=john", envelope.Data["query"])
	assert.NotEmpty(t, envelope.Data["requestId"])
}

func TestUnauthorizedRefreshesOnceAndRetries(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-2", rotateTo: "access-2", refreshOK: true})

	envelope, err := Get[json.RawMessage](context.Background(), h.client, "/admin/users", nil)
	require.NoError(t, err)
	assert.True(t, envelope.Success)

	assert.Equal(t, int32(1), h.upstream.refreshes.Load())
	assert.Equal(t, int32(2), h.upstream.hits.Load())
	assert.Equal(t, "access-2", h.store.AccessToken())
	assert.Equal(t, "refresh-2", h.store.RefreshToken())
	assert.Zero(t, h.redirects.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.client.metrics.refreshes.WithLabelValues("succeeded")))
}

func TestSecondUnauthorizedDoesNotRefreshAgain(t *testing.T) {
	// The refresh succeeds but the backend keeps rejecting the new token.
	h := newHarness(t, &upstream{valid: "never", rotateTo: "access-2", refreshOK: true, stale: true})

	_, err := Get[json.RawMessage](context.Background(), h.client, "/admin/users", nil)
	require.Error(t, err)
	assert.True(t, apierror.IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "UNAUTHORIZED", apierror.Code(err))

	assert.Equal(t, int32(1), h.upstream.refreshes.Load())
	assert.Equal(t, int32(2), h.upstream.hits.Load())
	assert.Equal(t, "Bearer access-2", h.upstream.lastAuth.Load())
	assert.Zero(t, h.redirects.Load())
}

func TestFailedRefreshLogsOutAndRedirects(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-2", rotateTo: "access-2", refreshOK: false})

	_, err := Get[json.RawMessage](context.Background(), h.client, "/admin/users", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrSessionExpired)
	assert.Equal(t, apierror.CodeSessionExpired, apierror.Code(err))

	assert.Equal(t, int32(1), h.redirects.Load())
	assert.False(t, h.store.Snapshot().IsAuthenticated)
	assert.Empty(t, h.store.RefreshToken())
	assert.Equal(t, int32(1), h.upstream.hits.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.client.metrics.refreshes.WithLabelValues("failed")))
}

func TestMissingRefreshTokenLogsOut(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-2"})
	require.NoError(t, h.store.Login(context.Background(), model.User{ID: "1"}, "access-1", ""))

	_, err := Get[json.RawMessage](context.Background(), h.client, "/admin/users", nil)
	assert.ErrorIs(t, err, apierror.ErrSessionExpired)
	assert.Zero(t, h.upstream.refreshes.Load())
	assert.Equal(t, int32(1), h.redirects.Load())
}

func TestConcurrentUnauthorizedCoalesceIntoOneRefresh(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-2", rotateTo: "access-2", refreshOK: true, delay: 50 * time.Millisecond})

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = Get[json.RawMessage](context.Background(), h.client, "/admin/users", nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), h.upstream.refreshes.Load())
	assert.Zero(t, h.redirects.Load())
}

func TestConcurrentFailedRefreshRedirectsOnce(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-2", refreshOK: false, delay: 50 * time.Millisecond})

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = Get[json.RawMessage](context.Background(), h.client, "/admin/users", nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.Error(t, err)
		assert.True(t, apierror.IsStatus(err, http.StatusUnauthorized))
	}
	assert.Equal(t, int32(1), h.upstream.refreshes.Load())
	assert.False(t, h.store.Snapshot().IsAuthenticated)
}

func TestNoRefreshRequestsSurfaceUnauthorized(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-1", refreshOK: true})

	req := NewRequest(http.MethodPost, "/auth/login").
		WithBody(model.LoginCredentials{Email: "admin@sportify.test", Password: "wrong"}).
		WithoutRefresh()
	_, err := h.client.Do(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apierror.Code(err))
	assert.Zero(t, h.upstream.refreshes.Load())
	assert.Zero(t, h.redirects.Load())
	assert.True(t, h.store.Snapshot().IsAuthenticated)
}

func TestErrorNormalization(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-1"})
	ctx := context.Background()

	_, err := Get[json.RawMessage](ctx, h.client, "/admin/conflict", nil)
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "EMAIL_TAKEN", apiErr.Code)
	assert.Equal(t, "Email already in use", apiErr.Message)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, map[string]any{"field": "email"}, apiErr.Details)

	_, err = Get[json.RawMessage](ctx, h.client, "/admin/empty-error", nil)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeUnknown, apiErr.Code)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestEnvelopeWithoutSuccessIsInvalid(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-1"})
	ctx := context.Background()

	_, err := Get[json.RawMessage](ctx, h.client, "/admin/broken", nil)
	assert.Equal(t, apierror.CodeInvalidResponse, apierror.Code(err))

	_, err = Get[json.RawMessage](ctx, h.client, "/admin/text", nil)
	assert.Equal(t, apierror.CodeInvalidResponse, apierror.Code(err))
}

func TestNoContentIsSuccess(t *testing.T) {
	h := newHarness(t, &upstream{valid: "access-1"})

	envelope, err := Delete[json.RawMessage](context.Background(), h.client, "/admin/roles/1")
	require.NoError(t, err)
	assert.True(t, envelope.Success)
}

func TestTransportErrorIsUnknown(t *testing.T) {
	store := session.NewStore(nil, nil, 0)
	client, err := New(Config{BaseURL: "http://127.0.0.1:1/api", Session: store, Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.Do(context.Background(), NewRequest(http.MethodGet, "/admin/users"))
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeUnknown, apiErr.Code)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestRetryIsANewRequest(t *testing.T) {
	original := NewRequest(http.MethodGet, "/admin/users").WithQuery(url.Values{"page": {"1"}})
	next := original.retry()

	next.Query.Set("page", "2")
	assert.Equal(t, "1", original.Query.Get("page"))
	assert.Equal(t, 0, original.Attempt())
	assert.Equal(t, 1, next.Attempt())
	assert.True(t, original.canRefresh())
	assert.False(t, next.canRefresh())
}
