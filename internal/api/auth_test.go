package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportify-admin/internal/model"
	"sportify-admin/pkg/apierror"
)

const loginOK = `{"success":true,"data":{"user":{"id":"admin-2","email":"coach@sportify.test","role":"admin"},"accessToken":"access-9","refreshToken":"refresh-9"}}`

func TestLoginInstallsSessionAndClearsCache(t *testing.T) {
	f := newFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/auth/login": static(http.StatusOK, loginOK),
		"GET /api/admin/users": static(http.StatusOK, usersList),
	})
	ctx := context.Background()

	_, err := f.api.Users.List(ctx, UserFilters{})
	require.NoError(t, err)
	require.Equal(t, 1, f.cache.Len())

	login, err := f.api.Auth.Login(ctx, model.LoginCredentials{Email: "coach@sportify.test", Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, "admin-2", login.User.ID)

	snapshot := f.store.Snapshot()
	assert.True(t, snapshot.IsAuthenticated)
	assert.False(t, snapshot.IsLoading)
	assert.Equal(t, "access-9", snapshot.AccessToken)
	assert.Equal(t, "refresh-9", snapshot.RefreshToken)
	assert.Equal(t, "coach@sportify.test", snapshot.User.Email)
	assert.Zero(t, f.cache.Len())

	assert.Equal(t, map[string]any{"email": "coach@sportify.test", "password": "pass"}, f.backend.last(http.MethodPost, "/api/auth/login").Body)
}

func TestLoginWithBadCredentialsDoesNotRefresh(t *testing.T) {
	f := newFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/auth/login":   static(http.StatusUnauthorized, `{"success":false,"error":{"code":"INVALID_CREDENTIALS","message":"Invalid email or password"}}`),
		"POST /api/auth/refresh": static(http.StatusOK, `{"success":true,"data":{"token":"never"}}`),
	})

	_, err := f.api.Auth.Login(context.Background(), model.LoginCredentials{Email: "coach@sportify.test", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apierror.Code(err))
	assert.Zero(t, f.backend.count(http.MethodPost, "/api/auth/refresh"))
	assert.False(t, f.store.Snapshot().IsLoading)
	assert.Equal(t, "access-1", f.store.AccessToken())
}

func TestLogoutClearsLocalStateEvenWhenBackendFails(t *testing.T) {
	f := newFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/auth/logout": static(http.StatusInternalServerError, `{"success":false,"error":{"code":"INTERNAL","message":"boom"}}`),
		"GET /api/admin/users":  static(http.StatusOK, usersList),
	})
	ctx := context.Background()

	_, err := f.api.Users.List(ctx, UserFilters{})
	require.NoError(t, err)

	require.NoError(t, f.api.Auth.Logout(ctx))

	snapshot := f.store.Snapshot()
	assert.False(t, snapshot.IsAuthenticated)
	assert.Empty(t, snapshot.AccessToken)
	assert.Nil(t, snapshot.User)
	assert.Zero(t, f.cache.Len())
	assert.Equal(t, 1, f.backend.count(http.MethodPost, "/api/auth/logout"))
}

func TestMeSyncsStoredUser(t *testing.T) {
	f := newFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/auth/me": static(http.StatusOK, `{"success":true,"data":{"id":"admin-1","email":"admin@sportify.test","firstName":"Ada","lastName":"Admin","role":"admin"}}`),
	})

	envelope, err := f.api.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada Admin", envelope.Data.DisplayName())
	assert.Equal(t, "Ada", f.store.Snapshot().User.FirstName)
}

func TestExplicitRefreshRotatesTokens(t *testing.T) {
	f := newFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/auth/refresh": static(http.StatusOK, `{"success":true,"data":{"accessToken":"access-2","refreshToken":"refresh-2"}}`),
	})

	tokens, err := f.api.Auth.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", tokens.Access())
	assert.Equal(t, "access-2", f.store.AccessToken())
	assert.Equal(t, "refresh-2", f.store.RefreshToken())
	assert.Equal(t, map[string]any{"refreshToken": "refresh-1"}, f.backend.last(http.MethodPost, "/api/auth/refresh").Body)
}
