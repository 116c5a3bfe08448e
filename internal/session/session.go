package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sportify-admin/internal/model"
)

const (
	// StorageKey names the persisted session.
	StorageKey = "sportify-auth-storage"
	// CookieName is the presence marker mirrored for the route guard.
	CookieName = StorageKey

	DefaultCookieTTL = 7 * 24 * time.Hour
)

var (
	ErrEmptyToken       = errors.New("access token is empty")
	ErrNotAuthenticated = errors.New("no active session")
)

// Session is a point-in-time copy of the authentication state.
type Session struct {
	User            *model.User
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool
	IsLoading       bool
}

// persistedState mirrors the layout the dashboard has always written
// under StorageKey. IsLoading is never persisted.
type persistedState struct {
	State struct {
		User            *model.User `json:"user"`
		Token           *string     `json:"token"`
		RefreshToken    *string     `json:"refreshToken"`
		IsAuthenticated bool        `json:"isAuthenticated"`
	} `json:"state"`
	Version int `json:"version"`
}

// Store owns the session. All mutation goes through its methods so the
// persisted copy and the cookie mirror never drift from memory.
type Store struct {
	mu        sync.RWMutex
	state     Session
	persister Persister
	mirror    Mirror
	cookieTTL time.Duration
	now       func() time.Time
}

func NewStore(persister Persister, mirror Mirror, cookieTTL time.Duration) *Store {
	if persister == nil {
		persister = NewMemoryPersister()
	}
	if mirror == nil {
		mirror = nopMirror{}
	}
	if cookieTTL <= 0 {
		cookieTTL = DefaultCookieTTL
	}

	return &Store{
		state:     Session{IsLoading: true},
		persister: persister,
		mirror:    mirror,
		cookieTTL: cookieTTL,
		now:       time.Now,
	}
}

// Load rehydrates the session from the persister and re-applies the mirror.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found, err := s.persister.Load(ctx, StorageKey)
	if err != nil {
		s.state = Session{}
		s.applyMirrorLocked()
		return fmt.Errorf("load session: %w", err)
	}

	state := Session{}
	if found {
		var persisted persistedState
		if err := json.Unmarshal(data, &persisted); err != nil {
			slog.Warn("discarding unreadable session state", "error", err)
		} else {
			state.User = persisted.State.User
			state.AccessToken = deref(persisted.State.Token)
			state.RefreshToken = deref(persisted.State.RefreshToken)
		}
	}

	s.state = normalize(state)
	s.applyMirrorLocked()
	return nil
}

func (s *Store) Login(ctx context.Context, user model.User, accessToken string, refreshToken string) error {
	if accessToken == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = normalize(Session{User: &user, AccessToken: accessToken, RefreshToken: refreshToken})
	s.applyMirrorLocked()
	return s.persistLocked(ctx)
}

// Logout clears memory, the persisted copy and the mirrored cookie.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Session{}
	s.applyMirrorLocked()
	if err := s.persister.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Refresh installs a new access token. A non-empty refreshToken rotates the
// stored refresh token as well. It fails once the session was logged out,
// so a late refresh cannot resurrect it.
func (s *Store) Refresh(ctx context.Context, accessToken string, refreshToken string) error {
	if accessToken == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsAuthenticated && s.state.RefreshToken == "" {
		return ErrNotAuthenticated
	}

	s.state.AccessToken = accessToken
	if refreshToken != "" {
		s.state.RefreshToken = refreshToken
	}
	s.state = normalize(s.state)
	s.applyMirrorLocked()
	return s.persistLocked(ctx)
}

func (s *Store) SetUser(ctx context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = &user
	return s.persistLocked(ctx)
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.state.IsLoading = loading
	s.mu.Unlock()
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state
	if s.state.User != nil {
		user := *s.state.User
		snapshot.User = &user
	}
	return snapshot
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RefreshToken
}

func (s *Store) persistLocked(ctx context.Context) error {
	var persisted persistedState
	persisted.State.User = s.state.User
	persisted.State.Token = optional(s.state.AccessToken)
	persisted.State.RefreshToken = optional(s.state.RefreshToken)
	persisted.State.IsAuthenticated = s.state.IsAuthenticated

	data, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.persister.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) applyMirrorLocked() {
	if s.state.IsAuthenticated {
		s.mirror.SetCookie(markerCookie(s.now(), s.cookieTTL))
		return
	}
	s.mirror.SetCookie(expiredCookie())
}

// normalize enforces IsAuthenticated == (AccessToken != "") and marks the
// state as loaded.
func normalize(state Session) Session {
	state.IsAuthenticated = state.AccessToken != ""
	state.IsLoading = false
	return state
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
