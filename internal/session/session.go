package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/techhub/storefront/internal/constants"
	"github.com/techhub/storefront/internal/kvstore"
	"github.com/techhub/storefront/internal/models"
)

// Manager holds the current authenticated principal, or none. It is restored
// from the persisted store at construction and written through on every
// transition. Callers that branch on authentication must go through Current
// or Authenticated on every operation; the manager never hands out a cached
// decision.
type Manager struct {
	mu      sync.RWMutex
	store   kvstore.Store
	current *models.User
}

func NewManager(ctx context.Context, store kvstore.Store) *Manager {
	m := &Manager{store: store}

	var user models.User

	found, err := store.Get(ctx, constants.StorageKeyUser, &user)
	if err != nil {
		slog.Warn("Failed to restore session from storage", slog.String("error", err.Error()))

		return m
	}

	if !found {
		return m
	}

	if user.Token == "" {
		// Older clients kept the credential in its own slot.
		var token string
		if ok, err := store.Get(ctx, constants.StorageKeyToken, &token); err == nil && ok {
			user.Token = token
		}
	}

	m.current = &user

	return m
}

// Current returns a copy of the principal, or nil when anonymous.
func (m *Manager) Current() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil
	}

	user := *m.current

	return &user
}

func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current != nil && m.current.Token != ""
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return ""
	}

	return m.current.Token
}

// Set stores the principal and its bearer credential, persisting both slots.
func (m *Manager) Set(ctx context.Context, user models.User) error {
	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()

	if err := m.store.Set(ctx, constants.StorageKeyUser, user); err != nil {
		return err
	}

	return m.store.Set(ctx, constants.StorageKeyToken, user.Token)
}

// Clear drops the principal and both persisted slots.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Delete(ctx, constants.StorageKeyUser); err != nil {
		return err
	}

	return m.store.Delete(ctx, constants.StorageKeyToken)
}

// TokenExpiresAt reads the expiry claim out of the bearer token without
// verifying the signature; the client has no signing key, the claim is only
// used to warn about stale sessions.
func (m *Manager) TokenExpiresAt() (time.Time, bool) {
	token := m.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

func (m *Manager) TokenExpired() bool {
	expiresAt, ok := m.TokenExpiresAt()
	if !ok {
		return false
	}

	return expiresAt.Before(time.Now())
}
