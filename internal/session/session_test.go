package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techhub/storefront/internal/kvstore"
	"github.com/techhub/storefront/internal/models"
	"github.com/techhub/storefront/internal/session"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)

	return token
}

func TestManagerStartsAnonymous(t *testing.T) {
	m := session.NewManager(context.Background(), kvstore.NewNoopStore())

	assert.Nil(t, m.Current())
	assert.False(t, m.Authenticated())
	assert.Empty(t, m.Token())
}

func TestManagerSetAndClear(t *testing.T) {
	ctx := context.Background()
	store, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	m := session.NewManager(ctx, store)

	user := models.User{Email: "cliente@techhub.com", Role: models.RoleClient, Token: "opaque-token"}
	require.NoError(t, m.Set(ctx, user))

	assert.True(t, m.Authenticated())
	assert.Equal(t, "opaque-token", m.Token())
	require.NotNil(t, m.Current())
	assert.Equal(t, "cliente@techhub.com", m.Current().Email)

	require.NoError(t, m.Clear(ctx))
	assert.False(t, m.Authenticated())
	assert.Nil(t, m.Current())
}

func TestManagerRestoresFromStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)

	first := session.NewManager(ctx, store)
	require.NoError(t, first.Set(ctx, models.User{Email: "admin@techhub.com", Role: models.RoleAdmin, Token: "tok"}))

	// Cold start against the same storage directory.
	reopened, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)

	second := session.NewManager(ctx, reopened)
	assert.True(t, second.Authenticated())
	require.NotNil(t, second.Current())
	assert.Equal(t, "admin@techhub.com", second.Current().Email)
	assert.True(t, second.Current().IsAdmin())
}

func TestManagerCurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(ctx, kvstore.NewNoopStore())
	require.NoError(t, m.Set(ctx, models.User{Email: "a@b.co", Token: "tok"}))

	first := m.Current()
	first.Email = "mutated@b.co"

	assert.Equal(t, "a@b.co", m.Current().Email)
}

func TestTokenExpiry(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Token Not Expired", func(t *testing.T) {
		m := session.NewManager(ctx, kvstore.NewNoopStore())
		require.NoError(t, m.Set(ctx, models.User{Email: "a@b.co", Token: signedToken(t, time.Now().Add(time.Hour))}))

		expiresAt, ok := m.TokenExpiresAt()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
		assert.False(t, m.TokenExpired())
	})

	t.Run("Expired Token", func(t *testing.T) {
		m := session.NewManager(ctx, kvstore.NewNoopStore())
		require.NoError(t, m.Set(ctx, models.User{Email: "a@b.co", Token: signedToken(t, time.Now().Add(-time.Hour))}))

		assert.True(t, m.TokenExpired())
	})

	t.Run("Opaque Token Reports No Expiry", func(t *testing.T) {
		m := session.NewManager(ctx, kvstore.NewNoopStore())
		require.NoError(t, m.Set(ctx, models.User{Email: "a@b.co", Token: "not-a-jwt"}))

		_, ok := m.TokenExpiresAt()
		assert.False(t, ok)
		assert.False(t, m.TokenExpired(), "an opaque credential is never treated as expired client-side")
	})
}
