package account

import (
	"context"
	"log/slog"

	"github.com/techhub/storefront/internal/constants"
	"github.com/techhub/storefront/internal/gateway"
	"github.com/techhub/storefront/internal/models"
	"github.com/techhub/storefront/internal/notify"
	"github.com/techhub/storefront/internal/session"
)

// Cart is the slice of the reconciliation engine the account flows drive:
// pulling the server cart after a login and dropping local state at logout.
type Cart interface {
	LoadFromServer(ctx context.Context) error
	Clear(ctx context.Context)
}

// Service sequences the authentication transitions. A login or registration
// is only complete once the session is persisted and the server cart pulled;
// a logout tears the session down locally whether or not the server heard
// about it.
type Service struct {
	auth     gateway.Auth
	sessions *session.Manager
	cart     Cart
	notifier notify.Notifier
}

func NewService(auth gateway.Auth, sessions *session.Manager, cart Cart, notifier notify.Notifier) *Service {
	return &Service{
		auth:     auth,
		sessions: sessions,
		cart:     cart,
		notifier: notifier,
	}
}

// Login authenticates against the identity collaborator, persists the
// session and syncs the server cart. A failed cart sync does not fail the
// login; the engine already surfaced the problem and keeps its prior state.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {

	user, err := s.auth.Login(ctx, req)
	if err != nil {
		s.notifier.Error(constants.MsgAuthError)

		return nil, err
	}

	if err := s.sessions.Set(ctx, *user); err != nil {
		slog.Warn("Failed to persist session", slog.String("error", err.Error()))
	}

	if err := s.cart.LoadFromServer(ctx); err != nil {
		slog.Warn("Cart sync after login failed", slog.String("error", err.Error()))
	}

	return user, nil
}

// Register creates the account and then runs the same post-auth sequence as
// Login; the backend answers registration with a live session token.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	user, err := s.auth.Register(ctx, req)
	if err != nil {
		s.notifier.Error(constants.MsgServerError)

		return nil, err
	}

	if err := s.sessions.Set(ctx, *user); err != nil {
		slog.Warn("Failed to persist session", slog.String("error", err.Error()))
	}

	if err := s.cart.LoadFromServer(ctx); err != nil {
		slog.Warn("Cart sync after registration failed", slog.String("error", err.Error()))
	}

	return user, nil
}

// Logout notifies the server on a best-effort basis, then clears session and
// cart locally. The local teardown is unconditional.
func (s *Service) Logout(ctx context.Context) {

	s.auth.Logout(ctx)

	if err := s.sessions.Clear(ctx); err != nil {
		slog.Warn("Failed to clear persisted session", slog.String("error", err.Error()))
	}

	s.cart.Clear(ctx)
}

// Current exposes the session principal for UI surfaces.
func (s *Service) Current() *models.User {
	return s.sessions.Current()
}
