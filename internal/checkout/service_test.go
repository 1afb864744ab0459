package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/techhub/storefront/internal/checkout"
	"github.com/techhub/storefront/internal/config"
	"github.com/techhub/storefront/internal/constants"
	"github.com/techhub/storefront/internal/errors"
	"github.com/techhub/storefront/internal/kvstore"
	"github.com/techhub/storefront/internal/models"
	"github.com/techhub/storefront/internal/notify"
	"github.com/techhub/storefront/internal/session"
)

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) InitiatePSE(ctx context.Context, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CreatePaymentResponse), args.Error(1)
}

func (m *mockPayments) GetStatus(ctx context.Context, reference string) (*models.PaymentTransaction, error) {
	args := m.Called(ctx, reference)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PaymentTransaction), args.Error(1)
}

type stubCart struct {
	items   []models.CartItem
	total   float64
	cleared bool
}

func (s *stubCart) Items() []models.CartItem { return s.items }

func (s *stubCart) Total() float64 { return s.total }

func (s *stubCart) Clear(_ context.Context) { s.cleared = true }

func authedSessions(t *testing.T) *session.Manager {
	t.Helper()

	ctx := context.Background()
	sessions := session.NewManager(ctx, kvstore.NewNoopStore())
	require.NoError(t, sessions.Set(ctx, models.User{Email: "cliente@techhub.co", Token: "bearer-token"}))

	return sessions
}

func filledCart() *stubCart {
	return &stubCart{
		items: []models.CartItem{{Product: models.Product{ID: 1, Price: 2500000}, Quantity: 1}},
		total: 2500000,
	}
}

func TestService_Start(t *testing.T) {
	ctx := context.Background()
	cfg := config.Payments{ReturnURL: "https://techhub.co/pago/retorno"}

	t.Run("opens transaction for the cart total", func(t *testing.T) {
		payments := new(mockPayments)
		cart := filledCart()
		svc := checkout.NewService(payments, authedSessions(t), cart, notify.NewStaticFeed(), cfg)

		expected := &models.CreatePaymentRequest{
			Amount:     2500000,
			Currency:   constants.DefaultCurrency,
			BuyerEmail: "cliente@techhub.co",
			ReturnURL:  "https://techhub.co/pago/retorno",
		}

		payments.On("InitiatePSE", ctx, expected).
			Return(&models.CreatePaymentResponse{Reference: "PSE-001", RedirectURL: "https://pse.example/pay"}, nil)

		resp, err := svc.Start(ctx)
		require.NoError(t, err)
		assert.Equal(t, "PSE-001", resp.Reference)
		payments.AssertExpectations(t)
	})

	t.Run("rejects anonymous checkout", func(t *testing.T) {
		payments := new(mockPayments)
		sessions := session.NewManager(ctx, kvstore.NewNoopStore())
		svc := checkout.NewService(payments, sessions, filledCart(), notify.NewStaticFeed(), cfg)

		_, err := svc.Start(ctx)
		require.Error(t, err)

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeUnauthorized, appErr.Code)
		payments.AssertNotCalled(t, "InitiatePSE", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		payments := new(mockPayments)
		svc := checkout.NewService(payments, authedSessions(t), &stubCart{}, notify.NewStaticFeed(), cfg)

		_, err := svc.Start(ctx)
		require.Error(t, err)
		payments.AssertNotCalled(t, "InitiatePSE", mock.Anything, mock.Anything)
	})

	t.Run("gateway failure surfaces a payment error", func(t *testing.T) {
		payments := new(mockPayments)
		feed := notify.NewStaticFeed()
		svc := checkout.NewService(payments, authedSessions(t), filledCart(), feed, cfg)

		payments.On("InitiatePSE", ctx, mock.Anything).Return(nil, errors.NetworkError(constants.MsgServerError))

		_, err := svc.Start(ctx)
		require.Error(t, err)

		active := feed.Active()
		require.Len(t, active, 1)
		assert.Equal(t, constants.MsgPaymentError, active[0].Message)
	})
}

func TestService_Confirm(t *testing.T) {
	ctx := context.Background()
	cfg := config.Payments{ReturnURL: "https://techhub.co/pago/retorno"}

	t.Run("approved payment clears the cart", func(t *testing.T) {
		payments := new(mockPayments)
		cart := filledCart()
		feed := notify.NewStaticFeed()
		svc := checkout.NewService(payments, authedSessions(t), cart, feed, cfg)

		payments.On("GetStatus", ctx, "PSE-001").
			Return(&models.PaymentTransaction{Reference: "PSE-001", Status: models.PaymentApproved}, nil)

		tx, err := svc.Confirm(ctx, "PSE-001")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentApproved, tx.Status)
		assert.True(t, cart.cleared)
		assert.Equal(t, notify.LevelSuccess, feed.Active()[0].Level)
	})

	t.Run("rejected payment keeps the cart", func(t *testing.T) {
		payments := new(mockPayments)
		cart := filledCart()
		feed := notify.NewStaticFeed()
		svc := checkout.NewService(payments, authedSessions(t), cart, feed, cfg)

		payments.On("GetStatus", ctx, "PSE-002").
			Return(&models.PaymentTransaction{Reference: "PSE-002", Status: models.PaymentRejected}, nil)

		tx, err := svc.Confirm(ctx, "PSE-002")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentRejected, tx.Status)
		assert.False(t, cart.cleared)
		assert.Equal(t, constants.MsgPaymentError, feed.Active()[0].Message)
	})

	t.Run("pending payment changes nothing", func(t *testing.T) {
		payments := new(mockPayments)
		cart := filledCart()
		feed := notify.NewStaticFeed()
		svc := checkout.NewService(payments, authedSessions(t), cart, feed, cfg)

		payments.On("GetStatus", ctx, "PSE-003").
			Return(&models.PaymentTransaction{Reference: "PSE-003", Status: models.PaymentPending}, nil)

		tx, err := svc.Confirm(ctx, "PSE-003")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPending, tx.Status)
		assert.False(t, cart.cleared)
		assert.Empty(t, feed.Active())
	})
}
