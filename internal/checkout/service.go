package checkout

import (
	"context"

	"github.com/techhub/storefront/internal/config"
	"github.com/techhub/storefront/internal/constants"
	"github.com/techhub/storefront/internal/errors"
	"github.com/techhub/storefront/internal/gateway"
	"github.com/techhub/storefront/internal/models"
	"github.com/techhub/storefront/internal/notify"
	"github.com/techhub/storefront/internal/session"
)

// Cart is what checkout needs from the reconciliation engine: the current
// total to charge and a way to empty the cart once payment clears.
type Cart interface {
	Items() []models.CartItem
	Total() float64
	Clear(ctx context.Context)
}

// Service drives the PSE checkout: start a transaction for the cart total,
// hand the redirect URL to the UI, and poll the reference until the bank
// answers.
type Service struct {
	payments  gateway.Payments
	sessions  *session.Manager
	cart      Cart
	notifier  notify.Notifier
	returnURL string
}

func NewService(payments gateway.Payments, sessions *session.Manager, cart Cart, notifier notify.Notifier, cfg config.Payments) *Service {
	return &Service{
		payments:  payments,
		sessions:  sessions,
		cart:      cart,
		notifier:  notifier,
		returnURL: cfg.ReturnURL,
	}
}

// Start opens a PSE transaction for the current cart total. Checkout is an
// authenticated-only surface and an empty cart has nothing to charge.
func (s *Service) Start(ctx context.Context) (*models.CreatePaymentResponse, error) {

	user := s.sessions.Current()
	if user == nil || user.Token == "" {
		return nil, errors.UnauthorizedError(constants.MsgSessionExpired)
	}

	if len(s.cart.Items()) == 0 {
		return nil, errors.BadRequestError("El carrito está vacío")
	}

	req := &models.CreatePaymentRequest{
		Amount:     s.cart.Total(),
		Currency:   constants.DefaultCurrency,
		BuyerEmail: user.Email,
		ReturnURL:  s.returnURL,
	}

	resp, err := s.payments.InitiatePSE(ctx, req)
	if err != nil {
		s.notifier.Error(constants.MsgPaymentError)

		return nil, err
	}

	return resp, nil
}

// Status polls a transaction by its reference.
func (s *Service) Status(ctx context.Context, reference string) (*models.PaymentTransaction, error) {
	return s.payments.GetStatus(ctx, reference)
}

// Confirm checks a returning transaction and settles the local side: an
// approved payment empties the cart, a rejected or cancelled one surfaces an
// error. Pending transactions change nothing; the caller polls again.
func (s *Service) Confirm(ctx context.Context, reference string) (*models.PaymentTransaction, error) {

	tx, err := s.payments.GetStatus(ctx, reference)
	if err != nil {
		s.notifier.Error(constants.MsgPaymentError)

		return nil, err
	}

	switch tx.Status {
	case models.PaymentApproved:
		s.cart.Clear(ctx)
		s.notifier.Success("Pago aprobado. ¡Gracias por tu compra!")
	case models.PaymentRejected, models.PaymentCancelled:
		s.notifier.Error(constants.MsgPaymentError)
	case models.PaymentPending:
		// Bank still deciding; nothing to settle yet.
	}

	return tx, nil
}
