package gateway

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/techhub/storefront/internal/errors"
	"github.com/techhub/storefront/internal/models"
)

// Payments starts PSE transactions and polls their status. Two REST calls,
// nothing more; the gateway on the other side owns the actual payment flow.
type Payments interface {
	InitiatePSE(ctx context.Context, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error)
	GetStatus(ctx context.Context, reference string) (*models.PaymentTransaction, error)
}

type payments struct {
	client    *Client
	validator *validator.Validate
}

func NewPayments(client *Client) Payments {
	return &payments{
		client:    client,
		validator: validator.New(),
	}
}

func (p *payments) InitiatePSE(ctx context.Context, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {

	if err := p.validator.Struct(req); err != nil {
		return nil, errors.ValidationError("Invalid payment request").WithError(err)
	}

	var resp models.CreatePaymentResponse

	if err := p.client.do(ctx, http.MethodPost, "/payments/pse", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (p *payments) GetStatus(ctx context.Context, reference string) (*models.PaymentTransaction, error) {

	if reference == "" {
		return nil, errors.BadRequestError("Payment reference is required")
	}

	var resp models.PaymentTransaction

	if err := p.client.do(ctx, http.MethodGet, "/payments/status/"+reference, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
