package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentApproved  PaymentStatus = "APPROVED"
	PaymentRejected  PaymentStatus = "REJECTED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// CreatePaymentRequest starts a PSE transaction.
type CreatePaymentRequest struct {
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Currency   string  `json:"currency" validate:"required,len=3"`
	BuyerEmail string  `json:"buyerEmail" validate:"required,email"`
	ReturnURL  string  `json:"returnUrl" validate:"required,url"`
}

type CreatePaymentResponse struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirectUrl"`
}

type PaymentTransaction struct {
	ID               int64         `json:"id"`
	Reference        string        `json:"reference"`
	Amount           float64       `json:"amount"`
	Currency         string        `json:"currency"`
	Status           PaymentStatus `json:"status"`
	BuyerEmail       string        `json:"buyerEmail"`
	PSETransactionID string        `json:"pseTransactionId,omitempty"`
	PSEBankCode      string        `json:"pseBankCode,omitempty"`
	RedirectURL      string        `json:"redirectUrl,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}
