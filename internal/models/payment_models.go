package models

import "time"

// Payment is an immutable record of a completed payment transaction.
type Payment struct {
	ID            string    `json:"id"`
	ParcelID      string    `json:"parcelId"`
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paid_at"`
	PaidAtString  string    `json:"paid_at_string"`
}

// ConfirmPaymentRequest carries the client-reported outcome of a payment:
// the parcel it settles plus the gateway transaction details to record.
type ConfirmPaymentRequest struct {
	ParcelID      string  `json:"parcelId" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
	TransactionID string  `json:"transactionId" validate:"required"`
}

// ConfirmPaymentResponse is returned after a payment is recorded.
type ConfirmPaymentResponse struct {
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
}

// PaymentIntentRequest asks the payment provider to prepare a charge for
// the given amount, expressed in the major currency unit.
type PaymentIntentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// PaymentIntentResponse carries the provider secret the client needs to
// complete the charge.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
