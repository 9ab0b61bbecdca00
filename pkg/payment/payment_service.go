package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

// ServiceInterface defines the contract for a payment processing service.
type ServiceInterface interface {
	CreatePaymentIntent(ctx context.Context, amount float64) (string, error)
}

// StripeService creates payment intents through the Stripe API and hands
// the client secret back to the caller.
type StripeService struct{}

// NewStripeService configures the Stripe SDK with the given secret key.
func NewStripeService(apiKey string) *StripeService {
	stripe.Key = apiKey
	return &StripeService{}
}

// CreatePaymentIntent prepares a charge for the given amount (major
// currency units) and returns the intent's client secret.
func (s *StripeService) CreatePaymentIntent(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("invalid payment amount: %v", amount)
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("payment.CreatePaymentIntent: %w", err)
	}
	return intent.ClientSecret, nil
}

// toMinorUnits converts a major-unit amount to Stripe's smallest currency
// unit. Rounding, not truncation: amounts like 19.99 have no exact float64
// representation and flooring them would shave a cent off the charge.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
