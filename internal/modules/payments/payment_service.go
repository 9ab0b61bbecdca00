package payments

import (
	"context"
	"fmt"
	"time"

	"parcel-delivery/internal/models"
	"parcel-delivery/pkg/payment"
)

// ServiceInterface defines the contract for the payment service.
type ServiceInterface interface {
	ListPayments(ctx context.Context, email string) ([]*models.Payment, error)
	ConfirmPayment(ctx context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResponse, error)
	CreatePaymentIntent(ctx context.Context, amount float64) (string, error)
}

// Service implements the payment service logic.
type Service struct {
	repo     RepositoryInterface
	provider payment.ServiceInterface
}

// NewService creates a new payment service.
func NewService(repo RepositoryInterface, provider payment.ServiceInterface) *Service {
	return &Service{repo: repo, provider: provider}
}

// ListPayments retrieves the payment history for an email, most recent
// first.
func (s *Service) ListPayments(ctx context.Context, email string) ([]*models.Payment, error) {
	payments, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service.ListPayments: %w", err)
	}
	return payments, nil
}

// ConfirmPayment records a completed gateway transaction: the parcel is
// marked paid and an immutable payment row is written. Duplicate
// confirmations for the same parcel each record their own payment row;
// the status flip is idempotent.
func (s *Service) ConfirmPayment(ctx context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResponse, error) {
	paidAt := time.Now().UTC()
	paidAtString := paidAt.Format(time.RFC1123)

	paymentID, err := s.repo.RecordPayment(ctx, req, paidAt, paidAtString)
	if err != nil {
		return nil, err
	}
	return &models.ConfirmPaymentResponse{
		Message:    "payment recorded",
		InsertedID: paymentID,
	}, nil
}

// CreatePaymentIntent asks the payment provider to prepare a charge and
// returns the client secret.
func (s *Service) CreatePaymentIntent(ctx context.Context, amount float64) (string, error) {
	secret, err := s.provider.CreatePaymentIntent(ctx, amount)
	if err != nil {
		return "", fmt.Errorf("service.CreatePaymentIntent: %w", err)
	}
	return secret, nil
}
