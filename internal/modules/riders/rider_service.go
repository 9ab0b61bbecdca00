package riders

import (
	"context"
	"fmt"
	"log"

	"parcel-delivery/internal/models"
	"parcel-delivery/pkg/email"
)

// ServiceInterface defines the contract for the rider service.
type ServiceInterface interface {
	CreateRider(ctx context.Context, req models.CreateRiderRequest) (*models.Rider, error)
	ListPending(ctx context.Context) ([]*models.Rider, error)
	ListActive(ctx context.Context) ([]*models.Rider, error)
	ListAvailable(ctx context.Context, district string) ([]*models.Rider, error)
	UpdateStatus(ctx context.Context, riderID string, status string) (*models.UpdateRiderStatusResponse, error)
}

// Service implements the rider service logic.
type Service struct {
	repo     RepositoryInterface
	notifier email.ServiceInterface
}

// NewService creates a new rider service.
func NewService(repo RepositoryInterface, notifier email.ServiceInterface) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// CreateRider files a rider application. Applications always start
// pending, whatever the client sent.
func (s *Service) CreateRider(ctx context.Context, req models.CreateRiderRequest) (*models.Rider, error) {
	rider, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service.CreateRider: %w", err)
	}
	return rider, nil
}

// ListPending retrieves the admin review queue.
func (s *Service) ListPending(ctx context.Context) ([]*models.Rider, error) {
	return s.repo.ListByStatus(ctx, models.RiderStatusPending)
}

// ListActive retrieves the active rider roster.
func (s *Service) ListActive(ctx context.Context) ([]*models.Rider, error) {
	return s.repo.ListByStatus(ctx, models.RiderStatusActive)
}

// ListAvailable retrieves active riders, narrowed to a district when one
// is given.
func (s *Service) ListAvailable(ctx context.Context, district string) ([]*models.Rider, error) {
	if district == "" {
		return s.repo.ListByStatus(ctx, models.RiderStatusActive)
	}
	return s.repo.ListAvailable(ctx, district)
}

// UpdateStatus transitions a rider application. Activation also grants
// the linked user the rider role and sends a best-effort approval email;
// repeating an activation leaves the same end state.
func (s *Service) UpdateStatus(ctx context.Context, riderID string, status string) (*models.UpdateRiderStatusResponse, error) {
	switch status {
	case models.RiderStatusActive, models.RiderStatusCancelled:
	default:
		return nil, models.ErrInvalidStatus
	}

	activating := status == models.RiderStatusActive
	rider, err := s.repo.UpdateStatus(ctx, riderID, status, activating)
	if err != nil {
		return nil, err
	}

	if activating {
		// The approval mail must never fail the activation.
		if err := s.notifier.SendRiderApproved(ctx, rider.Email); err != nil {
			log.Printf("rider approval mail to %s failed: %v", rider.Email, err)
		}
	}

	return &models.UpdateRiderStatusResponse{Success: true, ModifiedCount: 1}, nil
}
