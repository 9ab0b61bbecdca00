package parcels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcel-delivery/internal/models"

	"github.com/google/uuid"
)

// RoleLookup resolves the stored role for an email. Implemented by the
// users service; used here for the admin override on deletes.
type RoleLookup interface {
	GetRoleByEmail(ctx context.Context, email string) (string, error)
}

// ServiceInterface defines the contract for the parcel service.
type ServiceInterface interface {
	CreateParcel(ctx context.Context, req models.CreateParcelRequest) (*models.Parcel, error)
	GetParcel(ctx context.Context, parcelID string) (*models.Parcel, error)
	ListParcels(ctx context.Context, filter models.ParcelFilter) ([]*models.Parcel, error)
	DeleteParcel(ctx context.Context, parcelID string, callerEmail string) (*models.DeleteResult, error)
}

// Service implements the parcel service logic.
type Service struct {
	repo  RepositoryInterface
	roles RoleLookup
}

// NewService creates a new parcel service.
func NewService(repo RepositoryInterface, roles RoleLookup) *Service {
	return &Service{repo: repo, roles: roles}
}

// CreateParcel books a new parcel. The server assigns the tracking id and
// the initial unpaid/pending statuses.
func (s *Service) CreateParcel(ctx context.Context, req models.CreateParcelRequest) (*models.Parcel, error) {
	trackingID := newTrackingID()
	parcel, err := s.repo.Create(ctx, req, trackingID)
	if err != nil {
		return nil, fmt.Errorf("service.CreateParcel: %w", err)
	}
	return parcel, nil
}

// newTrackingID builds a human-readable tracking code, date plus a short
// random suffix.
func newTrackingID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("TRK-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

// GetParcel retrieves a single parcel.
func (s *Service) GetParcel(ctx context.Context, parcelID string) (*models.Parcel, error) {
	parcel, err := s.repo.FindByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	return parcel, nil
}

// ListParcels retrieves parcels matching the filter, newest first. Filter
// status values are validated against their vocabularies before touching
// the store.
func (s *Service) ListParcels(ctx context.Context, filter models.ParcelFilter) ([]*models.Parcel, error) {
	if filter.PaymentStatus != "" {
		switch filter.PaymentStatus {
		case models.PaymentStatusUnpaid, models.PaymentStatusPaid:
		default:
			return nil, models.ErrInvalidStatus
		}
	}
	if filter.DeliveryStatus != "" {
		switch filter.DeliveryStatus {
		case models.DeliveryStatusPending, models.DeliveryStatusActive, models.DeliveryStatusCancelled:
		default:
			return nil, models.ErrInvalidStatus
		}
	}
	return s.repo.List(ctx, filter)
}

// DeleteParcel removes a parcel. Only the booking owner or an admin may
// delete it.
func (s *Service) DeleteParcel(ctx context.Context, parcelID string, callerEmail string) (*models.DeleteResult, error) {
	parcel, err := s.repo.FindByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	if parcel.CreatedBy != callerEmail {
		role, err := s.roles.GetRoleByEmail(ctx, callerEmail)
		if err != nil || role != models.RoleAdmin {
			return nil, models.ErrForbidden
		}
	}

	deleted, err := s.repo.Delete(ctx, parcelID)
	if err != nil {
		return nil, fmt.Errorf("service.DeleteParcel: %w", err)
	}
	return &models.DeleteResult{DeletedCount: deleted}, nil
}
