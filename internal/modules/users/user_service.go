package users

import (
	"context"
	"errors"
	"fmt"

	"parcel-delivery/internal/models"
)

// searchLimit caps the user search results.
const searchLimit = 10

// ServiceInterface defines the contract for the user service.
type ServiceInterface interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.CreateUserResponse, error)
	SearchUsers(ctx context.Context, fragment string) ([]*models.User, error)
	UpdateRole(ctx context.Context, userID string, role string) error
	GetRoleByEmail(ctx context.Context, email string) (string, error)
}

// Service implements the user service logic.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new user service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// CreateUser registers an identity on first sign-in. When the email is
// already registered nothing is written and the existing registration is
// acknowledged, which makes the operation idempotent by email.
func (s *Service) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.CreateUserResponse, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return &models.CreateUserResponse{
			Message:  "user already exists",
			Inserted: false,
			User:     existing,
		}, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("service.CreateUser: %w", err)
	}

	user, err := s.repo.Create(ctx, req.Email)
	if err != nil {
		// A concurrent sign-in can slip between the check and the insert;
		// the unique index reports it and we answer as the check would have.
		if errors.Is(err, models.ErrConflict) {
			return &models.CreateUserResponse{Message: "user already exists", Inserted: false}, nil
		}
		return nil, fmt.Errorf("service.CreateUser: %w", err)
	}

	return &models.CreateUserResponse{
		Message:  "user created",
		Inserted: true,
		User:     user,
	}, nil
}

// SearchUsers performs a capped, case-insensitive substring search on
// email.
func (s *Service) SearchUsers(ctx context.Context, fragment string) ([]*models.User, error) {
	return s.repo.SearchByEmail(ctx, fragment, searchLimit)
}

// UpdateRole sets a user's role. Only admin and user are accepted; the
// rider role is granted through rider activation, never directly.
func (s *Service) UpdateRole(ctx context.Context, userID string, role string) error {
	switch role {
	case models.RoleAdmin, models.RoleUser:
	default:
		return models.ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, userID, role)
}

// GetRoleByEmail reports a user's effective role, defaulting to user when
// the stored role is blank.
func (s *Service) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user.Role == "" {
		return models.RoleUser, nil
	}
	return user.Role, nil
}
