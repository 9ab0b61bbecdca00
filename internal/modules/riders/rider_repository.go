package riders

import (
	"context"
	"errors"
	"fmt"

	"parcel-delivery/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the rider repository.
type RepositoryInterface interface {
	Create(ctx context.Context, req models.CreateRiderRequest) (*models.Rider, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Rider, error)
	ListAvailable(ctx context.Context, district string) ([]*models.Rider, error)
	UpdateStatus(ctx context.Context, riderID string, status string, grantRiderRole bool) (*models.Rider, error)
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new rider repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const riderColumns = `id, name, email, phone, region, district, status, created_at`

// Create inserts a rider application in the pending state.
func (r *Repository) Create(ctx context.Context, req models.CreateRiderRequest) (*models.Rider, error) {
	query := `
		INSERT INTO riders (name, email, phone, region, district, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING ` + riderColumns

	row := r.db.QueryRow(ctx, query, req.Name, req.Email, req.Phone, req.Region, req.District)
	rider, err := scanRider(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateRider: %w", err)
	}
	return rider, nil
}

// scanRider is a helper function to scan a row into a Rider model.
func scanRider(row pgx.Row) (*models.Rider, error) {
	var rd models.Rider
	err := row.Scan(
		&rd.ID,
		&rd.Name,
		&rd.Email,
		&rd.Phone,
		&rd.Region,
		&rd.District,
		&rd.Status,
		&rd.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan rider: %w", err)
	}
	return &rd, nil
}

// ListByStatus retrieves riders in the given lifecycle state, newest
// application first.
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]*models.Rider, error) {
	query := `SELECT ` + riderColumns + ` FROM riders WHERE status = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("repository.ListRidersByStatus.Query: %w", err)
	}
	defer rows.Close()
	return collectRiders(rows)
}

// ListAvailable retrieves active riders serving a district.
func (r *Repository) ListAvailable(ctx context.Context, district string) ([]*models.Rider, error) {
	query := `SELECT ` + riderColumns + ` FROM riders WHERE status = 'active' AND district = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, district)
	if err != nil {
		return nil, fmt.Errorf("repository.ListAvailableRiders.Query: %w", err)
	}
	defer rows.Close()
	return collectRiders(rows)
}

func collectRiders(rows pgx.Rows) ([]*models.Rider, error) {
	ridersFound := []*models.Rider{}
	for rows.Next() {
		rider, err := scanRider(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.collectRiders: %w", err)
		}
		ridersFound = append(ridersFound, rider)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.collectRiders.rows: %w", err)
	}
	return ridersFound, nil
}

// UpdateStatus transitions a rider and, on activation, grants the linked
// user the rider role in the same transaction. A missing user row is not
// an error; the rider may not have signed in yet.
func (r *Repository) UpdateStatus(ctx context.Context, riderID string, status string, grantRiderRole bool) (*models.Rider, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.UpdateRiderStatus.Begin: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`UPDATE riders SET status = $1 WHERE id = $2 RETURNING `+riderColumns, status, riderID)
	rider, err := scanRider(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateRiderStatus: %w", err)
	}

	if grantRiderRole {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET role = 'rider' WHERE email = $1`, rider.Email); err != nil {
			return nil, fmt.Errorf("repository.UpdateRiderStatus.GrantRole: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.UpdateRiderStatus.Commit: %w", err)
	}
	return rider, nil
}
