package parcels

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-delivery/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the parcel repository.
type RepositoryInterface interface {
	Create(ctx context.Context, req models.CreateParcelRequest, trackingID string) (*models.Parcel, error)
	FindByID(ctx context.Context, parcelID string) (*models.Parcel, error)
	List(ctx context.Context, filter models.ParcelFilter) ([]*models.Parcel, error)
	Delete(ctx context.Context, parcelID string) (int64, error)
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new parcel repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const parcelColumns = `id, tracking_id, title, parcel_type, weight_kg,
		sender_name, sender_region, sender_address,
		receiver_name, receiver_region, receiver_address,
		cost, created_by, payment_status, delivery_status, created_at`

// Create inserts a new parcel and returns the stored record.
func (r *Repository) Create(ctx context.Context, req models.CreateParcelRequest, trackingID string) (*models.Parcel, error) {
	query := `
		INSERT INTO parcels (tracking_id, title, parcel_type, weight_kg,
			sender_name, sender_region, sender_address,
			receiver_name, receiver_region, receiver_address,
			cost, created_by, payment_status, delivery_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'unpaid', 'pending')
		RETURNING ` + parcelColumns

	row := r.db.QueryRow(ctx, query, trackingID, req.Title, req.ParcelType, req.WeightKg,
		req.SenderName, req.SenderRegion, req.SenderAddress,
		req.ReceiverName, req.ReceiverRegion, req.ReceiverAddress,
		req.Cost, req.CreatedBy)
	parcel, err := scanParcel(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateParcel: %w", err)
	}
	return parcel, nil
}

// scanParcel is a helper function to scan a row into a Parcel model.
func scanParcel(row pgx.Row) (*models.Parcel, error) {
	var p models.Parcel
	err := row.Scan(
		&p.ID,
		&p.TrackingID,
		&p.Title,
		&p.ParcelType,
		&p.WeightKg,
		&p.SenderName,
		&p.SenderRegion,
		&p.SenderAddress,
		&p.ReceiverName,
		&p.ReceiverRegion,
		&p.ReceiverAddress,
		&p.Cost,
		&p.CreatedBy,
		&p.PaymentStatus,
		&p.DeliveryStatus,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan parcel: %w", err)
	}
	return &p, nil
}

// FindByID retrieves a single parcel by its ID.
func (r *Repository) FindByID(ctx context.Context, parcelID string) (*models.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE id = $1`
	row := r.db.QueryRow(ctx, query, parcelID)
	parcel, err := scanParcel(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindParcelByID: %w", err)
	}
	return parcel, nil
}

// List retrieves parcels matching the optional equality filters, newest
// first.
func (r *Repository) List(ctx context.Context, filter models.ParcelFilter) ([]*models.Parcel, error) {
	var conds []string
	var args []any
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		conds = append(conds, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		conds = append(conds, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if filter.DeliveryStatus != "" {
		args = append(args, filter.DeliveryStatus)
		conds = append(conds, fmt.Sprintf("delivery_status = $%d", len(args)))
	}

	query := `SELECT ` + parcelColumns + ` FROM parcels`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.ListParcels.Query: %w", err)
	}
	defer rows.Close()

	parcels := []*models.Parcel{}
	for rows.Next() {
		parcel, err := scanParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListParcels.scanParcel: %w", err)
		}
		parcels = append(parcels, parcel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListParcels.rows: %w", err)
	}
	return parcels, nil
}

// Delete removes a parcel by ID and reports how many rows were removed.
func (r *Repository) Delete(ctx context.Context, parcelID string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM parcels WHERE id = $1`, parcelID)
	if err != nil {
		return 0, fmt.Errorf("repository.DeleteParcel: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
