package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcel-delivery/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the payment repository.
type RepositoryInterface interface {
	ListByEmail(ctx context.Context, email string) ([]*models.Payment, error)
	RecordPayment(ctx context.Context, req models.ConfirmPaymentRequest, paidAt time.Time, paidAtString string) (string, error)
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new payment repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// ListByEmail retrieves a caller's payment history, most recent first.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	query := `
		SELECT id, parcel_id, email, amount, payment_method, transaction_id, paid_at, paid_at_string
		FROM payments
		WHERE email = $1
		ORDER BY paid_at DESC`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("repository.ListPayments.Query: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListPayments.scanPayment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListPayments.rows: %w", err)
	}
	return payments, nil
}

// scanPayment is a helper function to scan a row into a Payment model.
func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.ParcelID,
		&p.Email,
		&p.Amount,
		&p.PaymentMethod,
		&p.TransactionID,
		&p.PaidAt,
		&p.PaidAtString,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return &p, nil
}

// RecordPayment marks the parcel paid and inserts the payment record in a
// single transaction, so a payment row never exists without the status
// flip (and vice versa). Returns the inserted payment id.
func (r *Repository) RecordPayment(ctx context.Context, req models.ConfirmPaymentRequest, paidAt time.Time, paidAtString string) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("repository.RecordPayment.Begin: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx,
		`UPDATE parcels SET payment_status = 'paid' WHERE id = $1`, req.ParcelID)
	if err != nil {
		return "", fmt.Errorf("repository.RecordPayment.UpdateParcel: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return "", models.ErrNotFound
	}

	var paymentID string
	err = tx.QueryRow(ctx, `
		INSERT INTO payments (parcel_id, email, amount, payment_method, transaction_id, paid_at, paid_at_string)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		req.ParcelID, req.Email, req.Amount, req.PaymentMethod, req.TransactionID, paidAt, paidAtString,
	).Scan(&paymentID)
	if err != nil {
		return "", fmt.Errorf("repository.RecordPayment.InsertPayment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("repository.RecordPayment.Commit: %w", err)
	}
	return paymentID, nil
}
