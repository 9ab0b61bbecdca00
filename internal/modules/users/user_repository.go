package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-delivery/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the user repository.
type RepositoryInterface interface {
	Create(ctx context.Context, email string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SearchByEmail(ctx context.Context, fragment string, limit int) ([]*models.User, error)
	UpdateRole(ctx context.Context, userID string, role string) error
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new user repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// uniqueViolation is the PostgreSQL SQLSTATE for a unique-index conflict.
const uniqueViolation = "23505"

// Create inserts a user with the default role. A duplicate email maps to
// ErrConflict so the service can treat the race the same as the
// read-before-write check.
func (r *Repository) Create(ctx context.Context, email string) (*models.User, error) {
	query := `
		INSERT INTO users (email, role)
		VALUES ($1, 'user')
		RETURNING id, email, role, created_at`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("repository.CreateUser: %w", err)
	}
	return user, nil
}

// scanUser is a helper function to scan a row into a User model.
func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail retrieves a user by email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, role, created_at FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindUserByEmail: %w", err)
	}
	return user, nil
}

// SearchByEmail performs a case-insensitive substring match on email,
// capped to limit results. The fragment is matched literally; LIKE
// metacharacters in it are escaped first.
func (r *Repository) SearchByEmail(ctx context.Context, fragment string, limit int) ([]*models.User, error) {
	query := `
		SELECT id, email, role, created_at
		FROM users
		WHERE email ILIKE '%' || $1 || '%'
		ORDER BY email
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, escapeLike(fragment), limit)
	if err != nil {
		return nil, fmt.Errorf("repository.SearchUsers.Query: %w", err)
	}
	defer rows.Close()

	usersFound := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.SearchUsers.scanUser: %w", err)
		}
		usersFound = append(usersFound, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.SearchUsers.rows: %w", err)
	}
	return usersFound, nil
}

// escapeLike quotes the LIKE metacharacters so a search fragment such as
// "100%" matches that literal text instead of acting as a wildcard.
func escapeLike(fragment string) string {
	return likeEscaper.Replace(fragment)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// UpdateRole sets a user's role by id.
func (r *Repository) UpdateRole(ctx context.Context, userID string, role string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, userID)
	if err != nil {
		return fmt.Errorf("repository.UpdateUserRole: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
