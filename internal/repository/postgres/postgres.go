package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weatherapp/backend/internal/domain"
)

const uniqueViolation = "23505"

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		email           TEXT NOT NULL UNIQUE,
		password_hash   TEXT NOT NULL,
		recent_searches TEXT[] NOT NULL DEFAULT '{}',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresRepository implements domain.UserRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the users table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// CreateUser inserts a new user
func (r *PostgresRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.RecentSearches == nil {
		user.RecentSearches = []string{}
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, recent_searches)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.RecentSearches,
	).Scan(&user.CreatedAt)
	if err != nil {
		if dup := duplicateField(err); dup != nil {
			return domain.User{}, dup
		}
		return domain.User{}, fmt.Errorf("postgres: failed to insert user: %w", err)
	}

	return user, nil
}

// GetUserByID loads a user by id
func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, "id", id)
}

// GetUserByEmail loads a user by email
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, "email", email)
}

func (r *PostgresRepository) getUser(ctx context.Context, column, value string) (domain.User, error) {
	// column is one of a fixed set chosen by the caller above, never user input
	query := `
		SELECT id, username, email, password_hash, recent_searches, created_at
		FROM users
		WHERE ` + column + ` = $1
	`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.RecentSearches, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("postgres: failed to query user: %w", err)
	}

	return u, nil
}

// GetRecentSearches returns the stored recent searches for a user
func (r *PostgresRepository) GetRecentSearches(ctx context.Context, userID string) ([]string, error) {
	var list []string
	err := r.pool.QueryRow(ctx, `SELECT recent_searches FROM users WHERE id = $1`, userID).Scan(&list)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query recent searches: %w", err)
	}
	return list, nil
}

// UpdateRecentSearches rewrites the list under a row lock so concurrent
// updates for the same user are applied one after another
func (r *PostgresRepository) UpdateRecentSearches(ctx context.Context, userID string, fn func([]string) []string) ([]string, error) {
	var updated []string

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var current []string
		err := tx.QueryRow(ctx,
			`SELECT recent_searches FROM users WHERE id = $1 FOR UPDATE`, userID,
		).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("postgres: failed to lock recent searches: %w", err)
		}

		updated = fn(current)

		if _, err := tx.Exec(ctx,
			`UPDATE users SET recent_searches = $2 WHERE id = $1`, userID, updated,
		); err != nil {
			return fmt.Errorf("postgres: failed to update recent searches: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// duplicateField maps a unique violation to the field that clashed
func duplicateField(err error) *domain.DuplicateFieldError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return &domain.DuplicateFieldError{Field: "email"}
	case strings.Contains(pgErr.ConstraintName, "username"):
		return &domain.DuplicateFieldError{Field: "username"}
	default:
		return &domain.DuplicateFieldError{Field: "user"}
	}
}
