package domain

import (
	"context"
)

// UserRepository defines the interface for user persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type UserRepository interface {
	// CreateUser persists a new user, returning *DuplicateFieldError on a unique clash
	CreateUser(ctx context.Context, user User) (User, error)

	// GetUserByID loads a user or returns ErrUserNotFound
	GetUserByID(ctx context.Context, id string) (User, error)

	// GetUserByEmail loads a user or returns ErrUserNotFound
	GetUserByEmail(ctx context.Context, email string) (User, error)

	// GetRecentSearches returns the stored list, most recent first
	GetRecentSearches(ctx context.Context, userID string) ([]string, error)

	// UpdateRecentSearches applies fn to the stored list and saves the result.
	// Implementations serialize concurrent updates for the same user.
	UpdateRecentSearches(ctx context.Context, userID string, fn func([]string) []string) ([]string, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
