package postgres

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weatherapp/backend/internal/domain"
)

// MemoryRepository implements domain.UserRepository in process memory.
// Used when no database is reachable and in tests.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]domain.User)}
}

// CreateUser stores a new user, rejecting duplicate usernames and emails
func (r *MemoryRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return domain.User{}, &domain.DuplicateFieldError{Field: "username"}
		}
		if existing.Email == user.Email {
			return domain.User{}, &domain.DuplicateFieldError{Field: "email"}
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Username = strings.Clone(user.Username)
	user.Email = strings.Clone(user.Email)
	user.RecentSearches = cloneList(user.RecentSearches)
	user.CreatedAt = time.Now()
	r.users[user.ID] = user

	return copyUser(user), nil
}

// GetUserByID loads a user by id
func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return copyUser(user), nil
}

// GetUserByEmail loads a user by email
func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// GetRecentSearches returns a copy of the user's list
func (r *MemoryRepository) GetRecentSearches(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneList(user.RecentSearches), nil
}

// UpdateRecentSearches applies fn while holding the repository lock
func (r *MemoryRepository) UpdateRecentSearches(ctx context.Context, userID string, fn func([]string) []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.RecentSearches = cloneList(fn(cloneList(user.RecentSearches)))
	r.users[userID] = user

	return cloneList(user.RecentSearches), nil
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}

func copyUser(u domain.User) domain.User {
	u.RecentSearches = cloneList(u.RecentSearches)
	return u
}

// cloneList copies the slice and its strings so stored terms never share
// memory with a caller's buffer
func cloneList(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.Clone(s)
	}
	return out
}
