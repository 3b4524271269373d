// Package memory provides a process-local user store for development and tests.
package memory

import (
	"context"
	"sync"

	domain "virtualboard/authapi/internal/domain/auth"
)

// UserRepository keeps users in a map guarded by a mutex.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	byName map[string]domain.User
}

// NewUserRepository constructs an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{byName: make(map[string]domain.User)}
}

var _ domain.UserRepository = (*UserRepository)(nil)

// Create inserts a new user record and assigns its id.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[user.Username]; ok {
		return domain.ErrUsernameTaken
	}
	r.nextID++
	user.ID = r.nextID
	r.byName[user.Username] = *user
	return nil
}

// GetByUsername fetches a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// Close is a no-op so the repository can stand in for database-backed stores.
func (r *UserRepository) Close() error { return nil }
