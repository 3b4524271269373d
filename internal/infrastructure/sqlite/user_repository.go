package sqlite

import (
	"context"
	"database/sql"
	"errors"

	domain "virtualboard/authapi/internal/domain/auth"
)

// UserRepository persists users in SQLite.
type UserRepository struct {
	db *sql.DB
}

var _ domain.UserRepository = (*UserRepository)(nil)

// Create inserts a new user record and stores the generated id on user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
INSERT INTO users (username, password_hash, created_at)
VALUES (?, ?, ?)
RETURNING id
`
	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		toMillis(user.CreatedAt),
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// GetByUsername fetches a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
SELECT id, username, password_hash, created_at
FROM users WHERE username = ?
`
	var (
		u         domain.User
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.CreatedAt = fromMillis(createdAt)
	return &u, nil
}
