package auth

import "context"

// UserRepository defines persistence operations for auth users.
//
// Create assigns user.ID and must return ErrUsernameTaken when the username
// already exists. GetByUsername returns ErrUserNotFound for unknown names.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}
