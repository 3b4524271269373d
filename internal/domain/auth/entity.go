package auth

import (
	"errors"
	"time"
)

var (
	// ErrMissingCredentials indicates the username or password was omitted.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrPasswordTooLong indicates the password exceeds the hashing input limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken signals a duplicate username registration.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrUserNotFound indicates missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenMissing means no bearer token accompanied the request.
	ErrTokenMissing = errors.New("token missing")
	// ErrTokenInvalid means a supplied token cannot be validated.
	ErrTokenInvalid = errors.New("invalid token")
)

// User models the authentication entity persisted in storage.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Credentials captures raw credential input for register and login.
type Credentials struct {
	Username string
	Password string
}

// Claims is the identity carried inside a bearer token.
type Claims struct {
	UserID   int64
	Username string
	// Boards is a placeholder and is always empty.
	Boards []string
}

// ClaimsFor builds the token claims for a user.
func ClaimsFor(u *User) Claims {
	return Claims{
		UserID:   u.ID,
		Username: u.Username,
		Boards:   []string{},
	}
}
