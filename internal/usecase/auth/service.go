package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "virtualboard/authapi/internal/domain/auth"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 10

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// Service coordinates authentication workflows between domain and infrastructure.
type Service struct {
	users    domain.UserRepository
	tokens   TokenManager
	hashCost int
	nowFunc  func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Values outside bcrypt's accepted
// range are ignored.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.hashCost = cost
		}
	}
}

// NewService constructs an auth service.
func NewService(users domain.UserRepository, tokens TokenManager, opts ...Option) *Service {
	s := &Service{
		users:    users,
		tokens:   tokens,
		hashCost: DefaultHashCost,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new user and returns the persisted entity without a password hash.
func (s *Service) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}
	if len(creds.Password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	if _, err := s.users.GetByUsername(ctx, creds.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     creds.Username,
		PasswordHash: string(hashed),
		CreatedAt:    s.nowFunc().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return sanitizeUser(user), nil
}

// Verify checks a username/password pair and returns the stored user on a match.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Service) Verify(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login validates credentials and returns a token plus user.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	if err := validateCredentials(creds); err != nil {
		return "", nil, err
	}

	user, err := s.Verify(ctx, creds)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(domain.ClaimsFor(user))
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, sanitizeUser(user), nil
}

// Authorize resolves the claims carried by an Authorization header value.
// It returns ErrTokenMissing when no bearer token is present and
// ErrTokenInvalid when the token fails verification.
func (s *Service) Authorize(header string) (domain.Claims, error) {
	token := bearerToken(header)
	if token == "" {
		return domain.Claims{}, domain.ErrTokenMissing
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	if claims.Boards == nil {
		claims.Boards = []string{}
	}
	return claims, nil
}

func validateCredentials(creds domain.Credentials) error {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return domain.ErrMissingCredentials
	}
	return nil
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}
