package token

import (
	"errors"
	"time"

	domain "virtualboard/authapi/internal/domain/auth"
	usecase "virtualboard/authapi/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the lifetime of every issued token.
const TTL = 24 * time.Hour

// JWTManager issues and validates JWT tokens.
type JWTManager struct {
	secret  []byte
	issuer  string
	nowFunc func() time.Time
}

// NewJWTManager constructs a manager with the provided secret and issuer.
func NewJWTManager(secret, issuer string) *JWTManager {
	return &JWTManager{
		secret:  []byte(secret),
		issuer:  issuer,
		nowFunc: time.Now,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// Claims represents token claims.
type Claims struct {
	UserID   int64    `json:"userId"`
	Username string   `json:"username"`
	Boards   []string `json:"boards"`
	jwt.RegisteredClaims
}

// Issue creates a signed JWT carrying the claim set, valid for TTL.
func (m *JWTManager) Issue(c domain.Claims) (string, error) {
	now := m.nowFunc().UTC()
	boards := c.Boards
	if boards == nil {
		boards = []string{}
	}
	claims := Claims{
		UserID:   c.UserID,
		Username: c.Username,
		Boards:   boards,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and validates the token returning its claim set when valid.
func (m *JWTManager) Validate(tokenString string) (domain.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.nowFunc),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return domain.Claims{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Claims{}, errors.New("invalid token claims")
	}
	boards := claims.Boards
	if boards == nil {
		boards = []string{}
	}
	return domain.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Boards:   boards,
	}, nil
}
