package auth

import (
	"strings"

	domain "virtualboard/authapi/internal/domain/auth"
)

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Issue(claims domain.Claims) (string, error)
	Validate(token string) (domain.Claims, error)
}

// bearerToken returns the token part of an "Authorization: Bearer <token>"
// header value, or "" when the header carries no bearer token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
