package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bnema/userdir-cli/internal/domain"
)

// tokenClaims mirrors what the directory API puts into its access tokens:
// the user id as the subject plus email/role additional claims.
type tokenClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// IdentityFromToken decodes the identity carried in a bearer token. The
// signature is deliberately not verified: the client holds no signing key and
// only uses the claims for display and the admin gate.
func IdentityFromToken(token domain.Token) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, errors.New("token is empty")
	}

	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(string(token), &claims); err != nil {
		return domain.Identity{}, fmt.Errorf("parse token claims: %w", err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse token subject %q: %w", claims.Subject, err)
	}

	return domain.Identity{
		ID:    domain.UserID(id),
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
