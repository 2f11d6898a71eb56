// Package auth verifies the bearer tokens of signed-in visitors and carries
// the resulting identity through request contexts. Accounts live with the
// hosted auth backend; this package only checks what it signed.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// leeway tolerates clock skew between this service and the token issuer.
const leeway = 30 * time.Second

// Verifier checks HS256 access tokens and decides who is an admin.
type Verifier struct {
	secret []byte
	admins map[string]struct{}
}

// NewVerifier returns a Verifier for secret. adminEmails lists the accounts
// allowed into the admin surface, compared case-insensitively; when it is
// empty every signed-in user is an admin.
func NewVerifier(secret string, adminEmails []string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("auth: JWT secret is required")
	}
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &Verifier{secret: []byte(secret), admins: admins}, nil
}

// Verify parses token and returns the identity it carries. Every failure
// matches domain.ErrUnauthorized.
func (v *Verifier) Verify(token string, now time.Time) (domain.User, error) {
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		return domain.User{}, fmt.Errorf("auth: %w: %v", domain.ErrUnauthorized, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth: %w: subject is not a uuid", domain.ErrUnauthorized)
	}

	return domain.User{
		ID:      id,
		Email:   claims.Email,
		Name:    displayName(claims),
		Avatar:  claims.UserMetadata.AvatarURL,
		IsAdmin: v.IsAdmin(claims.Email),
	}, nil
}

// IsAdmin reports whether email may use the admin surface.
func (v *Verifier) IsAdmin(email string) bool {
	if len(v.admins) == 0 {
		return true
	}
	_, ok := v.admins[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Issue signs a token for user valid for ttl. It matches what the hosted
// backend issues and exists for local development and tests.
func (v *Verifier) Issue(user domain.User, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:        user.Email,
		UserMetadata: UserMetadata{Name: user.Name, AvatarURL: user.Avatar},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// displayName falls back to the local part of the email, then to "User".
func displayName(c Claims) string {
	if n := strings.TrimSpace(c.UserMetadata.Name); n != "" {
		return n
	}
	if local, _, ok := strings.Cut(c.Email, "@"); ok && local != "" {
		return local
	}
	return "User"
}
