// Package authtest mints session tokens shaped like the ones the admin API issues.
package authtest

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/astro-admin/internal/auth"
	"github.com/spec-kit/astro-admin/internal/domain"
)

const signingKey = "authtest-signing-key"

// MintToken signs a token for username that expires at exp. A zero exp omits the claim.
func MintToken(t testing.TB, username string, role domain.Role, permissions []string, exp time.Time) string {
	t.Helper()

	claims := auth.AdminClaims{
		Username:    username,
		Role:        role,
		Permissions: permissions,
	}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
