package auth

import (
	"errors"
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// AdminClaims is the payload of the session token issued by the admin API.
type AdminClaims struct {
	Username    string      `json:"username"`
	Role        domain.Role `json:"role"`
	Permissions []string    `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenDecoder reads session token claims. Signatures are not verified here: the admin
// API verifies every request, the dashboard only needs the claims to render and gate.
type TokenDecoder struct {
	parser *jwt.Parser
}

// NewTokenDecoder builds a decoder.
func NewTokenDecoder() *TokenDecoder {
	return &TokenDecoder{parser: jwt.NewParser()}
}

// Decode turns a token into the identity it carries. It never panics; any malformed
// input yields an error.
func (d *TokenDecoder) Decode(token string) (id *domain.AdminIdentity, err error) {
	defer func() {
		if r := recover(); r != nil {
			id, err = nil, fmt.Errorf("decode token: %v", r)
		}
	}()

	claims := &AdminClaims{}
	if _, _, err := d.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	username := claims.Username
	if username == "" {
		username = claims.Subject
	}
	if username == "" {
		return nil, errors.New("decode token: missing username")
	}

	id = &domain.AdminIdentity{
		Username:    username,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return id, nil
}
