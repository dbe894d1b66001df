// Package jwtverify validates HS256 access tokens issued by the identity provider.
package jwtverify

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"tradeflow/internal/config"
	"tradeflow/internal/domain"
	"tradeflow/internal/port"
)

// serviceRole is the provider's role for trusted backend callers.
const serviceRole = "service_role"

type appMetadata struct {
	Role string `json:"role"`
}

type claims struct {
	jwt.RegisteredClaims
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	AppMetadata appMetadata `json:"app_metadata"`
}

// Verifier checks token signature, expiry and, when configured, issuer.
type Verifier struct {
	secret    []byte
	issuer    string
	adminRole string
}

var _ port.TokenVerifier = (*Verifier)(nil)

// NewVerifier creates a Verifier from auth settings.
func NewVerifier(cfg *config.AuthConfig) *Verifier {
	return &Verifier{
		secret:    []byte(cfg.JWTSecret),
		issuer:    cfg.Issuer,
		adminRole: cfg.AdminRole,
	}
}

func (v *Verifier) Verify(tokenString string) (*port.AuthClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if !token.Valid || c.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	role := c.AppMetadata.Role
	if role == "" {
		role = c.Role
	}
	return &port.AuthClaims{
		Subject: c.Subject,
		Email:   c.Email,
		Role:    role,
		IsAdmin: c.Role == serviceRole || (v.adminRole != "" && c.AppMetadata.Role == v.adminRole),
	}, nil
}
