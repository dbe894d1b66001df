package port

// AuthClaims holds the verified claims of a request token issued by the
// external identity provider.
type AuthClaims struct {
	Subject string
	Email   string
	Role    string
	IsAdmin bool
}

// TokenVerifier validates a bearer token.
type TokenVerifier interface {
	Verify(token string) (*AuthClaims, error)
}
