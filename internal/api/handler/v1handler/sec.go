package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"upc/internal/config"
	"upc/pkg/domain"
)

type userIDContextKey struct{}

// SecOptions holds the key material used to verify bearer tokens.
type SecOptions struct {
	// PublicKeyPEM is the PEM-encoded RSA public key matching the key
	// tokens are signed with.
	PublicKeyPEM []byte
}

// NewSecOptions constructs SecOptions from the application configuration.
func NewSecOptions(cfg *config.Config) *SecOptions {
	return &SecOptions{
		PublicKeyPEM: []byte(cfg.JWT.PublicKey),
	}
}

// Authenticator verifies RS256-signed bearer tokens and resolves the
// authenticated user from the token subject.
type Authenticator struct {
	key *rsa.PublicKey
}

// NewAuthenticator parses the configured public key and returns an
// Authenticator ready to guard handlers.
func NewAuthenticator(opts *SecOptions) (*Authenticator, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(opts.PublicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &Authenticator{key: key}, nil
}

// Authenticate validates the Authorization header of the request and returns
// the user ID carried in the token subject.
func (a *Authenticator) Authenticate(r *http.Request) (domain.UserID, error) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return domain.UserID{}, fmt.Errorf("missing bearer token")
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return domain.UserID{}, fmt.Errorf("could not verify token: %w", err)
	}

	userID, err := domain.ParseUserID(claims.Subject)
	if err != nil {
		return domain.UserID{}, fmt.Errorf("invalid token subject: %w", err)
	}

	return userID, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated user ID in the request context for handlers to read back
// via GetUserIDFromContext.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.Authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")

			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext returns the authenticated user ID stored by Middleware.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	userID, _ := ctx.Value(userIDContextKey{}).(domain.UserID)

	return userID
}
