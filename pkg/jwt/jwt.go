package jwt

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrUnauthorizedParty = errors.New("token issued for an unauthorized party")
)

// Verifier validates Clerk session tokens (RS256, keys from JWKS)
type Verifier struct {
	keys              KeySource
	authorizedParties []string
	leeway            time.Duration
}

// NewVerifier creates a verifier. An empty authorizedParties list disables the azp check.
func NewVerifier(keys KeySource, authorizedParties []string, leeway time.Duration) *Verifier {
	return &Verifier{
		keys:              keys,
		authorizedParties: authorizedParties,
		leeway:            leeway,
	}
}

// Verify parses and validates the raw token and returns its claims
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("missing kid header")
		}
		return v.keys.Key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub", ErrTokenInvalid)
	}
	if len(v.authorizedParties) > 0 && claims.AuthorizedParty != "" &&
		!slices.Contains(v.authorizedParties, claims.AuthorizedParty) {
		return nil, ErrUnauthorizedParty
	}

	return claims, nil
}
