package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
)

// ErrUnknownKey means no JWKS key matches the token's kid
var ErrUnknownKey = errors.New("signing key not found in JWKS")

const (
	jwksCacheKey   = "jwks"
	jwksRefreshKey = "jwks:refreshed"

	// DefaultMinRefreshInterval bounds how often an unknown kid can trigger a refetch
	DefaultMinRefreshInterval = time.Minute
)

// KeySource resolves a token's kid into a public key
type KeySource interface {
	Key(ctx context.Context, kid string) (interface{}, error)
}

// JWKSSource fetches Clerk's JWKS and keeps it in memory for ttl
type JWKSSource struct {
	url    string
	client *http.Client
	cache  *gocache.Cache
	ttl    time.Duration

	minRefresh time.Duration
}

// NewJWKSSource creates a key source. When secretKey is set it is sent as a
// bearer token, which the Clerk backend API requires for /v1/jwks.
func NewJWKSSource(url, secretKey string, ttl time.Duration) *JWKSSource {
	client := &http.Client{Timeout: 10 * time.Second}
	if secretKey != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: secretKey,
			TokenType:   "Bearer",
		}))
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWKSSource{
		url:    url,
		client: client,
		cache:  gocache.New(ttl, 2*ttl),
		ttl:    ttl,

		minRefresh: DefaultMinRefreshInterval,
	}
}

// Key looks up kid. An unknown kid refetches the set (key rotation), at most once
// per minimum refresh interval; other misses fail without calling Clerk.
func (s *JWKSSource) Key(ctx context.Context, kid string) (interface{}, error) {
	set, err := s.keySet(ctx, false)
	if err != nil {
		return nil, err
	}

	key, ok := set.LookupKeyID(kid)
	if !ok {
		if err := s.cache.Add(jwksRefreshKey, struct{}{}, s.minRefresh); err != nil {
			return nil, ErrUnknownKey
		}
		if set, err = s.keySet(ctx, true); err != nil {
			return nil, err
		}
		if key, ok = set.LookupKeyID(kid); !ok {
			return nil, ErrUnknownKey
		}
	}

	var raw interface{}
	if err := key.Raw(&raw); err != nil {
		return nil, fmt.Errorf("failed to materialize jwk %q: %w", kid, err)
	}
	return raw, nil
}

func (s *JWKSSource) keySet(ctx context.Context, force bool) (jwk.Set, error) {
	if !force {
		if cached, found := s.cache.Get(jwksCacheKey); found {
			return cached.(jwk.Set), nil
		}
	}

	set, err := jwk.Fetch(ctx, s.url, jwk.WithHTTPClient(s.client))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jwks: %w", err)
	}
	s.cache.Set(jwksCacheKey, set, s.ttl)
	s.cache.Set(jwksRefreshKey, struct{}{}, s.minRefresh)
	return set, nil
}
