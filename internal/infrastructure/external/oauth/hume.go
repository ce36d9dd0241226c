package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/peergrouptools/peergroup-api/pkg/config"
)

// HumeToken is a short-lived access token for the Hume EVI browser client
type HumeToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// HumeProvider exchanges the Hume API key and secret for access tokens
// (OAuth2 client credentials, credentials sent as HTTP Basic)
type HumeProvider struct {
	config     *clientcredentials.Config
	httpClient *http.Client
	maxRetries uint64
	now        func() time.Time
}

// NewHumeProvider creates a new Hume token provider
func NewHumeProvider(cfg *config.HumeConfig, httpClient *http.Client) *HumeProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &HumeProvider{
		config: &clientcredentials.Config{
			ClientID:     cfg.APIKey,
			ClientSecret: cfg.SecretKey,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
		maxRetries: 2,
		now:        time.Now,
	}
}

// FetchToken requests a fresh token. Vendor 4xx answers are not retried.
func (h *HumeProvider) FetchToken(ctx context.Context) (*HumeToken, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, h.httpClient)

	var token *oauth2.Token
	operation := func() error {
		t, err := h.config.Token(ctx)
		if err != nil {
			var re *oauth2.RetrieveError
			if errors.As(err, &re) && re.Response != nil && re.Response.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		token = t
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), h.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("failed to fetch hume token: %w", err)
	}

	expiresIn := token.ExpiresIn
	if expiresIn == 0 && !token.Expiry.IsZero() {
		expiresIn = int64(token.Expiry.Sub(h.now()).Round(time.Second).Seconds())
	}
	return &HumeToken{
		AccessToken: token.AccessToken,
		TokenType:   token.Type(),
		ExpiresIn:   expiresIn,
	}, nil
}
