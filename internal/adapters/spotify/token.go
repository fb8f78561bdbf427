package spotify

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/novatorem/novatorem/internal/config"
	"github.com/novatorem/novatorem/internal/core/domain"
)

// expiryMargin is subtracted from the provider-declared token lifetime so
// a token is never handed out moments before it stops working upstream.
const expiryMargin = 60 * time.Second

// TokenManager exchanges the long-lived refresh token for short-lived
// access tokens and caches them until near expiry. It is safe for
// concurrent use; readers observe either the old token or the fully
// refreshed one, never a partial update.
type TokenManager struct {
	conf         *oauth2.Config
	refreshToken string
	httpClient   *http.Client
	now          func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenManager builds a manager for the Spotify refresh-token grant.
func NewTokenManager(cfg config.SpotifyConfig, httpClient *http.Client) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &TokenManager{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
		},
		refreshToken: cfg.RefreshToken,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

// AccessToken returns a valid access token, refreshing only when the
// cached one is missing or inside the expiry margin. A failed refresh is
// a *domain.AuthError; nothing is cached in that case, so the next
// request retries the exchange from scratch.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.now().Before(m.expiry) {
		return m.token, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	src := m.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: m.refreshToken})
	tok, err := src.Token()
	if err != nil {
		return "", &domain.AuthError{Provider: domain.ProviderSpotify, Err: err}
	}
	if tok.AccessToken == "" {
		return "", &domain.AuthError{Provider: domain.ProviderSpotify, Err: errEmptyAccessToken}
	}

	m.token = tok.AccessToken
	m.expiry = tok.Expiry.Add(-expiryMargin)
	if tok.Expiry.IsZero() {
		// No declared lifetime; Spotify tokens last an hour.
		m.expiry = m.now().Add(time.Hour - expiryMargin)
	}

	return m.token, nil
}

// Invalidate drops the cached token, forcing a refresh on the next call.
// Used after the API rejects a request with 401.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.token = ""
	m.expiry = time.Time{}
	m.mu.Unlock()
}
