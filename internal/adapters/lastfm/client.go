// Package lastfm adapts the Last.fm scrobble API to the snapshot
// provider port. Last.fm has no token exchange: the API key rides along
// as a query parameter on every call.
package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/novatorem/novatorem/internal/config"
	"github.com/novatorem/novatorem/internal/core/domain"
	"github.com/novatorem/novatorem/internal/core/ports"
)

// Client is an HTTP client for the Last.fm adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	deezerURL  string
	apiKey     string
	username   string
	logger     *zap.Logger
}

// compile-time interface assertion
var _ ports.SnapshotProvider = (*Client)(nil)

// NewClient constructs a Last.fm client.
func NewClient(cfg config.LastFMConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		deezerURL:  cfg.DeezerSearchURL,
		apiKey:     cfg.APIKey,
		username:   cfg.Username,
		logger:     logger,
	}
}

// Name identifies the provider behind this adapter.
func (c *Client) Name() domain.Provider { return domain.ProviderLastFM }

// FetchSnapshot returns the user's most recent scrobble. An entry still
// missing its end timestamp is reported as now playing. An empty scrobble
// history is domain.ErrNoActivity.
func (c *Client) FetchSnapshot(ctx context.Context) (domain.TrackSnapshot, error) {
	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.TrackSnapshot{}, c.providerError(0, fmt.Errorf("invalid api url: %w", err))
	}

	query := reqURL.Query()
	query.Set("method", "user.getrecenttracks")
	query.Set("user", c.username)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("extended", "1")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return domain.TrackSnapshot{}, c.providerError(0, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TrackSnapshot{}, c.providerError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TrackSnapshot{}, c.providerError(resp.StatusCode, errors.New("recent tracks request rejected"))
	}

	var body recentTracksResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.TrackSnapshot{}, c.providerError(0, fmt.Errorf("recent tracks decode error: %w", err))
	}

	// Last.fm reports API-level failures inside a 200 body.
	if body.Error != 0 {
		return domain.TrackSnapshot{}, c.providerError(0, fmt.Errorf("api error %d: %s", body.Error, body.Message))
	}

	tracks, err := body.tracks()
	if err != nil {
		return domain.TrackSnapshot{}, c.providerError(0, fmt.Errorf("recent tracks decode error: %w", err))
	}
	if len(tracks) == 0 {
		return domain.TrackSnapshot{}, domain.ErrNoActivity
	}

	snapshot := mapSnapshot(tracks[0])

	if snapshot.ArtworkURL == "" && snapshot.Artist != "" && snapshot.Title != "" {
		snapshot.ArtworkURL = c.deezerArtwork(ctx, snapshot.Artist, snapshot.Title)
	}

	return snapshot, nil
}

// deezerArtwork looks album art up on Deezer when Last.fm only has its
// placeholder. Strictly best-effort: any failure yields an empty URL.
func (c *Client) deezerArtwork(ctx context.Context, artist, title string) string {
	queries := []string{
		fmt.Sprintf("artist:%q track:%q", artist, title),
		artist + " " + title,
	}

	for _, q := range queries {
		if cover := c.deezerSearch(ctx, q); cover != "" {
			return cover
		}
	}
	return ""
}

func (c *Client) deezerSearch(ctx context.Context, q string) string {
	reqURL, err := url.Parse(c.deezerURL)
	if err != nil {
		return ""
	}
	query := reqURL.Query()
	query.Set("q", q)
	query.Set("limit", "1")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("deezer artwork lookup failed", zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var body deezerSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	if len(body.Data) == 0 {
		return ""
	}
	return body.Data[0].Album.CoverBig
}

func (c *Client) providerError(status int, err error) error {
	return &domain.ProviderError{Provider: domain.ProviderLastFM, StatusCode: status, Err: err}
}
