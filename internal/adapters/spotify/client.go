// Package spotify adapts the Spotify Web API to the snapshot provider
// and feature source ports.
package spotify

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

var errEmptyAccessToken = errors.New("no access token in response")

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	tokens      *TokenManager
	logger      *zap.Logger
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertions
var (
	_ ports.SnapshotProvider = (*Client)(nil)
	_ ports.FeatureSource    = (*Client)(nil)
)

// NewClient constructs a Spotify client. A nil httpClient gets a default
// with a bounded timeout; a nil logger is replaced with a nop.
func NewClient(cfg config.SpotifyConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		tokens:     NewTokenManager(cfg, httpClient),
		logger:     logger,
	}
}

// Name identifies the provider behind this adapter.
func (c *Client) Name() domain.Provider { return domain.ProviderSpotify }

// FetchSnapshot returns the currently playing track, or the most recently
// played one when nothing is playing. Returns domain.ErrNoActivity when
// the account has no playback history at all.
func (c *Client) FetchSnapshot(ctx context.Context) (domain.TrackSnapshot, error) {
	resp, err := c.apiGet(ctx, c.baseURL+"/me/player/currently-playing")
	if err != nil {
		return domain.TrackSnapshot{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		// Nothing loaded in the player; fall back to history.
	case http.StatusOK:
		var body currentlyPlayingResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return domain.TrackSnapshot{}, c.providerError(0, fmt.Errorf("currently-playing decode error: %w", err))
		}
		if body.Item != nil {
			return mapSnapshot(*body.Item, body.IsPlaying, body.ProgressMs, nil), nil
		}
	default:
		return domain.TrackSnapshot{}, c.providerError(resp.StatusCode, errors.New("currently-playing request rejected"))
	}

	return c.recentlyPlayed(ctx)
}

func (c *Client) recentlyPlayed(ctx context.Context) (domain.TrackSnapshot, error) {
	resp, err := c.apiGet(ctx, c.baseURL+"/me/player/recently-played?limit=10")
	if err != nil {
		return domain.TrackSnapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TrackSnapshot{}, c.providerError(resp.StatusCode, errors.New("recently-played request rejected"))
	}

	var body recentlyPlayedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.TrackSnapshot{}, c.providerError(0, fmt.Errorf("recently-played decode error: %w", err))
	}

	if len(body.Items) == 0 {
		return domain.TrackSnapshot{}, domain.ErrNoActivity
	}

	// Items arrive newest-first; always serve the most recent one so
	// repeated renders agree with each other.
	item := body.Items[0]
	playedAt := item.PlayedAt
	return mapSnapshot(item.Track, false, 0, &playedAt), nil
}

// FeaturesByTrackID fetches audio features for a track. An unsupported or
// missing feature set degrades to defaults instead of failing.
func (c *Client) FeaturesByTrackID(ctx context.Context, trackID string) (domain.AudioFeatures, error) {
	if trackID == "" {
		return domain.DefaultAudioFeatures(), nil
	}

	resp, err := c.apiGet(ctx, c.baseURL+"/audio-features/"+url.PathEscape(trackID))
	if err != nil {
		return domain.AudioFeatures{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// decoded below
	case http.StatusForbidden, http.StatusNotFound:
		c.logger.Debug("audio features unavailable, using defaults",
			zap.String("track_id", trackID),
			zap.Int("status", resp.StatusCode))
		return domain.DefaultAudioFeatures(), nil
	default:
		return domain.AudioFeatures{}, c.providerError(resp.StatusCode, errors.New("audio-features request rejected"))
	}

	var body audioFeaturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.AudioFeatures{}, c.providerError(0, fmt.Errorf("audio-features decode error: %w", err))
	}

	if featuresZero(body) {
		return domain.DefaultAudioFeatures(), nil
	}

	return mapFeatures(body), nil
}

// FeaturesByMetadata looks the track up by title and artist and, when a
// confident match is found, fetches its audio features. Used to enrich
// snapshots from providers that have no feature API of their own.
func (c *Client) FeaturesByMetadata(ctx context.Context, title, artist string) (domain.AudioFeatures, error) {
	track, err := c.searchTrack(ctx, title, artist)
	if err != nil {
		return domain.AudioFeatures{}, err
	}
	return c.FeaturesByTrackID(ctx, track.ID)
}

func (c *Client) searchTrack(ctx context.Context, title, artist string) (spotifyTrack, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return spotifyTrack{}, c.providerError(0, fmt.Errorf("invalid search url: %w", err))
	}

	normalizedTitle := normalizeQueryText(title)
	normalizedArtist := normalizeQueryText(artist)
	queryTitle := fallbackIfEmpty(normalizedTitle, title)
	queryArtist := fallbackIfEmpty(normalizedArtist, artist)

	query := searchURL.Query()
	query.Set("q", fmt.Sprintf("track:%s artist:%s", queryTitle, queryArtist))
	query.Set("type", "track")
	query.Set("limit", "5")
	searchURL.RawQuery = query.Encode()

	resp, err := c.apiGet(ctx, searchURL.String())
	if err != nil {
		return spotifyTrack{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return spotifyTrack{}, c.providerError(resp.StatusCode, errors.New("search request rejected"))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return spotifyTrack{}, c.providerError(0, fmt.Errorf("search decode error: %w", err))
	}

	bestScore := 0.0
	bestIndex := -1
	for i, candidate := range body.Tracks.Items {
		score, ok := trackMatchScore(title, artist, candidate)
		if ok && score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex == -1 {
		return spotifyTrack{}, fmt.Errorf("spotify adapter: no confident match for title %q artist %q", title, artist)
	}

	c.logger.Debug("matched track via search",
		zap.String("title", body.Tracks.Items[bestIndex].Name),
		zap.Float64("score", bestScore))
	return body.Tracks.Items[bestIndex], nil
}

// apiGet performs an authenticated GET. A 401 invalidates the cached
// access token and retries once with a fresh one.
func (c *Client) apiGet(ctx context.Context, rawURL string) (*http.Response, error) {
	resp, err := c.authorizedGet(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		c.logger.Debug("access token rejected, refreshing once", zap.String("url", rawURL))
		c.tokens.Invalidate()
		return c.authorizedGet(ctx, rawURL)
	}

	return resp, nil
}

func (c *Client) authorizedGet(ctx context.Context, rawURL string) (*http.Response, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, c.providerError(0, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, c.providerError(0, err)
	}
	return resp, nil
}

func (c *Client) providerError(status int, err error) error {
	return &domain.ProviderError{Provider: domain.ProviderSpotify, StatusCode: status, Err: err}
}
