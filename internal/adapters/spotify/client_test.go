package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/novatorem/novatorem/internal/config"
	"github.com/novatorem/novatorem/internal/core/domain"
)

// newTestClient wires a client against a fake API server, with a fake
// token endpoint that always issues "test-token".
func newTestClient(t *testing.T, apiHandler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(apiHandler)
	t.Cleanup(apiSrv.Close)

	cfg := config.SpotifyConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		RefreshToken: "refresh",
		TokenURL:     tokenSrv.URL,
		APIBaseURL:   apiSrv.URL,
	}
	return NewClient(cfg, nil, zap.NewNop()), apiSrv
}

func TestFetchSnapshotCurrentlyPlaying(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me/player/currently-playing" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization: got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"is_playing": true,
			"progress_ms": 34000,
			"item": {
				"id": "track-1",
				"name": "Weird Fishes",
				"duration_ms": 318000,
				"artists": [{"name": "Radiohead", "external_urls": {"spotify": "https://open.spotify.com/artist/a1"}}],
				"album": {
					"name": "In Rainbows",
					"images": [
						{"url": "https://img/large", "width": 640},
						{"url": "https://img/medium", "width": 300}
					]
				},
				"external_urls": {"spotify": "https://open.spotify.com/track/track-1"}
			}
		}`))
	})

	client, _ := newTestClient(t, handler)

	got, err := client.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.IsPlaying {
		t.Error("IsPlaying: got false, want true")
	}
	if got.PlayedAt != nil {
		t.Errorf("playing snapshot carries PlayedAt %v", got.PlayedAt)
	}
	if got.Title != "Weird Fishes" || got.Artist != "Radiohead" || got.Album != "In Rainbows" {
		t.Errorf("metadata: got %q / %q / %q", got.Title, got.Artist, got.Album)
	}
	if got.ArtworkURL != "https://img/medium" {
		t.Errorf("ArtworkURL: got %q, want medium image", got.ArtworkURL)
	}
	if got.ProgressMs != 34000 || got.DurationMs != 318000 {
		t.Errorf("progress/duration: got %d/%d", got.ProgressMs, got.DurationMs)
	}
	if got.Provider != domain.ProviderSpotify {
		t.Errorf("Provider: got %q", got.Provider)
	}
}

func TestFetchSnapshotFallsBackToRecentlyPlayed(t *testing.T) {
	recentCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me/player/currently-playing":
			w.WriteHeader(http.StatusNoContent)
		case "/me/player/recently-played":
			recentCalled = true
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"items": [
					{
						"track": {"id": "t1", "name": "Newest", "artists": [{"name": "A"}], "album": {"name": "X"}},
						"played_at": "2026-08-29T10:00:00Z"
					},
					{
						"track": {"id": "t2", "name": "Older", "artists": [{"name": "B"}], "album": {"name": "Y"}},
						"played_at": "2026-08-29T09:00:00Z"
					}
				]
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	client, _ := newTestClient(t, handler)

	got, err := client.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !recentCalled {
		t.Fatal("recently-played endpoint was not consulted")
	}
	if got.IsPlaying {
		t.Error("recently-played snapshot claims to be playing")
	}
	if got.Title != "Newest" {
		t.Errorf("Title: got %q, want the most recent item", got.Title)
	}
	if got.PlayedAt == nil {
		t.Error("recently-played snapshot is missing PlayedAt")
	}
}

func TestFetchSnapshotNoActivity(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me/player/currently-playing":
			w.WriteHeader(http.StatusNoContent)
		case "/me/player/recently-played":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items": []}`))
		}
	})

	client, _ := newTestClient(t, handler)

	_, err := client.FetchSnapshot(context.Background())
	if !errors.Is(err, domain.ErrNoActivity) {
		t.Fatalf("got %v, want ErrNoActivity", err)
	}
}

func TestFetchSnapshotProviderError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	client, _ := newTestClient(t, handler)

	_, err := client.FetchSnapshot(context.Background())

	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("got %v, want *domain.ProviderError", err)
	}
	if provErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode: got %d, want 403", provErr.StatusCode)
	}
	if errors.Is(err, domain.ErrNoActivity) {
		t.Error("provider error must not look like no-activity")
	}
}

func TestFetchSnapshotRetriesOnceAfter401(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_playing": true, "item": {"id": "t", "name": "Track", "artists": [{"name": "A"}], "album": {"name": "X"}}}`))
	})

	client, _ := newTestClient(t, handler)

	got, err := client.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("API calls: got %d, want 2 (one rejected, one retried)", calls)
	}
	if got.Title != "Track" {
		t.Errorf("Title: got %q", got.Title)
	}
}

func TestFeaturesByTrackID(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     domain.AudioFeatures
		wantErr  bool
	}{
		{
			name:   "maps real features",
			status: http.StatusOK,
			body:   `{"tempo": 144.2, "energy": 0.81, "danceability": 0.42}`,
			want:   domain.AudioFeatures{Tempo: 144.2, Energy: 0.81, Danceability: 0.42},
		},
		{
			name:   "403 degrades to defaults",
			status: http.StatusForbidden,
			want:   domain.DefaultAudioFeatures(),
		},
		{
			name:   "zeroed payload degrades to defaults",
			status: http.StatusOK,
			body:   `{"tempo": 0, "energy": 0, "danceability": 0}`,
			want:   domain.DefaultAudioFeatures(),
		},
		{
			name:    "server error is a provider error",
			status:  http.StatusBadGateway,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			client, _ := newTestClient(t, handler)
			client.maxRetries = 1
			client.baseBackoff = 1

			got, err := client.FeaturesByTrackID(context.Background(), "track-1")
			if tt.wantErr {
				var provErr *domain.ProviderError
				if !errors.As(err, &provErr) {
					t.Fatalf("got %v, want *domain.ProviderError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("features: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFeaturesByMetadata(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			q := r.URL.Query().Get("q")
			if q == "" {
				t.Error("search query is empty")
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"tracks": {"items": [
					{"id": "found-1", "name": "Everlong", "artists": [{"name": "Foo Fighters"}], "album": {"name": "The Colour and the Shape"}}
				]}
			}`))
		case "/audio-features/found-1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"tempo": 158.0, "energy": 0.9, "danceability": 0.35}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	client, _ := newTestClient(t, handler)

	got, err := client.FeaturesByMetadata(context.Background(), "Everlong", "Foo Fighters")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tempo != 158.0 {
		t.Errorf("Tempo: got %v, want 158.0", got.Tempo)
	}
}

func TestFeaturesByMetadataNoConfidentMatch(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"tracks": {"items": [
				{"id": "x", "name": "Completely Different Song", "artists": [{"name": "Someone Else"}], "album": {"name": "Z"}}
			]}
		}`))
	})

	client, _ := newTestClient(t, handler)

	_, err := client.FeaturesByMetadata(context.Background(), "Everlong", "Foo Fighters")
	if err == nil {
		t.Fatal("expected an error for an unconfident match")
	}
}
