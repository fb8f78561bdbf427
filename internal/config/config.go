// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr     = ":8080"
	defaultCacheTTL = 5 * time.Second
	defaultThemeDir = "themes"
	defaultDBPath   = "novatorem.db"
)

// SpotifyConfig holds the credentials for the Spotify refresh-token flow.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// TokenURL and APIBaseURL are overridable so tests can point the
	// adapter at a fake server.
	TokenURL   string
	APIBaseURL string
}

// IsConfigured reports whether all required Spotify credentials are set.
func (c SpotifyConfig) IsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// LastFMConfig holds the Last.fm API key and target user.
type LastFMConfig struct {
	APIKey   string
	Username string

	APIBaseURL      string
	DeezerSearchURL string
}

// IsConfigured reports whether all required Last.fm credentials are set.
func (c LastFMConfig) IsConfigured() bool {
	return c.APIKey != "" && c.Username != ""
}

// Config is the full application configuration.
type Config struct {
	Addr     string
	CacheTTL time.Duration
	ThemeDir string
	DBPath   string

	LogLevel string
	LogFile  string

	Spotify SpotifyConfig
	LastFM  LastFMConfig
}

// Load reads configuration from a .env file (if present) and the process
// environment. Missing optional values get defaults; provider credential
// presence is decided later by the resolver, not here.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:     defaultAddr,
		CacheTTL: defaultCacheTTL,
		ThemeDir: envOr("THEMES_DIR", defaultThemeDir),
		DBPath:   envOr("SNAPSHOT_DB", defaultDBPath),
		LogLevel: envOr("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_SECRET_ID"),
			RefreshToken: os.Getenv("SPOTIFY_REFRESH_TOKEN"),
			TokenURL:     "https://accounts.spotify.com/api/token",
			APIBaseURL:   "https://api.spotify.com/v1",
		},
		LastFM: LastFMConfig{
			APIKey:          os.Getenv("LAST_FM_API_KEY"),
			Username:        os.Getenv("LAST_FM_USERNAME"),
			APIBaseURL:      "https://ws.audioscrobbler.com/2.0/",
			DeezerSearchURL: "https://api.deezer.com/search",
		},
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.CacheTTL = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
