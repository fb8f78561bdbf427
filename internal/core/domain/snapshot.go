package domain

import "time"

// Provider identifies the upstream service a snapshot came from.
// The set is closed: adapters exist for exactly these values.
type Provider string

const (
	ProviderSpotify Provider = "spotify"
	ProviderLastFM  Provider = "lastfm"
)

// TrackSnapshot is the provider-agnostic representation of one listening
// event: either a track that is playing right now, or the most recently
// played one.
type TrackSnapshot struct {
	Title      string
	Artist     string
	Album      string // optional
	ArtworkURL string // optional
	TrackURL   string // link to the track on the source provider
	ArtistURL  string // link to the artist on the source provider

	// TrackID is the provider-native identifier, used for audio-feature
	// lookups. Empty for providers that don't expose one.
	TrackID string

	IsPlaying  bool
	ProgressMs int // only meaningful while IsPlaying
	DurationMs int

	// PlayedAt is set only for recently-played snapshots. A snapshot that
	// is currently playing never carries a historical timestamp.
	PlayedAt *time.Time

	Provider Provider
}

// Normalize enforces the snapshot invariant: currentness supersedes a
// historical timestamp, and progress is meaningless for a finished track.
func (s TrackSnapshot) Normalize() TrackSnapshot {
	if s.IsPlaying {
		s.PlayedAt = nil
	} else {
		s.ProgressMs = 0
	}
	return s
}

// AsRecentlyPlayed demotes a snapshot to recently-played semantics,
// used when a stored snapshot is served after the provider reports
// no current activity.
func (s TrackSnapshot) AsRecentlyPlayed(playedAt time.Time) TrackSnapshot {
	s.IsPlaying = false
	s.ProgressMs = 0
	if s.PlayedAt == nil {
		s.PlayedAt = &playedAt
	}
	return s
}
