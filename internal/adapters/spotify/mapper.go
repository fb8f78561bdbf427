package spotify

import (
	"time"

	"github.com/novatorem/novatorem/internal/core/domain"
)

// mapSnapshot converts a raw Spotify track to a domain snapshot.
// playedAt is nil for a currently-playing track.
func mapSnapshot(st spotifyTrack, isPlaying bool, progressMs int, playedAt *time.Time) domain.TrackSnapshot {
	snapshot := domain.TrackSnapshot{
		Title:      st.Name,
		Artist:     joinArtistNames(st, ", "),
		Album:      st.Album.Name,
		ArtworkURL: pickArtwork(st.Album.Images),
		TrackURL:   st.ExternalURLs["spotify"],
		TrackID:    st.ID,
		IsPlaying:  isPlaying,
		ProgressMs: progressMs,
		DurationMs: st.DurationMs,
		PlayedAt:   playedAt,
		Provider:   domain.ProviderSpotify,
	}

	if len(st.Artists) > 0 {
		snapshot.ArtistURL = st.Artists[0].ExternalURLs["spotify"]
	}

	return snapshot.Normalize()
}

// pickArtwork prefers the medium-size image (index 1 in Spotify's
// largest-first list), falling back to whatever is available.
func pickArtwork(images []spotifyImage) string {
	if len(images) > 1 {
		return images[1].URL
	}
	if len(images) == 1 {
		return images[0].URL
	}
	return ""
}

func mapFeatures(af audioFeaturesResponse) domain.AudioFeatures {
	return domain.AudioFeatures{
		Tempo:        af.Tempo,
		Energy:       af.Energy,
		Danceability: af.Danceability,
	}
}

func featuresZero(af audioFeaturesResponse) bool {
	return af.Tempo == 0 && af.Energy == 0 && af.Danceability == 0
}
