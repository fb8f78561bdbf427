package lastfm

import (
	"strconv"
	"strings"
	"time"

	"github.com/novatorem/novatorem/internal/core/domain"
)

// placeholderHash appears in the artwork URL Last.fm serves when it has
// no real album art for a track.
const placeholderHash = "2a96cbd8b46e442fc41c2b86b821562f"

var imageSizePriority = []string{"extralarge", "large", "medium", "small"}

func mapSnapshot(tr lastfmTrack) domain.TrackSnapshot {
	artistName := extractArtistName(tr.Artist)

	snapshot := domain.TrackSnapshot{
		Title:      tr.Name,
		Artist:     artistName,
		Album:      tr.Album.Text,
		ArtworkURL: extractImageURL(tr.Image),
		TrackURL:   tr.URL,
		ArtistURL:  extractArtistURL(tr.Artist, artistName),
		IsPlaying:  tr.Attr.NowPlaying == "true",
		Provider:   domain.ProviderLastFM,
	}

	if tr.Date != nil {
		if uts, err := strconv.ParseInt(tr.Date.UTS, 10, 64); err == nil {
			playedAt := time.Unix(uts, 0).UTC()
			snapshot.PlayedAt = &playedAt
		}
	}

	return snapshot.Normalize()
}

// extractImageURL returns the largest usable image, skipping Last.fm's
// placeholder art so the Deezer fallback can take over.
func extractImageURL(images []lastfmImage) string {
	for _, size := range imageSizePriority {
		for _, img := range images {
			if img.Size == size && img.URL != "" {
				return filterPlaceholder(img.URL)
			}
		}
	}
	for _, img := range images {
		if img.URL != "" {
			return filterPlaceholder(img.URL)
		}
	}
	return ""
}

func filterPlaceholder(url string) string {
	if strings.Contains(url, placeholderHash) {
		return ""
	}
	return url
}

// extractArtistName handles both response shapes: extended=1 yields a
// "name" field, the compact form a "#text" field.
func extractArtistName(artist lastfmArtist) string {
	if artist.Name != "" {
		return artist.Name
	}
	return artist.Text
}

func extractArtistURL(artist lastfmArtist, artistName string) string {
	if artist.URL != "" {
		return artist.URL
	}
	if artistName != "" {
		return "https://www.last.fm/music/" + strings.ReplaceAll(artistName, " ", "+")
	}
	return ""
}
