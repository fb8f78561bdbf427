package spotify

import "time"

// Wire types for the Spotify Web API responses this adapter consumes.

type spotifyArtist struct {
	Name         string            `json:"name"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type spotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type spotifyAlbum struct {
	Name   string         `json:"name"`
	Images []spotifyImage `json:"images"`
}

type spotifyTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	DurationMs   int               `json:"duration_ms"`
	Artists      []spotifyArtist   `json:"artists"`
	Album        spotifyAlbum      `json:"album"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// currentlyPlayingResponse is the body of /me/player/currently-playing.
// Item is nil when nothing is loaded in the player.
type currentlyPlayingResponse struct {
	IsPlaying  bool          `json:"is_playing"`
	ProgressMs int           `json:"progress_ms"`
	Item       *spotifyTrack `json:"item"`
}

type playedItem struct {
	Track    spotifyTrack `json:"track"`
	PlayedAt time.Time    `json:"played_at"`
}

// recentlyPlayedResponse is the body of /me/player/recently-played.
type recentlyPlayedResponse struct {
	Items []playedItem `json:"items"`
}

// audioFeaturesResponse is the body of /audio-features/{id}.
type audioFeaturesResponse struct {
	Tempo        float64 `json:"tempo"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
}

// searchResponse is the body of /search?type=track.
type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}
