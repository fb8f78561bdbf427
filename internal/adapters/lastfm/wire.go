package lastfm

import "encoding/json"

// Wire types for the Last.fm user.getrecenttracks response. Last.fm's
// JSON is loose: a single track may arrive as an object instead of a
// one-element array, and artist fields differ with extended=1.

type lastfmImage struct {
	Size string `json:"size"`
	URL  string `json:"#text"`
}

type lastfmArtist struct {
	Name string `json:"name"`
	Text string `json:"#text"`
	URL  string `json:"url"`
}

type lastfmAlbum struct {
	Text string `json:"#text"`
}

type lastfmDate struct {
	UTS string `json:"uts"`
}

type lastfmTrack struct {
	Name   string        `json:"name"`
	URL    string        `json:"url"`
	Artist lastfmArtist  `json:"artist"`
	Album  lastfmAlbum   `json:"album"`
	Image  []lastfmImage `json:"image"`
	Date   *lastfmDate   `json:"date"`
	Attr   struct {
		NowPlaying string `json:"nowplaying"`
	} `json:"@attr"`
}

type recentTracksResponse struct {
	RecentTracks struct {
		Track json.RawMessage `json:"track"`
	} `json:"recenttracks"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// tracks tolerates both the array and single-object shapes.
func (r recentTracksResponse) tracks() ([]lastfmTrack, error) {
	raw := r.RecentTracks.Track
	if len(raw) == 0 {
		return nil, nil
	}

	var list []lastfmTrack
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single lastfmTrack
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []lastfmTrack{single}, nil
}

// deezerSearchResponse is the subset of the Deezer track search used for
// the artwork fallback.
type deezerSearchResponse struct {
	Data []struct {
		Album struct {
			CoverBig string `json:"cover_big"`
		} `json:"album"`
	} `json:"data"`
}
