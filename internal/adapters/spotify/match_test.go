package spotify

import "testing"

func candidate(name string, artists ...string) spotifyTrack {
	tr := spotifyTrack{Name: name}
	for _, a := range artists {
		tr.Artists = append(tr.Artists, spotifyArtist{Name: a})
	}
	return tr
}

func TestTrackMatchScore(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		artist string
		track  spotifyTrack
		wantOK bool
	}{
		{
			name:   "exact match",
			title:  "Weird Fishes",
			artist: "Radiohead",
			track:  candidate("Weird Fishes", "Radiohead"),
			wantOK: true,
		},
		{
			name:   "matches despite remaster suffix",
			title:  "Happy",
			artist: "Pharrell Williams",
			track:  candidate("Happy (Remastered 2014)", "Pharrell Williams"),
			wantOK: true,
		},
		{
			name:   "matches multi artist candidate",
			title:  "Hung Up",
			artist: "Madonna",
			track:  candidate("Hung Up", "Madonna", "ABBA"),
			wantOK: true,
		},
		{
			name:   "rejects different track",
			title:  "Happy",
			artist: "Pharrell Williams",
			track:  candidate("Sad Song", "Other Artist"),
			wantOK: false,
		},
		{
			name:   "rejects cover by another artist",
			title:  "Hurt",
			artist: "Nine Inch Nails",
			track:  candidate("Hurt", "Johnny Cash"),
			wantOK: false,
		},
		{
			name:   "rejects empty candidate",
			title:  "Song",
			artist: "Artist",
			track:  candidate(""),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, got := trackMatchScore(tt.title, tt.artist, tt.track)
			if got != tt.wantOK {
				t.Fatalf("match: got %v (score %.2f), want %v", got, score, tt.wantOK)
			}
		})
	}
}

func TestMatchedScoreOrdersCandidates(t *testing.T) {
	exactScore, ok := trackMatchScore("Creep", "Radiohead", candidate("Creep", "Radiohead"))
	if !ok {
		t.Fatal("exact candidate should match")
	}
	variantScore, ok := trackMatchScore("Creep", "Radiohead", candidate("Creep (Acoustic Version)", "Radiohead"))
	if !ok {
		t.Fatal("variant candidate should still match")
	}
	if exactScore < variantScore {
		t.Fatalf("exact score %.2f should be at least variant score %.2f", exactScore, variantScore)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "sound", 5},
		{"same", "same", 0},
		{"ab", "", 2},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
