package domain

import "testing"

func TestMapAnimationPulseInterval(t *testing.T) {
	tests := []struct {
		name      string
		tempo     float64
		wantPulse int
	}{
		{name: "120 bpm is one beat per 500ms", tempo: 120, wantPulse: 500},
		{name: "extreme tempo clamps to floor", tempo: 1000, wantPulse: 250},
		{name: "crawling tempo clamps to ceiling", tempo: 10, wantPulse: 2000},
		{name: "zero tempo falls back to ceiling", tempo: 0, wantPulse: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapAnimation(AudioFeatures{Tempo: tt.tempo, Energy: 0.5, Danceability: 0.5})
			if got.PulseIntervalMs != tt.wantPulse {
				t.Errorf("PulseIntervalMs: got %d, want %d", got.PulseIntervalMs, tt.wantPulse)
			}
		})
	}
}

func TestMapAnimationIsPure(t *testing.T) {
	f := AudioFeatures{Tempo: 98.5, Energy: 0.73, Danceability: 0.41}

	first := MapAnimation(f)
	second := MapAnimation(f)

	if first != second {
		t.Errorf("identical features produced different parameters: %+v vs %+v", first, second)
	}
}

func TestMapAnimationCurveProfile(t *testing.T) {
	tests := []struct {
		danceability float64
		want         CurveProfile
	}{
		{0.1, CurveEase},
		{0.5, CurveEaseInOut},
		{0.9, CurveBounce},
	}

	for _, tt := range tests {
		got := MapAnimation(AudioFeatures{Tempo: 120, Energy: 0.5, Danceability: tt.danceability})
		if got.Curve != tt.want {
			t.Errorf("danceability %.2f: got curve %q, want %q", tt.danceability, got.Curve, tt.want)
		}
	}
}

func TestMapAnimationIntensityScale(t *testing.T) {
	low := MapAnimation(AudioFeatures{Tempo: 120, Energy: 0.1, Danceability: 0.5})
	high := MapAnimation(AudioFeatures{Tempo: 120, Energy: 0.9, Danceability: 0.5})

	if low.IntensityScale >= high.IntensityScale {
		t.Errorf("intensity is not monotonic in energy: low=%v high=%v", low.IntensityScale, high.IntensityScale)
	}

	over := MapAnimation(AudioFeatures{Tempo: 120, Energy: 3.0, Danceability: 0.5})
	if over.IntensityScale > 1.0 {
		t.Errorf("intensity exceeds scale bound: %v", over.IntensityScale)
	}
}
