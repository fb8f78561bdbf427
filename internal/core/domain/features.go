package domain

// AudioFeatures are the numeric descriptors of a track that drive the
// card animation. They are resolved once per snapshot and never persisted.
type AudioFeatures struct {
	Tempo        float64 // beats per minute, > 0
	Energy       float64 // 0.0 - 1.0
	Danceability float64 // 0.0 - 1.0
}

// DefaultAudioFeatures are used whenever a provider cannot supply real
// features. 120 BPM with medium energy reads as a neutral animation.
func DefaultAudioFeatures() AudioFeatures {
	return AudioFeatures{
		Tempo:        120.0,
		Energy:       0.6,
		Danceability: 0.5,
	}
}

// CurveProfile selects the CSS easing shape for the bar animation.
type CurveProfile string

const (
	CurveEase       CurveProfile = "ease"
	CurveEaseInOut  CurveProfile = "ease-in-out"
	CurveBounce     CurveProfile = "cubic-bezier(0.45, 0.05, 0.55, 0.95)"
)

// AnimationParams are the concrete rendering parameters derived from
// audio features.
type AnimationParams struct {
	PulseIntervalMs int
	IntensityScale  float64
	Curve           CurveProfile
}

const (
	minPulseIntervalMs = 250
	maxPulseIntervalMs = 2000
)

// MapAnimation converts audio features into animation parameters.
// It is pure: identical features always yield identical parameters.
func MapAnimation(f AudioFeatures) AnimationParams {
	pulse := maxPulseIntervalMs
	if f.Tempo > 0 {
		pulse = int(60000 / f.Tempo)
	}
	if pulse < minPulseIntervalMs {
		pulse = minPulseIntervalMs
	}
	if pulse > maxPulseIntervalMs {
		pulse = maxPulseIntervalMs
	}

	curve := CurveBounce
	switch {
	case f.Danceability < 0.33:
		curve = CurveEase
	case f.Danceability < 0.66:
		curve = CurveEaseInOut
	}

	return AnimationParams{
		PulseIntervalMs: pulse,
		IntensityScale:  0.5 + clamp01(f.Energy)*0.5,
		Curve:           curve,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
