package render

// Marquee describes the scroll animation for text that overflows its
// container. Disabled means the text fits and renders statically.
type Marquee struct {
	Enabled   bool
	DurationS float64
}

// marqueeFor estimates rendered text width from character count and
// font size. Estimation is fine here: the worst case is a marquee that
// starts a few pixels early or late.
func marqueeFor(text string, fontSize int, containerWidth int) Marquee {
	estimatedWidth := float64(len([]rune(text))) * float64(fontSize) * 0.55
	if estimatedWidth <= float64(containerWidth) {
		return Marquee{}
	}

	duration := float64(len([]rune(text))) * 0.22
	if duration < 6 {
		duration = 6
	}
	return Marquee{Enabled: true, DurationS: duration}
}
