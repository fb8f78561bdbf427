package render

import (
	"regexp"
	"strings"
)

// Background style variants.
const (
	BackgroundColor     = "color"
	BackgroundBlurDark  = "blur_dark"
	BackgroundBlurLight = "blur_light"
)

const (
	defaultBackground     = "181414"
	defaultBorder         = "181414"
	defaultBackgroundType = BackgroundColor
)

var hexColorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// StyleOptions are the caller-supplied knobs of one render. Construct
// raw values from the query string and call Normalize before use.
type StyleOptions struct {
	BackgroundColor string // hex, no '#'
	BorderColor     string // hex, no '#'
	BackgroundType  string
	ShowStatus      bool
}

// Normalize validates each option and substitutes the documented
// default for anything malformed. Requests never fail on bad style
// input.
func (o StyleOptions) Normalize() StyleOptions {
	o.BackgroundColor = validHexOr(o.BackgroundColor, defaultBackground)
	o.BorderColor = validHexOr(o.BorderColor, defaultBorder)

	switch o.BackgroundType {
	case BackgroundColor, BackgroundBlurDark, BackgroundBlurLight:
	default:
		o.BackgroundType = defaultBackgroundType
	}

	return o
}

// CacheKey folds every render-affecting option into a stable string.
func (o StyleOptions) CacheKey() string {
	key := o.BackgroundColor + "|" + o.BorderColor + "|" + o.BackgroundType + "|"
	if o.ShowStatus {
		key += "status"
	}
	return key
}

func validHexOr(color, fallback string) string {
	if hexColorPattern.MatchString(color) {
		return strings.ToLower(color)
	}
	return fallback
}
