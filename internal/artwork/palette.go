package artwork

import (
	"image"
	"sort"

	"github.com/disintegration/imaging"
)

// extractPalette returns the count most dominant colors of img. The
// image is downscaled first so the pixel walk stays cheap, and channels
// are quantized to 5 bits so near-identical shades share a bucket.
func extractPalette(img image.Image, count int) []RGB {
	small := imaging.Resize(img, 64, 64, imaging.Lanczos)

	buckets := make(map[RGB]int)
	bounds := small.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := small.NRGBAAt(x, y)
			if c.A < 125 {
				continue
			}
			key := RGB{c.R & 0xF8, c.G & 0xF8, c.B & 0xF8}
			buckets[key]++
		}
	}

	type bucket struct {
		color RGB
		n     int
	}
	ranked := make([]bucket, 0, len(buckets))
	for c, n := range buckets {
		ranked = append(ranked, bucket{color: c, n: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		// Tie-break on the color value so the palette is stable
		// across runs.
		a, b := ranked[i].color, ranked[j].color
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})

	palette := make([]RGB, 0, count)
	for _, b := range ranked {
		palette = append(palette, b.color)
		if len(palette) == count {
			break
		}
	}

	// Pad sparse images (e.g. flat single-color covers) from defaults.
	for i := len(palette); i < count; i++ {
		palette = append(palette, DefaultBarPalette()[i%4])
	}

	return palette
}

// normalizePalette clamps the HSL lightness of each color to
// [minL, maxL], preserving hue and saturation, so text and bars stay
// readable against any cover.
func normalizePalette(palette []RGB, minL, maxL float64) []RGB {
	result := make([]RGB, len(palette))
	for i, c := range palette {
		h, s, l := rgbToHSL(c)
		if l < minL {
			l = minL
		}
		if l > maxL {
			l = maxL
		}
		result[i] = hslToRGB(h, s, l)
	}
	return result
}

func rgbToHSL(c RGB) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := max3(r, g, b)
	minC := min3(r, g, b)
	l = (maxC + minC) / 2

	if maxC == minC {
		return 0, 0, l
	}

	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6
	return h, s, l
}

func hslToRGB(h, s, l float64) RGB {
	if s == 0 {
		v := uint8(l * 255)
		return RGB{v, v, v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToChannel(p, q, h+1.0/3.0)
	g := hueToChannel(p, q, h)
	b := hueToChannel(p, q, h-1.0/3.0)
	return RGB{uint8(r * 255), uint8(g * 255), uint8(b * 255)}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
