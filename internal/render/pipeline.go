// Package render turns a resolved snapshot into the final SVG card.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/novatorem/novatorem/internal/artwork"
	"github.com/novatorem/novatorem/internal/core/domain"
)

// Card geometry.
const (
	cardWidth    = 480
	cardHeight   = 133
	albumSize    = 100
	borderRadius = 5

	blurAmount       = 20
	blurDarkOpacity  = 0.7
	blurLightOpacity = 0.5

	songFontSize   = 22
	artistFontSize = 16
	textWidth      = 330
)

// ContentType is the MIME type of every rendered card.
const ContentType = "image/svg+xml"

// CardState is the resolved input of one render.
type CardState struct {
	// HasTrack is false for the inactive variant: nothing playing and
	// no recent history, rendered without equalizer bars.
	HasTrack bool
	Snapshot domain.TrackSnapshot
	Features domain.AudioFeatures
	Anim     domain.AnimationParams
}

// Pipeline renders card states through the configured theme template.
type Pipeline struct {
	themeDir string
	artwork  *artwork.Fetcher
	logger   *zap.Logger
}

// NewPipeline constructs a render pipeline reading templates from
// themeDir.
func NewPipeline(themeDir string, art *artwork.Fetcher, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{themeDir: themeDir, artwork: art, logger: logger}
}

// cardData is the template context. Field names are part of the theme
// template contract.
type cardData struct {
	Width        int
	Height       int
	AlbumSize    int
	BorderRadius int

	BackgroundColor    string
	BorderColor        string
	UseBlurBackground  bool
	BlurIsDark         bool
	BlurAmount         int
	BlurOverlayOpacity float64

	Image      string
	BarCSS     template.CSS
	ContentBar template.HTML

	HasTrack   bool
	IsPlaying  bool
	Status     string
	ShowStatus bool

	SongName   string
	ArtistName string
	AlbumName  string
	SongURI    string
	ArtistURI  string

	TextGradientStart template.CSS
	TextGradientEnd   template.CSS

	ProgressPercent float64
	PulseMs         int

	SongMarquee   Marquee
	ArtistMarquee Marquee
}

// Render produces the SVG card for the given state and style options.
func (p *Pipeline) Render(ctx context.Context, state CardState, opts StyleOptions) ([]byte, error) {
	opts = opts.Normalize()

	artURL := ""
	if state.HasTrack {
		artURL = state.Snapshot.ArtworkURL
	}
	art := p.artwork.Load(ctx, artURL)

	data := cardData{
		Width:        cardWidth,
		Height:       cardHeight,
		AlbumSize:    albumSize,
		BorderRadius: borderRadius,

		BackgroundColor:   opts.BackgroundColor,
		BorderColor:       opts.BorderColor,
		UseBlurBackground: opts.BackgroundType != BackgroundColor,
		BlurIsDark:        opts.BackgroundType == BackgroundBlurDark,
		BlurAmount:        blurAmount,

		Image:      art.Base64,
		HasTrack:   state.HasTrack,
		ShowStatus: opts.ShowStatus,

		TextGradientStart: cssRGB(art.TextPalette[0]),
		TextGradientEnd:   cssRGB(art.TextPalette[len(art.TextPalette)-1]),
	}

	if data.BlurIsDark {
		data.BlurOverlayOpacity = blurDarkOpacity
	} else {
		data.BlurOverlayOpacity = blurLightOpacity
	}

	if state.HasTrack {
		s := state.Snapshot
		data.IsPlaying = s.IsPlaying
		data.SongName = s.Title
		data.ArtistName = s.Artist
		data.AlbumName = s.Album
		data.SongURI = s.TrackURL
		data.ArtistURI = s.ArtistURL
		data.PulseMs = state.Anim.PulseIntervalMs
		data.SongMarquee = marqueeFor(s.Title, songFontSize, textWidth)
		data.ArtistMarquee = marqueeFor(s.Artist, artistFontSize, textWidth)

		if s.IsPlaying {
			data.Status = "Vibing to:"
		} else {
			data.Status = "Recently played:"
		}
		if s.IsPlaying && s.DurationMs > 0 {
			data.ProgressPercent = float64(s.ProgressMs) / float64(s.DurationMs) * 100
		}

		// The inactive variant keeps the bars suppressed; everything
		// else gets the animated row.
		data.ContentBar = template.HTML(barHTML(barCount))
		data.BarCSS = template.CSS(barCSS(barCount, state.Anim, art.BarPalette))
	} else {
		data.Status = "Nothing playing"
	}

	tmplPath := p.resolveTemplate()
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("render: parse template %s: %w", tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render: execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderError produces a minimal error card so upstream failures still
// draw something embeddable.
func (p *Pipeline) RenderError(message string) []byte {
	svg := fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%%" height="100%%" fill="#1a1a1a" rx="%d"/>
  <text x="50%%" y="50%%" fill="#ff6b6b" font-family="sans-serif" font-size="14" text-anchor="middle" dominant-baseline="middle">%s</text>
</svg>`, cardWidth, cardHeight, borderRadius, escapeXML(message))
	return []byte(svg)
}

func escapeXML(text string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(text)
}

func cssRGB(c artwork.RGB) template.CSS {
	return template.CSS(fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B))
}
