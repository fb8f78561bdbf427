// Package artwork downloads album art and derives the color palettes
// used by the card. Every failure path degrades to a built-in
// placeholder so artwork can never fail a render.
package artwork

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // GIF format support
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	_ "golang.org/x/image/webp" // WebP format support
)

const maxImageSize = 10 * 1024 * 1024 // 10 MB

// RGB is one palette color.
type RGB struct {
	R, G, B uint8
}

// Art is the renderable result of loading album art: the image embedded
// as base64 plus the palettes extracted from it.
type Art struct {
	Base64      string
	BarPalette  []RGB // equalizer bar gradient, 4 colors
	TextPalette []RGB // song/artist text gradient, 2 colors
}

// DefaultBarPalette is the neutral gray gradient used when no artwork
// is available.
func DefaultBarPalette() []RGB {
	return []RGB{{75, 75, 75}, {100, 100, 100}, {125, 125, 125}, {150, 150, 150}}
}

// DefaultTextPalette is the neutral text gradient.
func DefaultTextPalette() []RGB {
	return []RGB{{200, 200, 200}, {150, 150, 150}}
}

// Fetcher downloads artwork over HTTP with a bounded timeout.
type Fetcher struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFetcher creates an artwork fetcher.
func NewFetcher(httpClient *http.Client, logger *zap.Logger) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{httpClient: httpClient, logger: logger}
}

// Load fetches the artwork at url and extracts its palettes. An empty
// url, a download failure, or an undecodable image all fall back to the
// placeholder image with default palettes.
func (f *Fetcher) Load(ctx context.Context, url string) Art {
	fallback := Art{
		Base64:      placeholderImage,
		BarPalette:  normalizePalette(DefaultBarPalette(), 0.3, 0.7),
		TextPalette: normalizePalette(DefaultTextPalette(), 0.35, 0.75),
	}

	if url == "" {
		return fallback
	}

	data, err := f.fetch(ctx, url)
	if err != nil {
		f.logger.Warn("artwork fetch failed, using placeholder", zap.String("url", url), zap.Error(err))
		return fallback
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		f.logger.Warn("artwork decode failed, using placeholder", zap.String("url", url), zap.Error(err))
		fallback.Base64 = base64.StdEncoding.EncodeToString(data)
		return fallback
	}

	return Art{
		Base64:      base64.StdEncoding.EncodeToString(data),
		BarPalette:  normalizePalette(extractPalette(img, 4), 0.3, 0.7),
		TextPalette: normalizePalette(extractPalette(img, 2), 0.35, 0.75),
	}
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("artwork: %w", err)
	}
	req.Header.Set("User-Agent", "novatorem/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork: unexpected status %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("artwork: not an image: %s", ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("artwork: %w", err)
	}
	return data, nil
}
