package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/novatorem/novatorem/internal/core/domain"
	"github.com/novatorem/novatorem/internal/render"
)

// Card handles GET / and GET /card: resolve the current listening
// state, render the SVG, and serve it with a short caching window.
// Failures still answer with an SVG so the embedding page never shows a
// broken image.
func (h *Handler) Card(w http.ResponseWriter, r *http.Request) {
	opts := styleOptionsFromQuery(r)

	svg, hit, err := h.cache.GetOrCompute(opts.CacheKey(), func() ([]byte, error) {
		res, err := h.resolver.Resolve(r.Context())
		if err != nil {
			return nil, err
		}
		state := render.CardState{
			HasTrack: res.HasTrack,
			Snapshot: res.Snapshot,
			Features: res.Features,
			Anim:     domain.MapAnimation(res.Features),
		}
		return h.pipeline.Render(r.Context(), state, opts)
	})
	if err != nil {
		h.writeErrorCard(w, err)
		return
	}

	if hit {
		h.logger.Debug("card served from cache", zap.String("key", opts.CacheKey()))
	}

	w.Header().Set("Content-Type", render.ContentType)
	w.Header().Set("Cache-Control", fmt.Sprintf("s-maxage=%d", int(h.cacheTTL.Seconds())))
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}

// writeErrorCard maps the failure to a status code and answers with the
// error card. Error responses are never cacheable.
func (h *Handler) writeErrorCard(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "something went wrong"

	var authErr *domain.AuthError
	var provErr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		message = "no music provider configured"
	case errors.As(err, &authErr):
		status = http.StatusUnauthorized
		message = fmt.Sprintf("authentication with %s failed", authErr.Provider)
	case errors.As(err, &provErr):
		status = http.StatusBadGateway
		message = fmt.Sprintf("%s is unavailable", provErr.Provider)
	}

	h.logger.Error("card request failed", zap.Int("status", status), zap.Error(err))

	w.Header().Set("Content-Type", render.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(h.pipeline.RenderError(message))
}

func styleOptionsFromQuery(r *http.Request) render.StyleOptions {
	q := r.URL.Query()
	return render.StyleOptions{
		BackgroundColor: q.Get("background_color"),
		BorderColor:     q.Get("border_color"),
		BackgroundType:  q.Get("background_type"),
		ShowStatus:      parseBool(q.Get("show_status")),
	}.Normalize()
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
