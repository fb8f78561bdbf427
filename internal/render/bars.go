package render

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/novatorem/novatorem/internal/artwork"
	"github.com/novatorem/novatorem/internal/core/domain"
)

const (
	barCount = 80

	minBarPulseMs = 200
	maxBarPulseMs = 1500

	// One full color-wave cycle across the bar row, deliberately much
	// slower than the beat pulse.
	waveDurationMs = 45000
)

// barHTML emits the equalizer bar divs.
func barHTML(count int) string {
	var out strings.Builder
	for i := 0; i < count; i++ {
		out.WriteString("<div class='bar'></div>")
	}
	return out.String()
}

// barCSS generates the per-bar animation rules. Bars share a wide
// linear gradient built from the palette; each bar's pulse duration
// gets a deterministic per-bar variance so the row doesn't move in
// lockstep, and staggered delays make the color wave flow across it.
func barCSS(count int, anim domain.AnimationParams, palette []artwork.RGB) string {
	var rules []string

	// Repeat the first color at the end so the gradient loops
	// seamlessly when the animation wraps.
	looped := append(append([]artwork.RGB{}, palette...), palette[0])
	stops := make([]string, len(looped))
	for i, c := range looped {
		stops[i] = fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}

	// With background-size = count * 100%, each bar shows roughly
	// 1/count of the gradient at any moment.
	rules = append(rules, fmt.Sprintf(
		".bar { flex: 1; height: 100%%; margin: 0 1px; transform-origin: bottom; background: linear-gradient(90deg, %s); background-size: %d%% 100%%; animation-name: pulse, wave; animation-iteration-count: infinite, infinite; animation-timing-function: %s, linear; }",
		strings.Join(stops, ", "), count*100, anim.Curve))

	rules = append(rules,
		"@keyframes pulse { 0%, 100% { transform: scaleY(0.1); } 50% { transform: scaleY(1); } }",
		"@keyframes wave { 0% { background-position: 0% 0%; } 100% { background-position: 100% 0%; } }")

	for i := 1; i <= count; i++ {
		variance := 0.9 + 0.2*barVariance(i)
		pulseDur := int(float64(anim.PulseIntervalMs) * variance * (2 - anim.IntensityScale))
		if pulseDur < minBarPulseMs {
			pulseDur = minBarPulseMs
		}
		if pulseDur > maxBarPulseMs {
			pulseDur = maxBarPulseMs
		}
		pulseDelay := i * anim.PulseIntervalMs / (2 * count)
		waveDelay := (i - 1) * waveDurationMs / count

		rules = append(rules, fmt.Sprintf(
			".bar:nth-child(%d) { animation-duration: %dms, %dms; animation-delay: -%dms, -%dms; }",
			i, pulseDur, waveDurationMs, pulseDelay, waveDelay))
	}

	return strings.Join(rules, "\n")
}

// barVariance hashes the bar index into [0, 1). Deterministic, so two
// renders of the same track produce byte-identical CSS.
func barVariance(index int) float64 {
	h := fnv.New32a()
	fmt.Fprintf(h, "bar-%d", index)
	return float64(h.Sum32()%1000) / 1000.0
}
