package spotify

import (
	"strings"
	"unicode"
)

// Tokens that scrobblers and storefronts append to titles but that only
// hurt a feature-lookup search.
var noiseTokens = map[string]struct{}{
	"clean":        {},
	"deluxe":       {},
	"demo":         {},
	"edit":         {},
	"edition":      {},
	"explicit":     {},
	"feat":         {},
	"featuring":    {},
	"ft":           {},
	"instrumental": {},
	"live":         {},
	"mix":          {},
	"mono":         {},
	"radio":        {},
	"remaster":     {},
	"remastered":   {},
	"stereo":       {},
	"version":      {},
}

// normalizeQueryText lowercases the input, drops bracketed segments and
// noise tokens, and collapses punctuation into single spaces. The result
// is what goes into the search query and the match scoring.
func normalizeQueryText(input string) string {
	if input == "" {
		return ""
	}

	cleaned := dropBracketed(strings.ToLower(input))

	kept := make([]string, 0, 8)
	for _, token := range strings.FieldsFunc(cleaned, isSeparator) {
		if _, noise := noiseTokens[token]; noise {
			continue
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// dropBracketed removes "(...)" and "[...]" segments, tolerating nesting
// and unbalanced closers.
func dropBracketed(input string) string {
	var out strings.Builder
	out.Grow(len(input))

	depth := 0
	for _, r := range input {
		if r == '(' || r == '[' {
			depth++
			continue
		}
		if r == ')' || r == ']' {
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 {
			out.WriteRune(r)
		}
	}

	return out.String()
}

// fallbackIfEmpty guards against normalization eating the whole string,
// as happens with titles that are entirely bracketed.
func fallbackIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
