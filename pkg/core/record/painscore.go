package record

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	scoreRe         = regexp.MustCompile(`score\s*:\s*(\d+)`)
	leadingDigitsRe = regexp.MustCompile(`^(\d+)`)
	leadingNumberRe = regexp.MustCompile(`^-?\d+(\.\d+)?`)
)

// ScoreMarkers configures the textual conventions the pain-score parser
// recognizes before attempting numeric extraction. The zero value is not
// useful; start from DefaultScoreMarkers and override via YAML if the source
// system uses different wording.
type ScoreMarkers struct {
	// Markers meaning "no data recorded" -> nil score.
	MissingContains []string `yaml:"missing_contains"`
	MissingExact    []string `yaml:"missing_exact"`
	// Markers meaning an explicit zero ("no pain") -> score 0.
	ZeroContains []string `yaml:"zero_contains"`
	ZeroExact    []string `yaml:"zero_exact"`
}

// DefaultScoreMarkers matches the conventions of the source hospital system:
// Thai "ไม่พบข้อมูล" (no data found) plus the usual English placeholders.
func DefaultScoreMarkers() ScoreMarkers {
	return ScoreMarkers{
		MissingContains: []string{"ไม่พบข้อมูล", "n/a", "no info"},
		MissingExact:    []string{"-", "unknown"},
		ZeroContains:    []string{"no pain"},
		ZeroExact:       []string{"none"},
	}
}

var defaultMarkers = DefaultScoreMarkers()

// ParsePainScore extracts a pain score from one raw cell value using the
// default marker set. See ScoreMarkers.Parse for the full contract.
func ParsePainScore(v any) *int {
	return defaultMarkers.Parse(v)
}

// Parse extracts a nullable pain score from a raw cell value.
//
// Resolution order over the trimmed, lowercased text:
//  1. nil / empty string -> nil
//  2. missing-data marker -> nil (excluded from statistics)
//  3. no-pain marker -> 0 (a meaningful zero, included in statistics)
//  4. "score : N" anywhere in the text -> N
//     (cells look like "SCORE : 10 (2025-06-04 ,14:12:55)")
//  5. leading run of digits -> that integer ("7 points" -> 7)
//  6. anything else -> nil
//
// Parse never fails; unparseable input degrades to nil.
func (m ScoreMarkers) Parse(v any) *int {
	if v == nil {
		return nil
	}
	str := strings.ToLower(strings.TrimSpace(stringValue(v)))
	if str == "" {
		return nil
	}

	for _, marker := range m.MissingContains {
		if strings.Contains(str, marker) {
			return nil
		}
	}
	for _, marker := range m.MissingExact {
		if str == marker {
			return nil
		}
	}

	for _, marker := range m.ZeroContains {
		if strings.Contains(str, marker) {
			return scorePtr(0)
		}
	}
	for _, marker := range m.ZeroExact {
		if str == marker {
			return scorePtr(0)
		}
	}

	if match := scoreRe.FindStringSubmatch(str); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			return scorePtr(n)
		}
	}

	if match := leadingDigitsRe.FindString(str); match != "" {
		if n, err := strconv.Atoi(match); err == nil {
			return scorePtr(n)
		}
	}

	return nil
}

func scorePtr(n int) *int { return &n }
