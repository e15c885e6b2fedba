package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// markerRe matches in-text citation markers like [3]
var markerRe = regexp.MustCompile(`\[(\d+)\]`)

// Markers returns the distinct citation marker numbers found in text,
// in order of first appearance.
func Markers(text string) []int {
	matches := markerRe.FindAllStringSubmatch(text, -1)
	seen := make(map[int]bool)
	var numbers []int
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		numbers = append(numbers, n)
	}
	return numbers
}

// StripMarkers removes the [n] markers whose numbers are in dropped,
// leaving the surrounding prose as plain text. Markers for kept citations
// are untouched and never renumbered: their numbers still align with the
// surviving Sources entries.
func StripMarkers(text string, dropped map[int]bool) string {
	if len(dropped) == 0 {
		return text
	}

	stripped := markerRe.ReplaceAllStringFunc(text, func(marker string) string {
		n, err := strconv.Atoi(strings.Trim(marker, "[]"))
		if err != nil || !dropped[n] {
			return marker
		}
		return ""
	})

	// Tidy the gaps left behind by removed markers
	stripped = strings.ReplaceAll(stripped, "  ", " ")
	stripped = strings.ReplaceAll(stripped, " .", ".")
	stripped = strings.ReplaceAll(stripped, " ,", ",")
	return stripped
}
