package search

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParseMethod tags how a candidate was recovered from the model response.
// The attempt order is fixed: fenced JSON, raw JSON, regex URL extraction,
// no match.
type ParseMethod int

const (
	ParseNoMatch ParseMethod = iota
	ParseStructuredJSON
	ParseRawJSON
	ParseRegexURL
)

func (m ParseMethod) String() string {
	switch m {
	case ParseStructuredJSON:
		return "structured_json"
	case ParseRawJSON:
		return "raw_json"
	case ParseRegexURL:
		return "regex_url"
	default:
		return "no_match"
	}
}

// ParsedResponse is the candidate recovered from one model response.
// Method is ParseNoMatch when nothing usable was found; URL is empty in
// that case and callers branch on Method, never on error values.
type ParsedResponse struct {
	Method   ParseMethod
	URL      string
	Title    string
	Verified bool
}

// candidateJSON is the structured answer format requested in the prompt
type candidateJSON struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Verified bool   `json:"verified"`
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	rawJSONRe    = regexp.MustCompile(`(?s)\{[^{}]*"url"[^{}]*\}`)
	urlTokenRe   = regexp.MustCompile(`https?://[^\s<>"')\]]+`)
)

// Parse recovers a candidate from free-form model output. Models asked for
// JSON still return markdown fences, prose around the object, or plain
// text, so each representation is tried in order of decreasing structure.
func Parse(text string) ParsedResponse {
	text = strings.TrimSpace(text)
	if text == "" {
		return ParsedResponse{Method: ParseNoMatch}
	}

	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		if parsed, ok := parseCandidateJSON(m[1]); ok {
			parsed.Method = ParseStructuredJSON
			return parsed
		}
	}

	if m := rawJSONRe.FindString(text); m != "" {
		if parsed, ok := parseCandidateJSON(m); ok {
			parsed.Method = ParseRawJSON
			return parsed
		}
	}

	if m := urlTokenRe.FindString(text); m != "" {
		return ParsedResponse{
			Method: ParseRegexURL,
			URL:    strings.TrimRight(m, ".,;:!?"),
		}
	}

	return ParsedResponse{Method: ParseNoMatch}
}

func parseCandidateJSON(raw string) (ParsedResponse, bool) {
	var candidate candidateJSON
	if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
		return ParsedResponse{}, false
	}
	if strings.TrimSpace(candidate.URL) == "" {
		return ParsedResponse{}, false
	}
	return ParsedResponse{
		URL:      strings.TrimSpace(candidate.URL),
		Title:    strings.TrimSpace(candidate.Title),
		Verified: candidate.Verified,
	}, true
}
