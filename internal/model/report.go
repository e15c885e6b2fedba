package model

import "time"

// Report is the complete outcome of validating one article or citation set
type Report struct {
	// Source identifies what was validated: a file path or a URL
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`

	Context ValidationContext `json:"context"`
	Batch   *BatchResult      `json:"batch"`
	Summary Summary           `json:"summary"`

	// Body is the article text with dropped citation markers removed.
	// Empty when the input was a bare citation list.
	Body string `json:"body,omitempty"`
}

// Summary aggregates per-citation outcomes for quick inspection
type Summary struct {
	Total       int `json:"total"`
	Valid       int `json:"valid"`
	Replaced    int `json:"replaced"`
	DOIVerified int `json:"doi_verified"`
	Dropped     int `json:"dropped"`

	// Issues tallies distinct issue strings across all citations
	Issues map[string]int `json:"issues,omitempty"`
}

// Summarize builds a Summary from a batch result
func Summarize(batch *BatchResult) Summary {
	var s Summary
	if batch == nil {
		return s
	}
	s.Issues = make(map[string]int)

	s.Total = len(batch.Results)
	for _, r := range batch.Results {
		switch r.Type {
		case ValidationOriginal:
			s.Valid++
		case ValidationAlternative:
			s.Replaced++
		case ValidationDOI:
			s.DOIVerified++
		case ValidationRejected:
			s.Dropped++
		}
		for _, issue := range r.Issues {
			s.Issues[issue]++
		}
	}
	if len(s.Issues) == 0 {
		s.Issues = nil
	}
	return s
}
