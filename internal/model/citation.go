package model

// Citation represents a single source reference embedded in generated article
// content. The sequence number is assigned by the caller when the article is
// generated and stays fixed for the lifetime of the citation: in-text markers
// like [3] refer to it, so the validator never renumbers.
type Citation struct {
	Seq     int    `json:"sequence_number"`
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Authors string `json:"authors,omitempty"`
	Year    int    `json:"year,omitempty"`
	DOI     string `json:"doi,omitempty"`
}

// ValidationType tags how a citation's final URL was established.
type ValidationType string

const (
	ValidationOriginal    ValidationType = "original_url"      // original URL accepted as-is (or via redirect)
	ValidationAlternative ValidationType = "alternative_found" // broken/filtered URL replaced via search
	ValidationDOI         ValidationType = "doi_verified"      // resolved through the citation's DOI
	ValidationRejected    ValidationType = "rejected"          // no valid URL could be found
)

// ValidationResult is the outcome of validating one citation.
//
// URL always carries the best available value, even when IsValid is false,
// so callers that keep rejected citations still have something usable.
type ValidationResult struct {
	Seq     int            `json:"sequence_number"`
	IsValid bool           `json:"is_valid"`
	URL     string         `json:"url"`
	Title   string         `json:"title,omitempty"`
	Type    ValidationType `json:"validation_type"`
	Issues  []string       `json:"issues,omitempty"`
}

// Alternative is a replacement source found for a broken citation,
// already filtered and independently re-validated.
type Alternative struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// ValidationContext carries the per-invocation filtering and search context.
// It is supplied by the caller and never persisted.
type ValidationContext struct {
	// CompanyURL is the URL of the company the article is written for.
	CompanyURL string `json:"company_url"`

	// Competitors lists competitor identifiers: raw domains, full URLs, or
	// comma-separated lists of either.
	Competitors []string `json:"competitors,omitempty"`

	// Language steers the phrasing of the alternative-search prompt.
	Language string `json:"language,omitempty"`

	// FilterCompany excludes URLs on the company's own domain. Off by
	// default: case studies hosted on the company domain are legitimate
	// citations.
	FilterCompany bool `json:"filter_company,omitempty"`
}

// BatchResult aggregates the outcome of a batch validation run.
type BatchResult struct {
	// Results holds one entry per input citation, in original order.
	Results []ValidationResult `json:"results"`

	// Kept contains the surviving citations in original relative order,
	// with URL/Title overwritten where a replacement was found.
	Kept []Citation `json:"kept"`

	// Dropped lists the sequence numbers of citations removed from Kept,
	// so the caller can strip their in-text markers.
	Dropped []int `json:"dropped,omitempty"`
}

// DroppedSet returns the dropped sequence numbers as a set.
func (b *BatchResult) DroppedSet() map[int]bool {
	set := make(map[int]bool, len(b.Dropped))
	for _, seq := range b.Dropped {
		set[seq] = true
	}
	return set
}
