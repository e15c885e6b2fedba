// Package search finds replacement URLs for broken or filtered citations
// by prompting a search-grounded LLM and independently re-validating every
// candidate it suggests.
package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yousif-abd/openblog-sub000/internal/llm"
	"github.com/yousif-abd/openblog-sub000/internal/model"
	"github.com/yousif-abd/openblog-sub000/internal/retry"
	"github.com/yousif-abd/openblog-sub000/internal/validate"
)

// maxQueryLen bounds the search query built from a citation title
const maxQueryLen = 120

// citationMarkerRe matches in-text markers like [3] left in titles
var citationMarkerRe = regexp.MustCompile(`\[\d+\]`)

// genericAuthorityHosts are high-authority domains that models fall back
// to when they cannot find the actual source. A candidate on one of these
// hosts is accepted only when it shows term overlap with the query: a
// wrong-but-plausible citation is worse than an admittedly missing one.
var genericAuthorityHosts = []string{
	"data.gov",
	"bls.gov",
	"census.gov",
	"cdc.gov",
	"who.int",
	"oecd.org",
	"statista.com",
	"pewresearch.org",
}

// Finder locates and verifies alternative sources. Every candidate passes
// the domain filter and a live probe before it is accepted; the model's
// own "verified" flag is never trusted.
type Finder struct {
	provider    llm.Provider
	prober      *validate.Prober
	filter      *validate.DomainFilter
	maxAttempts int
	timeout     time.Duration
	policy      retry.Policy
}

// NewFinder creates a finder
func NewFinder(provider llm.Provider, prober *validate.Prober, filter *validate.DomainFilter, cfg model.SearchConfig) *Finder {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 2
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &Finder{
		provider:    provider,
		prober:      prober,
		filter:      filter,
		maxAttempts: maxAttempts,
		timeout:     timeout,
		policy:      retry.DefaultPolicy(retry.TransientNetworkError),
	}
}

// FindAlternative searches for a live, relevant, unfiltered replacement for
// the citation. A nil result with nil error means no usable alternative
// was found; the caller then drops the citation.
func (f *Finder) FindAlternative(ctx context.Context, citation model.Citation, vc model.ValidationContext) (*model.Alternative, error) {
	query := BuildQuery(citation.Title)
	if query == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		if attempt > 0 {
			// Narrow to the most salient terms before giving up
			query = salientTerms(query)
			if query == "" {
				break
			}
		}

		prompt := f.buildPrompt(query, vc)

		var text string
		err := f.policy.Do(ctx, func() error {
			var genErr error
			text, genErr = f.provider.GenerateContent(ctx, llm.Request{
				Prompt:       prompt,
				EnableSearch: true,
				ForceJSON:    true,
			})
			return genErr
		})
		if err != nil {
			// Model trouble on the last attempt surfaces as an error;
			// earlier attempts just narrow and retry
			if attempt == f.maxAttempts-1 {
				return nil, fmt.Errorf("search request: %w", err)
			}
			continue
		}

		parsed := Parse(text)
		if parsed.Method == ParseNoMatch {
			continue
		}

		if alt := f.verifyCandidate(ctx, parsed, query, vc); alt != nil {
			return alt, nil
		}
	}

	return nil, nil
}

// verifyCandidate runs a parsed candidate through format check, domain
// filter, the generic-authority guardrail, and a live probe.
func (f *Finder) verifyCandidate(ctx context.Context, parsed ParsedResponse, query string, vc model.ValidationContext) *model.Alternative {
	if !validate.ValidFormat(parsed.URL) {
		return nil
	}
	if f.filter != nil && f.filter.Excluded(parsed.URL, vc) {
		return nil
	}
	if isUnrelatedAuthorityFallback(parsed, query) {
		return nil
	}

	probe := f.prober.Probe(ctx, parsed.URL)
	if !probe.IsValid {
		return nil
	}
	if f.filter != nil && f.filter.Excluded(probe.FinalURL, vc) {
		return nil
	}

	return &model.Alternative{
		URL:   probe.FinalURL,
		Title: parsed.Title,
	}
}

// buildPrompt asks for one authoritative replacement source as JSON.
func (f *Finder) buildPrompt(query string, vc model.ValidationContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Find one authoritative web source for the topic: %q.\n\n", query)
	b.WriteString("Requirements:\n")
	b.WriteString("- Prefer high-authority domains: government, universities, major research firms, established publications.\n")
	b.WriteString("- The source must be directly about the topic above. If you can only find a generic statistics portal or an unrelated authority site, answer with {\"url\": \"\"} instead.\n")
	b.WriteString("- Never suggest link shorteners or redirect services.\n")

	if company := strings.TrimSpace(vc.CompanyURL); company != "" {
		fmt.Fprintf(&b, "- Do not suggest pages on %s or its subdomains.\n", company)
	}
	if len(vc.Competitors) > 0 {
		fmt.Fprintf(&b, "- Do not suggest pages on these competitor domains: %s.\n", strings.Join(vc.Competitors, ", "))
	}
	if lang := strings.TrimSpace(vc.Language); lang != "" {
		fmt.Fprintf(&b, "- Prefer sources written in %s.\n", lang)
	}

	b.WriteString("\nAnswer with a single JSON object: {\"url\": \"...\", \"title\": \"...\", \"verified\": true|false}. Set \"verified\" to true only if you confirmed the page is live via search.\n")

	return b.String()
}

// BuildQuery derives a search query from a citation title: in-text markers
// are stripped and very long titles truncated at a word boundary.
func BuildQuery(title string) string {
	query := citationMarkerRe.ReplaceAllString(title, "")
	query = strings.Join(strings.Fields(query), " ")

	if len(query) > maxQueryLen {
		cut := query[:maxQueryLen]
		if idx := strings.LastIndex(cut, " "); idx > 0 {
			cut = cut[:idx]
		}
		query = cut
	}

	return strings.TrimSpace(query)
}

// salientTerms reduces a query to its most distinctive words
func salientTerms(query string) string {
	var terms []string
	for _, word := range strings.Fields(query) {
		if len(word) <= 3 {
			continue
		}
		terms = append(terms, word)
		if len(terms) == 6 {
			break
		}
	}
	return strings.Join(terms, " ")
}

// isUnrelatedAuthorityFallback rejects generic-authority candidates that
// share no terms with the query.
func isUnrelatedAuthorityFallback(parsed ParsedResponse, query string) bool {
	host := strings.ToLower(parsed.URL)
	generic := false
	for _, auth := range genericAuthorityHosts {
		if strings.Contains(host, auth) {
			generic = true
			break
		}
	}
	if !generic {
		return false
	}

	haystack := strings.ToLower(parsed.Title + " " + parsed.URL)
	for _, term := range strings.Fields(strings.ToLower(salientTerms(query))) {
		if strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
