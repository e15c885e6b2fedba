package validate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yousif-abd/openblog-sub000/internal/model"
)

// AlternativeSearcher finds a replacement source for a broken or filtered
// citation. A nil candidate with a nil error means no usable alternative
// exists; that is an ordinary outcome, not a failure.
type AlternativeSearcher interface {
	FindAlternative(ctx context.Context, citation model.Citation, vc model.ValidationContext) (*model.Alternative, error)
}

// Validator runs the full per-citation pipeline: format check, cached
// probe, soft-404 sniff, domain filter, DOI fallback, alternative search.
// Batches fan out concurrently under a worker bound; searches run under a
// separate, tighter bound because each one costs an LLM round trip.
type Validator struct {
	prober     *Prober
	filter     *DomainFilter
	searcher   AlternativeSearcher // nil disables alternative search
	maxWorkers int
	searchSem  chan struct{}
	doiBase    string
}

// NewValidator creates a validator.
func NewValidator(prober *Prober, filter *DomainFilter, searcher AlternativeSearcher, validationWorkers, searchWorkers int) *Validator {
	if validationWorkers <= 0 {
		validationWorkers = 10
	}
	if searchWorkers <= 0 {
		searchWorkers = 3
	}

	return &Validator{
		prober:     prober,
		filter:     filter,
		searcher:   searcher,
		maxWorkers: validationWorkers,
		searchSem:  make(chan struct{}, searchWorkers),
		doiBase:    "https://doi.org/",
	}
}

// ValidateCitations validates all citations concurrently and aggregates the
// outcome. Results preserve the original citation order and sequence
// numbers; citations with no valid resolution are dropped from Kept and
// reported in Dropped.
func (v *Validator) ValidateCitations(ctx context.Context, citations []model.Citation, vc model.ValidationContext) (*model.BatchResult, error) {
	results := make([]model.ValidationResult, len(citations))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, v.maxWorkers)

	for i, c := range citations {
		wg.Add(1)
		go func(idx int, citation model.Citation) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.ValidationResult{
					Seq:    citation.Seq,
					URL:    citation.URL,
					Title:  citation.Title,
					Type:   model.ValidationRejected,
					Issues: []string{"context cancelled"},
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.validateOne(ctx, citation, vc)
		}(i, c)
	}

	wg.Wait()

	batch := &model.BatchResult{Results: results}
	for i, c := range citations {
		r := results[i]
		if !r.IsValid {
			batch.Dropped = append(batch.Dropped, c.Seq)
			continue
		}
		kept := c
		kept.URL = r.URL
		if r.Title != "" {
			kept.Title = r.Title
		}
		batch.Kept = append(batch.Kept, kept)
	}

	return batch, nil
}

// validateOne runs the sequential pipeline for a single citation. Panics
// are converted to rejected results: one citation must never abort the
// batch.
func (v *Validator) validateOne(ctx context.Context, citation model.Citation, vc model.ValidationContext) (result model.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.ValidationResult{
				Seq:    citation.Seq,
				URL:    citation.URL,
				Title:  citation.Title,
				Type:   model.ValidationRejected,
				Issues: []string{fmt.Sprintf("internal error: %v", r)},
			}
		}
	}()

	result = model.ValidationResult{
		Seq:   citation.Seq,
		URL:   citation.URL,
		Title: citation.Title,
		Type:  model.ValidationRejected,
	}

	if !ValidFormat(citation.URL) {
		result.Issues = append(result.Issues, "invalid URL format")
	} else {
		probe := v.prober.Probe(ctx, citation.URL)
		if probe.IsValid {
			if v.filter != nil && v.filter.Excluded(probe.FinalURL, vc) {
				result.Issues = append(result.Issues, "filtered: host excluded by policy")
			} else {
				result.IsValid = true
				result.URL = probe.FinalURL
				result.Type = model.ValidationOriginal
				return result
			}
		} else {
			result.Issues = append(result.Issues, probe.Issue)
		}
	}

	if alt, ok := v.tryDOI(ctx, citation, vc); ok {
		result.IsValid = true
		result.URL = alt
		result.Type = model.ValidationDOI
		result.Issues = append(result.Issues, "resolved via DOI")
		return result
	}

	if v.searcher == nil {
		result.Issues = append(result.Issues, "alternative search disabled")
		return result
	}

	select {
	case <-ctx.Done():
		result.Issues = append(result.Issues, "context cancelled before search")
		return result
	case v.searchSem <- struct{}{}:
	}
	defer func() { <-v.searchSem }()

	alt, err := v.searcher.FindAlternative(ctx, citation, vc)
	if err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("alternative search failed: %v", err))
		return result
	}
	if alt == nil {
		result.Issues = append(result.Issues, "no verifiable alternative found")
		return result
	}

	result.IsValid = true
	result.URL = alt.URL
	if alt.Title != "" {
		result.Title = alt.Title
	}
	result.Type = model.ValidationAlternative
	result.Issues = append(result.Issues, "replaced with alternative source")
	return result
}

// tryDOI attempts to resolve the citation through its DOI before falling
// back to search. Returns the resolved URL on success.
func (v *Validator) tryDOI(ctx context.Context, citation model.Citation, vc model.ValidationContext) (string, bool) {
	doi := strings.TrimSpace(citation.DOI)
	if doi == "" {
		return "", false
	}

	doiURL := v.doiBase + doi
	probe := v.prober.Probe(ctx, doiURL)
	if !probe.IsValid {
		return "", false
	}
	if v.filter != nil && v.filter.Excluded(probe.FinalURL, vc) {
		return "", false
	}
	return probe.FinalURL, true
}
