// Package pipeline wires the validation components together and exposes the
// operations the CLI drives: validating citation files, article HTML, and
// published URLs.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yousif-abd/openblog-sub000/internal/cache"
	"github.com/yousif-abd/openblog-sub000/internal/extract"
	"github.com/yousif-abd/openblog-sub000/internal/llm"
	"github.com/yousif-abd/openblog-sub000/internal/model"
	"github.com/yousif-abd/openblog-sub000/internal/search"
	"github.com/yousif-abd/openblog-sub000/internal/util"
	"github.com/yousif-abd/openblog-sub000/internal/validate"
	"github.com/yousif-abd/openblog-sub000/internal/worker"
)

// Pipeline orchestrates the complete validation process
type Pipeline struct {
	fetcher   *Fetcher
	validator *validate.Validator
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var store *cache.ResultStore
	if cfg.Cache.Enabled {
		var backend cache.Cache
		if cfg.Cache.Dir != "" {
			backend = cache.NewLayeredCache(cfg.Cache.SuccessTTL, cfg.Cache.Dir, cfg.Cache.SuccessTTL)
		} else {
			backend = cache.NewMemoryCache(cfg.Cache.SuccessTTL, cfg.Cache.CleanupInterval)
		}
		store = cache.NewResultStore(backend, cfg.Cache.SuccessTTL, cfg.Cache.FailureTTL)
	}

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)

	proberOpts := []validate.ProberOption{
		validate.WithLimiter(limiter),
	}
	if store != nil {
		proberOpts = append(proberOpts, validate.WithResultStore(store))
	}
	if cfg.Robots.Enabled {
		proberOpts = append(proberOpts, validate.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)))
	}

	prober := validate.NewProber(cfg.HTTP, proberOpts...)
	filter := validate.NewDomainFilter(cfg.Filter.ForbiddenHosts)

	var searcher validate.AlternativeSearcher
	if cfg.Search.Enabled && cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: alternative search disabled: %v\n", err)
		} else if provider != nil {
			searcher = search.NewFinder(provider, prober, filter, cfg.Search)
		}
	}

	return &Pipeline{
		fetcher:   NewFetcher(cfg.HTTP),
		validator: validate.NewValidator(prober, filter, searcher, cfg.Concurrency.ValidationWorkers, cfg.Concurrency.SearchWorkers),
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}
}

// ValidateCitations validates a citation set directly
func (p *Pipeline) ValidateCitations(ctx context.Context, citations []model.Citation, vc model.ValidationContext) (*model.BatchResult, error) {
	return p.validator.ValidateCitations(ctx, citations, vc)
}

// ValidateFile validates the citations in a local file. JSON files are
// treated as citation sets; anything else is parsed as article HTML.
func (p *Pipeline) ValidateFile(ctx context.Context, path string, vc model.ValidationContext) (*model.Report, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return p.validateCitationFile(ctx, path, vc)
	}
	return p.validateArticleFile(ctx, path, vc)
}

// ValidateURL fetches a published article and validates its sources list
func (p *Pipeline) ValidateURL(ctx context.Context, rawURL string, vc model.ValidationContext) (*model.Report, error) {
	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}

	return p.validateArticle(ctx, fetched.FinalURL, fetched.HTML, vc)
}

func (p *Pipeline) validateCitationFile(ctx context.Context, path string, vc model.ValidationContext) (*model.Report, error) {
	file, err := LoadCitations(path)
	if err != nil {
		return nil, err
	}

	// An embedded context supplies whatever the flags left unset
	if file.Context != nil {
		vc = mergeContext(vc, *file.Context)
	}

	batch, err := p.validator.ValidateCitations(ctx, file.Citations, vc)
	if err != nil {
		return nil, fmt.Errorf("validate citations: %w", err)
	}

	return p.buildReport(path, vc, batch, ""), nil
}

func (p *Pipeline) validateArticleFile(ctx context.Context, path string, vc model.ValidationContext) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read article: %w", err)
	}

	return p.validateArticle(ctx, path, string(data), vc)
}

func (p *Pipeline) validateArticle(ctx context.Context, source, htmlContent string, vc model.ValidationContext) (*model.Report, error) {
	entries, err := extract.Citations(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("extract citations: %w", err)
	}

	citations := make([]model.Citation, len(entries))
	for i, e := range entries {
		citations[i] = model.Citation{Seq: e.Seq, URL: e.URL, Title: e.Title}
	}

	batch, err := p.validator.ValidateCitations(ctx, citations, vc)
	if err != nil {
		return nil, fmt.Errorf("validate citations: %w", err)
	}

	body := extract.StripMarkers(htmlContent, batch.DroppedSet())

	return p.buildReport(source, vc, batch, body), nil
}

func (p *Pipeline) buildReport(source string, vc model.ValidationContext, batch *model.BatchResult, body string) *model.Report {
	return &model.Report{
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Context:     vc,
		Batch:       batch,
		Summary:     model.Summarize(batch),
		Body:        body,
	}
}

// mergeContext fills zero-valued fields of the flag-supplied context from
// the context embedded in the citations file. Flags win.
func mergeContext(flags, embedded model.ValidationContext) model.ValidationContext {
	if flags.CompanyURL == "" {
		flags.CompanyURL = embedded.CompanyURL
	}
	if len(flags.Competitors) == 0 {
		flags.Competitors = embedded.Competitors
	}
	if flags.Language == "" {
		flags.Language = embedded.Language
	}
	if !flags.FilterCompany {
		flags.FilterCompany = embedded.FilterCompany
	}
	return flags
}

// RenderReport writes the report to the requested outputs and prints a
// one-line summary to stdout.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
