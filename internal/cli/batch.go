package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yousif-abd/openblog-sub000/internal/model"
	"github.com/yousif-abd/openblog-sub000/internal/pipeline"
	"github.com/yousif-abd/openblog-sub000/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	manifest     bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Validate citations from multiple files in parallel",
	Long: `Batch validates multiple citation or article files concurrently:
- Accepts citation JSON files and article HTML files
- With --manifest, the single argument is a file listing paths (one per line)
- Files are processed in parallel with a configurable worker count
- Each file gets its own JSON and Markdown report in the output directory

Example:
  citecheck batch articles/*.html --competitors rival.com
  citecheck batch files.txt --manifest --concurrency 4
  citecheck batch a.json b.json --output-dir ./reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of files validated concurrently")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./citecheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&manifest, "manifest", false, "treat the argument as a manifest of file paths")

	// Validation context flags shared with validate
	batchCmd.Flags().StringVar(&companyURL, "company-url", "", "company URL the articles are written for")
	batchCmd.Flags().StringSliceVar(&competitors, "competitors", nil, "competitor domains or URLs to exclude")
	batchCmd.Flags().StringVar(&language, "language", "", "preferred language for alternative sources")
	batchCmd.Flags().BoolVar(&filterCompany, "filter-company", false, "also exclude URLs on the company's own domain")

	// HTTP and cache flags
	batchCmd.Flags().DurationVar(&httpTimeout, "http-timeout", 10*time.Second, "per-request HTTP timeout")
	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable probe-result cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist probe results to this directory")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Search flags
	batchCmd.Flags().BoolVar(&noSearch, "no-search", false, "disable alternative-source search")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider for search (gemini, openai)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	vc := model.ValidationContext{
		CompanyURL:    companyURL,
		Competitors:   competitors,
		Language:      language,
		FilterCompany: filterCompany,
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	var results []*worker.FileResult
	if manifest {
		if len(args) != 1 {
			return fmt.Errorf("--manifest takes exactly one file argument")
		}
		results, err = processor.ProcessManifest(ctx, args[0], vc)
		if err != nil {
			return err
		}
	} else {
		results = processor.ProcessFiles(ctx, args, vc)
	}

	fmt.Fprintf(os.Stderr, "Validating %d files with %d workers\n\n", len(results), concurrency)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := reportSlug(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write Markdown: %v\n", result.Path, err)
			continue
		}

		successCount++
		s := result.Report.Summary
		fmt.Fprintf(os.Stderr, "✓ %s: %d valid, %d replaced, %d dropped\n",
			result.Path, s.Valid, s.Replaced, s.Dropped)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d succeeded, %d failed, reports in %s\n",
		successCount, failureCount, outputDir)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}

// reportSlug derives an output file name from an input path
func reportSlug(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	slug := b.String()
	if len(slug) > 100 {
		slug = slug[:100]
	}
	if slug == "" {
		slug = "report"
	}
	return slug
}
