package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yousif-abd/openblog-sub000/internal/model"
	"github.com/yousif-abd/openblog-sub000/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	httpTimeout time.Duration
	userAgent   string
	noCache     bool
	cacheDir    string
	noFooter    bool
	noSearch    bool
	robots      bool
	llmProvider string
	llmModel    string
	httpProxy   string
	httpsProxy  string

	companyURL    string
	competitors   []string
	language      string
	filterCompany bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file-or-url>",
	Short: "Validate and repair the citations of one article or citation set",
	Long: `Validate checks every citation in the input:
- URL format validation (http/https, plausible host)
- Liveness probe with HEAD, falling back to GET
- Soft-404 detection on pages that return 200 for missing content
- Domain filtering (competitors, link shorteners, optionally the company itself)
- Alternative-source search for broken or filtered citations
- Dropped citations have their in-text markers stripped from the article

The input is a citations JSON file, an article HTML file, or a published URL.

Example:
  citecheck validate article.html --competitors rival.com --json report.json
  citecheck validate citations.json --company-url https://acme.com --filter-company
  citecheck validate https://blog.acme.com/post --md report.md --no-search`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	// Output flags
	validateCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	validateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	validateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Validation context flags
	validateCmd.Flags().StringVar(&companyURL, "company-url", "", "company URL the article is written for")
	validateCmd.Flags().StringSliceVar(&competitors, "competitors", nil, "competitor domains or URLs to exclude")
	validateCmd.Flags().StringVar(&language, "language", "", "preferred language for alternative sources")
	validateCmd.Flags().BoolVar(&filterCompany, "filter-company", false, "also exclude URLs on the company's own domain")

	// HTTP flags
	validateCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall validation timeout")
	validateCmd.Flags().DurationVar(&httpTimeout, "http-timeout", 10*time.Second, "per-request HTTP timeout")
	validateCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	validateCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	validateCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	validateCmd.Flags().BoolVar(&robots, "robots", false, "respect robots.txt before probing")

	// Cache flags
	validateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable probe-result cache")
	validateCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist probe results to this directory")

	// Search flags
	validateCmd.Flags().BoolVar(&noSearch, "no-search", false, "disable alternative-source search")
	validateCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider for search (gemini, openai)")
	validateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runValidate(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
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

	if verbose {
		fmt.Fprintf(os.Stderr, "Validating: %s\n", input)
		fmt.Fprintf(os.Stderr, "Workers: %d validation, %d search\n",
			cfg.Concurrency.ValidationWorkers, cfg.Concurrency.SearchWorkers)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintf(os.Stderr, "Search: %v\n", cfg.Search.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	var report *model.Report
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		report, err = p.ValidateURL(ctx, input, vc)
	} else {
		report, err = p.ValidateFile(ctx, input, vc)
	}
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig layers the configuration: defaults, then the config file and
// CITECHECK_* environment via viper, then explicit flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if httpTimeout > 0 {
		cfg.HTTP.Timeout = httpTimeout
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if noSearch {
		cfg.Search.Enabled = false
	}
	if robots {
		cfg.Robots.Enabled = true
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// API keys come from the environment, never the config file
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Search.Enabled && cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "gemini", "google":
		// The gemini provider falls back to GEMINI_API_KEY itself
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg, nil
}
