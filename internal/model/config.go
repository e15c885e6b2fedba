package model

import "time"

// Config holds the complete citecheck configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Filter      FilterConfig      `yaml:"filter" mapstructure:"filter"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Robots      RobotsConfig      `yaml:"robots" mapstructure:"robots"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig holds HTTP client settings shared by the prober and sniffer
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxRedirects int           `yaml:"max_redirects" mapstructure:"max_redirects"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig holds probe-result cache settings.
// Failures expire faster than successes so transient outages retry sooner.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	SuccessTTL      time.Duration `yaml:"success_ttl" mapstructure:"success_ttl"`
	FailureTTL      time.Duration `yaml:"failure_ttl" mapstructure:"failure_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
	Dir             string        `yaml:"dir,omitempty" mapstructure:"dir"` // enables the disk layer when set
}

// ConcurrencyConfig bounds in-flight work.
// Searches are far more expensive than probes and get their own bound.
type ConcurrencyConfig struct {
	ValidationWorkers int `yaml:"validation_workers" mapstructure:"validation_workers"`
	SearchWorkers     int `yaml:"search_workers" mapstructure:"search_workers"`
}

// FilterConfig holds domain filtering settings
type FilterConfig struct {
	// ForbiddenHosts are infrastructure hosts (redirectors, shorteners)
	// that are never acceptable citation targets.
	ForbiddenHosts []string `yaml:"forbidden_hosts" mapstructure:"forbidden_hosts"`
}

// SearchConfig holds alternative-source search settings
type SearchConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	// Provider name: "gemini", "openai"
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model,omitempty" mapstructure:"model"`
	APIKey   string `yaml:"-" mapstructure:"-"`
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RateLimitConfig holds per-domain probe rate limiting
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// RobotsConfig controls robots.txt compliance checks before probing.
// Disabled by default: a citation check is a single request, not a crawl.
type RobotsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "citecheck/0.3 (+https://github.com/yousif-abd/openblog-sub000)",
			MaxRedirects: 3,
			MaxBodyBytes: 64 * 1024,
		},
		Cache: CacheConfig{
			Enabled:         true,
			SuccessTTL:      1 * time.Hour,
			FailureTTL:      10 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			ValidationWorkers: 10,
			SearchWorkers:     3,
		},
		Filter: FilterConfig{
			ForbiddenHosts: []string{
				"bit.ly",
				"t.co",
				"goo.gl",
				"tinyurl.com",
				"lnkd.in",
			},
		},
		Search: SearchConfig{
			Enabled:     true,
			MaxAttempts: 2,
			Timeout:     90 * time.Second,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Timeout:  60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2.0,
			BurstSize:         5,
		},
		Robots: RobotsConfig{
			Enabled: false,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
