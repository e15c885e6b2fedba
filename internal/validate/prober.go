package validate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/yousif-abd/openblog-sub000/internal/cache"
	"github.com/yousif-abd/openblog-sub000/internal/model"
	"github.com/yousif-abd/openblog-sub000/internal/retry"
	"github.com/yousif-abd/openblog-sub000/internal/util"
	"github.com/yousif-abd/openblog-sub000/internal/worker"
)

// errorPagePaths are resolved-URL path substrings that mark an error page
// even when the server answers 200.
var errorPagePaths = []string{"/404", "/not-found", "/error"}

// errTransientStatus marks 5xx/429 responses as retryable.
var errTransientStatus = errors.New("transient server status")

// Prober performs liveness checks: HEAD with GET fallback on 405, redirect
// resolution, status classification, and soft-404 sniffing for 200s.
// Outcomes are cached with polarity-dependent TTLs.
type Prober struct {
	httpClient *http.Client
	userAgent  string
	results    *cache.ResultStore  // nil disables caching
	sniffer    *Sniffer            // nil disables content sniffing
	limiter    *worker.Limiter     // nil disables per-domain rate limiting
	robots     *util.RobotsChecker // nil disables robots.txt checks
	policy     retry.Policy
}

// ProberOption configures optional prober collaborators
type ProberOption func(*Prober)

// WithResultStore attaches a probe-result cache
func WithResultStore(store *cache.ResultStore) ProberOption {
	return func(p *Prober) { p.results = store }
}

// WithLimiter attaches a per-domain rate limiter
func WithLimiter(limiter *worker.Limiter) ProberOption {
	return func(p *Prober) { p.limiter = limiter }
}

// WithRobots attaches a robots.txt compliance checker
func WithRobots(robots *util.RobotsChecker) ProberOption {
	return func(p *Prober) { p.robots = robots }
}

// WithRetryPolicy replaces the default retry policy
func WithRetryPolicy(policy retry.Policy) ProberOption {
	return func(p *Prober) { p.policy = policy }
}

// NewProber creates a prober from HTTP configuration
func NewProber(cfg model.HTTPConfig, opts ...ProberOption) *Prober {
	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 3
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	p := &Prober{
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		sniffer:    NewSniffer(httpClient, cfg.UserAgent, cfg.MaxBodyBytes),
		policy: retry.DefaultPolicy(func(err error) bool {
			return errors.Is(err, errTransientStatus) || retry.TransientNetworkError(err)
		}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe checks whether rawURL is live and non-erroneous. It consults the
// cache first and records the outcome regardless of polarity. The returned
// issue text distinguishes hard 404s, other statuses, timeouts, and soft
// 404s even though the boolean outcome is the same.
func (p *Prober) Probe(ctx context.Context, rawURL string) cache.ProbeResult {
	if p.results != nil {
		if cached, ok := p.results.Get(rawURL); ok {
			return cached
		}
	}

	if p.limiter != nil {
		_ = p.limiter.Wait(ctx, rawURL)
	}

	if p.robots != nil && !p.robots.IsAllowed(ctx, rawURL) {
		result := cache.ProbeResult{
			IsValid:  false,
			FinalURL: rawURL,
			Issue:    "robots.txt disallows fetching",
		}
		p.store(rawURL, result)
		return result
	}

	var result cache.ProbeResult
	// The result of the last attempt carries the failure issue, so the
	// retry error itself is not re-reported.
	_ = p.policy.Do(ctx, func() error {
		var retryable error
		result, retryable = p.attempt(ctx, rawURL)
		return retryable
	})

	p.store(rawURL, result)
	return result
}

// attempt performs one probe. A non-nil error marks the outcome as
// retryable; the returned result is valid either way.
func (p *Prober) attempt(ctx context.Context, rawURL string) (cache.ProbeResult, error) {
	status, finalURL, err := p.request(ctx, http.MethodHead, rawURL)
	if err == nil && status == http.StatusMethodNotAllowed {
		// Some servers reject HEAD outright; retry the same URL with GET
		status, finalURL, err = p.request(ctx, http.MethodGet, rawURL)
	}

	if err != nil {
		return p.transportFailure(rawURL, err), err
	}

	result := cache.ProbeResult{FinalURL: finalURL}

	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		result.Issue = fmt.Sprintf("hard 404 (status %d)", status)
		return result, nil

	case status == http.StatusTooManyRequests || status >= 500:
		result.Issue = fmt.Sprintf("unexpected status %d", status)
		return result, errTransientStatus

	case status < 200 || status >= 300:
		result.Issue = fmt.Sprintf("unexpected status %d", status)
		return result, nil
	}

	if path := errorPagePath(finalURL); path != "" {
		result.Issue = fmt.Sprintf("resolved to error page path %q", path)
		return result, nil
	}

	if p.sniffer != nil {
		switch p.sniffer.Sniff(ctx, finalURL) {
		case SniffHard404:
			result.Issue = "hard 404 (GET returned 404)"
			return result, nil
		case SniffSoft404:
			result.Issue = "soft 404: page content indicates not found"
			return result, nil
		}
	}

	result.IsValid = true
	return result, nil
}

// request issues a single probe request and reports the final status and
// redirect-resolved URL. The body is discarded; the sniffer re-fetches the
// prefix it needs.
func (p *Prober) request(ctx context.Context, method, rawURL string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, rawURL, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, rawURL, err
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, resp.Request.URL.String(), nil
}

// transportFailure classifies a request error into a diagnostic issue
// distinct from a definite 404.
func (p *Prober) transportFailure(rawURL string, err error) cache.ProbeResult {
	result := cache.ProbeResult{FinalURL: rawURL}

	switch {
	case isTimeout(err):
		result.Issue = fmt.Sprintf("request timeout: %v", err)
	case strings.Contains(err.Error(), "stopped after"):
		result.Issue = fmt.Sprintf("redirect limit exceeded: %v", err)
	default:
		result.Issue = fmt.Sprintf("request failed: %v", err)
	}
	return result
}

func (p *Prober) store(rawURL string, result cache.ProbeResult) {
	if p.results != nil {
		p.results.Set(rawURL, result)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "Client.Timeout") || strings.Contains(s, "context deadline exceeded")
}

// errorPagePath returns the matched error-page substring of the resolved
// URL's path, or "" if none matches.
func errorPagePath(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.ToLower(parsed.Path)
	for _, marker := range errorPagePaths {
		if strings.Contains(path, marker) {
			return marker
		}
	}
	return ""
}
