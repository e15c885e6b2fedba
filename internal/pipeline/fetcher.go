package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/yousif-abd/openblog-sub000/internal/model"
	"github.com/yousif-abd/openblog-sub000/internal/util"
)

// articleMaxBytes caps article downloads. Articles run much larger than
// the prefix the probe sniffer reads, so this is a separate, bigger cap.
const articleMaxBytes = 2 << 20

// Fetcher downloads published article HTML for re-validation
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewFetcher creates a fetcher from the shared HTTP settings
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 3
	}

	return &Fetcher{
		httpClient: &http.Client{
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
		},
		userAgent: cfg.UserAgent,
	}
}

// FetchResult contains the fetched article HTML and response metadata
type FetchResult struct {
	HTML        string
	FinalURL    string
	StatusCode  int
	ContentType string
}

// Fetch retrieves article HTML from the given URL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, articleMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		HTML:        string(body),
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
