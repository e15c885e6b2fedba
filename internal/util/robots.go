package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker answers whether a URL may be probed under the target
// site's robots.txt. Rulesets are fetched once per origin and cached
// for the lifetime of the checker.
type RobotsChecker struct {
	mu        sync.RWMutex
	rules     map[string]*robotstxt.RobotsData // keyed by scheme://host
	client    *http.Client
	userAgent string
}

// NewRobotsChecker returns a checker that identifies itself with the
// given user agent when fetching robots.txt files.
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		rules:     make(map[string]*robotstxt.RobotsData),
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// IsAllowed reports whether rawURL may be fetched. Unparseable URLs,
// unreachable robots.txt files, and missing rulesets all allow the
// fetch; only an explicit disallow rule blocks it.
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true
	}

	origin := parsed.Scheme + "://" + parsed.Host
	data, err := r.rulesFor(ctx, origin)
	if err != nil {
		return true
	}
	return data.TestAgent(parsed.Path, r.userAgent)
}

// rulesFor returns the cached ruleset for an origin, fetching and
// parsing its robots.txt on first use.
func (r *RobotsChecker) rulesFor(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	r.mu.RLock()
	data, ok := r.rules[origin]
	r.mu.RUnlock()
	if ok {
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("create robots request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.mu.Lock()
	r.rules[origin] = data
	r.mu.Unlock()
	return data, nil
}
