package worker

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound probes per target host so that a batch
// with many citations on one site does not hammer it.
type Limiter struct {
	mu      sync.RWMutex
	perHost map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// NewLimiter creates a limiter that allows requestsPerSecond to each
// distinct host, with the given burst size.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		perHost: make(map[string]*rate.Limiter),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

// Wait blocks until the host of rawURL has capacity or ctx is done.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := hostKey(rawURL)
	if err != nil {
		return err
	}
	return l.hostLimiter(host).Wait(ctx)
}

// Allow reports whether a probe of rawURL may proceed right now,
// consuming a token if so.
func (l *Limiter) Allow(rawURL string) bool {
	host, err := hostKey(rawURL)
	if err != nil {
		return false
	}
	return l.hostLimiter(host).Allow()
}

// SetDomainRate overrides the rate for one host.
func (l *Limiter) SetDomainRate(host string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.burst
	}
	l.perHost[host] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *Limiter) hostLimiter(host string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.perHost[host]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.perHost[host]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.limit, l.burst)
	l.perHost[host] = lim
	return lim
}

func hostKey(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}
