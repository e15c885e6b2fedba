package cache

import (
	"encoding/json"
	"time"
)

// ProbeResult is the cached outcome of probing one URL.
type ProbeResult struct {
	IsValid  bool      `json:"is_valid"`
	FinalURL string    `json:"final_url"`
	Issue    string    `json:"issue,omitempty"`
	CachedAt time.Time `json:"cached_at"`
}

// ResultStore maps normalized URLs to probe outcomes with polarity-dependent
// TTLs: failures expire faster than successes so possibly-transient outages
// are retried sooner. Concurrent pipelines share one store without extra
// coordination; keys are per-URL and a benign race costs at most one
// duplicate probe.
type ResultStore struct {
	backend    Cache
	successTTL time.Duration
	failureTTL time.Duration
	now        func() time.Time // injectable for tests
}

// NewResultStore creates a result store over the given cache backend
func NewResultStore(backend Cache, successTTL, failureTTL time.Duration) *ResultStore {
	return &ResultStore{
		backend:    backend,
		successTTL: successTTL,
		failureTTL: failureTTL,
		now:        time.Now,
	}
}

// Get returns the cached probe result for a URL, if present and fresh.
// An entry older than the TTL for its polarity is a miss.
func (s *ResultStore) Get(url string) (ProbeResult, bool) {
	data, found := s.backend.Get(Key(url))
	if !found {
		return ProbeResult{}, false
	}

	var result ProbeResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Corrupt entry: drop it and treat as a miss
		_ = s.backend.Delete(Key(url))
		return ProbeResult{}, false
	}

	ttl := s.failureTTL
	if result.IsValid {
		ttl = s.successTTL
	}
	if s.now().Sub(result.CachedAt) > ttl {
		return ProbeResult{}, false
	}

	return result, true
}

// Set records a probe result for a URL. The backend entry lives for the
// longer success TTL; Get re-checks the polarity TTL on read so a failure
// entry still goes stale early.
func (s *ResultStore) Set(url string, result ProbeResult) {
	if result.CachedAt.IsZero() {
		result.CachedAt = s.now()
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	_ = s.backend.Set(Key(url), data, s.successTTL)
}

// Clear empties the store
func (s *ResultStore) Clear() {
	_ = s.backend.Clear()
}
