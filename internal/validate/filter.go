package validate

import (
	"net/url"
	"strings"

	"github.com/yousif-abd/openblog-sub000/internal/model"
)

// DomainFilter decides whether a live URL must still be excluded by policy:
// forbidden infrastructure hosts, the company's own domain (when the caller
// asks for it), and competitor domains. Filtering is pure string work with
// no I/O.
type DomainFilter struct {
	forbidden map[string]bool
}

// NewDomainFilter creates a filter with the given forbidden hosts.
// A nil list uses the built-in defaults.
func NewDomainFilter(forbiddenHosts []string) *DomainFilter {
	if forbiddenHosts == nil {
		forbiddenHosts = model.DefaultConfig().Filter.ForbiddenHosts
	}

	forbidden := make(map[string]bool, len(forbiddenHosts))
	for _, host := range forbiddenHosts {
		forbidden[normalizeHost(host)] = true
	}

	return &DomainFilter{forbidden: forbidden}
}

// Excluded reports whether rawURL must be excluded under the given context,
// regardless of whether the URL is live.
func (f *DomainFilter) Excluded(rawURL string, vc model.ValidationContext) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}

	if f.forbidden[host] {
		return true
	}
	for root := range f.forbidden {
		if isSubdomain(host, root) {
			return true
		}
	}

	// Company-domain citations are legitimate by default (case studies on
	// the company's own site); the caller opts in to filtering them.
	if vc.FilterCompany && vc.CompanyURL != "" {
		if company := hostOf(vc.CompanyURL); company != "" {
			if host == company || isSubdomain(host, company) {
				return true
			}
		}
	}

	for _, entry := range vc.Competitors {
		if matchesCompetitor(host, rawURL, entry) {
			return true
		}
	}

	return false
}

// matchesCompetitor checks one competitor entry, which may be a raw domain,
// a full URL, or a comma-separated list of either. A parse failure for one
// piece degrades to substring containment instead of failing the filter.
func matchesCompetitor(host, rawURL, entry string) bool {
	for _, piece := range strings.Split(entry, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}

		competitor := hostOf(piece)
		if competitor == "" {
			// Unparseable entry: fall back to case-insensitive containment
			if strings.Contains(strings.ToLower(rawURL), strings.ToLower(piece)) {
				return true
			}
			continue
		}

		if host == competitor || isSubdomain(host, competitor) {
			return true
		}
	}
	return false
}

// hostOf extracts the normalized hostname from a URL or bare domain.
// Returns "" when nothing hostname-like can be recovered.
func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}

	return normalizeHost(parsed.Hostname())
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	return strings.TrimPrefix(host, "www.")
}

func isSubdomain(host, root string) bool {
	return strings.HasSuffix(host, "."+root)
}
