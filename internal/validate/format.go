package validate

import (
	"net"
	"net/url"
	"strings"
)

// ValidFormat reports whether raw looks like a usable absolute HTTP(S) URL.
// It is the cheapest rejection path and runs before any network I/O:
// scheme must be http or https, the host must be non-empty and either
// contain a dot, be localhost, or parse as an IP literal.
// Malformed input yields false, never an error.
func ValidFormat(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	host := parsed.Hostname()
	if host == "" {
		return false
	}

	// A trailing dot or slash that survived parsing means garbage input
	if strings.HasSuffix(host, ".") || strings.Contains(host, "/") {
		return false
	}

	if strings.Contains(host, ".") {
		return true
	}
	if strings.EqualFold(host, "localhost") {
		return true
	}
	return net.ParseIP(host) != nil
}
