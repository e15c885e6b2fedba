package validate

import "testing"

func TestValidFormat(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"https URL", "https://example.com/page", true},
		{"http URL", "http://example.com", true},
		{"with query and fragment", "https://example.com/p?q=1#sec", true},
		{"IP host", "http://192.168.1.1/status", true},
		{"localhost", "http://localhost:8080/x", true},
		{"empty", "", false},
		{"no scheme", "example.com/page", false},
		{"ftp scheme", "ftp://example.com/file", false},
		{"scheme only", "https://", false},
		{"hostless", "https:///path", false},
		{"bare word host", "https://notadomain", false},
		{"whitespace", "   ", false},
		{"mailto", "mailto:user@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidFormat(tt.url); got != tt.valid {
				t.Errorf("ValidFormat(%q) = %v, want %v", tt.url, got, tt.valid)
			}
		})
	}
}
