package validate

import (
	"testing"

	"github.com/yousif-abd/openblog-sub000/internal/model"
)

func TestDomainFilter_Forbidden(t *testing.T) {
	filter := NewDomainFilter(nil) // built-in defaults

	tests := []struct {
		name     string
		url      string
		excluded bool
	}{
		{"shortener", "https://bit.ly/3xYz", true},
		{"shortener subdomain", "https://api.bit.ly/stats", true},
		{"twitter shortener", "https://t.co/abc", true},
		{"ordinary host", "https://example.com/page", false},
		{"host containing shortener name", "https://notbit.ly.example.com.evil.org", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Excluded(tt.url, model.ValidationContext{}); got != tt.excluded {
				t.Errorf("Excluded(%q) = %v, want %v", tt.url, got, tt.excluded)
			}
		})
	}
}

func TestDomainFilter_Company(t *testing.T) {
	filter := NewDomainFilter([]string{})

	vc := model.ValidationContext{CompanyURL: "https://www.acme.com"}

	// Company citations pass by default
	if filter.Excluded("https://acme.com/case-study", vc) {
		t.Error("company URL excluded without FilterCompany")
	}

	vc.FilterCompany = true
	if !filter.Excluded("https://acme.com/case-study", vc) {
		t.Error("company URL not excluded with FilterCompany")
	}
	if !filter.Excluded("https://blog.acme.com/post", vc) {
		t.Error("company subdomain not excluded with FilterCompany")
	}
	if filter.Excluded("https://example.com/about-acme", vc) {
		t.Error("unrelated host excluded")
	}
}

func TestDomainFilter_Competitors(t *testing.T) {
	filter := NewDomainFilter([]string{})

	tests := []struct {
		name        string
		url         string
		competitors []string
		excluded    bool
	}{
		{"bare domain", "https://rival.com/report", []string{"rival.com"}, true},
		{"full URL entry", "https://rival.com/report", []string{"https://rival.com/about"}, true},
		{"subdomain of competitor", "https://docs.rival.com/api", []string{"rival.com"}, true},
		{"comma-separated list", "https://other.io/x", []string{"rival.com, other.io"}, true},
		{"www prefix on entry", "https://rival.com", []string{"www.rival.com"}, true},
		{"non-competitor", "https://example.com", []string{"rival.com"}, false},
		{"empty entry", "https://example.com", []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vc := model.ValidationContext{Competitors: tt.competitors}
			if got := filter.Excluded(tt.url, vc); got != tt.excluded {
				t.Errorf("Excluded(%q, %v) = %v, want %v", tt.url, tt.competitors, got, tt.excluded)
			}
		})
	}
}

func TestDomainFilter_UnparseableURL(t *testing.T) {
	filter := NewDomainFilter(nil)

	// Garbage never panics and is never excluded
	if filter.Excluded("://not-a-url", model.ValidationContext{}) {
		t.Error("garbage URL excluded")
	}
}
