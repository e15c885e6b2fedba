package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCitations_BareArray(t *testing.T) {
	data := []byte(`[
		{"sequence_number": 1, "url": "https://example.com/a", "title": "A"},
		{"sequence_number": 2, "url": "https://example.com/b", "doi": "10.1000/b"}
	]`)

	file, err := ParseCitations(data)
	if err != nil {
		t.Fatalf("ParseCitations: %v", err)
	}
	if len(file.Citations) != 2 {
		t.Fatalf("citations = %d", len(file.Citations))
	}
	if file.Citations[0].Seq != 1 || file.Citations[0].URL != "https://example.com/a" {
		t.Errorf("citation 0 = %+v", file.Citations[0])
	}
	if file.Citations[1].DOI != "10.1000/b" {
		t.Errorf("citation 1 DOI = %q", file.Citations[1].DOI)
	}
	if file.Context != nil {
		t.Errorf("bare array produced a context: %+v", file.Context)
	}
}

func TestParseCitations_ObjectWithContext(t *testing.T) {
	data := []byte(`{
		"citations": [{"sequence_number": 1, "url": "https://example.com"}],
		"context": {"company_url": "https://acme.com", "competitors": ["rival.com"], "language": "French"}
	}`)

	file, err := ParseCitations(data)
	if err != nil {
		t.Fatalf("ParseCitations: %v", err)
	}
	if len(file.Citations) != 1 {
		t.Fatalf("citations = %d", len(file.Citations))
	}
	if file.Context == nil {
		t.Fatal("context missing")
	}
	if file.Context.CompanyURL != "https://acme.com" || file.Context.Language != "French" {
		t.Errorf("context = %+v", file.Context)
	}
}

func TestParseCitations_Invalid(t *testing.T) {
	for _, data := range []string{
		`{not json`,
		`{"other": 1}`,
		`"just a string"`,
	} {
		if _, err := ParseCitations([]byte(data)); err == nil {
			t.Errorf("no error for %q", data)
		}
	}
}

func TestLoadCitations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citations.json")
	if err := os.WriteFile(path, []byte(`[{"sequence_number": 1, "url": "https://example.com"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := LoadCitations(path)
	if err != nil {
		t.Fatalf("LoadCitations: %v", err)
	}
	if len(file.Citations) != 1 {
		t.Errorf("citations = %d", len(file.Citations))
	}
}

func TestLoadCitations_Missing(t *testing.T) {
	if _, err := LoadCitations(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error")
	}
}
