package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/yousif-abd/openblog-sub000/internal/model"
)

// fakeFileValidator implements FileValidator
type fakeFileValidator struct {
	failPath string
	calls    int32
}

func (v *fakeFileValidator) ValidateFile(ctx context.Context, path string, vc model.ValidationContext) (*model.Report, error) {
	atomic.AddInt32(&v.calls, 1)
	if path == v.failPath {
		return nil, errors.New("unreadable file")
	}
	return &model.Report{Source: path, Context: vc}, nil
}

func TestBatchProcessor_ProcessFiles(t *testing.T) {
	validator := &fakeFileValidator{}
	processor := NewBatchProcessor(validator, 3)

	paths := []string{"a.json", "b.html", "c.json"}
	vc := model.ValidationContext{CompanyURL: "https://acme.com"}

	results := processor.ProcessFiles(context.Background(), paths, vc)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if atomic.LoadInt32(&validator.calls) != 3 {
		t.Errorf("expected 3 validations, got %d", validator.calls)
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: %v", r.Path, r.Error)
			continue
		}
		if r.Report.Source != r.Path {
			t.Errorf("report source %q for path %q", r.Report.Source, r.Path)
		}
		if r.Report.Context.CompanyURL != vc.CompanyURL {
			t.Errorf("context not propagated for %s", r.Path)
		}
		seen[r.Path] = true
	}
	for _, p := range paths {
		if !seen[p] {
			t.Errorf("missing result for %s", p)
		}
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	validator := &fakeFileValidator{failPath: "bad.json"}
	processor := NewBatchProcessor(validator, 2)

	results := processor.ProcessFiles(context.Background(), []string{"ok.json", "bad.json"}, model.ValidationContext{})

	var okCount, errCount int
	for _, r := range results {
		if r.Error != nil {
			errCount++
			if r.Path != "bad.json" {
				t.Errorf("wrong path failed: %s", r.Path)
			}
		} else {
			okCount++
		}
	}
	if okCount != 1 || errCount != 1 {
		t.Errorf("ok=%d err=%d", okCount, errCount)
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(&fakeFileValidator{}, 2)

	results := processor.ProcessFiles(context.Background(), nil, model.ValidationContext{})
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "files.txt")

	content := "a.json\n\n# comment line\nb.html\na.json\n  c.json  \n"
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(manifest)
	if err != nil {
		t.Fatalf("ReadPathsFromFile: %v", err)
	}

	want := []string{"a.json", "b.html", "c.json"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	if _, err := ReadPathsFromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestBatchProcessor_Manifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "m.txt")
	if err := os.WriteFile(manifest, []byte("x.json\ny.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	validator := &fakeFileValidator{}
	processor := NewBatchProcessor(validator, 2)

	results, err := processor.ProcessManifest(context.Background(), manifest, model.ValidationContext{})
	if err != nil {
		t.Fatalf("ProcessManifest: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
