package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yousif-abd/openblog-sub000/internal/model"
)

// FileValidator validates all citations in one article or citation file.
type FileValidator interface {
	ValidateFile(ctx context.Context, path string, vc model.ValidationContext) (*model.Report, error)
}

// FileJob validates a single file
type FileJob struct {
	Path      string
	Context   model.ValidationContext
	Validator FileValidator
}

// Execute runs the validation job
func (j *FileJob) Execute(ctx context.Context) Result {
	report, err := j.Validator.ValidateFile(ctx, j.Path, j.Context)
	return &FileResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// FileResult is the outcome of validating one file
type FileResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the result
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor validates multiple citation files concurrently
type BatchProcessor struct {
	validator   FileValidator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(validator FileValidator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		validator:   validator,
		concurrency: concurrency,
	}
}

// ProcessFiles validates the given files concurrently under one shared
// validation context.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string, vc model.ValidationContext) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start(ctx)

	for _, path := range paths {
		pool.Submit(&FileJob{
			Path:      path,
			Context:   vc,
			Validator: b.validator,
		})
	}

	results := pool.Wait()

	fileResults := make([]*FileResult, len(results))
	for i, result := range results {
		fileResults[i] = result.(*FileResult)
	}

	return fileResults
}

// ProcessManifest reads file paths from a manifest and validates them
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string, vc model.ValidationContext) ([]*FileResult, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessFiles(ctx, paths, vc), nil
}

// ReadPathsFromFile reads file paths from a manifest (one per line)
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
