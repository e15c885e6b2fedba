package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yousif-abd/openblog-sub000/internal/model"
)

// CitationFile is the parsed form of a citations JSON input. The file is
// either a bare array of citations or an object carrying citations plus an
// optional embedded validation context.
type CitationFile struct {
	Citations []model.Citation         `json:"citations"`
	Context   *model.ValidationContext `json:"context,omitempty"`
}

// LoadCitations reads and parses a citations JSON file
func LoadCitations(path string) (*CitationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read citations file: %w", err)
	}

	return ParseCitations(data)
}

// ParseCitations parses citation JSON in either accepted shape
func ParseCitations(data []byte) (*CitationFile, error) {
	// Bare array form first
	var citations []model.Citation
	if err := json.Unmarshal(data, &citations); err == nil {
		return &CitationFile{Citations: citations}, nil
	}

	var file CitationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse citations file: %w", err)
	}
	if file.Citations == nil {
		return nil, fmt.Errorf("citations file has no %q field", "citations")
	}

	return &file, nil
}
