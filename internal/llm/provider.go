package llm

import (
	"context"
	"time"

	"github.com/yousif-abd/openblog-sub000/internal/model"
)

// Provider defines the interface for LLM providers used by the
// alternative-source searcher.
type Provider interface {
	// Name returns the provider name
	Name() string

	// SupportsSearch reports whether the provider can ground generation
	// with live web search results.
	SupportsSearch() bool

	// GenerateContent runs one completion. A request with EnableSearch on
	// a provider that does not support search still completes, without
	// grounding; the searcher independently re-validates every candidate
	// URL, so an ungrounded answer degrades to a failed candidate, never
	// a silently trusted one.
	GenerateContent(ctx context.Context, req Request) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Request describes one completion request
type Request struct {
	// Prompt is the full prompt text
	Prompt string

	// EnableSearch asks for web-search grounding when the provider has it
	EnableSearch bool

	// ForceJSON asks for a JSON object response where the provider
	// supports constrained output. Callers must still parse defensively.
	ForceJSON bool

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int

	// Temperature controls randomness (0 = provider default)
	Temperature float32
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "gemini", "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Timeout:  60 * time.Second,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider: modelConfig.Provider,
		Model:    modelConfig.Model,
		APIKey:   modelConfig.APIKey,
		BaseURL:  modelConfig.BaseURL,
		Timeout:  modelConfig.Timeout,
	}
}
