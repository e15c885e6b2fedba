package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name disables the LLM (returns nil, nil); callers
// treat a nil provider as "alternative search unavailable".
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "gemini", "google":
		return NewGeminiProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: gemini, openai)", config.Provider)
	}
}
