package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the default model for search-grounded generation
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements Provider on the Gemini API. It is the only
// provider with a web-search grounding tool, which makes it the default
// for alternative-source search.
type GeminiProvider struct {
	client *genai.Client
	config Config
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(config Config) (*GeminiProvider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_AI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required: set GEMINI_API_KEY")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// SupportsSearch reports that Gemini can ground with Google Search
func (p *GeminiProvider) SupportsSearch() bool {
	return true
}

// IsAvailable checks if the provider is configured
func (p *GeminiProvider) IsAvailable(ctx context.Context) bool {
	return p.client != nil
}

// GenerateContent runs one completion, optionally grounded with Google
// Search. The API rejects combining the search tool with a constrained
// response schema, so ForceJSON is honored only for ungrounded requests;
// grounded requests rely on prompt instructions and lenient parsing.
func (p *GeminiProvider) GenerateContent(ctx context.Context, req Request) (string, error) {
	if req.Prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	modelName := p.config.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: req.Prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		config.Temperature = &temp
	}
	if req.EnableSearch {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else if req.ForceJSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := p.client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}
