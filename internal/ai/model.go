// Package ai proxies chat completions to external model providers. Provider
// selection is a closed enum; dispatch is a switch, not an interface, so the
// full provider set is visible in one place.
package ai

import "fmt"

// Provider identifies a model provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderLocal     Provider = "local"
)

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderLocal:
		return true
	}
	return false
}

// ParseProvider converts a wire-form provider string into a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", fmt.Errorf("ai: unknown provider %q", s)
	}
	return p, nil
}

// ChatRequest is the payload for a chat completion.
type ChatRequest struct {
	Message      string   `json:"message" validate:"required,min=1"`
	Provider     Provider `json:"provider,omitempty" validate:"omitempty,oneof=openai anthropic local"`
	Model        string   `json:"model,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens    *int     `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
}

// ChatResponse is the result of a chat completion.
type ChatResponse struct {
	Response   string   `json:"response"`
	Provider   Provider `json:"provider"`
	Model      string   `json:"model"`
	TokensUsed *int     `json:"tokens_used,omitempty"`
}

// StreamChunk is one piece of a chunked completion on the streaming endpoint.
// Done marks the final chunk.
type StreamChunk struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
}

// EmbeddingRequest is the payload for embedding generation.
type EmbeddingRequest struct {
	Text  string `json:"text" validate:"required,min=1"`
	Model string `json:"model,omitempty"`
}

// EmbeddingResponse carries the generated vector.
type EmbeddingResponse struct {
	Embedding  []float32 `json:"embedding"`
	Model      string    `json:"model"`
	Dimensions int       `json:"dimensions"`
}
