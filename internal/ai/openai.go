package ai

import (
	"context"
	"fmt"

	"github.com/kbukum/vibeapi/internal/httpclient"
)

// Wire types for the OpenAI chat completions and embeddings APIs.

const openAIEmbeddingModel = "text-embedding-3-small"

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature *float64        `json:"temperature,omitempty"`
	MaxTokens   *int            `json:"max_tokens,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (s *Service) chatOpenAI(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = s.cfg.OpenAI.Model
	}

	var messages []openAIMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.Message})

	resp, err := s.openai.Do(ctx, httpclient.Request{
		Method: "POST",
		Path:   "/chat/completions",
		Body: openAIChatRequest{
			Model:       model,
			Messages:    messages,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		},
	})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, string(resp.Body))
	}

	var parsed openAIChatResponse
	if err := resp.Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty completion")
	}

	out := &ChatResponse{
		Response: parsed.Choices[0].Message.Content,
		Provider: ProviderOpenAI,
		Model:    model,
	}
	if parsed.Usage != nil {
		tokens := parsed.Usage.TotalTokens
		out.TokensUsed = &tokens
	}
	return out, nil
}

type openAIEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (s *Service) embedOpenAI(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	model := req.Model
	if model == "" {
		model = openAIEmbeddingModel
	}

	resp, err := s.openai.Do(ctx, httpclient.Request{
		Method: "POST",
		Path:   "/embeddings",
		Body:   openAIEmbeddingRequest{Model: model, Input: req.Text},
	})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, string(resp.Body))
	}

	var parsed openAIEmbeddingResponse
	if err := resp.Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("openai: no embedding returned")
	}

	embedding := parsed.Data[0].Embedding
	return &EmbeddingResponse{
		Embedding:  embedding,
		Model:      model,
		Dimensions: len(embedding),
	}, nil
}
