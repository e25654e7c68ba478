package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/vibeapi/internal/httpclient"
)

// Wire types for the Anthropic messages API.

const anthropicDefaultMaxTokens = 2048

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicChatRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	MaxTokens   int                `json:"max_tokens"`
}

type anthropicChatResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (s *Service) chatAnthropic(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = s.cfg.Anthropic.Model
	}

	// The messages API requires max_tokens.
	maxTokens := anthropicDefaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	resp, err := s.anthropic.Do(ctx, httpclient.Request{
		Method: "POST",
		Path:   "/messages",
		Body: anthropicChatRequest{
			Model:       model,
			Messages:    []anthropicMessage{{Role: "user", Content: req.Message}},
			System:      req.SystemPrompt,
			Temperature: req.Temperature,
			MaxTokens:   maxTokens,
		},
	})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("anthropic: status %d: %s", resp.StatusCode, string(resp.Body))
	}

	var parsed anthropicChatResponse
	if err := resp.Decode(&parsed); err != nil {
		return nil, err
	}

	var parts []string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("anthropic: empty completion")
	}

	out := &ChatResponse{
		Response: strings.Join(parts, "\n"),
		Provider: ProviderAnthropic,
		Model:    model,
	}
	if parsed.Usage != nil {
		tokens := parsed.Usage.InputTokens + parsed.Usage.OutputTokens
		out.TokensUsed = &tokens
	}
	return out, nil
}
