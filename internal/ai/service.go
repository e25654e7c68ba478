package ai

import (
	"context"

	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/httpclient"
	"github.com/kbukum/vibeapi/internal/logger"
)

// Service dispatches chat requests to the configured providers.
type Service struct {
	cfg       Config
	openai    *httpclient.Client
	anthropic *httpclient.Client
	log       *logger.Logger
}

// NewService wires the AI service. Providers without an API key stay nil and
// reject requests.
func NewService(cfg Config, log *logger.Logger) *Service {
	s := &Service{cfg: cfg, log: log.WithComponent("ai")}

	if cfg.OpenAI.APIKey != "" {
		s.openai = httpclient.New(httpclient.Config{
			BaseURL: cfg.OpenAI.BaseURL,
			Timeout: cfg.Timeout,
			Auth:    httpclient.BearerAuth(cfg.OpenAI.APIKey),
		})
	}
	if cfg.Anthropic.APIKey != "" {
		s.anthropic = httpclient.New(httpclient.Config{
			BaseURL: cfg.Anthropic.BaseURL,
			Timeout: cfg.Timeout,
			Headers: map[string]string{"anthropic-version": "2023-06-01"},
			Auth:    httpclient.APIKeyAuth("x-api-key", cfg.Anthropic.APIKey),
		})
	}

	return s
}

// Chat runs a completion against the named provider, falling back to the
// configured default when the request does not name one.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	provider := req.Provider
	if provider == "" {
		provider = s.cfg.DefaultProvider
	}

	var (
		resp *ChatResponse
		err  error
	)
	switch provider {
	case ProviderOpenAI:
		if s.openai == nil {
			return nil, apperrors.Validation("provider openai is not configured")
		}
		resp, err = s.chatOpenAI(ctx, req)
	case ProviderAnthropic:
		if s.anthropic == nil {
			return nil, apperrors.Validation("provider anthropic is not configured")
		}
		resp, err = s.chatAnthropic(ctx, req)
	case ProviderLocal:
		resp, err = s.chatLocal(ctx, req)
	default:
		return nil, apperrors.Validation("provider must be one of: openai, anthropic, local")
	}

	if err != nil {
		s.log.Error("Provider call failed", map[string]interface{}{
			"provider": string(provider),
			"error":    err.Error(),
		})
		return nil, apperrors.ExternalServiceError(string(provider), err)
	}
	return resp, nil
}

// Embedding generates an embedding vector for the given text. Embeddings
// always go to OpenAI regardless of the default chat provider.
func (s *Service) Embedding(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	if s.openai == nil {
		return nil, apperrors.Validation("provider openai is required for embeddings")
	}

	resp, err := s.embedOpenAI(ctx, req)
	if err != nil {
		s.log.Error("Provider call failed", map[string]interface{}{
			"provider": string(ProviderOpenAI),
			"error":    err.Error(),
		})
		return nil, apperrors.ExternalServiceError(string(ProviderOpenAI), err)
	}
	return resp, nil
}
