package ai

import (
	"context"
	"fmt"
)

// The local provider is a stub for on-host inference. It answers with a
// canned completion so the endpoint surface can be exercised without an API
// key.
// TODO: run real inference against cfg.Local.ModelPath (llama.cpp or ONNX
// runtime bindings) instead of echoing the message.

func (s *Service) chatLocal(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	s.log.Warn("Local provider is a stub, returning canned completion", map[string]interface{}{
		"model_path": s.cfg.Local.ModelPath,
	})

	model := req.Model
	if model == "" {
		model = s.cfg.Local.Model
	}

	return &ChatResponse{
		Response: fmt.Sprintf("Local model response (mock): Received message: %s", req.Message),
		Provider: ProviderLocal,
		Model:    model,
	}, nil
}
