package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/vibeapi/internal/ai"
	"github.com/kbukum/vibeapi/internal/logger"
)

func newAIRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := ai.Config{DefaultProvider: ai.ProviderLocal, Timeout: time.Second}
	cfg.ApplyDefaults()
	svc := ai.NewService(cfg, logger.NewDefault("test"))

	engine := gin.New()
	api := engine.Group("/api")
	NewAIHandler(svc).RegisterRoutes(api)
	return engine
}

func TestAIHandler_Chat(t *testing.T) {
	engine := newAIRouter(t)

	rec := postJSON(t, engine, "/api/ai/chat", map[string]string{
		"message":  "hello",
		"provider": "local",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data ai.ChatResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Data.Provider != ai.ProviderLocal {
		t.Errorf("expected provider local, got %s", envelope.Data.Provider)
	}
	if envelope.Data.Response == "" {
		t.Error("expected a completion")
	}
}

func TestAIHandler_Chat_UnknownProvider(t *testing.T) {
	engine := newAIRouter(t)

	rec := postJSON(t, engine, "/api/ai/chat", map[string]string{
		"message":  "hello",
		"provider": "gemini",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if code := decodeErrCode(t, rec); code != "INVALID_INPUT" {
		t.Errorf("expected code INVALID_INPUT, got %s", code)
	}
}

func TestAIHandler_ChatStream(t *testing.T) {
	engine := newAIRouter(t)

	rec := postJSON(t, engine, "/api/ai/chat/stream", map[string]string{
		"message":  "stream me a long enough answer to span several chunks",
		"provider": "local",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected event-stream content type, got %q", ct)
	}

	var chunks []ai.StreamChunk
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var chunk ai.StreamChunk
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &chunk); err != nil {
			t.Fatalf("unexpected error decoding chunk %q: %v", line, err)
		}
		chunks = append(chunks, chunk)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	var assembled strings.Builder
	for i, chunk := range chunks {
		assembled.WriteString(chunk.Content)
		if got, want := chunk.Done, i == len(chunks)-1; got != want {
			t.Errorf("chunk %d: expected done=%t, got %t", i, want, got)
		}
	}
	if !strings.Contains(assembled.String(), "stream me a long enough answer") {
		t.Errorf("expected chunks to reassemble the completion, got %q", assembled.String())
	}
}

func TestAIHandler_ChatStream_ValidationBeforeStreaming(t *testing.T) {
	engine := newAIRouter(t)

	rec := postJSON(t, engine, "/api/ai/chat/stream", map[string]string{
		"provider": "local",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); strings.HasPrefix(ct, "text/event-stream") {
		t.Error("expected a JSON error, not an event stream")
	}
}

func TestAIHandler_Embeddings_RequiresOpenAI(t *testing.T) {
	engine := newAIRouter(t)

	rec := postJSON(t, engine, "/api/ai/embeddings", map[string]string{
		"text": "embed me",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if code := decodeErrCode(t, rec); code != "INVALID_INPUT" {
		t.Errorf("expected code INVALID_INPUT, got %s", code)
	}
}

func TestAIHandler_Embeddings_EmptyText(t *testing.T) {
	engine := newAIRouter(t)

	rec := postJSON(t, engine, "/api/ai/embeddings", map[string]string{
		"text": "",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if code := decodeErrCode(t, rec); code != "INVALID_INPUT" {
		t.Errorf("expected code INVALID_INPUT, got %s", code)
	}
}
