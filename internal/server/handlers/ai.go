package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/vibeapi/internal/ai"
	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/server"
	"github.com/kbukum/vibeapi/internal/validation"
)

// AIHandler serves the model proxy endpoints.
type AIHandler struct {
	svc *ai.Service
}

// NewAIHandler creates an AIHandler.
func NewAIHandler(svc *ai.Service) *AIHandler {
	return &AIHandler{svc: svc}
}

// RegisterRoutes mounts the AI endpoints. The group must already carry the
// authentication middleware.
func (h *AIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/ai")
	grp.POST("/chat", h.chat)
	grp.POST("/chat/stream", h.chatStream)
	grp.POST("/embeddings", h.embeddings)
}

func (h *AIHandler) chat(c *gin.Context) {
	var req ai.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	resp, err := h.svc.Chat(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, resp)
}

// chatStream runs the completion, then replays it to the client as SSE
// chunks. The provider call itself is not streamed.
func (h *AIHandler) chatStream(c *gin.Context) {
	var req ai.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	resp, err := h.svc.Chat(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	w := c.Writer
	flusher, ok := w.(http.Flusher)
	if !ok {
		server.RespondWithError(c, apperrors.Internal(fmt.Errorf("streaming not supported")))
		return
	}

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	chunks := ai.ChunkResponse(resp.Response, ai.StreamChunkSize)
	for i, chunk := range chunks {
		data, err := json.Marshal(ai.StreamChunk{
			Content: chunk,
			Done:    i == len(chunks)-1,
		})
		if err != nil {
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
}

func (h *AIHandler) embeddings(c *gin.Context) {
	var req ai.EmbeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	resp, err := h.svc.Embedding(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, resp)
}
