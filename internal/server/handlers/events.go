package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/realtime"
	"github.com/kbukum/vibeapi/internal/server"
)

const keepAliveInterval = 30 * time.Second

// EventsHandler serves the SSE event stream.
type EventsHandler struct {
	hub *realtime.Hub
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// RegisterRoutes mounts the event stream endpoint. The group must already
// carry the authentication middleware.
func (h *EventsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.stream)
}

func (h *EventsHandler) stream(c *gin.Context) {
	userID, err := callerID(c)
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

	// Long-lived connection; the server's write timeout must not apply.
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := realtime.NewClient(uuid.New().String(), userID.String())
	if !h.hub.Register(client) {
		server.RespondWithError(c, apperrors.Internal(fmt.Errorf("event hub is shut down")))
		return
	}
	defer h.hub.Unregister(client)

	connected, _ := json.Marshal(gin.H{"client_id": client.ID()})
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", realtime.EventConnected, connected)
	flusher.Flush()

	// Keep-alives hold the connection open through proxies.
	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case data, ok := <-client.Events():
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()

		case <-keepAlive.C:
			fmt.Fprintf(w, ": keepalive %d\n\n", time.Now().Unix())
			flusher.Flush()
		}
	}
}
