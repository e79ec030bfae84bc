package rest

import (
	"fmt"
	"net/http"
	"time"

	"dar360-service/internal/adapters/notifier"
	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/port"
)

type EventHandlers struct {
	notifier *notifier.SSENotifier
}

func NewEventHandlers(notifier *notifier.SSENotifier) *EventHandlers {
	return &EventHandlers{notifier: notifier}
}

// Subscribe handles GET /api/events, a per-user SSE stream.
func (h *EventHandlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubscribeToEvents"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		logger.Error("Claims missing from context for SSE subscription", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": claims.UserID.String()})
	handlerLogger.Info("New client subscribing to SSE events", nil)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.notifier.AddClient(claims.UserID.String())
	defer h.notifier.RemoveClient(claims.UserID.String(), clientChan)

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	// Comment lines keep proxies from dropping the idle connection.
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case data := <-clientChan:
			if _, err := fmt.Fprintf(w, "%s", data); err != nil {
				handlerLogger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			handlerLogger.Info("Sent SSE event to client", nil)

		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keep-alive\n\n"); err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case <-r.Context().Done():
			handlerLogger.Info("SSE client disconnected.", nil)
			return
		}
	}
}
