package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/port"
)

// ClientChannel carries SSE-formatted frames to one open dashboard
// connection.
type ClientChannel chan []byte

type eventWithContext struct {
	ctx   context.Context
	event port.DomainEvent
}

// SSENotifier implements NotifierPort. A dispatcher goroutine fans events
// out to every open connection of the addressed user.
type SSENotifier struct {
	// clients keys by user ID; one user may hold several open tabs.
	clients map[string][]ClientChannel
	mu      sync.RWMutex

	eventChan chan eventWithContext

	logger port.LoggerPort
}

func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	notifier := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan eventWithContext, 100),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}

	go notifier.dispatcher()

	return notifier
}

func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		eventPackage := <-n.eventChan

		ctx := eventPackage.ctx
		event := eventPackage.event

		eventLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
			"component":  "SSENotifier.dispatcher",
			"event_type": event.Type,
		})

		eventBytes, err := json.Marshal(event)
		if err != nil {
			eventLogger.Error("Failed to marshal event", err, nil)
			continue
		}

		sseMessage := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, string(eventBytes)))

		userID := event.UserID.String()

		n.mu.RLock()
		if clientChannels, found := n.clients[userID]; found {
			eventLogger.Debug("Dispatching event to clients", port.Fields{"user_id": userID, "channels_count": len(clientChannels)})
			for _, ch := range clientChannels {
				// Non-blocking send: a stalled tab must not hold up the
				// dispatcher.
				select {
				case ch <- sseMessage:
				default:
					eventLogger.Warn("Client channel is full or closed, skipping.", port.Fields{"user_id": userID})
				}
			}
		} else {
			eventLogger.Debug("No active clients for user, event dropped.", port.Fields{"user_id": userID})
		}
		n.mu.RUnlock()
	}
}

func (n *SSENotifier) Notify(ctx context.Context, event port.DomainEvent) {
	n.eventChan <- eventWithContext{ctx: ctx, event: event}
}

// AddClient registers a new SSE connection and returns its channel. Called
// from the HTTP handler.
func (n *SSENotifier) AddClient(userID string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 100)
	n.clients[userID] = append(n.clients[userID], ch)

	n.logger.Info("Client connected for user", port.Fields{
		"user_id":                    userID,
		"total_connections_for_user": len(n.clients[userID]),
	})

	return ch
}

// RemoveClient drops the channel when the client disconnects.
func (n *SSENotifier) RemoveClient(userID string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if channels, found := n.clients[userID]; found {
		newChannels := make([]ClientChannel, 0, len(channels))
		for _, c := range channels {
			if c != ch {
				newChannels = append(newChannels, c)
			}
		}
		if len(newChannels) == 0 {
			delete(n.clients, userID)
		} else {
			n.clients[userID] = newChannels
		}
		close(ch)

		n.logger.Info("Client disconnected for user", port.Fields{
			"user_id":                    userID,
			"total_connections_for_user": len(newChannels),
		})
	}
}
