package api

import (
	"encoding/json"
	"time"

	"github.com/matheus3301/zapdesk/internal/bus"
	"github.com/matheus3301/zapdesk/internal/convo"
	"go.uber.org/zap"
)

// Assignment is the payload of an assignment broadcast.
type Assignment struct {
	UserID        string `json:"user_id"`
	AssignedAgent string `json:"assigned_agent"`
}

// adminEvent is the envelope carried on the /ws/admin channel.
type adminEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EventHandler parses admin broadcast frames and republishes them as
// typed bus events. It does not touch the reconciler directly; the
// shell consumes the events and drives the reconciler.
type EventHandler struct {
	bus    *bus.Bus
	logger *zap.Logger
}

// NewEventHandler creates an admin channel event handler.
func NewEventHandler(b *bus.Bus, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{bus: b, logger: logger}
}

// Handle is the per-frame callback wired into the admin socket client.
func (h *EventHandler) Handle(data []byte) {
	var evt adminEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		h.logger.Warn("malformed admin event", zap.Error(err))
		return
	}

	switch evt.Type {
	case "message_received":
		var msg convo.Message
		if err := json.Unmarshal(evt.Data, &msg); err != nil {
			h.logger.Warn("malformed message_received payload", zap.Error(err))
			return
		}
		h.bus.Publish(bus.Event{
			Kind:      bus.KindAdminMessage,
			Timestamp: time.Now(),
			Payload:   &msg,
		})
	case "conversation_assignment_updated":
		var a Assignment
		if err := json.Unmarshal(evt.Data, &a); err != nil {
			h.logger.Warn("malformed assignment payload", zap.Error(err))
			return
		}
		h.bus.Publish(bus.Event{
			Kind:      bus.KindAdminAssignment,
			Timestamp: time.Now(),
			Payload:   a,
		})
	case "pong":
		// Liveness reply, nothing to do.
	default:
		h.logger.Debug("unknown admin event", zap.String("type", evt.Type))
	}
}
