package bus

import "time"

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// Event kinds carried on the console bus. Subscribers filter by
// namespace prefix ("socket.", "admin.", ...).
const (
	// Socket connectivity, published by the resilient socket clients.
	KindSocketUp   = "socket.up"
	KindSocketDown = "socket.down"

	// Admin broadcast channel events.
	KindAdminMessage    = "admin.message_received"
	KindAdminAssignment = "admin.assignment_updated"

	// Reconciler output.
	KindListChanged = "convo.list_changed"

	// Commerce panel.
	KindOrderCreated = "commerce.order_created"
)
