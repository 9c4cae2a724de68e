package convo

import (
	"encoding/json"
	"slices"
)

// Status is a WhatsApp-style delivery tick for an outgoing message.
type Status string

const (
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusFailed    Status = "failed"
)

// Rank imposes a total order on statuses so out-of-order merges never
// regress a tick. Failed is a terminal override above all others.
// Unknown statuses rank below everything.
func (s Status) Rank() int {
	switch s {
	case StatusSending:
		return 0
	case StatusSent:
		return 1
	case StatusDelivered:
		return 2
	case StatusRead:
		return 3
	case StatusFailed:
		return 4
	default:
		return -1
	}
}

// TagDone is the reserved tag marking a conversation as archived.
const TagDone = "done"

// Conversation is the list entry for one remote correspondent.
type Conversation struct {
	UserID            string   `json:"user_id"`
	Name              string   `json:"name,omitempty"`
	Avatar            string   `json:"avatar,omitempty"`
	LastMessage       string   `json:"last_message"`
	LastMessageType   string   `json:"last_message_type"`
	LastMessageTime   FlexTime `json:"last_message_time"`
	LastMessageFromMe bool     `json:"last_message_from_me"`
	LastMessageStatus Status   `json:"last_message_status,omitempty"`
	UnreadCount       int      `json:"unread_count"`
	UnrespondedCount  int      `json:"unresponded_count"`
	AssignedAgent     string   `json:"assigned_agent,omitempty"`
	Tags              []string `json:"tags,omitempty"`
}

// Archived reports whether the conversation carries the "done" tag.
func (c *Conversation) Archived() bool {
	return slices.Contains(c.Tags, TagDone)
}

// Message is a single entry in a conversation thread. Owned by the
// backend; the console treats it as read-mostly.
type Message struct {
	ID               string          `json:"id,omitempty"`
	UserID           string          `json:"user_id,omitempty"`
	Type             string          `json:"type"`
	Message          json.RawMessage `json:"message"`
	URL              string          `json:"url,omitempty"`
	Timestamp        FlexTime        `json:"timestamp"`
	FromMe           bool            `json:"from_me"`
	Status           Status          `json:"status,omitempty"`
	Waveform         []float64       `json:"waveform,omitempty"`
	ReactionsSummary map[string]int  `json:"reactionsSummary,omitempty"`
	QuotedID         string          `json:"quoted_id,omitempty"`
}

// Text returns the message payload as a plain string when it is one.
func (m *Message) Text() string {
	var s string
	if err := json.Unmarshal(m.Message, &s); err == nil {
		return s
	}
	return ""
}

// Update is one reconciliation input derived from a snapshot row, an
// admin push event, or a local preview event.
type Update struct {
	UserID          string
	Name            string
	Avatar          string
	LastMessage     string
	LastMessageType string
	FromMe          bool
	Status          Status // empty means not provided
	Timestamp       int64  // normalized epoch ms
	// CountUnread increments the unread counter when the conversation is
	// not the active one (push events for inbound messages).
	CountUnread bool
}

// UpdateFromMessage builds a reconciliation update from a pushed message.
func UpdateFromMessage(m *Message) Update {
	preview := m.Text()
	if preview == "" && m.Type != "text" {
		preview = "[" + m.Type + "]"
	}
	return Update{
		UserID:          m.UserID,
		LastMessage:     preview,
		LastMessageType: m.Type,
		FromMe:          m.FromMe,
		Status:          m.Status,
		Timestamp:       int64(m.Timestamp),
		CountUnread:     !m.FromMe,
	}
}
