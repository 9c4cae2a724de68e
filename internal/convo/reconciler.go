package convo

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/matheus3301/zapdesk/internal/bus"
	"go.uber.org/zap"
)

// Reconciler maintains the single in-memory ordered conversation list,
// merging REST snapshots, admin push events, and local preview events.
//
// The sources overlap and arrive unordered, so every merge is gated on
// the normalized message timestamp: strictly newer updates win content
// outright, ties may only raise the delivery status rank, and stale
// updates never touch content. This keeps a "read" tick from flickering
// back to "sent" when a slow refetch lands after a push.
type Reconciler struct {
	mu     sync.RWMutex
	convos map[string]*Conversation
	// order holds the visible user ids, kept sorted by descending
	// normalized last-message time after every mutation. The sort is
	// stable so timestamp ties preserve their prior relative order.
	order  []string
	active string

	bus    *bus.Bus
	logger *zap.Logger
}

// NewReconciler creates an empty reconciler.
func NewReconciler(b *bus.Bus, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		convos: make(map[string]*Conversation),
		bus:    b,
		logger: logger,
	}
}

// ApplySnapshot merges a filtered REST snapshot. Snapshot rows define
// which conversations are visible; known conversations merge under the
// conflict rules so a stale refetch never clobbers a fresher push.
func (r *Reconciler) ApplySnapshot(rows []Conversation) {
	r.mu.Lock()
	order := make([]string, 0, len(rows))
	for i := range rows {
		row := rows[i]
		order = append(order, row.UserID)
		existing, ok := r.convos[row.UserID]
		if !ok {
			c := row
			r.forceActiveUnread(&c)
			r.convos[row.UserID] = &c
			continue
		}
		r.merge(existing, Update{
			UserID:          row.UserID,
			Name:            row.Name,
			Avatar:          row.Avatar,
			LastMessage:     row.LastMessage,
			LastMessageType: row.LastMessageType,
			FromMe:          row.LastMessageFromMe,
			Status:          row.LastMessageStatus,
			Timestamp:       int64(row.LastMessageTime),
		})
		// Counters, assignment and tags are server-owned: the snapshot
		// is authoritative for them regardless of message timestamps.
		existing.UnreadCount = row.UnreadCount
		existing.UnrespondedCount = row.UnrespondedCount
		existing.AssignedAgent = row.AssignedAgent
		existing.Tags = row.Tags
		r.forceActiveUnread(existing)
	}
	// The active conversation stays visible even when the filter
	// excludes it, so the open thread keeps its list anchor.
	if r.active != "" && !slices.Contains(order, r.active) {
		if _, ok := r.convos[r.active]; ok {
			order = append(order, r.active)
		}
	}
	r.order = order
	r.resort()
	r.mu.Unlock()
	r.notify()
}

// Apply upserts one conversation from a push or local preview event.
// Unknown users are created on first observed event.
func (r *Reconciler) Apply(u Update) {
	if u.UserID == "" {
		return
	}
	r.mu.Lock()
	c, ok := r.convos[u.UserID]
	if !ok {
		c = &Conversation{
			UserID:            u.UserID,
			Name:              u.Name,
			Avatar:            u.Avatar,
			LastMessage:       u.LastMessage,
			LastMessageType:   u.LastMessageType,
			LastMessageTime:   FlexTime(u.Timestamp),
			LastMessageFromMe: u.FromMe,
			LastMessageStatus: u.Status,
		}
		r.convos[u.UserID] = c
	} else {
		r.merge(c, u)
	}
	if u.CountUnread && u.UserID != r.active {
		c.UnreadCount++
	}
	if !slices.Contains(r.order, u.UserID) {
		r.order = append(r.order, u.UserID)
	}
	r.forceActiveUnread(c)
	r.resort()
	r.mu.Unlock()
	r.notify()
}

// merge applies the timestamp-gated, rank-guarded conflict resolution.
// Caller holds the lock.
func (r *Reconciler) merge(c *Conversation, u Update) {
	stored := int64(c.LastMessageTime)
	switch {
	case u.Timestamp > stored:
		// Strictly newer: content wins outright, status overwritten
		// when provided.
		c.LastMessage = u.LastMessage
		c.LastMessageType = u.LastMessageType
		c.LastMessageFromMe = u.FromMe
		c.LastMessageTime = FlexTime(u.Timestamp)
		if u.Status != "" {
			c.LastMessageStatus = u.Status
		}
	case u.Timestamp == stored:
		// Tie: content untouched, status may only be raised.
		if u.Status != "" && u.Status.Rank() >= c.LastMessageStatus.Rank() {
			c.LastMessageStatus = u.Status
		}
	default:
		// Stale: content never overwritten. Status may still be raised
		// when the update refers to the same logical message.
		if u.Status != "" && sameLogical(c, u) && u.Status.Rank() >= c.LastMessageStatus.Rank() {
			c.LastMessageStatus = u.Status
		}
	}
	if u.Name != "" {
		c.Name = u.Name
	}
	if u.Avatar != "" {
		c.Avatar = u.Avatar
	}
}

func sameLogical(c *Conversation, u Update) bool {
	return c.LastMessage == u.LastMessage &&
		c.LastMessageType == u.LastMessageType &&
		c.LastMessageFromMe == u.FromMe
}

// SetActive marks a conversation as the open one. Its unread counter is
// pinned to 0 for as long as it stays active. Pass empty to clear.
func (r *Reconciler) SetActive(userID string) {
	r.mu.Lock()
	r.active = userID
	if c, ok := r.convos[userID]; ok {
		c.UnreadCount = 0
	}
	r.mu.Unlock()
	r.notify()
}

// Active returns the currently open conversation id, or empty.
func (r *Reconciler) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// SetAssignment updates the owning agent for a conversation.
func (r *Reconciler) SetAssignment(userID, agent string) {
	r.mu.Lock()
	c, ok := r.convos[userID]
	if ok {
		c.AssignedAgent = agent
	}
	r.mu.Unlock()
	if ok {
		r.notify()
	}
}

// SetTags replaces the tag set for a conversation.
func (r *Reconciler) SetTags(userID string, tags []string) {
	r.mu.Lock()
	c, ok := r.convos[userID]
	if ok {
		c.Tags = tags
	}
	r.mu.Unlock()
	if ok {
		r.notify()
	}
}

// Get returns a copy of a conversation, or nil if unknown.
func (r *Reconciler) Get(userID string) *Conversation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.convos[userID]
	if !ok {
		return nil
	}
	cp := *c
	return &cp
}

// List returns copies of the visible conversations in display order.
func (r *Reconciler) List() []Conversation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Conversation, 0, len(r.order))
	for _, id := range r.order {
		if c, ok := r.convos[id]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// resort re-establishes descending timestamp order. Caller holds the lock.
func (r *Reconciler) resort() {
	sort.SliceStable(r.order, func(i, j int) bool {
		a, b := r.convos[r.order[i]], r.convos[r.order[j]]
		return a.LastMessageTime > b.LastMessageTime
	})
}

// forceActiveUnread pins the open conversation's unread count to zero.
// Caller holds the lock.
func (r *Reconciler) forceActiveUnread(c *Conversation) {
	if r.active != "" && c.UserID == r.active {
		c.UnreadCount = 0
	}
}

func (r *Reconciler) notify() {
	if r.bus != nil {
		r.bus.Publish(bus.Event{Kind: bus.KindListChanged, Timestamp: time.Now()})
	}
}
