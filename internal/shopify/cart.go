package shopify

import (
	"encoding/json"

	"github.com/matheus3301/zapdesk/internal/store"
)

// Carts persists per-conversation order drafts in the local cache so a
// half-built cart survives switching conversations. Drafts are
// time-boxed by the store; failures degrade to an empty cart.
type Carts struct {
	cache store.Cache
}

// NewCarts creates a cart manager over the local cache.
func NewCarts(cache store.Cache) *Carts {
	return &Carts{cache: cache}
}

// Load returns the saved draft for a conversation, or a fresh one.
func (c *Carts) Load(userID string) Draft {
	data := c.cache.GetDraft(userID)
	if data == nil {
		return Draft{UserID: userID}
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		c.cache.DeleteDraft(userID)
		return Draft{UserID: userID}
	}
	d.UserID = userID
	return d
}

// Save persists a draft. Reports whether the write stuck.
func (c *Carts) Save(d Draft) bool {
	data, err := json.Marshal(d)
	if err != nil {
		return false
	}
	return c.cache.PutDraft(d.UserID, data)
}

// Clear drops the draft after a successful order.
func (c *Carts) Clear(userID string) {
	c.cache.DeleteDraft(userID)
}
