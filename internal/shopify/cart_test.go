package shopify

import (
	"testing"

	"github.com/matheus3301/zapdesk/internal/store"
)

type fakeDraftCache struct {
	store.Noop
	drafts map[string][]byte
}

func newFakeDraftCache() *fakeDraftCache {
	return &fakeDraftCache{drafts: make(map[string][]byte)}
}

func (c *fakeDraftCache) GetDraft(userID string) []byte { return c.drafts[userID] }

func (c *fakeDraftCache) PutDraft(userID string, data []byte) bool {
	c.drafts[userID] = data
	return true
}

func (c *fakeDraftCache) DeleteDraft(userID string) { delete(c.drafts, userID) }

func TestCartRoundTrip(t *testing.T) {
	carts := NewCarts(newFakeDraftCache())

	d := carts.Load("5511999999999")
	if len(d.Items) != 0 {
		t.Fatalf("fresh draft has %d items", len(d.Items))
	}

	d.CustomerID = "cust_1"
	d.Items = append(d.Items, LineItem{VariantID: "v1", Title: "Camiseta P", Quantity: 2, Price: "49.90"})
	if !carts.Save(d) {
		t.Fatal("save failed")
	}

	got := carts.Load("5511999999999")
	if got.CustomerID != "cust_1" || len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("reloaded draft = %+v", got)
	}
}

func TestCartClear(t *testing.T) {
	carts := NewCarts(newFakeDraftCache())
	d := Draft{UserID: "1", CustomerID: "c"}
	carts.Save(d)
	carts.Clear("1")
	if got := carts.Load("1"); got.CustomerID != "" {
		t.Errorf("draft survived clear: %+v", got)
	}
}

func TestCartCorruptDraftResets(t *testing.T) {
	cache := newFakeDraftCache()
	cache.drafts["1"] = []byte("{not json")
	carts := NewCarts(cache)
	if got := carts.Load("1"); got.CustomerID != "" || len(got.Items) != 0 {
		t.Errorf("corrupt draft not reset: %+v", got)
	}
	if cache.drafts["1"] != nil {
		t.Error("corrupt draft not deleted")
	}
}

func TestCartNoopCacheDegrades(t *testing.T) {
	carts := NewCarts(store.Noop{})
	d := Draft{UserID: "1", Items: []LineItem{{VariantID: "v1", Quantity: 1}}}
	if carts.Save(d) {
		t.Error("noop save reported success")
	}
	if got := carts.Load("1"); len(got.Items) != 0 {
		t.Errorf("noop load returned items: %+v", got)
	}
}
