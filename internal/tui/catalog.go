package tui

import (
	"sync"

	"github.com/matheus3301/zapdesk/internal/render"
)

// catalogIndex maps retailer ids to product details learned from
// commerce searches. Search results arrive on background goroutines
// while the thread renderer reads during message formatting, so all
// access goes through the lock.
type catalogIndex struct {
	mu       sync.RWMutex
	products map[string]render.CatalogProduct
}

func newCatalogIndex() *catalogIndex {
	return &catalogIndex{products: make(map[string]render.CatalogProduct)}
}

func (ci *catalogIndex) Put(retailerID string, p render.CatalogProduct) {
	if retailerID == "" {
		return
	}
	ci.mu.Lock()
	ci.products[retailerID] = p
	ci.mu.Unlock()
}

// Lookup implements render.CatalogLookup.
func (ci *catalogIndex) Lookup(retailerID string) (render.CatalogProduct, bool) {
	ci.mu.RLock()
	p, ok := ci.products[retailerID]
	ci.mu.RUnlock()
	return p, ok
}
