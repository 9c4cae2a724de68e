package tui

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/matheus3301/zapdesk/internal/convo"
	"github.com/matheus3301/zapdesk/internal/render"
	"github.com/matheus3301/zapdesk/internal/tui/views"
)

func TestCatalogIndexPutLookup(t *testing.T) {
	ci := newCatalogIndex()
	ci.Put("SKU-1", render.CatalogProduct{Name: "Camiseta", ImageURL: "https://cdn.example/c.jpg"})
	ci.Put("", render.CatalogProduct{Name: "dropped"})

	p, ok := ci.Lookup("SKU-1")
	if !ok || p.Name != "Camiseta" {
		t.Errorf("lookup = %+v, %v", p, ok)
	}
	if _, ok := ci.Lookup(""); ok {
		t.Error("empty retailer id should never be stored")
	}
}

// Product searches land on background goroutines while the thread
// renderer resolves catalog references, and two searches can overlap.
func TestCatalogIndexConcurrentSearchAndRender(t *testing.T) {
	ci := newCatalogIndex()

	msgs := make([]convo.Message, 0, 8)
	for i := 0; i < 8; i++ {
		payload, _ := json.Marshal(map[string]string{
			"product_retailer_id": fmt.Sprintf("SKU-%d", i),
		})
		msgs = append(msgs, convo.Message{
			ID:      fmt.Sprintf("m%d", i),
			Type:    "catalog_item",
			Message: payload,
		})
	}

	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				ci.Put(fmt.Sprintf("SKU-%d", i%8), render.CatalogProduct{
					Name: fmt.Sprintf("Produto %d/%d", w, i),
				})
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			views.BuildEntries(msgs, ci.Lookup)
		}
	}()
	wg.Wait()

	if _, ok := ci.Lookup("SKU-7"); !ok {
		t.Error("catalog entry missing after concurrent writes")
	}
}
