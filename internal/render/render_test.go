package render

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/matheus3301/zapdesk/internal/convo"
)

func msg(typ string, payload any) *convo.Message {
	raw, _ := json.Marshal(payload)
	return &convo.Message{Type: typ, Message: raw}
}

func TestTextBlockLinkify(t *testing.T) {
	m := msg("text", "look at https://example.com/cat.png and https://shop.example/product plus https://a.example/b.jpg")
	b := Message(m, Context{})
	if b.Kind != KindText {
		t.Fatalf("kind = %s", b.Kind)
	}
	if len(b.Links) != 3 {
		t.Fatalf("links = %v", b.Links)
	}
	if len(b.InlineImages) != 2 {
		t.Fatalf("inline images = %v", b.InlineImages)
	}
	if b.PreviewURL != "https://shop.example/product" {
		t.Fatalf("preview url = %q", b.PreviewURL)
	}
}

func TestTextBlockInlineImageCap(t *testing.T) {
	m := msg("text", "https://x/1.png https://x/2.png https://x/3.png https://x/4.png")
	b := Message(m, Context{})
	if len(b.InlineImages) != 3 {
		t.Fatalf("inline images = %d, want 3", len(b.InlineImages))
	}
	if b.PreviewURL != "" {
		t.Fatalf("preview url = %q, want empty", b.PreviewURL)
	}
}

func TestImageGroupDispatch(t *testing.T) {
	m := &convo.Message{Type: "image", URL: "https://x/1.jpg"}
	b := Message(m, Context{GroupURLs: []string{"https://x/1.jpg", "https://x/2.jpg"}})
	if b.Kind != KindImageGroup {
		t.Fatalf("kind = %s", b.Kind)
	}
	if len(b.GroupURLs) != 2 {
		t.Fatalf("group urls = %v", b.GroupURLs)
	}

	b = Message(m, Context{GroupURLs: []string{"https://x/1.jpg"}})
	if b.Kind != KindImage {
		t.Fatalf("single image kind = %s", b.Kind)
	}
}

func TestAudioSparkline(t *testing.T) {
	m := &convo.Message{
		Type:     "ptt",
		URL:      "https://x/voice.ogg",
		Waveform: []float64{0, 0.25, 0.5, 0.75, 1},
	}
	b := Message(m, Context{})
	if b.Kind != KindAudio {
		t.Fatalf("kind = %s", b.Kind)
	}
	if b.Sparkline == "" {
		t.Fatal("empty sparkline")
	}
}

func TestUnsupportedFallback(t *testing.T) {
	b := Message(&convo.Message{Type: "sticker"}, Context{})
	if b.Kind != KindUnsupported {
		t.Fatalf("kind = %s", b.Kind)
	}
	if b.Text != "[sticker]" {
		t.Fatalf("text = %q", b.Text)
	}
}

func TestOrderCatalogLookup(t *testing.T) {
	lookup := func(id string) (CatalogProduct, bool) {
		if id == "SKU-1" {
			return CatalogProduct{Name: "Camiseta", ImageURL: "https://x/shirt.jpg", Price: "BRL 79.90"}, true
		}
		return CatalogProduct{}, false
	}
	m := msg("order", map[string]any{
		"order": map[string]any{
			"product_items": []map[string]any{
				{"product_retailer_id": "SKU-1", "quantity": 2, "item_price": 79.90, "currency": "BRL"},
			},
		},
	})
	b := Message(m, Context{Catalog: lookup})
	if b.Kind != KindOrder || b.Order == nil {
		t.Fatalf("kind = %s order = %v", b.Kind, b.Order)
	}
	it := b.Order.Items[0]
	if it.Name != "Camiseta" || it.ImageURL != "https://x/shirt.jpg" {
		t.Fatalf("item = %+v", it)
	}
	if it.Quantity != 2 {
		t.Fatalf("quantity = %d", it.Quantity)
	}
	if b.Order.Total != "BRL 159.80" {
		t.Fatalf("total = %q", b.Order.Total)
	}
}

func TestOrderAttrHeuristics(t *testing.T) {
	cases := []struct {
		name string
		item map[string]any
		size string
		col  string
	}{
		{
			name: "explicit fields",
			item: map[string]any{"product_retailer_id": "a", "size": "M", "color": "Azul"},
			size: "M", col: "Azul",
		},
		{
			name: "customizations",
			item: map[string]any{
				"product_retailer_id": "a",
				"customizations": []map[string]any{
					{"name": "Tamanho", "value": "G"},
					{"name": "Cor", "value": "Preto"},
				},
			},
			size: "G", col: "Preto",
		},
		{
			name: "free text",
			item: map[string]any{"product_retailer_id": "a", "description": "Tamanho: P, Cor: Branco"},
			size: "P", col: "Branco",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := msg("order", map[string]any{"product_items": []map[string]any{tc.item}})
			b := Message(m, Context{})
			it := b.Order.Items[0]
			if it.Size != tc.size || it.Color != tc.col {
				t.Fatalf("size=%q color=%q, want %q/%q", it.Size, it.Color, tc.size, tc.col)
			}
		})
	}
}

func TestCatalogSet(t *testing.T) {
	m := msg("catalog_set", map[string]any{
		"title": "Novidades",
		"items": []map[string]any{
			{"retailer_id": "A"},
			{"retailer_id": "B", "name": "Bermuda"},
		},
	})
	b := Message(m, Context{})
	if b.Kind != KindCatalogSet || b.CatalogTitle != "Novidades" {
		t.Fatalf("block = %+v", b)
	}
	if len(b.Catalog) != 2 || b.Catalog[0].Name != "A" || b.Catalog[1].Name != "Bermuda" {
		t.Fatalf("catalog = %+v", b.Catalog)
	}
}

func TestReactionsSummary(t *testing.T) {
	m := &convo.Message{Type: "text", Message: json.RawMessage(`"oi"`), ReactionsSummary: map[string]int{"👍": 2, "❤️": 1}}
	b := Message(m, Context{})
	if !strings.Contains(b.Reactions, "👍 2") || !strings.Contains(b.Reactions, "❤️ 1") {
		t.Fatalf("reactions = %q", b.Reactions)
	}
}

func TestIsImageURL(t *testing.T) {
	if !IsImageURL("https://x/a.PNG?w=100") {
		t.Fatal("query string should not defeat extension check")
	}
	if IsImageURL("https://x/page.html") {
		t.Fatal("html is not an image")
	}
}

func TestSparklineClamps(t *testing.T) {
	s := Sparkline([]float64{-1, 2}, 2)
	if s != "▁█" {
		t.Fatalf("sparkline = %q", s)
	}
	if Sparkline(nil, 10) != "" {
		t.Fatal("nil waveform should render empty")
	}
}

func TestPreviewsCachesFetches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`<html><head><title>Fallback</title><meta property="og:title" content="Produto"><meta property="og:image" content="https://x/p.jpg"></head></html>`))
	}))
	defer srv.Close()

	p := NewPreviews(zap.NewNop())
	pv, err := p.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pv.Title != "Produto" || pv.ImageURL != "https://x/p.jpg" {
		t.Fatalf("preview = %+v", pv)
	}
	if _, err := p.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("fetches = %d, want 1", hits.Load())
	}
}

func TestPreviewsTitleFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Loja</title></head><body></body></html>`))
	}))
	defer srv.Close()

	p := NewPreviews(zap.NewNop())
	pv, err := p.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pv.Title != "Loja" {
		t.Fatalf("title = %q", pv.Title)
	}
}

func TestPreviewsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewPreviews(zap.NewNop())
	if _, err := p.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error on 404")
	}
}
