package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// orderPayload covers the backend's order message shapes. Older
// messages nest items under "order", newer ones put them at the top.
type orderPayload struct {
	Order *struct {
		ProductItems []orderItemPayload `json:"product_items"`
		Text         string             `json:"text"`
	} `json:"order"`
	ProductItems []orderItemPayload `json:"product_items"`
	Items        []orderItemPayload `json:"items"`
	Text         string             `json:"text"`
}

type orderItemPayload struct {
	RetailerID     string          `json:"product_retailer_id"`
	AltRetailerID  string          `json:"retailer_id"`
	Quantity       int             `json:"quantity"`
	ItemPrice      json.Number     `json:"item_price"`
	Currency       string          `json:"currency"`
	Name           string          `json:"name"`
	Size           string          `json:"size"`
	Color          string          `json:"color"`
	Description    string          `json:"description"`
	Customizations []customization `json:"customizations"`
}

type customization struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var (
	sizePattern  = regexp.MustCompile(`(?i)(?:size|tamanho|tam)\s*[:=]?\s*([A-Za-z0-9]+)`)
	colorPattern = regexp.MustCompile(`(?i)(?:color|colour|cor)\s*[:=]?\s*([\p{L}0-9]+)`)
)

// parseOrder reconstructs an order payload into line items, resolving
// names and images through the catalog lookup when available.
func parseOrder(raw json.RawMessage, lookup CatalogLookup) *OrderView {
	var p orderPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return &OrderView{}
	}
	items := p.ProductItems
	note := p.Text
	if len(items) == 0 && p.Order != nil {
		items = p.Order.ProductItems
		note = p.Order.Text
	}
	if len(items) == 0 {
		items = p.Items
	}

	view := &OrderView{Note: note}
	var total float64
	var currency string
	for _, it := range items {
		item := buildItem(it, lookup)
		view.Items = append(view.Items, item)
		if price, err := it.ItemPrice.Float64(); err == nil {
			total += price * float64(max(it.Quantity, 1))
			if it.Currency != "" {
				currency = it.Currency
			}
		}
	}
	if total > 0 {
		view.Total = formatPrice(total, currency)
	}
	return view
}

func buildItem(it orderItemPayload, lookup CatalogLookup) OrderItem {
	id := it.RetailerID
	if id == "" {
		id = it.AltRetailerID
	}
	item := OrderItem{
		RetailerID: id,
		Name:       it.Name,
		Quantity:   max(it.Quantity, 1),
	}
	if price, err := it.ItemPrice.Float64(); err == nil && price > 0 {
		item.Price = formatPrice(price, it.Currency)
	}
	if lookup != nil && id != "" {
		if p, ok := lookup(id); ok {
			if item.Name == "" {
				item.Name = p.Name
			}
			item.ImageURL = p.ImageURL
			if item.Price == "" {
				item.Price = p.Price
			}
		}
	}
	if item.Name == "" {
		item.Name = id
	}
	item.Size, item.Color = extractAttrs(it)
	return item
}

// extractAttrs runs the size/color heuristic chain: explicit fields,
// then customization entries, then free text in the description.
func extractAttrs(it orderItemPayload) (size, color string) {
	size, color = it.Size, it.Color
	for _, c := range it.Customizations {
		name := strings.ToLower(c.Name)
		switch {
		case size == "" && (strings.Contains(name, "size") || strings.Contains(name, "tam")):
			size = c.Value
		case color == "" && (strings.Contains(name, "color") || strings.Contains(name, "cor")):
			color = c.Value
		}
	}
	if size == "" {
		if m := sizePattern.FindStringSubmatch(it.Description); m != nil {
			size = m[1]
		}
	}
	if color == "" {
		if m := colorPattern.FindStringSubmatch(it.Description); m != nil {
			color = m[1]
		}
	}
	return size, color
}

func formatPrice(v float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%s %.2f", currency, v)
}

// parseCatalogItems decodes catalog item references. Accepts a single
// object or an array of objects.
func parseCatalogItems(raw json.RawMessage, lookup CatalogLookup) []CatalogEntry {
	type ref struct {
		RetailerID    string `json:"retailer_id"`
		AltRetailerID string `json:"product_retailer_id"`
		Name          string `json:"name"`
		ImageURL      string `json:"image_url"`
		Price         string `json:"price"`
	}
	var refs []ref
	if err := json.Unmarshal(raw, &refs); err != nil {
		var one ref
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil
		}
		refs = []ref{one}
	}
	entries := make([]CatalogEntry, 0, len(refs))
	for _, r := range refs {
		id := r.RetailerID
		if id == "" {
			id = r.AltRetailerID
		}
		e := CatalogEntry{RetailerID: id, Name: r.Name, ImageURL: r.ImageURL, Price: r.Price}
		if lookup != nil && id != "" {
			if p, ok := lookup(id); ok {
				if e.Name == "" {
					e.Name = p.Name
				}
				if e.ImageURL == "" {
					e.ImageURL = p.ImageURL
				}
				if e.Price == "" {
					e.Price = p.Price
				}
			}
		}
		if e.Name == "" {
			e.Name = id
		}
		entries = append(entries, e)
	}
	return entries
}
