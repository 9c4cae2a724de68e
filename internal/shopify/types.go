package shopify

// Customer is a commerce backend customer record.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Product is a catalog product summary.
type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
	// RetailerID links the product to catalog message payloads.
	RetailerID string `json:"retailer_id,omitempty"`
}

// Variant is a purchasable variation of a product (size/color).
type Variant struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Price   string            `json:"price"`
	Options map[string]string `json:"options,omitempty"`
}

// ShippingOption is a named shipping rate.
type ShippingOption struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// LineItem is one cart entry.
type LineItem struct {
	VariantID string `json:"variant_id"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price,omitempty"`
}

// Draft is the order-creation payload assembled by the commerce panel.
type Draft struct {
	UserID     string         `json:"user_id"`
	CustomerID string         `json:"customer_id"`
	Items      []LineItem     `json:"items"`
	Shipping   *ShippingOption `json:"shipping,omitempty"`
	Note       string         `json:"note,omitempty"`
}

// Order is a created order as reported by the backend.
type Order struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StatusURL string `json:"status_url,omitempty"`
	Total     string `json:"total,omitempty"`
}
