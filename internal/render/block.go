// Package render maps backend messages to typed visual blocks. The
// mapping is pure; asynchronous concerns (link previews, media) are
// resolved by the caller through the services in this package.
package render

// Kind identifies the visual shape of a rendered message.
type Kind string

const (
	KindText       Kind = "text"
	KindImage      Kind = "image"
	KindImageGroup Kind = "image_group"
	KindAudio      Kind = "audio"
	KindVideo      Kind = "video"
	KindOrder      Kind = "order"
	KindCatalog    Kind = "catalog_item"
	KindCatalogSet Kind = "catalog_set"
	// KindUnsupported is the fallback for unrecognized message types.
	KindUnsupported Kind = "unsupported"
)

// Block is one rendered message.
type Block struct {
	Kind Kind
	// Self marks a message sent by the console's side.
	Self bool
	// Text is the primary body (linkified for text blocks).
	Text string
	// Links are all HTTP(S) URLs found in a text body.
	Links []string
	// InlineImages are image-looking URLs (at most 3) to show inline.
	InlineImages []string
	// PreviewURL is the first non-image link, eligible for an async
	// link preview. Empty when none.
	PreviewURL string
	// MediaURL is the remote media location for image/audio/video.
	MediaURL string
	// GroupURLs carries all URLs of an image group.
	GroupURLs []string
	// Sparkline is the audio waveform envelope rendered as bar runes.
	Sparkline string
	// Order is set for order blocks.
	Order *OrderView
	// Catalog is set for catalog item blocks (one entry) and catalog
	// set blocks (all entries).
	Catalog []CatalogEntry
	// CatalogTitle names a catalog set.
	CatalogTitle string
	// Quoted is a one-line preview of the replied-to message.
	Quoted string
	// Reactions summarizes emoji reactions, e.g. "👍 2  ❤️ 1".
	Reactions string
}

// OrderView is the reconstructed order payload.
type OrderView struct {
	Items []OrderItem
	Total string
	Note  string
}

// OrderItem is one reconstructed order line.
type OrderItem struct {
	RetailerID string
	Name       string
	ImageURL   string
	Quantity   int
	Price      string
	Size       string
	Color      string
}

// CatalogEntry is one product referenced from a catalog message.
type CatalogEntry struct {
	RetailerID string
	Name       string
	ImageURL   string
	Price      string
}

// CatalogProduct is the lookup result for a retailer id.
type CatalogProduct struct {
	Name     string
	ImageURL string
	Price    string
}

// CatalogLookup resolves a retailer id to product data. ok=false when
// the catalog has no such entry.
type CatalogLookup func(retailerID string) (CatalogProduct, bool)

// Context carries per-message rendering inputs.
type Context struct {
	// Self marks the message as sent from this side.
	Self bool
	// Query highlights matching text (list/search filter).
	Query string
	// Quoted is a one-line preview of the replied-to message, if any.
	Quoted string
	// GroupURLs is set when consecutive image messages were grouped by
	// the thread view; more than one URL renders as an image group.
	GroupURLs []string
	// Catalog resolves retailer ids in order/catalog payloads.
	Catalog CatalogLookup
}
