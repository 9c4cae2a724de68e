package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/singleflight"
)

const (
	previewTTL      = 30 * time.Minute
	previewCacheCap = 256
	previewBodyCap  = 512 << 10
)

// Preview is the fetched metadata for a link.
type Preview struct {
	Title    string
	ImageURL string
}

// Previews fetches and caches link previews. Entries live for 30
// minutes and concurrent requests for the same URL share one fetch.
type Previews struct {
	cache  *expirable.LRU[string, Preview]
	group  singleflight.Group
	client *http.Client
	logger *zap.Logger
}

func NewPreviews(logger *zap.Logger) *Previews {
	return &Previews{
		cache:  expirable.NewLRU[string, Preview](previewCacheCap, nil, previewTTL),
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.Named("previews"),
	}
}

// Get returns the preview for a URL, fetching it on a cache miss.
func (p *Previews) Get(ctx context.Context, url string) (Preview, error) {
	if pv, ok := p.cache.Get(url); ok {
		return pv, nil
	}
	v, err, _ := p.group.Do(url, func() (any, error) {
		if pv, ok := p.cache.Get(url); ok {
			return pv, nil
		}
		pv, err := p.fetch(ctx, url)
		if err != nil {
			return Preview{}, err
		}
		p.cache.Add(url, pv)
		return pv, nil
	})
	if err != nil {
		p.logger.Debug("preview fetch failed", zap.String("url", url), zap.Error(err))
		return Preview{}, err
	}
	return v.(Preview), nil
}

func (p *Previews) fetch(ctx context.Context, url string) (Preview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Preview{}, err
	}
	req.Header.Set("Accept", "text/html")
	resp, err := p.client.Do(req)
	if err != nil {
		return Preview{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Preview{}, fmt.Errorf("preview: unexpected status %d", resp.StatusCode)
	}
	doc, err := html.Parse(io.LimitReader(resp.Body, previewBodyCap))
	if err != nil {
		return Preview{}, err
	}
	return extractPreview(doc), nil
}

// extractPreview walks the document for og:title/og:image metadata,
// falling back to the <title> element.
func extractPreview(doc *html.Node) Preview {
	var pv Preview
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && title == "" {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var prop, content string
				for _, a := range n.Attr {
					switch a.Key {
					case "property", "name":
						prop = a.Val
					case "content":
						content = a.Val
					}
				}
				switch prop {
				case "og:title":
					if pv.Title == "" {
						pv.Title = strings.TrimSpace(content)
					}
				case "og:image":
					if pv.ImageURL == "" {
						pv.ImageURL = strings.TrimSpace(content)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if pv.Title == "" {
		pv.Title = title
	}
	return pv
}
