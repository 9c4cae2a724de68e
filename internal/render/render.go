package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/matheus3301/zapdesk/internal/convo"
)

// Message renders one thread message into a Block. The result carries
// no live state; the thread view owns grouping, previews and playback.
func Message(m *convo.Message, rc Context) Block {
	b := Block{
		Self:      rc.Self || m.FromMe,
		Quoted:    rc.Quoted,
		Reactions: reactions(m.ReactionsSummary),
	}
	switch m.Type {
	case "image":
		if len(rc.GroupURLs) > 1 {
			b.Kind = KindImageGroup
			b.GroupURLs = rc.GroupURLs
			return b
		}
		b.Kind = KindImage
		b.MediaURL = m.URL
		b.Text = m.Text()
	case "audio", "ptt":
		b.Kind = KindAudio
		b.MediaURL = m.URL
		b.Sparkline = Sparkline(m.Waveform, 24)
	case "video":
		b.Kind = KindVideo
		b.MediaURL = m.URL
		b.Text = m.Text()
	case "order":
		b.Kind = KindOrder
		b.Order = parseOrder(m.Message, rc.Catalog)
	case "catalog_item", "interactive_product":
		b.Kind = KindCatalog
		b.Catalog = parseCatalogItems(m.Message, rc.Catalog)
	case "catalog_set":
		b.Kind = KindCatalogSet
		var set struct {
			Title string          `json:"title"`
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(m.Message, &set); err == nil {
			b.CatalogTitle = set.Title
			b.Catalog = parseCatalogItems(set.Items, rc.Catalog)
		}
	case "text", "chat", "":
		b.Kind = KindText
		fillText(&b, m.Text())
	default:
		b.Kind = KindUnsupported
		b.Text = fmt.Sprintf("[%s]", m.Type)
	}
	return b
}

func reactions(summary map[string]int) string {
	if len(summary) == 0 {
		return ""
	}
	emojis := make([]string, 0, len(summary))
	for e := range summary {
		emojis = append(emojis, e)
	}
	sort.Strings(emojis)
	parts := make([]string, 0, len(emojis))
	for _, e := range emojis {
		parts = append(parts, fmt.Sprintf("%s %d", e, summary[e]))
	}
	return strings.Join(parts, "  ")
}
