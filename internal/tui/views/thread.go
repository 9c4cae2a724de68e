package views

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/zapdesk/internal/convo"
	"github.com/matheus3301/zapdesk/internal/player"
	"github.com/matheus3301/zapdesk/internal/render"
	"github.com/matheus3301/zapdesk/internal/tui/ui"
)

// ThreadEntry pairs a message with its rendered block.
type ThreadEntry struct {
	Msg   convo.Message
	Block render.Block
}

// BuildEntries maps a chronological message slice to render blocks,
// folding runs of consecutive same-sender images into one group.
func BuildEntries(msgs []convo.Message, catalog render.CatalogLookup) []ThreadEntry {
	byID := make(map[string]*convo.Message, len(msgs))
	for i := range msgs {
		if msgs[i].ID != "" {
			byID[msgs[i].ID] = &msgs[i]
		}
	}

	entries := make([]ThreadEntry, 0, len(msgs))
	for i := 0; i < len(msgs); i++ {
		m := msgs[i]
		rc := render.Context{Self: m.FromMe, Catalog: catalog}
		if m.QuotedID != "" {
			if q, ok := byID[m.QuotedID]; ok {
				rc.Quoted = quotedPreview(q)
			}
		}
		if m.Type == "image" {
			group := []string{m.URL}
			j := i + 1
			for j < len(msgs) && msgs[j].Type == "image" && msgs[j].FromMe == m.FromMe && msgs[j].QuotedID == "" {
				group = append(group, msgs[j].URL)
				j++
			}
			if len(group) > 1 {
				rc.GroupURLs = group
				entries = append(entries, ThreadEntry{Msg: m, Block: render.Message(&m, rc)})
				i = j - 1
				continue
			}
		}
		entries = append(entries, ThreadEntry{Msg: m, Block: render.Message(&m, rc)})
	}
	return entries
}

func quotedPreview(m *convo.Message) string {
	if t := m.Text(); t != "" {
		return truncate(t, 60)
	}
	return "[" + m.Type + "]"
}

// Thread displays a conversation's messages plus a composer.
type Thread struct {
	*tview.Flex
	theme    *ui.Theme
	messages *tview.TextView
	composer *tview.InputField

	// idMu guards userID and name, which socket and bus goroutines
	// read while the UI goroutine switches conversations.
	idMu   sync.RWMutex
	userID string
	name   string

	entries  []ThreadEntry
	previews map[string]render.Preview
	playback player.State
	onSend   func(text string)
}

// NewThread creates the message thread view.
func NewThread(theme *ui.Theme) *Thread {
	messages := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	messages.SetBorder(true)
	messages.SetBorderColor(theme.BorderColor)
	messages.SetBackgroundColor(theme.BgColor)
	messages.SetTextColor(theme.FgColor)
	messages.SetTitle(" Messages ")
	messages.SetTitleColor(theme.TitleColor)

	composer := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0)
	composer.SetBorder(true)
	composer.SetBorderColor(theme.BorderColor)
	composer.SetBackgroundColor(theme.BgColor)
	composer.SetFieldBackgroundColor(theme.BgColor)
	composer.SetFieldTextColor(theme.FgColor)
	composer.SetLabelColor(theme.MenuKeyColor)
	composer.SetTitle(" Compose (i to focus) ")
	composer.SetTitleColor(theme.TitleColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(messages, 0, 1, true).
		AddItem(composer, 3, 0, false)

	t := &Thread{
		Flex:     flex,
		theme:    theme,
		messages: messages,
		composer: composer,
		previews: make(map[string]render.Preview),
	}

	composer.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && t.onSend != nil {
			text := composer.GetText()
			if text != "" {
				t.onSend(text)
				composer.SetText("")
			}
		}
	})

	return t
}

// Name implements Component.
func (t *Thread) Name() string {
	t.idMu.RLock()
	defer t.idMu.RUnlock()
	if t.name != "" {
		return t.name
	}
	return "Thread"
}

// Init implements Component.
func (t *Thread) Init() {}

// Start implements Component.
func (t *Thread) Start() {}

// Stop implements Component.
func (t *Thread) Stop() {}

// Hints implements Component.
func (t *Thread) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "i", Description: "Compose"},
		{Key: "a", Description: "Play/pause audio"},
		{Key: "+", Description: "Speed"},
		{Key: "o", Description: "Orders panel"},
		{Key: "d", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// SetOnSend sets the composer submit callback.
func (t *Thread) SetOnSend(fn func(text string)) {
	t.onSend = fn
}

// Composer exposes the input field for focus handling.
func (t *Thread) Composer() *tview.InputField {
	return t.composer
}

// SetConversation switches the thread to a conversation.
func (t *Thread) SetConversation(userID, name string) {
	if name == "" {
		name = userID
	}
	t.idMu.Lock()
	t.userID = userID
	t.name = name
	t.idMu.Unlock()

	t.entries = nil
	t.previews = make(map[string]render.Preview)
	t.messages.SetTitle(fmt.Sprintf(" %s ", tview.Escape(sanitizeForTerminal(name))))
	t.messages.Clear()
}

// UserID returns the open conversation, empty when none. Safe from any
// goroutine.
func (t *Thread) UserID() string {
	t.idMu.RLock()
	defer t.idMu.RUnlock()
	return t.userID
}

// Update re-renders the thread from entries.
func (t *Thread) Update(entries []ThreadEntry) {
	t.entries = entries
	t.render()
}

// SetPreview attaches a fetched link preview and re-renders.
func (t *Thread) SetPreview(url string, p render.Preview) {
	t.previews[url] = p
	t.render()
}

// SetPlayback updates the playback indicator line.
func (t *Thread) SetPlayback(st player.State) {
	t.playback = st
	t.render()
}

// Audios returns the audio URLs in thread order, for playback keys.
func (t *Thread) Audios() []string {
	var urls []string
	for _, e := range t.entries {
		if e.Block.Kind == render.KindAudio && e.Msg.URL != "" {
			urls = append(urls, e.Msg.URL)
		}
	}
	return urls
}

func (t *Thread) render() {
	t.messages.Clear()
	for _, e := range t.entries {
		fmt.Fprint(t.messages, t.formatEntry(e))
	}
	t.messages.ScrollToEnd()
}

func (t *Thread) formatEntry(e ThreadEntry) string {
	var sb strings.Builder

	sender := "Customer"
	color := "gainsboro"
	if e.Block.Self {
		sender = "You"
		color = "palegreen"
	}
	tick := ""
	if e.Msg.FromMe {
		tick = " " + statusTick(e.Msg.Status)
	}
	fmt.Fprintf(&sb, "[%s::b]%s[-:-:-] [::d]%s[-:-:-]%s\n",
		color, sender, formatTimestamp(int64(e.Msg.Timestamp)), tick)

	if e.Block.Quoted != "" {
		fmt.Fprintf(&sb, "[::d]┃ %s[-:-:-]\n", tview.Escape(sanitizeForTerminal(e.Block.Quoted)))
	}

	sb.WriteString(t.formatBlock(e.Block))

	if e.Block.Reactions != "" {
		fmt.Fprintf(&sb, "[::d]%s[-:-:-]\n", e.Block.Reactions)
	}
	sb.WriteString("\n")
	return sb.String()
}

func (t *Thread) formatBlock(b render.Block) string {
	var sb strings.Builder
	switch b.Kind {
	case render.KindText:
		sb.WriteString(linkifyMarkup(b.Text, b.Links) + "\n")
		for _, u := range b.InlineImages {
			fmt.Fprintf(&sb, "[deepskyblue][IMG] %s[-]\n", tview.Escape(u))
		}
		if b.PreviewURL != "" {
			if p, ok := t.previews[b.PreviewURL]; ok && p.Title != "" {
				fmt.Fprintf(&sb, "[::d]↗ %s[-:-:-]\n", tview.Escape(sanitizeForTerminal(p.Title)))
			}
		}
	case render.KindImage:
		fmt.Fprintf(&sb, "[deepskyblue][IMG] %s[-]\n", tview.Escape(b.MediaURL))
		if b.Text != "" {
			sb.WriteString(tview.Escape(sanitizeForTerminal(b.Text)) + "\n")
		}
	case render.KindImageGroup:
		fmt.Fprintf(&sb, "[deepskyblue][IMG ×%d][-]\n", len(b.GroupURLs))
		for _, u := range b.GroupURLs {
			fmt.Fprintf(&sb, "[deepskyblue]  %s[-]\n", tview.Escape(u))
		}
	case render.KindAudio:
		marker := "[AUD]"
		if t.playback.CurrentURL == b.MediaURL && t.playback.Playing {
			marker = fmt.Sprintf("[▶ %.0fs/%.0fs %.1fx]",
				t.playback.Position, t.playback.Duration, t.playback.Rate)
		}
		fmt.Fprintf(&sb, "[springgreen]%s[-] %s\n", marker, b.Sparkline)
	case render.KindVideo:
		fmt.Fprintf(&sb, "[deepskyblue][VID] %s[-]\n", tview.Escape(b.MediaURL))
		if b.Text != "" {
			sb.WriteString(tview.Escape(sanitizeForTerminal(b.Text)) + "\n")
		}
	case render.KindOrder:
		sb.WriteString("[gold::b]Order[-:-:-]\n")
		if b.Order != nil {
			for _, it := range b.Order.Items {
				attrs := ""
				if it.Size != "" || it.Color != "" {
					attrs = fmt.Sprintf(" (%s)", strings.Trim(it.Size+"/"+it.Color, "/"))
				}
				fmt.Fprintf(&sb, "[gold]  %d× %s%s %s[-]\n",
					it.Quantity, tview.Escape(sanitizeForTerminal(it.Name)), attrs, it.Price)
			}
			if b.Order.Total != "" {
				fmt.Fprintf(&sb, "[gold::b]  Total: %s[-:-:-]\n", b.Order.Total)
			}
		}
	case render.KindCatalog, render.KindCatalogSet:
		title := b.CatalogTitle
		if title == "" {
			title = "Catalog"
		}
		fmt.Fprintf(&sb, "[gold::b]%s[-:-:-]\n", tview.Escape(sanitizeForTerminal(title)))
		for _, e := range b.Catalog {
			fmt.Fprintf(&sb, "[gold]  %s %s[-]\n", tview.Escape(sanitizeForTerminal(e.Name)), e.Price)
		}
	default:
		fmt.Fprintf(&sb, "[::d]%s[-:-:-]\n", tview.Escape(b.Text))
	}
	return sb.String()
}

// linkifyMarkup colors known links inside a text body.
func linkifyMarkup(text string, links []string) string {
	out := tview.Escape(sanitizeForTerminal(text))
	for _, u := range links {
		esc := tview.Escape(u)
		out = strings.ReplaceAll(out, esc, "[deepskyblue:::"+esc+"]"+esc+"[-:::-]")
	}
	return out
}
