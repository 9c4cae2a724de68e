package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/matheus3301/zapdesk/internal/convo"
	"github.com/matheus3301/zapdesk/internal/tui/ui"
)

// Details displays metadata for one conversation.
type Details struct {
	*tview.TextView
	theme *ui.Theme
}

// NewDetails creates the conversation details view.
func NewDetails(theme *ui.Theme) *Details {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Conversation Details ")
	tv.SetTitleColor(theme.TitleColor)

	return &Details{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (d *Details) Name() string { return "Details" }

// Init implements Component.
func (d *Details) Init() {}

// Start implements Component.
func (d *Details) Start() {}

// Stop implements Component.
func (d *Details) Stop() {}

// Hints implements Component.
func (d *Details) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
		{Key: ":", Description: "Command"},
	}
}

// Update renders conversation metadata.
func (d *Details) Update(c *convo.Conversation) {
	d.Clear()
	if c == nil {
		return
	}

	name := c.Name
	if name == "" {
		name = c.UserID
	}
	agent := c.AssignedAgent
	if agent == "" {
		agent = "-"
	}
	tags := strings.Join(c.Tags, ", ")
	if tags == "" {
		tags = "-"
	}
	lastActive := formatTimestamp(int64(c.LastMessageTime))
	if lastActive == "" {
		lastActive = "-"
	}

	fg := "gainsboro"
	ct := "papayawhip"
	fmt.Fprintf(d,
		"\n [%s::b]Name:[-:-:-]         [%s]%s[-]\n"+
			" [%s::b]Phone:[-:-:-]        [%s]%s[-]\n"+
			" [%s::b]Agent:[-:-:-]        [%s]%s[-]\n"+
			" [%s::b]Tags:[-:-:-]         [%s]%s[-]\n"+
			" [%s::b]Unread:[-:-:-]       [%s]%d[-]\n"+
			" [%s::b]Needs reply:[-:-:-]  [%s]%d[-]\n"+
			" [%s::b]Last active:[-:-:-]  [%s]%s[-]\n"+
			" [%s::b]Last message:[-:-:-] [%s]%s[-]",
		fg, ct, tview.Escape(sanitizeForTerminal(name)),
		fg, ct, tview.Escape(c.UserID),
		fg, ct, tview.Escape(agent),
		fg, ct, tview.Escape(tags),
		fg, ct, c.UnreadCount,
		fg, ct, c.UnrespondedCount,
		fg, ct, lastActive,
		fg, ct, tview.Escape(sanitizeForTerminal(truncate(c.LastMessage, 60))),
	)
	d.SetTitle(fmt.Sprintf(" %s ", tview.Escape(sanitizeForTerminal(name))))
}
