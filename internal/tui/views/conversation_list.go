package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/zapdesk/internal/convo"
	"github.com/matheus3301/zapdesk/internal/tui/ui"
)

// ConversationList is the main conversation table. Filtering happens
// server-side through the loader; the view only displays the active
// filter summary in its title.
type ConversationList struct {
	*tview.Table
	theme   *ui.Theme
	convos  []convo.Conversation
	filters convo.Filters
}

// NewConversationList creates the conversation list table.
func NewConversationList(theme *ui.Theme) *ConversationList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(" Conversations ")
	table.SetTitleColor(theme.TitleColor)

	return &ConversationList{
		Table: table,
		theme: theme,
	}
}

// Name implements Component.
func (cl *ConversationList) Name() string { return "Conversations" }

// Init implements Component.
func (cl *ConversationList) Init() {}

// Start implements Component.
func (cl *ConversationList) Start() {}

// Stop implements Component.
func (cl *ConversationList) Stop() {}

// Hints implements Component.
func (cl *ConversationList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Filter"},
		{Key: "u", Description: "Unread only"},
		{Key: "n", Description: "Needs reply"},
		{Key: "x", Description: "Archived"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
		{Key: "q", Description: "Quit"},
		{Key: "1-9", Description: "Jump", Numeric: true},
	}
}

// Update refreshes the table from the reconciler's ordered list.
func (cl *ConversationList) Update(convos []convo.Conversation, filters convo.Filters) {
	cl.convos = convos
	cl.filters = filters
	cl.render()
}

func (cl *ConversationList) render() {
	selected, _ := cl.GetSelection()
	cl.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" NAME", 1},
		{" LAST MESSAGE", 2},
		{" TIME", 0},
		{" AGENT", 0},
		{" TAGS", 1},
	}
	for col, h := range headers {
		cell := tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(cl.theme.TableHeaderFg).
			SetBackgroundColor(cl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp)
		cl.SetCell(0, col, cell)
	}

	for i, c := range cl.convos {
		row := i + 1
		name := c.Name
		if name == "" {
			name = c.UserID
		}
		name = tview.Escape(sanitizeForTerminal(truncate(name, 28)))
		if c.UnreadCount > 0 {
			name = fmt.Sprintf("[springgreen::b](%d)[-:-:-] %s", c.UnreadCount, name)
		}

		preview := tview.Escape(sanitizeForTerminal(truncate(c.LastMessage, 48)))
		if c.LastMessageFromMe {
			preview = statusTick(c.LastMessageStatus) + " " + preview
		}

		tags := ""
		if len(c.Tags) > 0 {
			tags = "[skyblue]" + tview.Escape(strings.Join(c.Tags, ",")) + "[-]"
		}

		cl.SetCell(row, 0, tview.NewTableCell(" "+name).SetExpansion(1).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 1, tview.NewTableCell(" "+preview).SetExpansion(2).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 2, tview.NewTableCell(formatTimestamp(int64(c.LastMessageTime))).SetAlign(tview.AlignRight).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 3, tview.NewTableCell(" "+tview.Escape(c.AssignedAgent)).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 4, tview.NewTableCell(" "+tags).SetExpansion(1).SetTextColor(cl.theme.FgColor))
	}

	cl.SetTitle(cl.title())
	if selected > 0 && selected <= len(cl.convos) {
		cl.Select(selected, 0)
	} else if len(cl.convos) > 0 {
		cl.Select(1, 0)
	}
}

func (cl *ConversationList) title() string {
	var parts []string
	if cl.filters.Query != "" {
		parts = append(parts, "q:"+cl.filters.Query)
	}
	if cl.filters.UnreadOnly {
		parts = append(parts, "unread")
	}
	if cl.filters.UnrespondedOnly {
		parts = append(parts, "needs-reply")
	}
	if cl.filters.Assigned != "" {
		parts = append(parts, "agent:"+cl.filters.Assigned)
	}
	if len(cl.filters.Tags) > 0 {
		parts = append(parts, "tags:"+strings.Join(cl.filters.Tags, ","))
	}
	if cl.filters.Archived {
		parts = append(parts, "archived")
	}
	if len(parts) == 0 {
		return fmt.Sprintf(" Conversations (%d) ", len(cl.convos))
	}
	return fmt.Sprintf(" Conversations (%d) [%s] ", len(cl.convos), strings.Join(parts, " "))
}

// Selected returns the user id of the currently selected conversation.
func (cl *ConversationList) Selected() string {
	row, _ := cl.GetSelection()
	idx := row - 1 // header
	if idx >= 0 && idx < len(cl.convos) {
		return cl.convos[idx].UserID
	}
	return ""
}

// ByIndex returns the user id of the Nth visible conversation (1-based).
func (cl *ConversationList) ByIndex(n int) string {
	if n >= 1 && n <= len(cl.convos) {
		return cl.convos[n-1].UserID
	}
	return ""
}
