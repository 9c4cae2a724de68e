package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/matheus3301/zapdesk/internal/tui/ui"
)

// Help displays the key binding reference.
type Help struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelp creates the help view.
func NewHelp(theme *ui.Theme) *Help {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	h := &Help{
		TextView: tv,
		theme:    theme,
	}
	h.render()
	return h
}

// Name implements Component.
func (h *Help) Name() string { return "Help" }

// Init implements Component.
func (h *Help) Init() {}

// Start implements Component.
func (h *Help) Start() {}

// Stop implements Component.
func (h *Help) Stop() {}

// Hints implements Component.
func (h *Help) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (h *Help) render() {
	kc := "springgreen"

	help := fmt.Sprintf(`
  [::b]Global[-:-:-]

  [%s]:[-:-:-]      Command mode        [%s]Esc[-:-:-]    Cancel / Go back
  [%s]/[-:-:-]      Filter text         [%s]?[-:-:-]      Help
  [%s]q[-:-:-]      Quit / Back         [%s]Ctrl-C[-:-:-] Quit immediately

  [::b]Conversation List[-:-:-]

  [%s]Enter[-:-:-]  Open conversation   [%s]u[-:-:-]      Toggle unread-only
  [%s]1-9[-:-:-]    Jump to Nth convo   [%s]n[-:-:-]      Toggle needs-reply
  [%s]x[-:-:-]      Toggle archived     [%s]0[-:-:-]      Clear all filters

  [::b]Message Thread[-:-:-]

  [%s]i[-:-:-]      Focus composer      [%s]d[-:-:-]      Conversation details
  [%s]a[-:-:-]      Play/pause audio    [%s]+[-:-:-]      Cycle playback speed
  [%s]o[-:-:-]      Orders panel        [%s]Enter[-:-:-]  Send (in composer)

  [::b]Orders Panel[-:-:-]

  [%s]Enter[-:-:-]  Search / Select     [%s]s[-:-:-]      Shipping options
  [%s]c[-:-:-]      Checkout            [%s]x[-:-:-]      Clear cart

  [::b]Commands (: mode)[-:-:-]

  [%s]:assign <agent>[-:-:-]   Assign the open conversation
  [%s]:tag <a,b,c>[-:-:-]      Replace tags on the open conversation
  [%s]:done[-:-:-]             Archive (tag "done")
  [%s]:agent <name>[-:-:-]     Filter list by assigned agent
  [%s]:tags <a,b>[-:-:-]       Filter list by tags
  [%s]:help[-:-:-] / [%s]:q[-:-:-]      Help / Quit
`,
		kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc, kc,
	)

	_, _ = fmt.Fprint(h, help)
}
