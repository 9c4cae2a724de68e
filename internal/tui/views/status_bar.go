package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/matheus3301/zapdesk/internal/status"
	"github.com/matheus3301/zapdesk/internal/tui/ui"
)

// StatusBar displays the agent name, connectivity, and flashes.
type StatusBar struct {
	*tview.TextView
	theme *ui.Theme
	agent string
	state status.State
	flash string
}

// NewStatusBar creates the bottom status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, theme: theme, state: status.Starting}
}

// SetAgent updates the agent name display.
func (sb *StatusBar) SetAgent(name string) {
	sb.agent = name
	sb.render()
}

// SetState updates the connectivity display.
func (sb *StatusBar) SetState(s status.State) {
	sb.state = s
	sb.render()
}

// SetFlash sets a transient message.
func (sb *StatusBar) SetFlash(msg string) {
	sb.flash = msg
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	conn := fmt.Sprintf("[orange]%s[-]", sb.state)
	if sb.state == status.Live {
		conn = fmt.Sprintf("[springgreen]%s[-]", sb.state)
	}

	line := fmt.Sprintf(" [::b]%s[-:-:-] | %s | %s", sb.agent, conn, time.Now().Format("15:04"))
	if sb.flash != "" {
		line += fmt.Sprintf(" | [yellow]%s[-]", tview.Escape(sb.flash))
	}
	_, _ = fmt.Fprint(sb, line)
}
