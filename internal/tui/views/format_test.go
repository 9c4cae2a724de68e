package views

import (
	"testing"
	"time"

	"github.com/matheus3301/zapdesk/internal/convo"
)

func TestStatusTick(t *testing.T) {
	cases := []struct {
		status convo.Status
		want   string
	}{
		{convo.StatusSending, "…"},
		{convo.StatusSent, "✓"},
		{convo.StatusDelivered, "✓✓"},
		{convo.StatusRead, "[deepskyblue]✓✓[-]"},
		{convo.StatusFailed, "[orangered]✗[-]"},
		{convo.Status("bogus"), ""},
	}
	for _, c := range cases {
		if got := statusTick(c.status); got != c.want {
			t.Errorf("statusTick(%q) = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp(0); got != "" {
		t.Errorf("zero timestamp = %q, want empty", got)
	}
	today := time.Now()
	got := formatTimestamp(today.UnixMilli())
	if got != today.Format("15:04") {
		t.Errorf("today = %q, want clock time", got)
	}
	past := today.AddDate(0, -2, 0)
	got = formatTimestamp(past.UnixMilli())
	if got != past.Format("01/02") {
		t.Errorf("past = %q, want month/day", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	got := truncate("ação promocional", 6)
	if got != "ação …" {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeForTerminal(t *testing.T) {
	// Thumbs up with skin tone modifier collapses to the base emoji.
	in := "ok \U0001F44D\U0001F3FD done"
	want := "ok \U0001F44D done"
	if got := sanitizeForTerminal(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	// ZWJ sequences are flattened.
	if got := sanitizeForTerminal("a‍b"); got != "ab" {
		t.Errorf("got %q", got)
	}
}
