package tui

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"assign maria", Command{Name: "assign", Args: "maria"}},
		{"  TAG  vip, urgent ", Command{Name: "tag", Args: "vip, urgent"}},
		{"done", Command{Name: "done"}},
		{"q", Command{Name: "q"}},
	}
	for _, c := range cases {
		if got := ParseCommand(c.in); got != c.want {
			t.Errorf("ParseCommand(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" vip,  urgent ,, refund ")
	want := []string{"vip", "urgent", "refund"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}
	if SplitList("  ,  ") != nil {
		t.Error("expected nil for empty list")
	}
}
