package convo

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNormalizeMillis(t *testing.T) {
	ref := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	wantMs := ref.UnixMilli()

	cases := []struct {
		name string
		in   any
		want int64
	}{
		{"time.Time", ref, wantMs},
		{"epoch seconds", int64(ref.Unix()), wantMs},
		{"epoch millis", wantMs, wantMs},
		{"epoch seconds float", float64(ref.Unix()), wantMs},
		{"iso with zone", "2024-01-01T10:00:00Z", wantMs},
		{"iso with offset", "2024-01-01T07:00:00-03:00", wantMs},
		{"naive iso treated as UTC", "2024-01-01T10:00:00", wantMs},
		{"naive with space", "2024-01-01 10:00:00", wantMs},
		{"epoch string", "1704103200", wantMs},
		{"nil", nil, 0},
		{"garbage", "not-a-time", 0},
		{"empty string", "", 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NormalizeMillis(c.in); got != c.want {
				t.Errorf("NormalizeMillis(%v) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestFlexTimeUnmarshal(t *testing.T) {
	var v struct {
		T FlexTime `json:"t"`
	}

	for _, raw := range []string{
		`{"t": "2024-01-01T10:00:00Z"}`,
		`{"t": 1704103200}`,
		`{"t": 1704103200000}`,
	} {
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if int64(v.T) != 1704103200000 {
			t.Errorf("%s -> %d, want 1704103200000", raw, int64(v.T))
		}
	}
}

func TestStatusRankOrder(t *testing.T) {
	seq := []Status{StatusSending, StatusSent, StatusDelivered, StatusRead, StatusFailed}
	for i := 1; i < len(seq); i++ {
		if seq[i].Rank() <= seq[i-1].Rank() {
			t.Errorf("rank(%s)=%d not above rank(%s)=%d", seq[i], seq[i].Rank(), seq[i-1], seq[i-1].Rank())
		}
	}
	if Status("bogus").Rank() != -1 {
		t.Errorf("unknown status rank = %d, want -1", Status("bogus").Rank())
	}
}
