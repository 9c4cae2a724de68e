package convo

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeLister struct {
	mu    sync.Mutex
	calls int32
	rows  []Conversation
	delay time.Duration
	seen  []Filters
}

func (f *fakeLister) ListConversations(ctx context.Context, filters Filters) ([]Conversation, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.seen = append(f.seen, filters)
	rows, delay := f.rows, f.delay
	f.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return rows, nil
}

func TestLoaderDebounce(t *testing.T) {
	lister := &fakeLister{rows: []Conversation{{UserID: "1", LastMessage: "hi"}}}
	rec := NewReconciler(nil, nil)
	l := NewLoader(lister, rec, nil)
	l.SetDebounce(30 * time.Millisecond)
	defer l.Stop()

	// Rapid filter changes collapse into one request.
	l.SetFilters(Filters{Query: "a"})
	l.SetFilters(Filters{Query: "ab"})
	l.SetFilters(Filters{Query: "abc"})

	time.Sleep(150 * time.Millisecond)

	if got := atomic.LoadInt32(&lister.calls); got != 1 {
		t.Errorf("calls = %d, want 1 (debounced)", got)
	}
	lister.mu.Lock()
	lastQuery := lister.seen[len(lister.seen)-1].Query
	lister.mu.Unlock()
	if lastQuery != "abc" {
		t.Errorf("query = %q, want abc (latest filters)", lastQuery)
	}
	if len(rec.List()) != 1 {
		t.Errorf("snapshot not applied: %v", rec.List())
	}
}

func TestLoaderCancelsInFlight(t *testing.T) {
	lister := &fakeLister{delay: 80 * time.Millisecond, rows: []Conversation{{UserID: "1"}}}
	rec := NewReconciler(nil, nil)
	l := NewLoader(lister, rec, nil)
	l.SetDebounce(0)
	defer l.Stop()

	l.Refresh()
	time.Sleep(20 * time.Millisecond)
	// Second request cancels the first mid-flight.
	l.Refresh()
	time.Sleep(200 * time.Millisecond)

	if got := atomic.LoadInt32(&lister.calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
	if len(rec.List()) != 1 {
		t.Errorf("latest snapshot missing: %v", rec.List())
	}
}

func TestLoaderStopPreventsApply(t *testing.T) {
	lister := &fakeLister{delay: 50 * time.Millisecond, rows: []Conversation{{UserID: "1"}}}
	rec := NewReconciler(nil, nil)
	l := NewLoader(lister, rec, nil)
	l.SetDebounce(0)

	l.Refresh()
	time.Sleep(10 * time.Millisecond)
	l.Stop()
	time.Sleep(100 * time.Millisecond)

	if len(rec.List()) != 0 {
		t.Errorf("snapshot applied after Stop: %v", rec.List())
	}

	// Further filter changes are ignored.
	l.SetFilters(Filters{Query: "x"})
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&lister.calls); got != 1 {
		t.Errorf("calls after Stop = %d, want 1", got)
	}
}

func TestFiltersValues(t *testing.T) {
	f := Filters{
		Query:           "pedido",
		UnreadOnly:      true,
		Assigned:        "maria",
		Tags:            []string{"vip", "done"},
		UnrespondedOnly: true,
		Archived:        true,
	}
	v := f.Values()
	if v.Get("q") != "pedido" {
		t.Errorf("q = %q", v.Get("q"))
	}
	if v.Get("unread_only") != "true" || v.Get("unresponded_only") != "true" || v.Get("archived") != "true" {
		t.Errorf("boolean filters not encoded: %v", v)
	}
	if v.Get("tags") != "vip,done" {
		t.Errorf("tags = %q, want vip,done", v.Get("tags"))
	}

	// Empty filters still encode the q parameter.
	if got := (Filters{}).Values().Get("q"); got != "" {
		t.Errorf("empty q = %q", got)
	}
}
