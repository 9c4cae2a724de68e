package convo

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Filters are the conversation list filter inputs, mapped to the
// /conversations query string.
type Filters struct {
	Query           string
	UnreadOnly      bool
	Assigned        string
	Tags            []string
	UnrespondedOnly bool
	Archived        bool
}

// Values encodes the filters as query parameters.
func (f Filters) Values() url.Values {
	v := url.Values{}
	v.Set("q", f.Query)
	if f.UnreadOnly {
		v.Set("unread_only", "true")
	}
	if f.Assigned != "" {
		v.Set("assigned", f.Assigned)
	}
	if len(f.Tags) > 0 {
		v.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.UnrespondedOnly {
		v.Set("unresponded_only", "true")
	}
	if f.Archived {
		v.Set("archived", "true")
	}
	return v
}

// Lister fetches filtered conversation snapshots. Implemented by the
// backend API client.
type Lister interface {
	ListConversations(ctx context.Context, f Filters) ([]Conversation, error)
}

// DefaultDebounce is how long the loader waits after the last
// filter-affecting change before issuing a snapshot request.
const DefaultDebounce = 350 * time.Millisecond

// Loader drives debounced, cancellable snapshot refreshes into the
// reconciler. Changing the filters before the debounce window elapses
// restarts the window; a newer request cancels any in-flight one, so an
// older snapshot can never apply over a newer one.
type Loader struct {
	lister   Lister
	rec      *Reconciler
	logger   *zap.Logger
	debounce time.Duration

	mu         sync.Mutex
	filters    Filters
	timer      *time.Timer
	inflight   context.CancelFunc
	generation uint64
	closed     bool
}

// NewLoader creates a snapshot loader with the default debounce window.
func NewLoader(lister Lister, rec *Reconciler, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		lister:   lister,
		rec:      rec,
		logger:   logger,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the debounce window. Zero fetches immediately.
func (l *Loader) SetDebounce(d time.Duration) {
	l.mu.Lock()
	l.debounce = d
	l.mu.Unlock()
}

// Filters returns the current filter inputs.
func (l *Loader) Filters() Filters {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters
}

// SetFilters records new filter inputs and schedules a debounced
// snapshot refresh.
func (l *Loader) SetFilters(f Filters) {
	l.mu.Lock()
	l.filters = f
	if l.closed {
		l.mu.Unlock()
		return
	}
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, l.fetch)
	l.mu.Unlock()
}

// Refresh issues a snapshot request immediately with the current
// filters, cancelling any in-flight request.
func (l *Loader) Refresh() {
	l.mu.Lock()
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	closed := l.closed
	l.mu.Unlock()
	if !closed {
		l.fetch()
	}
}

// Stop cancels pending timers and in-flight requests. The loader
// ignores further SetFilters calls afterwards.
func (l *Loader) Stop() {
	l.mu.Lock()
	l.closed = true
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	cancel := l.inflight
	l.inflight = nil
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (l *Loader) fetch() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if l.inflight != nil {
		l.inflight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.inflight = cancel
	l.generation++
	gen := l.generation
	f := l.filters
	l.mu.Unlock()

	rows, err := l.lister.ListConversations(ctx, f)

	l.mu.Lock()
	latest := gen == l.generation && !l.closed
	l.mu.Unlock()

	if err != nil {
		// Cancelled requests are expected; anything else degrades to
		// the last-known-good list.
		if ctx.Err() == nil {
			l.logger.Warn("conversation snapshot failed", zap.Error(err))
		}
		return
	}
	// Only the newest request may apply; a superseded snapshot is
	// discarded even if it happened to finish last.
	if latest && ctx.Err() == nil {
		l.rec.ApplySnapshot(rows)
	}
}
