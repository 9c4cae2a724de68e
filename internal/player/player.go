// Package player owns the single shared audio session. One stream is
// active at a time across the whole application; playback errors are
// logged and swallowed so a bad voice note never takes the UI down.
package player

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matheus3301/zapdesk/internal/store"
)

// Sink is the audio backend. Implementations must be safe for use
// from a single goroutine; the Controller serializes all calls.
type Sink interface {
	// Load starts playing a source, replacing whatever was loaded.
	Load(source string) error
	SetPaused(paused bool) error
	// Stop unloads the current source.
	Stop() error
	// SeekTo jumps to an absolute position in seconds.
	SeekTo(seconds float64) error
	SetRate(rate float64) error
	// Poll reports the current position and duration in seconds.
	// Duration may be 0 while unknown (e.g. still buffering).
	Poll() (position, duration float64, err error)
	Close() error
}

var rates = []float64{1, 1.5, 2}

// State is a snapshot of the playback session for the UI.
type State struct {
	CurrentURL string
	Playing    bool
	Position   float64
	Duration   float64
	Rate       float64
}

// Controller drives the Sink and keeps the session state. Play is
// cache-aware: cached audio plays from a local file, uncached audio
// streams immediately while a background fetch fills the cache.
type Controller struct {
	mu     sync.Mutex
	sink   Sink
	cache  store.Cache
	client *http.Client
	logger *zap.Logger

	current  string
	playing  bool
	position float64
	duration float64
	rate     float64

	tmpFiles []string
	stopPoll chan struct{}
}

func New(sink Sink, cache store.Cache, logger *zap.Logger) *Controller {
	c := &Controller{
		sink:     sink,
		cache:    cache,
		client:   &http.Client{Timeout: 60 * time.Second},
		logger:   logger.Named("player"),
		rate:     rates[0],
		stopPoll: make(chan struct{}),
	}
	go c.pollLoop()
	return c
}

// Play starts the given URL, replacing any current stream. The
// playback rate survives source switches.
func (c *Controller) Play(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playAt(url, 0)
}

func (c *Controller) playAt(url string, position float64) {
	source := c.resolve(url)
	if err := c.sink.Load(source); err != nil {
		c.logger.Warn("load failed", zap.String("url", url), zap.Error(err))
		return
	}
	if err := c.sink.SetRate(c.rate); err != nil {
		c.logger.Debug("set rate failed", zap.Error(err))
	}
	if position > 0 {
		if err := c.sink.SeekTo(position); err != nil {
			c.logger.Debug("seek failed", zap.Error(err))
		}
	}
	c.current = url
	c.playing = true
	c.position = position
	c.duration = 0
}

// Toggle pauses the URL if it is the one playing, resumes it if it is
// the one paused, and otherwise starts it fresh.
func (c *Controller) Toggle(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if url != c.current {
		c.playAt(url, 0)
		return
	}
	c.playing = !c.playing
	if err := c.sink.SetPaused(!c.playing); err != nil {
		c.logger.Warn("pause toggle failed", zap.Error(err))
	}
}

func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	c.playing = false
	if err := c.sink.SetPaused(true); err != nil {
		c.logger.Warn("pause failed", zap.Error(err))
	}
}

// Stop unloads the stream and resets the position to zero.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
	c.position = 0
	if err := c.sink.Stop(); err != nil {
		c.logger.Warn("stop failed", zap.Error(err))
	}
}

// Seek maps a fraction in [0,1] to an absolute position. It is a
// no-op while the duration is unknown.
func (c *Controller) Seek(fraction float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.duration <= 0 {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	target := fraction * c.duration
	if err := c.sink.SeekTo(target); err != nil {
		c.logger.Warn("seek failed", zap.Error(err))
		return
	}
	c.position = target
}

// CycleSpeed advances the playback rate through 1x, 1.5x, 2x.
func (c *Controller) CycleSpeed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, r := range rates {
		if r == c.rate {
			c.rate = rates[(i+1)%len(rates)]
			break
		}
	}
	if err := c.sink.SetRate(c.rate); err != nil {
		c.logger.Debug("set rate failed", zap.Error(err))
	}
	return c.rate
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		CurrentURL: c.current,
		Playing:    c.playing,
		Position:   c.position,
		Duration:   c.duration,
		Rate:       c.rate,
	}
}

// Close shuts the sink down and removes cached temp files.
func (c *Controller) Close() error {
	close(c.stopPoll)
	c.mu.Lock()
	files := c.tmpFiles
	c.tmpFiles = nil
	c.mu.Unlock()
	for _, f := range files {
		os.Remove(f)
	}
	return c.sink.Close()
}

// resolve picks the playback source for a URL. A cached blob is
// written to a temp file; a miss returns the URL itself for streaming
// and kicks off a background fetch so the next play hits the cache.
func (c *Controller) resolve(url string) string {
	if blob := c.cache.GetMedia(url); blob != nil {
		f, err := os.CreateTemp("", "zapdesk-audio-*")
		if err == nil {
			if _, err := f.Write(blob); err == nil {
				f.Close()
				c.tmpFiles = append(c.tmpFiles, f.Name())
				return f.Name()
			}
			f.Close()
			os.Remove(f.Name())
		}
	}
	go c.fetchToCache(url)
	return url
}

func (c *Controller) fetchToCache(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("media fetch failed", zap.String("url", url), zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}
	blob, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return
	}
	if !c.cache.PutMedia(url, blob) {
		c.logger.Debug("media cache write skipped", zap.String("url", url))
	}
}

// pollLoop refreshes position/duration from the sink while playing.
func (c *Controller) pollLoop() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopPoll:
			return
		case <-ticker.C:
			c.refresh()
		}
	}
}

func (c *Controller) refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	if pos, dur, err := c.sink.Poll(); err == nil {
		c.position = pos
		if dur > 0 {
			c.duration = dur
		}
	}
}
