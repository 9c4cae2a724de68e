package ws

import (
	"context"
	"math/rand/v2"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/matheus3301/zapdesk/internal/bus"
	"go.uber.org/zap"
)

const (
	// maxBackoff caps the reconnect delay.
	maxBackoff = 30 * time.Second
	// baseBackoff is the first reconnect delay before doubling.
	baseBackoff = time.Second
	// jitterRange is the random extra added to every delay.
	jitterRange = 500 * time.Millisecond
)

// pingPayload is sent immediately after every successful open as a
// liveness signal to the backend.
var pingPayload = []byte(`{"type":"ping"}`)

// Client wraps a bidirectional WebSocket channel with automatic
// reconnection. Unexpected closes and transport errors take the same
// randomized exponential backoff path; an explicit Stop closes the
// connection without reconnecting.
type Client struct {
	url       string
	name      string
	onMessage func([]byte)
	bus       *bus.Bus
	logger    *zap.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	cancel    context.CancelFunc
	connected atomic.Bool
	retries   int
}

// New creates a socket client for the given endpoint. onMessage is
// invoked for every received frame; name tags log lines and has no
// protocol meaning.
func New(url, name string, onMessage func([]byte), b *bus.Bus, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:       url,
		name:      name,
		onMessage: onMessage,
		bus:       b,
		logger:    logger,
	}
}

// Start launches the connect/read/reconnect loop in the background.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	go c.run(ctx)
}

// Stop tears the connection down without triggering a reconnect.
// Pending reconnect timers are cleared.
func (c *Client) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	conn := c.conn
	c.cancel = nil
	c.conn = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
	c.setConnected(false)
}

// Connected reports current connectivity.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Send writes a frame to the socket. Fails when disconnected.
func (c *Client) Send(ctx context.Context, data []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

func (c *Client) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		err := c.connectAndRead(ctx)
		if ctx.Err() != nil {
			return
		}
		c.setConnected(false)

		c.mu.Lock()
		delay := reconnectDelay(c.retries)
		c.retries++
		retries := c.retries
		c.mu.Unlock()

		c.logger.Warn("socket closed, reconnecting",
			zap.String("channel", c.name),
			zap.Error(err),
			zap.Duration("delay", delay),
			zap.Int("attempt", retries))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) connectAndRead(ctx context.Context) error {
	conn, resp, err := websocket.Dial(ctx, c.url, &websocket.DialOptions{
		HTTPHeader: http.Header{},
	})
	if err != nil {
		if resp != nil {
			c.logger.Debug("socket dial rejected",
				zap.String("channel", c.name),
				zap.Int("status", resp.StatusCode))
		}
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.retries = 0
	c.mu.Unlock()
	c.setConnected(true)
	c.logger.Info("socket connected", zap.String("channel", c.name))

	// Liveness ping straight after open.
	if err := conn.Write(ctx, websocket.MessageText, pingPayload); err != nil {
		c.forceClose(conn)
		return err
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			// Transport errors force-close and reconnect; there is no
			// distinction from a clean remote close.
			c.forceClose(conn)
			return err
		}
		if c.onMessage != nil {
			c.onMessage(data)
		}
	}
}

func (c *Client) forceClose(conn *websocket.Conn) {
	_ = conn.CloseNow()
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
}

func (c *Client) setConnected(up bool) {
	if c.connected.Swap(up) == up {
		return
	}
	if c.bus == nil {
		return
	}
	kind := bus.KindSocketDown
	if up {
		kind = bus.KindSocketUp
	}
	c.bus.Publish(bus.Event{Kind: kind, Timestamp: time.Now(), Payload: c.name})
}

// reconnectDelay computes min(30s, 1s*2^retry) plus up to 500ms of
// random jitter.
func reconnectDelay(retry int) time.Duration {
	d := baseBackoff
	for i := 0; i < retry; i++ {
		d *= 2
		if d >= maxBackoff {
			d = maxBackoff
			break
		}
	}
	return d + time.Duration(rand.Int64N(int64(jitterRange)))
}
