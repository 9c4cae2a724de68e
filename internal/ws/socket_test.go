package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/matheus3301/zapdesk/internal/bus"
)

func TestReconnectDelayNonDecreasingAndCapped(t *testing.T) {
	prev := time.Duration(0)
	for retry := 0; retry < 12; retry++ {
		d := reconnectDelay(retry)
		if d < prev-jitterRange {
			t.Errorf("delay(%d) = %v is below delay(%d) = %v beyond jitter", retry, d, retry-1, prev)
		}
		if d > maxBackoff+jitterRange {
			t.Errorf("delay(%d) = %v exceeds cap %v + jitter", retry, d, maxBackoff)
		}
		prev = d
	}

	// Early delays follow 1s*2^n exactly (mod jitter).
	for retry, want := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second} {
		d := reconnectDelay(retry)
		if d < want || d >= want+jitterRange {
			t.Errorf("delay(%d) = %v, want [%v, %v)", retry, d, want, want+jitterRange)
		}
	}
}

func wsEcho(t *testing.T, dials *int32, closeAfter int) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(dials, 1)
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		ctx := r.Context()
		for i := 0; ; i++ {
			typ, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			if closeAfter > 0 && i+1 >= closeAfter {
				_ = conn.Close(websocket.StatusGoingAway, "bye")
				return
			}
			_ = conn.Write(ctx, typ, data)
		}
	}
}

func TestClientReceivesAndPings(t *testing.T) {
	var dials int32
	srv := httptest.NewServer(wsEcho(t, &dials, 0))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	got := make(chan []byte, 8)
	c := New(url, "admin", func(data []byte) { got <- data }, nil, nil)
	c.Start(context.Background())
	defer c.Stop()

	// The liveness ping is echoed back by the test server.
	select {
	case data := <-got:
		if string(data) != `{"type":"ping"}` {
			t.Errorf("first frame = %s, want ping payload", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for echoed ping")
	}

	if !c.Connected() {
		t.Error("Connected() = false after open")
	}

	if err := c.Send(context.Background(), []byte("hello")); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	select {
	case data := <-got:
		if string(data) != "hello" {
			t.Errorf("echo = %s, want hello", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for echo")
	}
}

func TestClientReconnectsAfterRemoteClose(t *testing.T) {
	var dials int32
	// Server drops the connection after the first frame (the ping).
	srv := httptest.NewServer(wsEcho(t, &dials, 1))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	b := bus.New()
	ch, unsub := b.Subscribe("socket.", 16)
	defer unsub()

	c := New(url, "admin", nil, b, nil)
	c.Start(context.Background())
	defer c.Stop()

	// First cycle: up, then down, then up again after ~1s backoff.
	seen := map[string]int{}
	deadline := time.After(5 * time.Second)
	for seen[bus.KindSocketUp] < 2 || seen[bus.KindSocketDown] < 1 {
		select {
		case evt := <-ch:
			seen[evt.Kind]++
		case <-deadline:
			t.Fatalf("timeout; events seen: %v, dials=%d", seen, atomic.LoadInt32(&dials))
		}
	}

	if atomic.LoadInt32(&dials) < 2 {
		t.Errorf("dials = %d, want >= 2 (reconnect)", dials)
	}
}

func TestStopPreventsReconnect(t *testing.T) {
	var dials int32
	srv := httptest.NewServer(wsEcho(t, &dials, 0))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	c := New(url, "thread", nil, nil, nil)
	c.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for !c.Connected() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !c.Connected() {
		t.Fatal("never connected")
	}

	c.Stop()
	time.Sleep(100 * time.Millisecond)

	if c.Connected() {
		t.Error("Connected() = true after Stop")
	}
	if got := atomic.LoadInt32(&dials); got != 1 {
		t.Errorf("dials = %d, want 1 (no reconnect after Stop)", got)
	}
	if err := c.Send(context.Background(), []byte("x")); err != ErrNotConnected {
		t.Errorf("Send after Stop = %v, want ErrNotConnected", err)
	}
}

func TestDialFailureBacksOff(t *testing.T) {
	// Point at a server that immediately refuses the upgrade.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	c := New(url, "admin", nil, nil, nil)
	c.Start(context.Background())
	defer c.Stop()

	time.Sleep(200 * time.Millisecond)
	if c.Connected() {
		t.Error("Connected() = true against refusing server")
	}
}
