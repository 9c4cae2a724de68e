package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MPV drives an mpv subprocess over its JSON IPC socket. mpv handles
// the actual decoding and HTTP streaming; this side only issues
// property commands.
type MPV struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	conn   net.Conn
	reader *bufio.Reader
	sock   string
	reqID  int
	logger *zap.Logger
}

// NewMPV launches mpv in idle mode and connects to its IPC socket.
// binary defaults to "mpv" when empty.
func NewMPV(binary string, logger *zap.Logger) (*MPV, error) {
	if binary == "" {
		binary = "mpv"
	}
	sock := filepath.Join(os.TempDir(), fmt.Sprintf("zapdesk-mpv-%d.sock", os.Getpid()))
	cmd := exec.Command(binary,
		"--no-video",
		"--no-terminal",
		"--idle=yes",
		"--input-ipc-server="+sock,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("mpv: start: %w", err)
	}

	var conn net.Conn
	var err error
	for i := 0; i < 40; i++ {
		conn, err = net.Dial("unix", sock)
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, fmt.Errorf("mpv: ipc connect: %w", err)
	}

	return &MPV{
		cmd:    cmd,
		conn:   conn,
		reader: bufio.NewReader(conn),
		sock:   sock,
		logger: logger.Named("mpv"),
	}, nil
}

type mpvResponse struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID int             `json:"request_id"`
	Event     string          `json:"event"`
}

// command sends one IPC command and waits for its reply, skipping
// interleaved event notifications.
func (m *MPV) command(args ...any) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqID++
	req := map[string]any{"command": args, "request_id": m.reqID}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	m.conn.SetDeadline(time.Now().Add(2 * time.Second))
	if _, err := m.conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("mpv: write: %w", err)
	}
	for {
		line, err := m.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("mpv: read: %w", err)
		}
		var resp mpvResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}
		if resp.Event != "" || resp.RequestID != m.reqID {
			continue
		}
		if resp.Error != "success" {
			return nil, fmt.Errorf("mpv: %s", resp.Error)
		}
		return resp.Data, nil
	}
}

func (m *MPV) Load(source string) error {
	if _, err := m.command("loadfile", source, "replace"); err != nil {
		return err
	}
	_, err := m.command("set_property", "pause", false)
	return err
}

func (m *MPV) SetPaused(paused bool) error {
	_, err := m.command("set_property", "pause", paused)
	return err
}

func (m *MPV) Stop() error {
	_, err := m.command("stop")
	return err
}

func (m *MPV) SeekTo(seconds float64) error {
	_, err := m.command("seek", seconds, "absolute")
	return err
}

func (m *MPV) SetRate(rate float64) error {
	_, err := m.command("set_property", "speed", rate)
	return err
}

func (m *MPV) Poll() (position, duration float64, err error) {
	pos, err := m.floatProperty("time-pos")
	if err != nil {
		return 0, 0, err
	}
	// duration is unavailable while the stream is still probing
	dur, err := m.floatProperty("duration")
	if err != nil {
		dur = 0
	}
	return pos, dur, nil
}

func (m *MPV) floatProperty(name string) (float64, error) {
	data, err := m.command("get_property", name)
	if err != nil {
		return 0, err
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func (m *MPV) Close() error {
	_, _ = m.command("quit")
	_ = m.conn.Close()
	done := make(chan error, 1)
	go func() { done <- m.cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		_ = m.cmd.Process.Kill()
		<-done
	}
	os.Remove(m.sock)
	return nil
}
