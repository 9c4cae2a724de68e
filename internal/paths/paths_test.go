package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBaseDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	got := BaseDir()
	want := filepath.Join(home, ".zapdesk")
	if got != want {
		t.Errorf("BaseDir() = %q, want %q", got, want)
	}
}

func TestConfigPath(t *testing.T) {
	got := ConfigPath()
	if !strings.HasSuffix(got, filepath.Join(".zapdesk", "config.toml")) {
		t.Errorf("ConfigPath() = %q, want suffix .zapdesk/config.toml", got)
	}
}

func TestLogPath(t *testing.T) {
	got := LogPath()
	if !strings.HasSuffix(got, filepath.Join("logs", "zapdesk.log")) {
		t.Errorf("LogPath() = %q, want suffix logs/zapdesk.log", got)
	}
}
