package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.zapdesk/config.toml.
type Config struct {
	// BackendURL is the base URL of the support backend REST API.
	BackendURL string `toml:"backend_url"`
	// WSURL is the base URL for WebSocket channels. Derived from
	// BackendURL when empty.
	WSURL string `toml:"ws_url"`
	// Agent is the agent name announced on the per-conversation channel
	// and used for assignment.
	Agent string `toml:"agent"`
	// MediaCache toggles the local media blob cache.
	MediaCache bool `toml:"media_cache"`
	// MPVPath overrides the mpv binary used for audio playback.
	MPVPath string `toml:"mpv_path"`
}

// Default returns a config with defaults filled in.
func Default() *Config {
	return &Config{
		BackendURL: "http://localhost:8000",
		MediaCache: true,
		MPVPath:    "mpv",
	}
}

// Load reads config from the given path. Returns nil and error if file missing.
func Load(path string) (*Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// Validate checks required fields and fills WSURL from BackendURL when unset.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend_url %q", c.BackendURL)
	}
	if c.Agent == "" {
		return fmt.Errorf("agent is required")
	}
	if c.WSURL == "" {
		ws := *u
		switch u.Scheme {
		case "https":
			ws.Scheme = "wss"
		default:
			ws.Scheme = "ws"
		}
		ws.Path = strings.TrimSuffix(ws.Path, "/")
		c.WSURL = ws.String()
	}
	return nil
}
