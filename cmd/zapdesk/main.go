package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/matheus3301/zapdesk/internal/app"
	"github.com/matheus3301/zapdesk/internal/config"
	"github.com/matheus3301/zapdesk/internal/paths"
)

func main() {
	configFlag := flag.String("config", "", "config file path (default ~/.zapdesk/config.toml)")
	agentFlag := flag.String("agent", "", "agent name (overrides config)")
	flag.Parse()

	path := *configFlag
	if path == "" {
		path = paths.ConfigPath()
	}

	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
		if saveErr := config.Save(path, cfg); saveErr != nil {
			fmt.Fprintf(os.Stderr, "error: write default config: %v\n", saveErr)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "wrote default config to %s, set backend_url and agent first\n", path)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *agentFlag != "" {
		cfg.Agent = *agentFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fx.New(app.Module(cfg)).Run()
}
