package main

import (
	"flag"
	"os"

	"github.com/soocke/pixel-reel/app"
	"github.com/soocke/pixel-reel/config"
)

func main() {
	cfgPath := flag.String("config", "config.json", "configuration file (.json, .toml, .yaml)")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime stats")
	flag.Parse()

	// Load falls back to defaults for a missing file or missing keys.
	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}

	logger := NewLogger(os.Stdout, cfg.Debug, *cfgPath)
	if err != nil {
		logger.Error("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	application := app.NewApp("Pixel Reel", 900, 720, config.NewStore(cfg), *cfgPath, logger)
	application.Start()
}
