package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"Cinematic3D/internal/audio"
	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/config"
	"Cinematic3D/internal/engine"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/viewer"
	"Cinematic3D/scripts"

	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "YAML config file; asset paths are relative to it")
	sceneFlag  = flag.String("scene", "", "scene to play, overrides the config")
	headless   = flag.Bool("headless", false, "tick without a window")
	duration   = flag.Float64("duration", 0, "seconds of scene time to play headless, 0 runs until interrupted")
	fpsFlag    = flag.Int("fps", 0, "headless frame rate, overrides the config")
	verbose    = flag.Bool("verbose", false, "log every frame")
	list       = flag.Bool("list", false, "list the available scenes and exit")
)

func main() {
	flag.Parse()
	logger.Init()
	defer logger.Sync()

	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Error("Player stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *verbose {
		logger.SetLevel("debug")
	} else {
		logger.SetLevel(cfg.LogLevel)
	}

	if names := scripts.RegisterSequences(cfg); len(names) > 0 {
		logger.Log.Info("Config sequences registered", zap.Strings("scenes", names))
	}
	if *list {
		for _, name := range behaviour.GetAvailableScripts() {
			fmt.Println(name)
		}
		return nil
	}

	assets := loader.NewLoader(cfg.Workers, cfg.OpaqueBounds())
	defer assets.Close()

	e := engine.New(cfg, assets, audio.NewLogPlayer(cfg.Sounds))
	if err := e.Load(cfg.Scene); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Headless {
		return e.Run(ctx, cfg.FPS, cfg.Duration)
	}
	window, err := viewer.Open(e, cfg.Window.Title+" - "+cfg.Scene)
	if err != nil {
		return err
	}
	defer window.Close()
	return window.Run(ctx)
}

// loadConfig reads -config when given and applies the flags that were set
// on the command line over it.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		loaded.Rebase(filepath.Dir(*configPath))
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneFlag
		case "headless":
			cfg.Headless = *headless
		case "duration":
			cfg.Duration = *duration
		case "fps":
			cfg.FPS = *fpsFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
