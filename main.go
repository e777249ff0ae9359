package main

import (
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/core/base/errors"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	flag "github.com/spf13/pflag"

	"github.com/iburimskiy/particle-tree/internal/config"
	"github.com/iburimskiy/particle-tree/internal/game"
)

func main() {
	var (
		configPath = flag.StringP("config", "c", config.DefaultConfigFile, "TOML config file")
		seed       = flag.Int64("seed", 0, "particle seed, 0 for a random one")
		images     = flag.String("images", "", "image directory for the ring")
		music      = flag.String("music", "", "background music file (wav, mp3, flac)")
		logLevel   = flag.String("log-level", "", "debug, info, warn or error")
	)
	flag.Parse()

	if err := run(*configPath, *seed, *images, *music, *logLevel); err != nil {
		slog.Error("particle tree failed", "err", err)
		errors.Log(zenity.Error(err.Error(), zenity.Title("Particle Tree"), zenity.ErrorIcon))
		os.Exit(1)
	}
}

func run(configPath string, seed int64, images, music, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flag.CommandLine.Changed("seed") {
		cfg.Seed = seed
	}
	if images != "" {
		cfg.ImageDir = images
		cfg.Images = nil
	}
	if music != "" {
		cfg.Music = music
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	g, err := game.New(cfg, log)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	defer func() { errors.Log(g.Close()) }()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Particle Tree - drag to orbit, click an image, H: help, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
