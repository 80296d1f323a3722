package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/cosmicdefender/internal/audio"
	"github.com/tomz197/cosmicdefender/internal/config"
	"github.com/tomz197/cosmicdefender/internal/game"
	"github.com/tomz197/cosmicdefender/internal/highscore"
	"github.com/tomz197/cosmicdefender/internal/window"
)

const appName = "cosmicdefender"

func main() {
	os.Exit(run())
}

// run shows the window until it is closed and returns the process exit code.
func run() int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	level, err := log.ParseLevel(config.GetEnv("COSMIC_LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "window",
		Level:           level,
		ReportTimestamp: true,
	})

	store, err := highscore.Open(appName)
	if err != nil {
		logger.Warn("high score will not be saved", "err", err)
	}
	opts := window.Options{
		Logger: logger,
		Game:   []game.Option{game.WithHighScoreStore(store)},
		Scale:  float64(config.GetEnvInt("COSMIC_WINDOW_SCALE", 1)),
	}

	if path := config.GetEnv("COSMIC_TUNABLES", ""); path != "" {
		t, err := config.LoadTunables(path)
		if err != nil {
			logger.Error("failed to load tunables", "path", path, "err", err)
			return 1
		}
		opts.Game = append(opts.Game, game.WithTunables(t))
	}

	if config.GetEnvBool("COSMIC_SOUND", true) {
		p := audio.NewPlayer(float64(config.GetEnvInt("COSMIC_VOLUME", 70)) / 100)
		if err := p.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer p.Close()
			opts.Audio = p
		}
	}

	if err := window.Run(opts); err != nil {
		logger.Error("game error", "err", err)
		return 1
	}
	return 0
}
