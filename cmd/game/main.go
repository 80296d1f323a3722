package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/cosmicdefender/internal/audio"
	"github.com/tomz197/cosmicdefender/internal/config"
	"github.com/tomz197/cosmicdefender/internal/game"
	"github.com/tomz197/cosmicdefender/internal/highscore"
	"github.com/tomz197/cosmicdefender/internal/loop"
)

const appName = "cosmicdefender"

// openStore opens the persistent high score store.
var openStore = func() (game.HighScoreStore, error) {
	return highscore.Open(appName)
}

func main() {
	os.Exit(run())
}

// run plays until the player quits and returns the process exit code.
func run() int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	logger, closeLog, err := newLogger(config.GetEnv("COSMIC_LOG_FILE", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	opts := loop.Options{Logger: logger, Hold: config.GetEnvDuration("COSMIC_KEY_HOLD", 0)}

	if path := config.GetEnv("COSMIC_TUNABLES", ""); path != "" {
		t, err := config.LoadTunables(path)
		if err != nil {
			logger.Error("failed to load tunables", "path", path, "err", err)
			return 1
		}
		opts.Game = append(opts.Game, game.WithTunables(t))

		w, err := config.WatchFile(path)
		if err != nil {
			logger.Warn("tunables will not be reloaded", "err", err)
		} else {
			defer w.Close()
			opts.Reload = w.Events
		}
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("high score will not be saved", "err", err)
	}
	opts.Game = append(opts.Game, game.WithHighScoreStore(store))

	if config.GetEnvBool("COSMIC_SOUND", false) {
		p := audio.NewPlayer(float64(config.GetEnvInt("COSMIC_VOLUME", 70)) / 100)
		if err := p.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer p.Close()
			opts.Audio = p
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Error("failed to enable raw mode", "err", err)
		return 1
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts); err != nil {
		logger.Error("game error", "err", err)
		return 1
	}
	return 0
}

// newLogger logs to path. Without a path only errors reach stderr, since the
// game owns the terminal.
func newLogger(path string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(config.GetEnv("COSMIC_LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	if path == "" {
		return log.NewWithOptions(os.Stderr, log.Options{Prefix: "game", Level: log.ErrorLevel}), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		Prefix:          "game",
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, func() { _ = f.Close() }, nil
}
