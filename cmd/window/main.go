package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/loop"
	"github.com/tomz197/lander/internal/window"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "lander"})

	settings, err := config.LoadGame(config.WindowWidth, config.WindowHeight)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	runner, err := loop.NewFromConfig(settings, nil, nil)
	if err != nil {
		logger.Fatal("failed to create game", "err", err)
	}
	runner.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := window.Run(ctx, runner, "Lander"); err != nil {
		logger.Fatal("window error", "err", err)
	}
}
