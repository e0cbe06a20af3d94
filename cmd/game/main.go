package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/draw"
	"github.com/tomz197/lander/internal/input"
	"github.com/tomz197/lander/internal/loop"
	"github.com/tomz197/lander/internal/present"
	"golang.org/x/term"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "lander"})

	settings, err := config.LoadGame(config.TerminalWidth, config.TerminalHeight)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, settings, logger)
	stop()

	_ = term.Restore(fd, oldState)
	if err != nil {
		logger.Fatal("game error", "err", err)
	}
}

func run(ctx context.Context, settings config.Game, logger *log.Logger) error {
	out := os.Stdout
	draw.HideCursor(out)
	draw.EnableMouse(out)
	defer draw.ShowCursor(out)
	defer draw.DisableMouse(out)

	screen := present.NewTerminal(out, nil)
	screen.Logger = logger
	defer screen.Close()

	src := loop.StreamInput{
		Stream: input.StartStream(bufio.NewReader(os.Stdin), config.KeyHoldDuration),
		Cells:  screen,
	}
	runner, err := loop.NewFromConfig(settings, src, screen)
	if err != nil {
		return err
	}
	runner.Logger = logger
	return runner.Run(ctx)
}
