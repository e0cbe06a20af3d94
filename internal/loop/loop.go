// Package loop provides the frame loop and world state of the lander game.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/draw"
	"github.com/tomz197/lander/internal/input"
	"github.com/tomz197/lander/internal/present"
)

// InputSource feeds pending events into a snapshot once per frame.
type InputSource interface {
	Poll(snap *input.Snapshot, now time.Time) (quit bool)
}

// StreamInput adapts a terminal byte stream to an InputSource.
type StreamInput struct {
	Stream *input.Stream
	Cells  input.CellMapper
}

// Poll drains the stream. A closed stream counts as a quit.
func (s StreamInput) Poll(snap *input.Snapshot, now time.Time) bool {
	frame := s.Stream.Apply(snap, now, s.Cells)
	return frame.Quit || frame.Closed
}

// Runner drives a World at a fixed tick rate and presents it once per frame.
type Runner struct {
	World     *World
	Surface   *draw.Surface
	Keys      *input.Snapshot
	Source    InputSource       // Optional
	Presenter present.Presenter // Optional; Render only draws when nil
	Clock     *Clock
	FrameTime time.Duration
	Logger    *log.Logger

	last time.Time
}

// NewRunner creates a runner with the configured tick and frame rates.
func NewRunner(world *World, surf *draw.Surface, src InputSource, pres present.Presenter) *Runner {
	return &Runner{
		World:     world,
		Surface:   surf,
		Keys:      input.NewSnapshot(),
		Source:    src,
		Presenter: pres,
		Clock:     NewClock(config.TickInterval, config.MaxTicksPerFrame),
		FrameTime: config.FrameTime,
		Logger:    log.Default(),
	}
}

// NewFromConfig builds a world and surface from settings and wraps them in a
// runner.
func NewFromConfig(settings config.Game, src InputSource, pres present.Presenter) (*Runner, error) {
	surf, err := draw.NewSurface(settings.Width, settings.Height)
	if err != nil {
		return nil, fmt.Errorf("new surface: %w", err)
	}
	if err := surf.SetScale(draw.Scale(settings.Scale)); err != nil {
		return nil, err
	}
	return NewRunner(NewWorld(settings.Seed), surf, src, pres), nil
}

// Step polls input and advances the world by every tick due at now.
// The first call only records the start time.
func (r *Runner) Step(now time.Time) (quit bool, err error) {
	if r.Source != nil && r.Source.Poll(r.Keys, now) {
		return true, nil
	}

	var elapsed time.Duration
	if !r.last.IsZero() {
		elapsed = now.Sub(r.last)
	}
	r.last = now

	ticks := r.Clock.Advance(elapsed)
	for range ticks {
		if err := r.World.Tick(r.Keys); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Render draws the world onto the surface and hands it to the presenter.
func (r *Runner) Render() error {
	if err := r.World.Draw(r.Surface); err != nil {
		return err
	}
	if r.Presenter == nil {
		return nil
	}
	return r.Presenter.Present(r.Surface)
}

// Frame runs one Input → Update → Draw cycle.
func (r *Runner) Frame(now time.Time) (quit bool, err error) {
	quit, err = r.Step(now)
	if quit || err != nil {
		return quit, err
	}
	return false, r.Render()
}

// Run loops until ctx is done, the input source quits or a frame fails.
func (r *Runner) Run(ctx context.Context) error {
	r.Logger.Debug("frame loop started", "width", r.Surface.Width(), "height", r.Surface.Height())
	defer func() {
		r.Logger.Debug("frame loop stopped", "ticks", r.World.Ticks, "elapsed", r.World.Elapsed())
	}()

	for {
		frameStart := time.Now()

		quit, err := r.Frame(frameStart)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		// Frame timing
		wait := r.FrameTime - time.Since(frameStart)
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}
