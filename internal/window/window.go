// Package window shows the lander in a desktop window using ebiten.
package window

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/input"
	"github.com/tomz197/lander/internal/loop"
)

// Game adapts a loop.Runner to ebiten.Game. The runner must not have a
// presenter; Draw uploads its surface instead.
type Game struct {
	ctx    context.Context
	runner *loop.Runner
	scale  float64 // Window pixels per surface pixel

	img   *ebiten.Image
	pix   []byte
	keys  []ebiten.Key
	names []string
	err   error // Draw failure, returned from the next Update
}

// NewGame wraps runner. scale converts surface pixels to window pixels.
func NewGame(ctx context.Context, runner *loop.Runner, scale float64) *Game {
	return &Game{ctx: ctx, runner: runner, scale: scale}
}

// Update feeds the pressed keys and cursor into the runner and advances it.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	g.names = g.names[:0]
	for _, k := range g.keys {
		g.names = append(g.names, input.KeyName(k.String()))
	}
	g.runner.Keys.Sync(g.names)

	// Auto-fit follows the window as it is resized.
	_, _, g.scale = g.runner.Surface.DisplaySize(ebiten.WindowSize())

	// Layout reports the surface size, so the cursor is in surface pixels.
	mx, my := ebiten.CursorPosition()
	g.runner.Keys.MoveTo(float64(mx)*g.scale, float64(my)*g.scale)

	quit, err := g.runner.Step(time.Now())
	if err != nil {
		return err
	}
	if quit {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the world and uploads the surface.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.runner.Render(); err != nil {
		g.err = err
		return
	}

	surf := g.runner.Surface
	w, h := surf.Width(), surf.Height()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
	}
	g.pix = surf.RGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

// Layout returns the surface size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.runner.Surface.Width(), g.runner.Surface.Height()
}

// Run opens a window sized for the runner's surface and blocks until it
// closes, ctx is done or the game fails.
func Run(ctx context.Context, runner *loop.Runner, title string) error {
	surf := runner.Surface
	w, h, scale := surf.DisplaySize(ebiten.Monitor().Size())

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)

	runner.Logger.Info("opening window", "width", surf.Width(), "height", surf.Height(), "scale", scale)
	return ebiten.RunGame(NewGame(ctx, runner, scale))
}
