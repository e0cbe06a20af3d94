// Package present shows finished surfaces on a display.
package present

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/draw"
)

// Presenter shows a surface. Present is called once per frame and pushes the
// whole buffer.
type Presenter interface {
	Present(surf *draw.Surface) error
}

// cell is one terminal character: two vertically stacked display pixels.
type cell struct {
	top, bottom draw.Color
}

// Terminal renders surfaces as ▀ half blocks with 24-bit colors. Only cells
// that changed since the previous frame are written.
type Terminal struct {
	cw       *draw.ChunkWriter
	termSize draw.TermSizeFunc
	Logger   *log.Logger

	// Layout of the previous frame
	prev         []cell
	cols, rows   int
	termW, termH int
	surfW, surfH int
	scale        float64
	offCol       int
	offRow       int
}

// NewTerminal creates a presenter writing to w. termSize may be nil, in which
// case the size of os.Stdout is used.
func NewTerminal(w io.Writer, termSize draw.TermSizeFunc) *Terminal {
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	return &Terminal{
		cw:       draw.NewChunkWriter(w, 0, 0),
		termSize: termSize,
		Logger:   log.Default(),
	}
}

// Offset returns the 0-based column and row where the render area starts.
func (t *Terminal) Offset() (col, row int) {
	return t.offCol, t.offRow
}

// Scale returns the scale used for the last frame.
func (t *Terminal) Scale() float64 {
	return t.scale
}

// CellToDisplay converts a 1-based cell from a mouse report into display
// pixels relative to the render area.
func (t *Terminal) CellToDisplay(col, row int) (float64, float64) {
	return float64(col - 1 - t.offCol), float64((row - 1 - t.offRow) * 2)
}

// layout recomputes the render area and reports whether it changed.
func (t *Terminal) layout(surf *draw.Surface, termW, termH int) bool {
	scale := surf.ResolveScale(termW, termH*2)
	renderW := min(int(math.Floor(float64(surf.Width())*scale)), termW, config.MaxTermWidth)
	renderH := min(int(math.Floor(float64(surf.Height())*scale)), termH*2, config.MaxTermHeight*2)
	cols := max(renderW, 0)
	rows := max((renderH+1)/2, 0)

	changed := termW != t.termW || termH != t.termH ||
		surf.Width() != t.surfW || surf.Height() != t.surfH ||
		scale != t.scale || t.prev == nil
	if !changed {
		return false
	}

	t.termW, t.termH = termW, termH
	t.surfW, t.surfH = surf.Width(), surf.Height()
	t.scale = scale
	t.cols, t.rows = cols, rows
	t.offCol = max((termW-cols)/2, 0)
	t.offRow = max((termH-rows)/2, 0)
	t.cw.SetOffset(t.offCol, t.offRow)
	t.prev = make([]cell, cols*rows)

	t.Logger.Debug("terminal layout changed",
		"term", fmt.Sprintf("%dx%d", termW, termH),
		"render", fmt.Sprintf("%dx%d", cols, rows),
		"scale", scale)
	return true
}

// sample returns the surface pixel shown at render pixel (px, py).
func (t *Terminal) sample(surf *draw.Surface, px, py int) draw.Color {
	c, _ := surf.Pixel(int(float64(px)/t.scale), int(float64(py)/t.scale))
	return c
}

// Present writes the surface to the terminal.
func (t *Terminal) Present(surf *draw.Surface) error {
	termW, termH, err := t.termSize()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	full := t.layout(surf, termW, termH)
	if full {
		draw.ClearScreen(t.cw)
	}

	var (
		lastFg, lastBg draw.Color
		styled         bool
		nextCol        = -1 // Column the cursor sits on after the last write
		nextRow        = -1
	)
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			c := cell{
				top:    t.sample(surf, col, row*2),
				bottom: t.sample(surf, col, row*2+1),
			}
			i := row*t.cols + col
			if !full && t.prev[i] == c {
				continue
			}
			t.prev[i] = c

			if col != nextCol || row != nextRow {
				t.cw.MoveCursor(col+1, row+1)
			}
			if !styled || c.top != lastFg || c.bottom != lastBg {
				t.cw.SetColors(c.top, c.bottom)
				lastFg, lastBg, styled = c.top, c.bottom, true
			}
			t.cw.WriteRune(draw.BlockUpperHalf)
			nextCol, nextRow = col+1, row
		}
	}
	if styled {
		t.cw.ResetStyle()
	}
	return t.cw.Flush()
}

// Close restores the terminal style and clears the screen.
func (t *Terminal) Close() error {
	draw.ClearScreen(t.cw)
	return t.cw.Flush()
}
