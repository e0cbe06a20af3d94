package object

import (
	"fmt"
	"math"

	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/draw"
)

var (
	compassColor  = draw.White
	headingColor  = draw.RGB(255, 128, 128)
	velocityColor = draw.RGB(255, 255, 128)
	alignedColor  = draw.RGB(128, 255, 128)
	hudColor      = draw.RGB(180, 180, 200)
)

// Compass shows the ship's heading and velocity direction in the top-left
// corner. Both needles turn green when they point the same way.
type Compass struct {
	Ship *Ship
	Size int
}

// NewCompass creates a compass following ship.
func NewCompass(ship *Ship) *Compass {
	return &Compass{Ship: ship, Size: config.CompassSize}
}

// Update is a no-op; the compass reads the ship when drawing.
func (c *Compass) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Needles returns the velocity and heading needle offsets from the center.
func (c *Compass) Needles() (velocity, heading [2]int) {
	b := c.Ship.Body
	reach := float64(c.Size) * 0.4
	velocity = [2]int{
		int(math.Round(math.Tanh(-b.VX) * reach)),
		int(math.Round(math.Tanh(-b.VY) * reach)),
	}
	heading = [2]int{
		int(math.Round(math.Cos(b.R) * reach)),
		int(math.Round(math.Sin(b.R) * reach)),
	}
	return velocity, heading
}

// Draw renders the octagon rim, the center dot and both needles.
func (c *Compass) Draw(ctx DrawContext) error {
	surf := ctx.Surface
	size := float64(c.Size)
	radius := size - 2

	var rim [8]Point
	for i := range rim {
		a := float64(i) / 8 * 2 * math.Pi
		rim[i] = Point{X: math.Cos(a)*radius + size, Y: math.Sin(a)*radius + size}
	}
	for i := range rim {
		j := (i + 1) % len(rim)
		surf.DrawLine(rim[i].X, rim[i].Y, rim[j].X, rim[j].Y, compassColor, draw.LineThin)
	}
	surf.FillRect(size, size, 1, 1, compassColor)

	velocity, heading := c.Needles()
	vc, hc := velocityColor, headingColor
	if velocity == heading {
		vc, hc = alignedColor, alignedColor
	}
	surf.FillRect(size+float64(velocity[0]), size+float64(velocity[1]), 1, 1, vc)
	surf.FillRect(size+float64(heading[0]), size+float64(heading[1]), 1, 1, hc)
	return nil
}

// HUD prints altitude and speed in the top-right corner.
type HUD struct {
	Ship    *Ship
	Terrain *Terrain
}

// Update is a no-op.
func (h *HUD) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Lines returns the HUD lines for the current state.
func (h *HUD) Lines() []string {
	alt := "----"
	if a, ok := h.Ship.Altitude(h.Terrain); ok {
		alt = fmt.Sprintf("%4.0f", a)
	}
	return []string{
		"ALT " + alt,
		fmt.Sprintf("SPD %4.2f", h.Ship.Body.Speed()),
	}
}

// Draw renders the HUD right-aligned, skipping it when the surface is too
// narrow to hold it beside the compass.
func (h *HUD) Draw(ctx DrawContext) error {
	lineHeight := draw.TextFace.Metrics().Height.Ceil()
	for i, line := range h.Lines() {
		x := ctx.Surface.Width() - draw.TextWidth(line) - 2
		if x < config.CompassSize*2+2 {
			return nil
		}
		ctx.Surface.DrawText(x, 2+i*lineHeight, line, hudColor)
	}
	return nil
}
