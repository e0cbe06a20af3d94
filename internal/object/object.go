// Package object holds the lander's world entities and the contexts they
// are updated and drawn with.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/draw"
	"github.com/tomz197/lander/internal/input"
	"github.com/tomz197/lander/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// KeyState is the read side of the input snapshot.
type KeyState interface {
	HeldAny(keys ...string) bool
}

// Controls binds ship actions to key identifiers.
type Controls struct {
	Thrust []string
	Left   []string
	Right  []string
}

// DefaultControls binds the arrow keys plus WASD.
var DefaultControls = Controls{
	Thrust: []string{input.KeyArrowUp, "w"},
	Left:   []string{input.KeyArrowLeft, "a"},
	Right:  []string{input.KeyArrowRight, "d"},
}

// UpdateContext provides all the information an object needs during a tick.
type UpdateContext struct {
	Delta    time.Duration // Tick length
	Keys     KeyState
	Controls Controls
	Terrain  *Terrain
	Spawner  Spawner
	Rand     *rand.Rand
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// View maps world coordinates to surface pixels. The ship is anchored at
// (W/2, H/3) plus a lead offset that grows with its velocity.
type View struct {
	Width, Height int
	CamX, CamY    float64 // Ship state position; the world scrolls by it
	LeadX, LeadY  float64
}

// Anchor returns the surface position of the ship's center.
func (v View) Anchor() Point {
	return Point{
		X: float64(v.Width)/2 + v.LeadX,
		Y: float64(v.Height)/3 + v.LeadY,
	}
}

// WorldToScreen converts world coordinates to surface pixels.
func (v View) WorldToScreen(wx, wy float64) Point {
	a := v.Anchor()
	return Point{X: wx + v.CamX + a.X, Y: wy + v.CamY + a.Y}
}

// ScreenToWorldX is the inverse of WorldToScreen on the x axis.
func (v View) ScreenToWorldX(sx float64) float64 {
	return sx - v.CamX - v.Anchor().X
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface *draw.Surface
	View    View
}

// Object is a drawable and updatable world entity.
type Object interface {
	// Update advances the object one tick. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Surface.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// NewView builds the view for a surface of the given size following ship.
func NewView(width, height int, ship *Ship) View {
	b := ship.Body
	return View{
		Width:  width,
		Height: height,
		CamX:   b.X,
		CamY:   b.Y,
		LeadX:  leadOffset(b.VX),
		LeadY:  leadOffset(b.VY),
	}
}

func leadOffset(v float64) float64 {
	return physics.SignedLog(v) * config.ViewOffsetGain
}
