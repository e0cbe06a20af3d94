package object

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/draw"
	"github.com/tomz197/lander/internal/physics"
)

// Ship colors.
var (
	shipColor   = draw.White
	flashColor  = draw.RGB(255, 64, 64)
	markerColor = draw.RGB(50, 50, 50)
)

// Ship is the player-controlled lander.
//
// Body holds the ship's state position: the world is drawn shifted by it, so
// the ship's world position is (-X, -Y). Y grows with altitude and
// R = π/2 points the thruster up.
type Ship struct {
	Body physics.Body

	Gravity float64
	Thrust  float64
	Torque  float64
	Radius  float64 // Distance of the hull points from the center

	Contact bool // Touched the ground on the last tick

	flash      *gween.Tween // Hull flash after contact, nil when idle
	flashLevel float32      // 0 = flash color, 1 = normal
}

// NewShip creates a ship at the configured start state.
func NewShip() *Ship {
	return &Ship{
		Body: physics.Body{
			X:  config.ShipStartX,
			Y:  config.ShipStartY,
			VX: config.ShipStartVX,
			R:  math.Pi / 2,
		},
		Gravity:    config.Gravity,
		Thrust:     config.Thrust,
		Torque:     config.Torque,
		Radius:     config.ShipRadius,
		flashLevel: 1,
	}
}

// Hull holds the three hull points as offsets from the ship's screen anchor.
type Hull struct {
	Tip, WingL, WingR Point
}

// Points returns the hull points in drawing order.
func (h Hull) Points() [3]Point {
	return [3]Point{h.Tip, h.WingL, h.WingR}
}

// Hull returns the hull points for the current rotation.
func (s *Ship) Hull() Hull {
	r := s.Body.R
	at := func(angle float64) Point {
		return Point{X: math.Cos(angle) * s.Radius, Y: math.Sin(angle) * s.Radius}
	}
	return Hull{
		Tip:   at(r + math.Pi),
		WingL: at(r + config.ShipWingSpread),
		WingR: at(r - config.ShipWingSpread),
	}
}

// Altitude returns the height of the ship's center above the terrain and
// whether the terrain covers the ship's position.
func (s *Ship) Altitude(t *Terrain) (float64, bool) {
	if t == nil {
		return 0, false
	}
	h, ok := t.HeightAt(-s.Body.X)
	if !ok {
		return 0, false
	}
	return h + s.Body.Y, true
}

// Touching reports whether any hull point is at or below the terrain.
// Hull points past either end of the terrain never touch.
func (s *Ship) Touching(t *Terrain) bool {
	if t == nil {
		return false
	}
	for _, p := range s.Hull().Points() {
		h, ok := t.HeightAt(p.X - s.Body.X)
		if !ok {
			continue
		}
		if h+s.Body.Y-p.Y < 0 {
			return true
		}
	}
	return false
}

// Thrusting reports whether the thrust control is held.
func (s *Ship) Thrusting(ctx UpdateContext) bool {
	return ctx.Keys != nil && ctx.Keys.HeldAny(ctx.Controls.Thrust...)
}

// Update applies input, gravity and ground contact for one tick.
func (s *Ship) Update(ctx UpdateContext) (bool, error) {
	b := &s.Body

	if ctx.Keys != nil {
		if ctx.Keys.HeldAny(ctx.Controls.Right...) {
			b.VR += s.Torque
		}
		if ctx.Keys.HeldAny(ctx.Controls.Left...) {
			b.VR -= s.Torque
		}
	}

	thrusting := s.Thrusting(ctx)
	if thrusting {
		b.Push(s.Thrust)
	}

	b.Accelerate(0, -s.Gravity)
	b.Step()

	s.Contact = s.Touching(ctx.Terrain)
	if s.Contact {
		b.Bounce(config.BounceDamping, config.BounceImpulse)
		s.flash = gween.New(0, 1, config.FlashSeconds, ease.OutQuad)
		s.flashLevel = 0
	}

	if s.flash != nil {
		level, done := s.flash.Update(float32(ctx.Delta.Seconds()))
		s.flashLevel = level
		if done {
			s.flash = nil
			s.flashLevel = 1
		}
	}

	if thrusting {
		s.spawnExhaust(ctx)
	}

	return false, nil
}

// spawnExhaust emits particles from the tail, opposite the tip.
func (s *Ship) spawnExhaust(ctx UpdateContext) {
	if ctx.Spawner == nil || ctx.Rand == nil {
		return
	}
	b := s.Body
	for i := 0; i < config.ParticlesPerTick; i++ {
		angle := b.R + (ctx.Rand.Float64()-0.5)*0.6
		speed := config.ParticleSpeed * (0.5 + ctx.Rand.Float64())
		lifetime := config.ParticleLifetime * (0.5 + ctx.Rand.Float64()*0.5)

		// Ship world position is (-X, -Y) and its world velocity (-VX, -VY).
		x := -b.X + math.Cos(b.R)*s.Radius
		y := -b.Y + math.Sin(b.R)*s.Radius
		vx := -b.VX + math.Cos(angle)*speed
		vy := -b.VY + math.Sin(angle)*speed

		ctx.Spawner.Spawn(NewParticle(x, y, vx, vy, lifetime))
	}
}

// HullColor returns the current hull color, fading from the flash color
// back to white after a contact.
func (s *Ship) HullColor() draw.Color {
	return flashColor.Lerp(shipColor, float64(s.flashLevel))
}

// Draw renders the center marker and the hull outline.
func (s *Ship) Draw(ctx DrawContext) error {
	surf := ctx.Surface
	w, h := float64(surf.Width()), float64(surf.Height())
	surf.FillRect(w/2, h/3, 1, 1, markerColor)

	a := ctx.View.Anchor()
	hull := s.Hull()
	c := s.HullColor()
	pt := func(p Point) (float64, float64) {
		return math.Round(p.X + a.X), math.Round(p.Y + a.Y)
	}

	tx, ty := pt(hull.Tip)
	lx, ly := pt(hull.WingL)
	rx, ry := pt(hull.WingR)
	surf.DrawLine(tx, ty, lx, ly, c, draw.LineThin)
	surf.DrawLine(tx, ty, rx, ry, c, draw.LineThin)
	surf.DrawLine(lx, ly, rx, ry, c, draw.LineThin)
	return nil
}
