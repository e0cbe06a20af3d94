package object

import (
	"math"
	"sync"

	"github.com/tomz197/lander/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Exhaust colors from fresh to spent.
var (
	exhaustHot  = draw.RGB(255, 200, 80)
	exhaustCold = draw.RGB(90, 30, 10)
)

// Particle is a short-lived exhaust pixel in world coordinates.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity, per tick
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity kept per tick (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.9
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the world.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	p.Lifetime -= ctx.Delta.Seconds()
	if p.Lifetime <= 0 {
		return true, nil
	}

	p.VX *= p.Drag
	p.VY *= p.Drag
	p.X += p.VX
	p.Y += p.VY
	return false, nil
}

// Color returns the particle color for its remaining lifetime.
func (p *Particle) Color() draw.Color {
	if p.MaxLifetime <= 0 {
		return exhaustCold
	}
	spent := 1 - p.Lifetime/p.MaxLifetime
	return exhaustHot.Lerp(exhaustCold, math.Max(0, spent))
}

// Draw renders the particle as a single pixel.
func (p *Particle) Draw(ctx DrawContext) error {
	pos := ctx.View.WorldToScreen(p.X, p.Y)
	ctx.Surface.SetPixel(pos.X, pos.Y, p.Color())
	return nil
}
