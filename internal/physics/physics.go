// Package physics provides fixed-step rigid body integration helpers.
package physics

import "math"

// Body is a rigid body in the plane, advanced one tick at a time.
// Velocities are in units per tick.
type Body struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	R      float64 // Rotation in radians
	VR     float64 // Angular velocity
}

// Accelerate adds (ax, ay) to the velocity.
func (b *Body) Accelerate(ax, ay float64) {
	b.VX += ax
	b.VY += ay
}

// Push accelerates by magnitude along the body's rotation.
func (b *Body) Push(magnitude float64) {
	b.Accelerate(math.Cos(b.R)*magnitude, math.Sin(b.R)*magnitude)
}

// Step integrates position and rotation by one tick (explicit Euler).
func (b *Body) Step() {
	b.X += b.VX
	b.Y += b.VY
	b.R += b.VR
}

// Bounce reflects the vertical velocity with damping and adds a fixed
// impulse: an inelastic ground contact.
func (b *Body) Bounce(damping, impulse float64) {
	b.VY = -b.VY*damping + impulse
}

// Speed returns the velocity magnitude.
func (b *Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SignedLog returns sign(v) * log(|v| + 1), a soft curve used for camera lead.
func SignedLog(v float64) float64 {
	l := math.Log(math.Abs(v) + 1)
	if v < 0 {
		return -l
	}
	return l
}
