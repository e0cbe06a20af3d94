package config

import "time"

// Surface defaults. The terminal hosts use a smaller surface than the
// window host so the auto-fit scale stays readable in a terminal.
const (
	WindowWidth    = 512
	WindowHeight   = 512
	TerminalWidth  = 160
	TerminalHeight = 96
)

// Timing
const (
	TickInterval     = 30 * time.Millisecond // Fixed physics step
	TargetFPS        = 60
	FrameTime        = time.Second / TargetFPS
	MaxTicksPerFrame = 5 // Drop backlog beyond this instead of spiralling
)

// Terminal input
const (
	// KeyHoldDuration is how long a key counts as held after its last
	// press or auto-repeat; terminals never report key releases.
	KeyHoldDuration = 120 * time.Millisecond
)

// Terminal rendering
const (
	MaxTermWidth  = 240 // Columns; larger terminals get a centered render area
	MaxTermHeight = 80  // Rows
)

// Ship physics, per tick
const (
	Gravity        = 0.01
	Thrust         = 0.02
	Torque         = 0.005
	BounceDamping  = 0.7
	BounceImpulse  = 1.0
	ShipRadius     = 5.0
	ShipWingSpread = 0.5 // Radians either side of the tail
	ShipStartX     = 0.0
	ShipStartY     = 300.0
	ShipStartVX    = -5.0
	FlashSeconds   = 0.5 // Hull flash after a ground contact
)

// Terrain
const (
	TerrainSamples     = 8188
	TerrainSpacing     = 8.0
	TerrainRoughness   = 10.0
	TerrainSpikeChance = 0.05
	TerrainSpikeHeight = 500.0
	TerrainSmoothing   = 10
)

// HUD
const (
	CompassSize      = 20
	ViewOffsetGain   = 3.0 // Camera lead per log-unit of velocity
	ParticleLifetime = 0.4 // Seconds
	ParticlesPerTick = 2
	ParticleSpeed    = 1.5 // Pixels per tick
)
