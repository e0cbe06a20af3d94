package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/lander/internal/config"
	"github.com/tomz197/lander/internal/draw"
	"github.com/tomz197/lander/internal/physics"
)

var terrainColor = draw.RGB(100, 100, 128)

// Terrain is a height field sampled at uniform x spacing. Heights grow
// downward on screen: a larger height is deeper ground.
type Terrain struct {
	X []float64
	H []float64
}

// GenerateTerrain creates n samples centered on x = 0, spaced spacing apart.
// Each height is a small random roughness plus, rarely, a deep spike.
func GenerateTerrain(rng *rand.Rand, n int, spacing float64) *Terrain {
	t := &Terrain{
		X: make([]float64, n),
		H: make([]float64, n),
	}
	half := n / 2
	for i := range n {
		t.X[i] = float64(i-half) * spacing
		h := rng.Float64() * config.TerrainRoughness
		if rng.Float64() < config.TerrainSpikeChance {
			h += rng.Float64() * config.TerrainSpikeHeight
		}
		t.H[i] = h
	}
	return t
}

// NewTerrain generates and smooths terrain with the configured parameters.
func NewTerrain(rng *rand.Rand) *Terrain {
	t := GenerateTerrain(rng, config.TerrainSamples, config.TerrainSpacing)
	t.Smooth(rng, config.TerrainSmoothing)
	return t
}

// Smooth replaces each interior height with the average of its neighbors
// plus up to one unit of noise, in place, passes times. The endpoints and
// the sample count never change.
func (t *Terrain) Smooth(rng *rand.Rand, passes int) {
	for range passes {
		for i := 1; i < len(t.H)-1; i++ {
			t.H[i] = (t.H[i+1]+t.H[i-1])/2 + rng.Float64()
		}
	}
}

// Len returns the number of samples.
func (t *Terrain) Len() int {
	return len(t.X)
}

// spacing assumes uniform sample spacing, as GenerateTerrain produces.
func (t *Terrain) spacing() float64 {
	if len(t.X) < 2 {
		return 0
	}
	return t.X[1] - t.X[0]
}

// HeightAt linearly interpolates the height at world x. It reports false
// when x lies outside the sampled range.
func (t *Terrain) HeightAt(x float64) (float64, bool) {
	step := t.spacing()
	if step <= 0 || math.IsNaN(x) {
		return 0, false
	}
	i := int(math.Floor((x - t.X[0]) / step))
	if i < 0 || i >= len(t.X)-1 {
		if x == t.X[len(t.X)-1] {
			return t.H[len(t.H)-1], true
		}
		return 0, false
	}
	frac := (x - t.X[i]) / (t.X[i+1] - t.X[i])
	return physics.Lerp(t.H[i], t.H[i+1], frac), true
}

// Update is a no-op; terrain is static.
func (t *Terrain) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw connects every visible sample to both of its neighbors.
func (t *Terrain) Draw(ctx DrawContext) error {
	step := t.spacing()
	if step <= 0 {
		return nil
	}
	v := ctx.View
	surf := ctx.Surface

	// Samples whose screen x falls in [0, width).
	first := int(math.Ceil((v.ScreenToWorldX(0) - t.X[0]) / step))
	last := int(math.Floor((v.ScreenToWorldX(float64(v.Width)) - t.X[0]) / step))
	first = max(first, 0)
	last = min(last, len(t.X)-1)

	screen := func(i int) (float64, float64) {
		p := v.WorldToScreen(t.X[i], t.H[i])
		return math.Floor(p.X), math.Floor(p.Y)
	}

	for i := first; i <= last; i++ {
		x, y := screen(i)
		if x < 0 || x >= float64(v.Width) {
			continue
		}
		if i > 0 {
			px, py := screen(i - 1)
			surf.DrawLine(x, y, px, py, terrainColor, draw.LineThin)
		}
		if i < len(t.X)-1 {
			nx, ny := screen(i + 1)
			surf.DrawLine(x, y, nx, ny, terrainColor, draw.LineThin)
		}
	}
	return nil
}
