package draw

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize is returned when a surface is created or resized with a
// non-positive dimension.
var ErrInvalidSize = errors.New("draw: surface dimensions must be positive")

// ErrInvalidScale is returned by SetScale for factors that are neither
// positive nor AutoFit.
var ErrInvalidScale = errors.New("draw: scale must be positive or AutoFit")

// Scale is the display scale of a surface: how many display pixels one
// logical pixel covers. AutoFit asks the presenter to pick the largest
// scale that fits the viewport.
type Scale float64

// AutoFit is the scale sentinel recomputed by presenters every frame.
const AutoFit Scale = 0

// LineStyle selects the sampling density of DrawLine.
type LineStyle int

const (
	LineThin  LineStyle = iota // One sample per unit of length
	LineThick                  // One sample per 1/√2 units, fills diagonal gaps
)

// Surface is a fixed-size grid of opaque RGBA pixels.
// Writes outside the grid are dropped.
type Surface struct {
	width  int
	height int
	pixels []uint32 // Flat slice: [y * width + x]
	scale  Scale
}

// NewSurface creates a black surface of the given logical size with AutoFit scale.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new surface %dx%d: %w", width, height, ErrInvalidSize)
	}
	s := &Surface{
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
		scale:  AutoFit,
	}
	s.Clear(Black)
	return s, nil
}

// Width returns the logical width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the logical height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Resize reallocates the pixel grid. The overlapping top-left region keeps
// its colors; newly exposed pixels are opaque black.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize surface to %dx%d: %w", width, height, ErrInvalidSize)
	}
	if width == s.width && height == s.height {
		return nil
	}

	pixels := make([]uint32, width*height)
	black := Black.packed()
	for i := range pixels {
		pixels[i] = black
	}

	copyW := min(width, s.width)
	copyH := min(height, s.height)
	for y := 0; y < copyH; y++ {
		copy(pixels[y*width:y*width+copyW], s.pixels[y*s.width:y*s.width+copyW])
	}

	s.pixels = pixels
	s.width = width
	s.height = height
	return nil
}

// SetScale sets an explicit display scale, or AutoFit.
func (s *Surface) SetScale(scale Scale) error {
	f := float64(scale)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return fmt.Errorf("set scale %v: %w", f, ErrInvalidScale)
	}
	s.scale = scale
	return nil
}

// Scale returns the configured scale, which may be AutoFit.
func (s *Surface) Scale() Scale {
	return s.scale
}

// ResolveScale returns the effective scale for a viewport of the given size
// in display pixels. AutoFit yields floor(min(vh, vw) / max(w, h)); when the
// viewport is smaller than the surface the exact fractional ratio is used so
// the surface still fits.
func (s *Surface) ResolveScale(viewportW, viewportH int) float64 {
	if s.scale != AutoFit {
		return float64(s.scale)
	}
	return AutoFitScale(s.width, s.height, viewportW, viewportH)
}

// DisplaySize returns the resolved scale for a viewport and the surface size
// in display pixels at that scale, at least 1×1.
func (s *Surface) DisplaySize(viewportW, viewportH int) (w, h int, scale float64) {
	scale = s.ResolveScale(viewportW, viewportH)
	w = max(int(math.Floor(float64(s.width)*scale)), 1)
	h = max(int(math.Floor(float64(s.height)*scale)), 1)
	return w, h, scale
}

// AutoFitScale computes the auto-fit scale for a width×height surface shown
// in a viewportW×viewportH viewport.
func AutoFitScale(width, height, viewportW, viewportH int) float64 {
	if width <= 0 || height <= 0 || viewportW <= 0 || viewportH <= 0 {
		return 1
	}
	ratio := float64(min(viewportW, viewportH)) / float64(max(width, height))
	if ratio >= 1 {
		return math.Floor(ratio)
	}
	return ratio
}

// Clear fills every pixel with the given color.
func (s *Surface) Clear(c Color) {
	p := c.packed()
	for i := range s.pixels {
		s.pixels[i] = p
	}
}

// set writes a pixel at integer coordinates, dropping out-of-bounds writes.
func (s *Surface) set(x, y int, p uint32) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.pixels[y*s.width+x] = p
	}
}

// SetPixel sets the pixel containing (x, y). Fractional coordinates are floored.
func (s *Surface) SetPixel(x, y float64, c Color) {
	s.set(int(math.Floor(x)), int(math.Floor(y)), c.packed())
}

// FillRect fills the rectangle at (x, y) of size w×h. Coordinates and size
// are rounded to whole pixels; the part outside the surface is skipped.
func (s *Surface) FillRect(x, y, w, h float64, c Color) {
	x0 := int(math.Round(x))
	y0 := int(math.Round(y))
	x1 := x0 + int(math.Round(w))
	y1 := y0 + int(math.Round(h))

	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, s.width)
	y1 = min(y1, s.height)

	p := c.packed()
	for py := y0; py < y1; py++ {
		row := s.pixels[py*s.width : (py+1)*s.width]
		for px := x0; px < x1; px++ {
			row[px] = p
		}
	}
}

// DrawLine rasterizes the segment from (x1, y1) to (x2, y2) by stepping
// along it and rounding each sample to the nearest pixel.
//
// Stepping stops once a sample lands past the right or bottom edge. Samples
// left of or above the surface are only dropped by the per-pixel bound
// check, so a line that starts off the right/bottom edge draws nothing.
func (s *Surface) DrawLine(x1, y1, x2, y2 float64, c Color, style LineStyle) {
	p := c.packed()

	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		s.set(int(math.Round(x1)), int(math.Round(y1)), p)
		return
	}

	step := 1.0
	if style == LineThick {
		step = 1 / math.Sqrt2
	}
	dx := (x2 - x1) / length * step
	dy := (y2 - y1) / length * step

	x, y := x1, y1
	steps := int(math.Floor(length / step))
	for i := 0; i <= steps; i++ {
		px := int(math.Round(x))
		py := int(math.Round(y))
		if px >= s.width || py >= s.height {
			return
		}
		s.set(px, py, p)
		x += dx
		y += dy
	}
	// Land exactly on the end point; accumulated steps fall short of it.
	px := int(math.Round(x2))
	py := int(math.Round(y2))
	if px < s.width && py < s.height {
		s.set(px, py, p)
	}
}

// Pixel returns the color at (x, y) and whether the coordinate is in bounds.
func (s *Surface) Pixel(x, y int) (Color, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Color{}, false
	}
	return unpack(s.pixels[y*s.width+x]), true
}

// RGBA unpacks the surface into dst as R, G, B, A bytes per pixel, growing
// dst if needed, and returns it.
func (s *Surface) RGBA(dst []byte) []byte {
	n := len(s.pixels) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range s.pixels {
		j := i * 4
		dst[j] = byte(p)
		dst[j+1] = byte(p >> 8)
		dst[j+2] = byte(p >> 16)
		dst[j+3] = byte(p >> 24)
	}
	return dst
}
