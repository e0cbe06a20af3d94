package draw

import "image/color"

// alpha is OR'd into every packed pixel; surfaces are always opaque.
const alpha = 0xff000000

// Color is an opaque 24-bit color.
type Color struct {
	R, G, B uint8
}

// RGB is shorthand for Color{R: r, G: g, B: b}.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Common colors.
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)

// packed returns the color as little-endian RGBA bytes in a uint32.
func (c Color) packed() uint32 {
	return alpha | uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16
}

func unpack(p uint32) Color {
	return Color{R: uint8(p), G: uint8(p >> 8), B: uint8(p >> 16)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Lerp blends from c toward to by t in [0, 1].
func (c Color) Lerp(to Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return Color{R: mix(c.R, to.R), G: mix(c.G, to.G), B: mix(c.B, to.B)}
}

// fromColor converts any color.Color to an opaque Color, dropping alpha.
func fromColor(c color.Color) Color {
	if dc, ok := c.(Color); ok {
		return dc
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
