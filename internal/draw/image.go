package draw

import (
	"image"
	"image/color"
	imagedraw "image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// surfaceImage exposes a Surface as an image/draw.Image.
// Set overwrites with an opaque color; alpha is dropped.
type surfaceImage struct {
	s *Surface
}

// Ensure surfaceImage satisfies image/draw.Image.
var _ imagedraw.Image = surfaceImage{}

// Image returns a draw.Image view of the surface. The view reads and writes
// the live pixel grid and stays valid across Resize.
func (s *Surface) Image() imagedraw.Image {
	return surfaceImage{s: s}
}

func (im surfaceImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (im surfaceImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.s.width, im.s.height)
}

func (im surfaceImage) At(x, y int) color.Color {
	c, ok := im.s.Pixel(x, y)
	if !ok {
		return color.RGBA{}
	}
	return c
}

func (im surfaceImage) Set(x, y int, c color.Color) {
	im.s.set(x, y, fromColor(c).packed())
}

// TextFace is the bitmap face used by DrawText.
var TextFace font.Face = basicfont.Face7x13

// DrawText draws s with its top-left corner at (x, y).
func (s *Surface) DrawText(x, y int, text string, c Color) {
	d := &font.Drawer{
		Dst:  s.Image(),
		Src:  image.NewUniform(c),
		Face: TextFace,
		Dot:  fixed.P(x, y+TextFace.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// TextWidth returns the advance width of text in pixels.
func TextWidth(text string) int {
	return font.MeasureString(TextFace, text).Ceil()
}
