package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := NewSurface(w, h)
	if err != nil {
		t.Fatalf("NewSurface(%d, %d): %v", w, h, err)
	}
	return s
}

func mustPixel(t *testing.T, s *Surface, x, y int) Color {
	t.Helper()
	c, ok := s.Pixel(x, y)
	if !ok {
		t.Fatalf("Pixel(%d, %d) out of bounds", x, y)
	}
	return c
}

func countColored(s *Surface, c Color) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if got, _ := s.Pixel(x, y); got == c {
				n++
			}
		}
	}
	return n
}

func TestNewSurfaceIsBlack(t *testing.T) {
	s := newTestSurface(t, 4, 3)
	if got := countColored(s, Black); got != 12 {
		t.Errorf("black pixels = %d, want 12", got)
	}
	if s.Scale() != AutoFit {
		t.Errorf("Scale() = %v, want AutoFit", s.Scale())
	}
}

func TestNewSurfaceRejectsInvalidSize(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 1}, {1, 0}, {-3, 4}, {0, 0}} {
		if _, err := NewSurface(tc.w, tc.h); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewSurface(%d, %d) err = %v, want ErrInvalidSize", tc.w, tc.h, err)
		}
	}
}

func TestSetPixelRoundTrip(t *testing.T) {
	s := newTestSurface(t, 8, 6)
	c := RGB(10, 20, 30)
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			s.SetPixel(float64(x), float64(y), c)
			if got := mustPixel(t, s, x, y); got != c {
				t.Fatalf("Pixel(%d, %d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestSetPixelFloorsFractions(t *testing.T) {
	s := newTestSurface(t, 4, 4)
	s.SetPixel(1.9, 2.7, White)
	if got := mustPixel(t, s, 1, 2); got != White {
		t.Errorf("Pixel(1, 2) = %v, want white", got)
	}
	if got := countColored(s, White); got != 1 {
		t.Errorf("white pixels = %d, want 1", got)
	}
}

func TestOutOfBoundsWritesAreDropped(t *testing.T) {
	s := newTestSurface(t, 4, 4)
	s.SetPixel(-1, 0, White)
	s.SetPixel(0, -0.5, White)
	s.SetPixel(4, 0, White)
	s.SetPixel(0, 4, White)
	s.FillRect(-10, -10, 5, 5, White)
	s.FillRect(10, 10, 5, 5, White)
	s.DrawLine(10, 10, 20, 20, White, LineThick)
	if got := countColored(s, White); got != 0 {
		t.Errorf("white pixels = %d, want 0", got)
	}
	if _, ok := s.Pixel(4, 0); ok {
		t.Error("Pixel(4, 0) reported in bounds")
	}
}

func TestFillRectUnitEqualsSetPixel(t *testing.T) {
	a := newTestSurface(t, 5, 5)
	b := newTestSurface(t, 5, 5)
	c := RGB(1, 2, 3)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			a.FillRect(float64(x), float64(y), 1, 1, c)
			b.SetPixel(float64(x), float64(y), c)
			if !bytes.Equal(a.RGBA(nil), b.RGBA(nil)) {
				t.Fatalf("FillRect(%d, %d, 1, 1) differs from SetPixel", x, y)
			}
		}
	}
}

func TestFillRectClipsToSurface(t *testing.T) {
	s := newTestSurface(t, 4, 4)
	s.FillRect(2, 2, 10, 10, White)
	if got := countColored(s, White); got != 4 {
		t.Errorf("white pixels = %d, want 4", got)
	}
	if got := mustPixel(t, s, 1, 1); got != Black {
		t.Errorf("Pixel(1, 1) = %v, want black", got)
	}
}

func TestClear(t *testing.T) {
	s := newTestSurface(t, 7, 3)
	c := RGB(200, 100, 50)
	s.Clear(c)
	if got := countColored(s, c); got != 21 {
		t.Errorf("cleared pixels = %d, want 21", got)
	}
}

func TestDrawLineDegenerate(t *testing.T) {
	for _, style := range []LineStyle{LineThin, LineThick} {
		s := newTestSurface(t, 5, 5)
		s.DrawLine(2, 3, 2, 3, White, style)
		if got := mustPixel(t, s, 2, 3); got != White {
			t.Errorf("style %d: Pixel(2, 3) = %v, want white", style, got)
		}
		if got := countColored(s, White); got != 1 {
			t.Errorf("style %d: white pixels = %d, want 1", style, got)
		}
	}
}

func TestDrawLineHorizontal(t *testing.T) {
	s := newTestSurface(t, 10, 3)
	s.DrawLine(1, 1, 6, 1, White, LineThin)
	for x := 1; x <= 6; x++ {
		if got := mustPixel(t, s, x, 1); got != White {
			t.Errorf("Pixel(%d, 1) = %v, want white", x, got)
		}
	}
	if got := countColored(s, White); got != 6 {
		t.Errorf("white pixels = %d, want 6", got)
	}
}

func TestDrawLineDiagonalReachesEndpoints(t *testing.T) {
	for _, style := range []LineStyle{LineThin, LineThick} {
		s := newTestSurface(t, 10, 10)
		s.DrawLine(1, 1, 7, 7, White, style)
		for _, p := range [][2]int{{1, 1}, {4, 4}, {7, 7}} {
			if got := mustPixel(t, s, p[0], p[1]); got != White {
				t.Errorf("style %d: Pixel(%d, %d) = %v, want white", style, p[0], p[1], got)
			}
		}
	}
}

func TestDrawLineStopsAtRightEdge(t *testing.T) {
	s := newTestSurface(t, 5, 3)
	// Starts past the right edge: nothing is drawn.
	s.DrawLine(8, 1, 0, 1, White, LineThin)
	if got := countColored(s, White); got != 0 {
		t.Errorf("white pixels = %d, want 0", got)
	}
	// Starts left of the surface and walks in.
	s.DrawLine(-3, 1, 3, 1, White, LineThin)
	for x := 0; x <= 3; x++ {
		if got := mustPixel(t, s, x, 1); got != White {
			t.Errorf("Pixel(%d, 1) = %v, want white", x, got)
		}
	}
}

func TestDrawLineThickFillsCorners(t *testing.T) {
	tests := []struct {
		style LineStyle
		want  int
	}{
		{LineThin, 11},
		{LineThick, 14},
	}
	for _, tt := range tests {
		s := newTestSurface(t, 16, 16)
		s.DrawLine(0, 0, 10, 5, White, tt.style)
		if got := countColored(s, White); got != tt.want {
			t.Errorf("style %d: white pixels = %d, want %d", tt.style, got, tt.want)
		}
	}

	thin := newTestSurface(t, 16, 16)
	thin.DrawLine(0, 0, 10, 5, White, LineThin)
	thick := newTestSurface(t, 16, 16)
	thick.DrawLine(0, 0, 10, 5, White, LineThick)
	for _, p := range [][2]int{{1, 1}, {3, 2}, {7, 3}, {9, 5}} {
		if got := mustPixel(t, thin, p[0], p[1]); got != Black {
			t.Errorf("thin Pixel(%d, %d) = %v, want black", p[0], p[1], got)
		}
		if got := mustPixel(t, thick, p[0], p[1]); got != White {
			t.Errorf("thick Pixel(%d, %d) = %v, want white", p[0], p[1], got)
		}
	}
}

func TestDrawLineStopsAtBottomEdge(t *testing.T) {
	s := newTestSurface(t, 3, 5)
	// Starts below the bottom edge: nothing is drawn.
	s.DrawLine(1, 8, 1, 0, White, LineThin)
	if got := countColored(s, White); got != 0 {
		t.Errorf("white pixels = %d, want 0", got)
	}
	// Starts above the surface and walks down past the bottom.
	s.DrawLine(1, -3, 1, 9, White, LineThin)
	for y := 0; y < 5; y++ {
		if got := mustPixel(t, s, 1, y); got != White {
			t.Errorf("Pixel(1, %d) = %v, want white", y, got)
		}
	}
	if got := countColored(s, White); got != 5 {
		t.Errorf("white pixels = %d, want 5", got)
	}
}

func TestResizeShrinkPreservesOverlap(t *testing.T) {
	s := newTestSurface(t, 6, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			s.SetPixel(float64(x), float64(y), RGB(uint8(x), uint8(y), 7))
		}
	}
	if err := s.Resize(4, 3); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", s.Width(), s.Height())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := RGB(uint8(x), uint8(y), 7)
			if got := mustPixel(t, s, x, y); got != want {
				t.Errorf("Pixel(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestResizeGrowPadsBlack(t *testing.T) {
	s := newTestSurface(t, 2, 2)
	s.Clear(White)
	if err := s.Resize(3, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got := countColored(s, White); got != 4 {
		t.Errorf("white pixels = %d, want 4", got)
	}
	if got := countColored(s, Black); got != 8 {
		t.Errorf("black pixels = %d, want 8", got)
	}
	rgba := s.RGBA(nil)
	for i := 3; i < len(rgba); i += 4 {
		if rgba[i] != 0xff {
			t.Fatalf("alpha at byte %d = %d, want 255", i, rgba[i])
		}
	}
}

func TestResizeRejectsInvalidSize(t *testing.T) {
	s := newTestSurface(t, 2, 2)
	if err := s.Resize(0, 5); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 5) err = %v, want ErrInvalidSize", err)
	}
	if s.Width() != 2 || s.Height() != 2 {
		t.Errorf("size changed to %dx%d after rejected resize", s.Width(), s.Height())
	}
}

func TestSetScale(t *testing.T) {
	s := newTestSurface(t, 2, 2)
	if err := s.SetScale(3); err != nil {
		t.Fatalf("SetScale(3): %v", err)
	}
	if got := s.ResolveScale(1000, 1000); got != 3 {
		t.Errorf("ResolveScale = %v, want 3", got)
	}
	if err := s.SetScale(-1); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("SetScale(-1) err = %v, want ErrInvalidScale", err)
	}
	if err := s.SetScale(AutoFit); err != nil {
		t.Fatalf("SetScale(AutoFit): %v", err)
	}
}

func TestAutoFitScale(t *testing.T) {
	tests := []struct {
		name         string
		w, h, vw, vh int
		want         float64
	}{
		{"exact", 64, 64, 128, 128, 2},
		{"floored", 64, 32, 200, 150, 2},
		{"min viewport side", 100, 50, 1000, 300, 3},
		{"viewport smaller", 200, 100, 100, 50, 0.25},
		{"degenerate viewport", 10, 10, 0, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutoFitScale(tt.w, tt.h, tt.vw, tt.vh); got != tt.want {
				t.Errorf("AutoFitScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRGBALayout(t *testing.T) {
	s := newTestSurface(t, 1, 1)
	s.SetPixel(0, 0, RGB(1, 2, 3))
	got := s.RGBA(nil)
	want := []byte{1, 2, 3, 255}
	if !bytes.Equal(got, want) {
		t.Errorf("RGBA = %v, want %v", got, want)
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	s := newTestSurface(t, 40, 16)
	s.DrawText(0, 0, "HI", White)
	if countColored(s, White) == 0 {
		t.Error("DrawText left the surface untouched")
	}
	if w := TextWidth("HI"); w != 14 {
		t.Errorf("TextWidth(HI) = %d, want 14", w)
	}
}

func TestChunkWriterFlushesEverything(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.MoveCursor(1, 1)
	cw.SetColors(RGB(1, 2, 3), RGB(4, 5, 6))
	cw.WriteString(strings.Repeat("x", 5000))
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "\033[4;3H\033[38;2;1;2;3;48;2;4;5;6m") {
		t.Errorf("unexpected prefix %q", got[:40])
	}
	if cw.Len() != 0 {
		t.Errorf("Len after Flush = %d, want 0", cw.Len())
	}
}

func TestDisplaySizeFollowsViewport(t *testing.T) {
	s := newTestSurface(t, 64, 32)
	tests := []struct {
		vw, vh    int
		wantW     int
		wantH     int
		wantScale float64
	}{
		{300, 200, 192, 96, 3},
		{600, 400, 384, 192, 6},
		{16, 16, 16, 8, 0.25},
		{0, 0, 64, 32, 1},
	}
	for _, tt := range tests {
		w, h, scale := s.DisplaySize(tt.vw, tt.vh)
		if w != tt.wantW || h != tt.wantH || scale != tt.wantScale {
			t.Errorf("DisplaySize(%d, %d) = %d, %d, %v; want %d, %d, %v",
				tt.vw, tt.vh, w, h, scale, tt.wantW, tt.wantH, tt.wantScale)
		}
	}

	s.SetScale(2)
	if w, h, scale := s.DisplaySize(600, 400); w != 128 || h != 64 || scale != 2 {
		t.Errorf("explicit DisplaySize = %d, %d, %v; want 128, 64, 2", w, h, scale)
	}
}

func TestFillRectRoundsSizeSeparately(t *testing.T) {
	s := newTestSurface(t, 4, 2)
	s.FillRect(0.4, 0, 1.2, 1, White)
	if got := countColored(s, White); got != 1 {
		t.Errorf("white pixels = %d, want 1", got)
	}
	if got := mustPixel(t, s, 0, 0); got != White {
		t.Errorf("Pixel(0, 0) = %v, want white", got)
	}
}
