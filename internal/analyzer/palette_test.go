package analyzer

import (
	"image"
	"image/color"
	"testing"
)

func TestJetPalette_Endpoints(t *testing.T) {
	p := JetPalette()

	if got := p[0]; got != (color.RGBA{0, 0, 128, 255}) {
		t.Errorf("Expected dark blue at 0, got %v", got)
	}
	if got := p[255]; got != (color.RGBA{128, 0, 0, 255}) {
		t.Errorf("Expected dark red at 255, got %v", got)
	}
}

func TestJetPalette_Progression(t *testing.T) {
	p := JetPalette()

	mid := p[128]
	if mid.G != 255 {
		t.Errorf("Expected full green at the midpoint, got %v", mid)
	}

	// Blue dominates the low end, red the high end
	low, high := p[40], p[215]
	if low.B <= low.R {
		t.Errorf("Expected blue to dominate at 40, got %v", low)
	}
	if high.R <= high.B {
		t.Errorf("Expected red to dominate at 215, got %v", high)
	}

	for i, c := range p {
		if c.A != 255 {
			t.Fatalf("Expected opaque palette entry at %d, got %v", i, c)
		}
	}
}

func TestPalette_Colorize(t *testing.T) {
	p := JetPalette()
	gray := image.NewGray(image.Rect(5, 5, 7, 6))
	gray.SetGray(5, 5, color.Gray{Y: 0})
	gray.SetGray(6, 5, color.Gray{Y: 255})

	out := p.Colorize(gray)

	if out.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("Expected zero-origin 2x1 output, got %v", out.Bounds())
	}
	if got := out.RGBAAt(0, 0); got != p[0] {
		t.Errorf("Expected %v, got %v", p[0], got)
	}
	if got := out.RGBAAt(1, 0); got != p[255] {
		t.Errorf("Expected %v, got %v", p[255], got)
	}
}
