package analyzer

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.MaxWidth != 4000 || opts.MaxHeight != 4000 {
		t.Errorf("Expected 4000x4000 ceiling, got %dx%d", opts.MaxWidth, opts.MaxHeight)
	}
	if opts.ImageWeight != 0.6 {
		t.Errorf("Expected ImageWeight to be 0.6, got %f", opts.ImageWeight)
	}
	if opts.OverlayWeight != 0.4 {
		t.Errorf("Expected OverlayWeight to be 0.4, got %f", opts.OverlayWeight)
	}
}

func TestWithMaxResolution(t *testing.T) {
	base := DefaultOptions()
	opts := base.WithMaxResolution(1920, 1080)

	if opts.MaxWidth != 1920 || opts.MaxHeight != 1080 {
		t.Errorf("Expected 1920x1080 ceiling, got %dx%d", opts.MaxWidth, opts.MaxHeight)
	}
	if base.MaxWidth != 4000 {
		t.Error("Expected original options to be unchanged")
	}
}

func TestWithBlendWeights(t *testing.T) {
	opts := DefaultOptions().WithBlendWeights(0.5, 0.5)

	if opts.ImageWeight != 0.5 || opts.OverlayWeight != 0.5 {
		t.Errorf("Expected 0.5/0.5 weights, got %f/%f", opts.ImageWeight, opts.OverlayWeight)
	}
	if opts.MaxWidth != 4000 {
		t.Error("Expected ceiling to be preserved")
	}
}
