package analyzer

import "go-crowd-monitor/pkg/validation"

// Options is the immutable configuration of a CrowdAnalyzer, fixed at construction
type Options struct {
	// Resolution ceiling; images strictly larger in either dimension are rejected
	MaxWidth  int
	MaxHeight int

	// Blend weights for the original image and the colorized overlay
	ImageWeight   float64
	OverlayWeight float64
}

// DefaultOptions returns a 4000x4000 ceiling and a 0.6/0.4 blend
func DefaultOptions() Options {
	return Options{
		MaxWidth:      validation.DefaultMaxDimension,
		MaxHeight:     validation.DefaultMaxDimension,
		ImageWeight:   0.6,
		OverlayWeight: 0.4,
	}
}

// WithMaxResolution returns options with a custom ceiling
func (opts Options) WithMaxResolution(width, height int) Options {
	opts.MaxWidth = width
	opts.MaxHeight = height
	return opts
}

// WithBlendWeights returns options with custom blend weights
func (opts Options) WithBlendWeights(image, overlay float64) Options {
	opts.ImageWeight = image
	opts.OverlayWeight = overlay
	return opts
}
