package analyzer

import (
	"context"
	"image"
)

// CrowdAnalyzer defines the main interface for crowd analysis
type CrowdAnalyzer interface {
	// Analyze decodes the image at inputLocation, renders a density heatmap
	// over it to outputLocation and reports per-stage crowd estimates.
	// Failures are reported in the returned result, never as a panic.
	Analyze(ctx context.Context, inputLocation, outputLocation string) AnalysisResult
}

// DensityEstimator produces a crowd density field with the image's shape
type DensityEstimator interface {
	Estimate(img image.Image) (*DensityField, error)
}

// CrowdCounter turns a density field into per-stage head counts
type CrowdCounter interface {
	Count(field *DensityField) (map[string]int, error)
}

// Compositor colorizes an 8-bit heat map and blends it over the base image
type Compositor interface {
	Compose(base image.Image, heat *image.Gray) (image.Image, error)
}
