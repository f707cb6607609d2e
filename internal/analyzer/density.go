package analyzer

import (
	"fmt"
	"image"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DensityField is a height x width grid of crowd density values
type DensityField struct {
	data *mat.Dense
}

// NewDensityField creates a zeroed field. Both dimensions must be positive.
func NewDensityField(height, width int) (*DensityField, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("density field dimensions must be positive (got %dx%d)", width, height)
	}
	return &DensityField{data: mat.NewDense(height, width, nil)}, nil
}

// Dims returns the field's height and width
func (f *DensityField) Dims() (height, width int) {
	return f.data.Dims()
}

// At returns the value at row y, column x
func (f *DensityField) At(y, x int) float64 {
	return f.data.At(y, x)
}

// Set stores v at row y, column x
func (f *DensityField) Set(y, x int, v float64) {
	f.data.Set(y, x, v)
}

// Normalize min-max rescales the field to an 8-bit grayscale image:
// the minimum maps to 0, the maximum to 255 and intermediate values are
// truncated. A constant field maps to all zeros.
func (f *DensityField) Normalize() *image.Gray {
	raw := f.data.RawMatrix()
	gray := image.NewGray(image.Rect(0, 0, raw.Cols, raw.Rows))

	lo, hi := f.bounds()
	span := hi - lo
	if span == 0 {
		return gray
	}

	for y := 0; y < raw.Rows; y++ {
		row := raw.Data[y*raw.Stride : y*raw.Stride+raw.Cols]
		pix := gray.Pix[y*gray.Stride : y*gray.Stride+raw.Cols]
		for x, v := range row {
			scaled := (v - lo) / span * 255
			switch {
			case scaled <= 0:
				pix[x] = 0
			case scaled >= 255:
				pix[x] = 255
			default:
				pix[x] = uint8(scaled)
			}
		}
	}
	return gray
}

func (f *DensityField) bounds() (lo, hi float64) {
	raw := f.data.RawMatrix()
	for y := 0; y < raw.Rows; y++ {
		row := raw.Data[y*raw.Stride : y*raw.Stride+raw.Cols]
		rowMin, rowMax := floats.Min(row), floats.Max(row)
		if y == 0 || rowMin < lo {
			lo = rowMin
		}
		if y == 0 || rowMax > hi {
			hi = rowMax
		}
	}
	return lo, hi
}

// RandomDensityEstimator is a placeholder for a real crowd density model.
// It ignores pixel content and fills the field with independent uniform
// values in [0, 1). Replace it with a model-backed DensityEstimator to get
// meaningful heatmaps; validation and compositing do not depend on it.
type RandomDensityEstimator struct {
	sample func() float64
}

// NewRandomDensityEstimator creates the placeholder estimator
func NewRandomDensityEstimator() DensityEstimator {
	return &RandomDensityEstimator{sample: rand.Float64}
}

// Estimate returns a fresh random field matching img's dimensions
func (e *RandomDensityEstimator) Estimate(img image.Image) (*DensityField, error) {
	b := img.Bounds()
	field, err := NewDensityField(b.Dy(), b.Dx())
	if err != nil {
		return nil, err
	}

	raw := field.data.RawMatrix()
	for i := range raw.Data {
		raw.Data[i] = e.sample()
	}
	return field, nil
}
