//go:build gocv

package analyzer

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// goCVCompositor implements Compositor with OpenCV's jet color map and
// weighted addition
type goCVCompositor struct {
	imageWeight   float64
	overlayWeight float64
}

// NewGoCVCompositor creates an OpenCV-backed compositor
func NewGoCVCompositor(imageWeight, overlayWeight float64) (Compositor, error) {
	return &goCVCompositor{imageWeight: imageWeight, overlayWeight: overlayWeight}, nil
}

// Compose colorizes heat and blends it over base
func (c *goCVCompositor) Compose(base image.Image, heat *image.Gray) (image.Image, error) {
	b := base.Bounds()
	if heat.Bounds().Dx() != b.Dx() || heat.Bounds().Dy() != b.Dy() {
		return nil, fmt.Errorf("heat map %dx%d does not match image %dx%d",
			heat.Bounds().Dx(), heat.Bounds().Dy(), b.Dx(), b.Dy())
	}

	baseMat, err := gocv.ImageToMatRGB(toOpaque(base))
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer baseMat.Close()

	heatMat, err := gocv.ImageGrayToMatGray(heat)
	if err != nil {
		return nil, fmt.Errorf("convert heat map: %w", err)
	}
	defer heatMat.Close()

	colored := gocv.NewMat()
	defer colored.Close()
	gocv.ApplyColorMap(heatMat, &colored, gocv.ColormapJet)

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(baseMat, c.imageWeight, colored, c.overlayWeight, 0, &blended)

	out, err := blended.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert result: %w", err)
	}
	return out, nil
}
