//go:build !gocv

package analyzer

import "errors"

// ErrGoCVUnavailable is returned when the binary was built without the gocv tag
var ErrGoCVUnavailable = errors.New("gocv build tag is not enabled")

// NewGoCVCompositor reports that OpenCV support was not compiled in
func NewGoCVCompositor(imageWeight, overlayWeight float64) (Compositor, error) {
	return nil, ErrGoCVUnavailable
}
