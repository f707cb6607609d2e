package validation

import (
	apperrors "go-crowd-monitor/internal/errors"
)

// DefaultMaxDimension is the default ceiling for both image width and height.
const DefaultMaxDimension = 4000

// ResolutionMessage is reported when an image exceeds the ceiling.
const ResolutionMessage = "Image resolution too high. Please use HD or lower."

// ResolutionValidator rejects images whose width or height exceeds a fixed ceiling.
type ResolutionValidator struct {
	maxWidth  int
	maxHeight int
}

// NewResolutionValidator creates a validator with the default 4000x4000 ceiling
func NewResolutionValidator() *ResolutionValidator {
	return NewResolutionValidatorWithLimits(DefaultMaxDimension, DefaultMaxDimension)
}

// NewResolutionValidatorWithLimits creates a validator with a custom ceiling.
// Non-positive limits fall back to DefaultMaxDimension.
func NewResolutionValidatorWithLimits(maxWidth, maxHeight int) *ResolutionValidator {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxDimension
	}
	if maxHeight <= 0 {
		maxHeight = DefaultMaxDimension
	}
	return &ResolutionValidator{maxWidth: maxWidth, maxHeight: maxHeight}
}

// Limits returns the configured width and height ceiling
func (v *ResolutionValidator) Limits() (int, int) {
	return v.maxWidth, v.maxHeight
}

// ValidateDimensions returns a 413 AppError when either dimension is strictly
// greater than its ceiling. Images exactly at the ceiling are accepted.
func (v *ResolutionValidator) ValidateDimensions(width, height int) error {
	if width > v.maxWidth || height > v.maxHeight {
		return apperrors.NewResolutionTooLargeError(ResolutionMessage, width, height)
	}
	return nil
}
