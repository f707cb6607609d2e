package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"time"

	apperrors "go-crowd-monitor/internal/errors"
	"go-crowd-monitor/internal/logger"
	"go-crowd-monitor/internal/storage"
	"go-crowd-monitor/pkg/models"
	"go-crowd-monitor/pkg/validation"

	"github.com/sirupsen/logrus"
)

// crowdAnalyzer implements CrowdAnalyzer. It holds no mutable state, so
// one instance can serve concurrent callers on distinct locations.
type crowdAnalyzer struct {
	options    Options
	store      storage.ImageStore
	validator  *validation.ResolutionValidator
	estimator  DensityEstimator
	counter    CrowdCounter
	compositor Compositor
}

// NewCrowdAnalyzer creates an analyzer with the placeholder estimator and
// counter and the native compositor
func NewCrowdAnalyzer(store storage.ImageStore, options Options) CrowdAnalyzer {
	return NewCrowdAnalyzerWithComponents(store, options, nil, nil, nil)
}

// NewCrowdAnalyzerWithComponents creates an analyzer with custom components.
// Nil components fall back to the defaults used by NewCrowdAnalyzer.
func NewCrowdAnalyzerWithComponents(
	store storage.ImageStore,
	options Options,
	estimator DensityEstimator,
	counter CrowdCounter,
	compositor Compositor,
) CrowdAnalyzer {
	if estimator == nil {
		estimator = NewRandomDensityEstimator()
	}
	if counter == nil {
		counter = NewRandomCrowdCounter()
	}
	if compositor == nil {
		compositor = NewNativeCompositor(options.ImageWeight, options.OverlayWeight)
	}

	return &crowdAnalyzer{
		options:    options,
		store:      store,
		validator:  validation.NewResolutionValidatorWithLimits(options.MaxWidth, options.MaxHeight),
		estimator:  estimator,
		counter:    counter,
		compositor: compositor,
	}
}

// Analyze implements CrowdAnalyzer
func (a *crowdAnalyzer) Analyze(ctx context.Context, inputLocation, outputLocation string) (result AnalysisResult) {
	start := time.Now()
	log := logger.WithFields(logrus.Fields{
		"input":  inputLocation,
		"output": outputLocation,
	})

	defer func() {
		if r := recover(); r != nil {
			result = a.fail(log, apperrors.NewInternalError(fmt.Errorf("panic: %v", r)), start)
		}
	}()

	img, format, err := a.load(ctx, inputLocation)
	if err != nil {
		return a.fail(log, err, start)
	}

	bounds := img.Bounds()
	log = log.WithFields(logrus.Fields{
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
		"format": format,
	})

	if err := a.validator.ValidateDimensions(bounds.Dx(), bounds.Dy()); err != nil {
		return a.fail(log, err, start)
	}

	counts, err := a.render(ctx, img, outputLocation)
	if err != nil {
		return a.fail(log, apperrors.NewInternalError(err), start)
	}

	log.WithFields(logrus.Fields{
		"duration_ms":     time.Since(start).Milliseconds(),
		"crowd_estimates": counts,
	}).Info("Crowd analysis completed")

	return AnalysisResult{
		Status:         models.StatusSuccess,
		Message:        CompletedMessage,
		HeatmapPath:    outputLocation,
		CrowdEstimates: counts,
	}
}

// load opens and decodes the input. The header is read first so oversized
// rasters are rejected before any pixel memory is allocated. Empty rasters
// count as undecodable.
func (a *crowdAnalyzer) load(ctx context.Context, location string) (image.Image, string, error) {
	body, err := a.store.Open(ctx, location)
	if err != nil {
		return nil, "", apperrors.NewInvalidFormatError(InvalidFormatMessage, err)
	}
	defer body.Close()

	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(body, &header))
	if err != nil {
		return nil, "", apperrors.NewInvalidFormatError(InvalidFormatMessage, fmt.Errorf("decode header: %w", err))
	}
	if err := a.validator.ValidateDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, "", err
	}

	img, format, err := decodeImage(io.MultiReader(&header, body))
	if err != nil {
		return nil, "", apperrors.NewInvalidFormatError(InvalidFormatMessage, err)
	}
	if img.Bounds().Empty() {
		return nil, "", apperrors.NewInvalidFormatError(InvalidFormatMessage, fmt.Errorf("image has no pixels"))
	}
	return img, format, nil
}

// render builds the heatmap overlay, writes it and samples stage counts
func (a *crowdAnalyzer) render(ctx context.Context, img image.Image, outputLocation string) (map[string]int, error) {
	field, err := a.estimator.Estimate(img)
	if err != nil {
		return nil, fmt.Errorf("estimate density: %w", err)
	}

	h, w := field.Dims()
	if b := img.Bounds(); h != b.Dy() || w != b.Dx() {
		return nil, fmt.Errorf("density field %dx%d does not match image %dx%d", w, h, b.Dx(), b.Dy())
	}

	blended, err := a.compositor.Compose(img, field.Normalize())
	if err != nil {
		return nil, fmt.Errorf("compose heatmap: %w", err)
	}

	format := FormatForLocation(outputLocation)
	err = a.store.Write(ctx, outputLocation, func(out io.Writer) error {
		return encodeImage(out, blended, format)
	})
	if err != nil {
		return nil, err
	}

	counts, err := a.counter.Count(field)
	if err != nil {
		return nil, fmt.Errorf("count crowd: %w", err)
	}
	return counts, nil
}

func (a *crowdAnalyzer) fail(log *logrus.Entry, err error, start time.Time) AnalysisResult {
	appErr := apperrors.AsAppError(err)

	fields := logrus.Fields{
		"code":        appErr.StatusCode,
		"error_type":  appErr.Type,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if appErr.Details != "" {
		fields["details"] = appErr.Details
	}
	log.WithError(err).WithFields(fields).Error("Crowd analysis failed")

	return AnalysisResult{
		Status:  models.StatusError,
		Message: appErr.Message,
		Code:    appErr.StatusCode,
	}
}
