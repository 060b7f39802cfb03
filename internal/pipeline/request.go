package pipeline

import (
	"fmt"
	"image"

	"github.com/measurebowl/measure-core/internal/measure"
	"github.com/measurebowl/measure-core/internal/vision"
)

// DefaultReferenceDiameterMm is the assumed real-world jack diameter when
// the caller does not supply one.
const DefaultReferenceDiameterMm = 63.5

// Config carries every tunable for one invocation. It is passed by value
// and never mutated, so concurrent invocations can share one literal.
type Config struct {
	Vision  vision.Config
	Measure measure.Config
}

// DefaultConfig returns the tuned starting configuration for both stages.
func DefaultConfig() Config {
	return Config{
		Vision:  vision.DefaultConfig(),
		Measure: measure.DefaultConfig(),
	}
}

// Request is the complete, typed input contract for one measurement call.
// Calibration inputs (diameter, team colors, homography) are read-only for
// the duration of the call; persisting them across calls is the caller's
// concern.
type Request struct {
	// ImageBytes is one encoded photograph (PNG or JPEG).
	ImageBytes []byte

	// Config holds the detection and measurement tunables. A zero value
	// is replaced by DefaultConfig.
	Config Config

	// ReferenceDiameterMm is the asserted real-world jack diameter. Zero
	// means DefaultReferenceDiameterMm.
	ReferenceDiameterMm float64

	// ManualReference, when set, unconditionally overrides automatic jack
	// selection and is echoed back verbatim as the reference center.
	ManualReference *image.Point

	// TeamA and TeamB are the calibrated team colors. With either absent,
	// every object's team is unknown.
	TeamA *measure.HSV
	TeamB *measure.HSV

	// Homography, when set, enables the perspective-corrected distance
	// strategy. Nil degrades gracefully to the planar strategy.
	Homography *measure.Homography
}

// withDefaults fills the zero-value fields.
func (r Request) withDefaults() Request {
	if r.ReferenceDiameterMm == 0 {
		r.ReferenceDiameterMm = DefaultReferenceDiameterMm
	}
	if r.Config == (Config{}) {
		r.Config = DefaultConfig()
	}
	return r
}

// validate checks the request at the boundary, before any native buffer
// exists.
func (r Request) validate() error {
	if len(r.ImageBytes) == 0 {
		return fmt.Errorf("%w: empty image bytes", ErrInvalidRequest)
	}
	if r.ReferenceDiameterMm <= 0 {
		return fmt.Errorf("%w: reference diameter %.2fmm must be positive", ErrInvalidRequest, r.ReferenceDiameterMm)
	}
	v := r.Config.Vision
	if v.MinAreaPx2 > v.MaxAreaPx2 {
		return fmt.Errorf("%w: contour area bounds [%.0f, %.0f] inverted", ErrInvalidRequest, v.MinAreaPx2, v.MaxAreaPx2)
	}
	if v.AspectMin > v.AspectMax {
		return fmt.Errorf("%w: aspect band [%.2f, %.2f] inverted", ErrInvalidRequest, v.AspectMin, v.AspectMax)
	}
	m := r.Config.Measure
	if m.MinScale > m.MaxScale {
		return fmt.Errorf("%w: scale bounds [%.2f, %.2f] inverted", ErrInvalidRequest, m.MinScale, m.MaxScale)
	}
	if m.MinDistanceMm > m.MaxDistanceMm {
		return fmt.Errorf("%w: distance band [%.2f, %.2f] inverted", ErrInvalidRequest, m.MinDistanceMm, m.MaxDistanceMm)
	}
	return nil
}
