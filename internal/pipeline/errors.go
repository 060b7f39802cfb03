package pipeline

import (
	"errors"

	"github.com/measurebowl/measure-core/internal/measure"
	"github.com/measurebowl/measure-core/internal/vision"
)

var (
	// ErrInvalidRequest is returned when the request fails boundary
	// validation, before any native allocation happens.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoObjectsDetected is returned when both the contour path and the
	// Hough fallback come back empty.
	ErrNoObjectsDetected = errors.New("no objects detected")

	// ErrInternal wraps a recovered panic from the native layers.
	ErrInternal = errors.New("internal processing error")
)

// Stable error codes reported in Outcome.ErrorCode.
const (
	CodeInvalidRequest    = "InvalidRequest"
	CodeDecodeFailure     = "DecodeFailure"
	CodeNoObjectsDetected = "NoObjectsDetected"
	CodeNoReferenceFound  = "NoReferenceFound"
	CodeReferenceTooSmall = "ReferenceTooSmall"
	CodeInvalidScale      = "InvalidScale"
	CodeInternal          = "InternalProcessingError"
)

// errorCode maps a pipeline error to its stable outcome code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, vision.ErrDecode):
		return CodeDecodeFailure
	case errors.Is(err, ErrNoObjectsDetected):
		return CodeNoObjectsDetected
	case errors.Is(err, measure.ErrNoReference):
		return CodeNoReferenceFound
	case errors.Is(err, measure.ErrReferenceTooSmall):
		return CodeReferenceTooSmall
	case errors.Is(err, measure.ErrInvalidScale):
		return CodeInvalidScale
	default:
		return CodeInternal
	}
}
