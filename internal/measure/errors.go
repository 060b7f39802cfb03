package measure

import "errors"

var (
	// ErrNoReference is returned when no detected shape qualifies as the
	// jack and no manual position was supplied.
	ErrNoReference = errors.New("no reference object found")

	// ErrReferenceTooSmall is returned when the jack's pixel diameter is
	// too small to calibrate against without amplifying noise.
	ErrReferenceTooSmall = errors.New("reference object too small to calibrate")

	// ErrInvalidScale is returned when the calibrated scale falls outside
	// the configured bounds, which usually means the wrong object was
	// classified as the jack.
	ErrInvalidScale = errors.New("calibrated scale outside configured bounds")

	// ErrSingularHomography is returned when the supplied perspective
	// matrix is not invertible.
	ErrSingularHomography = errors.New("homography matrix is singular")
)
