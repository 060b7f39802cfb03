package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/measurebowl/measure-core/internal/arena"
	"github.com/measurebowl/measure-core/internal/diag"
)

// ErrDecode is returned when the input bytes cannot be decoded into an
// image. It aborts the call; there is nothing to detect on.
var ErrDecode = errors.New("image decode failed")

// Detector runs the native image stages of one invocation. It holds only
// configuration and is safe to share across invocations.
type Detector struct {
	cfg Config
}

// NewDetector returns a detector using cfg.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Preprocessed holds the buffers later stages read. Both Mats are owned by
// the invocation arena; callers must not close them.
type Preprocessed struct {
	Mask *gocv.Mat // binary union mask after the morphological open
	HSV  *gocv.Mat // blurred image in HSV, kept for centroid color sampling
}

// Decode decodes encoded image bytes into a BGR Mat owned by ar.
func (d *Detector) Decode(ar *arena.Arena, data []byte) (*gocv.Mat, error) {
	img, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	ar.Register(&img)
	if img.Empty() {
		return nil, fmt.Errorf("%w: empty result", ErrDecode)
	}
	return &img, nil
}

// Preprocess blurs, converts to HSV, builds the jack and boule masks,
// unions them and applies a morphological open with an elliptical kernel.
// The blur runs before the color-space conversion so texture noise is
// suppressed without shifting chroma.
func (d *Detector) Preprocess(ar *arena.Arena, src *gocv.Mat, dl *diag.Log) Preprocessed {
	k := oddKernel(d.cfg.BlurKernel)

	blurred := gocv.NewMat()
	ar.Register(&blurred)
	gocv.GaussianBlur(*src, &blurred, image.Pt(k, k), d.cfg.BlurSigma, d.cfg.BlurSigma, gocv.BorderDefault)

	hsv := gocv.NewMat()
	ar.Register(&hsv)
	gocv.CvtColor(blurred, &hsv, gocv.ColorBGRToHSV)

	// Jack: achromatic and bright.
	jack := gocv.NewMat()
	ar.Register(&jack)
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(0, 0, d.cfg.JackValMin, 0),
		gocv.NewScalar(179, d.cfg.JackSatMax, 255, 0),
		&jack)

	// Boules: saturated color below the brightness ceiling.
	boule := gocv.NewMat()
	ar.Register(&boule)
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(d.cfg.BouleHueMin, d.cfg.BouleSatMin, d.cfg.BouleValMin, 0),
		gocv.NewScalar(d.cfg.BouleHueMax, 255, d.cfg.BouleValMax, 0),
		&boule)

	union := gocv.NewMat()
	ar.Register(&union)
	gocv.BitwiseOr(jack, boule, &union)

	mk := oddKernel(d.cfg.MorphKernel)
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(mk, mk))
	ar.Register(&kernel)

	mask := gocv.NewMat()
	ar.Register(&mask)
	gocv.MorphologyEx(union, &mask, gocv.MorphOpen, kernel)

	dl.Addf("preprocess: jack mask %dpx, boule mask %dpx, open mask %dpx",
		gocv.CountNonZero(jack), gocv.CountNonZero(boule), gocv.CountNonZero(mask))

	return Preprocessed{Mask: &mask, HSV: &hsv}
}

// SampleHSV reads the HSV triple at (x, y) from the retained blurred HSV
// buffer, clamping the coordinates to the image bounds.
func (d *Detector) SampleHSV(pp Preprocessed, x, y int) (h, s, v float64) {
	m := pp.HSV
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if c := m.Cols(); x >= c {
		x = c - 1
	}
	if r := m.Rows(); y >= r {
		y = r - 1
	}
	vec := m.GetVecbAt(y, x)
	return float64(vec[0]), float64(vec[1]), float64(vec[2])
}

// oddKernel forces a usable odd kernel side.
func oddKernel(k int) int {
	if k < 1 {
		k = 1
	}
	if k%2 == 0 {
		k++
	}
	return k
}
