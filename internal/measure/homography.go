package measure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Homography is a 3×3 projective map from image pixels to ground-plane
// millimetres, supplied by an external calibration step. Its absence
// degrades the engine to the planar strategy; it never hard-fails a call.
type Homography struct {
	m *mat.Dense
}

// NewHomography builds a homography from nine row-major coefficients.
func NewHomography(coeffs [9]float64) (*Homography, error) {
	d := mat.NewDense(3, 3, append([]float64(nil), coeffs[:]...))
	if math.Abs(mat.Det(d)) < 1e-12 {
		return nil, ErrSingularHomography
	}
	return &Homography{m: d}, nil
}

// Apply maps one pixel to plane coordinates. It fails when the projective
// term collapses for that point, which callers treat as "fall back to the
// planar strategy here" rather than an error of the batch.
func (h *Homography) Apply(x, y float64) (float64, float64, error) {
	var out mat.VecDense
	out.MulVec(h.m, mat.NewVecDense(3, []float64{x, y, 1}))
	w := out.AtVec(2)
	if math.Abs(w) < 1e-9 {
		return 0, 0, fmt.Errorf("degenerate projection at (%.1f, %.1f)", x, y)
	}
	return out.AtVec(0) / w, out.AtVec(1) / w, nil
}
