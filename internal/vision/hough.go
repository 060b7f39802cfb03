package vision

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/measurebowl/measure-core/internal/arena"
	"github.com/measurebowl/measure-core/internal/diag"
)

// FallbackCircles runs a permissive Hough circle pass over the blurred
// grayscale image. It exists purely as a resilience mechanism for when the
// contour path finds nothing: lower precision beats returning an empty
// result. Detected circles come back with equal axes.
func (d *Detector) FallbackCircles(ar *arena.Arena, src *gocv.Mat, dl *diag.Log) []Shape {
	gray := gocv.NewMat()
	ar.Register(&gray)
	gocv.CvtColor(*src, &gray, gocv.ColorBGRToGray)

	k := oddKernel(d.cfg.BlurKernel)
	blurred := gocv.NewMat()
	ar.Register(&blurred)
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), d.cfg.BlurSigma, d.cfg.BlurSigma, gocv.BorderDefault)

	circles := gocv.NewMat()
	ar.Register(&circles)
	gocv.HoughCirclesWithParams(blurred, &circles, gocv.HoughGradient,
		d.cfg.HoughDP, d.cfg.HoughMinDistPx,
		d.cfg.HoughParam1, d.cfg.HoughParam2,
		d.cfg.HoughMinRadius, d.cfg.HoughMaxRadius)

	shapes := make([]Shape, 0, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		v := circles.GetVecfAt(0, i)
		if len(v) < 3 {
			continue
		}
		x, y, r := float64(v[0]), float64(v[1]), float64(v[2])
		if r <= 0 {
			continue
		}
		shapes = append(shapes, Shape{
			CenterX:   x,
			CenterY:   y,
			MajorAxis: 2 * r,
			MinorAxis: 2 * r,
			AreaPx2:   math.Pi * r * r,
		})
	}
	dl.Addf("fallback: hough pass returned %d circles", len(shapes))
	return shapes
}
