package vision

import (
	"math"

	"gocv.io/x/gocv"

	"github.com/measurebowl/measure-core/internal/diag"
)

// ExtractShapes finds external contours in the preprocessed mask and keeps
// those that survive the geometric gates. A contour that fails any gate is
// skipped, never aborting the rest of the image.
func (d *Detector) ExtractShapes(pp Preprocessed, dl *diag.Log) []Shape {
	contours := gocv.FindContours(*pp.Mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	shapes := make([]Shape, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		if s, ok := d.evaluateContour(contours.At(i), i, dl); ok {
			shapes = append(shapes, s)
		}
	}
	dl.Addf("contours: %d candidates, %d accepted", contours.Size(), len(shapes))
	return shapes
}

// evaluateContour applies the gates in fixed order: point count, area,
// ellipse fit, circularity, solidity, aspect ratio. Each gate assumes the
// previous one passed; reordering would change both rejection semantics
// and the diagnostics. A panic out of the native fitting code rejects the
// contour, not the image.
func (d *Detector) evaluateContour(c gocv.PointVector, idx int, dl *diag.Log) (shape Shape, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			dl.Addf("contour %d: fit failed: %v", idx, r)
			shape, ok = Shape{}, false
		}
	}()

	if c.Size() < d.cfg.MinContourPoints {
		dl.Addf("contour %d: %d points, need %d", idx, c.Size(), d.cfg.MinContourPoints)
		return Shape{}, false
	}

	area := gocv.ContourArea(c)
	if area < d.cfg.MinAreaPx2 || area > d.cfg.MaxAreaPx2 {
		dl.Addf("contour %d: area %.0fpx² outside [%.0f, %.0f]", idx, area, d.cfg.MinAreaPx2, d.cfg.MaxAreaPx2)
		return Shape{}, false
	}

	ellipse := gocv.FitEllipse(c)

	perimeter := gocv.ArcLength(c, true)
	if perimeter <= 0 {
		dl.Addf("contour %d: zero perimeter", idx)
		return Shape{}, false
	}
	circularity := 4 * math.Pi * area / (perimeter * perimeter)
	if circularity < d.cfg.MinCircularity {
		dl.Addf("contour %d: circularity %.2f below %.2f", idx, circularity, d.cfg.MinCircularity)
		return Shape{}, false
	}

	if hullArea := convexHullArea(c); hullArea > 0 {
		solidity := area / hullArea
		if solidity < d.cfg.MinSolidity {
			dl.Addf("contour %d: solidity %.2f below %.2f", idx, solidity, d.cfg.MinSolidity)
			return Shape{}, false
		}
	}

	w, h := float64(ellipse.Width), float64(ellipse.Height)
	if w <= 0 || h <= 0 {
		dl.Addf("contour %d: degenerate ellipse %gx%g", idx, w, h)
		return Shape{}, false
	}
	aspect := h / w
	if aspect < d.cfg.AspectMin || aspect > d.cfg.AspectMax {
		dl.Addf("contour %d: aspect %.2f outside [%.2f, %.2f]", idx, aspect, d.cfg.AspectMin, d.cfg.AspectMax)
		return Shape{}, false
	}

	return Shape{
		CenterX:      float64(ellipse.Center.X),
		CenterY:      float64(ellipse.Center.Y),
		MajorAxis:    math.Max(w, h),
		MinorAxis:    math.Min(w, h),
		AngleDegrees: ellipse.Angle,
		AreaPx2:      area,
	}, true
}

// convexHullArea computes the area of the contour's convex hull with the
// shoelace formula over the hull vertices.
func convexHullArea(c gocv.PointVector) float64 {
	hull := gocv.NewMat()
	defer hull.Close()
	gocv.ConvexHull(c, &hull, true, true)

	n := hull.Rows()
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p := hull.GetVeciAt(i, 0)
		q := hull.GetVeciAt((i+1)%n, 0)
		sum += float64(p[0])*float64(q[1]) - float64(q[0])*float64(p[1])
	}
	return math.Abs(sum) / 2
}
