package vision

import "math"

// Shape is one detected object: a fitted ellipse plus the supporting
// contour's area. Fallback circles are represented with equal axes.
type Shape struct {
	CenterX      float64
	CenterY      float64
	MajorAxis    float64 // full length of the longer ellipse axis, pixels
	MinorAxis    float64 // full length of the shorter ellipse axis, pixels
	AngleDegrees float64
	AreaPx2      float64
}

// Radius is the mean of the two semi-axes.
func (s Shape) Radius() float64 {
	return (s.MajorAxis + s.MinorAxis) / 4
}

// AspectRatio is major over minor axis, 1.0 for a circle. A degenerate
// minor axis reports +Inf so the shape fails any upper-bound gate.
func (s Shape) AspectRatio() float64 {
	if s.MinorAxis <= 0 {
		return math.Inf(1)
	}
	return s.MajorAxis / s.MinorAxis
}
