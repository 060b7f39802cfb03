package measure

import (
	"image"
	"math"

	"github.com/measurebowl/measure-core/internal/diag"
	"github.com/measurebowl/measure-core/internal/vision"
)

// Reference is the calibration anchor: a pixel position and radius paired
// with the real-world diameter the caller asserts for it.
type Reference struct {
	CenterX    float64
	CenterY    float64
	RadiusPx   float64
	DiameterMm float64
}

// SelectReference picks the jack among the detected shapes. This is the
// only implementation of the heuristic; both the automatic path and tests
// go through it. Candidates are filtered to near-circular shapes inside
// the configured radius band, then the lowest aspect ratio wins, with
// near-ties resolved toward the smaller radius — the jack is physically
// smaller than any boule.
func SelectReference(shapes []vision.Shape, cfg Config, dl *diag.Log) (vision.Shape, error) {
	var best vision.Shape
	found := false
	for _, s := range shapes {
		aspect := s.AspectRatio()
		if aspect > cfg.MaxRefAspect {
			dl.Addf("reference: shape at (%.0f, %.0f) aspect %.2f above %.2f", s.CenterX, s.CenterY, aspect, cfg.MaxRefAspect)
			continue
		}
		r := s.Radius()
		if r < cfg.MinRefRadiusPx || r > cfg.MaxRefRadiusPx {
			dl.Addf("reference: shape at (%.0f, %.0f) radius %.1fpx outside [%.1f, %.1f]",
				s.CenterX, s.CenterY, r, cfg.MinRefRadiusPx, cfg.MaxRefRadiusPx)
			continue
		}
		if !found {
			best, found = s, true
			continue
		}
		switch {
		case aspect < best.AspectRatio()-cfg.AspectTieWindow:
			best = s
		case math.Abs(aspect-best.AspectRatio()) <= cfg.AspectTieWindow && r < best.Radius():
			best = s
		}
	}
	if !found {
		return vision.Shape{}, ErrNoReference
	}
	dl.Addf("reference: selected shape at (%.0f, %.0f), radius %.1fpx, aspect %.2f",
		best.CenterX, best.CenterY, best.Radius(), best.AspectRatio())
	return best, nil
}

// ResolveManual builds the reference at a caller-supplied position. The
// position always wins and is echoed back verbatim; the radius is adopted
// from the nearest detected shape within the snap distance, falling back
// to the provisional radius when nothing is close enough.
func ResolveManual(pos image.Point, shapes []vision.Shape, cfg Config, dl *diag.Log) vision.Shape {
	radius := cfg.ManualFallbackRadiusPx
	bestDist := cfg.ManualSnapRadiusPx
	snapped := false
	for _, s := range shapes {
		d := math.Hypot(s.CenterX-float64(pos.X), s.CenterY-float64(pos.Y))
		if d <= bestDist {
			bestDist = d
			radius = s.Radius()
			snapped = true
		}
	}
	if snapped {
		dl.Addf("reference: manual position (%d, %d) adopted radius %.1fpx from shape %.1fpx away", pos.X, pos.Y, radius, bestDist)
	} else {
		dl.Addf("reference: manual position (%d, %d) using provisional radius %.1fpx", pos.X, pos.Y, radius)
	}
	return vision.Shape{
		CenterX:   float64(pos.X),
		CenterY:   float64(pos.Y),
		MajorAxis: 2 * radius,
		MinorAxis: 2 * radius,
		AreaPx2:   math.Pi * radius * radius,
	}
}
