package measure

import (
	"math"
	"sort"

	"github.com/measurebowl/measure-core/internal/diag"
	"github.com/measurebowl/measure-core/internal/vision"
)

// Result is one measured object: its pixel position, the edge-to-edge
// distance to the reference in millimetres, and its team assignment.
type Result struct {
	XPx          float64
	YPx          float64
	DistanceMm   float64
	AreaPx2      float64
	Team         Team
	HighAccuracy bool
}

// Engine computes edge-to-edge distances from each object to the
// reference. With a homography it transforms both centers into plane
// coordinates first; without one, or when a transform fails for an
// individual point, it falls back to the flat scale.
type Engine struct {
	cfg Config
	hom *Homography // nil means planar only
}

// NewEngine returns an engine. hom may be nil.
func NewEngine(cfg Config, hom *Homography) *Engine {
	return &Engine{cfg: cfg, hom: hom}
}

// Measure returns the filtered results sorted ascending by distance.
// Results below the minimum distance (duplicate detections of the
// reference), beyond the maximum, or from outsized detections are dropped
// as artifacts.
func (e *Engine) Measure(objects []vision.Shape, ref Reference, scale float64, dl *diag.Log) []Result {
	results := make([]Result, 0, len(objects))
	for _, obj := range objects {
		if obj.AreaPx2 > e.cfg.MaxObjectAreaPx2 {
			dl.Addf("distance: object at (%.0f, %.0f) area %.0fpx² above %.0f, dropped",
				obj.CenterX, obj.CenterY, obj.AreaPx2, e.cfg.MaxObjectAreaPx2)
			continue
		}
		distMm, high := e.distance(obj, ref, scale, dl)
		if distMm < e.cfg.MinDistanceMm || distMm > e.cfg.MaxDistanceMm {
			dl.Addf("distance: object at (%.0f, %.0f) %.2fmm outside [%.2f, %.2f], dropped",
				obj.CenterX, obj.CenterY, distMm, e.cfg.MinDistanceMm, e.cfg.MaxDistanceMm)
			continue
		}
		results = append(results, Result{
			XPx:          obj.CenterX,
			YPx:          obj.CenterY,
			DistanceMm:   distMm,
			AreaPx2:      obj.AreaPx2,
			Team:         TeamUnknown,
			HighAccuracy: high,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMm < results[j].DistanceMm
	})
	return results
}

// distance picks the strategy per object.
func (e *Engine) distance(obj vision.Shape, ref Reference, scale float64, dl *diag.Log) (float64, bool) {
	if e.hom != nil {
		d, err := e.perspectiveDistance(obj, ref, scale)
		if err == nil {
			return d, true
		}
		dl.Addf("distance: object at (%.0f, %.0f) perspective transform failed (%v), planar fallback",
			obj.CenterX, obj.CenterY, err)
	}
	return planarDistance(obj, ref, scale), false
}

// planarDistance is the flat-scale strategy: center distance minus both
// radii, in millimetres, clamped at touching.
func planarDistance(obj vision.Shape, ref Reference, scale float64) float64 {
	center := math.Hypot(obj.CenterX-ref.CenterX, obj.CenterY-ref.CenterY)
	edge := (center - obj.Radius() - ref.RadiusPx) * scale
	if edge < 0 {
		return 0
	}
	return edge
}

// perspectiveDistance transforms both centers into plane millimetres and
// subtracts the radii converted through the same scale.
func (e *Engine) perspectiveDistance(obj vision.Shape, ref Reference, scale float64) (float64, error) {
	ox, oy, err := e.hom.Apply(obj.CenterX, obj.CenterY)
	if err != nil {
		return 0, err
	}
	rx, ry, err := e.hom.Apply(ref.CenterX, ref.CenterY)
	if err != nil {
		return 0, err
	}
	edge := math.Hypot(ox-rx, oy-ry) - (obj.Radius()+ref.RadiusPx)*scale
	if edge < 0 {
		return 0, nil
	}
	return edge, nil
}
