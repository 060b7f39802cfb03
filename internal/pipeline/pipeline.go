package pipeline

import (
	"fmt"
	"math"

	"github.com/measurebowl/measure-core/internal/arena"
	"github.com/measurebowl/measure-core/internal/diag"
	"github.com/measurebowl/measure-core/internal/measure"
	"github.com/measurebowl/measure-core/internal/vision"
)

// Measure runs the full pipeline over one encoded photograph. It never
// panics and releases every native buffer before returning. The call is a
// single CPU-bound burst with no suspension points; callers wanting a
// timeout wrap the call externally.
func Measure(req Request) Outcome {
	req = req.withDefaults()
	dl := diag.New()

	if err := req.validate(); err != nil {
		return failure(err, dl, 0, 0)
	}

	out, err := runGuarded(req, dl)
	if err != nil {
		return failure(err, dl, out.OriginalWidth, out.OriginalHeight)
	}
	out.DiagnosticLog = dl.Entries()
	return out
}

// runGuarded wraps run with the arena release and the panic barrier. The
// recover runs before the arena defer, so buffers are released even when a
// native call blows up mid-stage.
func runGuarded(req Request, dl *diag.Log) (out Outcome, err error) {
	ar := arena.New()
	defer ar.ReleaseAll()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	return run(req, ar, dl)
}

func run(req Request, ar *arena.Arena, dl *diag.Log) (Outcome, error) {
	det := vision.NewDetector(req.Config.Vision)

	src, err := det.Decode(ar, req.ImageBytes)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{OriginalWidth: src.Cols(), OriginalHeight: src.Rows()}
	dl.Addf("decoded %dx%d image", out.OriginalWidth, out.OriginalHeight)

	pp := det.Preprocess(ar, src, dl)
	shapes := det.ExtractShapes(pp, dl)
	if len(shapes) == 0 {
		shapes = det.FallbackCircles(ar, src, dl)
	}
	if len(shapes) == 0 {
		return out, ErrNoObjectsDetected
	}

	var refShape vision.Shape
	if req.ManualReference != nil {
		refShape = measure.ResolveManual(*req.ManualReference, shapes, req.Config.Measure, dl)
	} else {
		refShape, err = measure.SelectReference(shapes, req.Config.Measure, dl)
		if err != nil {
			return out, err
		}
	}
	ref := measure.Reference{
		CenterX:    refShape.CenterX,
		CenterY:    refShape.CenterY,
		RadiusPx:   refShape.Radius(),
		DiameterMm: req.ReferenceDiameterMm,
	}

	scale, err := measure.CalibrateScale(ref, req.Config.Measure, dl)
	if err != nil {
		return out, err
	}

	objects := excludeReference(shapes, refShape)
	engine := measure.NewEngine(req.Config.Measure, req.Homography)
	results := engine.Measure(objects, ref, scale, dl)

	profile := measure.Profile{A: req.TeamA, B: req.TeamB}
	for i := range results {
		h, s, v := det.SampleHSV(pp, int(results[i].XPx), int(results[i].YPx))
		results[i].Team = measure.Classify(measure.HSV{H: h, S: s, V: v}, profile, req.Config.Measure)
	}

	highCount := 0
	for _, r := range results {
		if r.HighAccuracy {
			highCount++
		}
	}

	out.Success = true
	out.ScaleMmPerPixel = scale
	out.ReferenceCenter = Point{X: ref.CenterX, Y: ref.CenterY}
	out.ReferenceRadiusPx = ref.RadiusPx
	out.Objects = toObjects(results)
	out.UsingHighAccuracy = req.Homography != nil && highCount > 0
	out.AccuracyMessage = accuracyMessage(req.Homography != nil, highCount, len(results))
	return out, nil
}

// excludeReference drops the reference detection, and any duplicate
// detection sitting on top of it, from the measurable set.
func excludeReference(shapes []vision.Shape, ref vision.Shape) []vision.Shape {
	keepDist := math.Max(ref.Radius(), 1)
	objects := make([]vision.Shape, 0, len(shapes))
	for _, s := range shapes {
		d := math.Hypot(s.CenterX-ref.CenterX, s.CenterY-ref.CenterY)
		if d <= keepDist {
			continue
		}
		objects = append(objects, s)
	}
	return objects
}

func toObjects(results []measure.Result) []Object {
	objects := make([]Object, len(results))
	for i, r := range results {
		objects[i] = Object{
			XPx:        r.XPx,
			YPx:        r.YPx,
			DistanceMm: r.DistanceMm,
			AreaPx2:    r.AreaPx2,
			Team:       string(r.Team),
		}
	}
	return objects
}

func accuracyMessage(haveHomography bool, highCount, total int) string {
	switch {
	case !haveHomography:
		return "distance estimated from planar scale; supply a perspective calibration for high accuracy"
	case total == 0:
		return "perspective calibration active"
	case highCount == total:
		return "high accuracy: all distances perspective-corrected"
	case highCount == 0:
		return "perspective calibration supplied but unusable; all distances from planar scale"
	default:
		return fmt.Sprintf("mixed accuracy: %d of %d distances perspective-corrected", highCount, total)
	}
}

func failure(err error, dl *diag.Log, width, height int) Outcome {
	return Outcome{
		Success:        false,
		ErrorCode:      errorCode(err),
		Error:          err.Error(),
		OriginalWidth:  width,
		OriginalHeight: height,
		DiagnosticLog:  dl.Entries(),
	}
}
