package pipeline

import (
	"image"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/measurebowl/measure-core/internal/measure"
)

// within asserts a relative tolerance.
func within(t *testing.T, name string, got, want, rel float64) {
	t.Helper()
	if want == 0 {
		t.Fatalf("%s: zero expectation", name)
	}
	if math.Abs(got-want)/math.Abs(want) > rel {
		t.Errorf("%s = %g, want %g within %.0f%%", name, got, want, rel*100)
	}
}

func TestMeasureRoundTrip(t *testing.T) {
	req := Request{
		ImageBytes: courtFixture(t),
		TeamA:      &measure.HSV{H: 0, S: 217, V: 200},
		TeamB:      &measure.HSV{H: 120, S: 204, V: 200},
	}

	out := Measure(req)
	if !out.Success {
		t.Fatalf("Measure() failed: %s (%s)\n%s", out.Error, out.ErrorCode, strings.Join(out.DiagnosticLog, "\n"))
	}
	if out.OriginalWidth != 480 || out.OriginalHeight != 360 {
		t.Errorf("dimensions %dx%d, want 480x360", out.OriginalWidth, out.OriginalHeight)
	}

	// The jack has pixel radius 40 and asserted diameter 63.5mm.
	within(t, "ScaleMmPerPixel", out.ScaleMmPerPixel, 63.5/80, 0.04)
	within(t, "ReferenceCenter.X", out.ReferenceCenter.X, 100, 0.03)
	within(t, "ReferenceCenter.Y", out.ReferenceCenter.Y, 200, 0.03)
	within(t, "ReferenceRadiusPx", out.ReferenceRadiusPx, 40, 0.05)

	if len(out.Objects) != 2 {
		t.Fatalf("detected %d objects, want 2:\n%s", len(out.Objects), strings.Join(out.DiagnosticLog, "\n"))
	}
	if !sort.SliceIsSorted(out.Objects, func(i, j int) bool { return out.Objects[i].DistanceMm < out.Objects[j].DistanceMm }) {
		t.Errorf("objects not sorted ascending by distance: %v", out.Objects)
	}

	// Red boule: centers 200px apart, edge-to-edge analytic distance.
	scale := 63.5 / 80.0
	red := out.Objects[0]
	within(t, "red distance", red.DistanceMm, (200-40-30)*scale, 0.04)
	if red.Team != "A" {
		t.Errorf("red boule team = %q, want A", red.Team)
	}

	// Blue boule: centers hypot(200, 120) apart.
	blue := out.Objects[1]
	within(t, "blue distance", blue.DistanceMm, (math.Hypot(200, 120)-40-30)*scale, 0.04)
	if blue.Team != "B" {
		t.Errorf("blue boule team = %q, want B", blue.Team)
	}

	if out.UsingHighAccuracy {
		t.Errorf("UsingHighAccuracy = true without a homography")
	}
}

func TestMeasureWithoutTeamColorsAllUnknown(t *testing.T) {
	out := Measure(Request{ImageBytes: courtFixture(t)})
	if !out.Success {
		t.Fatalf("Measure() failed: %s", out.Error)
	}
	for _, o := range out.Objects {
		if o.Team != "unknown" {
			t.Errorf("object at (%g, %g) team = %q, want unknown without calibrated colors", o.XPx, o.YPx, o.Team)
		}
	}
}

func TestMeasureManualReferenceEchoedVerbatim(t *testing.T) {
	// The white jack at (100, 200) is auto-detectable, but the manual
	// position on the red boule must win and be echoed back exactly.
	manual := image.Pt(300, 200)
	out := Measure(Request{ImageBytes: courtFixture(t), ManualReference: &manual})
	if !out.Success {
		t.Fatalf("Measure() failed: %s\n%s", out.Error, strings.Join(out.DiagnosticLog, "\n"))
	}
	if out.ReferenceCenter.X != 300 || out.ReferenceCenter.Y != 200 {
		t.Fatalf("ReferenceCenter = (%g, %g), want the manual (300, 200) exactly", out.ReferenceCenter.X, out.ReferenceCenter.Y)
	}
	// The snapped radius comes from the boule under the manual position.
	within(t, "ReferenceRadiusPx", out.ReferenceRadiusPx, 30, 0.08)
}

func TestMeasureHighAccuracyWithHomography(t *testing.T) {
	// Identity mapping: plane millimetres equal pixels, so distances come
	// out in pixel units with radii scaled by the calibrated scale.
	hom, err := measure.NewHomography([9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	if err != nil {
		t.Fatalf("NewHomography() error: %v", err)
	}

	out := Measure(Request{ImageBytes: courtFixture(t), Homography: hom})
	if !out.Success {
		t.Fatalf("Measure() failed: %s", out.Error)
	}
	if !out.UsingHighAccuracy {
		t.Errorf("UsingHighAccuracy = false with a valid homography")
	}
	if !strings.Contains(out.AccuracyMessage, "perspective") {
		t.Errorf("AccuracyMessage = %q, want mention of perspective correction", out.AccuracyMessage)
	}
}

func TestMeasureSurvivesNoise(t *testing.T) {
	out := Measure(Request{ImageBytes: noisyCourtFixture(t)})
	if !out.Success {
		t.Fatalf("Measure() on noisy fixture failed: %s\n%s", out.Error, strings.Join(out.DiagnosticLog, "\n"))
	}
	if len(out.Objects) < 1 {
		t.Errorf("detected %d objects on noisy fixture, want at least the red boule", len(out.Objects))
	}
}

func TestMeasureInvalidScaleFailsWithoutObjects(t *testing.T) {
	// 10 metres asserted for an 80px jack puts the scale far above bounds.
	out := Measure(Request{ImageBytes: courtFixture(t), ReferenceDiameterMm: 10000})
	if out.Success {
		t.Fatalf("Measure() succeeded with an implausible reference diameter")
	}
	if out.ErrorCode != CodeInvalidScale {
		t.Errorf("ErrorCode = %q, want %q", out.ErrorCode, CodeInvalidScale)
	}
	if out.Objects != nil {
		t.Errorf("failure outcome carries a partial object list: %v", out.Objects)
	}
}

func TestMeasureEmptySceneFallsBackThenFails(t *testing.T) {
	out := Measure(Request{ImageBytes: encodePNG(t, newCanvas(200, 200, courtGray))})
	if out.Success {
		t.Fatalf("Measure() succeeded on a featureless image")
	}
	if out.ErrorCode != CodeNoObjectsDetected {
		t.Errorf("ErrorCode = %q, want %q", out.ErrorCode, CodeNoObjectsDetected)
	}

	// The Hough fallback must have run exactly once.
	fallbacks := 0
	for _, line := range out.DiagnosticLog {
		if strings.HasPrefix(line, "fallback:") {
			fallbacks++
		}
	}
	if fallbacks != 1 {
		t.Errorf("fallback detector logged %d runs, want exactly 1", fallbacks)
	}
}

func TestMeasureDecodeFailure(t *testing.T) {
	out := Measure(Request{ImageBytes: []byte("definitely not an image")})

	want := Outcome{
		Success:   false,
		ErrorCode: CodeDecodeFailure,
	}
	ignore := cmpopts.IgnoreFields(Outcome{}, "Error", "DiagnosticLog")
	if diff := cmp.Diff(want, out, ignore); diff != "" {
		t.Errorf("decode-failure outcome mismatch (-want +got):\n%s", diff)
	}
}

func TestMeasureInvalidRequest(t *testing.T) {
	out := Measure(Request{})
	if out.Success || out.ErrorCode != CodeInvalidRequest {
		t.Errorf("empty request gave success=%v code=%q, want failure with %q", out.Success, out.ErrorCode, CodeInvalidRequest)
	}
}
