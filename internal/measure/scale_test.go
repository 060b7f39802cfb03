package measure

import (
	"errors"
	"math"
	"testing"
)

func TestCalibrateScale(t *testing.T) {
	cfg := DefaultConfig()
	ref := Reference{RadiusPx: 40, DiameterMm: 63.5}

	scale, err := CalibrateScale(ref, cfg, nil)
	if err != nil {
		t.Fatalf("CalibrateScale() error: %v", err)
	}
	want := 63.5 / 80
	if math.Abs(scale-want) > 1e-12 {
		t.Errorf("scale = %g, want %g", scale, want)
	}
}

func TestCalibrateScaleDoublingDiameterDoublesScale(t *testing.T) {
	cfg := DefaultConfig()

	single, err := CalibrateScale(Reference{RadiusPx: 37, DiameterMm: 40}, cfg, nil)
	if err != nil {
		t.Fatalf("CalibrateScale() error: %v", err)
	}
	double, err := CalibrateScale(Reference{RadiusPx: 37, DiameterMm: 80}, cfg, nil)
	if err != nil {
		t.Fatalf("CalibrateScale() error: %v", err)
	}
	if math.Abs(double-2*single) > 1e-12 {
		t.Errorf("doubling the real diameter gave %g, want exactly 2×%g", double, single)
	}
}

func TestCalibrateScaleReferenceTooSmall(t *testing.T) {
	_, err := CalibrateScale(Reference{RadiusPx: 2, DiameterMm: 63.5}, DefaultConfig(), nil)
	if !errors.Is(err, ErrReferenceTooSmall) {
		t.Fatalf("error = %v, want ErrReferenceTooSmall", err)
	}
}

func TestCalibrateScaleOutOfBounds(t *testing.T) {
	cfg := DefaultConfig()

	// Scale above MaxScale: a tiny pixel radius for a large real diameter.
	if _, err := CalibrateScale(Reference{RadiusPx: 4, DiameterMm: 100}, cfg, nil); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("high scale error = %v, want ErrInvalidScale", err)
	}

	// Scale below MinScale: a huge pixel radius for a small real diameter.
	if _, err := CalibrateScale(Reference{RadiusPx: 500, DiameterMm: 10}, cfg, nil); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("low scale error = %v, want ErrInvalidScale", err)
	}
}
