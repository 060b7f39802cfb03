package measure

import (
	"fmt"

	"github.com/measurebowl/measure-core/internal/diag"
)

// CalibrateScale converts the reference's pixel radius and asserted
// real-world diameter into a millimetre-per-pixel scale. The bounds check
// exists specifically to catch a misclassified reference: a boule or a
// noise blob mistaken for the jack produces a scale no plausible camera
// setup would.
func CalibrateScale(ref Reference, cfg Config, dl *diag.Log) (float64, error) {
	diameterPx := 2 * ref.RadiusPx
	if diameterPx < cfg.MinRefDiameterPx {
		return 0, fmt.Errorf("%w: %.1fpx diameter, need at least %.1f", ErrReferenceTooSmall, diameterPx, cfg.MinRefDiameterPx)
	}
	scale := ref.DiameterMm / diameterPx
	if scale < cfg.MinScale || scale > cfg.MaxScale {
		return 0, fmt.Errorf("%w: %.4f mm/px outside [%.2f, %.2f]", ErrInvalidScale, scale, cfg.MinScale, cfg.MaxScale)
	}
	dl.Addf("scale: %.4f mm/px from %.1fpx diameter and %.1fmm real diameter", scale, diameterPx, ref.DiameterMm)
	return scale, nil
}
