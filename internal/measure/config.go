package measure

// Config holds the measurement-stage tunables for one invocation. Like the
// vision thresholds, the defaults are an empirically tuned starting point
// exposed for recalibration.
type Config struct {
	// Jack selection.
	MaxRefAspect           float64 // candidates above this aspect ratio are never the jack
	MinRefRadiusPx         float64
	MaxRefRadiusPx         float64
	AspectTieWindow        float64 // aspect ratios this close count as a tie; smaller radius wins
	ManualSnapRadiusPx     float64 // a manual position adopts the radius of a shape within this distance
	ManualFallbackRadiusPx float64 // provisional radius when nothing is near the manual position

	// Scale calibration.
	MinRefDiameterPx float64 // below this, division amplifies noise too much
	MinScale         float64 // mm per pixel
	MaxScale         float64

	// Distance post-filter. Results outside the band, or from outsized
	// detections, are treated as detection artifacts.
	MinDistanceMm    float64
	MaxDistanceMm    float64
	MaxObjectAreaPx2 float64

	// Team classification.
	ColorTolerance float64 // max HSV distance to the nearer calibrated color
	HueRange       float64 // circular hue range; 180 for OpenCV half-degrees
}

// DefaultConfig returns the tuned starting configuration.
func DefaultConfig() Config {
	return Config{
		MaxRefAspect:           1.8,
		MinRefRadiusPx:         5,
		MaxRefRadiusPx:         60,
		AspectTieWindow:        0.1,
		ManualSnapRadiusPx:     50,
		ManualFallbackRadiusPx: 15,

		MinRefDiameterPx: 5,
		MinScale:         0.05,
		MaxScale:         5.0,

		MinDistanceMm:    0.1,
		MaxDistanceMm:    5000,
		MaxObjectAreaPx2: 100000,

		ColorTolerance: 50,
		HueRange:       180,
	}
}
