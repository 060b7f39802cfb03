package vision

// Config holds the image-stage tunables for one invocation.
//
// The numeric defaults were tuned empirically against sample imagery of
// gravel and indoor courts; treat them as a starting configuration exposed
// for recalibration, not validated constants. Hue values use OpenCV's
// half-degree range [0, 180); saturation and value use [0, 255].
type Config struct {
	// Gaussian blur applied to the color image before HSV conversion,
	// suppressing texture noise without distorting chroma. The kernel is
	// forced odd.
	BlurKernel int
	BlurSigma  float64

	// Jack mask bounds: the reference object is achromatic and bright.
	JackSatMax float64
	JackValMin float64

	// Boule mask bounds: saturated color below a brightness ceiling, so
	// glare and the jack itself stay out.
	BouleHueMin float64
	BouleHueMax float64
	BouleSatMin float64
	BouleValMin float64
	BouleValMax float64

	// Side of the elliptical kernel for the morphological open that strips
	// isolated noise pixels from the union mask.
	MorphKernel int

	// Contour gates, applied in fixed order.
	MinContourPoints int // ellipse fitting is undefined below 6 points
	MinAreaPx2       float64
	MaxAreaPx2       float64
	MinCircularity   float64 // 4π·area/perimeter², 1.0 for a perfect circle
	MinSolidity      float64 // area / convex hull area
	AspectMin        float64 // ellipse height/width band
	AspectMax        float64

	// Fallback Hough pass, deliberately permissive: recall over precision.
	HoughDP        float64
	HoughMinDistPx float64
	HoughParam1    float64
	HoughParam2    float64
	HoughMinRadius int
	HoughMaxRadius int
}

// DefaultConfig returns the tuned starting configuration.
func DefaultConfig() Config {
	return Config{
		BlurKernel: 5,
		BlurSigma:  1.4,

		JackSatMax: 60,
		JackValMin: 200,

		BouleHueMin: 0,
		BouleHueMax: 179,
		BouleSatMin: 60,
		BouleValMin: 40,
		BouleValMax: 220,

		MorphKernel: 5,

		MinContourPoints: 6,
		MinAreaPx2:       200,
		MaxAreaPx2:       150000,
		MinCircularity:   0.70,
		MinSolidity:      0.90,
		AspectMin:        0.85,
		AspectMax:        1.15,

		HoughDP:        1.5,
		HoughMinDistPx: 40,
		HoughParam1:    100,
		HoughParam2:    25,
		HoughMinRadius: 8,
		HoughMaxRadius: 120,
	}
}
