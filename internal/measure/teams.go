package measure

import "math"

// Team labels one object's color assignment.
type Team string

const (
	TeamA       Team = "A"
	TeamB       Team = "B"
	TeamUnknown Team = "unknown"
)

// HSV is a color in OpenCV ranges: H in [0, 180), S and V in [0, 255].
type HSV struct {
	H float64
	S float64
	V float64
}

// Profile holds the calibrated team colors. Classification requires both;
// with either absent every object is unknown.
type Profile struct {
	A *HSV
	B *HSV
}

// Complete reports whether both team colors are calibrated.
func (p Profile) Complete() bool {
	return p.A != nil && p.B != nil
}

// Classify assigns a team by wrap-around HSV distance: the nearer
// calibrated color wins if its distance is within the tolerance, otherwise
// the object stays unknown.
func Classify(sample HSV, p Profile, cfg Config) Team {
	if !p.Complete() {
		return TeamUnknown
	}
	da := colorDistance(sample, *p.A, cfg.HueRange)
	db := colorDistance(sample, *p.B, cfg.HueRange)
	if math.Min(da, db) > cfg.ColorTolerance {
		return TeamUnknown
	}
	if da <= db {
		return TeamA
	}
	return TeamB
}

// colorDistance is Euclidean over (h, s, v) with the hue term wrapped
// around its circular range.
func colorDistance(a, b HSV, hueRange float64) float64 {
	dh := math.Abs(a.H - b.H)
	if hueRange > 0 && hueRange-dh < dh {
		dh = hueRange - dh
	}
	ds := a.S - b.S
	dv := a.V - b.V
	return math.Sqrt(dh*dh + ds*ds + dv*dv)
}
