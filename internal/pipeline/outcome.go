package pipeline

// Point is a pixel coordinate reported in the outcome.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Object is one measured, non-reference detection. Distances are
// edge-to-edge millimetres, never negative.
type Object struct {
	XPx        float64 `json:"x_px"`
	YPx        float64 `json:"y_px"`
	DistanceMm float64 `json:"distance_mm"`
	AreaPx2    float64 `json:"area_px2"`
	Team       string  `json:"team"`
}

// Outcome is the complete result of one measurement call.
//
// On failure Success is false, ErrorCode carries one of the Code*
// constants, and Objects is nil — there is never a partial object list.
// The diagnostic log is populated on every path.
type Outcome struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`

	ScaleMmPerPixel   float64  `json:"scale_mm_per_pixel"`
	ReferenceCenter   Point    `json:"reference_center"`
	ReferenceRadiusPx float64  `json:"reference_radius_px"`
	Objects           []Object `json:"objects"`

	UsingHighAccuracy bool   `json:"using_high_accuracy"`
	AccuracyMessage   string `json:"accuracy_message"`

	OriginalWidth  int `json:"original_width"`
	OriginalHeight int `json:"original_height"`

	DiagnosticLog []string `json:"diagnostic_log,omitempty"`
}
