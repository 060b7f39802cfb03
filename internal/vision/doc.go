// Package vision implements the native image stages of the measurement
// pipeline: decoding, preprocessing into binary masks, contour-based shape
// extraction, the Hough-circle fallback, and centroid color sampling.
//
// All image work happens on OpenCV Mats via gocv. Every Mat that outlives
// the function creating it is registered with the invocation's arena;
// scratch buffers confined to one helper are released with a defer at
// their creation site. Coordinates are 0-based pixels with (0,0) at the
// top-left corner.
//
// The package is deliberately free of measurement semantics: it reports
// what was found and where, in pixels. Scale calibration, reference
// selection and distance math live in internal/measure.
package vision
