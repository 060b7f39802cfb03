// Package measure turns detected shapes into measurements: it selects the
// jack among the candidates, calibrates a millimetre-per-pixel scale from
// its known diameter, computes edge-to-edge distances with either a planar
// or a perspective-corrected strategy, and assigns team colors.
//
// Everything here is plain arithmetic over values extracted by
// internal/vision; no native buffers are touched, so the package is fully
// unit-testable without an image.
package measure
