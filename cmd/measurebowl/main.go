// Command measurebowl measures boule-to-jack distances on a single
// photograph and prints the result as JSON.
//
// The image is handed to the pipeline as encoded bytes; an optional
// max-side downscale keeps huge camera frames tractable. All logging goes
// to stderr so stdout stays machine-readable.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/measurebowl/measure-core/internal/measure"
	"github.com/measurebowl/measure-core/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		imagePath   = flag.String("image", "", "path to the photograph to measure (required)")
		diameter    = flag.Float64("diameter", pipeline.DefaultReferenceDiameterMm, "real jack diameter in millimetres")
		refPos      = flag.String("ref", "", "manual jack position as x,y pixels (overrides detection)")
		teamA       = flag.String("team-a", "", "calibrated team A color as #RRGGBB")
		teamB       = flag.String("team-b", "", "calibrated team B color as #RRGGBB")
		homography  = flag.String("homography", "", "nine comma-separated row-major coefficients mapping pixels to plane millimetres")
		maxSide     = flag.Int("max-side", 0, "downscale so the longest side is at most this many pixels (0 = off)")
		verbose     = flag.Bool("verbose", false, "print the diagnostic log to stderr and include it in the JSON")
		showVersion = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if *showVersion {
		fmt.Printf("measurebowl %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}
	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := loadImage(*imagePath, *maxSide)
	if err != nil {
		log.Fatalf("load image: %v", err)
	}

	req := pipeline.Request{
		ImageBytes:          data,
		Config:              pipeline.DefaultConfig(),
		ReferenceDiameterMm: *diameter,
	}
	if *refPos != "" {
		pt, err := parsePoint(*refPos)
		if err != nil {
			log.Fatalf("parse -ref: %v", err)
		}
		req.ManualReference = &pt
	}
	if *teamA != "" {
		if req.TeamA, err = parseTeamColor(*teamA); err != nil {
			log.Fatalf("parse -team-a: %v", err)
		}
	}
	if *teamB != "" {
		if req.TeamB, err = parseTeamColor(*teamB); err != nil {
			log.Fatalf("parse -team-b: %v", err)
		}
	}
	if *homography != "" {
		if req.Homography, err = parseHomography(*homography); err != nil {
			log.Fatalf("parse -homography: %v", err)
		}
	}

	out := pipeline.Measure(req)
	if *verbose {
		for _, line := range out.DiagnosticLog {
			log.Print(line)
		}
	} else {
		out.DiagnosticLog = nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode outcome: %v", err)
	}
	if !out.Success {
		os.Exit(1)
	}
}

// loadImage reads the image bytes, optionally re-encoding through a
// max-side downscale first.
func loadImage(path string, maxSide int) ([]byte, error) {
	if maxSide <= 0 {
		return os.ReadFile(path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() > maxSide || b.Dy() > maxSide {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parsePoint(s string) (image.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return image.Point{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}

// parseTeamColor converts #RRGGBB into OpenCV-range HSV: hue in half
// degrees, saturation and value in [0, 255].
func parseTeamColor(s string) (*measure.HSV, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, err
	}
	h, sat, val := c.Hsv()
	return &measure.HSV{H: h / 2, S: sat * 255, V: val * 255}, nil
}

func parseHomography(s string) (*measure.Homography, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 9 {
		return nil, fmt.Errorf("want 9 coefficients, got %d", len(parts))
	}
	var coeffs [9]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("coefficient %d: %w", i+1, err)
		}
		coeffs[i] = v
	}
	return measure.NewHomography(coeffs)
}
