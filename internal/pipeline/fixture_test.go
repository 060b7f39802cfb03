package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/noise"
	"github.com/disintegration/imaging"
)

// Synthetic court photographs: a flat background, a white jack and colored
// boules drawn as filled shapes, encoded to PNG bytes the way the
// application hands camera output to the pipeline.

var (
	courtGray = color.RGBA{70, 70, 70, 255}
	jackWhite = color.RGBA{255, 255, 255, 255}
	bouleRed  = color.RGBA{200, 30, 30, 255}
	bouleBlue = color.RGBA{40, 60, 200, 255}
)

func newCanvas(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// fillEllipse rasterizes a filled axis-aligned ellipse.
func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, c color.RGBA) {
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			nx := float64(dx) / float64(rx)
			ny := float64(dy) / float64(ry)
			if nx*nx+ny*ny <= 1 {
				img.SetRGBA(cx+dx, cy+dy, c)
			}
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	fillEllipse(img, cx, cy, r, r, c)
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

// courtFixture is the standard scene: jack of pixel radius 40 at
// (100, 200), a red boule at (300, 200) and a blue boule at (300, 80),
// both drawn as 32×28 half-axis ellipses.
func courtFixture(t *testing.T) []byte {
	t.Helper()
	img := newCanvas(480, 360, courtGray)
	fillCircle(img, 100, 200, 40, jackWhite)
	fillEllipse(img, 300, 200, 32, 28, bouleRed)
	fillEllipse(img, 300, 80, 32, 28, bouleBlue)
	return encodePNG(t, img)
}

// noisyCourtFixture overlays faint gaussian noise on the standard scene to
// exercise the morphological noise rejection.
func noisyCourtFixture(t *testing.T) []byte {
	t.Helper()
	img := newCanvas(480, 360, courtGray)
	fillCircle(img, 100, 200, 40, jackWhite)
	fillEllipse(img, 300, 200, 32, 28, bouleRed)

	grain := noise.Generate(480, 360, &noise.Options{NoiseFn: noise.Gaussian, Monochrome: true})
	return encodePNG(t, blend.Opacity(img, grain, 0.05))
}
