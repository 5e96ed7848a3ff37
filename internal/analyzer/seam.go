package analyzer

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"

	"github.com/ivlev/motionguider/internal/tensor"
)

// DefaultSeamThreshold is the mean CIE Lab distance above which a seam is
// considered visible.
const DefaultSeamThreshold = 0.06

// SeamDetector compares the pixels that meet at a plain wraparound boundary.
type SeamDetector struct {
	Threshold float64
}

// NewSeamDetector creates a seam detector with default settings
func NewSeamDetector() *SeamDetector {
	return &SeamDetector{Threshold: DefaultSeamThreshold}
}

// Detect measures the perceptual distance across both wraparound seams.
func (d *SeamDetector) Detect(img *tensor.Image) (SeamReport, error) {
	if img == nil || img.Width < 2 || img.Height < 2 {
		return SeamReport{}, fmt.Errorf("image too small for seam analysis")
	}

	horizontal := make([]float64, img.Height)
	for y := 0; y < img.Height; y++ {
		horizontal[y] = distance(img.At(0, y), img.At(img.Width-1, y))
	}

	vertical := make([]float64, img.Width)
	for x := 0; x < img.Width; x++ {
		vertical[x] = distance(img.At(x, 0), img.At(x, img.Height-1))
	}

	all := append(append([]float64{}, horizontal...), vertical...)

	return SeamReport{
		Horizontal: stat.Mean(horizontal, nil),
		Vertical:   stat.Mean(vertical, nil),
		Spread:     stat.StdDev(all, nil),
	}, nil
}

// distance is the CIE Lab distance between two pixels. Single-channel images
// are treated as gray; alpha and extra channels are ignored.
func distance(a, b []float32) float64 {
	return toColor(a).DistanceLab(toColor(b))
}

func toColor(p []float32) colorful.Color {
	var c colorful.Color
	if len(p) >= 3 {
		c = colorful.Color{R: float64(p[0]), G: float64(p[1]), B: float64(p[2])}
	} else {
		c = colorful.Color{R: float64(p[0]), G: float64(p[0]), B: float64(p[0])}
	}
	return c.Clamped()
}
