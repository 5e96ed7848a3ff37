package analyzer

import (
	"fmt"

	"github.com/ivlev/motionguider/internal/config"
	"github.com/ivlev/motionguider/internal/tensor"
)

// NewDetector creates a detector based on the specified variant
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "seam", "":
		return NewSeamDetector(), nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}

// ChooseTiling resolves the auto tiling mode: images whose opposite edges do
// not match get mirrored tiling, the rest keep plain repetition.
func ChooseTiling(det Detector, img *tensor.Image, threshold float64) (config.TilingMode, SeamReport, error) {
	report, err := det.Detect(img)
	if err != nil {
		return config.TilingPlain, report, err
	}
	if report.Max() > threshold {
		return config.TilingMirrored, report, nil
	}
	return config.TilingPlain, report, nil
}
