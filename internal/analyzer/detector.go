package analyzer

import "github.com/ivlev/motionguider/internal/tensor"

// SeamReport describes how visible the wraparound seams of an image are when
// it is repeated without mirroring.
type SeamReport struct {
	Horizontal float64 // mean distance between left and right edge columns
	Vertical   float64 // mean distance between top and bottom edge rows
	Spread     float64 // standard deviation over all edge samples
}

// Max returns the worse of the two seams.
func (r SeamReport) Max() float64 {
	if r.Horizontal > r.Vertical {
		return r.Horizontal
	}
	return r.Vertical
}

// Detector is the interface for image analysis strategies
type Detector interface {
	Detect(img *tensor.Image) (SeamReport, error)
}
