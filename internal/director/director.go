package director

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// Director plans the camera path over a normalized image of fixed size.
type Director struct {
	Width  int
	Height int
}

// NewDirector creates a Director for a width×height tiling period.
func NewDirector(width, height int) *Director {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("director: invalid size %dx%d", width, height))
	}
	return &Director{Width: width, Height: height}
}

// Plan returns one FramePlan per frame index in [0, frameCount).
func (d *Director) Plan(moveRangeX, moveRangeY, zoom float64, frameCount int) []FramePlan {
	if frameCount < 2 {
		panic(fmt.Sprintf("director: frame count %d < 2", frameCount))
	}

	// truncation toward zero, like an integer cast
	pixelRangeX := int(moveRangeX * float64(d.Width))
	pixelRangeY := int(moveRangeY * float64(d.Height))

	stepX := stepSize(pixelRangeX, frameCount)
	stepY := stepSize(pixelRangeY, frameCount)

	return lo.Times(frameCount, func(i int) FramePlan {
		return FramePlan{
			Index:   i,
			XOffset: offset(pixelRangeX, stepX, i, d.Width),
			YOffset: offset(pixelRangeY, stepY, i, d.Height),
			Zoom:    zoomAt(i, frameCount, zoom),
		}
	})
}

// stepSize is the per-frame magnitude of the pan along one axis.
func stepSize(pixelRange, frameCount int) float64 {
	if pixelRange == 0 {
		return 0
	}
	return math.Abs(float64(pixelRange)) / float64(frameCount-1)
}

// offset is the signed, truncated pan at frame i wrapped into [0, dim).
func offset(pixelRange int, step float64, i, dim int) int {
	if pixelRange == 0 {
		return 0
	}
	raw := int(step * float64(i))
	if pixelRange < 0 {
		raw = -raw
	}
	return wrap(raw, dim)
}

func zoomAt(i, frameCount int, zoom float64) float64 {
	if zoom <= 0 {
		return 0
	}
	return float64(i) / float64(frameCount-1) * zoom
}

// wrap is the Euclidean remainder of v by dim, always in [0, dim).
func wrap(v, dim int) int {
	m := v % dim
	if m < 0 {
		m += dim
	}
	return m
}
