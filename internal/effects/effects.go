package effects

import (
	"fmt"

	"github.com/ivlev/motionguider/internal/config"
	"github.com/ivlev/motionguider/internal/director"
	"github.com/ivlev/motionguider/internal/renderer"
	"github.com/ivlev/motionguider/internal/system"
	"github.com/ivlev/motionguider/internal/tensor"
)

// Effect composites one frame: src is the normalized image, dst the canvas.
// The tiling period is always the size of src; dst may be of any size with
// the same channel count. Implementations must not modify src.
type Effect interface {
	Mode() config.TilingMode
	Composite(dst, src *tensor.Image, plan director.FramePlan)
}

// NewEffect returns the compositor for a concrete tiling mode.
func NewEffect(mode config.TilingMode) (Effect, error) {
	switch mode {
	case config.TilingPlain, "":
		return &RepeatEffect{}, nil
	case config.TilingMirrored:
		return &MirrorEffect{}, nil
	case config.TilingAuto:
		return nil, fmt.Errorf("tiling mode %q must be resolved before compositing", mode)
	default:
		return nil, fmt.Errorf("unknown tiling mode: %s", mode)
	}
}

// RepeatEffect tiles the zoomed source by plain wraparound repetition.
type RepeatEffect struct{}

func (e *RepeatEffect) Mode() config.TilingMode { return config.TilingPlain }

func (e *RepeatEffect) Composite(dst, src *tensor.Image, plan director.FramePlan) {
	z, release := zoomed(src, plan.Zoom)
	defer release()

	tile(dst, z.Width, z.Height, plan.XOffset, plan.YOffset, func(_, _ int) *tensor.Image { return z })
}

// Zoom returns the zoom-crop of src for factor: the centered crop of
// (1-factor) of each side, resampled back to full size. A factor of 0 returns
// a copy of src without resampling.
func Zoom(src *tensor.Image, factor float64) *tensor.Image {
	if factor <= 0 {
		return src.Clone()
	}
	out := tensor.New(src.Width, src.Height, src.Channels)
	zoomInto(out, src, factor)
	return out
}

// ZoomCrop returns the crop rectangle used for factor.
func ZoomCrop(width, height int, factor float64) (x0, y0, cropW, cropH int) {
	cropW = max(1, int(float64(width)*(1-factor)))
	cropH = max(1, int(float64(height)*(1-factor)))
	return (width - cropW) / 2, (height - cropH) / 2, cropW, cropH
}

func zoomInto(dst, src *tensor.Image, factor float64) {
	x0, y0, cropW, cropH := ZoomCrop(src.Width, src.Height, factor)
	renderer.ResizeInto(dst, src.Crop(x0, y0, cropW, cropH))
}

// zoomed returns the per-frame source and a func releasing its scratch buffer.
// With no zoom the normalized image itself is used.
func zoomed(src *tensor.Image, factor float64) (*tensor.Image, func()) {
	if factor <= 0 {
		return src, func() {}
	}
	out := system.GetImage(src.Width, src.Height, src.Channels)
	zoomInto(out, src, factor)
	return out, func() { system.PutImage(out) }
}

// tile fills dst with a w×h periodic pattern shifted by (xOff, yOff), so the
// canvas pixel (cx, cy) comes from ((cx-xOff) mod w, (cy-yOff) mod h) of the
// tile chosen by pick for period (floor((cx-xOff)/w), floor((cy-yOff)/h)).
// Each period overlapping the canvas is copied as one rectangular block.
func tile(dst *tensor.Image, w, h, xOff, yOff int, pick func(kx, ky int) *tensor.Image) {
	c := dst.Channels
	for ky := floorDiv(-yOff, h); ky*h+yOff < dst.Height; ky++ {
		y0 := ky*h + yOff
		rowStart, rowEnd := max(0, y0), min(dst.Height, y0+h)

		for kx := floorDiv(-xOff, w); kx*w+xOff < dst.Width; kx++ {
			x0 := kx*w + xOff
			colStart, colEnd := max(0, x0), min(dst.Width, x0+w)
			src := pick(kx, ky)
			sx := colStart - x0
			n := (colEnd - colStart) * c

			for cy := rowStart; cy < rowEnd; cy++ {
				copy(dst.Row(cy)[colStart*c:colStart*c+n], src.Row(cy - y0)[sx*c:sx*c+n])
			}
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
