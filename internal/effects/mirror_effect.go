package effects

import (
	"github.com/ivlev/motionguider/internal/config"
	"github.com/ivlev/motionguider/internal/director"
	"github.com/ivlev/motionguider/internal/system"
	"github.com/ivlev/motionguider/internal/tensor"
)

// Flip states of the mirror tiling, indexed by xParity | yParity<<1.
const (
	FlipNone = iota
	FlipHorizontal
	FlipVertical
	FlipBoth
)

// FlipState returns the variant used for tile period (kx, ky): odd periods
// along an axis are mirrored along that axis.
func FlipState(kx, ky int) int {
	return (kx & 1) | (ky&1)<<1
}

// MirrorEffect tiles with alternating horizontal and vertical mirroring so
// that neighbouring periods meet edge to identical edge.
type MirrorEffect struct{}

func (e *MirrorEffect) Mode() config.TilingMode { return config.TilingMirrored }

func (e *MirrorEffect) Composite(dst, src *tensor.Image, plan director.FramePlan) {
	z, release := zoomed(src, plan.Zoom)
	defer release()

	variants := flipVariants(z)
	defer func() {
		for _, v := range variants[1:] {
			system.PutImage(v)
		}
	}()

	tile(dst, z.Width, z.Height, plan.XOffset, plan.YOffset, func(kx, ky int) *tensor.Image {
		return variants[FlipState(kx, ky)]
	})
}

// flipVariants builds the four flip states of z once per frame. Entry 0 is z
// itself; the others are pooled scratch images.
func flipVariants(z *tensor.Image) [4]*tensor.Image {
	var v [4]*tensor.Image
	v[FlipNone] = z
	v[FlipHorizontal] = system.GetImage(z.Width, z.Height, z.Channels)
	z.FlipHorizontalInto(v[FlipHorizontal])
	v[FlipVertical] = system.GetImage(z.Width, z.Height, z.Channels)
	z.FlipVerticalInto(v[FlipVertical])
	v[FlipBoth] = system.GetImage(z.Width, z.Height, z.Channels)
	v[FlipHorizontal].FlipVerticalInto(v[FlipBoth])
	return v
}
