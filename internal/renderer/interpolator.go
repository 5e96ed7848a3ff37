package renderer

import "github.com/ivlev/motionguider/internal/tensor"

// axisWeights holds, for every output index along one axis, the two source
// indices and their weights.
type axisWeights struct {
	i0, i1 []int
	w0, w1 []float32
}

// sourceIndex maps an output coordinate to the source grid the way bilinear
// interpolation with align_corners=false does: pixel centers are aligned,
// corners are not, and coordinates left of the first center clamp to 0.
func sourceIndex(dst int, scale float32) float32 {
	src := (float32(dst)+0.5)*scale - 0.5
	if src < 0 {
		return 0
	}
	return src
}

func computeAxis(in, out int) axisWeights {
	a := axisWeights{
		i0: make([]int, out),
		i1: make([]int, out),
		w0: make([]float32, out),
		w1: make([]float32, out),
	}
	scale := float32(in) / float32(out)
	for d := 0; d < out; d++ {
		src := sourceIndex(d, scale)
		i0 := int(src)
		if i0 > in-1 {
			i0 = in - 1
		}
		i1 := i0
		if i0 < in-1 {
			i1 = i0 + 1
		}
		l1 := src - float32(i0)
		a.i0[d], a.i1[d] = i0, i1
		a.w0[d], a.w1[d] = 1-l1, l1
	}
	return a
}

// Resize returns src bilinearly resampled to width×height.
func Resize(src *tensor.Image, width, height int) *tensor.Image {
	dst := tensor.New(width, height, src.Channels)
	ResizeInto(dst, src)
	return dst
}

// ResizeInto resamples src to fill dst. Equal sizes copy verbatim.
func ResizeInto(dst, src *tensor.Image) {
	if dst.Width == src.Width && dst.Height == src.Height {
		copy(dst.Pix, src.Pix)
		return
	}

	xs := computeAxis(src.Width, dst.Width)
	ys := computeAxis(src.Height, dst.Height)
	c := src.Channels

	for y := 0; y < dst.Height; y++ {
		r0, r1 := src.Row(ys.i0[y]), src.Row(ys.i1[y])
		wy0, wy1 := ys.w0[y], ys.w1[y]
		out := dst.Row(y)
		for x := 0; x < dst.Width; x++ {
			x0, x1 := xs.i0[x]*c, xs.i1[x]*c
			wx0, wx1 := xs.w0[x], xs.w1[x]
			o := x * c
			for ch := 0; ch < c; ch++ {
				top := wx0*r0[x0+ch] + wx1*r0[x1+ch]
				bottom := wx0*r1[x0+ch] + wx1*r1[x1+ch]
				out[o+ch] = wy0*top + wy1*bottom
			}
		}
	}
}
