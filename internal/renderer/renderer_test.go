package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/motionguider/internal/tensor"
)

func TestResizeUpscaleRow(t *testing.T) {
	// 2 -> 4 along x, align_corners=false:
	//   dst 0: src -0.25 -> clamp 0      -> 10
	//   dst 1: src  0.25                 -> 10*0.75 + 20*0.25
	//   dst 2: src  0.75                 -> 10*0.25 + 20*0.75
	//   dst 3: src  1.25 -> i0=1, i1=1   -> 20
	src, err := tensor.FromSlice([]float32{10, 20}, 2, 1, 1)
	require.NoError(t, err)

	dst := Resize(src, 4, 1)
	assert.InDeltaSlice(t, []float32{10, 12.5, 17.5, 20}, dst.Pix, 1e-5)
}

func TestResizeDownscaleAveragesPairs(t *testing.T) {
	// 4 -> 2: dst 0 samples src 0.5, dst 1 samples src 2.5
	src, err := tensor.FromSlice([]float32{0, 2, 4, 6}, 4, 1, 1)
	require.NoError(t, err)

	dst := Resize(src, 2, 1)
	assert.InDeltaSlice(t, []float32{1, 5}, dst.Pix, 1e-5)
}

func TestResizeTwoAxesAndChannels(t *testing.T) {
	src := tensor.New(2, 2, 2)
	for i := range src.Pix {
		src.Pix[i] = float32(i)
	}

	dst := Resize(src, 3, 3)
	require.Equal(t, [4]int{1, 3, 3, 2}, dst.Shape())

	// the center pixel samples (0.5, 0.5): the mean of the four corners
	center := dst.At(1, 1)
	assert.InDelta(t, (0+2+4+6)/4.0, center[0], 1e-5)
	assert.InDelta(t, (1+3+5+7)/4.0, center[1], 1e-5)

	// corners clamp to the source corners
	assert.InDeltaSlice(t, src.At(0, 0), dst.At(0, 0), 1e-5)
	assert.InDeltaSlice(t, src.At(1, 1), dst.At(2, 2), 1e-5)
}

func TestResizeSameSizeIsIdentity(t *testing.T) {
	src := tensor.New(5, 3, 3)
	for i := range src.Pix {
		src.Pix[i] = float32(i) / 7
	}

	dst := Resize(src, 5, 3)
	assert.Equal(t, src.Pix, dst.Pix)
}

func TestResizeConstantStaysConstant(t *testing.T) {
	src := tensor.New(7, 5, 1)
	for i := range src.Pix {
		src.Pix[i] = 0.42
	}

	dst := Resize(src, 13, 2)
	for _, v := range dst.Pix {
		assert.InDelta(t, 0.42, v, 1e-6)
	}
}
