package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(w, h, c int) *Image {
	m := New(w, h, c)
	for i := range m.Pix {
		m.Pix[i] = float32(i)
	}
	return m
}

func TestCrop(t *testing.T) {
	m := ramp(4, 3, 1)
	c := m.Crop(1, 1, 2, 2)

	assert.Equal(t, [4]int{1, 2, 2, 1}, c.Shape())
	assert.Equal(t, []float32{5, 6, 9, 10}, c.Pix)

	// crop copies, never aliases
	c.Pix[0] = -1
	assert.Equal(t, float32(5), m.Pix[5])
}

func TestCropOutOfBoundsPanics(t *testing.T) {
	m := ramp(4, 3, 1)
	assert.Panics(t, func() { m.Crop(3, 0, 2, 1) })
}

func TestFlips(t *testing.T) {
	m := ramp(3, 2, 2)

	h := m.FlipHorizontal()
	assert.Equal(t, m.At(0, 0), h.At(2, 0))
	assert.Equal(t, m.At(2, 1), h.At(0, 1))

	v := m.FlipVertical()
	assert.Equal(t, m.Row(0), v.Row(1))

	assert.Equal(t, m.Pix, h.FlipHorizontal().Pix)
	assert.Equal(t, m.Pix, v.FlipVertical().Pix)
}

func TestTranspose(t *testing.T) {
	m := ramp(3, 2, 1)
	tr := m.Transpose()

	assert.Equal(t, 2, tr.Width)
	assert.Equal(t, 3, tr.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			assert.Equal(t, m.At(x, y), tr.At(y, x))
		}
	}
}

func TestFromSlice(t *testing.T) {
	_, err := FromSlice(make([]float32, 5), 2, 2, 1)
	assert.Error(t, err)

	m, err := FromSlice(make([]float32, 12), 2, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, [4]int{1, 2, 2, 3}, m.Shape())
}

func TestBatchFrameViews(t *testing.T) {
	b := NewBatch(3, 2, 2, 1)
	b.Frame(1).Pix[0] = 7

	assert.Equal(t, float32(7), b.Pix[4])
	assert.Equal(t, [4]int{3, 2, 2, 1}, b.Shape())
}
