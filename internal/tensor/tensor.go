// Package tensor holds the float image types the motion pipeline works on.
//
// Layout is row-major HWC: the value of channel c at pixel (x, y) of an Image
// lives at Pix[(y*Width+x)*Channels+c]. A Batch stacks N such images along a
// leading dimension, giving the (N, H, W, C) shape the host pipeline expects.
package tensor

import "fmt"

// Image is a single (1, H, W, C) image with values conventionally in [0,1].
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []float32
}

// New allocates a zeroed image.
func New(width, height, channels int) *Image {
	if width <= 0 || height <= 0 || channels <= 0 {
		panic(fmt.Sprintf("tensor: invalid shape %dx%dx%d", width, height, channels))
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// FromSlice wraps pix without copying.
func FromSlice(pix []float32, width, height, channels int) (*Image, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid shape %dx%dx%d", width, height, channels)
	}
	if want := width * height * channels; len(pix) != want {
		return nil, fmt.Errorf("unexpected data length: got %d, want %d", len(pix), want)
	}
	return &Image{Width: width, Height: height, Channels: channels, Pix: pix}, nil
}

// Shape returns (1, H, W, C).
func (m *Image) Shape() [4]int { return [4]int{1, m.Height, m.Width, m.Channels} }

func (m *Image) Stride() int { return m.Width * m.Channels }

// Row returns the slice backing row y.
func (m *Image) Row(y int) []float32 {
	s := m.Stride()
	return m.Pix[y*s : (y+1)*s]
}

// At returns the channel values of pixel (x, y).
func (m *Image) At(x, y int) []float32 {
	i := (y*m.Width + x) * m.Channels
	return m.Pix[i : i+m.Channels]
}

func (m *Image) SameShape(o *Image) bool {
	return m.Width == o.Width && m.Height == o.Height && m.Channels == o.Channels
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	c := &Image{Width: m.Width, Height: m.Height, Channels: m.Channels, Pix: make([]float32, len(m.Pix))}
	copy(c.Pix, m.Pix)
	return c
}

// Crop copies the w×h region whose top-left corner is (x0, y0).
func (m *Image) Crop(x0, y0, w, h int) *Image {
	if x0 < 0 || y0 < 0 || w <= 0 || h <= 0 || x0+w > m.Width || y0+h > m.Height {
		panic(fmt.Sprintf("tensor: crop %d,%d %dx%d outside %dx%d", x0, y0, w, h, m.Width, m.Height))
	}
	out := New(w, h, m.Channels)
	c := m.Channels
	for y := 0; y < h; y++ {
		copy(out.Row(y), m.Row(y0 + y)[x0*c:(x0+w)*c])
	}
	return out
}

// FlipHorizontalInto writes m mirrored left-to-right into dst.
func (m *Image) FlipHorizontalInto(dst *Image) {
	c := m.Channels
	for y := 0; y < m.Height; y++ {
		src, out := m.Row(y), dst.Row(y)
		for x := 0; x < m.Width; x++ {
			copy(out[(m.Width-1-x)*c:(m.Width-x)*c], src[x*c:(x+1)*c])
		}
	}
}

// FlipVerticalInto writes m mirrored top-to-bottom into dst.
func (m *Image) FlipVerticalInto(dst *Image) {
	for y := 0; y < m.Height; y++ {
		copy(dst.Row(m.Height-1-y), m.Row(y))
	}
}

// FlipHorizontal returns a left-to-right mirrored copy.
func (m *Image) FlipHorizontal() *Image {
	out := New(m.Width, m.Height, m.Channels)
	m.FlipHorizontalInto(out)
	return out
}

// FlipVertical returns a top-to-bottom mirrored copy.
func (m *Image) FlipVertical() *Image {
	out := New(m.Width, m.Height, m.Channels)
	m.FlipVerticalInto(out)
	return out
}

// Transpose swaps the x and y axes.
func (m *Image) Transpose() *Image {
	out := New(m.Height, m.Width, m.Channels)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			copy(out.At(y, x), m.At(x, y))
		}
	}
	return out
}
