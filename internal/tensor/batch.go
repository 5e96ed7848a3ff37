package tensor

import "fmt"

// Batch is an (N, H, W, C) stack of equally shaped images in one slab.
type Batch struct {
	N        int
	Width    int
	Height   int
	Channels int
	Pix      []float32
}

func NewBatch(n, width, height, channels int) *Batch {
	if n <= 0 || width <= 0 || height <= 0 || channels <= 0 {
		panic(fmt.Sprintf("tensor: invalid batch shape %dx%dx%dx%d", n, height, width, channels))
	}
	return &Batch{
		N:        n,
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, n*width*height*channels),
	}
}

// Shape returns (N, H, W, C).
func (b *Batch) Shape() [4]int { return [4]int{b.N, b.Height, b.Width, b.Channels} }

// Frame returns a view of image i. Writes through the view land in the batch.
func (b *Batch) Frame(i int) *Image {
	size := b.Width * b.Height * b.Channels
	return &Image{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Pix:      b.Pix[i*size : (i+1)*size : (i+1)*size],
	}
}
