package source

import (
	"image"

	"github.com/mdouchement/hdr"
	"golang.org/x/image/draw"

	"github.com/ivlev/motionguider/internal/tensor"
)

// Channels of every tensor produced by this package (RGB; alpha is dropped).
const Channels = 3

// FromImage converts any decoded image to an RGB tensor with values in [0,1].
// Alpha is un-premultiplied away rather than composited.
func FromImage(img image.Image) *tensor.Image {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA64)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	t := tensor.New(b.Dx(), b.Dy(), Channels)
	for y := 0; y < t.Height; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		out := t.Row(y)
		for x := 0; x < t.Width; x++ {
			for c := 0; c < Channels; c++ {
				i := x*8 + c*2
				v := uint16(row[i])<<8 | uint16(row[i+1])
				out[x*Channels+c] = float32(v) / 0xffff
			}
		}
	}
	return t
}

// FromHDR converts a high dynamic range image keeping linear float values.
func FromHDR(img hdr.Image) *tensor.Image {
	b := img.Bounds()
	t := tensor.New(b.Dx(), b.Dy(), Channels)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			r, g, bl, _ := img.HDRAt(b.Min.X+x, b.Min.Y+y).HDRRGBA()
			p := t.At(x, y)
			p[0], p[1], p[2] = float32(r), float32(g), float32(bl)
		}
	}
	return t
}
