package video

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/tiff"

	"github.com/ivlev/motionguider/internal/tensor"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatHDR  Format = "hdr"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return FormatPNG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "hdr", "rgbe":
		return FormatHDR, nil
	}
	return "", fmt.Errorf("unknown frame format: %s", s)
}

// FrameWriter stores an output sequence.
type FrameWriter interface {
	WriteSequence(ctx context.Context, frames *tensor.Batch, dir string) ([]string, error)
}

// FileSequenceWriter writes one numbered file per frame: frame_0000.png, ...
type FileSequenceWriter struct {
	Format Format
}

func NewFileSequenceWriter(format Format) *FileSequenceWriter {
	return &FileSequenceWriter{Format: format}
}

func (w *FileSequenceWriter) WriteSequence(ctx context.Context, frames *tensor.Batch, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, frames.N)
	for i := 0; i < frames.N; i++ {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.%s", i, w.Format))
		if err := w.writeFile(path, frames.Frame(i)); err != nil {
			return paths, fmt.Errorf("frame %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *FileSequenceWriter) writeFile(path string, frame *tensor.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.Encode(f, frame); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes a single frame in the writer's format.
func (w *FileSequenceWriter) Encode(out io.Writer, frame *tensor.Image) error {
	switch w.Format {
	case FormatPNG:
		return png.Encode(out, ToNRGBA64(frame))
	case FormatTIFF:
		return tiff.Encode(out, ToNRGBA64(frame), &tiff.Options{Compression: tiff.Deflate})
	case FormatHDR:
		return rgbe.Encode(out, HDRImage{frame})
	}
	return fmt.Errorf("unknown frame format: %s", w.Format)
}

// ToNRGBA64 converts a frame to 16-bit RGBA, clamping to [0,1]. One channel
// is written as gray, three as RGB, a fourth as alpha.
func ToNRGBA64(frame *tensor.Image) *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			img.SetNRGBA64(x, y, nrgba64(frame.At(x, y)))
		}
	}
	return img
}

func nrgba64(p []float32) color.NRGBA64 {
	c := color.NRGBA64{A: 0xffff}
	switch {
	case len(p) >= 3:
		c.R, c.G, c.B = quantize(p[0]), quantize(p[1]), quantize(p[2])
		if len(p) >= 4 {
			c.A = quantize(p[3])
		}
	default:
		v := quantize(p[0])
		c.R, c.G, c.B = v, v, v
	}
	return c
}

func quantize(v float32) uint16 {
	if v <= 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(math.Round(float64(v) * 0xffff))
}

// HDRImage exposes a frame as an hdr.Image without clamping.
type HDRImage struct {
	Frame *tensor.Image
}

var _ hdr.Image = HDRImage{}

func (h HDRImage) ColorModel() color.Model { return hdrcolor.RGBModel }

func (h HDRImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, h.Frame.Width, h.Frame.Height)
}

func (h HDRImage) At(x, y int) color.Color { return h.HDRAt(x, y) }

// Size is the number of pixels.
func (h HDRImage) Size() int { return h.Frame.Width * h.Frame.Height }

func (h HDRImage) HDRAt(x, y int) hdrcolor.Color {
	p := h.Frame.At(x, y)
	if len(p) >= 3 {
		return hdrcolor.RGB{float64(p[0]), float64(p[1]), float64(p[2])}
	}
	return hdrcolor.RGB{float64(p[0]), float64(p[0]), float64(p[0])}
}
