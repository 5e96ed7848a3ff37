package video

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdouchement/hdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/motionguider/internal/source"
	"github.com/ivlev/motionguider/internal/tensor"
)

func sequence(n, w, h int) *tensor.Batch {
	b := tensor.NewBatch(n, w, h, 3)
	for i := range b.Pix {
		b.Pix[i] = float32(i%17) / 16
	}
	return b
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("TIF")
	require.NoError(t, err)
	assert.Equal(t, FormatTIFF, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	_, err = ParseFormat("mp4")
	assert.Error(t, err)
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, uint16(0), quantize(-0.5))
	assert.Equal(t, uint16(0xffff), quantize(1.7))
	assert.Equal(t, uint16(32768), quantize(0.5))
}

func TestWriteSequenceNamesFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := NewFileSequenceWriter(FormatPNG).WriteSequence(context.Background(), sequence(3, 8, 6), dir)
	require.NoError(t, err)

	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "frame_0002.png"), paths[2])
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestFormatsRoundTrip(t *testing.T) {
	frames := sequence(1, 5, 4)
	want := frames.Frame(0)

	tests := []struct {
		format Format
		delta  float64
	}{
		{FormatPNG, 1.0 / 0xffff},
		{FormatTIFF, 1.0 / 0xffff},
		{FormatHDR, 0.01}, // rgbe keeps 8-bit mantissas
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			paths, err := NewFileSequenceWriter(tt.format).WriteSequence(context.Background(), frames, t.TempDir())
			require.NoError(t, err)

			src, err := source.Open(paths[0], source.DefaultOptions())
			require.NoError(t, err)
			got, err := src.Load()
			require.NoError(t, err)

			require.Equal(t, want.Shape(), got.Shape())
			assert.InDeltaSlice(t, want.Pix, got.Pix, tt.delta)
		})
	}
}

func TestWriteSequenceHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths, err := NewFileSequenceWriter(FormatPNG).WriteSequence(ctx, sequence(2, 4, 4), t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, paths)
}

func TestHDRImage(t *testing.T) {
	frame := tensor.New(5, 4, 3)
	frame.Pix[0] = 2.5

	var img hdr.Image = HDRImage{frame}
	assert.Equal(t, 20, img.Size())
	assert.Equal(t, 5, img.Bounds().Dx())

	r, _, _, _ := img.HDRAt(0, 0).HDRRGBA()
	assert.Equal(t, 2.5, r)
}

func TestToNRGBA64Gray(t *testing.T) {
	m := tensor.New(1, 1, 1)
	m.Pix[0] = 1
	img := ToNRGBA64(m)
	c := img.NRGBA64At(0, 0)
	assert.Equal(t, uint16(0xffff), c.R)
	assert.Equal(t, uint16(0xffff), c.B)
	assert.Equal(t, uint16(0xffff), c.A)
}
