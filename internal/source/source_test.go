package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/motionguider/internal/tensor"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestFromImageRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(1, 0, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	tt := FromImage(img)
	assert.Equal(t, [4]int{1, 1, 2, 3}, tt.Shape())
	assert.Equal(t, []float32{1, 0, 0}, tt.At(0, 0))
	assert.Equal(t, []float32{0, 0, 1}, tt.At(1, 0))
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 8, 7))
	img.SetGray(5, 5, color.Gray{Y: 255})

	tt := FromImage(img)
	assert.Equal(t, 3, tt.Width)
	assert.Equal(t, 2, tt.Height)
	assert.Equal(t, []float32{1, 1, 1}, tt.At(0, 0))
	assert.Equal(t, []float32{0, 0, 0}, tt.At(1, 0))
}

func TestImageSourceLoad(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(3, 2, color.NRGBA{R: 0, G: 255, B: 0, A: 255})
	path := writePNG(t, img)

	src, err := Open(path, DefaultOptions())
	require.NoError(t, err)
	defer src.Close()

	_, ok := src.(*ImageSource)
	require.True(t, ok)

	tt, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, tt.Width)
	assert.Equal(t, 3, tt.Height)
	assert.Equal(t, []float32{0, 1, 0}, tt.At(3, 2))
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.png"), DefaultOptions())
	assert.Error(t, err)

	_, err = Open(t.TempDir(), DefaultOptions())
	assert.Error(t, err)

	_, err = Open("doc.pdf#0", DefaultOptions())
	assert.Error(t, err)

	_, err = Open("qr:", DefaultOptions())
	assert.Error(t, err)
}

func TestPDFSource(t *testing.T) {
	// one 72x36pt page filled red
	src, err := Open("testdata/red.pdf#1", Options{DPI: 144})
	require.NoError(t, err)
	defer src.Close()

	pdf, ok := src.(*FitzPDFSource)
	require.True(t, ok)
	assert.Equal(t, 1, pdf.PageCount())

	tt, err := src.Load()
	require.NoError(t, err)
	assert.InDelta(t, 144, tt.Width, 1)
	assert.InDelta(t, 72, tt.Height, 1)
	assert.InDeltaSlice(t, []float32{1, 0, 0}, tt.At(tt.Width/2, tt.Height/2), 0.02)

	_, err = Open("testdata/red.pdf#2", DefaultOptions())
	assert.ErrorContains(t, err, "1 pages")
}

func TestQRSource(t *testing.T) {
	src, err := Open("qr:motion guider", Options{QRSize: 128})
	require.NoError(t, err)

	tt, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, 128, tt.Width)
	assert.Equal(t, 128, tt.Height)

	var dark, light int
	for i := 0; i < len(tt.Pix); i += Channels {
		if tt.Pix[i] < 0.5 {
			dark++
		} else {
			light++
		}
	}
	assert.Greater(t, dark, 0)
	assert.Greater(t, light, 0)
}

func TestOrient(t *testing.T) {
	// 3x2 image with distinct values
	m := tensor.New(3, 2, 1)
	for i := range m.Pix {
		m.Pix[i] = float32(i)
	}

	assert.Same(t, m, Orient(m, 1))
	assert.Same(t, m, Orient(m, 0))

	r6 := Orient(m, 6) // 90 degrees clockwise
	assert.Equal(t, 2, r6.Width)
	assert.Equal(t, 3, r6.Height)
	// the bottom-left corner moves to the top-left
	assert.Equal(t, m.At(0, 1), r6.At(0, 0))
	assert.Equal(t, m.At(0, 0), r6.At(1, 0))

	r8 := Orient(m, 8) // 90 degrees counter-clockwise
	assert.Equal(t, m.At(2, 0), r8.At(0, 0))

	r3 := Orient(m, 3)
	assert.Equal(t, m.At(2, 1), r3.At(0, 0))
}
