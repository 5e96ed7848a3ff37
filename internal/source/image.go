package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ivlev/motionguider/internal/tensor"
)

// ImageSource decodes a single image file. JPEG EXIF orientation is applied;
// Radiance HDR files keep their linear, unclamped values.
type ImageSource struct {
	path string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &ImageSource{path: path}, nil
}

func (s *ImageSource) Load() (*tensor.Image, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if hi, ok := img.(hdr.Image); ok {
		return FromHDR(hi), nil
	}
	t := FromImage(img)

	if format == "jpeg" {
		if _, err := f.Seek(0, 0); err == nil {
			t = Orient(t, readOrientation(f))
		}
	}
	return t, nil
}

func (s *ImageSource) Close() error {
	return nil
}

// readOrientation returns the EXIF orientation tag, or 1 when absent.
func readOrientation(f *os.File) int {
	x, err := exif.Decode(f)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// Orient transforms an image stored with EXIF orientation o into display
// orientation.
func Orient(t *tensor.Image, o int) *tensor.Image {
	switch o {
	case 2:
		return t.FlipHorizontal()
	case 3:
		return t.FlipHorizontal().FlipVertical()
	case 4:
		return t.FlipVertical()
	case 5:
		return t.Transpose()
	case 6:
		return t.Transpose().FlipHorizontal()
	case 7:
		return t.Transpose().FlipHorizontal().FlipVertical()
	case 8:
		return t.Transpose().FlipVertical()
	}
	return t
}
