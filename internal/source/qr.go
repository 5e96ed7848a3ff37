package source

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/motionguider/internal/tensor"
)

// QRSource renders text as a QR code. Its hard-edged, non-repeating pattern
// makes tiling seams and resampling blur easy to see.
type QRSource struct {
	Text string
	Size int
}

func NewQRSource(text string, size int) (*QRSource, error) {
	if text == "" {
		return nil, fmt.Errorf("empty QR text")
	}
	if size <= 0 {
		size = DefaultOptions().QRSize
	}
	return &QRSource{Text: text, Size: size}, nil
}

func (s *QRSource) Load() (*tensor.Image, error) {
	q, err := qrcode.New(s.Text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return FromImage(q.Image(s.Size)), nil
}

func (s *QRSource) Close() error {
	return nil
}
