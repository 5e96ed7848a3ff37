package source

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/ivlev/motionguider/internal/tensor"
)

// Source yields the single input image of a run.
type Source interface {
	Load() (*tensor.Image, error)
	Close() error
}

type Options struct {
	DPI    int // PDF rasterisation
	QRSize int // side of generated QR patterns, in pixels
}

func DefaultOptions() Options {
	return Options{DPI: 150, QRSize: 512}
}

// Open picks a source for ref:
//
//	qr:<text>        generated QR code test pattern
//	file.pdf[#page]  one PDF page (1-based, default 1)
//	anything else    an image file
func Open(ref string, opts Options) (Source, error) {
	if text, ok := strings.CutPrefix(ref, "qr:"); ok {
		return NewQRSource(text, opts.QRSize)
	}

	path, page := ref, 1
	if i := strings.LastIndex(ref, "#"); i >= 0 && strings.EqualFold(filepath.Ext(ref[:i]), ".pdf") {
		n, err := strconv.Atoi(ref[i+1:])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page in %q", ref)
		}
		path, page = ref[:i], n
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path, page-1, opts.DPI)
	}
	return NewImageSource(path)
}

// FitzPDFSource растеризует одну страницу PDF
type FitzPDFSource struct {
	doc   *fitz.Document
	path  string
	index int
	dpi   int
}

func NewFitzPDFSource(path string, index, dpi int) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= doc.NumPage() {
		n := doc.NumPage()
		doc.Close()
		return nil, fmt.Errorf("%s has %d pages, page %d requested", path, n, index+1)
	}
	return &FitzPDFSource{doc: doc, path: path, index: index, dpi: dpi}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) Load() (*tensor.Image, error) {
	img, err := f.doc.ImageDPI(f.index, float64(f.dpi))
	if err != nil {
		return nil, fmt.Errorf("render %s page %d: %w", f.path, f.index+1, err)
	}
	return FromImage(img), nil
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
