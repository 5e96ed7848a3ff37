// Package normalize brings a source image to the working resolution that
// becomes the tiling period for every frame of the sequence.
package normalize

import (
	"fmt"
	"math"

	"github.com/ivlev/motionguider/internal/config"
	"github.com/ivlev/motionguider/internal/renderer"
	"github.com/ivlev/motionguider/internal/tensor"
)

// Normalize resizes according to mode and then optionally center-crops to a
// square. The input is never modified; disabled mode without a crop returns
// img itself.
func Normalize(img *tensor.Image, mode config.ResizeMode, targetWidth, targetHeight int, centerCrop bool) *tensor.Image {
	out := Resize(img, mode, targetWidth, targetHeight)
	if centerCrop {
		out = CenterCrop(out)
	}
	return out
}

// Resize applies the resize stage only.
func Resize(img *tensor.Image, mode config.ResizeMode, targetWidth, targetHeight int) *tensor.Image {
	w, h := TargetSize(img.Width, img.Height, mode, targetWidth, targetHeight)
	if mode == config.ResizeDisabled || mode == "" {
		return img
	}
	return renderer.Resize(img, w, h)
}

// TargetSize reports the size Resize will produce.
func TargetSize(width, height int, mode config.ResizeMode, targetWidth, targetHeight int) (int, int) {
	switch mode {
	case config.ResizeDisabled, "":
		return width, height
	case config.ResizeCustom:
		return targetWidth, targetHeight
	case config.ResizeKeepRatio:
		newHeight := int(math.Round(float64(targetWidth) * float64(height) / float64(width)))
		if newHeight < 1 {
			newHeight = 1
		}
		return targetWidth, newHeight
	}
	panic(fmt.Sprintf("normalize: unknown resize mode %q", mode))
}

// CropRect returns the origin and side of the centered square crop.
func CropRect(width, height int) (x0, y0, side int) {
	side = min(width, height)
	return (width - side) / 2, (height - side) / 2, side
}

// CenterCrop cuts the largest centered square out of img.
func CenterCrop(img *tensor.Image) *tensor.Image {
	x0, y0, side := CropRect(img.Width, img.Height)
	if side == img.Width && side == img.Height {
		return img
	}
	return img.Crop(x0, y0, side, side)
}
