// Package glyph turns decoded frames into fixed width text blocks by
// looking up each pixel's luma on a density ramp.
package glyph

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/1F47E/go-termreel/pkg/errs"
)

// Ramp is ordered from least to most ink.
type Ramp []rune

// DefaultRamp is shared read-only by every conversion.
var DefaultRamp = Ramp(" .-+*wGHM#&%")

// Index is floor(v/255 * (len-1)), truncated toward the start of the ramp.
func (r Ramp) Index(v uint8) int {
	return int(float32(v) / 255 * float32(len(r)-1))
}

func (r Ramp) Glyph(v uint8) rune {
	return r[r.Index(v)]
}

// Map renders the top-left width x height pixels of img, one line per row.
func Map(img image.Image, width, height int, ramp Ramp) string {
	b := img.Bounds()
	var sb strings.Builder
	sb.Grow((width + 1) * height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
			sb.WriteRune(ramp.Glyph(v))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MapFile decodes the still image at path and maps it.
func MapFile(path string, width, height int, ramp Ramp) (string, error) {
	if len(ramp) == 0 {
		return "", errs.Newf(errs.KindDecode, path, "empty glyph ramp")
	}
	img, err := imaging.Open(path)
	if err != nil {
		return "", errs.New(errs.KindDecode, path, err)
	}
	b := img.Bounds()
	if b.Dx() < width || b.Dy() < height {
		return "", errs.New(errs.KindDecode, path,
			fmt.Errorf("frame is %dx%d, grid needs %dx%d", b.Dx(), b.Dy(), width, height))
	}
	return Map(img, width, height, ramp), nil
}
