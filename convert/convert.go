// Package convert turns ordinary images into GoldSrc sprites and back.
//
// Sprites built by FromImages share a single palette computed over all
// frames, as the format requires.
package convert

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-goldsrc/spr"
)

// ErrNoFrames is returned when there is nothing to convert.
var ErrNoFrames = errors.New("convert: no frames")

// AlphaTestColor is the color stored at spr.AlphaTestIndex in alpha-tested
// sprites built by FromImages. The engine never draws it.
var AlphaTestColor = spr.RGB{R: 0, G: 0, B: 0xFF}

// Options control how FromImages builds a sprite.
type Options struct {
	// MaxSize, if non-zero, shrinks frames larger than MaxSize in either
	// dimension to fit, preserving aspect ratio.
	MaxSize uint
	// AlphaTest reserves palette index 255 for pixels with less than half
	// opacity and marks the sprite as alpha-tested.
	AlphaTest bool
	// Dither enables Floyd-Steinberg error diffusion when mapping pixels to
	// the palette.
	Dither bool
}

// FromImages builds a sprite with one frame per image.
//
// Frames are centered on the sprite origin and the bounding radius is
// computed; header fields other than the texture format are left at their
// defaults.
func FromImages(imgs []image.Image, opts Options) (*spr.Sprite, error) {
	if len(imgs) == 0 {
		return nil, ErrNoFrames
	}

	frames := make([]image.Image, len(imgs))
	for i, img := range imgs {
		if img == nil {
			return nil, errors.Errorf("convert: image %d is nil", i)
		}
		size := img.Bounds().Size()
		if opts.MaxSize > 0 && (uint(size.X) > opts.MaxSize || uint(size.Y) > opts.MaxSize) {
			img = resize.Thumbnail(opts.MaxSize, opts.MaxSize, img, resize.Lanczos3)
			glog.V(2).Infof("frame %d resized from %v to %v", i, size, img.Bounds().Size())
		}
		frames[i] = img
	}

	colors := 256
	if opts.AlphaTest {
		colors = 255
	}
	qp := quantizePalette(frames, colors)
	glog.V(1).Infof("quantized %d frames to %d colors", len(frames), len(qp))

	s := spr.New()
	s.Palette = make(spr.Palette, len(qp))
	for i, c := range qp {
		s.Palette[i] = toRGB(c)
	}
	if opts.AlphaTest {
		s.TextureFormat = spr.AlphaTest
		for len(s.Palette) < spr.AlphaTestIndex {
			s.Palette = append(s.Palette, spr.RGB{})
		}
		s.Palette = append(s.Palette, AlphaTestColor)
	}

	var drawer draw.Drawer = draw.Src
	if opts.Dither {
		drawer = draw.FloydSteinberg
	}
	for i, img := range frames {
		b := img.Bounds()
		dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), qp)
		drawer.Draw(dst, dst.Bounds(), img, b.Min)
		if opts.AlphaTest {
			for y := 0; y < b.Dy(); y++ {
				for x := 0; x < b.Dx(); x++ {
					if transparent(img.At(b.Min.X+x, b.Min.Y+y)) {
						dst.SetColorIndex(x, y, spr.AlphaTestIndex)
					}
				}
			}
		}

		f, err := s.AddFrame(int32(b.Dx()), int32(b.Dy()))
		if err != nil {
			return nil, errors.Wrapf(err, "adding frame %d", i)
		}
		if err := f.SetData(dst.Pix); err != nil {
			return nil, errors.Wrapf(err, "filling frame %d", i)
		}
		f.OriginX = -f.Width() / 2
		f.OriginY = f.Height() / 2
	}
	s.RecalculateBoundingRadius()
	return s, nil
}

func transparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a < 0x8000
}

func toRGB(c color.Color) spr.RGB {
	r, g, b, _ := c.RGBA()
	return spr.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// quantizePalette computes a palette of at most n colors over all frames.
// Frames are stacked into one image so that the median cut sees every pixel
// at once; pixels with less than half opacity do not contribute.
func quantizePalette(frames []image.Image, n int) color.Palette {
	var w, h int
	for _, f := range frames {
		size := f.Bounds().Size()
		if size.X > w {
			w = size.X
		}
		h += size.Y
	}
	sheet := image.NewNRGBA(image.Rect(0, 0, w, h))
	y := 0
	for _, f := range frames {
		b := f.Bounds()
		draw.Draw(sheet, image.Rect(0, y, b.Dx(), y+b.Dy()), f, b.Min, draw.Src)
		y += b.Dy()
	}

	q := quantize.MedianCutQuantizer{
		Weighting: func(img image.Image, x, y int) uint32 {
			if transparent(img.At(x, y)) {
				return 0
			}
			return 1
		},
	}
	p := q.Quantize(make(color.Palette, 0, n), sheet)

	// The quantizer keeps alpha; sprite palettes are opaque.
	for i, c := range p {
		rgb := toRGB(c)
		p[i] = color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xFF}
	}
	if len(p) == 0 {
		p = color.Palette{color.RGBA{A: 0xFF}}
	}
	return p
}
