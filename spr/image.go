package spr

// This file contains spr package's functions related to implementing
// image.Image and related interfaces. Frames are converted into
// *image.Paletted; the palette is always passed in explicitly, since a frame
// does not know which sprite it belongs to.

import (
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"
)

func init() {
	image.RegisterFormat("spr", "IDSP", DecodeImage, DecodeConfig)
}

// AlphaTestIndex is the palette index drawn as transparent in alpha-tested
// sprites.
const AlphaTestIndex = 255

// ColorPalette returns p as a 256 color palette usable with image.Paletted.
//
// Short palettes are padded with opaque black so that every byte value is a
// valid index; colors past the 256th cannot be addressed by a frame and are
// dropped. If alphaTest is set, AlphaTestIndex becomes fully transparent.
func (p Palette) ColorPalette(alphaTest bool) color.Palette {
	cp := make(color.Palette, 256)
	for i := range cp {
		if i < len(p) {
			cp[i] = color.RGBA{R: p[i].R, G: p[i].G, B: p[i].B, A: 0xFF}
		} else {
			cp[i] = color.RGBA{A: 0xFF}
		}
	}
	if alphaTest {
		cp[AlphaTestIndex] = color.RGBA{}
	}
	return cp
}

// Image returns the frame as a paletted image using colors from p. The image
// bounds start at (0, 0).
func (f *Frame) Image(p color.Palette) *image.Paletted {
	w, h := int(f.width), int(f.height)
	img := image.NewPaletted(image.Rect(0, 0, w, h), p)
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+w], f.data[y*w:(y+1)*w])
	}
	return img
}

// ColorPalette returns the sprite palette for display, with transparency
// applied for alpha-tested sprites.
func (s *Sprite) ColorPalette() color.Palette {
	return s.Palette.ColorPalette(s.TextureFormat == AlphaTest)
}

// FrameImage returns frame i as a paletted image.
func (s *Sprite) FrameImage(i int) (*image.Paletted, error) {
	if i < 0 || i >= len(s.Frames) || s.Frames[i] == nil {
		return nil, errors.Wrapf(ErrFrameIndex, "frame %d of %d", i, len(s.Frames))
	}
	return s.Frames[i].Image(s.ColorPalette()), nil
}

// DecodeConfig returns the size of the first frame, which is the image
// DecodeImage returns, and the sprite palette as color model. Only the header
// of the first frame is read; the maximum size stored in the sprite header is
// not used.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := newDecoder(r)
	if err := d.readHeader(); err != nil {
		return image.Config{}, err
	}
	if err := d.readPalette(); err != nil {
		return image.Config{}, err
	}
	if d.h.FrameCount == 0 {
		return image.Config{}, errors.Wrap(ErrFrameIndex, "sprite has no frames")
	}
	fh, err := d.readFrameHeader(0)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: d.s.ColorPalette(),
		Width:      int(fh.Width),
		Height:     int(fh.Height),
	}, nil
}

// DecodeImage decodes a sprite and returns its first frame.
func DecodeImage(r io.Reader) (image.Image, error) {
	s, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return s.FrameImage(0)
}
