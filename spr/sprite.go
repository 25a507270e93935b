package spr

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// MaxPaletteSize is the largest palette the 16-bit palette size field in the
// file header can describe.
const MaxPaletteSize = 0xFFFF

// RGB is a single palette entry. Sprite palettes carry no alpha; RGB
// implements color.Color as a fully opaque color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// Palette is the color table shared by all frames of a sprite. A frame pixel
// is an index into it.
type Palette []RGB

// Sprite is a complete sprite asset: header fields, one palette and the
// frames in display order.
type Sprite struct {
	Type            Orientation
	TextureFormat   TextureFormat
	BoundingRadius  float32
	BeamLength      float32
	Synchronization Synchronization

	Palette Palette
	Frames  []*Frame
}

// New returns an empty sprite: a parallel upright, normal, synchronized
// sprite without palette or frames.
func New() *Sprite {
	return &Sprite{
		Palette: Palette{},
		Frames:  []*Frame{},
	}
}

// AddFrame appends a new frame of the given size, with all pixels set to
// palette index 0, and returns it.
//
// The bounding radius is not updated.
func (s *Sprite) AddFrame(width, height int32) (*Frame, error) {
	f, err := NewFrame(width, height)
	if err != nil {
		return nil, err
	}
	s.Frames = append(s.Frames, f)
	return f, nil
}

// MaxWidth returns the width of the widest frame, or 0 if there are no
// frames.
func (s *Sprite) MaxWidth() int32 {
	var w int32
	for _, f := range s.Frames {
		if f != nil && f.width > w {
			w = f.width
		}
	}
	return w
}

// MaxHeight returns the height of the tallest frame, or 0 if there are no
// frames.
func (s *Sprite) MaxHeight() int32 {
	var h int32
	for _, f := range s.Frames {
		if f != nil && f.height > h {
			h = f.height
		}
	}
	return h
}

// RecalculateBoundingRadius sets BoundingRadius from the largest frame
// dimensions. Both dimensions are halved as integers before the radius is
// computed, which is what the engine expects.
//
// This should be called before saving a sprite whose frames were added or
// replaced.
func (s *Sprite) RecalculateBoundingRadius() {
	hw := int64(s.MaxWidth() >> 1)
	hh := int64(s.MaxHeight() >> 1)
	s.BoundingRadius = math32.Sqrt(float32(hw*hw + hh*hh))
}

// Bounds returns the union of all frame rectangles, each placed at its
// origin (see Frame.Rect). It is empty if there are no frames.
func (s *Sprite) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, f := range s.Frames {
		if f != nil {
			r = r.Union(f.Rect())
		}
	}
	return r
}

// Frame is a single image of a sprite. Each pixel is one byte, an index into
// the palette of the sprite the frame belongs to.
//
// Frame dimensions are fixed when the frame is created.
type Frame struct {
	Group   int32
	OriginX int32
	OriginY int32

	width  int32
	height int32
	data   []byte
}

// NewFrame returns a frame of the given size with all pixels set to palette
// index 0. Zero-sized frames are allowed.
func NewFrame(width, height int32) (*Frame, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &Frame{
		width:  width,
		height: height,
		data:   make([]byte, int(width)*int(height)),
	}, nil
}

func checkDimensions(width, height int32) error {
	if width < 0 || height < 0 {
		return errors.Wrapf(ErrInvalidFrameDimensions, "got %dx%d", width, height)
	}
	if int64(width)*int64(height) > maxFramePixels {
		return errors.Wrapf(ErrInvalidFrameDimensions, "%dx%d exceeds %d pixels", width, height, maxFramePixels)
	}
	return nil
}

// Width returns the frame width, which is also the row stride of Data.
func (f *Frame) Width() int32 { return f.width }

// Height returns the frame height.
func (f *Frame) Height() int32 { return f.height }

// Data returns the pixels of the frame, row by row from the top. The slice
// aliases the frame, so pixels may be changed through it.
func (f *Frame) Data() []byte { return f.data }

// SetData copies b into the frame. b must hold exactly Width*Height bytes.
func (f *Frame) SetData(b []byte) error {
	if len(b) != len(f.data) {
		return errors.Wrapf(ErrFrameDataSize, "got %d bytes, want %d for %dx%d", len(b), len(f.data), f.width, f.height)
	}
	copy(f.data, b)
	return nil
}

// Index returns the palette index of the pixel at (x, y). It panics if the
// pixel is outside of the frame.
func (f *Frame) Index(x, y int) uint8 {
	return f.data[f.offset(x, y)]
}

// SetIndex sets the palette index of the pixel at (x, y). It panics if the
// pixel is outside of the frame.
func (f *Frame) SetIndex(x, y int, idx uint8) {
	f.data[f.offset(x, y)] = idx
}

func (f *Frame) offset(x, y int) int {
	if x < 0 || y < 0 || x >= int(f.width) || y >= int(f.height) {
		panic(errors.Errorf("spr: pixel (%d,%d) outside of %dx%d frame", x, y, f.width, f.height))
	}
	return y*int(f.width) + x
}

// Rect returns the frame rectangle in sprite space. The origin is the
// position of the top left pixel relative to the sprite center, with Y
// pointing up as in the engine, so the rectangle starts at
// (OriginX, -OriginY).
func (f *Frame) Rect() image.Rectangle {
	x, y := int(f.OriginX), -int(f.OriginY)
	return image.Rect(x, y, x+int(f.width), y+int(f.height))
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := *f
	c.data = append([]byte(nil), f.data...)
	return &c
}
