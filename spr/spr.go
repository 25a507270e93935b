package spr

// This file contains code directly related to decoding and encoding the
// spr file format.

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	// Magic is "IDSP" read as a little-endian 32-bit integer.
	Magic = 'P'<<24 | 'S'<<16 | 'D'<<8 | 'I'
	// Version is the only sprite version this package reads and writes.
	Version = 2

	maxFramePixels = math.MaxInt32

	// Upper bound on how many frame pointers are allocated ahead of actually
	// reading frames; the frame count in a header is not trusted.
	maxFramePrealloc = 1024
)

// header holds everything following magic and version, up to and including
// the palette size.
type header struct {
	Type            int32
	TextureFormat   int32
	BoundingRadius  float32
	MaxWidth        int32
	MaxHeight       int32
	FrameCount      int32
	BeamLength      float32
	Synchronization int32
	PaletteSize     uint16
}

type frameHeader struct {
	Group   int32
	OriginX int32
	OriginY int32
	Width   int32
	Height  int32
}

// decoder reads a sprite in the same order the fields appear in the file.
type decoder struct {
	r io.Reader
	h header
	s *Sprite
}

func newDecoder(r io.Reader) *decoder {
	if _, ok := r.(io.ByteReader); !ok {
		r = bufio.NewReader(r)
	}
	return &decoder{r: r, s: New()}
}

func (d *decoder) readHeader() error {
	var magic uint32
	if err := binary.Read(d.r, binary.LittleEndian, &magic); err != nil {
		return readError(err, "could not read spr magic")
	}
	if magic != Magic {
		return errors.Wrapf(ErrNotASprite, "got magic %08x, want %08x", magic, Magic)
	}

	var version int32
	if err := binary.Read(d.r, binary.LittleEndian, &version); err != nil {
		return readError(err, "could not read spr version")
	}
	if version != Version {
		return errors.Wrapf(ErrUnsupportedVersion, "got version %d, want %d", version, Version)
	}

	if err := binary.Read(d.r, binary.LittleEndian, &d.h); err != nil {
		return readError(err, "could not read spr header")
	}
	if d.h.FrameCount < 0 {
		return errors.Wrapf(ErrInvalidFrameCount, "got %d", d.h.FrameCount)
	}
	glog.V(3).Infof("spr header: %+v", d.h)

	d.s.Type = Orientation(d.h.Type)
	d.s.TextureFormat = TextureFormat(d.h.TextureFormat)
	d.s.BoundingRadius = d.h.BoundingRadius
	d.s.BeamLength = d.h.BeamLength
	d.s.Synchronization = Synchronization(d.h.Synchronization)
	return nil
}

func (d *decoder) readPalette() error {
	raw := make([]byte, 3*int(d.h.PaletteSize))
	if _, err := io.ReadFull(d.r, raw); err != nil {
		return readError(err, "could not read spr palette of %d colors", d.h.PaletteSize)
	}
	pal := make(Palette, d.h.PaletteSize)
	for i := range pal {
		pal[i] = RGB{R: raw[3*i], G: raw[3*i+1], B: raw[3*i+2]}
	}
	d.s.Palette = pal
	return nil
}

func (d *decoder) readFrameHeader(idx int) (frameHeader, error) {
	var fh frameHeader
	if err := binary.Read(d.r, binary.LittleEndian, &fh); err != nil {
		return fh, readError(err, "could not read header of frame %d", idx)
	}
	if err := checkDimensions(fh.Width, fh.Height); err != nil {
		return fh, errors.Wrapf(err, "frame %d", idx)
	}
	return fh, nil
}

func (d *decoder) readFrame(idx int) (*Frame, error) {
	fh, err := d.readFrameHeader(idx)
	if err != nil {
		return nil, err
	}

	// The buffer grows while reading instead of being sized up front, so a
	// short file claiming a huge frame fails without a huge allocation.
	size := int64(fh.Width) * int64(fh.Height)
	buf := bytes.Buffer{}
	n, err := buf.ReadFrom(io.LimitReader(d.r, size))
	if err != nil {
		return nil, readError(err, "could not read pixels of frame %d", idx)
	}
	if n != size {
		return nil, errors.Wrapf(ErrTruncated, "frame %d: read %d pixels, want %d", idx, n, size)
	}

	data := buf.Bytes()
	if data == nil {
		data = []byte{}
	}
	return &Frame{
		Group:   fh.Group,
		OriginX: fh.OriginX,
		OriginY: fh.OriginY,
		width:   fh.Width,
		height:  fh.Height,
		data:    data,
	}, nil
}

func (d *decoder) readFrames() error {
	count := int(d.h.FrameCount)
	d.s.Frames = make([]*Frame, 0, min(count, maxFramePrealloc))
	for i := 0; i < count; i++ {
		f, err := d.readFrame(i)
		if err != nil {
			return err
		}
		d.s.Frames = append(d.s.Frames, f)
	}
	if w, h := d.s.MaxWidth(), d.s.MaxHeight(); w != d.h.MaxWidth || h != d.h.MaxHeight {
		glog.V(2).Infof("spr header claims max frame size %dx%d, frames are at most %dx%d", d.h.MaxWidth, d.h.MaxHeight, w, h)
	}
	return nil
}

// Decode reads a complete sprite from r.
//
// The returned error wraps one of ErrNotASprite, ErrUnsupportedVersion,
// ErrTruncated, ErrInvalidFrameCount or ErrInvalidFrameDimensions when the
// data is malformed. No sprite is returned on error.
//
// Decode may read past the end of the sprite if r is not an io.ByteReader.
func Decode(r io.Reader) (*Sprite, error) {
	d := newDecoder(r)
	if err := d.readHeader(); err != nil {
		return nil, err
	}
	if err := d.readPalette(); err != nil {
		return nil, err
	}
	if err := d.readFrames(); err != nil {
		return nil, err
	}
	return d.s, nil
}

// Encode writes s to w.
//
// Maximum frame dimensions and counts are derived from s. Encode fails with
// ErrPaletteTooLarge if the palette has more than MaxPaletteSize colors, with
// ErrTooManyFrames if the frame count does not fit the header, and with
// ErrNilFrame if any frame is nil; nothing is written in those cases.
func Encode(w io.Writer, s *Sprite) error {
	if len(s.Palette) > MaxPaletteSize {
		return errors.Wrapf(ErrPaletteTooLarge, "got %d colors, want at most %d", len(s.Palette), MaxPaletteSize)
	}
	if len(s.Frames) > math.MaxInt32 {
		return errors.Wrapf(ErrTooManyFrames, "got %d frames", len(s.Frames))
	}
	for i, f := range s.Frames {
		if f == nil {
			return errors.Wrapf(ErrNilFrame, "frame %d", i)
		}
	}

	bw := bufio.NewWriter(w)
	ident := struct {
		Magic   uint32
		Version int32
	}{Magic, Version}
	if err := binary.Write(bw, binary.LittleEndian, ident); err != nil {
		return errors.Wrap(err, "could not write spr magic")
	}
	h := header{
		Type:            int32(s.Type),
		TextureFormat:   int32(s.TextureFormat),
		BoundingRadius:  s.BoundingRadius,
		MaxWidth:        s.MaxWidth(),
		MaxHeight:       s.MaxHeight(),
		FrameCount:      int32(len(s.Frames)),
		BeamLength:      s.BeamLength,
		Synchronization: int32(s.Synchronization),
		PaletteSize:     uint16(len(s.Palette)),
	}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "could not write spr header")
	}

	raw := make([]byte, 0, 3*len(s.Palette))
	for _, c := range s.Palette {
		raw = append(raw, c.R, c.G, c.B)
	}
	if _, err := bw.Write(raw); err != nil {
		return errors.Wrap(err, "could not write spr palette")
	}

	for i, f := range s.Frames {
		fh := frameHeader{
			Group:   f.Group,
			OriginX: f.OriginX,
			OriginY: f.OriginY,
			Width:   f.width,
			Height:  f.height,
		}
		if err := binary.Write(bw, binary.LittleEndian, &fh); err != nil {
			return errors.Wrapf(err, "could not write header of frame %d", i)
		}
		if _, err := bw.Write(f.data); err != nil {
			return errors.Wrapf(err, "could not write pixels of frame %d", i)
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "could not flush spr")
	}
	return nil
}
