package spr

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-goldsrc/ttesting"
)

// testSprite returns a sprite with a small palette and two frames of sizes
// 10x20 and 30x5, filled with a recognizable pattern.
func testSprite(t *testing.T) *Sprite {
	t.Helper()
	s := New()
	s.Type = Oriented
	s.TextureFormat = AlphaTest
	s.BoundingRadius = 12.5
	s.BeamLength = 3.25
	s.Synchronization = Random
	s.Palette = Palette{{0, 0, 0}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255}}

	for i, size := range [][2]int32{{10, 20}, {30, 5}} {
		f, err := s.AddFrame(size[0], size[1])
		if err != nil {
			t.Fatalf("failed to add frame %d: %s", i, err)
		}
		f.Group = int32(i)
		f.OriginX = -size[0] / 2
		f.OriginY = size[1] / 2
		for p := range f.Data() {
			f.Data()[p] = byte((p + i) % len(s.Palette))
		}
	}
	return s
}

func encodeSprite(t *testing.T, s *Sprite) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := Encode(buf, s); err != nil {
		t.Fatalf("failed to encode sprite: %s", err)
	}
	return buf.Bytes()
}

func assertSpritesEqual(t *testing.T, got, want *Sprite) {
	t.Helper()
	ttesting.AssertEqualInt32(t, "type", int32(got.Type), int32(want.Type))
	ttesting.AssertEqualInt32(t, "texture format", int32(got.TextureFormat), int32(want.TextureFormat))
	ttesting.AssertEqualFloat32(t, "bounding radius", got.BoundingRadius, want.BoundingRadius)
	ttesting.AssertEqualFloat32(t, "beam length", got.BeamLength, want.BeamLength)
	ttesting.AssertEqualInt32(t, "synchronization", int32(got.Synchronization), int32(want.Synchronization))

	ttesting.AssertEqualInt(t, "palette size", len(got.Palette), len(want.Palette))
	for i := range want.Palette {
		if i < len(got.Palette) && got.Palette[i] != want.Palette[i] {
			t.Errorf("palette entry %d: got %v; want %v", i, got.Palette[i], want.Palette[i])
		}
	}

	ttesting.AssertEqualInt(t, "frame count", len(got.Frames), len(want.Frames))
	for i := range want.Frames {
		if i >= len(got.Frames) {
			break
		}
		g, w := got.Frames[i], want.Frames[i]
		ttesting.AssertEqualInt32(t, fmt.Sprintf("frame %d group", i), g.Group, w.Group)
		ttesting.AssertEqualInt32(t, fmt.Sprintf("frame %d origin x", i), g.OriginX, w.OriginX)
		ttesting.AssertEqualInt32(t, fmt.Sprintf("frame %d origin y", i), g.OriginY, w.OriginY)
		ttesting.AssertEqualInt32(t, fmt.Sprintf("frame %d width", i), g.Width(), w.Width())
		ttesting.AssertEqualInt32(t, fmt.Sprintf("frame %d height", i), g.Height(), w.Height())
		ttesting.AssertEqualBytes(t, fmt.Sprintf("frame %d data", i), g.Data(), w.Data())
	}
}

// rawSprite builds sprite bytes field by field, bypassing Encode.
func rawSprite(t *testing.T, magic uint32, version int32, h header, fields ...interface{}) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	for _, v := range append([]interface{}{magic, version, h}, fields...) {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("failed to build test data: %s", err)
		}
	}
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	want := testSprite(t)
	got, err := Decode(bytes.NewReader(encodeSprite(t, want)))
	if err != nil {
		t.Fatalf("failed to decode sprite: %s", err)
	}
	assertSpritesEqual(t, got, want)
}

func TestRoundTripUnknownEnums(t *testing.T) {
	want := testSprite(t)
	want.Type = Orientation(17)
	want.TextureFormat = TextureFormat(-3)
	want.Synchronization = Synchronization(1 << 20)

	got, err := Decode(bytes.NewReader(encodeSprite(t, want)))
	if err != nil {
		t.Fatalf("failed to decode sprite: %s", err)
	}
	assertSpritesEqual(t, got, want)
	if got.Type.Valid() || got.TextureFormat.Valid() || got.Synchronization.Valid() {
		t.Errorf("unknown enum values reported as valid: %v %v %v", got.Type, got.TextureFormat, got.Synchronization)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	got, err := Decode(bytes.NewReader(encodeSprite(t, New())))
	if err != nil {
		t.Fatalf("failed to decode sprite: %s", err)
	}
	ttesting.AssertEqualInt(t, "frame count", len(got.Frames), 0)
	ttesting.AssertEqualInt(t, "palette size", len(got.Palette), 0)
}

func TestRoundTripZeroSizedFrame(t *testing.T) {
	want := New()
	if _, err := want.AddFrame(0, 7); err != nil {
		t.Fatalf("failed to add frame: %s", err)
	}
	got, err := Decode(bytes.NewReader(encodeSprite(t, want)))
	if err != nil {
		t.Fatalf("failed to decode sprite: %s", err)
	}
	assertSpritesEqual(t, got, want)
}

func TestEncodeLayout(t *testing.T) {
	s := New()
	s.TextureFormat = Additive
	s.Palette = Palette{{1, 2, 3}}
	f, _ := s.AddFrame(2, 1)
	f.Group, f.OriginX, f.OriginY = 7, -1, 1
	f.Data()[1] = 9

	want := rawSprite(t, 0x50534449, 2, header{
		TextureFormat: 1,
		MaxWidth:      2,
		MaxHeight:     1,
		FrameCount:    1,
		PaletteSize:   1,
	}, []byte{1, 2, 3}, frameHeader{7, -1, 1, 2, 1}, []byte{0, 9})

	ttesting.AssertEqualBytes(t, "encoded sprite", encodeSprite(t, s), want)
	ttesting.AssertEqualBytes(t, "magic", want[:4], []byte("IDSP"))
}

func TestEncodeDerivesMaxDimensions(t *testing.T) {
	b := encodeSprite(t, testSprite(t))
	var maxSize [2]int32
	if err := binary.Read(bytes.NewReader(b[20:28]), binary.LittleEndian, &maxSize); err != nil {
		t.Fatalf("failed to read max size: %s", err)
	}
	ttesting.AssertEqualInt32(t, "max width", maxSize[0], 30)
	ttesting.AssertEqualInt32(t, "max height", maxSize[1], 20)
}

func TestDecodeIgnoresStoredMaxDimensions(t *testing.T) {
	b := rawSprite(t, Magic, Version, header{MaxWidth: 512, MaxHeight: 512, FrameCount: 1},
		frameHeader{Width: 1, Height: 1}, []byte{0})
	s, err := Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("failed to decode sprite: %s", err)
	}
	ttesting.AssertEqualInt32(t, "max width", s.MaxWidth(), 1)
	ttesting.AssertEqualInt32(t, "max height", s.MaxHeight(), 1)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "bad magic",
			data: rawSprite(t, 0x50534448, Version, header{}),
			want: ErrNotASprite,
		},
		{
			name: "bad magic in short stream",
			data: []byte("IDSQ"),
			want: ErrNotASprite,
		},
		{
			name: "quake sprite version",
			data: rawSprite(t, Magic, 1, header{}),
			want: ErrUnsupportedVersion,
		},
		{
			name: "future version",
			data: rawSprite(t, Magic, 3, header{}),
			want: ErrUnsupportedVersion,
		},
		{
			name: "negative frame count",
			data: rawSprite(t, Magic, Version, header{FrameCount: -1}),
			want: ErrInvalidFrameCount,
		},
		{
			name: "negative width",
			data: rawSprite(t, Magic, Version, header{FrameCount: 1}, frameHeader{Width: -1, Height: 4}),
			want: ErrInvalidFrameDimensions,
		},
		{
			name: "negative height",
			data: rawSprite(t, Magic, Version, header{FrameCount: 1}, frameHeader{Width: 4, Height: -4}),
			want: ErrInvalidFrameDimensions,
		},
		{
			name: "oversized frame",
			data: rawSprite(t, Magic, Version, header{FrameCount: 1}, frameHeader{Width: 1 << 16, Height: 1 << 16}),
			want: ErrInvalidFrameDimensions,
		},
		{
			name: "large frame without pixels",
			data: rawSprite(t, Magic, Version, header{FrameCount: 1}, frameHeader{Width: 40000, Height: 40000}),
			want: ErrTruncated,
		},
		{
			name: "more frames than data",
			data: rawSprite(t, Magic, Version, header{FrameCount: 1 << 30}),
			want: ErrTruncated,
		},
		{
			name: "palette without colors",
			data: rawSprite(t, Magic, Version, header{PaletteSize: 0xFFFF}),
			want: ErrTruncated,
		},
	}
	for _, tt := range tests {
		s, err := Decode(bytes.NewReader(tt.data))
		ttesting.AssertErrorIs(t, tt.name, err, tt.want)
		if s != nil {
			t.Errorf("%s: got a sprite along with error %v", tt.name, err)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	b := encodeSprite(t, testSprite(t))
	for n := 0; n < len(b); n++ {
		s, err := Decode(bytes.NewReader(b[:n]))
		if s != nil || err == nil {
			t.Fatalf("decoding %d of %d bytes succeeded", n, len(b))
		}
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("decoding %d of %d bytes: got %v; want %v", n, len(b), err, ErrTruncated)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestDecodeReadError(t *testing.T) {
	_, err := Decode(failingReader{})
	ttesting.AssertErrorIs(t, "underlying error kept", err, io.ErrClosedPipe)
	if errors.Is(err, ErrTruncated) {
		t.Errorf("read error reported as truncation: %v", err)
	}
}

func TestEncodePaletteSize(t *testing.T) {
	s := New()
	s.Palette = make(Palette, MaxPaletteSize)
	if err := Encode(io.Discard, s); err != nil {
		t.Errorf("failed to encode %d colors: %s", len(s.Palette), err)
	}

	s.Palette = make(Palette, MaxPaletteSize+1)
	buf := &bytes.Buffer{}
	ttesting.AssertErrorIs(t, "one color too many", Encode(buf, s), ErrPaletteTooLarge)
	ttesting.AssertEqualInt(t, "nothing written", buf.Len(), 0)
}

func TestEncodeMaxPaletteRoundTrip(t *testing.T) {
	want := New()
	want.Palette = make(Palette, MaxPaletteSize)
	for i := range want.Palette {
		want.Palette[i] = RGB{uint8(i), uint8(i >> 8), uint8(i * 7)}
	}
	got, err := Decode(bytes.NewReader(encodeSprite(t, want)))
	if err != nil {
		t.Fatalf("failed to decode sprite: %s", err)
	}
	assertSpritesEqual(t, got, want)
}

func TestEncodeNilFrame(t *testing.T) {
	s := testSprite(t)
	s.Frames = append(s.Frames, nil)
	buf := &bytes.Buffer{}
	ttesting.AssertErrorIs(t, "nil frame", Encode(buf, s), ErrNilFrame)
	ttesting.AssertEqualInt(t, "nothing written", buf.Len(), 0)
}
