package manifest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"

	"badc0de.net/pkg/go-goldsrc/convert"
	"badc0de.net/pkg/go-goldsrc/spr"
	"badc0de.net/pkg/go-goldsrc/ttesting"
)

const testManifest = `
type = "oriented"
texture_format = "additive"
synchronization = "random"
beam_length = 1.5
max_size = 32

[[frame]]
image = "a.png"
group = 1
origin_x = -7
origin_y = 3

[[frame]]
image = "sub/b.png"
`

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %s", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %s", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to write %s: %s", path, err)
	}
}

func TestDecode(t *testing.T) {
	m, err := Decode(strings.NewReader(testManifest), "/sprites")
	if err != nil {
		t.Fatalf("failed to decode manifest: %s", err)
	}
	ttesting.AssertEqualInt32(t, "type", int32(m.Type), int32(spr.Oriented))
	ttesting.AssertEqualInt32(t, "texture format", int32(m.TextureFormat), int32(spr.Additive))
	ttesting.AssertEqualInt32(t, "synchronization", int32(m.Synchronization), int32(spr.Random))
	ttesting.AssertEqualFloat32(t, "beam length", m.BeamLength, 1.5)
	ttesting.AssertEqualInt(t, "max size", int(m.MaxSize), 32)
	ttesting.AssertEqualInt(t, "frame count", len(m.Frames), 2)
	ttesting.AssertEqualInt32(t, "group", m.Frames[0].Group, 1)
	if m.Frames[0].OriginX == nil || *m.Frames[0].OriginX != -7 {
		t.Errorf("origin x: got %v; want -7", m.Frames[0].OriginX)
	}
	if m.Frames[1].OriginX != nil {
		t.Errorf("origin x of second frame: got %d; want unset", *m.Frames[1].OriginX)
	}
	if got, want := m.imagePath(m.Frames[1]), filepath.Join("/sprites", "sub", "b.png"); got != want {
		t.Errorf("image path: got %q; want %q", got, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name, manifest string
	}{
		{"unknown key", "typo = 1\n[[frame]]\nimage = \"a.png\"\n"},
		{"unknown enum name", "type = \"sideways\"\n[[frame]]\nimage = \"a.png\"\n"},
		{"no frames", "type = \"parallel\"\n"},
		{"frame without image", "[[frame]]\ngroup = 2\n"},
		{"not toml", "[[frame"},
	}
	for _, tt := range tests {
		if _, err := Decode(strings.NewReader(tt.manifest), "."); err == nil {
			t.Errorf("%s: manifest accepted", tt.name)
		}
	}

	_, err := Decode(strings.NewReader("type = \"parallel\"\n"), ".")
	ttesting.AssertErrorIs(t, "no frames is ErrNoFrames", err, convert.ErrNoFrames)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 8, 4, color.NRGBA{255, 0, 0, 255})
	writePNG(t, filepath.Join(dir, "sub", "b.png"), 64, 64, color.NRGBA{0, 255, 0, 255})
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(testManifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %s", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load manifest: %s", err)
	}
	s, err := m.Build()
	if err != nil {
		t.Fatalf("failed to build sprite: %s", err)
	}
	ttesting.AssertEqualInt32(t, "type", int32(s.Type), int32(spr.Oriented))
	ttesting.AssertEqualInt32(t, "texture format", int32(s.TextureFormat), int32(spr.Additive))
	ttesting.AssertEqualFloat32(t, "beam length", s.BeamLength, 1.5)
	ttesting.AssertEqualInt(t, "frame count", len(s.Frames), 2)

	a, b := s.Frames[0], s.Frames[1]
	ttesting.AssertEqualInt32(t, "explicit origin x", a.OriginX, -7)
	ttesting.AssertEqualInt32(t, "explicit origin y", a.OriginY, 3)
	ttesting.AssertEqualInt32(t, "group", a.Group, 1)
	ttesting.AssertEqualInt32(t, "resized width", b.Width(), 32)
	ttesting.AssertEqualInt32(t, "centered origin x", b.OriginX, -16)
	ttesting.AssertEqualInt32(t, "centered origin y", b.OriginY, 16)
	ttesting.AssertEqualFloat32(t, "bounding radius", s.BoundingRadius, math32.Sqrt(512))
}

func TestBuildMissingImage(t *testing.T) {
	m, err := Decode(strings.NewReader(testManifest), t.TempDir())
	if err != nil {
		t.Fatalf("failed to decode manifest: %s", err)
	}
	_, err = m.Build()
	ttesting.AssertErrorIs(t, "missing image", err, os.ErrNotExist)
}

func TestFromSpriteRoundTrip(t *testing.T) {
	s := spr.New()
	s.Type = spr.Orientation(42)
	s.TextureFormat = spr.IndexAlpha
	f, _ := s.AddFrame(2, 2)
	f.Group, f.OriginX, f.OriginY = 3, -1, 1

	if _, err := FromSprite(s, nil); err == nil {
		t.Errorf("mismatched frame paths accepted")
	}
	m, err := FromSprite(s, []string{filepath.Join("frames", "000.png")})
	if err != nil {
		t.Fatalf("failed to describe sprite: %s", err)
	}
	buf := &bytes.Buffer{}
	if err := m.Encode(buf); err != nil {
		t.Fatalf("failed to encode manifest: %s", err)
	}

	got, err := Decode(buf, ".")
	if err != nil {
		t.Fatalf("failed to decode written manifest: %s\n%s", err, buf.String())
	}
	ttesting.AssertEqualInt32(t, "raw type", int32(got.Type), 42)
	ttesting.AssertEqualInt32(t, "texture format", int32(got.TextureFormat), int32(spr.IndexAlpha))
	if got.Frames[0].Image != "frames/000.png" {
		t.Errorf("image: got %q; want %q", got.Frames[0].Image, "frames/000.png")
	}
	if got.Frames[0].OriginY == nil || *got.Frames[0].OriginY != 1 {
		t.Errorf("origin y: got %v; want 1", got.Frames[0].OriginY)
	}
}
