// Package manifest reads and writes TOML files describing how to build a
// sprite out of ordinary image files.
//
// A manifest looks like this:
//
//	type = "parallel"
//	texture_format = "alpha_test"
//	synchronization = "random"
//	beam_length = 0.0
//	dither = true
//	max_size = 128
//
//	[[frame]]
//	image = "frames/000.png"
//	group = 0
//	origin_x = -16
//	origin_y = 16
//
// Image paths are relative to the directory holding the manifest. Origins are
// optional; frames without them are centered.
package manifest

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-goldsrc/convert"
	"badc0de.net/pkg/go-goldsrc/spr"
)

// FileName is the name sprtool uses for manifests it writes.
const FileName = "sprite.toml"

// Manifest describes the header of a sprite and the images to build its
// frames from.
type Manifest struct {
	Type            spr.Orientation     `toml:"type"`
	TextureFormat   spr.TextureFormat   `toml:"texture_format"`
	Synchronization spr.Synchronization `toml:"synchronization"`
	BeamLength      float32             `toml:"beam_length"`
	Dither          bool                `toml:"dither,omitempty"`
	MaxSize         uint                `toml:"max_size,omitempty"`

	Frames []Frame `toml:"frame"`

	// Dir is the directory image paths are relative to.
	Dir string `toml:"-"`
}

// Frame describes one frame.
type Frame struct {
	Image   string `toml:"image"`
	Group   int32  `toml:"group"`
	OriginX *int32 `toml:"origin_x,omitempty"`
	OriginY *int32 `toml:"origin_y,omitempty"`
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening manifest")
	}
	defer f.Close()

	m, err := Decode(f, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return m, nil
}

// Decode reads a manifest from r. Image paths will be resolved relative to
// dir. Unknown keys are an error.
func Decode(r io.Reader, dir string) (*Manifest, error) {
	m := &Manifest{Dir: dir}
	md, err := toml.NewDecoder(r).Decode(m)
	if err != nil {
		return nil, errors.Wrap(err, "decoding manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("unknown manifest keys: %s", strings.Join(keys, ", "))
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) validate() error {
	if len(m.Frames) == 0 {
		return errors.Wrap(convert.ErrNoFrames, "manifest lists no frames")
	}
	for i, f := range m.Frames {
		if f.Image == "" {
			return errors.Errorf("frame %d has no image", i)
		}
	}
	return nil
}

// Encode writes m to w.
func (m *Manifest) Encode(w io.Writer) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(m), "encoding manifest")
}

func (m *Manifest) imagePath(f Frame) string {
	if filepath.IsAbs(f.Image) {
		return f.Image
	}
	return filepath.Join(m.Dir, filepath.FromSlash(f.Image))
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening frame image")
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	glog.V(2).Infof("loaded %s frame %s: %v", format, path, img.Bounds())
	return img, nil
}

// Build loads all frame images and returns the sprite they make up.
func (m *Manifest) Build() (*spr.Sprite, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	imgs := make([]image.Image, len(m.Frames))
	for i, f := range m.Frames {
		img, err := loadImage(m.imagePath(f))
		if err != nil {
			return nil, errors.Wrapf(err, "frame %d", i)
		}
		imgs[i] = img
	}

	s, err := convert.FromImages(imgs, convert.Options{
		MaxSize:   m.MaxSize,
		AlphaTest: m.TextureFormat == spr.AlphaTest,
		Dither:    m.Dither,
	})
	if err != nil {
		return nil, err
	}
	s.Type = m.Type
	s.TextureFormat = m.TextureFormat
	s.Synchronization = m.Synchronization
	s.BeamLength = m.BeamLength
	for i, f := range m.Frames {
		s.Frames[i].Group = f.Group
		if f.OriginX != nil {
			s.Frames[i].OriginX = *f.OriginX
		}
		if f.OriginY != nil {
			s.Frames[i].OriginY = *f.OriginY
		}
	}
	return s, nil
}

// FromSprite returns a manifest describing s, given where each of its frames
// was stored. Paths are recorded as given, with forward slashes.
func FromSprite(s *spr.Sprite, framePaths []string) (*Manifest, error) {
	if len(framePaths) != len(s.Frames) {
		return nil, errors.Errorf("got %d frame paths for %d frames", len(framePaths), len(s.Frames))
	}
	m := &Manifest{
		Type:            s.Type,
		TextureFormat:   s.TextureFormat,
		Synchronization: s.Synchronization,
		BeamLength:      s.BeamLength,
		Frames:          make([]Frame, len(s.Frames)),
	}
	for i, f := range s.Frames {
		x, y := f.OriginX, f.OriginY
		m.Frames[i] = Frame{
			Image:   filepath.ToSlash(framePaths[i]),
			Group:   f.Group,
			OriginX: &x,
			OriginY: &y,
		}
	}
	return m, nil
}
