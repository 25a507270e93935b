package convert

import (
	"image"
	"image/gif"
	"image/png"
	"io"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-goldsrc/spr"
)

// WritePNG writes frame i of s as a PNG image.
func WritePNG(w io.Writer, s *spr.Sprite, i int) error {
	img, err := s.FrameImage(i)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return errors.Wrapf(err, "encoding frame %d as png", i)
	}
	return nil
}

// AnimationFrames returns all frames of s drawn onto canvases of equal size,
// each frame placed at its origin. Pixels not covered by a frame use the
// transparent index for alpha-tested sprites and index 0 otherwise.
func AnimationFrames(s *spr.Sprite) ([]*image.Paletted, error) {
	if len(s.Frames) == 0 {
		return nil, ErrNoFrames
	}
	bounds := s.Bounds()
	pal := s.ColorPalette()
	var background uint8
	if s.TextureFormat == spr.AlphaTest {
		background = spr.AlphaTestIndex
	}

	out := make([]*image.Paletted, len(s.Frames))
	for i, f := range s.Frames {
		if f == nil {
			return nil, errors.Wrapf(spr.ErrNilFrame, "frame %d", i)
		}
		canvas := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), pal)
		for p := range canvas.Pix {
			canvas.Pix[p] = background
		}
		// Indices are copied as they are; drawing through colors would
		// remap palettes with repeated entries.
		at, w := f.Rect().Min.Sub(bounds.Min), int(f.Width())
		for y := 0; w > 0 && y < int(f.Height()); y++ {
			off := canvas.PixOffset(at.X, at.Y+y)
			copy(canvas.Pix[off:off+w], f.Data()[y*w:(y+1)*w])
		}
		out[i] = canvas
	}
	return out, nil
}

// WriteGIF writes s as an animated GIF looping forever, showing each frame
// for delay hundredths of a second.
func WriteGIF(w io.Writer, s *spr.Sprite, delay int) error {
	if s.Bounds().Empty() {
		return errors.Wrap(ErrNoFrames, "all frames are empty")
	}
	frames, err := AnimationFrames(s)
	if err != nil {
		return err
	}
	anim := &gif.GIF{
		Image:    frames,
		Delay:    make([]int, len(frames)),
		Disposal: make([]byte, len(frames)),
	}
	for i := range frames {
		anim.Delay[i] = delay
		anim.Disposal[i] = gif.DisposalBackground
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return errors.Wrap(err, "encoding gif")
	}
	return nil
}
