// Package imageprint prints sprite frames and other images on a terminal.
//
// Images can be drawn with colored character cells (24-bit or 256 color
// escapes, or no color at all), or passed to the terminal as real images
// using the iTerm2, kitty or sixel protocols.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"os"

	"github.com/bradfitz/iter"
	"github.com/gookit/color"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-goldsrc/spr"
)

// Mode selects how a Printer draws.
type Mode int

const (
	Mode24Bit    Mode = iota // background color escapes, 24-bit
	Mode256Color             // nearest 256 color palette entry
	ModeNoColor              // characters only; only useful without Blanks
	ModeITerm                // iTerm2 inline image escape
	ModeRasTerm              // kitty, iTerm2 or sixel, whichever the terminal supports
)

// Printer draws images to Out, two character cells per pixel.
type Printer struct {
	Out  io.Writer
	Mode Mode
	// Blanks draws colored blanks instead of an ascii ramp by brightness.
	Blanks bool
}

// NewPrinter returns a printer writing to standard output.
func NewPrinter(mode Mode, blanks bool) *Printer {
	return &Printer{Out: os.Stdout, Mode: mode, Blanks: blanks}
}

func (p *Printer) glyph(r, g, b uint32) string {
	if p.Blanks {
		return "  "
	}
	a := ((r + g + b) / 3) >> 8
	switch {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

// shade returns one pixel worth of output.
func (p *Printer) shade(col ic.Color) string {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if p.Mode == ModeNoColor {
			return "  "
		}
		return "\x1b[0m  "
	}
	s := p.glyph(cR, cG, cB)
	r, g, b := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)
	switch p.Mode {
	case Mode24Bit:
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
	case Mode256Color:
		return color.RGB(r, g, b, true).Sprint(s)
	default:
		return s
	}
}

func (p *Printer) printCells(i image.Image) error {
	b := i.Bounds()
	buf := &bytes.Buffer{}
	for y := range iter.N(b.Dy()) {
		for x := range iter.N(b.Dx()) {
			buf.WriteString(p.shade(i.At(b.Min.X+x, b.Min.Y+y)))
		}
		if p.Mode != ModeNoColor {
			buf.WriteString("\x1b[0m")
		}
		buf.WriteString("\n")
	}
	_, err := p.Out.Write(buf.Bytes())
	return err
}

// printITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func (p *Printer) printITerm(i image.Image, fn string) error {
	if !isTermItermWez() {
		return errors.New("imageprint: terminal does not support iTerm2 images")
	}
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, i); err != nil {
		return errors.Wrap(err, "encoding png for iterm")
	}
	bEnc.Close()
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	_, err := fmt.Fprintf(p.Out, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Dx(), i.Bounds().Dy(), b.String())
	return err
}

// Print draws i according to the printer mode.
func (p *Printer) Print(i image.Image) error {
	switch p.Mode {
	case ModeITerm:
		return p.printITerm(i, "image.png")
	case ModeRasTerm:
		return p.printRasTerm(i)
	default:
		return p.printCells(i)
	}
}

// PrintFrame draws frame idx of s. Alpha-tested pixels are left blank.
func (p *Printer) PrintFrame(s *spr.Sprite, idx int) error {
	img, err := s.FrameImage(idx)
	if err != nil {
		return err
	}
	if p.Mode == ModeITerm {
		return p.printITerm(img, fmt.Sprintf("frame%03d.png", idx))
	}
	return p.Print(img)
}
