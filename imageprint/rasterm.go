//go:build !windows

package imageprint

import (
	"fmt"
	"image"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

var isTermItermWez = rasterm.IsTermItermWez

// printRasTerm draws an image using the RasTerm library.
//
// This should enable drawing in Kitty terminal.
func (p *Printer) printRasTerm(i image.Image) error {
	if rasterm.IsTermKitty() {
		if err := (rasterm.Settings{}).KittyWriteImage(p.Out, i); err != nil {
			return errors.Wrap(err, "writing kitty image")
		}
		_, err := fmt.Fprintf(p.Out, "\n")
		return err
	}
	if rasterm.IsTermItermWez() {
		if err := (rasterm.Settings{}).ItermWriteImage(p.Out, i); err != nil {
			return errors.Wrap(err, "writing iterm image")
		}
		_, err := fmt.Fprintf(p.Out, "\n")
		return err
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		// Sprite frames are paletted already; anything else is quantized.
		palettedImage, ok := i.(*image.Paletted)
		if !ok {
			palettedImage = image.NewPaletted(i.Bounds(), nil)
			quantizer := gogif.MedianCutQuantizer{NumColor: 64}
			quantizer.Quantize(palettedImage, i.Bounds(), i, image.Point{})
		}
		if err := (rasterm.Settings{}).SixelWriteImage(p.Out, palettedImage); err != nil {
			return errors.Wrap(err, "writing sixel image")
		}
		_, err := fmt.Fprintf(p.Out, "\n")
		return err
	}
	return errors.New("imageprint: terminal supports neither kitty, iTerm2 nor sixel images")
}
