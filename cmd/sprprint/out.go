package main

import (
	"image"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-goldsrc/imageprint"
	"badc0de.net/pkg/go-goldsrc/spr"
)

func printer() *imageprint.Printer {
	mode := imageprint.Mode24Bit
	if *rasterm {
		mode = imageprint.ModeRasTerm
	} else if !*col {
		mode = imageprint.ModeNoColor
	} else if *iterm {
		mode = imageprint.ModeITerm
	} else if *col256 {
		mode = imageprint.Mode256Color
	}
	return imageprint.NewPrinter(mode, *blanks)
}

func out(s *spr.Sprite, idx int) error {
	p := printer()
	if !*downsize {
		return p.PrintFrame(s, idx)
	}

	var img image.Image
	img, err := s.FrameImage(idx)
	if err != nil {
		return err
	}
	termSize, err := GetTermSize()
	if err == nil {
		if (termSize.XPixel != 0 && termSize.YPixel != 0) && (*rasterm || *iterm) {
			// Prefer printing out in native size if there's a chance we print out an image rather than pixels.
			img = resize.Thumbnail(termSize.XPixel/2, termSize.YPixel/2, img, resize.Lanczos3)
		} else if termSize.Cols > 1 && termSize.Rows > 1 {
			// Every pixel takes two columns.
			img = resize.Thumbnail(termSize.Cols/2, termSize.Rows-1, img, resize.Lanczos3)
		}
	}
	return p.Print(img)
}
