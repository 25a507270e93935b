package imageprint

import (
	"flag"
	"image"

	"github.com/pkg/errors"
)

var (
	forceITerm = flag.Bool("force_iterm", false, "value to force iterm detection to take (implementation variant: no rasterm)")
)

var isTermItermWez = func() bool {
	return *forceITerm
}

func (p *Printer) printRasTerm(i image.Image) error {
	return errors.New("imageprint: rasterm not supported on windows")
}
