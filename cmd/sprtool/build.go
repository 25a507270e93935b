package main

import (
	"fmt"
	"io"
	"os"

	"badc0de.net/pkg/go-goldsrc/manifest"
	"badc0de.net/pkg/go-goldsrc/spr"
)

func runBuild(args []string, stdout io.Writer) error {
	fs := newFlagSet("build", "-o OUT MANIFEST", os.Stderr)
	out := fs.String("o", "", "path of the sprite to write")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *out == "" {
		fs.Usage()
		return errUsage
	}

	m, err := manifest.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := m.Build()
	if err != nil {
		return err
	}
	if err := spr.Save(*out, s); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %d colors, %d frame(s), radius %g\n", *out, len(s.Palette), len(s.Frames), s.BoundingRadius)
	return nil
}
