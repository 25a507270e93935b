package main

import (
	"fmt"
	"io"
	"os"

	"badc0de.net/pkg/go-goldsrc/spr"
)

func runRadius(args []string, stdout io.Writer) error {
	fs := newFlagSet("radius", "[-n] FILE", os.Stderr)
	dryRun := fs.Bool("n", false, "only print the new radius")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	path := fs.Arg(0)
	s, err := spr.Load(path)
	if err != nil {
		return err
	}
	old := s.BoundingRadius
	s.RecalculateBoundingRadius()
	fmt.Fprintf(stdout, "%s: bounding radius %g -> %g\n", path, old, s.BoundingRadius)
	if *dryRun || old == s.BoundingRadius {
		return nil
	}
	return spr.Save(path, s)
}
