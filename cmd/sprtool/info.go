package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-goldsrc/paths"
	"badc0de.net/pkg/go-goldsrc/spr"
)

type infoResult struct {
	s   *spr.Sprite
	err error
}

func loadSprite(name string) (*spr.Sprite, error) {
	f, err := paths.NoFindOpen(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := spr.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", name)
	}
	return s, nil
}

func printInfo(w io.Writer, name string, s *spr.Sprite) {
	fmt.Fprintf(w, "%s:\n", name)
	fmt.Fprintf(w, "  type %s, texture format %s, synchronization %s\n", s.Type, s.TextureFormat, s.Synchronization)
	fmt.Fprintf(w, "  bounding radius %g, beam length %g\n", s.BoundingRadius, s.BeamLength)
	fmt.Fprintf(w, "  %d colors, %d frame(s), max %dx%d\n", len(s.Palette), len(s.Frames), s.MaxWidth(), s.MaxHeight())
	for i, f := range s.Frames {
		fmt.Fprintf(w, "  frame %d: group %d, %dx%d at %d,%d\n", i, f.Group, f.Width(), f.Height(), f.OriginX, f.OriginY)
	}
}

func runInfo(args []string, stdout io.Writer) error {
	fs := newFlagSet("info", "FILE...", os.Stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	names := fs.Args()
	results := make([]infoResult, len(names))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			results[i].s, results[i].err = loadSprite(name)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for i, r := range results {
		if r.err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", names[i], r.err)
			failed++
			continue
		}
		printInfo(stdout, names[i], r.s)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d sprites could not be read", failed, len(names))
	}
	return nil
}
