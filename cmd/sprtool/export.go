package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-goldsrc/convert"
	"badc0de.net/pkg/go-goldsrc/manifest"
)

func createWith(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func runExport(args []string, stdout io.Writer) error {
	fs := newFlagSet("export", "-out DIR [-gif] FILE", os.Stderr)
	out := fs.String("out", "", "directory to write frames and the manifest to")
	gif := fs.Bool("gif", false, "whether to also write an animated GIF")
	delay := fs.Int("delay", 10, "GIF frame delay, in 100ths of a second")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *out == "" {
		fs.Usage()
		return errUsage
	}

	name := fs.Arg(0)
	s, err := loadSprite(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(*out, "frames"), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	framePaths := make([]string, len(s.Frames))
	for i := range s.Frames {
		framePaths[i] = filepath.Join("frames", fmt.Sprintf("%03d.png", i))
		err := createWith(filepath.Join(*out, framePaths[i]), func(w io.Writer) error {
			return convert.WritePNG(w, s, i)
		})
		if err != nil {
			return errors.Wrapf(err, "writing frame %d", i)
		}
	}

	m, err := manifest.FromSprite(s, framePaths)
	if err != nil {
		return err
	}
	if err := createWith(filepath.Join(*out, manifest.FileName), m.Encode); err != nil {
		return errors.Wrap(err, "writing manifest")
	}

	if *gif {
		base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		err := createWith(filepath.Join(*out, base+".gif"), func(w io.Writer) error {
			return convert.WriteGIF(w, s, *delay)
		})
		if err != nil {
			return errors.Wrap(err, "writing animation")
		}
	}
	glog.V(1).Infof("exported %d frames of %s to %s", len(s.Frames), name, *out)
	fmt.Fprintf(stdout, "%s: %d frame(s) written to %s\n", name, len(s.Frames), *out)
	return nil
}
