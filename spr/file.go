package spr

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Load reads the sprite file at path.
func Load(path string) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sprite")
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return s, nil
}

// Save writes s to path.
//
// The sprite is written to a temporary file next to path, which then replaces
// path. If encoding or writing fails, an existing file at path is left as it
// was.
func Save(path string, s *Sprite) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temporary sprite file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, s); err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	if err = tmp.Chmod(0644); err != nil {
		return errors.Wrap(err, "setting sprite file mode")
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing sprite file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing sprite file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "replacing sprite file")
	}
	glog.V(1).Infof("saved %s: %d frames, %d colors", path, len(s.Frames), len(s.Palette))
	return nil
}
