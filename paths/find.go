// Package paths locates sprite files in GoldSrc game installations and opens
// them from disk or over HTTP.
package paths

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// GameDirs are the mod directories searched under $GOLDSRC_DIR, in order.
var GameDirs = []string{
	"valve",
	"valve_hd",
	"cstrike",
	"czero",
	"gearbox",
	"bshift",
	"dod",
	"tfc",
	"ricochet",
}

// PossibleDirs returns the directories Find looks in, in order:
// each entry of $GOLDSRC_SPRITE_PATH, the sprites directory of each of
// GameDirs under $GOLDSRC_DIR, the working directory and its sprites
// subdirectory.
func PossibleDirs() []string {
	var dirs []string
	if p := os.Getenv("GOLDSRC_SPRITE_PATH"); p != "" {
		for _, dir := range filepath.SplitList(p) {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}
	if root := os.Getenv("GOLDSRC_DIR"); root != "" {
		for _, game := range GameDirs {
			dirs = append(dirs, filepath.Join(root, game, "sprites"))
		}
	}
	return append(dirs, ".", "sprites")
}

func possiblePaths(fileName string) []string {
	if filepath.IsAbs(fileName) {
		return []string{fileName}
	}
	dirs := PossibleDirs()
	paths := make([]string, len(dirs))
	for i, dir := range dirs {
		paths[i] = filepath.Join(dir, fileName)
	}
	return paths
}

// Find locates the passed sprite file name and returns an absolute or
// relative path to find it at, or an empty string if it is nowhere to be
// found.
//
// For example, for "muzzleflash1.spr" it may return
// "/games/Half-Life/valve/sprites/muzzleflash1.spr".
func Find(fileName string) string {
	for _, path := range possiblePaths(fileName) {
		if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() {
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	glog.V(1).Infof("paths.Find(%q): not found", fileName)
	return ""
}

// FindDir returns the first of PossibleDirs that exists and contains at
// least one .spr file, or "." if none does.
func FindDir() string {
	for _, dir := range PossibleDirs() {
		matches, err := filepath.Glob(filepath.Join(dir, "*.spr"))
		if err == nil && len(matches) > 0 {
			glog.Infof("paths.FindDir()=%s", dir)
			return dir
		}
	}
	return "."
}

// IsURL reports whether name is an http or https URL.
func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Open opens a sprite file. URLs are fetched over HTTP; anything else is
// located with Find first. If the file cannot be found, the returned error
// wraps os.ErrNotExist.
func Open(name string) (io.ReadSeekCloser, error) {
	if IsURL(name) {
		return openHTTP(name)
	}
	path := Find(name)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %s", name, strings.Join(PossibleDirs(), string(filepath.ListSeparator)))
	}
	return os.Open(path)
}

// NoFindOpen opens name as given, without searching: URLs are fetched over
// HTTP and anything else is opened as a local path.
func NoFindOpen(name string) (io.ReadSeekCloser, error) {
	if IsURL(name) {
		return openHTTP(name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q)", name)
	}
	return f, nil
}
