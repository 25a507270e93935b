package spr

import (
	"os"
	"path/filepath"
	"testing"

	"badc0de.net/pkg/go-goldsrc/ttesting"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.spr")
	want := testSprite(t)
	if err := Save(path, want); err != nil {
		t.Fatalf("failed to save sprite: %s", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load sprite: %s", err)
	}
	assertSpritesEqual(t, got, want)
}

func TestSaveFailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.spr")
	if err := Save(path, testSprite(t)); err != nil {
		t.Fatalf("failed to save sprite: %s", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read sprite: %s", err)
	}

	bad := New()
	bad.Palette = make(Palette, MaxPaletteSize+1)
	ttesting.AssertErrorIs(t, "palette too large", Save(path, bad), ErrPaletteTooLarge)

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read sprite: %s", err)
	}
	ttesting.AssertEqualBytes(t, "file untouched", after, before)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list directory: %s", err)
	}
	ttesting.AssertEqualInt(t, "no temporary files left", len(entries), 1)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.spr"))
	ttesting.AssertErrorIs(t, "missing file", err, os.ErrNotExist)

	path := filepath.Join(dir, "bogus.spr")
	if err := os.WriteFile(path, []byte("BM not a sprite"), 0644); err != nil {
		t.Fatalf("failed to write file: %s", err)
	}
	_, err = Load(path)
	ttesting.AssertErrorIs(t, "not a sprite", err, ErrNotASprite)
}
