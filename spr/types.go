package spr

import (
	"fmt"
	"strconv"
	"strings"
)

// Orientation tells the engine how to turn the sprite towards the camera.
//
// Values outside of the known set are kept as read from the file and written
// back unchanged; Valid reports whether a value is one of the known ones.
type Orientation int32

const (
	ParallelUpright Orientation = iota
	FacingUpright
	Parallel
	Oriented
	ParallelOriented
)

var orientationNames = []string{
	"parallel_upright",
	"facing_upright",
	"parallel",
	"oriented",
	"parallel_oriented",
}

// Valid reports whether o is one of the known orientations.
func (o Orientation) Valid() bool { return o >= 0 && int(o) < len(orientationNames) }

// String implements the stringer interface.
func (o Orientation) String() string {
	if o.Valid() {
		return orientationNames[o]
	}
	return fmt.Sprintf("Orientation(%d)", int32(o))
}

// MarshalText implements encoding.TextMarshaler. Unknown values are written
// as their decimal raw value.
func (o Orientation) MarshalText() ([]byte, error) {
	return marshalEnum(o.Valid(), o.String(), int32(o)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ParseOrientation accepts a name such as "parallel_upright" or a raw
// decimal value. Case, underscores and dashes in names are ignored.
func ParseOrientation(s string) (Orientation, error) {
	v, err := parseEnum("orientation", orientationNames, s)
	return Orientation(v), err
}

// TextureFormat tells the engine how to blend the sprite.
type TextureFormat int32

const (
	Normal TextureFormat = iota
	Additive
	IndexAlpha
	AlphaTest
)

var textureFormatNames = []string{
	"normal",
	"additive",
	"index_alpha",
	"alpha_test",
}

// Valid reports whether f is one of the known texture formats.
func (f TextureFormat) Valid() bool { return f >= 0 && int(f) < len(textureFormatNames) }

// String implements the stringer interface.
func (f TextureFormat) String() string {
	if f.Valid() {
		return textureFormatNames[f]
	}
	return fmt.Sprintf("TextureFormat(%d)", int32(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f TextureFormat) MarshalText() ([]byte, error) {
	return marshalEnum(f.Valid(), f.String(), int32(f)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *TextureFormat) UnmarshalText(text []byte) error {
	v, err := ParseTextureFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseTextureFormat accepts a name such as "alpha_test" or a raw decimal
// value.
func ParseTextureFormat(s string) (TextureFormat, error) {
	v, err := parseEnum("texture format", textureFormatNames, s)
	return TextureFormat(v), err
}

// Synchronization tells the engine whether all instances of an animated
// sprite start on the same frame.
type Synchronization int32

const (
	Synchronized Synchronization = iota
	Random
)

var synchronizationNames = []string{
	"synchronized",
	"random",
}

// Valid reports whether s is one of the known synchronization types.
func (s Synchronization) Valid() bool { return s >= 0 && int(s) < len(synchronizationNames) }

// String implements the stringer interface.
func (s Synchronization) String() string {
	if s.Valid() {
		return synchronizationNames[s]
	}
	return fmt.Sprintf("Synchronization(%d)", int32(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Synchronization) MarshalText() ([]byte, error) {
	return marshalEnum(s.Valid(), s.String(), int32(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Synchronization) UnmarshalText(text []byte) error {
	v, err := ParseSynchronization(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSynchronization accepts "synchronized", "random" or a raw decimal
// value.
func ParseSynchronization(s string) (Synchronization, error) {
	v, err := parseEnum("synchronization", synchronizationNames, s)
	return Synchronization(v), err
}

func marshalEnum(valid bool, name string, raw int32) []byte {
	if valid {
		return []byte(name)
	}
	return []byte(strconv.FormatInt(int64(raw), 10))
}

func normalizeEnumName(s string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func parseEnum(kind string, names []string, s string) (int32, error) {
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32); err == nil {
		return int32(n), nil
	}
	want := normalizeEnumName(s)
	for i, name := range names {
		if normalizeEnumName(name) == want {
			return int32(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q; want one of %s", kind, s, strings.Join(names, ", "))
}
