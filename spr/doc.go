// Package spr implements a reader and a writer for GoldSrc sprite files
// (.spr, "IDSP" version 2).
//
// A sprite is a set of palette-indexed frames sharing one palette of up to
// 65535 RGB colors, together with a small header describing how the engine
// orients and blends the sprite. Decode reads a whole file into a Sprite, and
// Encode writes a Sprite back using the exact same layout.
//
// The maximum frame dimensions stored in the header are not part of the
// model: they are recomputed from the frames whenever a sprite is written.
// The bounding radius is stored as-is; call RecalculateBoundingRadius after
// changing frame geometry if the engine should see an accurate value.
//
// Importing this package also registers the "spr" format with the image
// package, so image.Decode returns the first frame of a sprite file.
package spr
