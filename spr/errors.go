package spr

import (
	"io"

	"github.com/pkg/errors"
)

// Error kinds returned by this package. Returned errors carry additional
// context; use errors.Is to test for a kind.
var (
	ErrNotASprite             = errors.New("spr: not a goldsrc sprite")
	ErrUnsupportedVersion     = errors.New("spr: unsupported sprite version")
	ErrTruncated              = errors.New("spr: unexpected end of sprite data")
	ErrInvalidFrameDimensions = errors.New("spr: invalid frame dimensions")
	ErrInvalidFrameCount      = errors.New("spr: invalid frame count")
	ErrPaletteTooLarge        = errors.New("spr: palette too large")
	ErrTooManyFrames          = errors.New("spr: too many frames")
	ErrNilFrame               = errors.New("spr: nil frame")
	ErrFrameDataSize          = errors.New("spr: frame data does not match frame dimensions")
	ErrFrameIndex             = errors.New("spr: frame index out of range")
)

// readError converts a short read into ErrTruncated, and annotates any other
// error with what was being read.
func readError(err error, format string, args ...interface{}) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrTruncated, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}
