// Package ttesting contains assertion helpers shared by tests in this module.
package ttesting

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualInt32(t *testing.T, name string, got, want int32) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

// AssertEqualFloat32 compares exactly; values written and read back by the
// codec are expected to be bit-identical.
func AssertEqualFloat32(t *testing.T, name string, got, want float32) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %g; want %g", got, want)
		}
	})
}

func AssertEqualBytes(t *testing.T, name string, got, want []byte) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if !bytes.Equal(got, want) {
			if len(got) != len(want) {
				t.Errorf("got %d bytes; want %d bytes", len(got), len(want))
				return
			}
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("byte %d: got %#02x; want %#02x", i, got[i], want[i])
					return
				}
			}
		}
	})
}

// AssertErrorIs checks that err wraps want.
func AssertErrorIs(t *testing.T, name string, err, want error) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if !errors.Is(err, want) {
			t.Errorf("got error %v; want %v", err, want)
		}
	})
}
