// SPDX-License-Identifier: EPL-2.0

package media

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestIsRecoverable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "io error", err: IOError(io.ErrUnexpectedEOF), want: true},
		{name: "data error", err: DataError(errors.New("bad crc")), want: true},
		{name: "wrapped data error", err: fmt.Errorf("frame 3: %w", DataError(errors.New("bad crc"))), want: true},
		{name: "plain error", err: errors.New("decoder state corrupted"), want: false},
		{name: "zero kind", err: &DecodeError{Err: errors.New("x")}, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsRecoverable(tt.err); got != tt.want {
				t.Errorf("IsRecoverable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	t.Parallel()

	err := IOError(io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is(IOError(ErrUnexpectedEOF), ErrUnexpectedEOF) = false")
	}

	want := "io decode error: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	errs := []error{ErrUnsupportedFormat, ErrNoDecodableTrack, ErrUnsupportedCodec, ErrResetRequired}
	for i, a := range errs {
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v matches %v", a, b)
			}
		}
	}
}
