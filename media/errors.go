// SPDX-License-Identifier: EPL-2.0

package media

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoDecodableTrack  = errors.New("no decodable track")
	ErrUnsupportedCodec  = errors.New("unsupported codec")
	// ErrResetRequired is returned by a Demuxer whose track list changed
	// mid-stream (e.g., the next link of a chained Ogg file).
	ErrResetRequired = errors.New("reset required")
)

// ErrorKind classifies a per-packet decode failure.
type ErrorKind uint8

const (
	// KindIO is a transient read fault. The packet is skipped.
	KindIO ErrorKind = iota + 1
	// KindData is a malformed packet. The packet is skipped.
	KindData
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindData:
		return "data"
	}

	return "unknown"
}

// DecodeError is a recoverable, per-packet decode failure.
type DecodeError struct {
	Kind ErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s decode error: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError marks err as a recoverable I/O fault.
func IOError(err error) error {
	return &DecodeError{Kind: KindIO, Err: err}
}

// DataError marks err as a recoverable malformed-packet fault.
func DataError(err error) error {
	return &DecodeError{Kind: KindData, Err: err}
}

// IsRecoverable reports whether err only invalidates the current packet.
func IsRecoverable(err error) bool {
	var de *DecodeError
	if !errors.As(err, &de) {
		return false
	}

	return de.Kind == KindIO || de.Kind == KindData
}
