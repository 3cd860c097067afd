// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// SignalSpec describes the shape of decoded audio.
type SignalSpec struct {
	// Rate in Hz.
	Rate int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int
}

func (s SignalSpec) String() string {
	return fmt.Sprintf("%d Hz, %d ch", s.Rate, s.Channels)
}

// SampleFormat is the storage type of the samples inside a Frame.
type SampleFormat uint8

const (
	FormatS8 SampleFormat = iota + 1
	FormatS16
	FormatS24
	FormatS32
	FormatF32
)

func (f SampleFormat) String() string {
	switch f {
	case FormatS8:
		return "s8"
	case FormatS16:
		return "s16"
	case FormatS24:
		return "s24"
	case FormatS32:
		return "s32"
	case FormatF32:
		return "f32"
	}

	return "unknown"
}

// IntFormat maps an integer bit depth to its SampleFormat.
// Depths that are not a whole byte round up to the next container size.
func IntFormat(bits int) SampleFormat {
	switch {
	case bits <= 8:
		return FormatS8
	case bits <= 16:
		return FormatS16
	case bits <= 24:
		return FormatS24
	}

	return FormatS32
}
