// SPDX-License-Identifier: EPL-2.0

package decoder

// State of the decode loop.
type State uint8

const (
	StateReady State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// StopReason tells why the loop left StateRunning.
type StopReason uint8

const (
	StopNone StopReason = iota
	// StopExhausted is a clean end of stream.
	StopExhausted
	// StopFatal is a demuxer or codec failure that cannot be skipped.
	StopFatal
	// StopResetRequired means the track list changed and the decoder could
	// not (or was told not to) follow it.
	StopResetRequired
	// StopAborted means the context was done. Decode can be called again.
	StopAborted
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopExhausted:
		return "exhausted"
	case StopFatal:
		return "fatal"
	case StopResetRequired:
		return "reset required"
	case StopAborted:
		return "aborted"
	}
	return "unknown"
}

// Stats are running counters of the decode loop.
type Stats struct {
	// Packets read from the demuxer.
	Packets uint64
	// Discarded packets belonged to another track.
	Discarded uint64
	// Skipped packets failed with a recoverable error.
	Skipped uint64
	// Decoded packets produced a frame.
	Decoded uint64
	// Frames decoded, per channel.
	Frames uint64
	// Resets followed a track list change.
	Resets uint64
}

// Status is a point-in-time view of a Decoder.
type Status struct {
	State  State
	Reason StopReason
	// Err is the error that stopped the loop, nil for StopExhausted.
	Err error
	Stats
}
