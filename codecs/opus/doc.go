// SPDX-License-Identifier: EPL-2.0

// Package opus decodes Opus packets through libopus (gopkg.in/hraban/opus.v2).
//
// libopus is linked with cgo, so the decoder is only built with the "opus"
// build tag:
//
//	go build -tags opus ./...
//
// Streams always decode at 48 kHz. The pre-skip from OpusHead (carried in
// CodecParams.Delay) is trimmed from the start of the stream.
package opus
