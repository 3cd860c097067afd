// SPDX-License-Identifier: EPL-2.0

// Package decoder runs the decode loop: it pulls packets from a demuxer,
// keeps those of the selected track, decodes them and appends the
// interleaved float32 samples to a growing buffer.
//
// The buffer is published as an immutable snapshot after every decoded
// packet, so a presentation layer can poll Samples from another goroutine
// while Decode runs:
//
//	dec, err := decoder.Open(reg, "song.flac")
//	if err != nil {
//		return err
//	}
//	defer dec.Close()
//
//	go func() {
//		if err := dec.Decode(ctx); err != nil {
//			log.WithError(err).Warn("decode failed")
//		}
//	}()
//
//	samples := dec.Samples() // whatever is decoded so far
//
// Packets failing with a recoverable media.DecodeError are skipped. Any
// other failure stops the loop, keeps what was decoded before it and is
// returned from Decode and reported by Status.
package decoder
