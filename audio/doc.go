// SPDX-License-Identifier: EPL-2.0

// Package audio holds the decoded side of the pipeline: typed sample blocks
// produced by codec decoders and the buffer that flattens them.
//
// # Frames
//
// A Frame is one decoded packet worth of audio. Its layout depends on the
// codec that produced it:
//   - IntFrame keeps one int32 plane per channel plus the source bit depth
//     (PCM, FLAC, AIFF)
//   - FloatFrame keeps interleaved float32 samples (Vorbis, Opus, float PCM)
//
// Capacity and spec are per frame. A stream's last packet is usually short,
// and a chained stream may change rate or channel count, so consumers read
// both every time.
//
// # Sample Buffer
//
// SampleBuffer converts any Frame into interleaved float32:
//
//	buf := audio.NewSampleBuffer(frame.Capacity(), frame.Spec())
//	buf.CopyInterleaved(frame)
//	samples := buf.Samples() // L, R, L, R, ...
//
// # Sample Format
//
// Converted samples are normalized to [-1.0, 1.0): integer samples are
// divided by 2^(bits-1), float samples pass through unchanged.
package audio
