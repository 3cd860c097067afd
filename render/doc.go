// SPDX-License-Identifier: EPL-2.0

// Package render turns a decoded sample buffer into something a person can
// look at or listen to elsewhere.
//
// Decoded samples are interleaved float32 in [-1, 1]. A BufferSource
// streams them through the same pull pipeline the decoders feed:
//
//	src := render.NewBufferSource(dec.Spec(), dec.Samples())
//	pcm, err := render.ToMono16(src, 8000, 4096)
//	if err != nil {
//		return err
//	}
//	err = render.WriteWAV(out, 8000, pcm)
//
// Resampler changes the rate with Catmull-Rom interpolation and a one-pole
// low-pass when downsampling. MonoMixer averages channels.
//
// For plotting, Bounds gives the vertical range of a buffer and Envelope
// folds it into per-column peaks.
//
// # Error Handling
//
// ReadSamples returns io.EOF when the stream is finished, possibly together
// with the last samples:
//
//	for {
//		n, err := src.ReadSamples(buf)
//		use(buf[:n])
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//	}
package render
