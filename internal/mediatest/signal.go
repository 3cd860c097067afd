// SPDX-License-Identifier: EPL-2.0

package mediatest

import "math"

// Waveform returns the value of one sample given its frame index and channel.
type Waveform func(frame, channel int) float32

// Generate returns frames*channels interleaved samples drawn from w.
func Generate(channels, frames int, w Waveform) []float32 {
	out := make([]float32, frames*channels)
	for f := range frames {
		for ch := range channels {
			out[f*channels+ch] = w(f, ch)
		}
	}

	return out
}

// Sine is a unit-amplitude sine at freq Hz.
func Sine(rate int, freq float64) Waveform {
	return func(frame, _ int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	}
}

// Constant always returns v.
func Constant(v float32) Waveform {
	return func(int, int) float32 { return v }
}

// Ramp counts up from start by one per sample, across channels.
func Ramp(channels int, start float32) Waveform {
	return func(frame, channel int) float32 {
		return start + float32(frame*channels+channel)
	}
}

// Quantize scales samples in [-1, 1] to signed integers of the given width.
func Quantize(samples []float32, bits int) []int32 {
	scale := float64(int64(1)<<(bits-1)) - 1
	out := make([]int32, len(samples))
	for i, s := range samples {
		v := math.Round(float64(s) * scale)
		out[i] = int32(max(-scale-1, min(scale, v)))
	}

	return out
}
