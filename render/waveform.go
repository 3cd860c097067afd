// SPDX-License-Identifier: EPL-2.0

package render

// Bounds returns the smallest and largest sample. Without samples it
// returns lo = 1 and hi = -1, an empty range.
func Bounds(samples []float32) (lo, hi float32) {
	lo, hi = 1, -1
	for _, v := range samples {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	return lo, hi
}

// Peak is the sample range covered by one plot column.
type Peak struct {
	Min float32
	Max float32
}

// Envelope splits interleaved samples into at most buckets columns of
// whole frames and returns each column's extremes over all channels.
func Envelope(samples []float32, channels, buckets int) []Peak {
	if channels < 1 || buckets < 1 {
		return nil
	}

	frames := len(samples) / channels
	if frames == 0 {
		return nil
	}
	buckets = min(buckets, frames)

	peaks := make([]Peak, buckets)
	for b := range peaks {
		start := b * frames / buckets * channels
		end := (b + 1) * frames / buckets * channels

		p := Peak{Min: samples[start], Max: samples[start]}
		for _, v := range samples[start:end] {
			p.Min = min(p.Min, v)
			p.Max = max(p.Max, v)
		}
		peaks[b] = p
	}

	return peaks
}
