// SPDX-License-Identifier: EPL-2.0

package audio

// SampleBuffer holds the interleaved float32 rendering of one Frame.
type SampleBuffer struct {
	spec     SignalSpec
	capacity int
	buf      []float32
	n        int
}

// NewSampleBuffer allocates room for capacity frames of spec.
func NewSampleBuffer(capacity int, spec SignalSpec) *SampleBuffer {
	return &SampleBuffer{
		spec:     spec,
		capacity: capacity,
		buf:      make([]float32, capacity*spec.Channels),
	}
}

func (b *SampleBuffer) Spec() SignalSpec { return b.spec }
func (b *SampleBuffer) Capacity() int    { return b.capacity }
func (b *SampleBuffer) Len() int         { return b.n }

// Fits reports whether f can be copied without reallocating.
func (b *SampleBuffer) Fits(f Frame) bool {
	return b.spec == f.Spec() && b.capacity == f.Capacity()
}

// CopyInterleaved replaces the buffer contents with f.
// A frame that does not fit is a programming error.
func (b *SampleBuffer) CopyInterleaved(f Frame) {
	if f.Spec().Channels != b.spec.Channels || f.Frames() > b.capacity {
		panic("audio: frame does not fit sample buffer")
	}

	b.n = f.CopyInterleaved(b.buf)
}

// Samples returns the converted samples. The slice is reused by the next
// CopyInterleaved call.
func (b *SampleBuffer) Samples() []float32 {
	return b.buf[:b.n]
}
