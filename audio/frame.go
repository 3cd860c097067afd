// SPDX-License-Identifier: EPL-2.0

package audio

// Frame is a decoded block of audio.
type Frame interface {
	// Spec of the decoded signal.
	Spec() SignalSpec
	// SampleFormat of the stored samples.
	SampleFormat() SampleFormat
	// Capacity is the largest number of frames per channel this block
	// could hold for its codec (e.g., the nominal block size).
	Capacity() int
	// Frames is the number of valid frames per channel.
	Frames() int
	// CopyInterleaved writes Frames()*Channels normalized samples to dst and
	// returns the number written. dst must be large enough.
	CopyInterleaved(dst []float32) int
}

// IntFrame is planar integer audio.
type IntFrame struct {
	spec     SignalSpec
	bits     int
	capacity int
	planes   [][]int32
}

// NewIntFrame wraps one plane per channel. All planes must have the same
// length and there must be exactly spec.Channels of them.
func NewIntFrame(spec SignalSpec, bits, capacity int, planes [][]int32) *IntFrame {
	if len(planes) != spec.Channels {
		panic("audio: plane count does not match channel count")
	}

	if bits < 1 || bits > 32 {
		panic("audio: bit depth out of range")
	}

	frames := 0
	if len(planes) > 0 {
		frames = len(planes[0])
	}

	for _, p := range planes {
		if len(p) != frames {
			panic("audio: planes have different lengths")
		}
	}

	if capacity < frames {
		capacity = frames
	}

	return &IntFrame{
		spec:     spec,
		bits:     bits,
		capacity: capacity,
		planes:   planes,
	}
}

func (f *IntFrame) Spec() SignalSpec           { return f.spec }
func (f *IntFrame) SampleFormat() SampleFormat { return IntFormat(f.bits) }
func (f *IntFrame) Capacity() int              { return f.capacity }
func (f *IntFrame) BitDepth() int              { return f.bits }

func (f *IntFrame) Frames() int {
	if len(f.planes) == 0 {
		return 0
	}

	return len(f.planes[0])
}

// Plane returns the samples of channel ch.
func (f *IntFrame) Plane(ch int) []int32 { return f.planes[ch] }

func (f *IntFrame) CopyInterleaved(dst []float32) int {
	channels := len(f.planes)
	frames := f.Frames()
	scale := 1 / float32(int64(1)<<(f.bits-1))

	// Stereo is by far the common case
	if channels == 2 {
		l, r := f.planes[0], f.planes[1]
		for i := range frames {
			dst[2*i] = float32(l[i]) * scale
			dst[2*i+1] = float32(r[i]) * scale
		}

		return 2 * frames
	}

	for ch, p := range f.planes {
		for i, v := range p {
			dst[i*channels+ch] = float32(v) * scale
		}
	}

	return frames * channels
}

// FloatFrame is interleaved float32 audio.
type FloatFrame struct {
	spec     SignalSpec
	capacity int
	data     []float32
}

// NewFloatFrame wraps interleaved samples. len(data) must be a multiple of
// spec.Channels.
func NewFloatFrame(spec SignalSpec, capacity int, data []float32) *FloatFrame {
	if spec.Channels <= 0 || len(data)%spec.Channels != 0 {
		panic("audio: interleaved data is not a whole number of frames")
	}

	frames := len(data) / spec.Channels
	if capacity < frames {
		capacity = frames
	}

	return &FloatFrame{
		spec:     spec,
		capacity: capacity,
		data:     data,
	}
}

func (f *FloatFrame) Spec() SignalSpec           { return f.spec }
func (f *FloatFrame) SampleFormat() SampleFormat { return FormatF32 }
func (f *FloatFrame) Capacity() int              { return f.capacity }
func (f *FloatFrame) Frames() int                { return len(f.data) / f.spec.Channels }

// Data returns the interleaved samples.
func (f *FloatFrame) Data() []float32 { return f.data }

func (f *FloatFrame) CopyInterleaved(dst []float32) int {
	return copy(dst, f.data)
}
