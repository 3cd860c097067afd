// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"testing"
)

func TestIntFrame_CopyInterleaved(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		bits   int
		planes [][]int32
		want   []float32
	}{
		{
			name:   "mono 16-bit",
			bits:   16,
			planes: [][]int32{{0, 16384, -32768, 32767}},
			want:   []float32{0, 0.5, -1, 32767.0 / 32768.0},
		},
		{
			name:   "stereo 16-bit",
			bits:   16,
			planes: [][]int32{{16384, -16384}, {8192, 0}},
			want:   []float32{0.5, 0.25, -0.5, 0},
		},
		{
			name:   "three channels 24-bit",
			bits:   24,
			planes: [][]int32{{4194304}, {-8388608}, {0}},
			want:   []float32{0.5, -1, 0},
		},
		{
			name:   "8-bit",
			bits:   8,
			planes: [][]int32{{64, -128}},
			want:   []float32{0.5, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec := SignalSpec{Rate: 44100, Channels: len(tt.planes)}
			f := NewIntFrame(spec, tt.bits, 0, tt.planes)

			dst := make([]float32, len(tt.want))
			n := f.CopyInterleaved(dst)
			if n != len(tt.want) {
				t.Fatalf("CopyInterleaved() n = %d, want %d", n, len(tt.want))
			}

			for i := range tt.want {
				if math.Abs(float64(dst[i]-tt.want[i])) > 1e-6 {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestIntFrame_Metadata(t *testing.T) {
	t.Parallel()

	spec := SignalSpec{Rate: 48000, Channels: 2}
	f := NewIntFrame(spec, 24, 4096, [][]int32{make([]int32, 100), make([]int32, 100)})

	if f.Spec() != spec {
		t.Errorf("Spec() = %v, want %v", f.Spec(), spec)
	}

	if f.Capacity() != 4096 {
		t.Errorf("Capacity() = %d, want 4096", f.Capacity())
	}

	if f.Frames() != 100 {
		t.Errorf("Frames() = %d, want 100", f.Frames())
	}

	if f.SampleFormat() != FormatS24 {
		t.Errorf("SampleFormat() = %v, want s24", f.SampleFormat())
	}
}

func TestIntFrame_CapacityAtLeastFrames(t *testing.T) {
	t.Parallel()

	f := NewIntFrame(SignalSpec{Rate: 8000, Channels: 1}, 16, 10, [][]int32{make([]int32, 20)})
	if f.Capacity() != 20 {
		t.Errorf("Capacity() = %d, want 20", f.Capacity())
	}
}

func TestNewIntFrame_Panics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		spec   SignalSpec
		bits   int
		planes [][]int32
	}{
		{
			name:   "plane count mismatch",
			spec:   SignalSpec{Rate: 8000, Channels: 2},
			bits:   16,
			planes: [][]int32{{1}},
		},
		{
			name:   "ragged planes",
			spec:   SignalSpec{Rate: 8000, Channels: 2},
			bits:   16,
			planes: [][]int32{{1, 2}, {1}},
		},
		{
			name:   "zero bit depth",
			spec:   SignalSpec{Rate: 8000, Channels: 1},
			bits:   0,
			planes: [][]int32{{1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("NewIntFrame() did not panic")
				}
			}()

			NewIntFrame(tt.spec, tt.bits, 0, tt.planes)
		})
	}
}

func TestFloatFrame(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	f := NewFloatFrame(SignalSpec{Rate: 48000, Channels: 2}, 960, data)

	if f.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", f.Frames())
	}

	if f.Capacity() != 960 {
		t.Errorf("Capacity() = %d, want 960", f.Capacity())
	}

	if f.SampleFormat() != FormatF32 {
		t.Errorf("SampleFormat() = %v, want f32", f.SampleFormat())
	}

	dst := make([]float32, 6)
	if n := f.CopyInterleaved(dst); n != 6 {
		t.Fatalf("CopyInterleaved() n = %d, want 6", n)
	}

	for i := range data {
		if dst[i] != data[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], data[i])
		}
	}
}

func TestNewFloatFrame_PartialFramePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("NewFloatFrame() did not panic for partial frame")
		}
	}()

	NewFloatFrame(SignalSpec{Rate: 48000, Channels: 2}, 0, []float32{1, 2, 3})
}

func TestIntFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits int
		want SampleFormat
	}{
		{8, FormatS8},
		{12, FormatS16},
		{16, FormatS16},
		{20, FormatS24},
		{24, FormatS24},
		{32, FormatS32},
	}

	for _, tt := range tests {
		if got := IntFormat(tt.bits); got != tt.want {
			t.Errorf("IntFormat(%d) = %v, want %v", tt.bits, got, tt.want)
		}
	}
}

func BenchmarkIntFrame_CopyInterleavedStereo(b *testing.B) {
	planes := [][]int32{make([]int32, 4096), make([]int32, 4096)}
	for i := range planes[0] {
		planes[0][i] = int32(i)
		planes[1][i] = int32(-i)
	}

	f := NewIntFrame(SignalSpec{Rate: 44100, Channels: 2}, 16, 4096, planes)
	dst := make([]float32, 8192)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		f.CopyInterleaved(dst)
	}
}
