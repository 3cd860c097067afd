// SPDX-License-Identifier: EPL-2.0

package render

import (
	"io"

	"github.com/ik5/rauditor/audio"
)

// Source streams interleaved float32 samples.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples in [-1,1] and returns
	// the number of float32 values written (not frames). n == 0 with
	// io.EOF means the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources.
	Close() error
}

// BufferSource streams an in-memory interleaved buffer, typically the
// result of decoder.Decoder.Samples.
type BufferSource struct {
	spec audio.SignalSpec
	data []float32
	pos  int
}

var _ Source = (*BufferSource)(nil)

// NewBufferSource wraps samples. A trailing partial frame is never read.
func NewBufferSource(spec audio.SignalSpec, samples []float32) *BufferSource {
	whole := len(samples)
	if spec.Channels > 0 {
		whole -= whole % spec.Channels
	}

	return &BufferSource{spec: spec, data: samples[:whole]}
}

func (s *BufferSource) SampleRate() int { return s.spec.Rate }
func (s *BufferSource) Channels() int   { return s.spec.Channels }
func (s *BufferSource) Close() error    { return nil }

// Remaining is the number of samples not read yet.
func (s *BufferSource) Remaining() int { return len(s.data) - s.pos }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	if s.spec.Channels < 1 || len(dst)%s.spec.Channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	n := copy(dst, s.data[s.pos:])
	s.pos += n

	if s.pos >= len(s.data) {
		return n, io.EOF
	}

	return n, nil
}
