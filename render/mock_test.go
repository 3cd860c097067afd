// SPDX-License-Identifier: EPL-2.0

package render

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/internal/mediatest"
)

func newSource(rate, channels, frames int, w mediatest.Waveform) *BufferSource {
	return NewBufferSource(audio.SignalSpec{Rate: rate, Channels: channels},
		mediatest.Generate(channels, frames, w))
}

func silence(rate, channels, frames int) *BufferSource {
	return newSource(rate, channels, frames, mediatest.Constant(0))
}

// failingSource hands out n samples, then fails.
type failingSource struct {
	channels int
	left     int
	closed   bool
}

var errSourceBroken = errors.New("source broken")

func (s *failingSource) SampleRate() int { return 8000 }
func (s *failingSource) Channels() int   { return s.channels }

func (s *failingSource) Close() error {
	s.closed = true
	return errSourceBroken
}

func (s *failingSource) ReadSamples(dst []float32) (int, error) {
	if s.left <= 0 {
		return 0, errSourceBroken
	}

	n := min(len(dst), s.left)
	clear(dst[:n])
	s.left -= n

	return n, nil
}

// drain reads src to the end in chunks of size samples.
func drain(t testing.TB, src Source, size int) []float32 {
	t.Helper()

	buf := make([]float32, size)

	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out
		}

		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func spec(rate, channels int) audio.SignalSpec {
	return audio.SignalSpec{Rate: rate, Channels: channels}
}
