// SPDX-License-Identifier: EPL-2.0

package render

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/rauditor/audio"
)

func TestBufferSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := NewBufferSource(audio.SignalSpec{Rate: 8000, Channels: 2}, []float32{1, 2, 3, 4, 5, 6, 7})

	if src.SampleRate() != 8000 || src.Channels() != 2 {
		t.Errorf("spec = %d Hz, %d ch", src.SampleRate(), src.Channels())
	}

	if src.Remaining() != 6 {
		t.Errorf("Remaining() = %d, want 6 (partial frame dropped)", src.Remaining())
	}

	buf := make([]float32, 4)

	n, err := src.ReadSamples(buf)
	if n != 4 || err != nil {
		t.Fatalf("first ReadSamples() = %d, %v", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Fatalf("second ReadSamples() = %d, %v, want 2, EOF", n, err)
	}

	if !slices.Equal(buf[:2], []float32{5, 6}) {
		t.Errorf("tail = %v, want [5 6]", buf[:2])
	}

	if n, err := src.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after end = %d, %v", n, err)
	}
}

func TestBufferSource_InvalidDst(t *testing.T) {
	t.Parallel()

	src := NewBufferSource(audio.SignalSpec{Rate: 8000, Channels: 2}, []float32{1, 2})

	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestBufferSource_Empty(t *testing.T) {
	t.Parallel()

	src := NewBufferSource(audio.SignalSpec{Rate: 8000, Channels: 1}, nil)

	if n, err := src.ReadSamples(make([]float32, 8)); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v, want 0, EOF", n, err)
	}
}
