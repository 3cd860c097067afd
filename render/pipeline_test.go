// SPDX-License-Identifier: EPL-2.0

package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/ik5/rauditor/internal/mediatest"
)

func TestToMono16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    Source
		rate   int
		want   int
		check  func(int16) bool
		detail string
	}{
		{
			name:   "stereo sine 44.1k to 8k",
			src:    newSource(44100, 2, 44100, mediatest.Sine(44100, 440)),
			rate:   8000,
			want:   8000,
			check:  func(int16) bool { return true },
			detail: "any value",
		},
		{
			name:   "constant mono 16k to 8k",
			src:    newSource(16000, 1, 16000, mediatest.Constant(0.5)),
			rate:   8000,
			want:   8000,
			check:  func(s int16) bool { return s >= 16382 && s <= 16384 },
			detail: "≈16383",
		},
		{
			name:   "silence",
			src:    silence(8000, 2, 800),
			rate:   8000,
			want:   800,
			check:  func(s int16) bool { return s == 0 },
			detail: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pcm, err := ToMono16(tt.src, tt.rate, 4096)
			if err != nil {
				t.Fatalf("ToMono16() error = %v", err)
			}

			if d := len(pcm) - tt.want; d < -1 || d > 1 {
				t.Errorf("len = %d, want %d", len(pcm), tt.want)
			}

			for i, s := range pcm {
				if !tt.check(s) {
					t.Fatalf("pcm[%d] = %d, want %s", i, s, tt.detail)
				}
			}
		})
	}
}

func TestToMono16_Errors(t *testing.T) {
	t.Parallel()

	if _, err := ToMono16(silence(8000, 1, 10), 0, 1024); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("rate 0 error = %v, want ErrInvalidRate", err)
	}

	if _, err := ToMono16(&failingSource{channels: 1, left: 3}, 8000, 1024); !errors.Is(err, errSourceBroken) {
		t.Errorf("error = %v, want %v", err, errSourceBroken)
	}
}

func TestWriteWAV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	samples := []int16{0, 1000, -1000, 32767, -32768}
	if err := WriteWAV(f, 8000, samples); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	dec := wav.NewDecoder(in)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if dec.SampleRate != 8000 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Errorf("header = %d Hz, %d ch, %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}

	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}

	for i, s := range samples {
		if buf.Data[i] != int(s) {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], s)
		}
	}

	if err := WriteWAV(f, 0, samples); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("WriteWAV(rate 0) error = %v", err)
	}
}
