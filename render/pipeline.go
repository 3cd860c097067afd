// SPDX-License-Identifier: EPL-2.0

package render

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ToMono16 resamples src to rate, mixes it down to mono and collects the
// result as 16-bit PCM. bufferSize is the read size in samples.
func ToMono16(src Source, rate, bufferSize int) ([]int16, error) {
	if rate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}

	mono := NewMonoMixer(NewResampler(src, rate))

	pcm := make([]int16, 0, rate)
	buf := make([]float32, max(bufferSize, 1))

	for {
		n, err := mono.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm = append(pcm, Float32ToInt16(v))
		}

		if errors.Is(err, io.EOF) {
			return pcm, nil
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}
}

// WriteWAV encodes mono 16-bit samples as a PCM WAV file.
func WriteWAV(w io.WriteSeeker, rate int, samples []int16) error {
	if rate <= 0 {
		return ErrInvalidRate
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(w, rate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}

	return nil
}
