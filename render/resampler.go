// SPDX-License-Identifier: EPL-2.0

package render

import (
	"errors"
	"fmt"
	"io"
)

// Resampler streams src at another sample rate using cubic interpolation.
// It works on interleaved samples and keeps the channel count. When
// downsampling, input frames go through a one-pole low-pass first.
type Resampler struct {
	src      Source
	rate     int
	channels int
	// step is how many source frames one output frame advances.
	step float64
	pos  float64

	// window holds four consecutive source frames; output lies between
	// window[1] and window[2].
	window [4][]float32
	valid  [4]bool
	primed bool
	eof    bool
	in     []float32

	lowpass bool
	alpha   float32
	state   []float32
	seed    bool
}

func NewResampler(src Source, rate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(rate)

	r := &Resampler{
		src:      src,
		rate:     rate,
		channels: channels,
		step:     step,
		in:       make([]float32, channels),
		lowpass:  step > 1,
		alpha:    0.5,
		state:    make([]float32, channels),
		seed:     true,
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// readFrame reads one source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.in)
	if errors.Is(err, io.EOF) || (err == nil && n == 0) {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("reading source: %w", err)
	}

	if n < r.channels {
		return false, nil
	}

	copy(dst, r.in)

	if r.lowpass {
		if r.seed {
			copy(r.state, dst)
			r.seed = false
		}

		for c, v := range dst {
			dst[c] = r.alpha*v + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.window[1])
	if err != nil || !ok {
		return err
	}

	copy(r.window[0], r.window[1])
	r.valid[0], r.valid[1] = true, true

	for i := 2; i < len(r.window); i++ {
		if r.valid[i], err = r.readFrame(r.window[i]); err != nil {
			return err
		}
	}

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.valid[:], r.valid[1:])
	r.window[3] = first

	var err error
	r.valid[3], err = r.readFrame(r.window[3])

	return err
}

// ReadSamples fills dst with samples at the target rate. len(dst) must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.valid[1] {
			return written * r.channels, io.EOF
		}

		y0, y1, y2, y3 := r.window[0], r.window[1], r.window[2], r.window[3]
		if !r.valid[0] {
			y0 = y1
		}
		if !r.valid[2] {
			y2 = y1
		}
		if !r.valid[3] {
			y3 = y2
		}

		x := float32(r.pos)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = cubic(y0[c], y1[c], y2[c], y3[c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
