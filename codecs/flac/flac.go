// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC frames delimited by formats/flac.
package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/media"
	"github.com/mewkiz/flac/frame"
)

// ErrNotFrame is returned for packets that do not carry a *frame.Frame.
// It is fatal: the demuxer and codec do not belong together.
var ErrNotFrame = errors.New("flac: packet does not carry a frame")

// Decoder turns mewkiz frames into audio.IntFrame. It keeps no state
// between packets.
type Decoder struct {
	params media.CodecParams
}

var _ media.CodecDecoder = (*Decoder)(nil)

// New satisfies media.CodecFactory.
func New(params media.CodecParams) (media.CodecDecoder, error) {
	if params.Codec != media.CodecFLAC {
		return nil, fmt.Errorf("%w: %s", media.ErrUnsupportedCodec, params.Codec)
	}

	return &Decoder{params: params}, nil
}

func (d *Decoder) Params() media.CodecParams { return d.params }
func (d *Decoder) Reset()                    {}

// Decode parses the frame body if the demuxer only read its header, then
// converts it. A truncated frame is an I/O error.
func (d *Decoder) Decode(pkt *media.Packet) (audio.Frame, error) {
	f, ok := pkt.Unit.(*frame.Frame)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotFrame, pkt.Unit)
	}

	if f.Subframes == nil {
		if err := f.Parse(); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, media.IOError(err)
			}

			return nil, media.DataError(err)
		}
	}

	return d.convert(f)
}

func (d *Decoder) convert(f *frame.Frame) (audio.Frame, error) {
	spec := audio.SignalSpec{Rate: int(f.SampleRate), Channels: f.Channels.Count()}
	if spec.Rate == 0 {
		spec.Rate = d.params.SampleRate
	}

	bits := int(f.BitsPerSample)
	if bits == 0 {
		bits = d.params.BitsPerSample
	}

	if len(f.Subframes) != spec.Channels {
		return nil, media.DataError(fmt.Errorf("frame %d: %d subframes for %d channels",
			f.Num, len(f.Subframes), spec.Channels))
	}

	planes := make([][]int32, spec.Channels)
	n := int(f.BlockSize)
	for ch, sub := range f.Subframes {
		if len(sub.Samples) < n {
			return nil, media.DataError(fmt.Errorf("frame %d: subframe %d has %d samples, want %d",
				f.Num, ch, len(sub.Samples), n))
		}

		planes[ch] = sub.Samples[:n]
	}

	return audio.NewIntFrame(spec, bits, d.params.MaxFramesPerPacket, planes), nil
}
