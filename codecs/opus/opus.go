// SPDX-License-Identifier: EPL-2.0

//go:build opus

package opus

import (
	"errors"
	"fmt"

	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/media"
	"gopkg.in/hraban/opus.v2"
)

const (
	sampleRate = 48000
	// maxFrames is 120 ms at 48 kHz, the longest Opus packet.
	maxFrames = 5760
)

var ErrBadChannels = errors.New("opus: only mono and stereo streams are supported")

// packetDecoder is the part of opus.Decoder in use, so tests can mock it.
type packetDecoder interface {
	DecodeFloat32(data []byte, pcm []float32) (int, error)
}

type Decoder struct {
	params media.CodecParams
	dec    packetDecoder
	pcm    []float32
	skip   int
	newDec func() (packetDecoder, error)
}

var _ media.CodecDecoder = (*Decoder)(nil)

// New satisfies media.CodecFactory.
func New(params media.CodecParams) (media.CodecDecoder, error) {
	if params.Codec != media.CodecOpus {
		return nil, fmt.Errorf("%w: %s", media.ErrUnsupportedCodec, params.Codec)
	}

	if params.Channels < 1 || params.Channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrBadChannels, params.Channels)
	}

	return newDecoder(params, func() (packetDecoder, error) {
		return opus.NewDecoder(sampleRate, params.Channels)
	})
}

func newDecoder(params media.CodecParams, factory func() (packetDecoder, error)) (*Decoder, error) {
	params.SampleRate = sampleRate
	if params.MaxFramesPerPacket == 0 {
		params.MaxFramesPerPacket = maxFrames
	}

	dec, err := factory()
	if err != nil {
		return nil, fmt.Errorf("creating opus decoder: %w", err)
	}

	return &Decoder{
		params: params,
		dec:    dec,
		pcm:    make([]float32, maxFrames*params.Channels),
		skip:   params.Delay,
		newDec: factory,
	}, nil
}

func (d *Decoder) Params() media.CodecParams { return d.params }

// Reset replaces the libopus state and re-arms the pre-skip.
func (d *Decoder) Reset() {
	if dec, err := d.newDec(); err == nil {
		d.dec = dec
	}
	d.skip = d.params.Delay
}

func (d *Decoder) Decode(pkt *media.Packet) (audio.Frame, error) {
	n, err := d.dec.DecodeFloat32(pkt.Data, d.pcm)
	if err != nil {
		return nil, media.DataError(err)
	}

	start := min(d.skip, n)
	d.skip -= start

	ch := d.params.Channels
	out := d.pcm[start*ch : n*ch]

	return audio.NewFloatFrame(d.params.Spec(), d.params.MaxFramesPerPacket, out), nil
}
