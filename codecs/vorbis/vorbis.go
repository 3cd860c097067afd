// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Vorbis packets with github.com/jfreymuth/vorbis.
//
// The three setup headers (identification, comment, setup) must be in
// CodecParams.ExtraData in stream order; formats/ogg and formats/webm
// collect them there.
package vorbis

import (
	"errors"
	"fmt"

	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/media"
	"github.com/jfreymuth/vorbis"
)

var (
	ErrMissingHeaders = errors.New("vorbis: setup headers missing")
	ErrBadHeader      = errors.New("vorbis: bad setup header")
)

// packetDecoder is the part of vorbis.Decoder in use, so tests can mock it.
type packetDecoder interface {
	ReadHeader(header []byte) error
	Decode(packet []byte) ([]float32, error)
	Clear()
}

type Decoder struct {
	params media.CodecParams
	dec    packetDecoder
}

var _ media.CodecDecoder = (*Decoder)(nil)

// New satisfies media.CodecFactory.
func New(params media.CodecParams) (media.CodecDecoder, error) {
	return newDecoder(params, new(vorbis.Decoder))
}

func newDecoder(params media.CodecParams, dec packetDecoder) (*Decoder, error) {
	if params.Codec != media.CodecVorbis {
		return nil, fmt.Errorf("%w: %s", media.ErrUnsupportedCodec, params.Codec)
	}

	if params.Channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrBadHeader, params.Channels)
	}

	if len(params.ExtraData) < 3 {
		return nil, fmt.Errorf("%w: have %d of 3", ErrMissingHeaders, len(params.ExtraData))
	}

	for i, h := range params.ExtraData[:3] {
		if err := dec.ReadHeader(h); err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrBadHeader, i, err)
		}
	}

	return &Decoder{params: params, dec: dec}, nil
}

func (d *Decoder) Params() media.CodecParams { return d.params }

func (d *Decoder) Reset() { d.dec.Clear() }

// Decode returns interleaved float samples. The first audio packet of a
// stream decodes to an empty frame.
func (d *Decoder) Decode(pkt *media.Packet) (audio.Frame, error) {
	out, err := d.dec.Decode(pkt.Data)
	if err != nil {
		return nil, media.DataError(err)
	}

	channels := d.params.Channels
	if len(out)%channels != 0 {
		return nil, media.DataError(fmt.Errorf("%d samples for %d channels", len(out), channels))
	}

	return audio.NewFloatFrame(d.params.Spec(), d.params.MaxFramesPerPacket, out), nil
}
