// SPDX-License-Identifier: EPL-2.0

package media

import (
	"github.com/ik5/rauditor/audio"
)

// CodecType identifies the encoding of a track.
type CodecType uint32

const (
	// CodecNull marks a track whose codec is unknown. Track selection skips it.
	CodecNull CodecType = iota

	CodecPCMU8
	CodecPCMS8
	CodecPCMS16LE
	CodecPCMS16BE
	CodecPCMS24LE
	CodecPCMS24BE
	CodecPCMS32LE
	CodecPCMS32BE
	CodecPCMF32LE
	CodecPCMF64LE

	CodecFLAC
	CodecVorbis
	CodecOpus
)

var codecNames = map[CodecType]string{
	CodecNull:     "null",
	CodecPCMU8:    "pcm_u8",
	CodecPCMS8:    "pcm_s8",
	CodecPCMS16LE: "pcm_s16le",
	CodecPCMS16BE: "pcm_s16be",
	CodecPCMS24LE: "pcm_s24le",
	CodecPCMS24BE: "pcm_s24be",
	CodecPCMS32LE: "pcm_s32le",
	CodecPCMS32BE: "pcm_s32be",
	CodecPCMF32LE: "pcm_f32le",
	CodecPCMF64LE: "pcm_f64le",
	CodecFLAC:     "flac",
	CodecVorbis:   "vorbis",
	CodecOpus:     "opus",
}

func (c CodecType) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}

	return "unknown"
}

// IsPCM reports whether c is one of the raw PCM codecs.
func (c CodecType) IsPCM() bool {
	return c >= CodecPCMU8 && c <= CodecPCMF64LE
}

// CodecParams carries what a codec decoder needs to start.
type CodecParams struct {
	Codec CodecType

	SampleRate    int
	Channels      int
	BitsPerSample int

	// Frames is the total number of frames per channel, 0 when unknown.
	Frames uint64
	// Delay is the number of leading frames the decoder must drop.
	Delay int
	// MaxFramesPerPacket bounds a single packet, 0 when unknown.
	MaxFramesPerPacket int

	// ExtraData holds codec setup headers in stream order.
	ExtraData [][]byte
}

// Spec returns the signal spec the track advertises.
func (p CodecParams) Spec() audio.SignalSpec {
	return audio.SignalSpec{Rate: p.SampleRate, Channels: p.Channels}
}

// CodecDecoder turns packets of one track into decoded frames.
type CodecDecoder interface {
	// Params the decoder was built from.
	Params() CodecParams
	// Decode one packet. Recoverable failures are *DecodeError values with
	// KindIO or KindData; anything else is fatal for the stream.
	Decode(pkt *Packet) (audio.Frame, error)
	// Reset clears inter-packet state.
	Reset()
}

// CodecFactory builds a decoder for a track.
type CodecFactory func(params CodecParams) (CodecDecoder, error)
