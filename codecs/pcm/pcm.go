// SPDX-License-Identifier: EPL-2.0

// Package pcm decodes raw PCM packets into audio frames.
//
// Integer codecs produce planar audio.IntFrame values scaled by the
// container width (8-bit data is unsigned and recentred, 24-bit data is
// sign-extended). Float codecs produce interleaved audio.FloatFrame values.
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/media"
)

var (
	ErrBadChannels  = errors.New("pcm: channel count must be positive")
	ErrPartialFrame = errors.New("pcm: packet ends inside a frame")
)

// Codecs lists the codec types New accepts.
var Codecs = []media.CodecType{
	media.CodecPCMU8,
	media.CodecPCMS8,
	media.CodecPCMS16LE,
	media.CodecPCMS16BE,
	media.CodecPCMS24LE,
	media.CodecPCMS24BE,
	media.CodecPCMS32LE,
	media.CodecPCMS32BE,
	media.CodecPCMF32LE,
	media.CodecPCMF64LE,
}

// Decoder converts packets of one PCM track. A returned frame is valid
// until the next call to Decode.
type Decoder struct {
	params media.CodecParams
	width  int
	planes [][]int32
}

var _ media.CodecDecoder = (*Decoder)(nil)

// New builds a Decoder for params. It satisfies media.CodecFactory.
func New(params media.CodecParams) (media.CodecDecoder, error) {
	if !params.Codec.IsPCM() {
		return nil, fmt.Errorf("%w: %s", media.ErrUnsupportedCodec, params.Codec)
	}

	if params.Channels < 1 {
		return nil, ErrBadChannels
	}

	return &Decoder{
		params: params,
		width:  Width(params.Codec),
		planes: make([][]int32, params.Channels),
	}, nil
}

// Width is the size in bytes of one sample of c, 0 for non-PCM codecs.
func Width(c media.CodecType) int {
	switch c {
	case media.CodecPCMU8, media.CodecPCMS8:
		return 1
	case media.CodecPCMS16LE, media.CodecPCMS16BE:
		return 2
	case media.CodecPCMS24LE, media.CodecPCMS24BE:
		return 3
	case media.CodecPCMS32LE, media.CodecPCMS32BE, media.CodecPCMF32LE:
		return 4
	case media.CodecPCMF64LE:
		return 8
	}

	return 0
}

func (d *Decoder) Params() media.CodecParams { return d.params }

func (d *Decoder) Reset() {}

func (d *Decoder) Decode(pkt *media.Packet) (audio.Frame, error) {
	channels := d.params.Channels
	frameSize := d.width * channels

	if len(pkt.Data)%frameSize != 0 {
		return nil, media.DataError(fmt.Errorf("%w: %d bytes, frame is %d",
			ErrPartialFrame, len(pkt.Data), frameSize))
	}

	frames := len(pkt.Data) / frameSize
	capacity := max(frames, d.params.MaxFramesPerPacket)
	spec := d.params.Spec()

	switch d.params.Codec {
	case media.CodecPCMF32LE:
		data := make([]float32, frames*channels)
		for i := range data {
			data[i] = math.Float32frombits(binary.LittleEndian.Uint32(pkt.Data[i*4:]))
		}

		return audio.NewFloatFrame(spec, capacity, data), nil

	case media.CodecPCMF64LE:
		data := make([]float32, frames*channels)
		for i := range data {
			data[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(pkt.Data[i*8:])))
		}

		return audio.NewFloatFrame(spec, capacity, data), nil
	}

	read := sampleReader(d.params.Codec)
	for ch := range d.planes {
		if cap(d.planes[ch]) < frames {
			d.planes[ch] = make([]int32, frames, capacity)
		}
		d.planes[ch] = d.planes[ch][:frames]
	}

	for f := range frames {
		row := pkt.Data[f*frameSize:]
		for ch := range channels {
			d.planes[ch][f] = read(row[ch*d.width:])
		}
	}

	return audio.NewIntFrame(spec, d.width*8, capacity, d.planes), nil
}

func sampleReader(c media.CodecType) func([]byte) int32 {
	switch c {
	case media.CodecPCMU8:
		return func(b []byte) int32 { return int32(b[0]) - 128 }
	case media.CodecPCMS8:
		return func(b []byte) int32 { return int32(int8(b[0])) }
	case media.CodecPCMS16LE:
		return func(b []byte) int32 { return int32(int16(binary.LittleEndian.Uint16(b))) }
	case media.CodecPCMS16BE:
		return func(b []byte) int32 { return int32(int16(binary.BigEndian.Uint16(b))) }
	case media.CodecPCMS24LE:
		return func(b []byte) int32 {
			return int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
		}
	case media.CodecPCMS24BE:
		return func(b []byte) int32 {
			return int32(uint32(b[2])<<8|uint32(b[1])<<16|uint32(b[0])<<24) >> 8
		}
	case media.CodecPCMS32LE:
		return func(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) }
	case media.CodecPCMS32BE:
		return func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) }
	}

	return func([]byte) int32 { return 0 }
}
