// SPDX-License-Identifier: EPL-2.0

// Package xiph parses the codec setup headers shared by Ogg and Matroska:
// Vorbis identification, OpusHead, Vorbis-style comments and Xiph lacing.
package xiph

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"

	"github.com/ik5/rauditor/media"
)

var (
	ErrShortHeader   = errors.New("xiph: header too short")
	ErrBadSignature  = errors.New("xiph: bad header signature")
	ErrBadLacing     = errors.New("xiph: bad lacing")
	ErrBadComments   = errors.New("xiph: malformed comment header")
	vorbisIdentMagic = []byte("\x01vorbis")
	vorbisCommMagic  = []byte("\x03vorbis")
	opusHeadMagic    = []byte("OpusHead")
	opusTagsMagic    = []byte("OpusTags")
)

// OpusSampleRate is the rate every Opus stream decodes at.
const OpusSampleRate = 48000

// Identify maps the first packet of a logical stream to a codec.
func Identify(first []byte) media.CodecType {
	switch {
	case bytes.HasPrefix(first, vorbisIdentMagic):
		return media.CodecVorbis
	case bytes.HasPrefix(first, opusHeadMagic):
		return media.CodecOpus
	}

	return media.CodecNull
}

// HeaderCount is how many header packets precede audio for codec c.
func HeaderCount(c media.CodecType) int {
	switch c {
	case media.CodecVorbis:
		return 3
	case media.CodecOpus:
		return 2
	}

	return 1
}

// VorbisParams reads a Vorbis identification header.
func VorbisParams(ident []byte) (media.CodecParams, error) {
	if len(ident) < 30 {
		return media.CodecParams{}, ErrShortHeader
	}

	if !bytes.HasPrefix(ident, vorbisIdentMagic) {
		return media.CodecParams{}, ErrBadSignature
	}

	blocksizes := ident[28]
	long := 1 << (blocksizes >> 4)

	return media.CodecParams{
		Codec:              media.CodecVorbis,
		Channels:           int(ident[11]),
		SampleRate:         int(binary.LittleEndian.Uint32(ident[12:16])),
		MaxFramesPerPacket: long / 2,
	}, nil
}

// OpusParams reads an OpusHead header.
func OpusParams(head []byte) (media.CodecParams, error) {
	if len(head) < 19 {
		return media.CodecParams{}, ErrShortHeader
	}

	if !bytes.HasPrefix(head, opusHeadMagic) {
		return media.CodecParams{}, ErrBadSignature
	}

	return media.CodecParams{
		Codec:              media.CodecOpus,
		Channels:           int(head[9]),
		SampleRate:         OpusSampleRate,
		Delay:              int(binary.LittleEndian.Uint16(head[10:12])),
		MaxFramesPerPacket: 5760,
	}, nil
}

// Comments parses a Vorbis comment header or an OpusTags header.
func Comments(b []byte) (media.Revision, error) {
	switch {
	case bytes.HasPrefix(b, vorbisCommMagic):
		b = b[len(vorbisCommMagic):]
	case bytes.HasPrefix(b, opusTagsMagic):
		b = b[len(opusTagsMagic):]
	default:
		return media.Revision{}, ErrBadSignature
	}

	vendor, b, ok := lengthPrefixed(b)
	if !ok || len(b) < 4 {
		return media.Revision{}, ErrBadComments
	}

	count := binary.LittleEndian.Uint32(b)
	b = b[4:]

	rev := media.Revision{Vendor: vendor}
	for range count {
		var c string
		c, b, ok = lengthPrefixed(b)
		if !ok {
			return media.Revision{}, ErrBadComments
		}

		key, value, _ := strings.Cut(c, "=")
		rev.Tags = append(rev.Tags, media.Tag{Key: key, Value: value})
	}

	return rev, nil
}

func lengthPrefixed(b []byte) (string, []byte, bool) {
	if len(b) < 4 {
		return "", nil, false
	}

	n := binary.LittleEndian.Uint32(b)
	if uint64(n) > uint64(len(b)-4) {
		return "", nil, false
	}

	return string(b[4 : 4+n]), b[4+n:], true
}

// SplitLacing splits Matroska-style Xiph laced codec private data.
func SplitLacing(b []byte) ([][]byte, error) {
	if len(b) == 0 {
		return nil, ErrBadLacing
	}

	count := int(b[0]) + 1
	b = b[1:]

	sizes := make([]int, count-1)
	for i := range sizes {
		for {
			if len(b) == 0 {
				return nil, ErrBadLacing
			}

			v := b[0]
			b = b[1:]
			sizes[i] += int(v)

			if v < 255 {
				break
			}
		}
	}

	out := make([][]byte, 0, count)
	for _, n := range sizes {
		if n > len(b) {
			return nil, ErrBadLacing
		}

		out = append(out, b[:n])
		b = b[n:]
	}

	return append(out, b), nil
}

// Lace is the inverse of SplitLacing.
func Lace(packets [][]byte) []byte {
	if len(packets) == 0 {
		return nil
	}

	out := []byte{byte(len(packets) - 1)}
	for _, p := range packets[:len(packets)-1] {
		n := len(p)
		for n >= 255 {
			out = append(out, 255)
			n -= 255
		}
		out = append(out, byte(n))
	}

	for _, p := range packets {
		out = append(out, p...)
	}

	return out
}
