// SPDX-License-Identifier: EPL-2.0

package mediatest

import (
	"encoding/binary"
	"strings"
)

// VorbisIdent builds a Vorbis identification header. Block sizes are 256/2048.
func VorbisIdent(rate, channels int) []byte {
	b := make([]byte, 30)
	copy(b, "\x01vorbis")
	b[11] = byte(channels)
	binary.LittleEndian.PutUint32(b[12:], uint32(rate))
	b[28] = 0xb8
	b[29] = 1

	return b
}

// Comments builds a comment header with the given magic ("\x03vorbis" or
// "OpusTags") from KEY=value strings.
func Comments(magic, vendor string, tags ...string) []byte {
	b := []byte(magic)
	b = appendString(b, vendor)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(tags)))

	for _, t := range tags {
		b = appendString(b, t)
	}

	if strings.HasPrefix(magic, "\x03") {
		b = append(b, 1)
	}

	return b
}

// VorbisComments is Comments for a Vorbis stream.
func VorbisComments(vendor string, tags ...string) []byte {
	return Comments("\x03vorbis", vendor, tags...)
}

// OpusHead builds an OpusHead header with mapping family 0.
func OpusHead(channels, preskip int) []byte {
	b := make([]byte, 19)
	copy(b, "OpusHead")
	b[8] = 1
	b[9] = byte(channels)
	binary.LittleEndian.PutUint16(b[10:], uint16(preskip))
	binary.LittleEndian.PutUint32(b[12:], 48000)

	return b
}

func appendString(b []byte, s string) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}
