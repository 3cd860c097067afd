// SPDX-License-Identifier: EPL-2.0

package mediatest

import (
	"bytes"
	"fmt"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// FLAC16 encodes a mono 16-bit stream with verbatim subframes of blockSize
// samples each. tags, if not nil, become a VORBIS_COMMENT block.
func FLAC16(rate, blockSize int, samples []int32, tags [][2]string) ([]byte, error) {
	info := &meta.StreamInfo{
		BlockSizeMin:  uint16(blockSize),
		BlockSizeMax:  uint16(blockSize),
		SampleRate:    uint32(rate),
		NChannels:     1,
		BitsPerSample: 16,
		NSamples:      uint64(len(samples)),
	}

	var blocks []*meta.Block
	if tags != nil {
		comment := &meta.VorbisComment{Vendor: "rauditor test", Tags: tags}
		blocks = append(blocks, &meta.Block{
			// The encoder writes an empty block when Length is 0.
			Header: meta.Header{Type: meta.TypeVorbisComment, Length: commentLength(comment)},
			Body:   comment,
		})
	}

	buf := new(bytes.Buffer)
	enc, err := flac.NewEncoder(buf, info, blocks...)
	if err != nil {
		return nil, fmt.Errorf("creating encoder: %w", err)
	}

	for num := 0; len(samples) > 0; num++ {
		n := min(blockSize, len(samples))
		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				SampleRate:        uint32(rate),
				Channels:          frame.ChannelsMono,
				BitsPerSample:     16,
				Num:               uint64(num),
			},
			Subframes: []*frame.Subframe{{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   samples[:n],
				NSamples:  n,
			}},
		}

		if err := enc.WriteFrame(f); err != nil {
			return nil, fmt.Errorf("writing frame %d: %w", num, err)
		}

		samples = samples[n:]
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// commentLength is the encoded size of a VORBIS_COMMENT block body.
func commentLength(c *meta.VorbisComment) int64 {
	n := 4 + len(c.Vendor) + 4
	for _, tag := range c.Tags {
		n += 4 + len(tag[0]) + 1 + len(tag[1])
	}

	return int64(n)
}
