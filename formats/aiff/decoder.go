// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/rauditor/media"
)

const (
	// TrackID of the only track in an AIFF file.
	TrackID = 0
	// FramesPerPacket is how many frames one packet holds.
	FramesPerPacket = 1152
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Format demuxes AIFF files with github.com/go-audio/aiff.
type Format struct{}

var _ media.Format = Format{}

func (Format) Name() string { return "aiff" }

func (Format) Probe(header []byte) bool {
	return len(header) >= 12 &&
		bytes.Equal(header[0:4], []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC")))
}

func (Format) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	params := media.CodecParams{
		Codec:              Codec(int(dec.BitDepth)),
		SampleRate:         format.SampleRate,
		Channels:           format.NumChannels,
		BitsPerSample:      int(dec.BitDepth),
		Frames:             uint64(dec.NumSampleFrames),
		MaxFramesPerPacket: FramesPerPacket,
	}

	return newDemuxer(dec, params), nil
}

// Codec maps an AIFF sample size to its big-endian PCM codec.
func Codec(bits int) media.CodecType {
	switch bits {
	case 8:
		return media.CodecPCMS8
	case 16:
		return media.CodecPCMS16BE
	case 24:
		return media.CodecPCMS24BE
	case 32:
		return media.CodecPCMS32BE
	}

	return media.CodecNull
}

type demuxer struct {
	dec     aiffReader
	track   media.Track
	meta    media.MetadataLog
	intBuf  *goaudio.IntBuffer
	width   int
	pending error
}

func newDemuxer(dec aiffReader, params media.CodecParams) *demuxer {
	return &demuxer{
		dec:   dec,
		track: media.Track{ID: TrackID, Params: params},
		width: (params.BitsPerSample + 7) / 8,
		intBuf: &goaudio.IntBuffer{
			Data:           make([]int, FramesPerPacket*params.Channels),
			Format:         dec.Format(),
			SourceBitDepth: params.BitsPerSample,
		},
	}
}

func (d *demuxer) Tracks() []media.Track        { return []media.Track{d.track} }
func (d *demuxer) Metadata() *media.MetadataLog { return &d.meta }
func (d *demuxer) Close() error                 { return nil }

// NextPacket re-encodes the next block of go-audio integer samples as
// big-endian PCM at the file's sample width.
func (d *demuxer) NextPacket() (*media.Packet, error) {
	if d.pending != nil {
		err := d.pending
		d.pending = nil

		return nil, err
	}

	n, err := d.dec.PCMBuffer(d.intBuf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("reading AIFF samples: %w", err)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		d.pending = fmt.Errorf("reading AIFF samples: %w", err)
	}

	return &media.Packet{TrackID: TrackID, Data: d.pack(d.intBuf.Data[:n])}, nil
}

func (d *demuxer) pack(samples []int) []byte {
	out := make([]byte, len(samples)*d.width)
	for i, s := range samples {
		v := uint32(int32(s))
		b := out[i*d.width : (i+1)*d.width]
		for j := range b {
			b[j] = byte(v >> (8 * (d.width - 1 - j)))
		}
	}

	return out
}
