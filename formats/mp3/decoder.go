// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/rauditor/media"
)

const (
	// TrackID of the only track.
	TrackID = 0
	// FramesPerPacket matches one MPEG-1 Layer III frame.
	FramesPerPacket = 1152

	// go-mp3 always produces 16-bit little-endian stereo.
	channels  = 2
	frameSize = channels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Format demuxes MPEG audio with github.com/hajimehoshi/go-mp3. The library
// decodes while reading, so the track is raw PCM rather than MP3.
type Format struct{}

var _ media.Format = Format{}

func (Format) Name() string { return "mp3" }

// Probe accepts an ID3v2 tag or an MPEG audio frame sync. The frame sync is
// a loose match, so this format should be registered last.
func (Format) Probe(header []byte) bool {
	if bytes.HasPrefix(header, []byte("ID3")) {
		return true
	}

	if len(header) < 2 || header[0] != 0xff || header[1]&0xe0 != 0xe0 {
		return false
	}

	version := (header[1] >> 3) & 0x3
	layer := (header[1] >> 1) & 0x3

	return version != 1 && layer != 0
}

func (Format) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	dec, err := gomp3.NewDecoder(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMp3File, err)
	}

	var frames uint64
	if n := dec.Length(); n > 0 {
		frames = uint64(n / frameSize)
	}

	return newDemuxer(dec, frames), nil
}

type demuxer struct {
	dec     mp3Reader
	track   media.Track
	meta    media.MetadataLog
	buf     []byte
	pending error
}

func newDemuxer(dec mp3Reader, frames uint64) *demuxer {
	return &demuxer{
		dec: dec,
		track: media.Track{ID: TrackID, Params: media.CodecParams{
			Codec:              media.CodecPCMS16LE,
			SampleRate:         dec.SampleRate(),
			Channels:           channels,
			BitsPerSample:      16,
			Frames:             frames,
			MaxFramesPerPacket: FramesPerPacket,
		}},
		buf: make([]byte, FramesPerPacket*frameSize),
	}
}

func (d *demuxer) Tracks() []media.Track        { return []media.Track{d.track} }
func (d *demuxer) Metadata() *media.MetadataLog { return &d.meta }
func (d *demuxer) Close() error                 { return nil }

func (d *demuxer) NextPacket() (*media.Packet, error) {
	if d.pending != nil {
		err := d.pending
		d.pending = nil

		return nil, err
	}

	n, err := io.ReadFull(d.dec, d.buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("decoding MP3: %w", err)
	}

	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		d.pending = fmt.Errorf("decoding MP3: %w", err)
	}

	data := make([]byte, n)
	copy(data, d.buf[:n])

	return &media.Packet{TrackID: TrackID, Data: data}, nil
}
