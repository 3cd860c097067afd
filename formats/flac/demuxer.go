// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/rauditor/media"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// TrackID of the only track in a native FLAC stream.
const TrackID = 0

var signature = []byte("fLaC")

// frameReader is the part of flac.Stream the demuxer needs, so tests can
// substitute it.
type frameReader interface {
	Next() (*frame.Frame, error)
}

// Format opens native FLAC streams.
type Format struct{}

var _ media.Format = Format{}

func (Format) Name() string { return "flac" }

func (Format) Probe(header []byte) bool {
	return bytes.HasPrefix(header, signature)
}

func (Format) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	stream, err := flac.Parse(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	d := &demuxer{
		frames: stream,
		track:  media.Track{ID: TrackID, Params: Params(stream.Info)},
	}

	for _, block := range stream.Blocks {
		if block.Type != meta.TypeVorbisComment {
			continue
		}

		if vc, ok := block.Body.(*meta.VorbisComment); ok {
			d.meta.Push(Revision(vc))
		}
	}

	return d, nil
}

// Params describes the track of a stream from its STREAMINFO block.
func Params(info *meta.StreamInfo) media.CodecParams {
	return media.CodecParams{
		Codec:              media.CodecFLAC,
		SampleRate:         int(info.SampleRate),
		Channels:           int(info.NChannels),
		BitsPerSample:      int(info.BitsPerSample),
		Frames:             info.NSamples,
		MaxFramesPerPacket: int(info.BlockSizeMax),
	}
}

// Revision converts a VORBIS_COMMENT block.
func Revision(vc *meta.VorbisComment) media.Revision {
	rev := media.Revision{Vendor: vc.Vendor}
	for _, t := range vc.Tags {
		rev.Tags = append(rev.Tags, media.Tag{Key: t[0], Value: t[1]})
	}

	return rev
}

type demuxer struct {
	frames frameReader
	track  media.Track
	meta   media.MetadataLog
	last   *frame.Frame
}

func (d *demuxer) Tracks() []media.Track        { return []media.Track{d.track} }
func (d *demuxer) Metadata() *media.MetadataLog { return &d.meta }

// Close is a no-op; the caller owns the reader.
func (d *demuxer) Close() error { return nil }

// NextPacket reads the next frame header. The frame body is left for the
// codec to parse; a frame nobody parsed is consumed here so the stream stays
// aligned.
func (d *demuxer) NextPacket() (*media.Packet, error) {
	if d.last != nil && d.last.Subframes == nil {
		if err := d.last.Parse(); err != nil {
			return nil, fmt.Errorf("skipping frame %d: %w", d.last.Num, err)
		}
	}

	f, err := d.frames.Next()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}

	if err != nil {
		return nil, fmt.Errorf("reading frame header: %w", err)
	}

	d.last = f

	return &media.Packet{TrackID: TrackID, Unit: f}, nil
}
