// SPDX-License-Identifier: EPL-2.0

package webm

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/at-wat/ebml-go"
	"github.com/at-wat/ebml-go/webm"
	"github.com/ik5/rauditor/internal/xiph"
	"github.com/ik5/rauditor/media"
)

const (
	codecVorbis = "A_VORBIS"
	codecOpus   = "A_OPUS"
)

var ebmlMagic = []byte{0x1a, 0x45, 0xdf, 0xa3}

// Format demuxes WebM and Matroska audio with github.com/at-wat/ebml-go.
// Vorbis and Opus tracks are decodable; every other track (video,
// subtitles, other audio codecs) is listed with media.CodecNull.
type Format struct{}

var _ media.Format = Format{}

func (Format) Name() string { return "webm" }

func (Format) Probe(header []byte) bool {
	return bytes.HasPrefix(header, ebmlMagic)
}

type container struct {
	Header  webm.EBMLHeader `ebml:"EBML"`
	Segment webm.Segment    `ebml:"Segment"`
}

func (Format) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	var c container
	if err := ebml.Unmarshal(rs, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWebmFile, err)
	}

	if len(c.Segment.Tracks.TrackEntry) == 0 {
		return nil, ErrNoTracks
	}

	d := &demuxer{}
	for _, entry := range c.Segment.Tracks.TrackEntry {
		params, rev := Params(entry)
		if rev != nil {
			d.meta.Push(*rev)
		}
		d.tracks = append(d.tracks, media.Track{ID: uint32(entry.TrackNumber), Params: params})
	}

	for _, cluster := range c.Segment.Cluster {
		for _, b := range clusterBlocks(cluster) {
			d.add(b)
		}
	}

	return d, nil
}

// clusterBlocks merges a cluster's SimpleBlocks and BlockGroups back into
// timecode order. ebml-go keeps the two element kinds in separate slices.
func clusterBlocks(c webm.Cluster) []ebml.Block {
	blocks := make([]ebml.Block, 0, len(c.SimpleBlock)+len(c.BlockGroup))
	blocks = append(blocks, c.SimpleBlock...)
	for _, g := range c.BlockGroup {
		blocks = append(blocks, g.Block)
	}

	slices.SortStableFunc(blocks, func(a, b ebml.Block) int {
		return cmp.Compare(a.Timecode, b.Timecode)
	})

	return blocks
}

// Params maps a track entry to codec parameters. For Vorbis the comment
// header is returned as a metadata revision.
func Params(entry webm.TrackEntry) (media.CodecParams, *media.Revision) {
	var (
		params media.CodecParams
		rev    *media.Revision
		err    error
	)

	switch entry.CodecID {
	case codecVorbis:
		var headers [][]byte
		headers, err = xiph.SplitLacing(entry.CodecPrivate)
		if err == nil && len(headers) == 3 {
			params, err = xiph.VorbisParams(headers[0])
			params.ExtraData = headers

			if r, cerr := xiph.Comments(headers[1]); cerr == nil {
				rev = &r
			}
		} else if err == nil {
			err = xiph.ErrBadLacing
		}

	case codecOpus:
		if len(entry.CodecPrivate) > 0 {
			params, err = xiph.OpusParams(entry.CodecPrivate)
			params.ExtraData = [][]byte{entry.CodecPrivate}
		} else {
			params = media.CodecParams{
				Codec:      media.CodecOpus,
				SampleRate: xiph.OpusSampleRate,
				Delay:      int(entry.CodecDelay * xiph.OpusSampleRate / 1e9),
			}
		}

	default:
		params.Codec = media.CodecNull
	}

	if err != nil {
		params = media.CodecParams{Codec: media.CodecNull}
	}

	if params.Codec != media.CodecNull && entry.Audio != nil {
		if params.Channels == 0 {
			params.Channels = int(entry.Audio.Channels)
		}

		if params.SampleRate == 0 {
			params.SampleRate = int(entry.Audio.SamplingFrequency)
		}
	}

	return params, rev
}

type demuxer struct {
	tracks  []media.Track
	meta    media.MetadataLog
	packets []*media.Packet
	pos     int
}

func (d *demuxer) add(b ebml.Block) {
	for _, frame := range b.Data {
		d.packets = append(d.packets, &media.Packet{TrackID: uint32(b.TrackNumber), Data: frame})
	}
}

func (d *demuxer) Tracks() []media.Track        { return d.tracks }
func (d *demuxer) Metadata() *media.MetadataLog { return &d.meta }
func (d *demuxer) Close() error                 { return nil }

func (d *demuxer) NextPacket() (*media.Packet, error) {
	if d.pos >= len(d.packets) {
		return nil, io.EOF
	}

	p := d.packets[d.pos]
	d.pos++

	return p, nil
}
