// SPDX-License-Identifier: EPL-2.0

// Package mediatest provides scripted demuxers, recording codecs and
// container fixtures for tests of the decode pipeline.
package mediatest

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/ik5/rauditor/media"
)

// Step is one scripted NextPacket result.
type Step struct {
	Packet *media.Packet
	Err    error
	// Meta is pushed to the metadata log before the step is returned.
	Meta *media.Revision
	// Tracks replaces the track list before the step is returned.
	Tracks []media.Track
}

// Demuxer replays a list of steps, then returns io.EOF.
type Demuxer struct {
	tracks []media.Track
	steps  []Step
	pos    int
	meta   media.MetadataLog

	Closed bool
}

var _ media.Demuxer = (*Demuxer)(nil)

func NewDemuxer(tracks []media.Track, steps ...Step) *Demuxer {
	return &Demuxer{tracks: tracks, steps: steps}
}

func (d *Demuxer) Tracks() []media.Track        { return d.tracks }
func (d *Demuxer) Metadata() *media.MetadataLog { return &d.meta }

func (d *Demuxer) Close() error {
	d.Closed = true
	return nil
}

// Remaining is the number of steps not yet returned.
func (d *Demuxer) Remaining() int { return len(d.steps) - d.pos }

func (d *Demuxer) NextPacket() (*media.Packet, error) {
	if d.pos >= len(d.steps) {
		return nil, io.EOF
	}

	s := d.steps[d.pos]
	d.pos++

	if s.Meta != nil {
		d.meta.Push(*s.Meta)
	}

	if s.Tracks != nil {
		d.tracks = s.Tracks
	}

	if s.Err != nil {
		return nil, s.Err
	}

	return s.Packet, nil
}

// Packet is a step carrying samples for track id.
func Packet(id uint32, samples ...float32) Step {
	return Step{Packet: &media.Packet{TrackID: id, Data: EncodeFloats(samples)}}
}

// Fail is a step returning err from NextPacket.
func Fail(err error) Step {
	return Step{Err: err}
}

// Reset is a step that swaps the track list and reports ErrResetRequired.
func Reset(tracks ...media.Track) Step {
	return Step{Err: media.ErrResetRequired, Tracks: tracks}
}

// Meta is a step that pushes rev and then returns a packet for track id.
func Meta(rev media.Revision, id uint32, samples ...float32) Step {
	s := Packet(id, samples...)
	s.Meta = &rev

	return s
}

// Track is a float track the Codec factory can decode.
func Track(id uint32, rate, channels int) media.Track {
	return media.Track{ID: id, Params: media.CodecParams{
		Codec:      media.CodecPCMF32LE,
		SampleRate: rate,
		Channels:   channels,
	}}
}

// NullTrack is a track no codec accepts.
func NullTrack(id uint32) media.Track {
	return media.Track{ID: id, Params: media.CodecParams{Codec: media.CodecNull}}
}

// EncodeFloats packs samples as little-endian float32.
func EncodeFloats(samples []float32) []byte {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// DecodeFloats is the inverse of EncodeFloats. A trailing partial sample is dropped.
func DecodeFloats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}

	return out
}
