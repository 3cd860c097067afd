// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/rauditor/internal/xiph"
	"github.com/ik5/rauditor/media"
	"github.com/jfreymuth/oggvorbis"
)

// Format demuxes Ogg files carrying Vorbis and Opus. Other logical streams
// (Theora, Ogg FLAC, ...) are listed as media.CodecNull tracks.
type Format struct{}

var _ media.Format = Format{}

func (Format) Name() string { return "ogg" }

func (Format) Probe(header []byte) bool {
	return bytes.HasPrefix(header, capturePattern)
}

func (Format) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	frames, err := vorbisLength(rs)
	if err != nil {
		return nil, err
	}

	d := &demuxer{pages: newPageReader(rs)}
	d.read = newLink()
	d.cur = d.read

	if err := d.readUntil(d.cur.complete); err != nil {
		return nil, err
	}

	if len(d.cur.order) == 0 {
		return nil, ErrNotOggFile
	}

	if frames > 0 && len(d.cur.order) == 1 {
		d.cur.streams[d.cur.order[0]].params.Frames = uint64(frames)
	}

	return d, nil
}

// vorbisLength asks oggvorbis for the length of a file whose first stream
// is Vorbis. Anything else reports 0. rs is rewound either way.
func vorbisLength(rs io.ReadSeeker) (int64, error) {
	head := make([]byte, media.ProbeSize)
	n, _ := io.ReadFull(rs, head)

	var frames int64
	if bytes.Contains(head[:n], []byte("\x01vorbis")) {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return 0, fmt.Errorf("rewinding source: %w", err)
		}

		if length, _, err := oggvorbis.GetLength(rs); err == nil {
			frames = length
		}
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewinding source: %w", err)
	}

	return frames, nil
}

type stream struct {
	serial  uint32
	params  media.CodecParams
	headers [][]byte
	wanted  int
	partial []byte
}

func (s *stream) complete() bool {
	return s.wanted > 0 && len(s.headers) >= s.wanted
}

func (s *stream) track() media.Track {
	p := s.params
	p.ExtraData = s.headers

	return media.Track{ID: s.serial, Params: p}
}

// assemble splits a page into complete packets, carrying a trailing
// partial packet over to the next page of the stream.
func (s *stream) assemble(p *page) [][]byte {
	// A continuation whose start was lost (e.g., skipped as corrupt) is
	// dropped, and so is a partial packet the next page does not continue.
	skip := p.continued() && s.partial == nil
	if !p.continued() {
		s.partial = nil
	}

	var (
		out [][]byte
		pos int
	)

	for _, v := range p.lacing {
		s.partial = append(s.partial, p.body[pos:pos+int(v)]...)
		pos += int(v)

		if v < 255 {
			if !skip {
				out = append(out, s.partial)
			}
			skip = false
			s.partial = nil
		}
	}

	return out
}

// link is one group of concurrently multiplexed streams. A chained file is
// a sequence of links.
type link struct {
	streams map[uint32]*stream
	order   []uint32
	data    bool
}

func newLink() *link {
	return &link{streams: make(map[uint32]*stream)}
}

// complete reports whether every stream of the link has its headers. All
// BOS pages precede the first non-BOS page, so the stream set is known once
// data is set.
func (l *link) complete() bool {
	if !l.data {
		return false
	}

	for _, s := range l.streams {
		if !s.complete() {
			return false
		}
	}

	return true
}

func (l *link) tracks() []media.Track {
	out := make([]media.Track, 0, len(l.order))
	for _, serial := range l.order {
		out = append(out, l.streams[serial].track())
	}

	return out
}

// entry is a queued packet, or the start of a new link when next is set.
type entry struct {
	pkt  *media.Packet
	next *link
}

type demuxer struct {
	pages *pageReader
	// cur is the link whose tracks are reported; read is the link pages are
	// currently assigned to. They differ while packets of the previous link
	// are still queued.
	cur   *link
	read  *link
	queue []entry
	meta  media.MetadataLog
	eof   bool
}

func (d *demuxer) Tracks() []media.Track        { return d.cur.tracks() }
func (d *demuxer) Metadata() *media.MetadataLog { return &d.meta }
func (d *demuxer) Close() error                 { return nil }

// NextPacket returns media.ErrResetRequired between links, after the new
// link's headers have been read.
func (d *demuxer) NextPacket() (*media.Packet, error) {
	for {
		if len(d.queue) > 0 {
			e := d.queue[0]
			d.queue = d.queue[1:]

			if e.next == nil {
				return e.pkt, nil
			}

			if err := d.readUntil(e.next.complete); err != nil {
				return nil, err
			}
			d.cur = e.next

			return nil, media.ErrResetRequired
		}

		if d.eof {
			return nil, io.EOF
		}

		if err := d.readUntil(func() bool { return len(d.queue) > 0 }); err != nil {
			return nil, err
		}
	}
}

// readUntil consumes pages until done reports true or the data ends.
func (d *demuxer) readUntil(done func() bool) error {
	for !d.eof && !done() {
		p, err := d.pages.next()
		if errors.Is(err, io.EOF) {
			d.eof = true
			return nil
		}

		if err != nil {
			return err
		}

		d.handlePage(p)
	}

	return nil
}

func (d *demuxer) handlePage(p *page) {
	if p.bos() {
		if d.read.data {
			d.read = newLink()
			d.queue = append(d.queue, entry{next: d.read})
		}

		if _, ok := d.read.streams[p.serial]; !ok {
			d.read.streams[p.serial] = &stream{serial: p.serial}
			d.read.order = append(d.read.order, p.serial)
		}
	} else {
		d.read.data = true
	}

	s, ok := d.read.streams[p.serial]
	if !ok {
		return
	}

	for _, pkt := range s.assemble(p) {
		d.emit(s, pkt)
	}
}

func (d *demuxer) emit(s *stream, pkt []byte) {
	switch {
	case s.wanted == 0:
		s.params = identify(pkt)
		s.wanted = xiph.HeaderCount(s.params.Codec)
		s.headers = append(s.headers, pkt)

	case len(s.headers) < s.wanted:
		if len(s.headers) == 1 {
			if rev, err := xiph.Comments(pkt); err == nil {
				d.meta.Push(rev)
			}
		}
		s.headers = append(s.headers, pkt)

	default:
		d.queue = append(d.queue, entry{pkt: &media.Packet{TrackID: s.serial, Data: pkt}})
	}
}

func identify(first []byte) media.CodecParams {
	var (
		params media.CodecParams
		err    error
	)

	switch xiph.Identify(first) {
	case media.CodecVorbis:
		params, err = xiph.VorbisParams(first)
	case media.CodecOpus:
		params, err = xiph.OpusParams(first)
	default:
		return media.CodecParams{Codec: media.CodecNull}
	}

	if err != nil {
		return media.CodecParams{Codec: media.CodecNull}
	}

	return params
}
