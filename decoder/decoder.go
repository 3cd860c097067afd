// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/media"
	"github.com/sirupsen/logrus"
)

// SelectTrack returns the first track with a known codec, in container order.
func SelectTrack(tracks []media.Track) (media.Track, error) {
	for _, t := range tracks {
		if t.Params.Codec != media.CodecNull {
			return t, nil
		}
	}

	return media.Track{}, media.ErrNoDecodableTrack
}

// Decoder drives one demuxer and one codec and accumulates the selected
// track into a flat interleaved float32 buffer.
type Decoder struct {
	reg     *media.Registry
	demuxer media.Demuxer
	file    io.Closer

	log    logrus.FieldLogger
	policy ResetPolicy

	// run is held for the whole of Decode and Close.
	run     sync.Mutex
	codec   media.CodecDecoder
	scratch *audio.SampleBuffer
	buf     []float32
	closed  bool

	samples atomic.Pointer[[]float32]

	mu      sync.Mutex
	track   media.Track
	status  Status
	meta    media.Revision
	hasMeta bool
}

// Open decodes the file at path. The file is closed by Decoder.Close.
func Open(reg *media.Registry, path string, opts ...Option) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	d, err := New(reg, f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}

	d.file = f

	return d, nil
}

// New probes r, opens its container and prepares a decoder for the first
// decodable track. Readers that cannot seek are buffered in memory.
func New(reg *media.Registry, r io.Reader, opts ...Option) (*Decoder, error) {
	src, err := media.NewSource(r)
	if err != nil {
		return nil, err
	}

	format, err := reg.Probe(src)
	if err != nil {
		return nil, err
	}

	demuxer, err := format.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", media.ErrUnsupportedFormat, format.Name(), err)
	}

	return FromDemuxer(reg, demuxer, opts...)
}

// FromDemuxer prepares a decoder over an already open demuxer. The decoder
// owns d from here on, including when construction fails.
func FromDemuxer(reg *media.Registry, d media.Demuxer, opts ...Option) (*Decoder, error) {
	dec := &Decoder{
		reg:     reg,
		demuxer: d,
		log:     logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(dec)
	}

	track, codec, err := dec.selectCodec()
	if err != nil {
		d.Close()
		return nil, err
	}

	dec.track = track
	dec.codec = codec
	dec.drainMetadata()

	dec.log.WithFields(logrus.Fields{
		"track": track.ID,
		"codec": track.Params.Codec,
		"spec":  track.Params.Spec(),
	}).Debug("track selected")

	return dec, nil
}

func (d *Decoder) selectCodec() (media.Track, media.CodecDecoder, error) {
	track, err := SelectTrack(d.demuxer.Tracks())
	if err != nil {
		return media.Track{}, nil, err
	}

	codec, err := d.reg.MakeCodec(track.Params)
	if err != nil {
		return media.Track{}, nil, err
	}

	return track, codec, nil
}

// Decode runs the loop until the stream ends, a fatal error occurs, the
// track list changes under ResetStop, or ctx is done. ctx is checked between
// packets.
//
// Once stopped, Decode returns the recorded error without doing anything,
// unless the previous run was aborted, in which case it resumes.
func (d *Decoder) Decode(ctx context.Context) error {
	if !d.run.TryLock() {
		return ErrDecodeInProgress
	}
	defer d.run.Unlock()

	if d.closed {
		return ErrClosed
	}

	d.mu.Lock()
	if d.status.State == StateStopped && d.status.Reason != StopAborted {
		err := d.status.Err
		d.mu.Unlock()
		return err
	}
	d.status.State = StateRunning
	d.status.Reason = StopNone
	d.status.Err = nil
	d.mu.Unlock()

	reason, err := d.loop(ctx)

	d.mu.Lock()
	d.status.State = StateStopped
	d.status.Reason = reason
	d.status.Err = err
	stats := d.status.Stats
	d.mu.Unlock()

	entry := d.log.WithFields(logrus.Fields{
		"reason":  reason,
		"packets": stats.Packets,
		"frames":  stats.Frames,
		"skipped": stats.Skipped,
	})

	switch reason {
	case StopExhausted, StopAborted:
		entry.Info("decode stopped")
	default:
		entry.WithError(err).Warn("decode stopped")
	}

	return err
}

func (d *Decoder) loop(ctx context.Context) (StopReason, error) {
	for {
		if err := ctx.Err(); err != nil {
			return StopAborted, err
		}

		pkt, err := d.demuxer.NextPacket()
		d.drainMetadata()

		switch {
		case errors.Is(err, io.EOF):
			return StopExhausted, nil
		case errors.Is(err, media.ErrResetRequired):
			if err := d.reset(); err != nil {
				return StopResetRequired, err
			}
			continue
		case err != nil:
			return StopFatal, fmt.Errorf("reading packet: %w", err)
		}

		d.count(func(s *Stats) { s.Packets++ })

		if pkt.TrackID != d.Track().ID {
			d.count(func(s *Stats) { s.Discarded++ })
			continue
		}

		frame, err := d.codec.Decode(pkt)
		if err != nil {
			if media.IsRecoverable(err) {
				d.count(func(s *Stats) { s.Skipped++ })
				d.log.WithError(err).Debug("packet skipped")
				continue
			}

			return StopFatal, fmt.Errorf("decoding packet: %w", err)
		}

		d.accumulate(frame)
	}
}

func (d *Decoder) reset() error {
	if d.policy == ResetStop {
		return media.ErrResetRequired
	}

	track, codec, err := d.selectCodec()
	if err != nil {
		return fmt.Errorf("%w: %w", media.ErrResetRequired, err)
	}

	d.codec = codec
	d.scratch = nil

	d.mu.Lock()
	d.track = track
	d.status.Resets++
	d.mu.Unlock()

	d.log.WithFields(logrus.Fields{
		"track": track.ID,
		"codec": track.Params.Codec,
		"spec":  track.Params.Spec(),
	}).Info("track list changed, decoder rebuilt")

	return nil
}

func (d *Decoder) drainMetadata() {
	meta := d.demuxer.Metadata()
	if meta == nil {
		return
	}

	for {
		rev, ok := meta.Pop()
		if !ok {
			break
		}

		d.log.WithFields(logrus.Fields{
			"vendor": rev.Vendor,
			"tags":   len(rev.Tags),
		}).Debug("metadata revision")
	}

	if cur, ok := meta.Current(); ok {
		d.mu.Lock()
		d.meta, d.hasMeta = cur, true
		d.mu.Unlock()
	}
}

// accumulate appends frame to the buffer and publishes a new snapshot.
func (d *Decoder) accumulate(frame audio.Frame) {
	if d.scratch == nil || !d.scratch.Fits(frame) {
		d.scratch = audio.NewSampleBuffer(frame.Capacity(), frame.Spec())
	}

	d.scratch.CopyInterleaved(frame)
	d.buf = append(d.buf, d.scratch.Samples()...)

	// Capped so later appends never show through a published snapshot.
	snap := d.buf[:len(d.buf):len(d.buf)]
	d.samples.Store(&snap)

	d.count(func(s *Stats) {
		s.Decoded++
		s.Frames += uint64(frame.Frames())
	})
}

func (d *Decoder) count(f func(*Stats)) {
	d.mu.Lock()
	f(&d.status.Stats)
	d.mu.Unlock()
}

// Samples returns the interleaved samples decoded so far. It never blocks
// and may be called while Decode runs. The returned slice is never modified
// by the decoder.
func (d *Decoder) Samples() []float32 {
	p := d.samples.Load()
	if p == nil {
		return []float32{}
	}

	return *p
}

// Status returns a snapshot of the loop state and counters.
func (d *Decoder) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.status
}

// Track is the selected track. It changes only after a reset.
func (d *Decoder) Track() media.Track {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.track
}

// Spec is the signal spec of the selected track.
func (d *Decoder) Spec() audio.SignalSpec {
	return d.Track().Params.Spec()
}

// Metadata is the newest revision the demuxer has read so far.
func (d *Decoder) Metadata() (media.Revision, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.meta, d.hasMeta
}

// Close releases the demuxer and the file opened by Open. It waits for a
// running Decode to return. Samples stay readable.
func (d *Decoder) Close() error {
	d.run.Lock()
	defer d.run.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	err := d.demuxer.Close()
	if d.file != nil {
		err = errors.Join(err, d.file.Close())
	}

	return err
}
