// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/rauditor/media"
)

const (
	// TrackID of the only track in a WAV file.
	TrackID = 0
	// FramesPerPacket is how many frames one packet holds.
	FramesPerPacket = 1152

	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xfffe
)

// Format demuxes RIFF/WAVE files with github.com/go-audio/wav.
type Format struct{}

var _ media.Format = Format{}

func (Format) Name() string { return "wav" }

func (Format) Probe(header []byte) bool {
	return len(header) >= 12 &&
		bytes.Equal(header[0:4], []byte("RIFF")) &&
		bytes.Equal(header[8:12], []byte("WAVE"))
}

func (Format) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	subFormat, err := extensibleSubFormat(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding: %w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	if dec.NumChans == 0 || dec.BitDepth == 0 || dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavLayout
	}

	format := dec.WavAudioFormat
	if format == formatExtensible {
		format = subFormat
	}

	params := media.CodecParams{
		Codec:              Codec(format, int(dec.BitDepth)),
		SampleRate:         int(dec.SampleRate),
		Channels:           int(dec.NumChans),
		BitsPerSample:      int(dec.BitDepth),
		MaxFramesPerPacket: FramesPerPacket,
	}

	frameSize := int(dec.NumChans) * ((int(dec.BitDepth) + 7) / 8)
	if frameSize > 0 {
		params.Frames = uint64(dec.PCMSize / frameSize)
	}

	return &demuxer{
		pcm:       dec.PCMChunk,
		remaining: dec.PCMSize,
		frameSize: frameSize,
		track:     media.Track{ID: TrackID, Params: params},
	}, nil
}

// extensibleSubFormat returns the format tag held in the first two bytes of
// a WAVE_FORMAT_EXTENSIBLE SubFormat GUID. go-audio/wav drops the fmt
// extension, so the chunk is read again here. Files that are not extensible
// give 0.
func extensibleSubFormat(rs io.ReadSeeker) (uint16, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return 0, err
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			// No fmt chunk; gowav reports the file as invalid.
			return 0, nil
		}

		switch ch.ID {
		case riff.FmtID:
			if ch.Size < 40 {
				return 0, nil
			}

			var buf [40]byte
			if _, err := io.ReadFull(ch, buf[:]); err != nil {
				return 0, nil
			}

			if binary.LittleEndian.Uint16(buf[0:2]) != formatExtensible {
				return 0, nil
			}

			return binary.LittleEndian.Uint16(buf[24:26]), nil
		case riff.DataFormatID:
			return 0, nil
		}

		if _, err := rs.Seek(int64(ch.Size), io.SeekCurrent); err != nil {
			return 0, nil
		}
	}
}

// Codec maps a WAVE format tag and bit depth to a codec. Extensible files
// are resolved to their SubFormat tag before this call, so a bare
// extensible tag is unknown. Unknown combinations give media.CodecNull,
// which no decoder accepts.
func Codec(format uint16, bits int) media.CodecType {
	switch format {
	case formatPCM:
		switch bits {
		case 8:
			return media.CodecPCMU8
		case 16:
			return media.CodecPCMS16LE
		case 24:
			return media.CodecPCMS24LE
		case 32:
			return media.CodecPCMS32LE
		}
	case formatFloat:
		switch bits {
		case 32:
			return media.CodecPCMF32LE
		case 64:
			return media.CodecPCMF64LE
		}
	}

	return media.CodecNull
}

type demuxer struct {
	pcm       io.Reader
	remaining int
	frameSize int
	track     media.Track
	meta      media.MetadataLog
	buf       []byte
}

func (d *demuxer) Tracks() []media.Track        { return []media.Track{d.track} }
func (d *demuxer) Metadata() *media.MetadataLog { return &d.meta }
func (d *demuxer) Close() error                 { return nil }

// NextPacket reads up to FramesPerPacket frames. A truncated data chunk
// yields its tail as a short packet, which may end mid-frame.
func (d *demuxer) NextPacket() (*media.Packet, error) {
	if d.remaining <= 0 {
		return nil, io.EOF
	}

	size := min(d.remaining, FramesPerPacket*d.frameSize)
	if cap(d.buf) < size {
		d.buf = make([]byte, size)
	}

	n, err := io.ReadFull(d.pcm, d.buf[:size])
	d.remaining -= n

	switch {
	case errors.Is(err, io.EOF):
		d.remaining = 0
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		d.remaining = 0
	case err != nil:
		return nil, fmt.Errorf("reading PCM data: %w", err)
	}

	data := make([]byte, n)
	copy(data, d.buf[:n])

	return &media.Packet{TrackID: TrackID, Data: data}, nil
}
