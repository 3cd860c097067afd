// SPDX-License-Identifier: EPL-2.0

package media

import "io"

// Track describes one elementary stream inside a container.
type Track struct {
	ID     uint32
	Params CodecParams
}

// Packet is one encoded unit of a track.
type Packet struct {
	TrackID uint32
	Data    []byte

	// Unit carries an already delimited frame for formats whose bitstream
	// library hands out frames rather than raw bytes.
	Unit any
}

// Demuxer splits a container into packets.
type Demuxer interface {
	// Tracks in container order. After NextPacket returns ErrResetRequired
	// this reflects the new track list.
	Tracks() []Track
	// NextPacket returns io.EOF at the end of the stream and
	// ErrResetRequired when the track list changed.
	NextPacket() (*Packet, error)
	// Metadata is the queue of metadata revisions read so far.
	Metadata() *MetadataLog
	// Close releases any resources.
	Close() error
}

// Format recognizes a container by its first bytes and opens it.
type Format interface {
	// Name of the container (e.g., "wav", "ogg").
	Name() string
	// Probe reports whether header looks like this container.
	Probe(header []byte) bool
	// Open reads the container headers from rs, positioned at the start.
	Open(rs io.ReadSeeker) (Demuxer, error)
}
