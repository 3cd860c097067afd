// SPDX-License-Identifier: EPL-2.0

// Package media defines the container and codec side of the decode pipeline.
//
// A Format sniffs a byte source and opens a Demuxer. The Demuxer lists the
// container's tracks and yields packets tagged with a track id. A
// CodecDecoder, built from a track's CodecParams through a CodecFactory,
// turns each packet into an audio.Frame.
//
// # Registry
//
// Formats and codecs are looked up through a Registry:
//
//	reg := media.NewRegistry()
//	reg.RegisterFormat(wav.Format{})
//	reg.RegisterCodec(pcm.New, pcm.Codecs...)
//
//	format, err := reg.Probe(src) // content sniffing, not file extension
//	demuxer, err := format.Open(src)
//	codec, err := reg.MakeCodec(demuxer.Tracks()[0].Params)
//
// Formats are probed in registration order, so register loose signatures
// (MP3 frame sync) last.
//
// # Errors
//
// Construction fails with ErrUnsupportedFormat, ErrNoDecodableTrack or
// ErrUnsupportedCodec. Per-packet failures are split in two: IOError and
// DataError wrap recoverable faults that only cost one packet, anything
// else returned by CodecDecoder.Decode stops decoding. A Demuxer returns
// ErrResetRequired when the track list changes mid-stream.
package media
