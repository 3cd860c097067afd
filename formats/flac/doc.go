// SPDX-License-Identifier: EPL-2.0

// Package flac demuxes native FLAC streams using github.com/mewkiz/flac.
//
// Every metadata block is read on Open; VORBIS_COMMENT blocks become
// metadata revisions. Packets carry a *frame.Frame in Packet.Unit whose
// header is parsed and whose subframes are left for codecs/flac.
//
//	reg.RegisterFormat(flac.Format{})
//	reg.RegisterCodec(flaccodec.New, media.CodecFLAC)
package flac
