// SPDX-License-Identifier: EPL-2.0

// Package ogg demuxes Ogg files.
//
// Pages are checked against their CRC; damaged pages and garbage between
// pages are skipped. Each logical stream becomes a track whose id is the
// stream serial number. The first packet of a stream picks the codec
// (Vorbis or Opus), the header packets that follow are kept in
// CodecParams.ExtraData, and comment headers are pushed to the metadata log.
//
// A chained file (several links one after the other, as internet radio
// dumps often are) is played through: once the packets of one link are
// exhausted NextPacket returns media.ErrResetRequired and Tracks describes
// the next link.
//
// The total length of single-stream Vorbis files comes from
// github.com/jfreymuth/oggvorbis.
package ogg
