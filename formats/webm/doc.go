// SPDX-License-Identifier: EPL-2.0

// Package webm demuxes WebM and Matroska files.
//
// The whole file is unmarshalled with github.com/at-wat/ebml-go into its
// webm.Segment; packets are then served from every cluster's SimpleBlock
// and BlockGroup frames in file order. Track ids are Matroska track numbers.
//
// A_VORBIS tracks carry their three Xiph-laced setup headers in
// CodecPrivate; A_OPUS tracks carry an OpusHead. Everything else, video
// included, gets media.CodecNull so track selection passes over it.
package webm
