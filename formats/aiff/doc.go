// SPDX-License-Identifier: EPL-2.0

// Package aiff demuxes AIFF (Audio Interchange File Format) files.
//
// This package uses github.com/go-audio/aiff to parse the container. The
// integer samples it returns are packed back into big-endian PCM at the
// file's sample size, so codecs/pcm decodes them like any other PCM track.
//
// # Supported Formats
//
//   - AIFF and uncompressed AIFF-C
//   - 8, 16, 24 and 32 bit samples
//   - Any channel count and sample rate
//
// Other sample sizes give a media.CodecNull track.
//
// # Usage
//
//	reg.RegisterFormat(aiff.Format{})
//	reg.RegisterCodec(pcm.New, pcm.Codecs...)
//
// # Error Handling
//
//   - ErrNotAiffFile: the FORM/AIFF header is missing or invalid
//   - ErrUnsupportedAiffLayout: the COMM chunk could not be read
package aiff
