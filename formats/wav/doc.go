// SPDX-License-Identifier: EPL-2.0

// Package wav demuxes RIFF/WAVE files.
//
// Headers are read with github.com/go-audio/wav; the data chunk is then
// split into packets of FramesPerPacket frames of raw PCM for codecs/pcm.
//
// # Supported Formats
//
//   - Integer PCM, 8 (unsigned), 16, 24 and 32 bit
//   - IEEE float, 32 and 64 bit
//   - WAVE_FORMAT_EXTENSIBLE with integer samples
//   - Any channel count and sample rate
//
// Other format tags open fine but advertise media.CodecNull, so track
// selection reports media.ErrNoDecodableTrack instead of failing here.
//
// # Usage
//
//	reg := media.NewRegistry()
//	reg.RegisterFormat(wav.Format{})
//	reg.RegisterCodec(pcm.New, pcm.Codecs...)
//
// # Error Handling
//
//   - ErrNotWavFile: the RIFF/WAVE header is missing or invalid
//   - ErrUnsupportedWavChunks: no data chunk could be found
//   - ErrUnsupportedWavLayout: fmt chunk without channels or bit depth
package wav
