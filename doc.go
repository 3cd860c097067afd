// SPDX-License-Identifier: EPL-2.0

// Package rauditor decodes audio files into a flat buffer of interleaved
// float32 samples.
//
// The container is recognized from its first bytes, not from the file
// name. The first track with a known codec is decoded; packets of every
// other track are dropped.
//
// # Supported Formats
//
//   - WAV (8/16/24/32-bit integer and 32/64-bit float PCM) via formats/wav
//   - AIFF and AIFF-C (8/16/24/32-bit PCM) via formats/aiff
//   - FLAC via formats/flac and codecs/flac
//   - Ogg Vorbis and Ogg Opus, including chained files, via formats/ogg
//   - WebM / Matroska with Vorbis or Opus audio via formats/webm
//   - MP3 via formats/mp3
//
// Opus needs libopus and is only registered when building with the opus
// tag (go build -tags opus).
//
// # Quick Start
//
//	samples, spec, err := rauditor.DecodeFile(ctx, "song.ogg")
//	if err != nil {
//		return err
//	}
//	fmt.Println(len(samples)/spec.Channels, "frames at", spec.Rate, "Hz")
//
// # Incremental Decoding
//
// For a presentation layer that wants to show progress, open a Decoder and
// poll Samples while Decode runs on another goroutine:
//
//	dec, err := rauditor.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer dec.Close()
//
//	go dec.Decode(ctx)
//
//	plot(dec.Samples())
//
// Every snapshot returned by Samples is immutable. See package decoder for
// stop reasons and error handling, and package render for resampling,
// WAV export and waveform peaks.
package rauditor
