// SPDX-License-Identifier: EPL-2.0

// Package mp3 demuxes MPEG-1/2 Layer III audio.
//
// github.com/hajimehoshi/go-mp3 decodes inside its reader, so the demuxer
// exposes a single PCMS16LE stereo track in packets of FramesPerPacket
// frames; codecs/pcm finishes the job. Mono files come out duplicated on
// both channels, as go-mp3 produces them.
//
// # Probing
//
// A file is accepted when it starts with an ID3v2 tag or an MPEG frame
// sync. The sync check is loose, so register this format after the others:
//
//	reg.RegisterFormat(wav.Format{})
//	reg.RegisterFormat(ogg.Format{})
//	reg.RegisterFormat(mp3.Format{})
package mp3
