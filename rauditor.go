// SPDX-License-Identifier: EPL-2.0

package rauditor

import (
	"context"
	"io"
	"sync"

	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/codecs/flac"
	"github.com/ik5/rauditor/codecs/pcm"
	"github.com/ik5/rauditor/codecs/vorbis"
	"github.com/ik5/rauditor/decoder"
	"github.com/ik5/rauditor/formats/aiff"
	flacformat "github.com/ik5/rauditor/formats/flac"
	"github.com/ik5/rauditor/formats/mp3"
	"github.com/ik5/rauditor/formats/ogg"
	"github.com/ik5/rauditor/formats/wav"
	"github.com/ik5/rauditor/formats/webm"
	"github.com/ik5/rauditor/media"
)

var (
	registryOnce sync.Once
	registry     *media.Registry

	// extraCodecs registers codecs behind build tags.
	extraCodecs []func(*media.Registry)
)

// DefaultRegistry returns the shared registry with every built-in format
// and codec.
func DefaultRegistry() *media.Registry {
	registryOnce.Do(func() {
		registry = NewRegistry()
	})

	return registry
}

// NewRegistry builds a registry with every built-in format and codec.
// MP3 is probed last since a frame sync is a weak signature.
func NewRegistry() *media.Registry {
	reg := media.NewRegistry()

	reg.RegisterFormat(wav.Format{})
	reg.RegisterFormat(aiff.Format{})
	reg.RegisterFormat(flacformat.Format{})
	reg.RegisterFormat(ogg.Format{})
	reg.RegisterFormat(webm.Format{})
	reg.RegisterFormat(mp3.Format{})

	reg.RegisterCodec(pcm.New, pcm.Codecs...)
	reg.RegisterCodec(flac.New, media.CodecFLAC)
	reg.RegisterCodec(vorbis.New, media.CodecVorbis)

	for _, register := range extraCodecs {
		register(reg)
	}

	return reg
}

// Open prepares a decoder for the file at path.
func Open(path string, opts ...decoder.Option) (*decoder.Decoder, error) {
	return decoder.Open(DefaultRegistry(), path, opts...)
}

// New prepares a decoder for r.
func New(r io.Reader, opts ...decoder.Option) (*decoder.Decoder, error) {
	return decoder.New(DefaultRegistry(), r, opts...)
}

// DecodeFile decodes the whole file at path. On a decode failure the
// samples decoded before it are returned along with the error.
func DecodeFile(ctx context.Context, path string, opts ...decoder.Option) ([]float32, audio.SignalSpec, error) {
	dec, err := Open(path, opts...)
	if err != nil {
		return nil, audio.SignalSpec{}, err
	}
	defer dec.Close()

	err = dec.Decode(ctx)

	return dec.Samples(), dec.Spec(), err
}
