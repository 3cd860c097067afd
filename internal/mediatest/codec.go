// SPDX-License-Identifier: EPL-2.0

package mediatest

import (
	"sync"

	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/media"
)

// Codec decodes EncodeFloats payloads and records every packet it sees.
type Codec struct {
	params media.CodecParams
	fail   map[int]error
	calls  []uint32
}

var _ media.CodecDecoder = (*Codec)(nil)

func (c *Codec) Params() media.CodecParams { return c.params }

func (c *Codec) Reset() {}

// Decode fails with the error scripted for this call (1-based), if any.
func (c *Codec) Decode(pkt *media.Packet) (audio.Frame, error) {
	c.calls = append(c.calls, pkt.TrackID)
	if err := c.fail[len(c.calls)]; err != nil {
		return nil, err
	}

	samples := DecodeFloats(pkt.Data)
	capacity := c.params.MaxFramesPerPacket
	if capacity == 0 {
		capacity = len(samples) / max(c.params.Channels, 1)
	}

	return audio.NewFloatFrame(c.params.Spec(), capacity, samples), nil
}

// TrackIDs lists the track id of every packet passed to Decode.
func (c *Codec) TrackIDs() []uint32 { return append([]uint32(nil), c.calls...) }

// Codecs is a factory that builds Codec values and keeps them.
type Codecs struct {
	// Fail maps a Decode call number to the error it returns. It applies
	// to every codec built.
	Fail map[int]error

	mu    sync.Mutex
	built []*Codec
}

// Factory satisfies media.CodecFactory.
func (cs *Codecs) Factory(params media.CodecParams) (media.CodecDecoder, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	c := &Codec{params: params, fail: cs.Fail}
	cs.built = append(cs.built, c)

	return c, nil
}

// Built returns the codecs created so far, oldest first.
func (cs *Codecs) Built() []*Codec {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	return append([]*Codec(nil), cs.built...)
}

// Last returns the most recently built codec, or nil.
func (cs *Codecs) Last() *Codec {
	b := cs.Built()
	if len(b) == 0 {
		return nil
	}

	return b[len(b)-1]
}

// Registry returns a registry whose float32 codec is cs and whose only
// format opens d.
func (cs *Codecs) Registry(d media.Demuxer) *media.Registry {
	reg := media.NewRegistry()
	reg.RegisterFormat(Format{Demuxer: d})
	reg.RegisterCodec(cs.Factory, media.CodecPCMF32LE)

	return reg
}
