// SPDX-License-Identifier: EPL-2.0

package media

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ProbeSize is how many leading bytes formats get to sniff.
const ProbeSize = 64

// Registry of container formats (in probe order) and codec factories.
type Registry struct {
	formats []Format
	codecs  map[CodecType]CodecFactory

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[CodecType]CodecFactory),
		mtx:    &sync.Mutex{},
	}
}

// RegisterFormat appends f to the probe order.
func (r *Registry) RegisterFormat(f Format) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.formats = append(r.formats, f)
}

// RegisterCodec binds a factory to one or more codec types.
func (r *Registry) RegisterCodec(factory CodecFactory, types ...CodecType) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, t := range types {
		r.codecs[t] = factory
	}
}

// Formats returns the registered formats in probe order.
func (r *Registry) Formats() []Format {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return append([]Format(nil), r.formats...)
}

// Codec returns the factory for t.
func (r *Registry) Codec(t CodecType) (CodecFactory, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	f, ok := r.codecs[t]
	return f, ok
}

// Probe sniffs the head of rs and returns the first format that claims it.
// rs is rewound to the start before returning.
func (r *Registry) Probe(rs io.ReadSeeker) (Format, error) {
	header := make([]byte, ProbeSize)
	n, err := io.ReadFull(rs, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding source: %w", err)
	}

	header = header[:n]
	for _, f := range r.Formats() {
		if f.Probe(header) {
			return f, nil
		}
	}

	return nil, ErrUnsupportedFormat
}

// MakeCodec builds a decoder for params.
func (r *Registry) MakeCodec(params CodecParams) (CodecDecoder, error) {
	factory, ok := r.Codec(params.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, params.Codec)
	}

	dec, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsupportedCodec, params.Codec, err)
	}

	return dec, nil
}
