// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	pageHeaderSize = 27

	flagContinued = 0x01
	flagBOS       = 0x02
	flagEOS       = 0x04
)

var capturePattern = []byte("OggS")

type page struct {
	flags   byte
	granule int64
	serial  uint32
	seq     uint32
	lacing  []byte
	body    []byte
}

func (p *page) continued() bool { return p.flags&flagContinued != 0 }
func (p *page) bos() bool       { return p.flags&flagBOS != 0 }

// pageReader reads pages, skipping anything that fails the capture
// pattern, version or CRC checks.
type pageReader struct {
	r       *bufio.Reader
	skipped int
	bad     int
}

func newPageReader(r io.Reader) *pageReader {
	return &pageReader{r: bufio.NewReaderSize(r, 1<<16)}
}

// next returns io.EOF at the end of the data, including when the last page
// is truncated.
func (pr *pageReader) next() (*page, error) {
	for {
		if err := pr.sync(); err != nil {
			return nil, err
		}

		p, err := pr.read()
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}

		if errors.Is(err, errBadPage) {
			pr.bad++
			continue
		}

		return p, err
	}
}

// sync discards bytes until the reader is positioned on a capture pattern.
func (pr *pageReader) sync() error {
	for {
		head, err := pr.r.Peek(len(capturePattern))
		if bytes.Equal(head, capturePattern) {
			return nil
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.EOF
			}

			return fmt.Errorf("reading ogg page: %w", err)
		}

		if _, err := pr.r.Discard(1); err != nil {
			return fmt.Errorf("reading ogg page: %w", err)
		}
		pr.skipped++
	}
}

var errBadPage = errors.New("bad ogg page")

func (pr *pageReader) read() (*page, error) {
	header := make([]byte, pageHeaderSize)
	if _, err := io.ReadFull(pr.r, header); err != nil {
		return nil, err
	}

	if header[4] != 0 {
		return nil, errBadPage
	}

	lacing := make([]byte, header[26])
	if _, err := io.ReadFull(pr.r, lacing); err != nil {
		return nil, err
	}

	size := 0
	for _, v := range lacing {
		size += int(v)
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(pr.r, body); err != nil {
		return nil, err
	}

	want := binary.LittleEndian.Uint32(header[22:26])
	clear(header[22:26])

	crc := crcUpdate(0, header)
	crc = crcUpdate(crc, lacing)
	crc = crcUpdate(crc, body)

	if crc != want {
		return nil, errBadPage
	}

	return &page{
		flags:   header[5],
		granule: int64(binary.LittleEndian.Uint64(header[6:14])),
		serial:  binary.LittleEndian.Uint32(header[14:18]),
		seq:     binary.LittleEndian.Uint32(header[18:22]),
		lacing:  lacing,
		body:    body,
	}, nil
}

var crcTable = func() (t [256]uint32) {
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04c11db7
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}

	return t
}()

// crcUpdate is the Ogg page checksum: CRC-32, polynomial 0x04c11db7,
// unreflected, zero initial value and no final xor.
func crcUpdate(crc uint32, b []byte) uint32 {
	for _, v := range b {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^v]
	}

	return crc
}
