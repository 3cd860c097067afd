// SPDX-License-Identifier: EPL-2.0

package mediatest

import (
	"bytes"
	"io"

	"github.com/ik5/rauditor/media"
)

// Magic is the signature Format probes for.
const Magic = "MTST"

// Format claims sources starting with Magic and hands out a fixed demuxer.
type Format struct {
	Demuxer media.Demuxer
	// OpenErr, if set, is returned by Open.
	OpenErr error
}

func (Format) Name() string { return "mediatest" }

func (Format) Probe(header []byte) bool {
	return bytes.HasPrefix(header, []byte(Magic))
}

func (f Format) Open(io.ReadSeeker) (media.Demuxer, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}

	return f.Demuxer, nil
}

// Source is a reader Format will claim.
func Source() io.ReadSeeker {
	return bytes.NewReader([]byte(Magic + "-payload"))
}
