// SPDX-License-Identifier: EPL-2.0

package media

import (
	"bytes"
	"fmt"
	"io"
)

// NewSource returns r as an io.ReadSeeker. Readers that cannot seek are
// read into memory first; container readers rewind after probing and the
// go-audio decoders require seeking.
func NewSource(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering source: %w", err)
	}

	return bytes.NewReader(data), nil
}
