// SPDX-License-Identifier: EPL-2.0

package decoder

import "errors"

var (
	// ErrDecodeInProgress is returned by Decode while another Decode call on
	// the same Decoder is running.
	ErrDecodeInProgress = errors.New("decode already in progress")
	// ErrClosed is returned by Decode after Close.
	ErrClosed = errors.New("decoder is closed")
)
