// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	// ErrNotMp3File indicates go-mp3 could not find a valid frame.
	ErrNotMp3File = errors.New("not an MP3 file")
)
