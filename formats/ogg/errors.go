// SPDX-License-Identifier: EPL-2.0

package ogg

import "errors"

var (
	// ErrNotOggFile indicates no beginning-of-stream page was found.
	ErrNotOggFile = errors.New("not an Ogg file")
)
