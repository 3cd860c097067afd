// SPDX-License-Identifier: EPL-2.0

package webm

import "errors"

var (
	ErrNotWebmFile = errors.New("not a WebM/Matroska file")
	ErrNoTracks    = errors.New("webm: segment has no tracks")
)
