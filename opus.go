// SPDX-License-Identifier: EPL-2.0

//go:build opus

package rauditor

import (
	"github.com/ik5/rauditor/codecs/opus"
	"github.com/ik5/rauditor/media"
)

func init() {
	extraCodecs = append(extraCodecs, func(reg *media.Registry) {
		reg.RegisterCodec(opus.New, media.CodecOpus)
	})
}
