// SPDX-License-Identifier: EPL-2.0

package decoder

import "github.com/sirupsen/logrus"

// ResetPolicy decides what happens when the demuxer reports a new track
// list mid-stream.
type ResetPolicy uint8

const (
	// ResetReselect runs track selection again and builds a new codec.
	// Samples decoded so far are kept.
	ResetReselect ResetPolicy = iota
	// ResetStop stops the loop with StopResetRequired.
	ResetStop
)

func (p ResetPolicy) String() string {
	if p == ResetStop {
		return "stop"
	}
	return "reselect"
}

// ParseResetPolicy maps "reselect" and "stop" to a policy.
func ParseResetPolicy(s string) (ResetPolicy, bool) {
	switch s {
	case "reselect", "":
		return ResetReselect, true
	case "stop":
		return ResetStop, true
	}
	return ResetReselect, false
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger. The default is logrus' standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Decoder) {
		if log != nil {
			d.log = log
		}
	}
}

// WithResetPolicy sets how a track list change is handled. The default is
// ResetReselect.
func WithResetPolicy(p ResetPolicy) Option {
	return func(d *Decoder) {
		d.policy = p
	}
}
