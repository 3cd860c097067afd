// SPDX-License-Identifier: EPL-2.0

package rauditor_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ik5/rauditor"
	"github.com/ik5/rauditor/decoder"
	"github.com/ik5/rauditor/internal/mediatest"
	"github.com/ik5/rauditor/render"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// Example_decode decodes a WAV file held in memory.
func Example_decode() {
	wav := mediatest.WAV16(16000, 1, []int16{0, 8192, 16384, -16384, -32768})

	dec, err := rauditor.New(bytes.NewReader(wav), decoder.WithLogger(quietLogger()))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer dec.Close()

	if err := dec.Decode(context.Background()); err != nil {
		fmt.Println(err)
		return
	}

	st := dec.Status()
	fmt.Println("Codec:", dec.Track().Params.Codec)
	fmt.Println("Stopped:", st.Reason)
	fmt.Println("Samples:", dec.Samples())
	// Output:
	// Codec: pcm_s16le
	// Stopped: exhausted
	// Samples: [0 0.25 0.5 -0.5 -1]
}

// Example_resample decodes a file and converts it to 8 kHz mono PCM.
func Example_resample() {
	pcm := make([]int16, 2*16000)
	wav := mediatest.WAV16(16000, 2, pcm)

	dec, err := rauditor.New(bytes.NewReader(wav), decoder.WithLogger(quietLogger()))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer dec.Close()

	if err := dec.Decode(context.Background()); err != nil {
		fmt.Println(err)
		return
	}

	out, err := render.ToMono16(render.NewBufferSource(dec.Spec(), dec.Samples()), 8000, 4096)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d Hz %d ch -> %d samples at 8000 Hz\n", dec.Spec().Rate, dec.Spec().Channels, len(out))
	// Output: 16000 Hz 2 ch -> 8000 samples at 8000 Hz
}
