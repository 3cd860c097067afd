// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/ik5/rauditor/decoder"
	"github.com/spf13/cobra"
)

type ProbeOptions struct {
	OutputFormat string
}

// probeResult is the JSON form of probe output.
type probeResult struct {
	File          string            `json:"file"`
	Track         uint32            `json:"track"`
	Codec         string            `json:"codec"`
	SampleRate    int               `json:"sample_rate"`
	Channels      int               `json:"channels"`
	BitsPerSample int               `json:"bits_per_sample,omitempty"`
	Frames        uint64            `json:"frames,omitempty"`
	Duration      string            `json:"duration,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
}

func NewProbeCommand(a *app) *cobra.Command {
	opts := &ProbeOptions{}

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Show the track that would be decoded",
		Long:  "Open a file, select its first decodable track and print its parameters and tags without decoding audio.",
		Example: `  rauditor probe song.flac
  rauditor probe stream.webm --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProbe(args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (json or text)")

	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (a *app) runProbe(path string, opts *ProbeOptions) error {
	dec, err := a.open(path)
	if err != nil {
		return err
	}
	defer dec.Close()

	res := probe(path, dec)

	if opts.OutputFormat == "json" {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode probe result: %w", err)
		}
		fmt.Fprintln(a.out, string(out))
		return nil
	}

	a.field("File", res.File)
	a.field("Track", res.Track)
	a.field("Codec", res.Codec)
	a.field("Signal", dec.Spec())
	if res.BitsPerSample > 0 {
		a.field("Bits", res.BitsPerSample)
	}
	if res.Duration != "" {
		a.field("Duration", res.Duration)
	}

	for _, k := range slices.Sorted(maps.Keys(res.Tags)) {
		a.field(k, res.Tags[k])
	}

	return nil
}

func probe(path string, dec *decoder.Decoder) probeResult {
	p := dec.Track().Params

	res := probeResult{
		File:          path,
		Track:         dec.Track().ID,
		Codec:         p.Codec.String(),
		SampleRate:    p.SampleRate,
		Channels:      p.Channels,
		BitsPerSample: p.BitsPerSample,
		Frames:        p.Frames,
	}

	if p.Frames > 0 && p.SampleRate > 0 {
		res.Duration = duration(p.Frames, p.SampleRate).String()
	}

	if rev, ok := dec.Metadata(); ok && len(rev.Tags) > 0 {
		res.Tags = make(map[string]string, len(rev.Tags))
		for _, t := range rev.Tags {
			res.Tags[t.Key] = t.Value
		}
	}

	return res
}

func duration(frames uint64, rate int) time.Duration {
	return (time.Duration(frames) * time.Second / time.Duration(rate)).Round(time.Millisecond)
}
