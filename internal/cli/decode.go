// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/ik5/rauditor/audio"
	"github.com/ik5/rauditor/decoder"
	"github.com/ik5/rauditor/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type DecodeOptions struct {
	Export string
	Rate   int
	Peaks  int
}

func NewDecodeCommand(a *app) *cobra.Command {
	opts := &DecodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a file and print a summary",
		Long: `Decode the first playable track of a file to the end and print what was decoded.
With --export the result is written as mono 16-bit WAV at --rate Hz.`,
		Example: `  rauditor decode song.ogg
  rauditor decode song.ogg --peaks 20
  rauditor decode song.flac --export song.wav --rate 8000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDecode(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Export, "export", "o", "", "Write the decoded audio to this WAV file")
	flags.IntVar(&opts.Rate, "rate", 0, "Export sample rate in Hz (default from export.rate)")
	flags.IntVar(&opts.Peaks, "peaks", 0, "Print the waveform envelope in this many buckets")

	return cmd
}

func (a *app) runDecode(cmd *cobra.Command, path string, opts *DecodeOptions) error {
	dec, err := a.open(path)
	if err != nil {
		return err
	}
	defer dec.Close()

	initial := dec.Spec()
	decodeErr := dec.Decode(cmd.Context())
	samples := dec.Samples()
	status := dec.Status()
	spec := dec.Spec()

	a.field("File", path)
	a.field("Codec", dec.Track().Params.Codec)
	a.field("Signal", spec)
	a.field("Stopped", stopLabel(status))
	a.field("Packets", fmt.Sprintf("%d read, %d decoded, %d skipped, %d discarded",
		status.Packets, status.Decoded, status.Skipped, status.Discarded))
	if status.Resets > 0 {
		a.field("Resets", status.Resets)
	}
	a.field("Samples", len(samples))
	if spec.Rate > 0 {
		a.field("Duration", duration(status.Frames, spec.Rate))
	}

	if len(samples) > 0 {
		lo, hi := render.Bounds(samples)
		a.field("Range", fmt.Sprintf("%.3f .. %.3f", lo, hi))
	}

	if opts.Peaks > 0 {
		for i, p := range render.Envelope(samples, spec.Channels, opts.Peaks) {
			fmt.Fprintf(a.out, "%4d  %+.3f  %+.3f\n", i, p.Min, p.Max)
		}
	}

	if decodeErr != nil {
		return decodeErr
	}

	if opts.Export == "" {
		return nil
	}

	return a.export(dec, initial, opts)
}

func stopLabel(s decoder.Status) string {
	if s.Reason == decoder.StopExhausted {
		return okColor.Sprint(s.Reason)
	}

	return warnColor.Sprint(s.Reason)
}

var (
	errNothingToExport = errors.New("nothing decoded to export")
	errSpecChanged     = errors.New("signal changed during decode, cannot export as one stream")
)

// exportSpec returns the signal the whole buffer was decoded at. A reset
// onto a track with another rate or layout leaves a buffer of mixed signals.
func exportSpec(initial, current audio.SignalSpec, resets uint64) (audio.SignalSpec, error) {
	if resets > 0 && current != initial {
		return audio.SignalSpec{}, fmt.Errorf("%w: %v then %v", errSpecChanged, initial, current)
	}

	return current, nil
}

func (a *app) export(dec *decoder.Decoder, initial audio.SignalSpec, opts *DecodeOptions) error {
	samples := dec.Samples()
	if len(samples) == 0 {
		return errNothingToExport
	}

	spec, err := exportSpec(initial, dec.Spec(), dec.Status().Resets)
	if err != nil {
		return err
	}

	rate := opts.Rate
	if rate == 0 {
		rate = a.cfg.ExportRate
	}

	mono, err := render.ToMono16(render.NewBufferSource(spec, samples), rate, a.cfg.ExportBuffer)
	if err != nil {
		return fmt.Errorf("failed to convert audio: %w", err)
	}

	f, err := os.Create(opts.Export)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.Export, err)
	}

	if err := render.WriteWAV(f, rate, mono); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", opts.Export, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Export, err)
	}

	fmt.Fprintf(a.out, "Exported %d samples at %d Hz to %s\n", len(mono), rate, color.CyanString(opts.Export))

	a.log.WithFields(logrus.Fields{
		"output":  opts.Export,
		"rate":    rate,
		"samples": len(mono),
	}).Info("export written")

	return nil
}
