// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"path/filepath"

	"github.com/ik5/rauditor/internal/ui"
	"github.com/spf13/cobra"
)

type ViewOptions struct {
	Buckets int
	Samples int
}

func NewViewCommand(a *app) *cobra.Command {
	opts := &ViewOptions{}

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Open the waveform viewer",
		Long:  "Open a file in the terminal viewer. Press d to decode and plot the leading samples, q to quit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.Buckets, "buckets", 0, "Maximum plot width in columns (default from view.buckets)")
	flags.IntVar(&opts.Samples, "samples", 0, "Number of leading samples to plot (default from view.samples)")

	return cmd
}

func (a *app) runView(cmd *cobra.Command, path string, opts *ViewOptions) error {
	dec, err := a.open(path)
	if err != nil {
		return err
	}
	defer dec.Close()

	m := ui.NewModel(cmd.Context(), filepath.Base(path), dec, a.viewOptions(opts))

	return ui.Run(m)
}

func (a *app) viewOptions(opts *ViewOptions) ui.Options {
	out := ui.Options{Buckets: a.cfg.ViewBuckets, Samples: a.cfg.ViewSamples}
	if opts.Buckets > 0 {
		out.Buckets = opts.Buckets
	}
	if opts.Samples > 0 {
		out.Samples = opts.Samples
	}

	return out
}
