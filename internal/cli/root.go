// SPDX-License-Identifier: EPL-2.0

// Package cli holds the rauditor commands.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/ik5/rauditor"
	"github.com/ik5/rauditor/decoder"
	"github.com/ik5/rauditor/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by every command of one run.
type app struct {
	v   *viper.Viper
	cfg config.Config
	log *logrus.Entry
	out io.Writer
}

var (
	labelColor = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
)

// NewRootCommand builds the rauditor command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "rauditor",
		Short: "Decode and inspect audio files",
		Long: `rauditor probes audio containers (WAV, AIFF, FLAC, Ogg, WebM, MP3),
decodes the first playable track into float samples and shows or exports them.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text or json)")
	flags.String("reset-policy", "", "What to do when the track list changes (reselect or stop)")

	a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	a.v.BindPFlag("log.format", flags.Lookup("log-format"))
	a.v.BindPFlag("decode.reset_policy", flags.Lookup("reset-policy"))

	cmd.RegisterFlagCompletionFunc("log-format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc("reset-policy", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"reselect", "stop"}, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(NewProbeCommand(a))
	cmd.AddCommand(NewDecodeCommand(a))
	cmd.AddCommand(NewViewCommand(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger := cfg.Logger()
	logger.SetOutput(cmd.ErrOrStderr())
	a.log = logger.WithField("run_id", uuid.NewString())
	a.out = cmd.OutOrStdout()

	if cfg.File != "" {
		a.log.WithField("file", cfg.File).Debug("config loaded")
	}

	return nil
}

func (a *app) open(path string) (*decoder.Decoder, error) {
	return rauditor.Open(path,
		decoder.WithLogger(a.log.WithField("file", path)),
		decoder.WithResetPolicy(a.cfg.ResetPolicy),
	)
}

func (a *app) field(name string, value any) {
	fmt.Fprintf(a.out, "%s %v\n", labelColor.Sprintf("%-10s", name+":"), value)
}
