// SPDX-License-Identifier: EPL-2.0

// Command rauditor probes, decodes and plots audio files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/rauditor/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
