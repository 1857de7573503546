package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dhamidi/classcodec/batch"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Decode class files and report the ones that fail",
		Long: `Decode every class file found under the given paths.

A path may be a .class file, a .jar or .zip archive (nested jars included),
or a directory holding any of those.

Examples:
  classcodec check build/classes
  classcodec check --descriptors --max-major 65 lib/*.jar`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.OutOrStdout(), flags.runner(batch.ModeCheck), args)
		},
	}

	flags.register(cmd)

	return cmd
}

// runBatch prints every result that did not pass, then a summary line. It
// fails when any file did.
func runBatch(w io.Writer, runner *batch.Runner, paths []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := runner.Run(ctx, paths...)
	for _, res := range report.Failures() {
		fmt.Fprintf(w, "%s\t%s\t%v\n", res.Status, res.Name, res.Err)
	}
	fmt.Fprintf(w, "%d files: %d ok, %d failed, %d mismatched, %d timed out (%s)\n",
		len(report.Results),
		report.Count(batch.StatusOK),
		report.Count(batch.StatusFailed),
		report.Count(batch.StatusMismatch),
		report.Count(batch.StatusTimeout),
		report.EndedAt.Sub(report.StartedAt).Round(time.Millisecond),
	)
	if err != nil {
		return err
	}
	if n := len(report.Failures()); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(report.Results))
	}
	return nil
}
