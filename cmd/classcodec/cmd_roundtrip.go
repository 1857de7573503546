package main

import (
	"github.com/dhamidi/classcodec/batch"
	"github.com/spf13/cobra"
)

func newRoundTripCmd() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "roundtrip <path>...",
		Short: "Decode and re-encode class files, comparing the bytes",
		Long: `Decode every class file found under the given paths, encode the result
again and report any file whose re-encoded bytes differ from the input.

Examples:
  classcodec roundtrip -j 8 ~/.m2/repository
  classcodec roundtrip --fail-fast app.jar`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.OutOrStdout(), flags.runner(batch.ModeRoundTrip), args)
		},
	}

	flags.register(cmd)

	return cmd
}
