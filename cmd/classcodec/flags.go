package main

import (
	"time"

	"github.com/dhamidi/classcodec/batch"
	"github.com/dhamidi/classcodec/classfile"
	"github.com/spf13/cobra"
)

// codecFlags are the decoder and encoder limits shared by every command.
type codecFlags struct {
	maxDepth    int
	minMajor    uint16
	maxMajor    uint16
	descriptors bool
}

func (f *codecFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", classfile.DefaultMaxDepth, "maximum nesting of annotations and attributes")
	cmd.Flags().Uint16Var(&f.minMajor, "min-major", 0, "reject class files below this major version")
	cmd.Flags().Uint16Var(&f.maxMajor, "max-major", 0, "reject class files above this major version (0 means no limit)")
	cmd.Flags().BoolVar(&f.descriptors, "descriptors", false, "validate field and method descriptors")
}

func (f *codecFlags) options() []classfile.Option {
	opts := []classfile.Option{classfile.WithMaxDepth(f.maxDepth)}
	if f.minMajor != 0 || f.maxMajor != 0 {
		maxMajor := f.maxMajor
		if maxMajor == 0 {
			maxMajor = ^uint16(0)
		}
		opts = append(opts, classfile.WithVersionRange(f.minMajor, maxMajor))
	}
	if f.descriptors {
		opts = append(opts, classfile.WithDescriptorCheck())
	}
	return opts
}

// batchFlags configure the worker pool used by check and roundtrip.
type batchFlags struct {
	codecFlags
	jobs     int
	timeout  time.Duration
	failFast bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	f.codecFlags.register(cmd)
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "files processed in parallel (0 means one per CPU)")
	cmd.Flags().DurationVarP(&f.timeout, "timeout", "t", 10*time.Second, "timeout per file")
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, "stop at the first failing file")
}

func (f *batchFlags) runner(mode batch.Mode) *batch.Runner {
	opts := []batch.Option{
		batch.WithMode(mode),
		batch.WithJobs(f.jobs),
		batch.WithTimeout(f.timeout),
		batch.WithCodecOptions(f.options()...),
	}
	if f.failFast {
		opts = append(opts, batch.WithFailFast())
	}
	return batch.New(opts...)
}
