package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classcodec/classfile"
	"github.com/dhamidi/classcodec/format"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string
	var flags codecFlags

	cmd := &cobra.Command{
		Use:   "dump <file.class|->",
		Short: "Decode a class file and print its structure",
		Long: `Decode a single class file and print it in one of several formats.

Formats:
  line   tab-separated summary of the class, its members and attributes
  json   the same summary with constant pool references resolved
  cbor   the json view as canonical CBOR
  spew   the raw decoded structure, indices and all

Examples:
  classcodec dump Foo.class
  classcodec dump -f json Foo.class
  unzip -p app.jar com/example/Foo.class | classcodec dump -f spew -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], dumpFormat, flags.options())
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format ("+strings.Join(format.Names, ", ")+")")
	flags.register(cmd)

	return cmd
}

func runDump(w io.Writer, stdin io.Reader, filename, dumpFormat string, opts []classfile.Option) error {
	enc, err := format.NewEncoder(dumpFormat, w)
	if err != nil {
		return err
	}

	var cf *classfile.ClassFile
	if filename == "-" {
		cf, err = classfile.Parse(stdin, opts...)
	} else {
		cf, err = classfile.ParseFile(filename, opts...)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}

	if err := enc.Encode(cf); err != nil {
		return fmt.Errorf("encode %s: %w", dumpFormat, err)
	}
	return nil
}
