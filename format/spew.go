package format

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/dhamidi/classcodec/classfile"
)

// SpewEncoder dumps the decoded structure as is, indices and all.
type SpewEncoder struct {
	w      io.Writer
	config *spew.ConfigState
	class  *classfile.ClassFile
}

func NewSpewEncoder(w io.Writer) *SpewEncoder {
	c := spew.NewDefaultConfig()
	c.Indent = "  "
	c.SortKeys = true
	c.DisableMethods = true
	c.DisablePointerAddresses = true
	c.DisableCapacities = true
	return &SpewEncoder{w: w, config: c}
}

func (e *SpewEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SpewEncoder) MarshalText() ([]byte, error) {
	return []byte(e.config.Sdump(e.class)), nil
}
