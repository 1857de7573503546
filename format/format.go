package format

import (
	"encoding"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classcodec/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"line", "json", "cbor", "spew"}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "cbor":
		enc, err := NewCBOREncoder(w)
		if err != nil {
			return nil, err
		}
		return enc, nil
	case "spew":
		return NewSpewEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Names, ", "))
	}
}
