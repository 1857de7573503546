package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/classcodec/classfile"
	"github.com/fxamacker/cbor/v2"
)

// CBOREncoder writes the same resolved view as JSONEncoder, in canonical CBOR.
type CBOREncoder struct {
	w     io.Writer
	mode  cbor.EncMode
	class *classfile.ClassFile
}

func NewCBOREncoder(w io.Writer) (*CBOREncoder, error) {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	return &CBOREncoder{w: w, mode: mode}, nil
}

func (e *CBOREncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	data, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

// MarshalText returns binary CBOR; the name only satisfies Encoder.
func (e *CBOREncoder) MarshalText() ([]byte, error) {
	return e.mode.Marshal(buildClassData(e.class))
}
