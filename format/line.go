package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classcodec/classfile"
)

// LineEncoder writes one tab-separated line per class, member and attribute,
// for grepping and diffing.
type LineEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	cf := e.class
	cp := cf.ConstantPool

	fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\n",
		classKind(cf),
		cf.ClassName(),
		cf.Version(),
		visibility(cf.AccessFlags),
		strings.Join(classModifiers(cf.AccessFlags), " "),
	)
	if super := cf.SuperClassName(); super != "" {
		fmt.Fprintf(&sb, "extends\t%s\n", super)
	}
	for _, name := range cf.InterfaceNames() {
		fmt.Fprintf(&sb, "implements\t%s\n", name)
	}

	for i := range cf.Fields {
		f := &cf.Fields[i]
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\n",
			f.Name(cp),
			f.Descriptor(cp),
			visibility(f.AccessFlags),
			strings.Join(fieldModifiers(f), " "),
		)
		writeAttributeLines(&sb, cp, "\t", f.Attributes)
	}

	for i := range cf.Methods {
		m := &cf.Methods[i]
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\n",
			m.Name(cp),
			m.Descriptor(cp),
			visibility(m.AccessFlags),
			strings.Join(methodModifiers(m), " "),
		)
		writeAttributeLines(&sb, cp, "\t", m.Attributes)
	}

	writeAttributeLines(&sb, cp, "", cf.Attributes)
	return []byte(sb.String()), nil
}

func writeAttributeLines(sb *strings.Builder, cp classfile.ConstantPool, indent string, attrs []classfile.AttributeInfo) {
	for i := range attrs {
		attr := &attrs[i]
		fmt.Fprintf(sb, "%sattribute\t%s\t%s\n", indent, attr.Name(), describeAttribute(cp, attr))
		if code := classfile.Payload[*classfile.CodeAttribute](attr); code != nil {
			writeAttributeLines(sb, cp, indent+"\t", code.Attributes)
		}
	}
}
