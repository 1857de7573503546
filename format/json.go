package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/classcodec/classfile"
)

type JSONEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := buildClassData(e.class)
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

// jsonClass is the resolved view of a class file shared by the JSON and CBOR
// encoders: pool references are replaced by the names they point at.
type jsonClass struct {
	Name         string          `json:"name"`
	SuperClass   string          `json:"superClass,omitempty"`
	Interfaces   []string        `json:"interfaces,omitempty"`
	Visibility   string          `json:"visibility"`
	Kind         string          `json:"kind"`
	Modifiers    []string        `json:"modifiers,omitempty"`
	Version      jsonVersion     `json:"version"`
	ConstantPool []jsonConstant  `json:"constantPool"`
	Fields       []jsonMember    `json:"fields,omitempty"`
	Methods      []jsonMember    `json:"methods,omitempty"`
	Attributes   []jsonAttribute `json:"attributes,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonConstant struct {
	Index uint16 `json:"index"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type jsonMember struct {
	Name       string          `json:"name"`
	Descriptor string          `json:"descriptor"`
	Type       string          `json:"type,omitempty"`
	Visibility string          `json:"visibility"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Attributes []jsonAttribute `json:"attributes,omitempty"`
}

type jsonAttribute struct {
	Name       string          `json:"name"`
	Detail     string          `json:"detail,omitempty"`
	Attributes []jsonAttribute `json:"attributes,omitempty"`
}

func buildClassData(cf *classfile.ClassFile) jsonClass {
	return jsonClass{
		Name:       cf.ClassName(),
		SuperClass: cf.SuperClassName(),
		Interfaces: cf.InterfaceNames(),
		Visibility: visibility(cf.AccessFlags),
		Kind:       classKind(cf),
		Modifiers:  classModifiers(cf.AccessFlags),
		Version: jsonVersion{
			Major: cf.MajorVersion,
			Minor: cf.MinorVersion,
		},
		ConstantPool: buildConstants(cf.ConstantPool),
		Fields:       buildFields(cf),
		Methods:      buildMethods(cf),
		Attributes:   buildAttributes(cf.ConstantPool, cf.Attributes),
	}
}

func buildConstants(cp classfile.ConstantPool) []jsonConstant {
	result := make([]jsonConstant, 0, len(cp))
	for i, entry := range cp {
		if entry == nil {
			continue
		}
		result = append(result, jsonConstant{
			Index: uint16(i + 1),
			Kind:  entry.Tag().String(),
			Value: describeConstant(cp, entry),
		})
	}
	return result
}

func buildFields(cf *classfile.ClassFile) []jsonMember {
	result := make([]jsonMember, len(cf.Fields))
	for i := range cf.Fields {
		f := &cf.Fields[i]
		m := jsonMember{
			Name:       f.Name(cf.ConstantPool),
			Descriptor: f.Descriptor(cf.ConstantPool),
			Visibility: visibility(f.AccessFlags),
			Modifiers:  fieldModifiers(f),
			Attributes: buildAttributes(cf.ConstantPool, f.Attributes),
		}
		if t := f.ParsedDescriptor(cf.ConstantPool); t != nil {
			m.Type = t.String()
		}
		result[i] = m
	}
	return result
}

func buildMethods(cf *classfile.ClassFile) []jsonMember {
	result := make([]jsonMember, len(cf.Methods))
	for i := range cf.Methods {
		method := &cf.Methods[i]
		m := jsonMember{
			Name:       method.Name(cf.ConstantPool),
			Descriptor: method.Descriptor(cf.ConstantPool),
			Visibility: visibility(method.AccessFlags),
			Modifiers:  methodModifiers(method),
			Attributes: buildAttributes(cf.ConstantPool, method.Attributes),
		}
		if md := method.ParsedDescriptor(cf.ConstantPool); md != nil {
			m.Type = md.String()
		}
		result[i] = m
	}
	return result
}

func buildAttributes(cp classfile.ConstantPool, attrs []classfile.AttributeInfo) []jsonAttribute {
	if len(attrs) == 0 {
		return nil
	}
	result := make([]jsonAttribute, len(attrs))
	for i := range attrs {
		attr := &attrs[i]
		result[i] = jsonAttribute{
			Name:   attr.Name(),
			Detail: describeAttribute(cp, attr),
		}
		switch a := attr.Parsed.(type) {
		case *classfile.CodeAttribute:
			result[i].Attributes = buildAttributes(cp, a.Attributes)
		case *classfile.RecordAttribute:
			for _, c := range a.Components {
				result[i].Attributes = append(result[i].Attributes, buildAttributes(cp, c.Attributes)...)
			}
		}
	}
	return result
}
