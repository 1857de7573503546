package classfile

import (
	"fmt"
	"io"
)

type encoder struct {
	opts  options
	pool  ConstantPool
	depth int
}

// Encode serializes cf. Counts and attribute lengths are computed from the
// value rather than trusted, and every index is checked against the pool,
// so a value that violates an invariant fails instead of producing bytes.
func Encode(cf *ClassFile, opts ...Option) ([]byte, error) {
	if cf == nil {
		return nil, &InvalidStructureError{Field: "class file", Reason: "nil value"}
	}
	e := &encoder{opts: newOptions(opts)}
	w := &writer{}
	e.encode(w, cf)
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

func (e *encoder) encode(w *writer, cf *ClassFile) {
	w.writeU4(Magic)
	versionOffset := w.offset()
	w.writeU2(cf.MinorVersion)
	w.writeU2(cf.MajorVersion)
	if err := checkVersion(e.opts, cf, versionOffset); err != nil {
		w.fail(err)
		return
	}

	poolOffset := w.offset()
	e.writeConstantPool(w, cf.ConstantPool)
	if w.err != nil {
		w.err = fmt.Errorf("constant pool: %w", w.err)
		return
	}
	if err := checkBootstrapIndices(cf, func(int) int { return poolOffset }); err != nil {
		w.fail(err)
		return
	}
	e.pool = cf.ConstantPool

	w.writeU2(uint16(cf.AccessFlags))
	e.writeIndex(w, "this_class", cf.ThisClass, ConstantClass)
	if err := checkSuperClass(cf, w.offset()); err != nil {
		w.fail(err)
		return
	}
	w.writeU2(cf.SuperClass)
	e.writeIndexList(w, "interfaces", cf.Interfaces, ConstantClass)
	if w.err != nil {
		return
	}

	w.writeCount("fields", len(cf.Fields), 2)
	for i := range cf.Fields {
		e.writeField(w, &cf.Fields[i])
		if w.err != nil {
			w.err = fmt.Errorf("fields[%d]: %w", i, w.err)
			return
		}
	}
	w.writeCount("methods", len(cf.Methods), 2)
	for i := range cf.Methods {
		e.writeMethod(w, &cf.Methods[i])
		if w.err != nil {
			w.err = fmt.Errorf("methods[%d]: %w", i, w.err)
			return
		}
	}
	e.writeAttributes(w, cf.Attributes)
}

func (e *encoder) writeField(w *writer, f *FieldInfo) {
	w.writeU2(uint16(f.AccessFlags))
	e.writeIndex(w, "field.name_index", f.NameIndex, ConstantUtf8)
	e.writeDescriptor(w, "field.descriptor_index", f.DescriptorIndex, ValidFieldDescriptor)
	e.writeAttributes(w, f.Attributes)
}

func (e *encoder) writeMethod(w *writer, m *MethodInfo) {
	w.writeU2(uint16(m.AccessFlags))
	e.writeIndex(w, "method.name_index", m.NameIndex, ConstantUtf8)
	e.writeDescriptor(w, "method.descriptor_index", m.DescriptorIndex, ValidMethodDescriptor)
	e.writeAttributes(w, m.Attributes)
}

func (e *encoder) writeDescriptor(w *writer, field string, index uint16, valid func(string) bool) {
	offset := w.offset()
	e.writeIndex(w, field, index, ConstantUtf8)
	if w.err != nil || !e.opts.checkDescriptors {
		return
	}
	if desc := e.pool.GetUtf8(index); !valid(desc) {
		w.fail(&InvalidDescriptorError{Offset: offset, Field: field, Descriptor: desc})
	}
}

func (e *encoder) writeIndex(w *writer, field string, index uint16, tags ...ConstantTag) {
	if err := e.pool.check(field, index, w.offset(), tags...); err != nil {
		w.fail(err)
	}
	w.writeU2(index)
}

func (e *encoder) writeOptionalIndex(w *writer, field string, index uint16, tags ...ConstantTag) {
	if index == 0 {
		w.writeU2(0)
		return
	}
	e.writeIndex(w, field, index, tags...)
}

func (e *encoder) enter(w *writer) bool {
	if e.depth >= e.opts.maxDepth {
		w.fail(&RecursionLimitExceededError{Offset: w.offset(), Limit: e.opts.maxDepth})
		return false
	}
	e.depth++
	return true
}

func (e *encoder) leave() {
	e.depth--
}

// MarshalBinary encodes cf with default options.
func (cf *ClassFile) MarshalBinary() ([]byte, error) {
	return Encode(cf)
}

// UnmarshalBinary replaces cf with the decoded form of b.
func (cf *ClassFile) UnmarshalBinary(b []byte) error {
	decoded, err := Decode(b)
	if err != nil {
		return err
	}
	*cf = *decoded
	return nil
}

// WriteTo encodes cf and writes the result to w.
func (cf *ClassFile) WriteTo(w io.Writer) (int64, error) {
	b, err := Encode(cf)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}
