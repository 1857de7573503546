package classfile

import (
	"errors"
	"fmt"
)

// minAttributeSize is a name index plus a u4 length.
const minAttributeSize = 6

type attributeCodec struct {
	decode func(d *decoder, r *reader) Attribute
	encode func(e *encoder, w *writer, a Attribute)
}

// attributeCodecs maps every attribute name with a structured payload to its
// codec. Names missing from the table decode to UnknownAttribute. It is
// filled in init because Code and Record decode nested attributes through it.
var attributeCodecs map[string]attributeCodec

func init() {
	attributeCodecs = map[string]attributeCodec{
		AttrConstantValue:                        codec((*decoder).readConstantValue, (*encoder).writeConstantValue),
		AttrCode:                                 codec((*decoder).readCode, (*encoder).writeCode),
		AttrStackMapTable:                        codec((*decoder).readStackMapTable, (*encoder).writeStackMapTable),
		AttrExceptions:                           codec((*decoder).readExceptions, (*encoder).writeExceptions),
		AttrInnerClasses:                         codec((*decoder).readInnerClasses, (*encoder).writeInnerClasses),
		AttrEnclosingMethod:                      codec((*decoder).readEnclosingMethod, (*encoder).writeEnclosingMethod),
		AttrSynthetic:                            codec((*decoder).readSynthetic, (*encoder).writeSynthetic),
		AttrSignature:                            codec((*decoder).readSignature, (*encoder).writeSignature),
		AttrSourceFile:                           codec((*decoder).readSourceFile, (*encoder).writeSourceFile),
		AttrSourceDebugExtension:                 codec((*decoder).readSourceDebugExtension, (*encoder).writeSourceDebugExtension),
		AttrLineNumberTable:                      codec((*decoder).readLineNumberTable, (*encoder).writeLineNumberTable),
		AttrLocalVariableTable:                   codec((*decoder).readLocalVariableTable, (*encoder).writeLocalVariableTable),
		AttrLocalVariableTypeTable:               codec((*decoder).readLocalVariableTypeTable, (*encoder).writeLocalVariableTypeTable),
		AttrDeprecated:                           codec((*decoder).readDeprecated, (*encoder).writeDeprecated),
		AttrRuntimeVisibleAnnotations:            codec((*decoder).readRuntimeVisibleAnnotations, (*encoder).writeRuntimeVisibleAnnotations),
		AttrRuntimeInvisibleAnnotations:          codec((*decoder).readRuntimeInvisibleAnnotations, (*encoder).writeRuntimeInvisibleAnnotations),
		AttrRuntimeVisibleParameterAnnotations:   codec((*decoder).readRuntimeVisibleParameterAnnotations, (*encoder).writeRuntimeVisibleParameterAnnotations),
		AttrRuntimeInvisibleParameterAnnotations: codec((*decoder).readRuntimeInvisibleParameterAnnotations, (*encoder).writeRuntimeInvisibleParameterAnnotations),
		AttrRuntimeVisibleTypeAnnotations:        codec((*decoder).readRuntimeVisibleTypeAnnotations, (*encoder).writeRuntimeVisibleTypeAnnotations),
		AttrRuntimeInvisibleTypeAnnotations:      codec((*decoder).readRuntimeInvisibleTypeAnnotations, (*encoder).writeRuntimeInvisibleTypeAnnotations),
		AttrAnnotationDefault:                    codec((*decoder).readAnnotationDefault, (*encoder).writeAnnotationDefault),
		AttrBootstrapMethods:                     codec((*decoder).readBootstrapMethods, (*encoder).writeBootstrapMethods),
		AttrMethodParameters:                     codec((*decoder).readMethodParameters, (*encoder).writeMethodParameters),
		AttrNestHost:                             codec((*decoder).readNestHost, (*encoder).writeNestHost),
		AttrNestMembers:                          codec((*decoder).readNestMembers, (*encoder).writeNestMembers),
		AttrRecord:                               codec((*decoder).readRecord, (*encoder).writeRecord),
		AttrPermittedSubclasses:                  codec((*decoder).readPermittedSubclasses, (*encoder).writePermittedSubclasses),
		AttrModule:                               codec((*decoder).readModule, (*encoder).writeModule),
		AttrModulePackages:                       codec((*decoder).readModulePackages, (*encoder).writeModulePackages),
		AttrModuleMainClass:                      codec((*decoder).readModuleMainClass, (*encoder).writeModuleMainClass),
	}
}

func codec[T Attribute](decode func(*decoder, *reader) T, encode func(*encoder, *writer, T)) attributeCodec {
	return attributeCodec{
		decode: func(d *decoder, r *reader) Attribute {
			return decode(d, r)
		},
		encode: func(e *encoder, w *writer, a Attribute) {
			v, ok := a.(T)
			if !ok {
				var want T
				w.fail(&InvalidStructureError{
					Offset: w.offset(),
					Field:  a.AttributeName(),
					Reason: fmt.Sprintf("payload is %T, want %T", a, want),
				})
				return
			}
			encode(e, w, v)
		},
	}
}

func (d *decoder) readAttributes(r *reader) []AttributeInfo {
	count := int(r.readU2())
	if !r.fits("attributes", count, minAttributeSize) || count == 0 {
		return nil
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		attrs[i] = d.readAttribute(r)
		if r.err != nil {
			r.err = fmt.Errorf("attribute %d: %w", i, r.err)
			return nil
		}
	}
	return attrs
}

// readAttribute decodes one attribute inside a view of exactly its declared
// length. Running out of bytes inside the view, or leaving bytes unread, is
// reported as an AttributeLengthMismatchError.
func (d *decoder) readAttribute(r *reader) AttributeInfo {
	start := r.offset()
	info := AttributeInfo{NameIndex: d.readIndex(r, "attribute_name_index", ConstantUtf8)}
	length := r.readU4()
	s := r.sub(int(length))
	if r.err != nil {
		return info
	}
	if !d.enter(r) {
		return info
	}
	defer d.leave()

	name := d.pool.GetUtf8(info.NameIndex)
	if c, ok := attributeCodecs[name]; ok {
		info.Parsed = c.decode(d, s)
	} else {
		d.opts.log.Debugf("keeping unknown attribute %q at offset %d as %d raw bytes", name, start, length)
		info.Parsed = &UnknownAttribute{Name: name, Info: s.readBytes(int(length))}
	}

	mismatch := &AttributeLengthMismatchError{Offset: start, Name: name, Declared: length, Consumed: s.pos}
	var truncated *TruncatedInputError
	switch {
	case s.err != nil && errors.As(s.err, &truncated):
		mismatch.Consumed = truncated.Offset - s.base + truncated.Needed
		r.fail(mismatch)
	case s.err != nil:
		r.fail(s.err)
	case s.remaining() > 0:
		r.fail(mismatch)
	}
	return info
}

func (e *encoder) writeAttributes(w *writer, attrs []AttributeInfo) {
	w.writeCount("attributes", len(attrs), 2)
	for i, attr := range attrs {
		e.writeAttribute(w, attr)
		if w.err != nil {
			w.err = fmt.Errorf("attribute %d: %w", i, w.err)
			return
		}
	}
}

// writeAttribute emits the name index, then the payload behind a length that
// is computed from what was written.
func (e *encoder) writeAttribute(w *writer, attr AttributeInfo) {
	if attr.Parsed == nil {
		w.fail(&InvalidStructureError{Offset: w.offset(), Field: "attribute", Reason: "missing payload"})
		return
	}
	e.writeIndex(w, "attribute_name_index", attr.NameIndex, ConstantUtf8)
	if w.err != nil {
		return
	}
	name := e.pool.GetUtf8(attr.NameIndex)
	if name != attr.Parsed.AttributeName() {
		w.fail(&InvalidStructureError{
			Offset: w.offset(),
			Field:  "attribute_name_index",
			Reason: fmt.Sprintf("pool entry %d names %q but the payload is %q", attr.NameIndex, name, attr.Parsed.AttributeName()),
		})
		return
	}
	if !e.enter(w) {
		return
	}
	defer e.leave()

	pos := w.beginLength()
	c, known := attributeCodecs[name]
	if raw, ok := attr.Parsed.(*UnknownAttribute); ok {
		if known {
			w.fail(&InvalidStructureError{Offset: pos, Field: name, Reason: "attribute has a structured form and cannot be written as raw bytes"})
			return
		}
		w.writeBytes(raw.Info)
	} else if known {
		c.encode(e, w, attr.Parsed)
	} else {
		w.fail(&InvalidStructureError{Offset: pos, Field: name, Reason: fmt.Sprintf("no encoding for %T", attr.Parsed)})
		return
	}
	w.endLength(name, pos)
}

func (d *decoder) readIndexList(r *reader, field string, tags ...ConstantTag) []uint16 {
	return readList(r, field, int(r.readU2()), 2, func() uint16 {
		return d.readIndex(r, field, tags...)
	})
}

func (e *encoder) writeIndexList(w *writer, field string, indices []uint16, tags ...ConstantTag) {
	w.writeCount(field, len(indices), 2)
	for _, index := range indices {
		e.writeIndex(w, field, index, tags...)
	}
}

func (d *decoder) readConstantValue(r *reader) *ConstantValueAttribute {
	return &ConstantValueAttribute{
		ConstantValueIndex: d.readIndex(r, "ConstantValue.constantvalue_index",
			ConstantInteger, ConstantFloat, ConstantLong, ConstantDouble, ConstantString),
	}
}

func (e *encoder) writeConstantValue(w *writer, a *ConstantValueAttribute) {
	e.writeIndex(w, "ConstantValue.constantvalue_index", a.ConstantValueIndex,
		ConstantInteger, ConstantFloat, ConstantLong, ConstantDouble, ConstantString)
}

func (d *decoder) readCode(r *reader) *CodeAttribute {
	code := &CodeAttribute{MaxStack: r.readU2(), MaxLocals: r.readU2()}
	code.Code = r.readBytes(int(r.readU4()))
	code.ExceptionTable = readList(r, "Code.exception_table", int(r.readU2()), 8, func() ExceptionTableEntry {
		return ExceptionTableEntry{
			StartPC:   r.readU2(),
			EndPC:     r.readU2(),
			HandlerPC: r.readU2(),
			CatchType: d.readOptionalIndex(r, "Code.exception_table.catch_type", ConstantClass),
		}
	})
	code.Attributes = d.readAttributes(r)
	return code
}

func (e *encoder) writeCode(w *writer, a *CodeAttribute) {
	w.writeU2(a.MaxStack)
	w.writeU2(a.MaxLocals)
	if uint64(len(a.Code)) > 0xFFFFFFFF {
		w.fail(&InvalidStructureError{Offset: w.offset(), Field: "Code.code_length", Reason: "bytecode exceeds 4 GiB"})
		return
	}
	w.writeU4(uint32(len(a.Code)))
	w.writeBytes(a.Code)
	w.writeCount("Code.exception_table", len(a.ExceptionTable), 2)
	for _, entry := range a.ExceptionTable {
		w.writeU2(entry.StartPC)
		w.writeU2(entry.EndPC)
		w.writeU2(entry.HandlerPC)
		e.writeOptionalIndex(w, "Code.exception_table.catch_type", entry.CatchType, ConstantClass)
	}
	e.writeAttributes(w, a.Attributes)
}

func (d *decoder) readStackMapTable(r *reader) *StackMapTableAttribute {
	return &StackMapTableAttribute{
		Entries: readList(r, "StackMapTable.entries", int(r.readU2()), 1, func() StackMapFrame {
			return d.readStackMapFrame(r)
		}),
	}
}

func (e *encoder) writeStackMapTable(w *writer, a *StackMapTableAttribute) {
	w.writeCount("StackMapTable.entries", len(a.Entries), 2)
	for _, frame := range a.Entries {
		e.writeStackMapFrame(w, frame)
	}
}

func (d *decoder) readExceptions(r *reader) *ExceptionsAttribute {
	return &ExceptionsAttribute{ExceptionIndexTable: d.readIndexList(r, "Exceptions.exception_index_table", ConstantClass)}
}

func (e *encoder) writeExceptions(w *writer, a *ExceptionsAttribute) {
	e.writeIndexList(w, "Exceptions.exception_index_table", a.ExceptionIndexTable, ConstantClass)
}

func (d *decoder) readInnerClasses(r *reader) *InnerClassesAttribute {
	return &InnerClassesAttribute{
		Classes: readList(r, "InnerClasses.classes", int(r.readU2()), 8, func() InnerClassEntry {
			return InnerClassEntry{
				InnerClassInfoIndex:   d.readIndex(r, "InnerClasses.inner_class_info_index", ConstantClass),
				OuterClassInfoIndex:   d.readOptionalIndex(r, "InnerClasses.outer_class_info_index", ConstantClass),
				InnerNameIndex:        d.readOptionalIndex(r, "InnerClasses.inner_name_index", ConstantUtf8),
				InnerClassAccessFlags: AccessFlags(r.readU2()),
			}
		}),
	}
}

func (e *encoder) writeInnerClasses(w *writer, a *InnerClassesAttribute) {
	w.writeCount("InnerClasses.classes", len(a.Classes), 2)
	for _, c := range a.Classes {
		e.writeIndex(w, "InnerClasses.inner_class_info_index", c.InnerClassInfoIndex, ConstantClass)
		e.writeOptionalIndex(w, "InnerClasses.outer_class_info_index", c.OuterClassInfoIndex, ConstantClass)
		e.writeOptionalIndex(w, "InnerClasses.inner_name_index", c.InnerNameIndex, ConstantUtf8)
		w.writeU2(uint16(c.InnerClassAccessFlags))
	}
}

func (d *decoder) readEnclosingMethod(r *reader) *EnclosingMethodAttribute {
	return &EnclosingMethodAttribute{
		ClassIndex:  d.readIndex(r, "EnclosingMethod.class_index", ConstantClass),
		MethodIndex: d.readOptionalIndex(r, "EnclosingMethod.method_index", ConstantNameAndType),
	}
}

func (e *encoder) writeEnclosingMethod(w *writer, a *EnclosingMethodAttribute) {
	e.writeIndex(w, "EnclosingMethod.class_index", a.ClassIndex, ConstantClass)
	e.writeOptionalIndex(w, "EnclosingMethod.method_index", a.MethodIndex, ConstantNameAndType)
}

func (d *decoder) readSynthetic(*reader) *SyntheticAttribute {
	return &SyntheticAttribute{}
}

func (e *encoder) writeSynthetic(*writer, *SyntheticAttribute) {}

func (d *decoder) readSignature(r *reader) *SignatureAttribute {
	return &SignatureAttribute{SignatureIndex: d.readIndex(r, "Signature.signature_index", ConstantUtf8)}
}

func (e *encoder) writeSignature(w *writer, a *SignatureAttribute) {
	e.writeIndex(w, "Signature.signature_index", a.SignatureIndex, ConstantUtf8)
}

func (d *decoder) readSourceFile(r *reader) *SourceFileAttribute {
	return &SourceFileAttribute{SourceFileIndex: d.readIndex(r, "SourceFile.sourcefile_index", ConstantUtf8)}
}

func (e *encoder) writeSourceFile(w *writer, a *SourceFileAttribute) {
	e.writeIndex(w, "SourceFile.sourcefile_index", a.SourceFileIndex, ConstantUtf8)
}

// The extension has no internal framing, so it takes the whole view.
func (d *decoder) readSourceDebugExtension(r *reader) *SourceDebugExtensionAttribute {
	return &SourceDebugExtensionAttribute{DebugExtension: r.readBytes(r.remaining())}
}

func (e *encoder) writeSourceDebugExtension(w *writer, a *SourceDebugExtensionAttribute) {
	w.writeBytes(a.DebugExtension)
}

func (d *decoder) readLineNumberTable(r *reader) *LineNumberTableAttribute {
	return &LineNumberTableAttribute{
		LineNumberTable: readList(r, "LineNumberTable.line_number_table", int(r.readU2()), 4, func() LineNumberEntry {
			return LineNumberEntry{StartPC: r.readU2(), LineNumber: r.readU2()}
		}),
	}
}

func (e *encoder) writeLineNumberTable(w *writer, a *LineNumberTableAttribute) {
	w.writeCount("LineNumberTable.line_number_table", len(a.LineNumberTable), 2)
	for _, entry := range a.LineNumberTable {
		w.writeU2(entry.StartPC)
		w.writeU2(entry.LineNumber)
	}
}

func (d *decoder) readLocalVariableTable(r *reader) *LocalVariableTableAttribute {
	return &LocalVariableTableAttribute{
		LocalVariableTable: readList(r, "LocalVariableTable.local_variable_table", int(r.readU2()), 10, func() LocalVariableEntry {
			return LocalVariableEntry{
				StartPC:         r.readU2(),
				Length:          r.readU2(),
				NameIndex:       d.readIndex(r, "LocalVariableTable.name_index", ConstantUtf8),
				DescriptorIndex: d.readIndex(r, "LocalVariableTable.descriptor_index", ConstantUtf8),
				Index:           r.readU2(),
			}
		}),
	}
}

func (e *encoder) writeLocalVariableTable(w *writer, a *LocalVariableTableAttribute) {
	w.writeCount("LocalVariableTable.local_variable_table", len(a.LocalVariableTable), 2)
	for _, entry := range a.LocalVariableTable {
		w.writeU2(entry.StartPC)
		w.writeU2(entry.Length)
		e.writeIndex(w, "LocalVariableTable.name_index", entry.NameIndex, ConstantUtf8)
		e.writeIndex(w, "LocalVariableTable.descriptor_index", entry.DescriptorIndex, ConstantUtf8)
		w.writeU2(entry.Index)
	}
}

func (d *decoder) readLocalVariableTypeTable(r *reader) *LocalVariableTypeTableAttribute {
	return &LocalVariableTypeTableAttribute{
		LocalVariableTypeTable: readList(r, "LocalVariableTypeTable.local_variable_type_table", int(r.readU2()), 10, func() LocalVariableTypeEntry {
			return LocalVariableTypeEntry{
				StartPC:        r.readU2(),
				Length:         r.readU2(),
				NameIndex:      d.readIndex(r, "LocalVariableTypeTable.name_index", ConstantUtf8),
				SignatureIndex: d.readIndex(r, "LocalVariableTypeTable.signature_index", ConstantUtf8),
				Index:          r.readU2(),
			}
		}),
	}
}

func (e *encoder) writeLocalVariableTypeTable(w *writer, a *LocalVariableTypeTableAttribute) {
	w.writeCount("LocalVariableTypeTable.local_variable_type_table", len(a.LocalVariableTypeTable), 2)
	for _, entry := range a.LocalVariableTypeTable {
		w.writeU2(entry.StartPC)
		w.writeU2(entry.Length)
		e.writeIndex(w, "LocalVariableTypeTable.name_index", entry.NameIndex, ConstantUtf8)
		e.writeIndex(w, "LocalVariableTypeTable.signature_index", entry.SignatureIndex, ConstantUtf8)
		w.writeU2(entry.Index)
	}
}

func (d *decoder) readDeprecated(*reader) *DeprecatedAttribute {
	return &DeprecatedAttribute{}
}

func (e *encoder) writeDeprecated(*writer, *DeprecatedAttribute) {}

func (d *decoder) readRuntimeVisibleAnnotations(r *reader) *RuntimeVisibleAnnotationsAttribute {
	return &RuntimeVisibleAnnotationsAttribute{Annotations: d.readAnnotations(r, "RuntimeVisibleAnnotations.annotations")}
}

func (e *encoder) writeRuntimeVisibleAnnotations(w *writer, a *RuntimeVisibleAnnotationsAttribute) {
	e.writeAnnotations(w, "RuntimeVisibleAnnotations.annotations", a.Annotations)
}

func (d *decoder) readRuntimeInvisibleAnnotations(r *reader) *RuntimeInvisibleAnnotationsAttribute {
	return &RuntimeInvisibleAnnotationsAttribute{Annotations: d.readAnnotations(r, "RuntimeInvisibleAnnotations.annotations")}
}

func (e *encoder) writeRuntimeInvisibleAnnotations(w *writer, a *RuntimeInvisibleAnnotationsAttribute) {
	e.writeAnnotations(w, "RuntimeInvisibleAnnotations.annotations", a.Annotations)
}

func (d *decoder) readParameterAnnotations(r *reader, field string) [][]Annotation {
	return readList(r, field, int(r.readU1()), 2, func() []Annotation {
		return d.readAnnotations(r, field)
	})
}

func (e *encoder) writeParameterAnnotations(w *writer, field string, params [][]Annotation) {
	w.writeCount(field, len(params), 1)
	for _, anns := range params {
		e.writeAnnotations(w, field, anns)
	}
}

func (d *decoder) readRuntimeVisibleParameterAnnotations(r *reader) *RuntimeVisibleParameterAnnotationsAttribute {
	return &RuntimeVisibleParameterAnnotationsAttribute{
		ParameterAnnotations: d.readParameterAnnotations(r, "RuntimeVisibleParameterAnnotations.parameter_annotations"),
	}
}

func (e *encoder) writeRuntimeVisibleParameterAnnotations(w *writer, a *RuntimeVisibleParameterAnnotationsAttribute) {
	e.writeParameterAnnotations(w, "RuntimeVisibleParameterAnnotations.parameter_annotations", a.ParameterAnnotations)
}

func (d *decoder) readRuntimeInvisibleParameterAnnotations(r *reader) *RuntimeInvisibleParameterAnnotationsAttribute {
	return &RuntimeInvisibleParameterAnnotationsAttribute{
		ParameterAnnotations: d.readParameterAnnotations(r, "RuntimeInvisibleParameterAnnotations.parameter_annotations"),
	}
}

func (e *encoder) writeRuntimeInvisibleParameterAnnotations(w *writer, a *RuntimeInvisibleParameterAnnotationsAttribute) {
	e.writeParameterAnnotations(w, "RuntimeInvisibleParameterAnnotations.parameter_annotations", a.ParameterAnnotations)
}

func (d *decoder) readRuntimeVisibleTypeAnnotations(r *reader) *RuntimeVisibleTypeAnnotationsAttribute {
	return &RuntimeVisibleTypeAnnotationsAttribute{Annotations: d.readTypeAnnotations(r, "RuntimeVisibleTypeAnnotations.annotations")}
}

func (e *encoder) writeRuntimeVisibleTypeAnnotations(w *writer, a *RuntimeVisibleTypeAnnotationsAttribute) {
	e.writeTypeAnnotations(w, "RuntimeVisibleTypeAnnotations.annotations", a.Annotations)
}

func (d *decoder) readRuntimeInvisibleTypeAnnotations(r *reader) *RuntimeInvisibleTypeAnnotationsAttribute {
	return &RuntimeInvisibleTypeAnnotationsAttribute{Annotations: d.readTypeAnnotations(r, "RuntimeInvisibleTypeAnnotations.annotations")}
}

func (e *encoder) writeRuntimeInvisibleTypeAnnotations(w *writer, a *RuntimeInvisibleTypeAnnotationsAttribute) {
	e.writeTypeAnnotations(w, "RuntimeInvisibleTypeAnnotations.annotations", a.Annotations)
}

func (d *decoder) readAnnotationDefault(r *reader) *AnnotationDefaultAttribute {
	return &AnnotationDefaultAttribute{DefaultValue: d.readElementValue(r)}
}

func (e *encoder) writeAnnotationDefault(w *writer, a *AnnotationDefaultAttribute) {
	e.writeElementValue(w, a.DefaultValue)
}

func (d *decoder) readBootstrapMethods(r *reader) *BootstrapMethodsAttribute {
	return &BootstrapMethodsAttribute{
		BootstrapMethods: readList(r, "BootstrapMethods.bootstrap_methods", int(r.readU2()), 4, func() BootstrapMethod {
			return BootstrapMethod{
				BootstrapMethodRef: d.readIndex(r, "BootstrapMethods.bootstrap_method_ref", ConstantMethodHandle),
				BootstrapArguments: d.readIndexList(r, "BootstrapMethods.bootstrap_arguments", loadableTags...),
			}
		}),
	}
}

func (e *encoder) writeBootstrapMethods(w *writer, a *BootstrapMethodsAttribute) {
	w.writeCount("BootstrapMethods.bootstrap_methods", len(a.BootstrapMethods), 2)
	for _, bm := range a.BootstrapMethods {
		e.writeIndex(w, "BootstrapMethods.bootstrap_method_ref", bm.BootstrapMethodRef, ConstantMethodHandle)
		e.writeIndexList(w, "BootstrapMethods.bootstrap_arguments", bm.BootstrapArguments, loadableTags...)
	}
}

func (d *decoder) readMethodParameters(r *reader) *MethodParametersAttribute {
	return &MethodParametersAttribute{
		Parameters: readList(r, "MethodParameters.parameters", int(r.readU1()), 4, func() MethodParameter {
			return MethodParameter{
				NameIndex:   d.readOptionalIndex(r, "MethodParameters.name_index", ConstantUtf8),
				AccessFlags: AccessFlags(r.readU2()),
			}
		}),
	}
}

func (e *encoder) writeMethodParameters(w *writer, a *MethodParametersAttribute) {
	w.writeCount("MethodParameters.parameters", len(a.Parameters), 1)
	for _, p := range a.Parameters {
		e.writeOptionalIndex(w, "MethodParameters.name_index", p.NameIndex, ConstantUtf8)
		w.writeU2(uint16(p.AccessFlags))
	}
}

func (d *decoder) readNestHost(r *reader) *NestHostAttribute {
	return &NestHostAttribute{HostClassIndex: d.readIndex(r, "NestHost.host_class_index", ConstantClass)}
}

func (e *encoder) writeNestHost(w *writer, a *NestHostAttribute) {
	e.writeIndex(w, "NestHost.host_class_index", a.HostClassIndex, ConstantClass)
}

func (d *decoder) readNestMembers(r *reader) *NestMembersAttribute {
	return &NestMembersAttribute{Classes: d.readIndexList(r, "NestMembers.classes", ConstantClass)}
}

func (e *encoder) writeNestMembers(w *writer, a *NestMembersAttribute) {
	e.writeIndexList(w, "NestMembers.classes", a.Classes, ConstantClass)
}

func (d *decoder) readRecord(r *reader) *RecordAttribute {
	return &RecordAttribute{
		Components: readList(r, "Record.components", int(r.readU2()), 6, func() RecordComponentInfo {
			return RecordComponentInfo{
				NameIndex:       d.readIndex(r, "Record.name_index", ConstantUtf8),
				DescriptorIndex: d.readIndex(r, "Record.descriptor_index", ConstantUtf8),
				Attributes:      d.readAttributes(r),
			}
		}),
	}
}

func (e *encoder) writeRecord(w *writer, a *RecordAttribute) {
	w.writeCount("Record.components", len(a.Components), 2)
	for _, c := range a.Components {
		e.writeIndex(w, "Record.name_index", c.NameIndex, ConstantUtf8)
		e.writeIndex(w, "Record.descriptor_index", c.DescriptorIndex, ConstantUtf8)
		e.writeAttributes(w, c.Attributes)
	}
}

func (d *decoder) readPermittedSubclasses(r *reader) *PermittedSubclassesAttribute {
	return &PermittedSubclassesAttribute{Classes: d.readIndexList(r, "PermittedSubclasses.classes", ConstantClass)}
}

func (e *encoder) writePermittedSubclasses(w *writer, a *PermittedSubclassesAttribute) {
	e.writeIndexList(w, "PermittedSubclasses.classes", a.Classes, ConstantClass)
}

func (d *decoder) readModule(r *reader) *ModuleAttribute {
	m := &ModuleAttribute{
		ModuleNameIndex:    d.readIndex(r, "Module.module_name_index", ConstantModule),
		ModuleFlags:        r.readU2(),
		ModuleVersionIndex: d.readOptionalIndex(r, "Module.module_version_index", ConstantUtf8),
	}
	m.Requires = readList(r, "Module.requires", int(r.readU2()), 6, func() ModuleRequires {
		return ModuleRequires{
			RequiresIndex:        d.readIndex(r, "Module.requires_index", ConstantModule),
			RequiresFlags:        r.readU2(),
			RequiresVersionIndex: d.readOptionalIndex(r, "Module.requires_version_index", ConstantUtf8),
		}
	})
	m.Exports = readList(r, "Module.exports", int(r.readU2()), 6, func() ModuleExports {
		return ModuleExports{
			ExportsIndex:   d.readIndex(r, "Module.exports_index", ConstantPackage),
			ExportsFlags:   r.readU2(),
			ExportsToIndex: d.readIndexList(r, "Module.exports_to_index", ConstantModule),
		}
	})
	m.Opens = readList(r, "Module.opens", int(r.readU2()), 6, func() ModuleOpens {
		return ModuleOpens{
			OpensIndex:   d.readIndex(r, "Module.opens_index", ConstantPackage),
			OpensFlags:   r.readU2(),
			OpensToIndex: d.readIndexList(r, "Module.opens_to_index", ConstantModule),
		}
	})
	m.Uses = d.readIndexList(r, "Module.uses_index", ConstantClass)
	m.Provides = readList(r, "Module.provides", int(r.readU2()), 4, func() ModuleProvides {
		return ModuleProvides{
			ProvidesIndex:     d.readIndex(r, "Module.provides_index", ConstantClass),
			ProvidesWithIndex: d.readIndexList(r, "Module.provides_with_index", ConstantClass),
		}
	})
	return m
}

func (e *encoder) writeModule(w *writer, a *ModuleAttribute) {
	e.writeIndex(w, "Module.module_name_index", a.ModuleNameIndex, ConstantModule)
	w.writeU2(a.ModuleFlags)
	e.writeOptionalIndex(w, "Module.module_version_index", a.ModuleVersionIndex, ConstantUtf8)

	w.writeCount("Module.requires", len(a.Requires), 2)
	for _, req := range a.Requires {
		e.writeIndex(w, "Module.requires_index", req.RequiresIndex, ConstantModule)
		w.writeU2(req.RequiresFlags)
		e.writeOptionalIndex(w, "Module.requires_version_index", req.RequiresVersionIndex, ConstantUtf8)
	}
	w.writeCount("Module.exports", len(a.Exports), 2)
	for _, exp := range a.Exports {
		e.writeIndex(w, "Module.exports_index", exp.ExportsIndex, ConstantPackage)
		w.writeU2(exp.ExportsFlags)
		e.writeIndexList(w, "Module.exports_to_index", exp.ExportsToIndex, ConstantModule)
	}
	w.writeCount("Module.opens", len(a.Opens), 2)
	for _, op := range a.Opens {
		e.writeIndex(w, "Module.opens_index", op.OpensIndex, ConstantPackage)
		w.writeU2(op.OpensFlags)
		e.writeIndexList(w, "Module.opens_to_index", op.OpensToIndex, ConstantModule)
	}
	e.writeIndexList(w, "Module.uses_index", a.Uses, ConstantClass)
	w.writeCount("Module.provides", len(a.Provides), 2)
	for _, p := range a.Provides {
		e.writeIndex(w, "Module.provides_index", p.ProvidesIndex, ConstantClass)
		e.writeIndexList(w, "Module.provides_with_index", p.ProvidesWithIndex, ConstantClass)
	}
}

func (d *decoder) readModulePackages(r *reader) *ModulePackagesAttribute {
	return &ModulePackagesAttribute{PackageIndex: d.readIndexList(r, "ModulePackages.package_index", ConstantPackage)}
}

func (e *encoder) writeModulePackages(w *writer, a *ModulePackagesAttribute) {
	e.writeIndexList(w, "ModulePackages.package_index", a.PackageIndex, ConstantPackage)
}

func (d *decoder) readModuleMainClass(r *reader) *ModuleMainClassAttribute {
	return &ModuleMainClassAttribute{MainClassIndex: d.readIndex(r, "ModuleMainClass.main_class_index", ConstantClass)}
}

func (e *encoder) writeModuleMainClass(w *writer, a *ModuleMainClassAttribute) {
	e.writeIndex(w, "ModuleMainClass.main_class_index", a.MainClassIndex, ConstantClass)
}
