package classfile

import "fmt"

type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type ElementValuePair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

// ElementValue is one of ConstValue, EnumConstValue, ClassInfoValue,
// AnnotationValue or ArrayValue.
type ElementValue interface {
	ElementTag() byte
}

// ConstValue is a primitive or String constant; Tag is one of B C D F I J S Z s.
type ConstValue struct {
	Tag             byte
	ConstValueIndex uint16
}

type EnumConstValue struct {
	TypeNameIndex  uint16
	ConstNameIndex uint16
}

type ClassInfoValue struct {
	ClassInfoIndex uint16
}

type AnnotationValue struct {
	Annotation Annotation
}

type ArrayValue struct {
	Values []ElementValue
}

func (v ConstValue) ElementTag() byte    { return v.Tag }
func (EnumConstValue) ElementTag() byte  { return ElementEnum }
func (ClassInfoValue) ElementTag() byte  { return ElementClass }
func (AnnotationValue) ElementTag() byte { return ElementAnnotation }
func (ArrayValue) ElementTag() byte      { return ElementArray }

type TypeAnnotation struct {
	TargetType        uint8
	TargetInfo        TargetInfo
	TargetPath        []TypePathEntry
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type TypePathEntry struct {
	TypePathKind      uint8
	TypeArgumentIndex uint8
}

// TargetInfo is the target_info union of a type annotation. Which concrete
// type is valid depends on the annotation's TargetType.
type TargetInfo interface {
	targetInfo()
}

type TypeParameterTarget struct {
	TypeParameterIndex uint8
}

type SupertypeTarget struct {
	SupertypeIndex uint16
}

type TypeParameterBoundTarget struct {
	TypeParameterIndex uint8
	BoundIndex         uint8
}

type EmptyTarget struct{}

type FormalParameterTarget struct {
	FormalParameterIndex uint8
}

type ThrowsTarget struct {
	ThrowsTypeIndex uint16
}

type LocalVarTarget struct {
	Table []LocalVarTargetEntry
}

type LocalVarTargetEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

type CatchTarget struct {
	ExceptionTableIndex uint16
}

type OffsetTarget struct {
	Offset uint16
}

type TypeArgumentTarget struct {
	Offset            uint16
	TypeArgumentIndex uint8
}

func (TypeParameterTarget) targetInfo()      {}
func (SupertypeTarget) targetInfo()          {}
func (TypeParameterBoundTarget) targetInfo() {}
func (EmptyTarget) targetInfo()              {}
func (FormalParameterTarget) targetInfo()    {}
func (ThrowsTarget) targetInfo()             {}
func (LocalVarTarget) targetInfo()           {}
func (CatchTarget) targetInfo()              {}
func (OffsetTarget) targetInfo()             {}
func (TypeArgumentTarget) targetInfo()       {}

// Minimum encoded sizes, used to reject impossible counts before allocating.
const (
	minAnnotationSize     = 4
	minElementValueSize   = 3
	minElementPairSize    = 2 + minElementValueSize
	minTypeAnnotationSize = 1 + 1 + minAnnotationSize
)

func (d *decoder) readAnnotation(r *reader) Annotation {
	ann := Annotation{TypeIndex: d.readIndex(r, "annotation.type_index", ConstantUtf8)}
	ann.ElementValuePairs = d.readElementValuePairs(r)
	return ann
}

func (d *decoder) readAnnotations(r *reader, field string) []Annotation {
	return readList(r, field, int(r.readU2()), minAnnotationSize, func() Annotation {
		return d.readAnnotation(r)
	})
}

func (d *decoder) readElementValuePairs(r *reader) []ElementValuePair {
	return readList(r, "element_value_pairs", int(r.readU2()), minElementPairSize, func() ElementValuePair {
		return ElementValuePair{
			ElementNameIndex: d.readIndex(r, "element_value_pair.element_name_index", ConstantUtf8),
			Value:            d.readElementValue(r),
		}
	})
}

// readElementValue recurses through nested annotations and arrays; the
// depth counter bounds how far an input can drive it.
func (d *decoder) readElementValue(r *reader) ElementValue {
	if !d.enter(r) {
		return nil
	}
	defer d.leave()

	offset := r.offset()
	tag := r.readU1()
	if r.err != nil {
		return nil
	}

	if constTag, ok := constValueTag(tag); ok {
		return ConstValue{Tag: tag, ConstValueIndex: d.readIndex(r, "element_value.const_value_index", constTag)}
	}
	switch tag {
	case ElementEnum:
		return EnumConstValue{
			TypeNameIndex:  d.readIndex(r, "element_value.type_name_index", ConstantUtf8),
			ConstNameIndex: d.readIndex(r, "element_value.const_name_index", ConstantUtf8),
		}
	case ElementClass:
		return ClassInfoValue{ClassInfoIndex: d.readIndex(r, "element_value.class_info_index", ConstantUtf8)}
	case ElementAnnotation:
		return AnnotationValue{Annotation: d.readAnnotation(r)}
	case ElementArray:
		values := readList(r, "element_value.values", int(r.readU2()), minElementValueSize, func() ElementValue {
			return d.readElementValue(r)
		})
		return ArrayValue{Values: values}
	default:
		r.fail(&InvalidTagError{Offset: offset, Kind: "element_value tag", Tag: tag})
		return nil
	}
}

func (d *decoder) readTypeAnnotation(r *reader) TypeAnnotation {
	ta := TypeAnnotation{}
	offset := r.offset()
	ta.TargetType = r.readU1()
	if r.err != nil {
		return ta
	}
	ta.TargetInfo = d.readTargetInfo(r, ta.TargetType, offset)
	ta.TargetPath = readList(r, "type_path", int(r.readU1()), 2, func() TypePathEntry {
		entryOffset := r.offset()
		entry := TypePathEntry{TypePathKind: r.readU1(), TypeArgumentIndex: r.readU1()}
		if r.err == nil && entry.TypePathKind > PathTypeArgument {
			r.fail(&InvalidTagError{Offset: entryOffset, Kind: "type_path_kind", Tag: entry.TypePathKind})
		}
		return entry
	})
	ta.TypeIndex = d.readIndex(r, "type_annotation.type_index", ConstantUtf8)
	ta.ElementValuePairs = d.readElementValuePairs(r)
	return ta
}

func (d *decoder) readTypeAnnotations(r *reader, field string) []TypeAnnotation {
	return readList(r, field, int(r.readU2()), minTypeAnnotationSize, func() TypeAnnotation {
		return d.readTypeAnnotation(r)
	})
}

func (d *decoder) readTargetInfo(r *reader, targetType uint8, offset int) TargetInfo {
	switch targetType {
	case TargetClassTypeParameter, TargetMethodTypeParameter:
		return TypeParameterTarget{TypeParameterIndex: r.readU1()}
	case TargetSupertype:
		return SupertypeTarget{SupertypeIndex: r.readU2()}
	case TargetClassTypeParameterBound, TargetMethodTypeParameterBound:
		return TypeParameterBoundTarget{TypeParameterIndex: r.readU1(), BoundIndex: r.readU1()}
	case TargetField, TargetMethodReturn, TargetMethodReceiver:
		return EmptyTarget{}
	case TargetMethodFormalParameter:
		return FormalParameterTarget{FormalParameterIndex: r.readU1()}
	case TargetThrows:
		return ThrowsTarget{ThrowsTypeIndex: r.readU2()}
	case TargetLocalVariable, TargetResourceVariable:
		table := readList(r, "localvar_target.table", int(r.readU2()), 6, func() LocalVarTargetEntry {
			return LocalVarTargetEntry{StartPC: r.readU2(), Length: r.readU2(), Index: r.readU2()}
		})
		return LocalVarTarget{Table: table}
	case TargetExceptionParameter:
		return CatchTarget{ExceptionTableIndex: r.readU2()}
	case TargetInstanceof, TargetNew, TargetConstructorReference, TargetMethodReference:
		return OffsetTarget{Offset: r.readU2()}
	case TargetCast, TargetConstructorInvocationArg, TargetMethodInvocationArg,
		TargetConstructorReferenceArg, TargetMethodReferenceArg:
		return TypeArgumentTarget{Offset: r.readU2(), TypeArgumentIndex: r.readU1()}
	default:
		r.fail(&InvalidTagError{Offset: offset, Kind: "type annotation target_type", Tag: targetType})
		return nil
	}
}

func (e *encoder) writeAnnotation(w *writer, ann Annotation) {
	e.writeIndex(w, "annotation.type_index", ann.TypeIndex, ConstantUtf8)
	e.writeElementValuePairs(w, ann.ElementValuePairs)
}

func (e *encoder) writeAnnotations(w *writer, field string, anns []Annotation) {
	w.writeCount(field, len(anns), 2)
	for _, ann := range anns {
		e.writeAnnotation(w, ann)
	}
}

func (e *encoder) writeElementValuePairs(w *writer, pairs []ElementValuePair) {
	w.writeCount("element_value_pairs", len(pairs), 2)
	for _, pair := range pairs {
		e.writeIndex(w, "element_value_pair.element_name_index", pair.ElementNameIndex, ConstantUtf8)
		e.writeElementValue(w, pair.Value)
	}
}

func (e *encoder) writeElementValue(w *writer, value ElementValue) {
	if !e.enter(w) {
		return
	}
	defer e.leave()

	switch v := value.(type) {
	case ConstValue:
		constTag, ok := constValueTag(v.Tag)
		if !ok {
			w.fail(&InvalidTagError{Offset: w.offset(), Kind: "element_value tag", Tag: v.Tag})
			return
		}
		w.writeU1(v.Tag)
		e.writeIndex(w, "element_value.const_value_index", v.ConstValueIndex, constTag)
	case EnumConstValue:
		w.writeU1(ElementEnum)
		e.writeIndex(w, "element_value.type_name_index", v.TypeNameIndex, ConstantUtf8)
		e.writeIndex(w, "element_value.const_name_index", v.ConstNameIndex, ConstantUtf8)
	case ClassInfoValue:
		w.writeU1(ElementClass)
		e.writeIndex(w, "element_value.class_info_index", v.ClassInfoIndex, ConstantUtf8)
	case AnnotationValue:
		w.writeU1(ElementAnnotation)
		e.writeAnnotation(w, v.Annotation)
	case ArrayValue:
		w.writeU1(ElementArray)
		w.writeCount("element_value.values", len(v.Values), 2)
		for _, item := range v.Values {
			e.writeElementValue(w, item)
		}
	default:
		w.fail(&InvalidStructureError{Offset: w.offset(), Field: "element_value", Reason: fmt.Sprintf("unknown element value type %T", value)})
	}
}

func (e *encoder) writeTypeAnnotation(w *writer, ta TypeAnnotation) {
	w.writeU1(ta.TargetType)
	e.writeTargetInfo(w, ta.TargetType, ta.TargetInfo)
	w.writeCount("type_path", len(ta.TargetPath), 1)
	for _, p := range ta.TargetPath {
		if p.TypePathKind > PathTypeArgument {
			w.fail(&InvalidTagError{Offset: w.offset(), Kind: "type_path_kind", Tag: p.TypePathKind})
			return
		}
		w.writeU1(p.TypePathKind)
		w.writeU1(p.TypeArgumentIndex)
	}
	e.writeIndex(w, "type_annotation.type_index", ta.TypeIndex, ConstantUtf8)
	e.writeElementValuePairs(w, ta.ElementValuePairs)
}

func (e *encoder) writeTypeAnnotations(w *writer, field string, anns []TypeAnnotation) {
	w.writeCount(field, len(anns), 2)
	for _, ta := range anns {
		e.writeTypeAnnotation(w, ta)
	}
}

// writeTargetInfo fails unless info has the shape targetType requires.
func (e *encoder) writeTargetInfo(w *writer, targetType uint8, info TargetInfo) {
	mismatch := func() {
		w.fail(&InvalidStructureError{
			Offset: w.offset(),
			Field:  "type_annotation.target_info",
			Reason: fmt.Sprintf("%T does not match target_type 0x%02X", info, targetType),
		})
	}

	switch targetType {
	case TargetClassTypeParameter, TargetMethodTypeParameter:
		t, ok := info.(TypeParameterTarget)
		if !ok {
			mismatch()
			return
		}
		w.writeU1(t.TypeParameterIndex)
	case TargetSupertype:
		t, ok := info.(SupertypeTarget)
		if !ok {
			mismatch()
			return
		}
		w.writeU2(t.SupertypeIndex)
	case TargetClassTypeParameterBound, TargetMethodTypeParameterBound:
		t, ok := info.(TypeParameterBoundTarget)
		if !ok {
			mismatch()
			return
		}
		w.writeU1(t.TypeParameterIndex)
		w.writeU1(t.BoundIndex)
	case TargetField, TargetMethodReturn, TargetMethodReceiver:
		if _, ok := info.(EmptyTarget); !ok {
			mismatch()
		}
	case TargetMethodFormalParameter:
		t, ok := info.(FormalParameterTarget)
		if !ok {
			mismatch()
			return
		}
		w.writeU1(t.FormalParameterIndex)
	case TargetThrows:
		t, ok := info.(ThrowsTarget)
		if !ok {
			mismatch()
			return
		}
		w.writeU2(t.ThrowsTypeIndex)
	case TargetLocalVariable, TargetResourceVariable:
		t, ok := info.(LocalVarTarget)
		if !ok {
			mismatch()
			return
		}
		w.writeCount("localvar_target.table", len(t.Table), 2)
		for _, entry := range t.Table {
			w.writeU2(entry.StartPC)
			w.writeU2(entry.Length)
			w.writeU2(entry.Index)
		}
	case TargetExceptionParameter:
		t, ok := info.(CatchTarget)
		if !ok {
			mismatch()
			return
		}
		w.writeU2(t.ExceptionTableIndex)
	case TargetInstanceof, TargetNew, TargetConstructorReference, TargetMethodReference:
		t, ok := info.(OffsetTarget)
		if !ok {
			mismatch()
			return
		}
		w.writeU2(t.Offset)
	case TargetCast, TargetConstructorInvocationArg, TargetMethodInvocationArg,
		TargetConstructorReferenceArg, TargetMethodReferenceArg:
		t, ok := info.(TypeArgumentTarget)
		if !ok {
			mismatch()
			return
		}
		w.writeU2(t.Offset)
		w.writeU1(t.TypeArgumentIndex)
	default:
		w.fail(&InvalidTagError{Offset: w.offset(), Kind: "type annotation target_type", Tag: targetType})
	}
}
