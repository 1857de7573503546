package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// annotationPool holds every constant kind an element value can refer to.
//
//	1 Utf8 "Ljava/lang/Deprecated;"  2 Utf8 "value"  3 Integer 42
//	4 Long 7 (5 unusable)  6 Float  7 Double (8 unusable)
func annotationPool() ConstantPool {
	var cp ConstantPool
	cp.AddUtf8("Ljava/lang/Deprecated;")
	cp.AddUtf8("value")
	cp.Add(&ConstantIntegerInfo{Value: 42})
	cp.Add(&ConstantLongInfo{Value: 7})
	cp.Add(&ConstantFloatInfo{Bits: 0x3F800000})
	cp.Add(&ConstantDoubleInfo{Bits: 0x4000000000000000})
	return cp
}

func TestElementValues(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		value ElementValue
	}{
		{"byte", []byte{'B', 0, 3}, ConstValue{Tag: ElementByte, ConstValueIndex: 3}},
		{"char", []byte{'C', 0, 3}, ConstValue{Tag: ElementChar, ConstValueIndex: 3}},
		{"int", []byte{'I', 0, 3}, ConstValue{Tag: ElementInt, ConstValueIndex: 3}},
		{"short", []byte{'S', 0, 3}, ConstValue{Tag: ElementShort, ConstValueIndex: 3}},
		{"boolean", []byte{'Z', 0, 3}, ConstValue{Tag: ElementBoolean, ConstValueIndex: 3}},
		{"long", []byte{'J', 0, 4}, ConstValue{Tag: ElementLong, ConstValueIndex: 4}},
		{"float", []byte{'F', 0, 6}, ConstValue{Tag: ElementFloat, ConstValueIndex: 6}},
		{"double", []byte{'D', 0, 7}, ConstValue{Tag: ElementDouble, ConstValueIndex: 7}},
		{"string", []byte{'s', 0, 2}, ConstValue{Tag: ElementString, ConstValueIndex: 2}},
		{"enum", []byte{'e', 0, 1, 0, 2}, EnumConstValue{TypeNameIndex: 1, ConstNameIndex: 2}},
		{"class", []byte{'c', 0, 1}, ClassInfoValue{ClassInfoIndex: 1}},
		{"annotation", []byte{'@', 0, 1, 0, 1, 0, 2, 'I', 0, 3}, AnnotationValue{Annotation: Annotation{
			TypeIndex:         1,
			ElementValuePairs: []ElementValuePair{{ElementNameIndex: 2, Value: ConstValue{Tag: ElementInt, ConstValueIndex: 3}}},
		}}},
		{"empty array", []byte{'[', 0, 0}, ArrayValue{}},
		{"array", []byte{'[', 0, 2, 'J', 0, 4, '[', 0, 1, 'c', 0, 1}, ArrayValue{Values: []ElementValue{
			ConstValue{Tag: ElementLong, ConstValueIndex: 4},
			ArrayValue{Values: []ElementValue{ClassInfoValue{ClassInfoIndex: 1}}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReader(tt.bytes)
			value := newTestDecoder(annotationPool()).readElementValue(r)
			require.NoError(t, r.err)
			require.Zero(t, r.remaining())
			require.Equal(t, tt.value, value)
			require.Equal(t, tt.bytes[0], value.ElementTag())

			w := &writer{}
			newTestEncoder(annotationPool()).writeElementValue(w, value)
			require.NoError(t, w.err)
			require.Equal(t, tt.bytes, w.buf)
		})
	}
}

func TestElementValueErrors(t *testing.T) {
	t.Run("unknown tag", func(t *testing.T) {
		r := newReader([]byte{'X', 0, 1})
		newTestDecoder(annotationPool()).readElementValue(r)
		var tagErr *InvalidTagError
		require.ErrorAs(t, r.err, &tagErr)
		require.Equal(t, uint8('X'), tagErr.Tag)
	})

	t.Run("int constant refers to a Long", func(t *testing.T) {
		r := newReader([]byte{'I', 0, 4})
		newTestDecoder(annotationPool()).readElementValue(r)
		var invalid *InvalidConstantPoolIndexError
		require.ErrorAs(t, r.err, &invalid)
		require.Equal(t, []ConstantTag{ConstantInteger}, invalid.Expected)
		require.Equal(t, ConstantLong, invalid.Actual)
	})

	t.Run("long constant refers to its unusable slot", func(t *testing.T) {
		r := newReader([]byte{'J', 0, 5})
		newTestDecoder(annotationPool()).readElementValue(r)
		var invalid *InvalidConstantPoolIndexError
		require.ErrorAs(t, r.err, &invalid)
		require.Equal(t, uint16(5), invalid.Index)
	})

	t.Run("encode unknown tag", func(t *testing.T) {
		w := &writer{}
		newTestEncoder(annotationPool()).writeElementValue(w, ConstValue{Tag: 'e', ConstValueIndex: 1})
		var tagErr *InvalidTagError
		require.ErrorAs(t, w.err, &tagErr)
	})

	t.Run("encode nil value", func(t *testing.T) {
		w := &writer{}
		newTestEncoder(annotationPool()).writeElementValue(w, nil)
		var invalid *InvalidStructureError
		require.ErrorAs(t, w.err, &invalid)
	})
}

// nestedArrays returns an element value of depth arrays wrapped around an int.
func nestedArrays(depth int) []byte {
	var b []byte
	for i := 0; i < depth; i++ {
		b = append(b, '[', 0, 1)
	}
	return append(b, 'I', 0, 3)
}

func TestElementValueDepthLimit(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		r := newReader(nestedArrays(9))
		value := newTestDecoder(annotationPool(), WithMaxDepth(10)).readElementValue(r)
		require.NoError(t, r.err)
		for i := 0; i < 9; i++ {
			value = value.(ArrayValue).Values[0]
		}
		require.Equal(t, ConstValue{Tag: ElementInt, ConstValueIndex: 3}, value)
	})

	t.Run("beyond limit", func(t *testing.T) {
		r := newReader(nestedArrays(10))
		newTestDecoder(annotationPool(), WithMaxDepth(10)).readElementValue(r)
		var limit *RecursionLimitExceededError
		require.ErrorAs(t, r.err, &limit)
		require.Equal(t, 10, limit.Limit)
		require.Equal(t, 30, limit.Offset)
	})

	t.Run("encode beyond limit", func(t *testing.T) {
		var value ElementValue = ConstValue{Tag: ElementInt, ConstValueIndex: 3}
		for i := 0; i < 100; i++ {
			value = ArrayValue{Values: []ElementValue{value}}
		}
		w := &writer{}
		newTestEncoder(annotationPool()).writeElementValue(w, value)
		var limit *RecursionLimitExceededError
		require.ErrorAs(t, w.err, &limit)
		require.Equal(t, DefaultMaxDepth, limit.Limit)
	})
}

func TestDeeplyNestedAnnotationInClassFile(t *testing.T) {
	const depth = 1000
	value := nestedArrays(depth)

	// Annotation: type_index, one pair named "value" holding the nested array.
	payload := (&bytesBuilder{}).u2(1).u2(5, 1, 6).u1(value...).bytes()

	b := header(8).
		utf8("Test").class(1).
		utf8("java/lang/Object").class(3).
		utf8("LMarker;").
		utf8("value").
		utf8(AttrRuntimeVisibleAnnotations).
		u2(uint16(AccSuper), 2, 4).
		u2(0, 0, 0).
		u2(1).
		u2(7).u4(uint32(len(payload))).u1(payload...).
		bytes()

	// The element value refers to Integer #3, which is a Utf8 here; the depth
	// limit has to trip before that reference is ever read.
	_, err := Decode(b)
	var limit *RecursionLimitExceededError
	require.ErrorAs(t, err, &limit)
	require.Equal(t, DefaultMaxDepth, limit.Limit)
}

func TestTypeAnnotations(t *testing.T) {
	pairs := []byte{0, 1, 0, 2, 'I', 0, 3}
	tests := []struct {
		name   string
		target []byte
		info   TargetInfo
	}{
		{"class type parameter", []byte{0x00, 2}, TypeParameterTarget{TypeParameterIndex: 2}},
		{"method type parameter", []byte{0x01, 0}, TypeParameterTarget{}},
		{"supertype", []byte{0x10, 0xFF, 0xFF}, SupertypeTarget{SupertypeIndex: 65535}},
		{"class type parameter bound", []byte{0x11, 1, 2}, TypeParameterBoundTarget{TypeParameterIndex: 1, BoundIndex: 2}},
		{"method type parameter bound", []byte{0x12, 0, 1}, TypeParameterBoundTarget{BoundIndex: 1}},
		{"field", []byte{0x13}, EmptyTarget{}},
		{"method return", []byte{0x14}, EmptyTarget{}},
		{"method receiver", []byte{0x15}, EmptyTarget{}},
		{"formal parameter", []byte{0x16, 3}, FormalParameterTarget{FormalParameterIndex: 3}},
		{"throws", []byte{0x17, 0, 1}, ThrowsTarget{ThrowsTypeIndex: 1}},
		{"local variable", []byte{0x40, 0, 1, 0, 2, 0, 10, 0, 1}, LocalVarTarget{Table: []LocalVarTargetEntry{{StartPC: 2, Length: 10, Index: 1}}}},
		{"resource variable", []byte{0x41, 0, 0}, LocalVarTarget{}},
		{"exception parameter", []byte{0x42, 0, 4}, CatchTarget{ExceptionTableIndex: 4}},
		{"instanceof", []byte{0x43, 0, 7}, OffsetTarget{Offset: 7}},
		{"new", []byte{0x44, 0, 8}, OffsetTarget{Offset: 8}},
		{"constructor reference", []byte{0x45, 0, 9}, OffsetTarget{Offset: 9}},
		{"method reference", []byte{0x46, 0, 10}, OffsetTarget{Offset: 10}},
		{"cast", []byte{0x47, 0, 11, 1}, TypeArgumentTarget{Offset: 11, TypeArgumentIndex: 1}},
		{"constructor invocation argument", []byte{0x48, 0, 12, 0}, TypeArgumentTarget{Offset: 12}},
		{"method invocation argument", []byte{0x49, 0, 13, 2}, TypeArgumentTarget{Offset: 13, TypeArgumentIndex: 2}},
		{"constructor reference argument", []byte{0x4A, 0, 14, 0}, TypeArgumentTarget{Offset: 14}},
		{"method reference argument", []byte{0x4B, 0, 15, 3}, TypeArgumentTarget{Offset: 15, TypeArgumentIndex: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Type path: an array step then type argument 1.
			input := append(append([]byte(nil), tt.target...), 2, PathArray, 0, PathTypeArgument, 1)
			input = append(input, pairs...)

			r := newReader(input)
			ta := newTestDecoder(annotationPool()).readTypeAnnotation(r)
			require.NoError(t, r.err)
			require.Zero(t, r.remaining())
			require.Equal(t, TypeAnnotation{
				TargetType: tt.target[0],
				TargetInfo: tt.info,
				TargetPath: []TypePathEntry{
					{TypePathKind: PathArray},
					{TypePathKind: PathTypeArgument, TypeArgumentIndex: 1},
				},
				TypeIndex:         1,
				ElementValuePairs: []ElementValuePair{{ElementNameIndex: 2, Value: ConstValue{Tag: ElementInt, ConstValueIndex: 3}}},
			}, ta)

			w := &writer{}
			newTestEncoder(annotationPool()).writeTypeAnnotation(w, ta)
			require.NoError(t, w.err)
			require.Equal(t, input, w.buf)
		})
	}
}

func TestTypeAnnotationErrors(t *testing.T) {
	t.Run("unknown target type", func(t *testing.T) {
		r := newReader([]byte{0x20, 0, 0, 1, 0, 0})
		newTestDecoder(annotationPool()).readTypeAnnotation(r)
		var tagErr *InvalidTagError
		require.ErrorAs(t, r.err, &tagErr)
		require.Equal(t, uint8(0x20), tagErr.Tag)
		require.Equal(t, 0, tagErr.Offset)
	})

	t.Run("unknown path kind", func(t *testing.T) {
		r := newReader([]byte{0x13, 1, 4, 0, 0, 1, 0, 0})
		newTestDecoder(annotationPool()).readTypeAnnotation(r)
		var tagErr *InvalidTagError
		require.ErrorAs(t, r.err, &tagErr)
		require.Equal(t, uint8(4), tagErr.Tag)
		require.Equal(t, 2, tagErr.Offset)
	})

	t.Run("target info does not match target type", func(t *testing.T) {
		w := &writer{}
		newTestEncoder(annotationPool()).writeTypeAnnotation(w, TypeAnnotation{
			TargetType: TargetThrows,
			TargetInfo: EmptyTarget{},
			TypeIndex:  1,
		})
		var invalid *InvalidStructureError
		require.ErrorAs(t, w.err, &invalid)
		require.Equal(t, "type_annotation.target_info", invalid.Field)
	})

	t.Run("encode unknown path kind", func(t *testing.T) {
		w := &writer{}
		newTestEncoder(annotationPool()).writeTypeAnnotation(w, TypeAnnotation{
			TargetType: TargetField,
			TargetInfo: EmptyTarget{},
			TargetPath: []TypePathEntry{{TypePathKind: 9}},
			TypeIndex:  1,
		})
		var tagErr *InvalidTagError
		require.ErrorAs(t, w.err, &tagErr)
	})
}
