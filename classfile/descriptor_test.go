package classfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc       string
		baseType   string
		className  string
		arrayDepth int
		str        string
	}{
		{"I", "int", "", 0, "int"},
		{"Z", "boolean", "", 0, "boolean"},
		{"Ljava/lang/String;", "", "java/lang/String", 0, "java.lang.String"},
		{"[I", "int", "", 1, "[]int"},
		{"[[D", "double", "", 2, "[][]double"},
		{"[Ljava/lang/Object;", "", "java/lang/Object", 1, "[]java.lang.Object"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ft := ParseFieldDescriptor(tt.desc)
			require.NotNil(t, ft)
			assert.Equal(t, tt.baseType, ft.BaseType)
			assert.Equal(t, tt.className, ft.ClassName)
			assert.Equal(t, tt.arrayDepth, ft.ArrayDepth)
			assert.Equal(t, tt.str, ft.String())
			assert.Equal(t, tt.arrayDepth > 0, ft.IsArray())
			assert.Equal(t, tt.className != "" || tt.arrayDepth > 0, ft.IsReference())
		})
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	tests := []struct {
		desc       string
		numParams  int
		returnType string
		str        string
	}{
		{"()V", 0, "", "() void"},
		{"()I", 0, "int", "() int"},
		{"(I)V", 1, "", "(int) void"},
		{"(II)I", 2, "int", "(int, int) int"},
		{"(Ljava/lang/String;)V", 1, "", "(java.lang.String) void"},
		{"(IDLjava/lang/Thread;)Ljava/lang/Object;", 3, "java.lang.Object", "(int, double, java.lang.Thread) java.lang.Object"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md := ParseMethodDescriptor(tt.desc)
			require.NotNil(t, md)
			assert.Len(t, md.Parameters, tt.numParams)
			if tt.returnType == "" {
				assert.Nil(t, md.ReturnType)
			} else {
				require.NotNil(t, md.ReturnType)
				assert.Equal(t, tt.returnType, md.ReturnType.String())
			}
			assert.Equal(t, tt.str, md.String())
		})
	}

	assert.Nil(t, ParseMethodDescriptor("I"))
	assert.Nil(t, ParseMethodDescriptor("(I"))
}

func TestValidFieldDescriptor(t *testing.T) {
	for _, desc := range []string{
		"B", "C", "D", "F", "I", "J", "S", "Z",
		"Ljava/lang/String;",
		"LTest;",
		"[[J",
		"[Ljava/util/Map$Entry;",
		strings.Repeat("[", 255) + "I",
	} {
		assert.True(t, ValidFieldDescriptor(desc), desc)
	}

	for _, desc := range []string{
		"",
		"V",
		"X",
		"II",
		"[",
		"L;",
		"Ljava/lang/String",
		"Ljava.lang.String;",
		"L/java/lang;",
		"Ljava/lang/;",
		"Ljava//lang;",
		"La[b;",
		"Ljava/lang/String;I",
		strings.Repeat("[", 256) + "I",
	} {
		assert.False(t, ValidFieldDescriptor(desc), desc)
	}
}

func TestValidMethodDescriptor(t *testing.T) {
	for _, desc := range []string{
		"()V",
		"()I",
		"(IJ)V",
		"([Ljava/lang/String;)V",
		"(Ljava/lang/Object;[[D)Ljava/lang/String;",
	} {
		assert.True(t, ValidMethodDescriptor(desc), desc)
	}

	for _, desc := range []string{
		"",
		"V",
		"()",
		"(V)V",
		"()VV",
		"(I",
		"(I)",
		"()Ljava/lang/String",
		"(L;)V",
		"()II",
	} {
		assert.False(t, ValidMethodDescriptor(desc), desc)
	}
}

func TestNameConversion(t *testing.T) {
	assert.Equal(t, "java.util.Map$Entry", InternalToSourceName("java/util/Map$Entry"))
	assert.Equal(t, "java/util/Map$Entry", SourceToInternalName("java.util.Map$Entry"))
}
