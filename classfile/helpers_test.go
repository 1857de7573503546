package classfile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// bytesBuilder assembles raw class file bytes for decoder tests.
type bytesBuilder struct {
	buf []byte
}

func (b *bytesBuilder) u1(vs ...uint8) *bytesBuilder {
	b.buf = append(b.buf, vs...)
	return b
}

func (b *bytesBuilder) u2(vs ...uint16) *bytesBuilder {
	for _, v := range vs {
		b.buf = binary.BigEndian.AppendUint16(b.buf, v)
	}
	return b
}

func (b *bytesBuilder) u4(vs ...uint32) *bytesBuilder {
	for _, v := range vs {
		b.buf = binary.BigEndian.AppendUint32(b.buf, v)
	}
	return b
}

func (b *bytesBuilder) utf8(s string) *bytesBuilder {
	return b.u1(uint8(ConstantUtf8)).u2(uint16(len(s))).u1([]byte(s)...)
}

func (b *bytesBuilder) class(nameIndex uint16) *bytesBuilder {
	return b.u1(uint8(ConstantClass)).u2(nameIndex)
}

func (b *bytesBuilder) bytes() []byte {
	return b.buf
}

// header writes magic, version 0.52 and the constant pool count.
func header(poolCount uint16) *bytesBuilder {
	return (&bytesBuilder{}).u4(Magic).u2(0, 52).u2(poolCount)
}

// objectClassPool is the pool shared by hand-built test classes:
//
//	1 Utf8 "Test"  2 Class #1  3 Utf8 "java/lang/Object"  4 Class #3
func objectClassPool() *bytesBuilder {
	return header(5).utf8("Test").class(1).utf8("java/lang/Object").class(3)
}

// newTestDecoder returns a decoder primed with cp, for exercising codecs
// below the class file level.
func newTestDecoder(cp ConstantPool, opts ...Option) *decoder {
	return &decoder{opts: newOptions(opts), pool: cp}
}

func newTestEncoder(cp ConstantPool, opts ...Option) *encoder {
	return &encoder{opts: newOptions(opts), pool: cp}
}

// requireRoundTrip encodes cf, decodes the result and checks that both the
// value and a second encoding are unchanged.
func requireRoundTrip(t *testing.T, cf *ClassFile) []byte {
	t.Helper()
	b, err := Encode(cf)
	require.NoError(t, err)

	decoded, err := Decode(b)
	require.NoError(t, err)
	require.Equal(t, cf, decoded)

	again, err := Encode(decoded)
	require.NoError(t, err)
	require.Equal(t, b, again)
	return b
}

// newEmptyClass returns a well-formed class with no members or attributes.
func newEmptyClass(name string) *ClassFile {
	cf := &ClassFile{MajorVersion: 52, AccessFlags: AccPublic | AccSuper}
	cf.ThisClass = cf.ConstantPool.AddClass(name)
	cf.SuperClass = cf.ConstantPool.AddClass("java/lang/Object")
	return cf
}
