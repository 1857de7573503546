package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func stackMapPool() ConstantPool {
	var cp ConstantPool
	cp.AddClass("java/lang/String")
	return cp
}

func decodeFrame(t *testing.T, b []byte) (StackMapFrame, error) {
	t.Helper()
	r := newReader(b)
	frame := newTestDecoder(stackMapPool()).readStackMapFrame(r)
	if r.err != nil {
		return nil, r.err
	}
	require.Zero(t, r.remaining(), "frame left bytes unread")
	return frame, nil
}

func encodeFrame(t *testing.T, frame StackMapFrame) ([]byte, error) {
	t.Helper()
	w := &writer{}
	newTestEncoder(stackMapPool()).writeStackMapFrame(w, frame)
	return w.buf, w.err
}

func TestChopFrameTypes(t *testing.T) {
	for _, tt := range []struct {
		frameType uint8
		chopped   uint8
	}{
		{248, 3},
		{249, 2},
		{250, 1},
	} {
		frame, err := decodeFrame(t, []byte{tt.frameType, 0x00, 0x03})
		require.NoError(t, err)
		require.Equal(t, &ChopFrame{Chopped: tt.chopped, OffsetDelta: 3}, frame)
		require.Equal(t, tt.frameType, frame.FrameType())
	}
}

func TestStackMapFrames(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		frame StackMapFrame
	}{
		{"same", []byte{0}, &SameFrame{OffsetDelta: 0}},
		{"same max", []byte{63}, &SameFrame{OffsetDelta: 63}},
		{"same locals 1 stack item", []byte{64, 1}, &SameLocals1StackItemFrame{OffsetDelta: 0, Stack: IntegerVariableInfo{}}},
		{"same locals 1 stack item max", []byte{127, 7, 0, 2}, &SameLocals1StackItemFrame{OffsetDelta: 63, Stack: ObjectVariableInfo{ClassIndex: 2}}},
		{"same locals 1 stack item extended", []byte{247, 0x01, 0x00, 8, 0x00, 0x10}, &SameLocals1StackItemFrameExtended{OffsetDelta: 256, Stack: UninitializedVariableInfo{Offset: 16}}},
		{"chop", []byte{249, 0x00, 0x40}, &ChopFrame{Chopped: 2, OffsetDelta: 64}},
		{"same extended", []byte{251, 0xFF, 0xFF}, &SameFrameExtended{OffsetDelta: 65535}},
		{"append one", []byte{252, 0x00, 0x01, 4}, &AppendFrame{OffsetDelta: 1, Locals: []VerificationTypeInfo{LongVariableInfo{}}}},
		{"append three", []byte{254, 0x00, 0x02, 0, 2, 3}, &AppendFrame{OffsetDelta: 2, Locals: []VerificationTypeInfo{
			TopVariableInfo{}, FloatVariableInfo{}, DoubleVariableInfo{},
		}}},
		{"full", []byte{255, 0x00, 0x05, 0x00, 0x02, 6, 5, 0x00, 0x01, 7, 0x00, 0x02}, &FullFrame{
			OffsetDelta: 5,
			Locals:      []VerificationTypeInfo{UninitializedThisVariableInfo{}, NullVariableInfo{}},
			Stack:       []VerificationTypeInfo{ObjectVariableInfo{ClassIndex: 2}},
		}},
		{"full empty", []byte{255, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, &FullFrame{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := decodeFrame(t, tt.bytes)
			require.NoError(t, err)
			require.Equal(t, tt.frame, frame)
			require.Equal(t, tt.bytes[0], frame.FrameType())

			encoded, err := encodeFrame(t, frame)
			require.NoError(t, err)
			require.Equal(t, tt.bytes, encoded)
		})
	}
}

func TestStackMapFrameDecodeErrors(t *testing.T) {
	t.Run("reserved frame types", func(t *testing.T) {
		for _, frameType := range []uint8{128, 200, 246} {
			_, err := decodeFrame(t, []byte{frameType, 0, 0})
			var tagErr *InvalidTagError
			require.ErrorAs(t, err, &tagErr)
			require.Equal(t, frameType, tagErr.Tag)
		}
	})

	t.Run("invalid verification tag", func(t *testing.T) {
		_, err := decodeFrame(t, []byte{252, 0x00, 0x01, 9})
		var tagErr *InvalidVerificationTagError
		require.ErrorAs(t, err, &tagErr)
		require.Equal(t, uint8(9), tagErr.Tag)
		require.Equal(t, 3, tagErr.Offset)
	})

	t.Run("object refers to a Utf8 entry", func(t *testing.T) {
		_, err := decodeFrame(t, []byte{64, 7, 0x00, 0x01})
		var invalid *InvalidConstantPoolIndexError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, "verification_type.cpool_index", invalid.Field)
	})

	t.Run("truncated full frame", func(t *testing.T) {
		_, err := decodeFrame(t, []byte{255, 0x00, 0x05, 0x00, 0x09, 1})
		var truncated *TruncatedInputError
		require.ErrorAs(t, err, &truncated)
	})
}

func TestStackMapFrameEncodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		frame StackMapFrame
	}{
		{"same delta too large", &SameFrame{OffsetDelta: 64}},
		{"same locals delta too large", &SameLocals1StackItemFrame{OffsetDelta: 64, Stack: TopVariableInfo{}}},
		{"chop nothing", &ChopFrame{Chopped: 0}},
		{"chop four", &ChopFrame{Chopped: 4}},
		{"append nothing", &AppendFrame{}},
		{"append four", &AppendFrame{Locals: []VerificationTypeInfo{
			TopVariableInfo{}, TopVariableInfo{}, TopVariableInfo{}, TopVariableInfo{},
		}}},
		{"missing stack item", &SameLocals1StackItemFrameExtended{}},
		{"nil frame", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encodeFrame(t, tt.frame)
			var invalid *InvalidStructureError
			require.ErrorAs(t, err, &invalid)
		})
	}

	t.Run("object refers to a missing entry", func(t *testing.T) {
		_, err := encodeFrame(t, &SameLocals1StackItemFrame{Stack: ObjectVariableInfo{ClassIndex: 40}})
		var invalid *InvalidConstantPoolIndexError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, uint16(40), invalid.Index)
	})
}
