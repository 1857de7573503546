package classfile

import "fmt"

// VerificationTypeInfo is one of the nine *VariableInfo types below.
type VerificationTypeInfo interface {
	VerificationTag() VerificationTag
}

type TopVariableInfo struct{}

type IntegerVariableInfo struct{}

type FloatVariableInfo struct{}

type DoubleVariableInfo struct{}

type LongVariableInfo struct{}

type NullVariableInfo struct{}

type UninitializedThisVariableInfo struct{}

type ObjectVariableInfo struct {
	ClassIndex uint16
}

// UninitializedVariableInfo records the offset of the new instruction that
// created the object.
type UninitializedVariableInfo struct {
	Offset uint16
}

func (TopVariableInfo) VerificationTag() VerificationTag               { return ItemTop }
func (IntegerVariableInfo) VerificationTag() VerificationTag           { return ItemInteger }
func (FloatVariableInfo) VerificationTag() VerificationTag             { return ItemFloat }
func (DoubleVariableInfo) VerificationTag() VerificationTag            { return ItemDouble }
func (LongVariableInfo) VerificationTag() VerificationTag              { return ItemLong }
func (NullVariableInfo) VerificationTag() VerificationTag              { return ItemNull }
func (UninitializedThisVariableInfo) VerificationTag() VerificationTag { return ItemUninitializedThis }
func (ObjectVariableInfo) VerificationTag() VerificationTag            { return ItemObject }
func (UninitializedVariableInfo) VerificationTag() VerificationTag     { return ItemUninitialized }

// StackMapFrame is one of the seven frame types below. Frames store their
// meaning rather than the raw frame_type byte, which is derived on encode.
type StackMapFrame interface {
	FrameType() uint8
}

// SameFrame covers frame types 0-63; the frame type is the offset delta.
type SameFrame struct {
	OffsetDelta uint8
}

// SameLocals1StackItemFrame covers frame types 64-127.
type SameLocals1StackItemFrame struct {
	OffsetDelta uint8
	Stack       VerificationTypeInfo
}

type SameLocals1StackItemFrameExtended struct {
	OffsetDelta uint16
	Stack       VerificationTypeInfo
}

// ChopFrame covers frame types 248-250, removing the last Chopped (1-3) locals.
type ChopFrame struct {
	Chopped     uint8
	OffsetDelta uint16
}

type SameFrameExtended struct {
	OffsetDelta uint16
}

// AppendFrame covers frame types 252-254 and carries 1-3 new locals.
type AppendFrame struct {
	OffsetDelta uint16
	Locals      []VerificationTypeInfo
}

type FullFrame struct {
	OffsetDelta uint16
	Locals      []VerificationTypeInfo
	Stack       []VerificationTypeInfo
}

func (f *SameFrame) FrameType() uint8 { return f.OffsetDelta }
func (f *SameLocals1StackItemFrame) FrameType() uint8 {
	return FrameSameLocals1StackItemMin + f.OffsetDelta
}
func (f *SameLocals1StackItemFrameExtended) FrameType() uint8 {
	return FrameSameLocals1StackItemExtended
}
func (f *ChopFrame) FrameType() uint8         { return FrameSameExtended - f.Chopped }
func (f *SameFrameExtended) FrameType() uint8 { return FrameSameExtended }
func (f *AppendFrame) FrameType() uint8       { return FrameSameExtended + uint8(len(f.Locals)) }
func (f *FullFrame) FrameType() uint8         { return FrameFull }

func (d *decoder) readVerificationType(r *reader) VerificationTypeInfo {
	offset := r.offset()
	tag := VerificationTag(r.readU1())
	if r.err != nil {
		return nil
	}
	switch tag {
	case ItemTop:
		return TopVariableInfo{}
	case ItemInteger:
		return IntegerVariableInfo{}
	case ItemFloat:
		return FloatVariableInfo{}
	case ItemDouble:
		return DoubleVariableInfo{}
	case ItemLong:
		return LongVariableInfo{}
	case ItemNull:
		return NullVariableInfo{}
	case ItemUninitializedThis:
		return UninitializedThisVariableInfo{}
	case ItemObject:
		return ObjectVariableInfo{ClassIndex: d.readIndex(r, "verification_type.cpool_index", ConstantClass)}
	case ItemUninitialized:
		return UninitializedVariableInfo{Offset: r.readU2()}
	default:
		r.fail(&InvalidVerificationTagError{Offset: offset, Tag: uint8(tag)})
		return nil
	}
}

func (d *decoder) readVerificationTypes(r *reader, field string, count int) []VerificationTypeInfo {
	return readList(r, field, count, 1, func() VerificationTypeInfo {
		return d.readVerificationType(r)
	})
}

func (d *decoder) readStackMapFrame(r *reader) StackMapFrame {
	offset := r.offset()
	frameType := r.readU1()
	if r.err != nil {
		return nil
	}

	switch {
	case frameType <= FrameSameMax:
		return &SameFrame{OffsetDelta: frameType}
	case frameType <= FrameSameLocals1StackItemMax:
		return &SameLocals1StackItemFrame{
			OffsetDelta: frameType - FrameSameLocals1StackItemMin,
			Stack:       d.readVerificationType(r),
		}
	case frameType < FrameSameLocals1StackItemExtended:
		r.fail(&InvalidTagError{Offset: offset, Kind: "reserved stack map frame type", Tag: frameType})
		return nil
	case frameType == FrameSameLocals1StackItemExtended:
		delta := r.readU2()
		return &SameLocals1StackItemFrameExtended{OffsetDelta: delta, Stack: d.readVerificationType(r)}
	case frameType <= FrameChopMax:
		return &ChopFrame{Chopped: FrameSameExtended - frameType, OffsetDelta: r.readU2()}
	case frameType == FrameSameExtended:
		return &SameFrameExtended{OffsetDelta: r.readU2()}
	case frameType <= FrameAppendMax:
		delta := r.readU2()
		locals := d.readVerificationTypes(r, "append_frame.locals", int(frameType-FrameSameExtended))
		return &AppendFrame{OffsetDelta: delta, Locals: locals}
	default:
		frame := &FullFrame{OffsetDelta: r.readU2()}
		frame.Locals = d.readVerificationTypes(r, "full_frame.locals", int(r.readU2()))
		frame.Stack = d.readVerificationTypes(r, "full_frame.stack", int(r.readU2()))
		return frame
	}
}

func (e *encoder) writeVerificationType(w *writer, v VerificationTypeInfo) {
	if v == nil {
		w.fail(&InvalidStructureError{Offset: w.offset(), Field: "verification_type", Reason: "missing value"})
		return
	}
	w.writeU1(uint8(v.VerificationTag()))
	switch v := v.(type) {
	case ObjectVariableInfo:
		e.writeIndex(w, "verification_type.cpool_index", v.ClassIndex, ConstantClass)
	case UninitializedVariableInfo:
		w.writeU2(v.Offset)
	}
}

func (e *encoder) writeVerificationTypes(w *writer, field string, vs []VerificationTypeInfo) {
	w.writeCount(field, len(vs), 2)
	for _, v := range vs {
		e.writeVerificationType(w, v)
	}
}

func (e *encoder) writeStackMapFrame(w *writer, frame StackMapFrame) {
	invalid := func(reason string) {
		w.fail(&InvalidStructureError{Offset: w.offset(), Field: "stack_map_frame", Reason: reason})
	}

	switch f := frame.(type) {
	case *SameFrame:
		if f.OffsetDelta > FrameSameMax {
			invalid(fmt.Sprintf("same_frame offset delta %d exceeds %d", f.OffsetDelta, FrameSameMax))
			return
		}
		w.writeU1(f.FrameType())
	case *SameLocals1StackItemFrame:
		if f.OffsetDelta > FrameSameLocals1StackItemMax-FrameSameLocals1StackItemMin {
			invalid(fmt.Sprintf("same_locals_1_stack_item_frame offset delta %d exceeds 63", f.OffsetDelta))
			return
		}
		w.writeU1(f.FrameType())
		e.writeVerificationType(w, f.Stack)
	case *SameLocals1StackItemFrameExtended:
		w.writeU1(f.FrameType())
		w.writeU2(f.OffsetDelta)
		e.writeVerificationType(w, f.Stack)
	case *ChopFrame:
		if f.Chopped < 1 || f.Chopped > 3 {
			invalid(fmt.Sprintf("chop_frame removes %d locals, want 1-3", f.Chopped))
			return
		}
		w.writeU1(f.FrameType())
		w.writeU2(f.OffsetDelta)
	case *SameFrameExtended:
		w.writeU1(f.FrameType())
		w.writeU2(f.OffsetDelta)
	case *AppendFrame:
		if len(f.Locals) < 1 || len(f.Locals) > 3 {
			invalid(fmt.Sprintf("append_frame adds %d locals, want 1-3", len(f.Locals)))
			return
		}
		w.writeU1(f.FrameType())
		w.writeU2(f.OffsetDelta)
		for _, v := range f.Locals {
			e.writeVerificationType(w, v)
		}
	case *FullFrame:
		w.writeU1(f.FrameType())
		w.writeU2(f.OffsetDelta)
		e.writeVerificationTypes(w, "full_frame.locals", f.Locals)
		e.writeVerificationTypes(w, "full_frame.stack", f.Stack)
	default:
		invalid(fmt.Sprintf("unknown frame type %T", frame))
	}
}
