package classfile

import "fmt"

// minEntrySize is the smallest encoding of any constant pool entry
// (a tag followed by one u2).
const minEntrySize = 3

// readConstantPool reads count-1 slots. References between entries are not
// checked here because they may point forward; see checkConstantPool.
func (d *decoder) readConstantPool(r *reader) ConstantPool {
	countOffset := r.offset()
	count := int(r.readU2())
	if r.err != nil {
		return nil
	}
	if count == 0 {
		r.fail(&InvalidStructureError{Offset: countOffset, Field: "constant_pool_count", Reason: "must be at least 1"})
		return nil
	}
	if !r.fits("constant_pool", count-1, minEntrySize) {
		return nil
	}

	cp := make(ConstantPool, count-1)
	d.entryOffsets = make([]int, count-1)
	for i := 1; i < count; i++ {
		d.entryOffsets[i-1] = r.offset()
		entry := d.readConstantPoolEntry(r, uint16(i))
		if r.err != nil {
			return nil
		}
		cp[i-1] = entry
		if entry.Tag().wide() {
			i++
			if i >= count {
				r.fail(&InvalidStructureError{
					Offset: d.entryOffsets[i-2],
					Field:  fmt.Sprintf("constant_pool[%d]", i-1),
					Reason: fmt.Sprintf("%s entry needs two slots but is the last entry", entry.Tag()),
				})
				return nil
			}
			d.entryOffsets[i-1] = r.offset()
		}
	}
	return cp
}

func (d *decoder) readConstantPoolEntry(r *reader, index uint16) ConstantPoolEntry {
	offset := r.offset()
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil
	}

	switch tag {
	case ConstantUtf8:
		length := int(r.readU2())
		dataOffset := r.offset()
		data := r.readBytes(length)
		if r.err != nil {
			return nil
		}
		value, bad := decodeModifiedUtf8(data)
		if bad >= 0 {
			r.fail(&Utf8DecodeError{Offset: dataOffset + bad, Index: index, Position: bad})
			return nil
		}
		return &ConstantUtf8Info{Value: value}
	case ConstantInteger:
		return &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		return &ConstantFloatInfo{Bits: r.readU4()}
	case ConstantLong:
		return &ConstantLongInfo{Value: int64(r.readU8())}
	case ConstantDouble:
		return &ConstantDoubleInfo{Bits: r.readU8()}
	case ConstantClass:
		return &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		return &ConstantStringInfo{StringIndex: r.readU2()}
	case ConstantFieldref:
		return &ConstantFieldrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantMethodref:
		return &ConstantMethodrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantInterfaceMethodref:
		return &ConstantInterfaceMethodrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantNameAndType:
		return &ConstantNameAndTypeInfo{NameIndex: r.readU2(), DescriptorIndex: r.readU2()}
	case ConstantMethodHandle:
		return &ConstantMethodHandleInfo{ReferenceKind: MethodHandleKind(r.readU1()), ReferenceIndex: r.readU2()}
	case ConstantMethodType:
		return &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
	case ConstantDynamic:
		return &ConstantDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantInvokeDynamic:
		return &ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantModule:
		return &ConstantModuleInfo{NameIndex: r.readU2()}
	case ConstantPackage:
		return &ConstantPackageInfo{NameIndex: r.readU2()}
	default:
		r.fail(&InvalidConstantTagError{Offset: offset, Index: index, Tag: uint8(tag)})
		return nil
	}
}

// checkConstantPool validates slot layout and every reference held by a pool
// entry. offsetOf maps a pool index to the byte offset reported on failure.
func checkConstantPool(cp ConstantPool, offsetOf func(index int) int) error {
	for i := 0; i < len(cp); i++ {
		index := i + 1
		entry := cp[i]
		if entry == nil {
			return &InvalidStructureError{
				Offset: offsetOf(index),
				Field:  fmt.Sprintf("constant_pool[%d]", index),
				Reason: "empty slot that does not follow a Long or Double",
			}
		}
		if entry.Tag().wide() {
			if i+1 >= len(cp) || cp[i+1] != nil {
				return &InvalidStructureError{
					Offset: offsetOf(index),
					Field:  fmt.Sprintf("constant_pool[%d]", index),
					Reason: fmt.Sprintf("%s entry must be followed by an unusable slot", entry.Tag()),
				}
			}
			i++
		}
		if err := checkConstantPoolEntry(cp, entry, index, offsetOf(index)); err != nil {
			return err
		}
	}
	return nil
}

func checkConstantPoolEntry(cp ConstantPool, entry ConstantPoolEntry, index, offset int) error {
	field := func(name string) string {
		return fmt.Sprintf("constant_pool[%d].%s", index, name)
	}
	switch e := entry.(type) {
	case *ConstantClassInfo:
		return cp.check(field("name_index"), e.NameIndex, offset, ConstantUtf8)
	case *ConstantStringInfo:
		return cp.check(field("string_index"), e.StringIndex, offset, ConstantUtf8)
	case *ConstantFieldrefInfo:
		return checkAll(
			cp.check(field("class_index"), e.ClassIndex, offset, ConstantClass),
			cp.check(field("name_and_type_index"), e.NameAndTypeIndex, offset, ConstantNameAndType),
		)
	case *ConstantMethodrefInfo:
		return checkAll(
			cp.check(field("class_index"), e.ClassIndex, offset, ConstantClass),
			cp.check(field("name_and_type_index"), e.NameAndTypeIndex, offset, ConstantNameAndType),
		)
	case *ConstantInterfaceMethodrefInfo:
		return checkAll(
			cp.check(field("class_index"), e.ClassIndex, offset, ConstantClass),
			cp.check(field("name_and_type_index"), e.NameAndTypeIndex, offset, ConstantNameAndType),
		)
	case *ConstantNameAndTypeInfo:
		return checkAll(
			cp.check(field("name_index"), e.NameIndex, offset, ConstantUtf8),
			cp.check(field("descriptor_index"), e.DescriptorIndex, offset, ConstantUtf8),
		)
	case *ConstantMethodHandleInfo:
		tags := e.ReferenceKind.referenceTags()
		if tags == nil {
			return &InvalidTagError{Offset: offset, Kind: "method handle reference_kind", Tag: uint8(e.ReferenceKind)}
		}
		return cp.check(field("reference_index"), e.ReferenceIndex, offset, tags...)
	case *ConstantMethodTypeInfo:
		return cp.check(field("descriptor_index"), e.DescriptorIndex, offset, ConstantUtf8)
	case *ConstantDynamicInfo:
		return cp.check(field("name_and_type_index"), e.NameAndTypeIndex, offset, ConstantNameAndType)
	case *ConstantInvokeDynamicInfo:
		return cp.check(field("name_and_type_index"), e.NameAndTypeIndex, offset, ConstantNameAndType)
	case *ConstantModuleInfo:
		return cp.check(field("name_index"), e.NameIndex, offset, ConstantUtf8)
	case *ConstantPackageInfo:
		return cp.check(field("name_index"), e.NameIndex, offset, ConstantUtf8)
	case *ConstantUtf8Info, *ConstantIntegerInfo, *ConstantFloatInfo, *ConstantLongInfo, *ConstantDoubleInfo:
		return nil
	default:
		return &InvalidStructureError{Offset: offset, Field: fmt.Sprintf("constant_pool[%d]", index), Reason: fmt.Sprintf("unknown entry type %T", entry)}
	}
}

func checkAll(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// writeConstantPool emits constant_pool_count followed by every usable slot.
// The layout is validated up front so a bad value never yields bytes.
func (e *encoder) writeConstantPool(w *writer, cp ConstantPool) {
	start := w.offset()
	if err := checkConstantPool(cp, func(int) int { return start }); err != nil {
		w.fail(err)
		return
	}
	w.writeCount("constant_pool_count", cp.Count(), 2)

	for i, entry := range cp {
		if entry == nil {
			continue
		}
		w.writeU1(uint8(entry.Tag()))
		switch c := entry.(type) {
		case *ConstantUtf8Info:
			data, ok := encodeModifiedUtf8(c.Value)
			if !ok {
				w.fail(&InvalidStructureError{Offset: w.offset(), Field: fmt.Sprintf("constant_pool[%d]", i+1), Reason: "string is not representable in modified UTF-8"})
				return
			}
			w.writeCount(fmt.Sprintf("constant_pool[%d].length", i+1), len(data), 2)
			w.writeBytes(data)
		case *ConstantIntegerInfo:
			w.writeU4(uint32(c.Value))
		case *ConstantFloatInfo:
			w.writeU4(c.Bits)
		case *ConstantLongInfo:
			w.writeU8(uint64(c.Value))
		case *ConstantDoubleInfo:
			w.writeU8(c.Bits)
		case *ConstantClassInfo:
			w.writeU2(c.NameIndex)
		case *ConstantStringInfo:
			w.writeU2(c.StringIndex)
		case *ConstantFieldrefInfo:
			w.writeU2(c.ClassIndex)
			w.writeU2(c.NameAndTypeIndex)
		case *ConstantMethodrefInfo:
			w.writeU2(c.ClassIndex)
			w.writeU2(c.NameAndTypeIndex)
		case *ConstantInterfaceMethodrefInfo:
			w.writeU2(c.ClassIndex)
			w.writeU2(c.NameAndTypeIndex)
		case *ConstantNameAndTypeInfo:
			w.writeU2(c.NameIndex)
			w.writeU2(c.DescriptorIndex)
		case *ConstantMethodHandleInfo:
			w.writeU1(uint8(c.ReferenceKind))
			w.writeU2(c.ReferenceIndex)
		case *ConstantMethodTypeInfo:
			w.writeU2(c.DescriptorIndex)
		case *ConstantDynamicInfo:
			w.writeU2(c.BootstrapMethodAttrIndex)
			w.writeU2(c.NameAndTypeIndex)
		case *ConstantInvokeDynamicInfo:
			w.writeU2(c.BootstrapMethodAttrIndex)
			w.writeU2(c.NameAndTypeIndex)
		case *ConstantModuleInfo:
			w.writeU2(c.NameIndex)
		case *ConstantPackageInfo:
			w.writeU2(c.NameIndex)
		}
	}
}
