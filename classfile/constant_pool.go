package classfile

import "math"

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

// ConstantFloatInfo keeps the raw IEEE 754 bits so NaN payloads survive a
// round trip.
type ConstantFloatInfo struct {
	Bits uint32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

func (c *ConstantFloatInfo) Value() float32 { return math.Float32frombits(c.Bits) }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Bits uint64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

func (c *ConstantDoubleInfo) Value() float64 { return math.Float64frombits(c.Bits) }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

type ConstantModuleInfo struct {
	NameIndex uint16
}

func (c *ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (c *ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }

// ConstantPool holds entry i at position i-1. The slot following a Long or
// Double entry is nil and may never be referenced.
type ConstantPool []ConstantPoolEntry

// Count is the constant_pool_count written to the class file.
func (cp ConstantPool) Count() int {
	return len(cp) + 1
}

// Entry returns the entry at index, or nil for 0, out-of-range indices and
// unusable slots.
func (cp ConstantPool) Entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

// check validates a reference from field to index against the accepted tags.
// With no tags any usable entry is accepted.
func (cp ConstantPool) check(field string, index uint16, offset int, tags ...ConstantTag) error {
	entry := cp.Entry(index)
	if entry == nil {
		return &InvalidConstantPoolIndexError{Offset: offset, Field: field, Index: index, Expected: tags}
	}
	if len(tags) == 0 {
		return nil
	}
	for _, t := range tags {
		if entry.Tag() == t {
			return nil
		}
	}
	return &InvalidConstantPoolIndexError{Offset: offset, Field: field, Index: index, Expected: tags, Actual: entry.Tag()}
}

// Lookup returns the entry at index, failing with an
// InvalidConstantPoolIndexError if there is none or its tag is not one of tags.
func (cp ConstantPool) Lookup(index uint16, tags ...ConstantTag) (ConstantPoolEntry, error) {
	if err := cp.check("index", index, 0, tags...); err != nil {
		return nil, err
	}
	return cp.Entry(index), nil
}

// Add appends an entry, plus the unusable slot for Long and Double, and
// returns its index.
func (cp *ConstantPool) Add(entry ConstantPoolEntry) uint16 {
	*cp = append(*cp, entry)
	index := uint16(len(*cp))
	if entry.Tag().wide() {
		*cp = append(*cp, nil)
	}
	return index
}

// AddUtf8 returns the index of a Utf8 entry holding s, adding one if needed.
func (cp *ConstantPool) AddUtf8(s string) uint16 {
	for i, e := range *cp {
		if u, ok := e.(*ConstantUtf8Info); ok && u.Value == s {
			return uint16(i + 1)
		}
	}
	return cp.Add(&ConstantUtf8Info{Value: s})
}

// AddClass returns the index of a Class entry naming name, adding one if needed.
func (cp *ConstantPool) AddClass(name string) uint16 {
	for i, e := range *cp {
		if c, ok := e.(*ConstantClassInfo); ok && cp.GetUtf8(c.NameIndex) == name {
			return uint16(i + 1)
		}
	}
	nameIndex := cp.AddUtf8(name)
	return cp.Add(&ConstantClassInfo{NameIndex: nameIndex})
}

func (cp *ConstantPool) AddString(s string) uint16 {
	return cp.Add(&ConstantStringInfo{StringIndex: cp.AddUtf8(s)})
}

func (cp *ConstantPool) AddNameAndType(name, descriptor string) uint16 {
	nameIndex := cp.AddUtf8(name)
	descriptorIndex := cp.AddUtf8(descriptor)
	return cp.Add(&ConstantNameAndTypeInfo{NameIndex: nameIndex, DescriptorIndex: descriptorIndex})
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantUtf8Info); ok {
		return entry.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantClassInfo); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if entry, ok := cp.Entry(index).(*ConstantNameAndTypeInfo); ok {
		return cp.GetUtf8(entry.NameIndex), cp.GetUtf8(entry.DescriptorIndex)
	}
	return "", ""
}

func (cp ConstantPool) GetString(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantStringInfo); ok {
		return cp.GetUtf8(entry.StringIndex)
	}
	return ""
}

func (cp ConstantPool) GetModuleName(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantModuleInfo); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetPackageName(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantPackageInfo); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetInteger(index uint16) (int32, bool) {
	if entry, ok := cp.Entry(index).(*ConstantIntegerInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetLong(index uint16) (int64, bool) {
	if entry, ok := cp.Entry(index).(*ConstantLongInfo); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetFloat(index uint16) (float32, bool) {
	if entry, ok := cp.Entry(index).(*ConstantFloatInfo); ok {
		return entry.Value(), true
	}
	return 0, false
}

func (cp ConstantPool) GetDouble(index uint16) (float64, bool) {
	if entry, ok := cp.Entry(index).(*ConstantDoubleInfo); ok {
		return entry.Value(), true
	}
	return 0, false
}

// GetMemberRef resolves a Fieldref, Methodref or InterfaceMethodref.
func (cp ConstantPool) GetMemberRef(index uint16) (className, name, descriptor string) {
	var classIndex, natIndex uint16
	switch entry := cp.Entry(index).(type) {
	case *ConstantFieldrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	case *ConstantMethodrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	case *ConstantInterfaceMethodrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	default:
		return "", "", ""
	}
	name, descriptor = cp.GetNameAndType(natIndex)
	return cp.GetClassName(classIndex), name, descriptor
}

func (cp ConstantPool) GetMethodHandle(index uint16) *ConstantMethodHandleInfo {
	entry, _ := cp.Entry(index).(*ConstantMethodHandleInfo)
	return entry
}

func (cp ConstantPool) GetMethodType(index uint16) string {
	if entry, ok := cp.Entry(index).(*ConstantMethodTypeInfo); ok {
		return cp.GetUtf8(entry.DescriptorIndex)
	}
	return ""
}

func (cp ConstantPool) GetInvokeDynamic(index uint16) *ConstantInvokeDynamicInfo {
	entry, _ := cp.Entry(index).(*ConstantInvokeDynamicInfo)
	return entry
}
