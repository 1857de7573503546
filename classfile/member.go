package classfile

// FieldInfo and MethodInfo share a layout: flags, name and descriptor
// indices, then attributes. The flag predicates of AccessFlags are promoted.

type FieldInfo struct {
	AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

type MethodInfo struct {
	AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (f *FieldInfo) Name(cp ConstantPool) string       { return cp.GetUtf8(f.NameIndex) }
func (f *FieldInfo) Descriptor(cp ConstantPool) string { return cp.GetUtf8(f.DescriptorIndex) }

func (f *FieldInfo) GetAttribute(name string) *AttributeInfo {
	return findAttribute(f.Attributes, name)
}

// ConstantValue returns the ConstantValue attribute of a static final field.
func (f *FieldInfo) ConstantValue() *ConstantValueAttribute {
	return FindAttribute[*ConstantValueAttribute](f.Attributes)
}

// ParsedDescriptor returns nil when the descriptor is malformed.
func (f *FieldInfo) ParsedDescriptor(cp ConstantPool) *FieldType {
	return ParseFieldDescriptor(f.Descriptor(cp))
}

func (m *MethodInfo) Name(cp ConstantPool) string       { return cp.GetUtf8(m.NameIndex) }
func (m *MethodInfo) Descriptor(cp ConstantPool) string { return cp.GetUtf8(m.DescriptorIndex) }

func (m *MethodInfo) GetAttribute(name string) *AttributeInfo {
	return findAttribute(m.Attributes, name)
}

// GetCodeAttribute is nil for abstract and native methods.
func (m *MethodInfo) GetCodeAttribute() *CodeAttribute {
	return FindAttribute[*CodeAttribute](m.Attributes)
}

// IsInitializer reports whether m is an instance or class initializer.
func (m *MethodInfo) IsInitializer(cp ConstantPool) bool {
	name := m.Name(cp)
	return name == "<init>" || name == "<clinit>"
}

func (m *MethodInfo) ParsedDescriptor(cp ConstantPool) *MethodDescriptor {
	return ParseMethodDescriptor(m.Descriptor(cp))
}
