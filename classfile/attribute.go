package classfile

// Attribute is the decoded payload of an attribute. Known names decode to one
// of the *Attribute types in this file; anything else is an UnknownAttribute.
type Attribute interface {
	AttributeName() string
}

type AttributeInfo struct {
	NameIndex uint16
	Parsed    Attribute
}

// Name is the attribute name the payload was decoded under.
func (a *AttributeInfo) Name() string {
	if a.Parsed == nil {
		return ""
	}
	return a.Parsed.AttributeName()
}

// NewAttribute wraps a payload, adding its name to the pool if needed.
func NewAttribute(cp *ConstantPool, parsed Attribute) AttributeInfo {
	return AttributeInfo{NameIndex: cp.AddUtf8(parsed.AttributeName()), Parsed: parsed}
}

// UnknownAttribute keeps the payload of an unrecognized attribute as raw bytes.
type UnknownAttribute struct {
	Name string
	Info []byte
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

// ExceptionTableEntry covers [StartPC, EndPC). A zero CatchType catches everything.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

type StackMapTableAttribute struct {
	Entries []StackMapFrame
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

type SyntheticAttribute struct{}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

// SourceDebugExtensionAttribute holds the extension verbatim. It is modified
// UTF-8 by convention only and is not decoded.
type SourceDebugExtensionAttribute struct {
	DebugExtension []byte
}

type LineNumberTableAttribute struct {
	LineNumberTable []LineNumberEntry
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type LocalVariableTypeTableAttribute struct {
	LocalVariableTypeTable []LocalVariableTypeEntry
}

type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

type DeprecatedAttribute struct{}

type RuntimeVisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

type RuntimeInvisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

type RuntimeVisibleParameterAnnotationsAttribute struct {
	ParameterAnnotations [][]Annotation
}

type RuntimeInvisibleParameterAnnotationsAttribute struct {
	ParameterAnnotations [][]Annotation
}

type RuntimeVisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

type RuntimeInvisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

type AnnotationDefaultAttribute struct {
	DefaultValue ElementValue
}

type BootstrapMethodsAttribute struct {
	BootstrapMethods []BootstrapMethod
}

type BootstrapMethod struct {
	BootstrapMethodRef uint16
	BootstrapArguments []uint16
}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

// MethodParameter has a zero NameIndex for a formal parameter with no name.
type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
}

type NestHostAttribute struct {
	HostClassIndex uint16
}

type NestMembersAttribute struct {
	Classes []uint16
}

type RecordAttribute struct {
	Components []RecordComponentInfo
}

type RecordComponentInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

type PermittedSubclassesAttribute struct {
	Classes []uint16
}

type ModuleAttribute struct {
	ModuleNameIndex    uint16
	ModuleFlags        uint16
	ModuleVersionIndex uint16
	Requires           []ModuleRequires
	Exports            []ModuleExports
	Opens              []ModuleOpens
	Uses               []uint16
	Provides           []ModuleProvides
}

type ModuleRequires struct {
	RequiresIndex        uint16
	RequiresFlags        uint16
	RequiresVersionIndex uint16
}

type ModuleExports struct {
	ExportsIndex   uint16
	ExportsFlags   uint16
	ExportsToIndex []uint16
}

type ModuleOpens struct {
	OpensIndex   uint16
	OpensFlags   uint16
	OpensToIndex []uint16
}

type ModuleProvides struct {
	ProvidesIndex     uint16
	ProvidesWithIndex []uint16
}

type ModulePackagesAttribute struct {
	PackageIndex []uint16
}

type ModuleMainClassAttribute struct {
	MainClassIndex uint16
}

func (a *UnknownAttribute) AttributeName() string              { return a.Name }
func (*ConstantValueAttribute) AttributeName() string          { return AttrConstantValue }
func (*CodeAttribute) AttributeName() string                   { return AttrCode }
func (*StackMapTableAttribute) AttributeName() string          { return AttrStackMapTable }
func (*ExceptionsAttribute) AttributeName() string             { return AttrExceptions }
func (*InnerClassesAttribute) AttributeName() string           { return AttrInnerClasses }
func (*EnclosingMethodAttribute) AttributeName() string        { return AttrEnclosingMethod }
func (*SyntheticAttribute) AttributeName() string              { return AttrSynthetic }
func (*SignatureAttribute) AttributeName() string              { return AttrSignature }
func (*SourceFileAttribute) AttributeName() string             { return AttrSourceFile }
func (*SourceDebugExtensionAttribute) AttributeName() string   { return AttrSourceDebugExtension }
func (*LineNumberTableAttribute) AttributeName() string        { return AttrLineNumberTable }
func (*LocalVariableTableAttribute) AttributeName() string     { return AttrLocalVariableTable }
func (*LocalVariableTypeTableAttribute) AttributeName() string { return AttrLocalVariableTypeTable }
func (*DeprecatedAttribute) AttributeName() string             { return AttrDeprecated }
func (*RuntimeVisibleAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeVisibleAnnotations
}
func (*RuntimeInvisibleAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeInvisibleAnnotations
}
func (*RuntimeVisibleParameterAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeVisibleParameterAnnotations
}
func (*RuntimeInvisibleParameterAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeInvisibleParameterAnnotations
}
func (*RuntimeVisibleTypeAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeVisibleTypeAnnotations
}
func (*RuntimeInvisibleTypeAnnotationsAttribute) AttributeName() string {
	return AttrRuntimeInvisibleTypeAnnotations
}
func (*AnnotationDefaultAttribute) AttributeName() string   { return AttrAnnotationDefault }
func (*BootstrapMethodsAttribute) AttributeName() string    { return AttrBootstrapMethods }
func (*MethodParametersAttribute) AttributeName() string    { return AttrMethodParameters }
func (*NestHostAttribute) AttributeName() string            { return AttrNestHost }
func (*NestMembersAttribute) AttributeName() string         { return AttrNestMembers }
func (*RecordAttribute) AttributeName() string              { return AttrRecord }
func (*PermittedSubclassesAttribute) AttributeName() string { return AttrPermittedSubclasses }
func (*ModuleAttribute) AttributeName() string              { return AttrModule }
func (*ModulePackagesAttribute) AttributeName() string      { return AttrModulePackages }
func (*ModuleMainClassAttribute) AttributeName() string     { return AttrModuleMainClass }

// Payload returns the decoded payload of a as T, or the zero T when a holds
// a different kind of attribute.
func Payload[T Attribute](a *AttributeInfo) T {
	p, _ := a.Parsed.(T)
	return p
}

// FindAttribute returns the payload of the first attribute in attrs whose
// payload is a T.
func FindAttribute[T Attribute](attrs []AttributeInfo) T {
	for i := range attrs {
		if p, ok := attrs[i].Parsed.(T); ok {
			return p
		}
	}
	var zero T
	return zero
}

// findAttribute returns the first attribute in attrs with the given name.
func findAttribute(attrs []AttributeInfo, name string) *AttributeInfo {
	for i := range attrs {
		if attrs[i].Name() == name {
			return &attrs[i]
		}
	}
	return nil
}
