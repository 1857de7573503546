package classfile

import "fmt"

const (
	Magic = 0xCAFEBABE
)

// DefaultMaxDepth bounds how deeply element values, annotations and nested
// attributes may be stacked inside one another.
const DefaultMaxDepth = 64

type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020
	AccSynchronized AccessFlags = 0x0020
	AccVolatile     AccessFlags = 0x0040
	AccBridge       AccessFlags = 0x0040
	AccTransient    AccessFlags = 0x0080
	AccVarargs      AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000
	AccMandated     AccessFlags = 0x8000
)

func (f AccessFlags) IsPublic() bool       { return f&AccPublic != 0 }
func (f AccessFlags) IsPrivate() bool      { return f&AccPrivate != 0 }
func (f AccessFlags) IsProtected() bool    { return f&AccProtected != 0 }
func (f AccessFlags) IsStatic() bool       { return f&AccStatic != 0 }
func (f AccessFlags) IsFinal() bool        { return f&AccFinal != 0 }
func (f AccessFlags) IsSuper() bool        { return f&AccSuper != 0 }
func (f AccessFlags) IsSynchronized() bool { return f&AccSynchronized != 0 }
func (f AccessFlags) IsVolatile() bool     { return f&AccVolatile != 0 }
func (f AccessFlags) IsBridge() bool       { return f&AccBridge != 0 }
func (f AccessFlags) IsTransient() bool    { return f&AccTransient != 0 }
func (f AccessFlags) IsVarargs() bool      { return f&AccVarargs != 0 }
func (f AccessFlags) IsNative() bool       { return f&AccNative != 0 }
func (f AccessFlags) IsInterface() bool    { return f&AccInterface != 0 }
func (f AccessFlags) IsAbstract() bool     { return f&AccAbstract != 0 }
func (f AccessFlags) IsStrict() bool       { return f&AccStrict != 0 }
func (f AccessFlags) IsSynthetic() bool    { return f&AccSynthetic != 0 }
func (f AccessFlags) IsAnnotation() bool   { return f&AccAnnotation != 0 }
func (f AccessFlags) IsEnum() bool         { return f&AccEnum != 0 }
func (f AccessFlags) IsModule() bool       { return f&AccModule != 0 }

type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantDynamic            ConstantTag = 17
	ConstantInvokeDynamic      ConstantTag = 18
	ConstantModule             ConstantTag = 19
	ConstantPackage            ConstantTag = 20
)

var constantTagNames = map[ConstantTag]string{
	ConstantUtf8:               "Utf8",
	ConstantInteger:            "Integer",
	ConstantFloat:              "Float",
	ConstantLong:               "Long",
	ConstantDouble:             "Double",
	ConstantClass:              "Class",
	ConstantString:             "String",
	ConstantFieldref:           "Fieldref",
	ConstantMethodref:          "Methodref",
	ConstantInterfaceMethodref: "InterfaceMethodref",
	ConstantNameAndType:        "NameAndType",
	ConstantMethodHandle:       "MethodHandle",
	ConstantMethodType:         "MethodType",
	ConstantDynamic:            "Dynamic",
	ConstantInvokeDynamic:      "InvokeDynamic",
	ConstantModule:             "Module",
	ConstantPackage:            "Package",
}

func (t ConstantTag) String() string {
	if name, ok := constantTagNames[t]; ok {
		return name
	}
	if t == 0 {
		return "none"
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// wide reports whether an entry with this tag occupies two pool slots.
func (t ConstantTag) wide() bool {
	return t == ConstantLong || t == ConstantDouble
}

type MethodHandleKind uint8

const (
	RefGetField         MethodHandleKind = 1
	RefGetStatic        MethodHandleKind = 2
	RefPutField         MethodHandleKind = 3
	RefPutStatic        MethodHandleKind = 4
	RefInvokeVirtual    MethodHandleKind = 5
	RefInvokeStatic     MethodHandleKind = 6
	RefInvokeSpecial    MethodHandleKind = 7
	RefNewInvokeSpecial MethodHandleKind = 8
	RefInvokeInterface  MethodHandleKind = 9
)

// referenceTags returns the constant tags a method handle of kind k may point at.
func (k MethodHandleKind) referenceTags() []ConstantTag {
	switch k {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		return []ConstantTag{ConstantFieldref}
	case RefInvokeVirtual, RefNewInvokeSpecial:
		return []ConstantTag{ConstantMethodref}
	case RefInvokeStatic, RefInvokeSpecial:
		return []ConstantTag{ConstantMethodref, ConstantInterfaceMethodref}
	case RefInvokeInterface:
		return []ConstantTag{ConstantInterfaceMethodref}
	}
	return nil
}

// loadableTags are the constant kinds a bootstrap method argument may reference.
var loadableTags = []ConstantTag{
	ConstantInteger,
	ConstantFloat,
	ConstantLong,
	ConstantDouble,
	ConstantClass,
	ConstantString,
	ConstantMethodHandle,
	ConstantMethodType,
	ConstantDynamic,
}

type VerificationTag uint8

const (
	ItemTop               VerificationTag = 0
	ItemInteger           VerificationTag = 1
	ItemFloat             VerificationTag = 2
	ItemDouble            VerificationTag = 3
	ItemLong              VerificationTag = 4
	ItemNull              VerificationTag = 5
	ItemUninitializedThis VerificationTag = 6
	ItemObject            VerificationTag = 7
	ItemUninitialized     VerificationTag = 8
)

const (
	FrameSameMax                      = 63
	FrameSameLocals1StackItemMin      = 64
	FrameSameLocals1StackItemMax      = 127
	FrameSameLocals1StackItemExtended = 247
	FrameChopMin                      = 248
	FrameChopMax                      = 250
	FrameSameExtended                 = 251
	FrameAppendMin                    = 252
	FrameAppendMax                    = 254
	FrameFull                         = 255
)

// Element value tags.
const (
	ElementByte       byte = 'B'
	ElementChar       byte = 'C'
	ElementDouble     byte = 'D'
	ElementFloat      byte = 'F'
	ElementInt        byte = 'I'
	ElementLong       byte = 'J'
	ElementShort      byte = 'S'
	ElementBoolean    byte = 'Z'
	ElementString     byte = 's'
	ElementEnum       byte = 'e'
	ElementClass      byte = 'c'
	ElementAnnotation byte = '@'
	ElementArray      byte = '['
)

// constValueTag maps a constant element value tag to the pool entry kind it references.
func constValueTag(tag byte) (ConstantTag, bool) {
	switch tag {
	case ElementByte, ElementChar, ElementInt, ElementShort, ElementBoolean:
		return ConstantInteger, true
	case ElementDouble:
		return ConstantDouble, true
	case ElementFloat:
		return ConstantFloat, true
	case ElementLong:
		return ConstantLong, true
	case ElementString:
		return ConstantUtf8, true
	}
	return 0, false
}

// Type annotation target types.
const (
	TargetClassTypeParameter       uint8 = 0x00
	TargetMethodTypeParameter      uint8 = 0x01
	TargetSupertype                uint8 = 0x10
	TargetClassTypeParameterBound  uint8 = 0x11
	TargetMethodTypeParameterBound uint8 = 0x12
	TargetField                    uint8 = 0x13
	TargetMethodReturn             uint8 = 0x14
	TargetMethodReceiver           uint8 = 0x15
	TargetMethodFormalParameter    uint8 = 0x16
	TargetThrows                   uint8 = 0x17
	TargetLocalVariable            uint8 = 0x40
	TargetResourceVariable         uint8 = 0x41
	TargetExceptionParameter       uint8 = 0x42
	TargetInstanceof               uint8 = 0x43
	TargetNew                      uint8 = 0x44
	TargetConstructorReference     uint8 = 0x45
	TargetMethodReference          uint8 = 0x46
	TargetCast                     uint8 = 0x47
	TargetConstructorInvocationArg uint8 = 0x48
	TargetMethodInvocationArg      uint8 = 0x49
	TargetConstructorReferenceArg  uint8 = 0x4A
	TargetMethodReferenceArg       uint8 = 0x4B
)

// Type path kinds.
const (
	PathArray        uint8 = 0
	PathNested       uint8 = 1
	PathWildcard     uint8 = 2
	PathTypeArgument uint8 = 3
)

// Predefined attribute names.
const (
	AttrConstantValue                        = "ConstantValue"
	AttrCode                                 = "Code"
	AttrStackMapTable                        = "StackMapTable"
	AttrExceptions                           = "Exceptions"
	AttrInnerClasses                         = "InnerClasses"
	AttrEnclosingMethod                      = "EnclosingMethod"
	AttrSynthetic                            = "Synthetic"
	AttrSignature                            = "Signature"
	AttrSourceFile                           = "SourceFile"
	AttrSourceDebugExtension                 = "SourceDebugExtension"
	AttrLineNumberTable                      = "LineNumberTable"
	AttrLocalVariableTable                   = "LocalVariableTable"
	AttrLocalVariableTypeTable               = "LocalVariableTypeTable"
	AttrDeprecated                           = "Deprecated"
	AttrRuntimeVisibleAnnotations            = "RuntimeVisibleAnnotations"
	AttrRuntimeInvisibleAnnotations          = "RuntimeInvisibleAnnotations"
	AttrRuntimeVisibleParameterAnnotations   = "RuntimeVisibleParameterAnnotations"
	AttrRuntimeInvisibleParameterAnnotations = "RuntimeInvisibleParameterAnnotations"
	AttrRuntimeVisibleTypeAnnotations        = "RuntimeVisibleTypeAnnotations"
	AttrRuntimeInvisibleTypeAnnotations      = "RuntimeInvisibleTypeAnnotations"
	AttrAnnotationDefault                    = "AnnotationDefault"
	AttrBootstrapMethods                     = "BootstrapMethods"
	AttrMethodParameters                     = "MethodParameters"
	AttrModule                               = "Module"
	AttrModulePackages                       = "ModulePackages"
	AttrModuleMainClass                      = "ModuleMainClass"
	AttrNestHost                             = "NestHost"
	AttrNestMembers                          = "NestMembers"
	AttrRecord                               = "Record"
	AttrPermittedSubclasses                  = "PermittedSubclasses"
)
