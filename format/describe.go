package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/classcodec/classfile"
)

var methodHandleKinds = map[classfile.MethodHandleKind]string{
	classfile.RefGetField:         "getField",
	classfile.RefGetStatic:        "getStatic",
	classfile.RefPutField:         "putField",
	classfile.RefPutStatic:        "putStatic",
	classfile.RefInvokeVirtual:    "invokeVirtual",
	classfile.RefInvokeStatic:     "invokeStatic",
	classfile.RefInvokeSpecial:    "invokeSpecial",
	classfile.RefNewInvokeSpecial: "newInvokeSpecial",
	classfile.RefInvokeInterface:  "invokeInterface",
}

// describeConstant renders a pool entry with its references resolved.
func describeConstant(cp classfile.ConstantPool, entry classfile.ConstantPoolEntry) string {
	switch c := entry.(type) {
	case *classfile.ConstantUtf8Info:
		return c.Value
	case *classfile.ConstantIntegerInfo:
		return strconv.FormatInt(int64(c.Value), 10)
	case *classfile.ConstantFloatInfo:
		return strconv.FormatFloat(float64(c.Value()), 'g', -1, 32)
	case *classfile.ConstantLongInfo:
		return strconv.FormatInt(c.Value, 10)
	case *classfile.ConstantDoubleInfo:
		return strconv.FormatFloat(c.Value(), 'g', -1, 64)
	case *classfile.ConstantClassInfo:
		return cp.GetUtf8(c.NameIndex)
	case *classfile.ConstantStringInfo:
		return strconv.Quote(cp.GetUtf8(c.StringIndex))
	case *classfile.ConstantFieldrefInfo, *classfile.ConstantMethodrefInfo, *classfile.ConstantInterfaceMethodrefInfo:
		class, name, desc := cp.GetMemberRef(constantIndex(cp, entry))
		return class + "." + name + ":" + desc
	case *classfile.ConstantNameAndTypeInfo:
		return cp.GetUtf8(c.NameIndex) + ":" + cp.GetUtf8(c.DescriptorIndex)
	case *classfile.ConstantMethodHandleInfo:
		return methodHandleKinds[c.ReferenceKind] + " " + describeConstant(cp, cp.Entry(c.ReferenceIndex))
	case *classfile.ConstantMethodTypeInfo:
		return cp.GetUtf8(c.DescriptorIndex)
	case *classfile.ConstantDynamicInfo:
		name, desc := cp.GetNameAndType(c.NameAndTypeIndex)
		return fmt.Sprintf("#%d:%s:%s", c.BootstrapMethodAttrIndex, name, desc)
	case *classfile.ConstantInvokeDynamicInfo:
		name, desc := cp.GetNameAndType(c.NameAndTypeIndex)
		return fmt.Sprintf("#%d:%s:%s", c.BootstrapMethodAttrIndex, name, desc)
	case *classfile.ConstantModuleInfo:
		return cp.GetUtf8(c.NameIndex)
	case *classfile.ConstantPackageInfo:
		return cp.GetUtf8(c.NameIndex)
	}
	return ""
}

// constantIndex finds the pool index of entry, for getters that take one.
func constantIndex(cp classfile.ConstantPool, entry classfile.ConstantPoolEntry) uint16 {
	for i, e := range cp {
		if e == entry {
			return uint16(i + 1)
		}
	}
	return 0
}

// describeAttribute returns a one-line summary of an attribute payload.
func describeAttribute(cp classfile.ConstantPool, attr *classfile.AttributeInfo) string {
	switch a := attr.Parsed.(type) {
	case *classfile.UnknownAttribute:
		return fmt.Sprintf("%d raw bytes", len(a.Info))
	case *classfile.ConstantValueAttribute:
		return describeConstant(cp, cp.Entry(a.ConstantValueIndex))
	case *classfile.CodeAttribute:
		return fmt.Sprintf("max_stack=%d max_locals=%d code_length=%d handlers=%d",
			a.MaxStack, a.MaxLocals, len(a.Code), len(a.ExceptionTable))
	case *classfile.StackMapTableAttribute:
		return fmt.Sprintf("%d frames", len(a.Entries))
	case *classfile.ExceptionsAttribute:
		return classNames(cp, a.ExceptionIndexTable)
	case *classfile.InnerClassesAttribute:
		return fmt.Sprintf("%d classes", len(a.Classes))
	case *classfile.EnclosingMethodAttribute:
		if a.MethodIndex == 0 {
			return cp.GetClassName(a.ClassIndex)
		}
		name, desc := cp.GetNameAndType(a.MethodIndex)
		return cp.GetClassName(a.ClassIndex) + "." + name + desc
	case *classfile.SignatureAttribute:
		return cp.GetUtf8(a.SignatureIndex)
	case *classfile.SourceFileAttribute:
		return cp.GetUtf8(a.SourceFileIndex)
	case *classfile.SourceDebugExtensionAttribute:
		return fmt.Sprintf("%d bytes", len(a.DebugExtension))
	case *classfile.LineNumberTableAttribute:
		return fmt.Sprintf("%d lines", len(a.LineNumberTable))
	case *classfile.LocalVariableTableAttribute:
		return fmt.Sprintf("%d locals", len(a.LocalVariableTable))
	case *classfile.LocalVariableTypeTableAttribute:
		return fmt.Sprintf("%d locals", len(a.LocalVariableTypeTable))
	case *classfile.RuntimeVisibleAnnotationsAttribute:
		return annotationTypes(cp, a.Annotations)
	case *classfile.RuntimeInvisibleAnnotationsAttribute:
		return annotationTypes(cp, a.Annotations)
	case *classfile.RuntimeVisibleParameterAnnotationsAttribute:
		return fmt.Sprintf("%d parameters", len(a.ParameterAnnotations))
	case *classfile.RuntimeInvisibleParameterAnnotationsAttribute:
		return fmt.Sprintf("%d parameters", len(a.ParameterAnnotations))
	case *classfile.RuntimeVisibleTypeAnnotationsAttribute:
		return fmt.Sprintf("%d annotations", len(a.Annotations))
	case *classfile.RuntimeInvisibleTypeAnnotationsAttribute:
		return fmt.Sprintf("%d annotations", len(a.Annotations))
	case *classfile.BootstrapMethodsAttribute:
		return fmt.Sprintf("%d methods", len(a.BootstrapMethods))
	case *classfile.MethodParametersAttribute:
		names := make([]string, len(a.Parameters))
		for i, p := range a.Parameters {
			names[i] = cp.GetUtf8(p.NameIndex)
		}
		return strings.Join(names, ", ")
	case *classfile.NestHostAttribute:
		return cp.GetClassName(a.HostClassIndex)
	case *classfile.NestMembersAttribute:
		return classNames(cp, a.Classes)
	case *classfile.RecordAttribute:
		return fmt.Sprintf("%d components", len(a.Components))
	case *classfile.PermittedSubclassesAttribute:
		return classNames(cp, a.Classes)
	case *classfile.ModuleAttribute:
		return cp.GetModuleName(a.ModuleNameIndex)
	case *classfile.ModulePackagesAttribute:
		names := make([]string, len(a.PackageIndex))
		for i, idx := range a.PackageIndex {
			names[i] = cp.GetPackageName(idx)
		}
		return strings.Join(names, ", ")
	case *classfile.ModuleMainClassAttribute:
		return cp.GetClassName(a.MainClassIndex)
	}
	return ""
}

func classNames(cp classfile.ConstantPool, indices []uint16) string {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = cp.GetClassName(idx)
	}
	return strings.Join(names, ", ")
}

func annotationTypes(cp classfile.ConstantPool, anns []classfile.Annotation) string {
	names := make([]string, len(anns))
	for i, ann := range anns {
		names[i] = cp.GetUtf8(ann.TypeIndex)
	}
	return strings.Join(names, ", ")
}

func classKind(cf *classfile.ClassFile) string {
	switch {
	case cf.IsAnnotation():
		return "annotation"
	case cf.IsEnum():
		return "enum"
	case cf.IsInterface():
		return "interface"
	case cf.IsModule():
		return "module"
	default:
		return "class"
	}
}

func visibility(flags classfile.AccessFlags) string {
	switch {
	case flags.IsPublic():
		return "public"
	case flags.IsProtected():
		return "protected"
	case flags.IsPrivate():
		return "private"
	default:
		return "package"
	}
}

func classModifiers(flags classfile.AccessFlags) []string {
	var mods []string
	if flags.IsFinal() {
		mods = append(mods, "final")
	}
	if flags.IsAbstract() && !flags.IsInterface() {
		mods = append(mods, "abstract")
	}
	if flags.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	return mods
}

func fieldModifiers(f *classfile.FieldInfo) []string {
	var mods []string
	if f.IsStatic() {
		mods = append(mods, "static")
	}
	if f.IsFinal() {
		mods = append(mods, "final")
	}
	if f.IsVolatile() {
		mods = append(mods, "volatile")
	}
	if f.IsTransient() {
		mods = append(mods, "transient")
	}
	if f.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	if f.IsEnum() {
		mods = append(mods, "enum")
	}
	return mods
}

func methodModifiers(m *classfile.MethodInfo) []string {
	var mods []string
	if m.IsStatic() {
		mods = append(mods, "static")
	}
	if m.IsFinal() {
		mods = append(mods, "final")
	}
	if m.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if m.IsSynchronized() {
		mods = append(mods, "synchronized")
	}
	if m.IsNative() {
		mods = append(mods, "native")
	}
	if m.IsBridge() {
		mods = append(mods, "bridge")
	}
	if m.IsVarargs() {
		mods = append(mods, "varargs")
	}
	if m.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	return mods
}
