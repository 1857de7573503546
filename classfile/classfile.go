package classfile

import "fmt"

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags
	ThisClass  uint16
	SuperClass uint16
	Interfaces []uint16
	Fields     []FieldInfo
	Methods    []MethodInfo
	Attributes []AttributeInfo
}

func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.GetClassName(idx)
	}
	return names
}

// Version renders the class file version as major.minor.
func (cf *ClassFile) Version() string {
	return fmt.Sprintf("%d.%d", cf.MajorVersion, cf.MinorVersion)
}

// IsClass is true for ordinary classes and enums. IsAnnotation, IsEnum and
// IsModule come straight from the flags.
func (cf *ClassFile) IsClass() bool {
	return !cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsModule()
}

// IsInterface excludes annotation interfaces.
func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) GetField(name string) *FieldInfo {
	for i := range cf.Fields {
		if cf.Fields[i].Name(cf.ConstantPool) == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

// GetMethod finds a method by name, and by descriptor unless it is empty.
func (cf *ClassFile) GetMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.ConstantPool) == name {
			if descriptor == "" || cf.Methods[i].Descriptor(cf.ConstantPool) == descriptor {
				return &cf.Methods[i]
			}
		}
	}
	return nil
}

func (cf *ClassFile) GetMethods(name string) []*MethodInfo {
	var methods []*MethodInfo
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.ConstantPool) == name {
			methods = append(methods, &cf.Methods[i])
		}
	}
	return methods
}

func (cf *ClassFile) GetAttribute(name string) *AttributeInfo {
	return findAttribute(cf.Attributes, name)
}

// SourceFile returns the name recorded in the SourceFile attribute, if any.
func (cf *ClassFile) SourceFile() string {
	if sf := FindAttribute[*SourceFileAttribute](cf.Attributes); sf != nil {
		return cf.ConstantPool.GetUtf8(sf.SourceFileIndex)
	}
	return ""
}

func (cf *ClassFile) BootstrapMethods() []BootstrapMethod {
	if bm := FindAttribute[*BootstrapMethodsAttribute](cf.Attributes); bm != nil {
		return bm.BootstrapMethods
	}
	return nil
}
