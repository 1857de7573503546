package classfile

import "strings"

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else if ft.ClassName != "" {
		sb.WriteString(strings.ReplaceAll(ft.ClassName, "/", "."))
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ClassName == ""
}

func (ft *FieldType) IsReference() bool {
	return ft.ClassName != "" || ft.ArrayDepth > 0
}

type MethodDescriptor struct {
	Parameters []FieldType
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(" ")
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString(" void")
	}
	return sb.String()
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// maxArrayDimensions is the deepest array type a descriptor may name.
const maxArrayDimensions = 255

// scanFieldType reads one field type at desc[start:] and returns it with its
// length, or a zero length if there is none. When strict is set it also
// rejects empty class names, class names containing '.' or '[' or empty
// segments, and arrays deeper than maxArrayDimensions.
func scanFieldType(desc string, start int, strict bool) (FieldType, int) {
	var ft FieldType
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) || (strict && ft.ArrayDepth > maxArrayDimensions) {
		return ft, 0
	}

	if base, ok := baseTypes[desc[i]]; ok {
		ft.BaseType = base
		return ft, i - start + 1
	}
	if desc[i] != 'L' {
		return ft, 0
	}
	end := strings.IndexByte(desc[i:], ';')
	if end < 0 {
		return ft, 0
	}
	ft.ClassName = desc[i+1 : i+end]
	if strict && !validClassName(ft.ClassName) {
		return ft, 0
	}
	return ft, i - start + end + 1
}

func validClassName(name string) bool {
	return name != "" &&
		!strings.ContainsAny(name, ".[") &&
		!strings.Contains(name, "//") &&
		!strings.HasPrefix(name, "/") &&
		!strings.HasSuffix(name, "/")
}

// scanParameters reads the parenthesised parameter list at the start of
// desc and returns the offset just past ')'.
func scanParameters(desc string, strict bool) ([]FieldType, int, bool) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, 0, false
	}
	var params []FieldType
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, n := scanFieldType(desc, i, strict)
		if n == 0 {
			return nil, 0, false
		}
		params = append(params, ft)
		i += n
	}
	if i >= len(desc) {
		return nil, 0, false
	}
	return params, i + 1, true
}

// ParseFieldDescriptor returns the leading field type of desc, or nil.
func ParseFieldDescriptor(desc string) *FieldType {
	ft, n := scanFieldType(desc, 0, false)
	if n == 0 {
		return nil
	}
	return &ft
}

// ParseMethodDescriptor returns nil unless desc has a complete parameter
// list. A void or missing return type leaves ReturnType nil.
func ParseMethodDescriptor(desc string) *MethodDescriptor {
	params, i, ok := scanParameters(desc, false)
	if !ok {
		return nil
	}
	md := &MethodDescriptor{Parameters: params}
	if i < len(desc) && desc[i] != 'V' {
		if ft, n := scanFieldType(desc, i, false); n > 0 {
			md.ReturnType = &ft
		}
	}
	return md
}

// ValidFieldDescriptor reports whether desc is exactly one field type.
func ValidFieldDescriptor(desc string) bool {
	_, n := scanFieldType(desc, 0, true)
	return n > 0 && n == len(desc)
}

// ValidMethodDescriptor reports whether desc is a parameter list in
// parentheses followed by a field type or V.
func ValidMethodDescriptor(desc string) bool {
	_, i, ok := scanParameters(desc, true)
	if !ok {
		return false
	}
	if desc[i:] == "V" {
		return true
	}
	_, n := scanFieldType(desc, i, true)
	return n > 0 && i+n == len(desc)
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
