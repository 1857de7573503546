package classfile

import (
	"fmt"
	"io"
	"os"
)

// minMemberSize is the fixed part of a field_info or method_info.
const minMemberSize = 8

type decoder struct {
	opts         options
	pool         ConstantPool
	depth        int
	entryOffsets []int
}

// ParseFile reads a whole class file from disk and decodes it.
func ParseFile(path string, opts ...Option) (*ClassFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Decode(b, opts...)
}

// Parse reads rd to the end and decodes the result.
func Parse(rd io.Reader, opts ...Option) (*ClassFile, error) {
	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Decode(b, opts...)
}

// Decode decodes a complete class file. On failure it returns one of the
// error types in errors.go, possibly wrapped with the path to the failing
// member, and never a partially decoded ClassFile.
func Decode(b []byte, opts ...Option) (*ClassFile, error) {
	d := &decoder{opts: newOptions(opts)}
	return d.decode(newReader(b))
}

func (d *decoder) decode(r *reader) (*ClassFile, error) {
	magic := r.readU4()
	if r.err != nil {
		return nil, r.err
	}
	if magic != Magic {
		return nil, &MalformedMagicError{Offset: 0, Magic: magic}
	}

	cf := &ClassFile{}
	versionOffset := r.offset()
	cf.MinorVersion = r.readU2()
	cf.MajorVersion = r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	if err := checkVersion(d.opts, cf, versionOffset); err != nil {
		return nil, err
	}

	cf.ConstantPool = d.readConstantPool(r)
	if r.err != nil {
		return nil, fmt.Errorf("constant pool: %w", r.err)
	}
	if err := checkConstantPool(cf.ConstantPool, d.entryOffset); err != nil {
		return nil, fmt.Errorf("constant pool: %w", err)
	}
	d.pool = cf.ConstantPool

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = d.readIndex(r, "this_class", ConstantClass)
	superOffset := r.offset()
	cf.SuperClass = r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	if err := checkSuperClass(cf, superOffset); err != nil {
		return nil, err
	}

	cf.Interfaces = d.readIndexList(r, "interfaces", ConstantClass)
	if r.err != nil {
		return nil, r.err
	}

	cf.Fields = readMembers(r, "fields", func() FieldInfo { return d.readField(r) })
	if r.err != nil {
		return nil, r.err
	}
	cf.Methods = readMembers(r, "methods", func() MethodInfo { return d.readMethod(r) })
	if r.err != nil {
		return nil, r.err
	}

	cf.Attributes = d.readAttributes(r)
	if r.err != nil {
		return nil, r.err
	}

	if r.remaining() > 0 {
		return nil, &InvalidStructureError{
			Offset: r.offset(),
			Field:  "class file",
			Reason: fmt.Sprintf("%d trailing bytes after the last attribute", r.remaining()),
		}
	}
	if err := checkBootstrapIndices(cf, d.entryOffset); err != nil {
		return nil, err
	}
	return cf, nil
}

func (d *decoder) entryOffset(index int) int {
	return d.entryOffsets[index-1]
}

// readIndex reads a constant pool index and checks it against the tags the
// referencing field accepts.
func (d *decoder) readIndex(r *reader, field string, tags ...ConstantTag) uint16 {
	offset := r.offset()
	index := r.readU2()
	if r.err != nil {
		return 0
	}
	if err := d.pool.check(field, index, offset, tags...); err != nil {
		r.fail(err)
	}
	return index
}

// readOptionalIndex is readIndex for fields where 0 means absent.
func (d *decoder) readOptionalIndex(r *reader, field string, tags ...ConstantTag) uint16 {
	offset := r.offset()
	index := r.readU2()
	if r.err != nil || index == 0 {
		return index
	}
	if err := d.pool.check(field, index, offset, tags...); err != nil {
		r.fail(err)
	}
	return index
}

// enter counts one level of nesting and fails once the configured depth is
// exceeded. Every successful enter is paired with a leave.
func (d *decoder) enter(r *reader) bool {
	if d.depth >= d.opts.maxDepth {
		r.fail(&RecursionLimitExceededError{Offset: r.offset(), Limit: d.opts.maxDepth})
		return false
	}
	d.depth++
	return true
}

func (d *decoder) leave() {
	d.depth--
}

func readMembers[T any](r *reader, kind string, read func() T) []T {
	count := int(r.readU2())
	if !r.fits(kind, count, minMemberSize) || count == 0 {
		return nil
	}
	members := make([]T, count)
	for i := range members {
		members[i] = read()
		if r.err != nil {
			r.err = fmt.Errorf("%s[%d]: %w", kind, i, r.err)
			return nil
		}
	}
	return members
}

func (d *decoder) readField(r *reader) FieldInfo {
	f := FieldInfo{AccessFlags: AccessFlags(r.readU2())}
	f.NameIndex = d.readIndex(r, "field.name_index", ConstantUtf8)
	f.DescriptorIndex = d.readDescriptor(r, "field.descriptor_index", ValidFieldDescriptor)
	f.Attributes = d.readAttributes(r)
	return f
}

func (d *decoder) readMethod(r *reader) MethodInfo {
	m := MethodInfo{AccessFlags: AccessFlags(r.readU2())}
	m.NameIndex = d.readIndex(r, "method.name_index", ConstantUtf8)
	m.DescriptorIndex = d.readDescriptor(r, "method.descriptor_index", ValidMethodDescriptor)
	m.Attributes = d.readAttributes(r)
	return m
}

func (d *decoder) readDescriptor(r *reader, field string, valid func(string) bool) uint16 {
	offset := r.offset()
	index := d.readIndex(r, field, ConstantUtf8)
	if r.err != nil || !d.opts.checkDescriptors {
		return index
	}
	if desc := d.pool.GetUtf8(index); !valid(desc) {
		r.fail(&InvalidDescriptorError{Offset: offset, Field: field, Descriptor: desc})
	}
	return index
}

func checkVersion(opts options, cf *ClassFile, offset int) error {
	if !opts.checkVersion {
		return nil
	}
	if cf.MajorVersion < opts.minMajor || cf.MajorVersion > opts.maxMajor {
		return &UnsupportedVersionError{
			Offset:   offset,
			Major:    cf.MajorVersion,
			Minor:    cf.MinorVersion,
			MinMajor: opts.minMajor,
			MaxMajor: opts.maxMajor,
		}
	}
	opts.log.Debugf("accepted class file version %d.%d", cf.MajorVersion, cf.MinorVersion)
	return nil
}

// checkSuperClass allows a zero super_class only for java/lang/Object and
// module descriptors.
func checkSuperClass(cf *ClassFile, offset int) error {
	if cf.SuperClass != 0 {
		return cf.ConstantPool.check("super_class", cf.SuperClass, offset, ConstantClass)
	}
	if cf.ClassName() == "java/lang/Object" || cf.AccessFlags.IsModule() {
		return nil
	}
	return &InvalidConstantPoolIndexError{Offset: offset, Field: "super_class", Index: 0, Expected: []ConstantTag{ConstantClass}}
}

// checkBootstrapIndices verifies that every Dynamic and InvokeDynamic entry
// names a method in the class's BootstrapMethods attribute.
func checkBootstrapIndices(cf *ClassFile, offsetOf func(index int) int) error {
	methods := -1
	if bm := FindAttribute[*BootstrapMethodsAttribute](cf.Attributes); bm != nil {
		methods = len(bm.BootstrapMethods)
	}

	for i, entry := range cf.ConstantPool {
		var bootstrap uint16
		switch c := entry.(type) {
		case *ConstantDynamicInfo:
			bootstrap = c.BootstrapMethodAttrIndex
		case *ConstantInvokeDynamicInfo:
			bootstrap = c.BootstrapMethodAttrIndex
		default:
			continue
		}
		field := fmt.Sprintf("constant_pool[%d].bootstrap_method_attr_index", i+1)
		if methods < 0 {
			return &InvalidStructureError{Offset: offsetOf(i + 1), Field: field, Reason: "class has no BootstrapMethods attribute"}
		}
		if int(bootstrap) >= methods {
			return &InvalidStructureError{
				Offset: offsetOf(i + 1),
				Field:  field,
				Reason: fmt.Sprintf("index %d out of range for %d bootstrap methods", bootstrap, methods),
			}
		}
	}
	return nil
}
