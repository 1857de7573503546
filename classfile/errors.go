package classfile

import (
	"fmt"
	"strings"
)

// Every error produced by Decode and Encode is one of the pointer types in
// this file. Offset is the byte position in the input (decode) or output
// (encode) at which the problem was detected.

type MalformedMagicError struct {
	Offset int
	Magic  uint32
}

func (e *MalformedMagicError) Error() string {
	return fmt.Sprintf("invalid magic number: 0x%08X (expected 0xCAFEBABE)", e.Magic)
}

// UnsupportedVersionError is only returned when a version range was
// configured with WithVersionRange.
type UnsupportedVersionError struct {
	Offset   int
	Major    uint16
	Minor    uint16
	MinMajor uint16
	MaxMajor uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported class file version %d.%d at offset %d (accepted major versions %d..%d)",
		e.Major, e.Minor, e.Offset, e.MinMajor, e.MaxMajor)
}

type TruncatedInputError struct {
	Offset    int
	Needed    int
	Available int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input at offset %d: need %d bytes, %d available", e.Offset, e.Needed, e.Available)
}

// CountOverflowError reports a declared element count that cannot possibly
// fit in the bytes that remain. It is detected before anything is allocated
// and unwraps to the equivalent TruncatedInputError.
type CountOverflowError struct {
	Offset    int
	Field     string
	Count     int
	Needed    int
	Available int
}

func (e *CountOverflowError) Error() string {
	return fmt.Sprintf("%s count %d at offset %d needs at least %d bytes, %d available",
		e.Field, e.Count, e.Offset, e.Needed, e.Available)
}

func (e *CountOverflowError) Unwrap() error {
	return &TruncatedInputError{Offset: e.Offset, Needed: e.Needed, Available: e.Available}
}

type InvalidConstantTagError struct {
	Offset int
	Index  uint16
	Tag    uint8
}

func (e *InvalidConstantTagError) Error() string {
	return fmt.Sprintf("unknown constant pool tag %d for entry %d at offset %d", e.Tag, e.Index, e.Offset)
}

// InvalidConstantPoolIndexError reports a reference that is out of range,
// lands on the unusable second slot of a Long or Double, or names an entry of
// the wrong kind. Actual is zero when no entry exists at Index.
type InvalidConstantPoolIndexError struct {
	Offset   int
	Field    string
	Index    uint16
	Expected []ConstantTag
	Actual   ConstantTag
}

func (e *InvalidConstantPoolIndexError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		expected[i] = t.String()
	}
	return fmt.Sprintf("%s at offset %d: constant pool index %d refers to %s, want %s",
		e.Field, e.Offset, e.Index, e.Actual, strings.Join(expected, " or "))
}

type InvalidVerificationTagError struct {
	Offset int
	Tag    uint8
}

func (e *InvalidVerificationTagError) Error() string {
	return fmt.Sprintf("invalid verification type tag %d at offset %d", e.Tag, e.Offset)
}

// AttributeLengthMismatchError reports an attribute whose payload decoder did
// not consume exactly the declared attribute_length bytes.
type AttributeLengthMismatchError struct {
	Offset   int
	Name     string
	Declared uint32
	Consumed int
}

func (e *AttributeLengthMismatchError) Error() string {
	return fmt.Sprintf("attribute %s at offset %d declares %d bytes but its contents need %d",
		e.Name, e.Offset, e.Declared, e.Consumed)
}

type Utf8DecodeError struct {
	Offset   int
	Index    uint16
	Position int
}

func (e *Utf8DecodeError) Error() string {
	return fmt.Sprintf("malformed modified UTF-8 in constant %d at offset %d (byte %d)", e.Index, e.Offset, e.Position)
}

type RecursionLimitExceededError struct {
	Offset int
	Limit  int
}

func (e *RecursionLimitExceededError) Error() string {
	return fmt.Sprintf("nesting deeper than %d levels at offset %d", e.Limit, e.Offset)
}

// InvalidTagError covers the remaining tagged families: element value tags,
// type annotation target types, type path kinds, reserved stack map frame
// types and method handle reference kinds.
type InvalidTagError struct {
	Offset int
	Kind   string
	Tag    uint8
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid %s %d at offset %d", e.Kind, e.Tag, e.Offset)
}

// InvalidDescriptorError is only returned when WithDescriptorCheck is set.
type InvalidDescriptorError struct {
	Offset     int
	Field      string
	Descriptor string
}

func (e *InvalidDescriptorError) Error() string {
	return fmt.Sprintf("%s at offset %d: malformed descriptor %q", e.Field, e.Offset, e.Descriptor)
}

// InvalidStructureError reports a violated structural invariant that has no
// more specific kind: pool slot layout, trailing bytes, or an in-memory value
// that cannot be written.
type InvalidStructureError struct {
	Offset int
	Field  string
	Reason string
}

func (e *InvalidStructureError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Field, e.Offset, e.Reason)
}
