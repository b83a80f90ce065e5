// Package spec implements the elucidator specification language: the
// textual grammar that maps a designation to an ordered list of typed
// members, its parser, and the designation registry.
package spec

import "fmt"

// DataType is the closed set of atomic wire types a member can declare.
type DataType uint8

const (
	U8 DataType = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	StringType
)

var dataTypeNames = [...]string{
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	F32: "f32", F64: "f64",
	StringType: "string",
}

// String returns the grammar spelling of the data type (e.g. "u32").
func (d DataType) String() string {
	if int(d) < len(dataTypeNames) {
		return dataTypeNames[d]
	}
	return fmt.Sprintf("DataType(%d)", uint8(d))
}

// StaticSize returns the fixed wire size in bytes for scalar encodings of
// this type, or 0 for StringType (which has no static size — its wire form
// is a u64 length prefix followed by exactly that many bytes).
func (d DataType) StaticSize() int {
	switch d {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	default:
		return 0
	}
}

// dtypeByName resolves a lowercase grammar token to a DataType.
func dtypeByName(name string) (DataType, bool) {
	switch name {
	case "u8":
		return U8, true
	case "u16":
		return U16, true
	case "u32":
		return U32, true
	case "u64":
		return U64, true
	case "i8":
		return I8, true
	case "i16":
		return I16, true
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	case "string":
		return StringType, true
	default:
		return 0, false
	}
}

// ArrayKind distinguishes the three forms a member's array suffix can take.
type ArrayKind uint8

const (
	Scalar ArrayKind = iota
	Fixed
	Dynamic
)

// ArrayForm describes whether (and how) a member is arrayed. Len is only
// meaningful when Kind == Fixed, and is always > 0 in that case.
type ArrayForm struct {
	Kind ArrayKind
	Len  int
}

// String renders the array suffix portion of a dtype, e.g. "[]" or "[10]",
// and "" for Scalar.
func (a ArrayForm) String() string {
	switch a.Kind {
	case Fixed:
		return fmt.Sprintf("[%d]", a.Len)
	case Dynamic:
		return "[]"
	default:
		return ""
	}
}

// MemberSpec is a single named, typed field within a Specification.
type MemberSpec struct {
	Identifier string
	DType      DataType
	Array      ArrayForm
}

// String renders the member as "identifier: dtype[suffix]".
func (m MemberSpec) String() string {
	return fmt.Sprintf("%s: %s%s", m.Identifier, m.DType, m.Array)
}

// Specification is a designation plus its ordered, typed member list.
// Once constructed (by the parser or by NewSpecification) it is immutable;
// callers must build a new value to change it.
type Specification struct {
	Designation string
	Members     []MemberSpec

	// HasContext distinguishes "no context clause was given" from "an
	// empty context string was given" — both leave Context == "".
	HasContext bool
	Context    string
}

// MemberByName returns the member with the given identifier, or false if
// no such member exists. Identifiers are unique within one specification
// (enforced at construction/parse time), so this is unambiguous.
func (s *Specification) MemberByName(name string) (MemberSpec, bool) {
	for _, m := range s.Members {
		if m.Identifier == name {
			return m, true
		}
	}
	return MemberSpec{}, false
}
