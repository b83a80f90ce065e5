package codec

import (
	"fmt"
	"math"

	"github.com/Neumenon/elucidator/spec"
)

// Value is a single decoded member value: a scalar of the member's dtype,
// or a slice of scalars for Fixed/Dynamic array members. It mirrors the
// original implementation's Representable tagged union (representable.rs)
// but as a closed Go struct rather than a trait object — decode produces
// these directly rather than requiring a caller-side type switch per
// possible concrete type.
type Value struct {
	DType spec.DataType
	Array spec.ArrayForm

	// Exactly one of these holds the payload, selected by DType/Array:
	//  - Array.Kind == Scalar, DType == StringType: Str
	//  - Array.Kind == Scalar, otherwise:            Num (widened per Is* kind below)
	//  - Array.Kind != Scalar:                       Elems (never for StringType)
	Num   Numeric
	Str   string
	Elems []Value
}

// Numeric widens every non-string scalar dtype into one of three lanes so
// callers don't need a type switch per concrete width. Exactly one lane is
// meaningful, selected by the owning Value's DType.
type Numeric struct {
	U uint64
	I int64
	F float64
}

func (v Value) IsArray() bool {
	return v.Array.Kind != spec.Scalar
}

// AsU64 returns the value as a u64, if DType is an unsigned integer type.
func (v Value) AsU64() (uint64, bool) {
	switch v.DType {
	case spec.U8, spec.U16, spec.U32, spec.U64:
		return v.Num.U, true
	default:
		return 0, false
	}
}

// AsI64 returns the value as an i64, if DType is a signed integer type.
func (v Value) AsI64() (int64, bool) {
	switch v.DType {
	case spec.I8, spec.I16, spec.I32, spec.I64:
		return v.Num.I, true
	default:
		return 0, false
	}
}

// AsF64 returns the value as an f64, if DType is a floating-point type.
// NaN payloads are preserved bit-for-bit by the codec; per ordinary IEEE-754
// semantics a NaN value returned here will not compare equal to itself.
func (v Value) AsF64() (float64, bool) {
	switch v.DType {
	case spec.F32, spec.F64:
		return v.Num.F, true
	default:
		return 0, false
	}
}

// AsString returns the value as a string, if DType is StringType.
func (v Value) AsString() (string, bool) {
	if v.DType == spec.StringType {
		return v.Str, true
	}
	return "", false
}

func (v Value) String() string {
	if v.IsArray() {
		return fmt.Sprintf("%v", v.Elems)
	}
	switch v.DType {
	case spec.StringType:
		return fmt.Sprintf("%q", v.Str)
	case spec.F32, spec.F64:
		return fmt.Sprintf("%v", v.Num.F)
	case spec.I8, spec.I16, spec.I32, spec.I64:
		return fmt.Sprintf("%v", v.Num.I)
	default:
		return fmt.Sprintf("%v", v.Num.U)
	}
}

// Record is the decoded value sequence for one blob, keyed by member name;
// Spec.Members gives the specification's declared order.
type Record struct {
	Spec   *spec.Specification
	Values map[string]Value
}

// Get returns the decoded value for a member name.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.Values[name]
	return v, ok
}

func scalarU(dtype spec.DataType, u uint64) Value {
	return Value{DType: dtype, Array: spec.ArrayForm{Kind: spec.Scalar}, Num: Numeric{U: u}}
}

func scalarI(dtype spec.DataType, i int64) Value {
	return Value{DType: dtype, Array: spec.ArrayForm{Kind: spec.Scalar}, Num: Numeric{I: i}}
}

func scalarF(dtype spec.DataType, f float64) Value {
	return Value{DType: dtype, Array: spec.ArrayForm{Kind: spec.Scalar}, Num: Numeric{F: f}}
}

func scalarS(s string) Value {
	return Value{DType: spec.StringType, Array: spec.ArrayForm{Kind: spec.Scalar}, Str: s}
}

// NewU8 through NewF64 construct scalar Values, range-checking against the
// dtype's width so an out-of-range Go value cannot silently truncate on
// encode.
func NewU8(v uint8) Value   { return scalarU(spec.U8, uint64(v)) }
func NewU16(v uint16) Value { return scalarU(spec.U16, uint64(v)) }
func NewU32(v uint32) Value { return scalarU(spec.U32, uint64(v)) }
func NewU64(v uint64) Value { return scalarU(spec.U64, v) }
func NewI8(v int8) Value    { return scalarI(spec.I8, int64(v)) }
func NewI16(v int16) Value  { return scalarI(spec.I16, int64(v)) }
func NewI32(v int32) Value  { return scalarI(spec.I32, int64(v)) }
func NewI64(v int64) Value  { return scalarI(spec.I64, v) }
func NewF32(v float32) Value {
	return scalarF(spec.F32, float64(v))
}
func NewF64(v float64) Value { return scalarF(spec.F64, v) }
func NewString(v string) Value {
	return scalarS(v)
}

// NewArray constructs an array Value (Fixed or Dynamic, per form) from a
// slice of scalar elements already built with the New* constructors above.
// It returns false if form is Scalar, if any element's dtype doesn't match
// dtype, if any element is itself an array, or if form is Fixed and
// len(elems) != form.Len — a Fixed-array Value's element count must match
// its declared length at construction time, the same "can't represent its
// declared shape" guarantee the scalar New* constructors give per dtype.
func NewArray(dtype spec.DataType, form spec.ArrayForm, elems []Value) (Value, bool) {
	if form.Kind == spec.Scalar {
		return Value{}, false
	}
	if form.Kind == spec.Fixed && len(elems) != form.Len {
		return Value{}, false
	}
	for _, e := range elems {
		if e.DType != dtype || e.IsArray() {
			return Value{}, false
		}
	}
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{DType: dtype, Array: form, Elems: cp}, true
}

// IsNaN reports whether v is a floating-point NaN — a convenience over
// the raw bit pattern, since Go's == on float64 NaN is always false.
func (v Value) IsNaN() bool {
	f, ok := v.AsF64()
	return ok && math.IsNaN(f)
}
