package codec

import (
	"encoding/binary"
	"math"

	"github.com/Neumenon/elucidator/errs"
	"github.com/Neumenon/elucidator/spec"
)

// Encode serializes values — one per member of s, keyed by member name —
// into a little-endian blob matching s's wire layout (§4.2). Every member
// declared in s must have a matching entry in values with the exact
// declared dtype and array form; Encode does not coerce between types.
func Encode(s *spec.Specification, values map[string]Value) ([]byte, error) {
	buf := make([]byte, 0, MinBlobLength(s))

	for _, m := range s.Members {
		v, ok := values[m.Identifier]
		if !ok {
			return nil, errs.New(errs.InvalidBlobLength, "missing value for member %q", m.Identifier)
		}
		if v.DType != m.DType || v.Array.Kind != m.Array.Kind || (m.Array.Kind == spec.Fixed && v.Array.Len != m.Array.Len) {
			return nil, errs.New(errs.InvalidBlobLength, "member %q: value shape does not match specification", m.Identifier)
		}
		if m.Array.Kind == spec.Fixed && len(v.Elems) != m.Array.Len {
			return nil, errs.New(errs.InvalidBlobLength,
				"member %q: fixed array declares length %d but value has %d element(s)",
				m.Identifier, m.Array.Len, len(v.Elems))
		}

		var err error
		buf, err = appendMember(buf, m, v)
		if err != nil {
			return nil, err
		}
	}

	return buf, nil
}

func appendMember(buf []byte, m spec.MemberSpec, v Value) ([]byte, error) {
	switch m.Array.Kind {
	case spec.Scalar:
		return appendScalar(buf, m.DType, v)
	case spec.Fixed:
		for _, elem := range v.Elems {
			var err error
			buf, err = appendScalar(buf, m.DType, elem)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	case spec.Dynamic:
		var lenBuf [lengthPrefixSize]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(v.Elems)))
		buf = append(buf, lenBuf[:]...)
		for _, elem := range v.Elems {
			var err error
			buf, err = appendScalar(buf, m.DType, elem)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	default:
		return nil, errs.New(errs.InvalidBlobLength, "member %q: unknown array kind", m.Identifier)
	}
}

func appendScalar(buf []byte, dtype spec.DataType, v Value) ([]byte, error) {
	switch dtype {
	case spec.U8:
		return append(buf, byte(v.Num.U)), nil
	case spec.I8:
		return append(buf, byte(v.Num.I)), nil
	case spec.U16:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v.Num.U))
		return append(buf, b[:]...), nil
	case spec.I16:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(int16(v.Num.I)))
		return append(buf, b[:]...), nil
	case spec.U32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v.Num.U))
		return append(buf, b[:]...), nil
	case spec.I32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(int32(v.Num.I)))
		return append(buf, b[:]...), nil
	case spec.U64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v.Num.U)
		return append(buf, b[:]...), nil
	case spec.I64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v.Num.I))
		return append(buf, b[:]...), nil
	case spec.F32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v.Num.F)))
		return append(buf, b[:]...), nil
	case spec.F64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.Num.F))
		return append(buf, b[:]...), nil
	case spec.StringType:
		var lenBuf [lengthPrefixSize]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(v.Str)))
		buf = append(buf, lenBuf[:]...)
		return append(buf, v.Str...), nil
	default:
		return nil, errs.New(errs.InvalidBlobLength, "unknown data type %v", dtype)
	}
}
