package codec

import (
	"encoding/binary"
	"math"

	"github.com/Neumenon/elucidator/errs"
	"github.com/Neumenon/elucidator/spec"
)

// Decode interprets blob under s, producing a Record. TruncatedBlob is
// reported when the cursor would need to advance past the end of blob;
// TrailingBytes is reported when bytes remain after every member has been
// decoded. Every length comparison is done as "bytes remaining < needed"
// rather than "cursor + needed > len(blob)", so a maliciously or
// accidentally huge declared length (e.g. a dynamic-array count read from
// an untrusted blob) can never overflow the cursor arithmetic — it always
// just exceeds the remaining byte count and is reported as TruncatedBlob.
func Decode(s *spec.Specification, blob []byte) (*Record, error) {
	d := &decoder{blob: blob}

	values := make(map[string]Value, len(s.Members))
	for _, m := range s.Members {
		v, err := d.decodeMember(m)
		if err != nil {
			return nil, err
		}
		values[m.Identifier] = v
	}

	if d.remaining() != 0 {
		return nil, errs.At(errs.TrailingBytes, d.pos, "", "%d trailing byte(s) after decoding all members", d.remaining())
	}

	return &Record{Spec: s, Values: values}, nil
}

type decoder struct {
	blob []byte
	pos  int
}

func (d *decoder) remaining() int {
	return len(d.blob) - d.pos
}

// take returns the next n bytes and advances the cursor, or a TruncatedBlob
// error if fewer than n bytes remain.
func (d *decoder) take(n int) ([]byte, error) {
	if d.remaining() < n {
		return nil, errs.At(errs.TruncatedBlob, d.pos, "",
			"need %d more byte(s) but only %d remain", n, d.remaining())
	}
	b := d.blob[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) decodeMember(m spec.MemberSpec) (Value, error) {
	switch m.Array.Kind {
	case spec.Scalar:
		return d.decodeScalar(m.DType)
	case spec.Fixed:
		elems := make([]Value, m.Array.Len)
		for i := range elems {
			v, err := d.decodeScalar(m.DType)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Value{DType: m.DType, Array: m.Array, Elems: elems}, nil
	case spec.Dynamic:
		lenBytes, err := d.take(lengthPrefixSize)
		if err != nil {
			return Value{}, err
		}
		count := binary.LittleEndian.Uint64(lenBytes)
		// bound count against what could possibly remain, rather than
		// trusting it and allocating: an untrusted huge count would
		// otherwise be a memory-exhaustion vector before the truncation
		// check on the first element ever runs.
		scalarSize := m.DType.StaticSize()
		// compare via division, never count*scalarSize, so an adversarial
		// near-u64-max count cannot wrap the multiplication back around
		// into a small, falsely-valid number.
		if scalarSize > 0 && uint64(d.remaining())/uint64(scalarSize) < count {
			return Value{}, errs.At(errs.TruncatedBlob, d.pos, "",
				"dynamic array declares %d element(s) but blob does not contain that many", count)
		}
		elems := make([]Value, count)
		for i := range elems {
			v, err := d.decodeScalar(m.DType)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Value{DType: m.DType, Array: m.Array, Elems: elems}, nil
	default:
		return Value{}, errs.New(errs.InvalidBlobLength, "unknown array kind")
	}
}

func (d *decoder) decodeScalar(dtype spec.DataType) (Value, error) {
	switch dtype {
	case spec.U8:
		b, err := d.take(1)
		if err != nil {
			return Value{}, err
		}
		return scalarU(spec.U8, uint64(b[0])), nil
	case spec.I8:
		b, err := d.take(1)
		if err != nil {
			return Value{}, err
		}
		return scalarI(spec.I8, int64(int8(b[0]))), nil
	case spec.U16:
		b, err := d.take(2)
		if err != nil {
			return Value{}, err
		}
		return scalarU(spec.U16, uint64(binary.LittleEndian.Uint16(b))), nil
	case spec.I16:
		b, err := d.take(2)
		if err != nil {
			return Value{}, err
		}
		return scalarI(spec.I16, int64(int16(binary.LittleEndian.Uint16(b)))), nil
	case spec.U32:
		b, err := d.take(4)
		if err != nil {
			return Value{}, err
		}
		return scalarU(spec.U32, uint64(binary.LittleEndian.Uint32(b))), nil
	case spec.I32:
		b, err := d.take(4)
		if err != nil {
			return Value{}, err
		}
		return scalarI(spec.I32, int64(int32(binary.LittleEndian.Uint32(b)))), nil
	case spec.U64:
		b, err := d.take(8)
		if err != nil {
			return Value{}, err
		}
		return scalarU(spec.U64, binary.LittleEndian.Uint64(b)), nil
	case spec.I64:
		b, err := d.take(8)
		if err != nil {
			return Value{}, err
		}
		return scalarI(spec.I64, int64(binary.LittleEndian.Uint64(b))), nil
	case spec.F32:
		b, err := d.take(4)
		if err != nil {
			return Value{}, err
		}
		return scalarF(spec.F32, float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))), nil
	case spec.F64:
		b, err := d.take(8)
		if err != nil {
			return Value{}, err
		}
		return scalarF(spec.F64, math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
	case spec.StringType:
		lenBytes, err := d.take(lengthPrefixSize)
		if err != nil {
			return Value{}, err
		}
		n := binary.LittleEndian.Uint64(lenBytes)
		if uint64(d.remaining()) < n {
			return Value{}, errs.At(errs.TruncatedBlob, d.pos, "",
				"string declares %d byte(s) but blob does not contain that many", n)
		}
		b, err := d.take(int(n))
		if err != nil {
			return Value{}, err
		}
		return scalarS(string(b)), nil
	default:
		return Value{}, errs.New(errs.InvalidBlobLength, "unknown data type %v", dtype)
	}
}
