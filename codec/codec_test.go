package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/elucidator/errs"
	"github.com/Neumenon/elucidator/spec"
)

func Test_EncodeDecode_RoundTrip(t *testing.T) {
	s, err := spec.Parse(`state(hits: u64, misses: u64)`)
	require.NoError(t, err)

	values := map[string]Value{
		"hits":   NewU64(7),
		"misses": NewU64(3),
	}
	blob, err := Encode(s, values)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0, 0, 0, 0, 0}, blob)

	rec, err := Decode(s, blob)
	require.NoError(t, err)

	hits, ok := rec.Get("hits")
	require.True(t, ok)
	u, ok := hits.AsU64()
	require.True(t, ok)
	assert.Equal(t, uint64(7), u)
}

func Test_EncodeDecode_StringAndArrays(t *testing.T) {
	s, err := spec.Parse(`mixed(name: string, fixed_vals: u16[3], dyn_vals: f64[])`)
	require.NoError(t, err)

	fixedElems := []Value{NewU16(1), NewU16(2), NewU16(3)}
	fixedArr, ok := NewArray(spec.U16, spec.ArrayForm{Kind: spec.Fixed, Len: 3}, fixedElems)
	require.True(t, ok)

	dynElems := []Value{NewF64(1.5), NewF64(-2.5)}
	dynArr, ok := NewArray(spec.F64, spec.ArrayForm{Kind: spec.Dynamic}, dynElems)
	require.True(t, ok)

	values := map[string]Value{
		"name":       NewString("hello"),
		"fixed_vals": fixedArr,
		"dyn_vals":   dynArr,
	}
	blob, err := Encode(s, values)
	require.NoError(t, err)

	rec, err := Decode(s, blob)
	require.NoError(t, err)

	name, ok := rec.Get("name")
	require.True(t, ok)
	str, ok := name.AsString()
	require.True(t, ok)
	assert.Equal(t, "hello", str)

	fv, ok := rec.Get("fixed_vals")
	require.True(t, ok)
	require.Len(t, fv.Elems, 3)

	dv, ok := rec.Get("dyn_vals")
	require.True(t, ok)
	require.Len(t, dv.Elems, 2)
	f0, _ := dv.Elems[0].AsF64()
	assert.Equal(t, 1.5, f0)
}

func Test_Decode_TruncatedBlob(t *testing.T) {
	s, err := spec.Parse(`state(hits: u64, misses: u64)`)
	require.NoError(t, err)

	_, err = Decode(s, []byte{1, 2, 3})
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.TruncatedBlob, kind)
}

func Test_Decode_TrailingBytes(t *testing.T) {
	s, err := spec.Parse(`state(hits: u64)`)
	require.NoError(t, err)

	blob := make([]byte, 9)
	_, err = Decode(s, blob)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.TrailingBytes, kind)
}

func Test_Decode_OversizedDynamicLengthPrefix_DoesNotOverflow(t *testing.T) {
	s, err := spec.Parse(`blob(xs: u64[])`)
	require.NoError(t, err)

	blob := make([]byte, 8)
	// declare a length prefix near the top of the u64 range; a naive
	// cursor+needed>len(blob) check would overflow here.
	for i := range blob {
		blob[i] = 0xFF
	}

	_, err = Decode(s, blob)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.TruncatedBlob, kind)
}

func Test_NewArray_FixedLengthMismatchRejected(t *testing.T) {
	_, ok := NewArray(spec.U16, spec.ArrayForm{Kind: spec.Fixed, Len: 10}, []Value{NewU16(1), NewU16(2), NewU16(3)})
	assert.False(t, ok)
}

// A Value assembled by struct literal (bypassing NewArray) with an
// Elems count that disagrees with its own declared Array.Len must still be
// rejected by Encode — the shape check cannot only compare the
// self-reported Array.Len field.
func Test_Encode_FixedArrayElemCountMismatchRejected(t *testing.T) {
	s, err := spec.Parse(`mixed(fixed_vals: u16[10])`)
	require.NoError(t, err)

	bad := Value{
		DType: spec.U16,
		Array: spec.ArrayForm{Kind: spec.Fixed, Len: 10},
		Elems: []Value{NewU16(1), NewU16(2), NewU16(3)},
	}
	_, err = Encode(s, map[string]Value{"fixed_vals": bad})
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidBlobLength, kind)
}

func Test_MinBlobLength(t *testing.T) {
	s, err := spec.Parse(`mixed(a: u8, b: u32[2], c: string, d: i16[])`)
	require.NoError(t, err)
	// a: 1, b: 4*2=8, c: 8 (len prefix only), d: 8 (len prefix only)
	assert.Equal(t, 1+8+8+8, MinBlobLength(s))
}

func Test_NaN_NotEqualToItself(t *testing.T) {
	v := NewF64(math.NaN())
	assert.True(t, v.IsNaN())
}
