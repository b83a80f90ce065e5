package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/elucidator/errs"
)

func Test_Parse_FullForm(t *testing.T) {
	s, err := Parse(`sensor_reading(id: u64, temperature: f32, tags: string, samples: f64[8], raw: u8[])`)
	require.NoError(t, err)
	require.Equal(t, "sensor_reading", s.Designation)
	require.Len(t, s.Members, 5)

	assert.Equal(t, MemberSpec{Identifier: "id", DType: U64, Array: ArrayForm{Kind: Scalar}}, s.Members[0])
	assert.Equal(t, MemberSpec{Identifier: "temperature", DType: F32, Array: ArrayForm{Kind: Scalar}}, s.Members[1])
	assert.Equal(t, MemberSpec{Identifier: "tags", DType: StringType, Array: ArrayForm{Kind: Scalar}}, s.Members[2])
	assert.Equal(t, MemberSpec{Identifier: "samples", DType: F64, Array: ArrayForm{Kind: Fixed, Len: 8}}, s.Members[3])
	assert.Equal(t, MemberSpec{Identifier: "raw", DType: U8, Array: ArrayForm{Kind: Dynamic}}, s.Members[4])
	assert.False(t, s.HasContext)
}

func Test_Parse_WithContextAndSemicolon(t *testing.T) {
	s, err := Parse(`point(x: f64, y: f64) ("a 2d point with \"quotes\" and a\ttab");`)
	require.NoError(t, err)
	assert.True(t, s.HasContext)
	assert.Equal(t, "a 2d point with \"quotes\" and a\ttab", s.Context)
}

func Test_Parse_TrailingGarbage(t *testing.T) {
	_, err := Parse(`point(x: f64) extra`)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.TrailingGarbage, kind)
}

func Test_Parse_UnknownDtype(t *testing.T) {
	_, err := Parse(`point(x: quux)`)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnknownDtype, kind)
}

func Test_Parse_StringAsArray(t *testing.T) {
	_, err := Parse(`point(label: string[4])`)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.StringAsArray, kind)
}

func Test_Parse_ZeroArrayLen(t *testing.T) {
	_, err := Parse(`point(xs: f64[0])`)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.ZeroOrNegativeArrayLen, kind)
}

func Test_Parse_DuplicateMember(t *testing.T) {
	_, err := Parse(`point(x: f64, x: f64)`)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.DuplicateMember, kind)
}

func Test_Parse_InvalidIdentLeadingDigit(t *testing.T) {
	_, err := Parse(`point(1x: f64)`)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidIdent, kind)
}

func Test_Parse_InvalidIdentLeadingUnderscore(t *testing.T) {
	_, err := Parse(`point(_x: f64)`)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidIdent, kind)
}

func Test_Parse_UnexpectedEofNoDesignation(t *testing.T) {
	_, err := Parse(`invalid`)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnexpectedEof, kind)
}

func Test_Parse_UnexpectedChar(t *testing.T) {
	_, err := Parse(`point(x: f64) # comment`)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Contains(t, []errs.Kind{errs.UnexpectedChar, errs.TrailingGarbage}, kind)
}

func Test_ParseMembers_ReducedForm(t *testing.T) {
	members, err := ParseMembers(`hits: u64, misses: u64`)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "hits", members[0].Identifier)
	assert.Equal(t, "misses", members[1].Identifier)
}

func Test_ParseMembers_RejectsDesignationWrapper(t *testing.T) {
	_, err := ParseMembers(`point(x: f64)`)
	require.Error(t, err)
}
