package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("abc"))
	assert.True(t, ValidIdentifier("abc_123"))
	assert.False(t, ValidIdentifier(""))
	assert.False(t, ValidIdentifier("1abc"))
	assert.False(t, ValidIdentifier("_abc"))
	assert.False(t, ValidIdentifier("abc-def"))
	assert.False(t, ValidIdentifier("abcñ"))
}

func Test_NewSpecification(t *testing.T) {
	members := []MemberSpec{
		{Identifier: "x", DType: F64, Array: ArrayForm{Kind: Scalar}},
		{Identifier: "y", DType: F64, Array: ArrayForm{Kind: Scalar}},
	}
	s, err := NewSpecification("point", members, "a 2d point")
	require.NoError(t, err)
	assert.Equal(t, "point", s.Designation)
	assert.True(t, s.HasContext)
	assert.Equal(t, "a 2d point", s.Context)

	members[0].Identifier = "mutated"
	assert.Equal(t, "x", s.Members[0].Identifier, "NewSpecification must copy the member slice")
}

func Test_NewSpecification_RejectsBadDesignation(t *testing.T) {
	_, err := NewSpecification("1bad", nil, "")
	require.Error(t, err)
}

func Test_NewSpecification_RejectsInvalidMembers(t *testing.T) {
	_, err := NewSpecification("point", []MemberSpec{
		{Identifier: "label", DType: StringType, Array: ArrayForm{Kind: Fixed, Len: 4}},
	}, "")
	require.Error(t, err)
}
