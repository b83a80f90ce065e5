package spec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Canonical_RoundTrips(t *testing.T) {
	original, err := Parse(`sample(a: u8, b: f64[3], c: string, d: i16[]) ("a sample")`)
	require.NoError(t, err)

	rendered := original.Canonical()
	reparsed, err := Parse(rendered)
	require.NoError(t, err)

	require.Equal(t, original.Designation, reparsed.Designation)
	require.Equal(t, original.Members, reparsed.Members)
	require.Equal(t, original.HasContext, reparsed.HasContext)
	require.Equal(t, original.Context, reparsed.Context)
}
