package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/elucidator/errs"
	"github.com/Neumenon/elucidator/geom"
)

func Test_Manager_InsertQueryCycle(t *testing.T) {
	m := NewManager()
	h, err := m.NewSession(BulkScan)
	require.NoError(t, err)

	require.NoError(t, m.AddSpec(h, "state", "hits: u64, misses: u64"))

	blob := []byte{7, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0, 0, 0, 0, 0}
	min := geom.Point{X: -1, Y: -1, Z: -1, T: 0}
	max := geom.Point{X: 1, Y: 1, Z: 1, T: 0}
	require.NoError(t, m.InsertMetadata(h, min, max, "state", blob))

	results, err := m.QueryMetadata(h, min, max, "state", 0.0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, blob, results[0])
}

func Test_Manager_EpsilonSlack(t *testing.T) {
	m := NewManager()
	h, err := m.NewSession(RTree4D)
	require.NoError(t, err)
	require.NoError(t, m.AddSpec(h, "event", "v: u8"))

	at5 := geom.Point{T: 5}
	require.NoError(t, m.InsertMetadata(h, at5, at5, "event", []byte{1}))

	qmin, qmax := geom.Point{T: 0}, geom.Point{T: 4}
	empty, err := m.QueryMetadata(h, qmin, qmax, "event", 0.0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	present, err := m.QueryMetadata(h, qmin, qmax, "event", 1.0)
	require.NoError(t, err)
	assert.Len(t, present, 1)
}

func Test_Manager_UnknownSession(t *testing.T) {
	m := NewManager()
	_, err := m.QueryMetadata(12345, geom.Point{}, geom.Point{}, "x", 0)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnknownSession, kind)
}

func Test_Manager_InsertUnknownDesignation(t *testing.T) {
	m := NewManager()
	h, err := m.NewSession(BulkScan)
	require.NoError(t, err)

	err = m.InsertMetadata(h, geom.Point{}, geom.Point{}, "nope", []byte{1})
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnknownDesignation, kind)
}

func Test_Manager_InsertInvalidBlobLength(t *testing.T) {
	m := NewManager()
	h, err := m.NewSession(BulkScan)
	require.NoError(t, err)
	require.NoError(t, m.AddSpec(h, "state", "hits: u64, misses: u64"))

	err = m.InsertMetadata(h, geom.Point{}, geom.Point{}, "state", []byte{1, 2, 3})
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidBlobLength, kind)
}

func Test_Manager_QueryNegativeEpsilon(t *testing.T) {
	m := NewManager()
	h, err := m.NewSession(BulkScan)
	require.NoError(t, err)
	require.NoError(t, m.AddSpec(h, "state", "hits: u64"))

	_, err = m.QueryMetadata(h, geom.Point{}, geom.Point{}, "state", -1.0)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidEpsilon, kind)
}

func Test_Manager_ReleaseSession(t *testing.T) {
	m := NewManager()
	h, err := m.NewSession(BulkScan)
	require.NoError(t, err)
	require.NoError(t, m.ReleaseSession(h))

	_, err = m.QueryMetadata(h, geom.Point{}, geom.Point{}, "x", 0)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnknownSession, kind)

	err = m.ReleaseSession(h)
	kind, ok = errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnknownSession, kind)
}

func Test_Manager_DuplicateDesignation(t *testing.T) {
	m := NewManager()
	h, err := m.NewSession(BulkScan)
	require.NoError(t, err)
	require.NoError(t, m.AddSpec(h, "state", "hits: u64"))

	// Re-adding an already-present designation always fails with
	// DuplicateDesignation per §4.3, regardless of whether the new member
	// list differs from the one already registered.
	err = m.AddSpec(h, "state", "hits: u64, misses: u64")
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.DuplicateDesignation, kind)
}
