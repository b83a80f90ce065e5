package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/elucidator/geom"
)

func backends() map[string]Backend {
	return map[string]Backend{
		"bulkscan": NewBulkScan(),
		"rtree":    NewRTree(),
	}
}

func Test_Backend_InsertQuery_ExactMatch(t *testing.T) {
	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			box, err := geom.NewBoundingBox(geom.Point{X: -1, Y: -1, Z: -1, T: 0}, geom.Point{X: 1, Y: 1, Z: 1, T: 0})
			require.NoError(t, err)

			b.Insert(box, "state", []byte{1, 2, 3})

			results := b.Query(box, "state", 0.0)
			require.Len(t, results, 1)
			assert.Equal(t, []byte{1, 2, 3}, results[0])
		})
	}
}

func Test_Backend_Query_DesignationFilter(t *testing.T) {
	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			box, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})
			b.Insert(box, "a", []byte{1})
			b.Insert(box, "b", []byte{2})

			results := b.Query(box, "a", 0.0)
			require.Len(t, results, 1)
			assert.Equal(t, []byte{1}, results[0])
		})
	}
}

func Test_Backend_EpsilonSlack(t *testing.T) {
	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			entryBox, _ := geom.NewBoundingBox(geom.Point{T: 5}, geom.Point{T: 5})
			b.Insert(entryBox, "event", []byte{0xAA})

			queryBox, _ := geom.NewBoundingBox(geom.Point{T: 0}, geom.Point{T: 4})

			assert.Empty(t, b.Query(queryBox, "event", 0.0))
			assert.Len(t, b.Query(queryBox, "event", 1.0), 1)
		})
	}
}

func Test_Backend_EmptyQueryIsSuccess(t *testing.T) {
	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			box, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})
			results := b.Query(box, "nothing", 0.0)
			assert.Empty(t, results)
		})
	}
}

func Test_Backend_StoresOwnedCopy(t *testing.T) {
	for name, b := range backends() {
		t.Run(name, func(t *testing.T) {
			box, _ := geom.NewBoundingBox(geom.Point{}, geom.Point{})
			blob := []byte{1, 2, 3}
			b.Insert(box, "x", blob)
			blob[0] = 0xFF // mutating the caller's slice must not affect the stored copy

			results := b.Query(box, "x", 0.0)
			require.Len(t, results, 1)
			assert.Equal(t, []byte{1, 2, 3}, results[0])
		})
	}
}
