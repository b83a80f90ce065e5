package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/elucidator/errs"
)

func Test_NewBoundingBox_RejectsInverted(t *testing.T) {
	_, err := NewBoundingBox(Point{X: 1}, Point{X: 0})
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidBoundingBox, kind)
}

func Test_ContainedIn_ExactMatch(t *testing.T) {
	box, err := NewBoundingBox(Point{-1, -1, -1, 0}, Point{1, 1, 1, 0})
	require.NoError(t, err)
	assert.True(t, box.ContainedIn(box, 0))
}

func Test_ContainedIn_EpsilonSlack(t *testing.T) {
	entry, _ := NewBoundingBox(Point{T: 5}, Point{T: 5})
	query, _ := NewBoundingBox(Point{T: 0}, Point{T: 4})

	assert.False(t, entry.ContainedIn(query, 0.0))
	assert.True(t, entry.ContainedIn(query, 1.0))
}

func Test_Intersects(t *testing.T) {
	a, _ := NewBoundingBox(Point{0, 0, 0, 0}, Point{2, 2, 2, 2})
	b, _ := NewBoundingBox(Point{1, 1, 1, 1}, Point{3, 3, 3, 3})
	c, _ := NewBoundingBox(Point{10, 10, 10, 10}, Point{11, 11, 11, 11})

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
}
