package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/elucidator/errs"
)

func notFoundErr(id uint32) error {
	return errs.New(errs.UnknownSession, "no session for handle %d", id)
}

func Test_Table_NewGetRelease(t *testing.T) {
	tbl := NewTable[string](notFoundErr)

	val := "hello"
	id, err := tbl.New(&val)
	require.NoError(t, err)

	got, err := tbl.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "hello", *got)

	require.NoError(t, tbl.Release(id))
	assert.Equal(t, 0, tbl.Len())

	_, err = tbl.Get(id)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnknownSession, kind)
}

func Test_Table_ReleaseUnknown(t *testing.T) {
	tbl := NewTable[string](notFoundErr)
	err := tbl.Release(999)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnknownSession, kind)
}

func Test_Table_HandleIDsIncrement(t *testing.T) {
	tbl := NewTable[string](notFoundErr)
	a, b := "a", "b"
	id1, _ := tbl.New(&a)
	id2, _ := tbl.New(&b)
	assert.NotEqual(t, id1, id2)
}

func Test_Table_PoisonedAfterPanic(t *testing.T) {
	tbl := NewTable[string](notFoundErr)

	func() {
		defer func() { recover() }()
		tbl.mu.Lock()
		defer tbl.unlockOrPoison()
		panic("simulated writer panic")
	}()

	_, err := tbl.Get(0)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.PoisonedState, kind)
}
