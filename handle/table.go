// Package handle implements the process-wide, lock-guarded u32->object
// table that gives foreign callers an opaque, stable-across-the-call
// identity for sessions and error objects, per §4.6.
package handle

import (
	"sync"

	"github.com/Neumenon/elucidator/errs"
)

// Table is a generic process-wide mapping from opaque u32 handle to an
// owned *T, guarded by a single read/write lock: reads (Get) take the
// read lock and proceed in parallel; writes (New, Release) take the write
// lock and serialize with everything else. Grounded on Neumenon/glyph's
// RWMutex-guarded registries, generalized to a reusable handle table
// since the session table and the error table share this exact shape.
type Table[T any] struct {
	mu       sync.RWMutex
	entries  map[uint32]*T
	nextID   uint32
	poisoned bool

	// notFound builds the error returned when a handle has no live entry
	// (never registered, or already released). Callers supply the kind
	// appropriate to what the table holds — e.g. UnknownSession for a
	// table of sessions.
	notFound func(id uint32) error
}

// NewTable returns an empty Table. notFound builds the "no such handle"
// error for Get/Release misses.
func NewTable[T any](notFound func(id uint32) error) *Table[T] {
	return &Table[T]{entries: make(map[uint32]*T), notFound: notFound}
}

// New allocates a fresh handle for value and returns it.
func (t *Table[T]) New(value *T) (id uint32, err error) {
	t.mu.Lock()
	defer t.unlockOrPoison()

	if t.poisoned {
		return 0, poisonedErr()
	}
	id = t.nextID
	t.nextID++
	t.entries[id] = value
	return id, nil
}

// Get returns the live entry for id.
func (t *Table[T]) Get(id uint32) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.poisoned {
		return nil, poisonedErr()
	}
	v, ok := t.entries[id]
	if !ok {
		return nil, t.notFound(id)
	}
	return v, nil
}

// Release removes id's entry, freeing the handle for reuse semantics
// (handles are opaque; the table does not guarantee non-reuse).
func (t *Table[T]) Release(id uint32) error {
	t.mu.Lock()
	defer t.unlockOrPoison()

	if t.poisoned {
		return poisonedErr()
	}
	if _, ok := t.entries[id]; !ok {
		return t.notFound(id)
	}
	delete(t.entries, id)
	return nil
}

// Len returns the number of live handles, for tests and debug printers.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// unlockOrPoison marks the table poisoned and re-panics if the writer
// holding the lock panicked, otherwise just unlocks. This is the fail-fast
// behavior §4.6 specifies: a panic while holding the write lock poisons
// every subsequent access for the remaining life of the process.
func (t *Table[T]) unlockOrPoison() {
	if r := recover(); r != nil {
		t.poisoned = true
		t.mu.Unlock()
		panic(r)
	}
	t.mu.Unlock()
}

func poisonedErr() error {
	return errs.New(errs.PoisonedState, "handle table is poisoned; the process must be restarted")
}
