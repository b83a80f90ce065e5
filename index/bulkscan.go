package index

import (
	"sync"

	"github.com/Neumenon/elucidator/geom"
)

// BulkScan is a linear-scan Backend: insert is O(1), query is O(n). Grounded
// on Neumenon/glyph's RWMutex-guarded in-memory registries (pool.go,
// schema_context.go) — an ordered slice under a single lock, read-locked
// for scan, write-locked for append.
type BulkScan struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewBulkScan returns an empty BulkScan backend.
func NewBulkScan() *BulkScan {
	return &BulkScan{}
}

func (b *BulkScan) Insert(bbox geom.BoundingBox, designation string, blob []byte) {
	cp := make([]byte, len(blob))
	copy(cp, blob)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, Entry{BBox: bbox, Designation: designation, Blob: cp})
}

func (b *BulkScan) Query(bbox geom.BoundingBox, designation string, eps float64) [][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out [][]byte
	for _, e := range b.entries {
		if e.Designation != designation {
			continue
		}
		if !e.BBox.ContainedIn(bbox, eps) {
			continue
		}
		cp := make([]byte, len(e.Blob))
		copy(cp, e.Blob)
		out = append(out, cp)
	}
	return out
}

// Len returns the number of stored entries, for tests and debug printers.
func (b *BulkScan) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
