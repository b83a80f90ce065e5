package index

import (
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/Neumenon/elucidator/geom"
)

// minRectExtent pads a degenerate (zero-length) axis of a bounding box
// before handing it to rtreego, which requires every rect dimension to be
// strictly positive. RTree.Query also grows its candidate box by this much
// on every side, because rtreego treats rects that only touch as disjoint.
// Both paddings only widen what the tree returns as candidates; RTree.Query
// always re-applies the exact epsilon-tolerant containment filter
// (geom.BoundingBox.ContainedIn) against the original, unpadded bbox.
const minRectExtent = 1e-9

// RTree is a 4-D spatial index Backend over (x, y, z, t). Insert is
// O(log n) amortized; query enumerates candidates whose boxes intersect
// the (epsilon-expanded) query box via rtreego.SearchIntersect, then
// applies the exact containment + designation filter, per §4.4's
// correctness requirement that the index must never prune a candidate
// that the exact filter would have kept.
type RTree struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
}

// NewRTree returns an empty RTree-4D backend.
func NewRTree() *RTree {
	return &RTree{tree: rtreego.NewTree(4, 25, 50)}
}

// rtreeEntry adapts an Entry into rtreego.Spatial.
type rtreeEntry struct {
	Entry
	rect rtreego.Rect
}

func (e *rtreeEntry) Bounds() rtreego.Rect {
	return e.rect
}

func boxToRect(bbox geom.BoundingBox) rtreego.Rect {
	point := rtreego.Point{bbox.Min.X, bbox.Min.Y, bbox.Min.Z, bbox.Min.T}
	lengths := []float64{
		extent(bbox.Min.X, bbox.Max.X),
		extent(bbox.Min.Y, bbox.Max.Y),
		extent(bbox.Min.Z, bbox.Max.Z),
		extent(bbox.Min.T, bbox.Max.T),
	}
	// bbox invariants (min <= max on every axis) guarantee every length is
	// already >= 0, so NewRect's only failure mode (non-positive length)
	// cannot occur here — the zero case is handled by extent's floor.
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

func extent(min, max float64) float64 {
	d := max - min
	if d < minRectExtent {
		return minRectExtent
	}
	return d
}

func (r *RTree) Insert(bbox geom.BoundingBox, designation string, blob []byte) {
	cp := make([]byte, len(blob))
	copy(cp, blob)

	entry := &rtreeEntry{
		Entry: Entry{BBox: bbox, Designation: designation, Blob: cp},
		rect:  boxToRect(bbox),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tree.Insert(entry)
}

func (r *RTree) Query(bbox geom.BoundingBox, designation string, eps float64) [][]byte {
	queryRect := boxToRect(bbox.Expanded(eps + minRectExtent))

	r.mu.RLock()
	candidates := r.tree.SearchIntersect(queryRect)
	r.mu.RUnlock()

	var out [][]byte
	for _, c := range candidates {
		e, ok := c.(*rtreeEntry)
		if !ok {
			continue
		}
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
func (r *RTree) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Size()
}
