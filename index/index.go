// Package index implements the spatiotemporal metadata store: two
// interchangeable backends (BulkScan, RTree-4D) storing (bounding-box,
// designation, blob) triples and answering epsilon-tolerant bounding-box
// queries.
package index

import "github.com/Neumenon/elucidator/geom"

// Entry is one stored (bounding-box, designation, blob) triple. Blob is an
// owned copy made at insert time.
type Entry struct {
	BBox        geom.BoundingBox
	Designation string
	Blob        []byte
}

// Backend is the shared contract both BulkScan and RTree-4D implement.
// insert(bbox, designation, blob) stores an owned copy of blob;
// query(bbox_q, designation, epsilon) returns entries whose designation
// matches and whose bbox is contained in bbox_q (epsilon slack per axis).
// eps is assumed already validated non-negative by the caller.
type Backend interface {
	Insert(bbox geom.BoundingBox, designation string, blob []byte)
	Query(bbox geom.BoundingBox, designation string, eps float64) [][]byte
}
