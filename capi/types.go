// Package capi is the pure-Go core of the ABI-stable foreign API surface
// described in §6: opaque handle structs, status codes, and the
// Point/BoundingBox/BufNode shapes a cgo shim would marshal across the
// boundary. This package contains no actual cgo — it is the Go-side
// implementation the bindings (out of scope per §1) call into.
package capi

import (
	"github.com/Neumenon/elucidator/errs"
	"github.com/Neumenon/elucidator/geom"
	"github.com/Neumenon/elucidator/session"
)

// SessionHandle, ErrorHandle, and DesignationHandle are the three opaque
// 4-byte handle structs of §6. Each wraps a single u32 id into its own
// table's namespace; a SessionHandle and an ErrorHandle with the same
// numeric Id are unrelated.
type SessionHandle struct{ ID uint32 }
type ErrorHandle struct{ ID uint32 }
type DesignationHandle struct{ ID uint32 }

// Backend is the ABI backend selector enum.
type Backend uint8

const (
	BackendBulkScan Backend = iota
	BackendRTree
)

func (b Backend) toSessionBackend() session.Backend {
	if b == BackendRTree {
		return session.RTree4D
	}
	return session.BulkScan
}

// Status is the ABI status enum, re-exported from errs so the core and
// the ABI surface never drift out of sync.
type Status = errs.Status

const (
	StatusOK                    = errs.StatusOK
	StatusUnexpectedChar         = errs.StatusUnexpectedChar
	StatusUnexpectedEof          = errs.StatusUnexpectedEof
	StatusInvalidIdent           = errs.StatusInvalidIdent
	StatusUnknownDtype           = errs.StatusUnknownDtype
	StatusStringAsArray          = errs.StatusStringAsArray
	StatusZeroOrNegativeArrayLen = errs.StatusZeroOrNegativeArrayLen
	StatusDuplicateMember        = errs.StatusDuplicateMember
	StatusTrailingGarbage        = errs.StatusTrailingGarbage
	StatusDesignationMismatch    = errs.StatusDesignationMismatch
	StatusDuplicateDesignation   = errs.StatusDuplicateDesignation
	StatusUnknownDesignation     = errs.StatusUnknownDesignation
	StatusUnknownSession         = errs.StatusUnknownSession
	StatusInvalidBoundingBox     = errs.StatusInvalidBoundingBox
	StatusInvalidEpsilon         = errs.StatusInvalidEpsilon
	StatusInvalidBlobLength      = errs.StatusInvalidBlobLength
	StatusTruncatedBlob          = errs.StatusTruncatedBlob
	StatusTrailingBytes          = errs.StatusTrailingBytes
	StatusPoisonedState          = errs.StatusPoisonedState
	StatusOutOfMemory            = errs.StatusOutOfMemory
)

// Point is the ABI Point struct: four f64 fields in order x, y, z, t.
type Point struct {
	X, Y, Z, T float64
}

func (p Point) toGeom() geom.Point {
	return geom.Point{X: p.X, Y: p.Y, Z: p.Z, T: p.T}
}

// BoundingBox is the ABI BoundingBox struct: two Point fields, min and max.
type BoundingBox struct {
	Min, Max Point
}

// BufNode is a singly linked list node owning one byte buffer, the ABI
// shape query results are handed back in. The caller owns every node
// returned and must release the whole list via FreeBufNodes.
type BufNode struct {
	Buf  []byte
	Next *BufNode
}

// buildBufList converts owned blob copies into a BufNode chain.
func buildBufList(blobs [][]byte) *BufNode {
	var head, tail *BufNode
	for _, b := range blobs {
		node := &BufNode{Buf: b}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node
	}
	return head
}

// FreeBufNodes walks the linked list releasing each node's buffer and the
// node itself. In Go this is a no-op beyond dropping references (the
// garbage collector reclaims the memory); the function exists so the ABI
// contract — every allocation has a matching free routine — has a visible,
// callable implementation on the Go side for a cgo shim to invoke.
func FreeBufNodes(head *BufNode) {
	for n := head; n != nil; {
		next := n.Next
		n.Buf = nil
		n.Next = nil
		n = next
	}
}
