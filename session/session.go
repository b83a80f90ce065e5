// Package session composes a designation registry and a spatiotemporal
// index under one identity, providing the insert/query operations that
// validate blob length and bounding boxes before touching the index.
package session

import (
	"sync"

	"github.com/Neumenon/elucidator/codec"
	"github.com/Neumenon/elucidator/errs"
	"github.com/Neumenon/elucidator/geom"
	"github.com/Neumenon/elucidator/index"
	"github.com/Neumenon/elucidator/spec"
)

// Backend selects the spatiotemporal index implementation a Session uses.
type Backend uint8

const (
	BulkScan Backend = iota
	RTree4D
)

// Session is `{ id, registry, index }` from §3: a registry of
// specifications plus a spatiotemporal index of inserted blobs, guarded by
// a single mutex per §5 ("insert and query on a single session are
// mutually exclusive"). The process-wide id->*Session mapping lives in the
// handle package, one layer up; Session itself knows nothing of handles.
type Session struct {
	mu       sync.Mutex
	registry *spec.Registry
	index    index.Backend
}

// New creates a Session with an empty registry and the chosen backend.
func New(backend Backend) *Session {
	var b index.Backend
	switch backend {
	case RTree4D:
		b = index.NewRTree()
	default:
		b = index.NewBulkScan()
	}
	return &Session{registry: spec.NewRegistry(), index: b}
}

// AddSpec registers a specification built from designation plus a
// member-list text (the parser's reduced form, §4.1's
// "IDENT : DTYPE (, IDENT : DTYPE)*") — the shape add_spec's signature
// implies: the designation is supplied by the caller, separately from the
// text describing only the members.
func (s *Session) AddSpec(designation, memberText string) error {
	members, err := spec.ParseMembers(memberText)
	if err != nil {
		return err
	}
	parsed, err := spec.NewSpecification(designation, members, "")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Add(designation, parsed)
}

// AddFullSpec registers a specification parsed from full designation(...)
// text, for callers (e.g. the CLI) that already have the whole clause
// rather than a designation and a bare member list.
func (s *Session) AddFullSpec(text string) error {
	parsed, err := spec.Parse(text)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Add(parsed.Designation, parsed)
}

// InsertMetadata validates min/max into a bounding box, checks designation
// is registered, checks blob length is at least the minimum blob length of
// that designation's specification (codec.ValidBlobLength; a longer blob is
// not checked against its length prefixes), and stores an owned copy in
// the index.
func (s *Session) InsertMetadata(min, max geom.Point, designation string, blob []byte) error {
	bbox, err := geom.NewBoundingBox(min, max)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sp, err := s.registry.Get(designation)
	if err != nil {
		return err
	}
	if !codec.ValidBlobLength(sp, len(blob)) {
		return errs.New(errs.InvalidBlobLength,
			"blob of length %d is too short for designation %q (minimum %d)",
			len(blob), designation, codec.MinBlobLength(sp))
	}

	s.index.Insert(bbox, designation, blob)
	return nil
}

// QueryMetadata validates min/max and epsilon, checks designation is
// registered, and returns the matching owned blob copies from the index.
// An empty result is success, not an error.
func (s *Session) QueryMetadata(min, max geom.Point, designation string, epsilon float64) ([][]byte, error) {
	if epsilon < 0 {
		return nil, errs.New(errs.InvalidEpsilon, "epsilon must be >= 0, got %g", epsilon)
	}
	bbox, err := geom.NewBoundingBox(min, max)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.registry.Get(designation); err != nil {
		return nil, err
	}
	return s.index.Query(bbox, designation, epsilon), nil
}

// Registry exposes the session's designation registry for read-only
// inspection (debug printers, CLI listing).
func (s *Session) Registry() *spec.Registry {
	return s.registry
}
