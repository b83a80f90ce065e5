package spec

import (
	"sync"

	"github.com/Neumenon/elucidator/errs"
)

// Registry is an append-only, designation-keyed store of Specifications.
// It is safe for concurrent use; grounded on Neumenon/glyph's
// RWMutex-guarded pool/context registries (pool.go, schema_context.go).
type Registry struct {
	mu    sync.RWMutex
	byDes map[string]*Specification
	order []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byDes: make(map[string]*Specification)}
}

// Add registers s under designation. designation and s.Designation are two
// separate values, per §4.3: they mismatching (the caller's argument
// disagrees with the designation embedded in s) is DesignationMismatch.
// Otherwise, if designation is already registered, Add unconditionally
// fails with DuplicateDesignation — even a byte-identical re-add — per
// §4.3's "fails with DuplicateDesignation if already present".
func (r *Registry) Add(designation string, s *Specification) error {
	if err := ValidateMembers(s.Members); err != nil {
		return err
	}
	if !ValidIdentifier(designation) {
		return errs.New(errs.InvalidIdent, "%q is not a valid designation", designation)
	}
	if designation != s.Designation {
		return errs.New(errs.DesignationMismatch,
			"designation argument %q does not match specification's designation %q", designation, s.Designation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byDes[designation]; ok {
		return errs.New(errs.DuplicateDesignation, "designation %q is already registered", designation)
	}

	cp := *s
	r.byDes[designation] = &cp
	r.order = append(r.order, designation)
	return nil
}

// Get returns the Specification registered under designation.
func (r *Registry) Get(designation string) (*Specification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byDes[designation]
	if !ok {
		return nil, errs.New(errs.UnknownDesignation, "no specification registered for designation %q", designation)
	}
	return s, nil
}

// Designations returns the registered designations in insertion order.
func (r *Registry) Designations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered designations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
