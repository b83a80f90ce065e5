package spec

import "github.com/Neumenon/elucidator/errs"

// ValidIdentifier reports whether s is a legal member or designation
// identifier: non-empty, ASCII, starting with a letter, and containing only
// letters, digits, and underscores thereafter.
func ValidIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 {
			return false
		}
	}
	c0 := s[0]
	if !((c0 >= 'a' && c0 <= 'z') || (c0 >= 'A' && c0 <= 'Z')) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if !isAlpha && !isDigit && c != '_' {
			return false
		}
	}
	return true
}

// ValidateMembers checks a member list for the constraints the text parser
// already enforces during parsing, so specifications assembled
// programmatically (not via Parse) get the same guarantees: valid
// identifiers, no duplicates, no arrayed strings, positive fixed-array
// lengths.
func ValidateMembers(members []MemberSpec) error {
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if !ValidIdentifier(m.Identifier) {
			return errs.New(errs.InvalidIdent, "%q is not a valid identifier", m.Identifier)
		}
		if seen[m.Identifier] {
			return errs.New(errs.DuplicateMember, "member %q is declared more than once", m.Identifier)
		}
		seen[m.Identifier] = true

		if m.DType == StringType && m.Array.Kind != Scalar {
			return errs.New(errs.StringAsArray, "member %q: string cannot be declared as an array", m.Identifier)
		}
		if m.Array.Kind == Fixed && m.Array.Len <= 0 {
			return errs.New(errs.ZeroOrNegativeArrayLen, "member %q: fixed array length must be greater than zero", m.Identifier)
		}
	}
	return nil
}

// NewSpecification builds a Specification programmatically, bypassing the
// text parser, applying the same identifier and member-list validation
// Parse applies to text input. Grounded on original_source's constructor
// path (representable.rs / validating.rs), which likewise validates a
// caller-assembled member list rather than only ever parsing it from text.
func NewSpecification(designation string, members []MemberSpec, context string) (*Specification, error) {
	if !ValidIdentifier(designation) {
		return nil, errs.New(errs.InvalidIdent, "%q is not a valid designation", designation)
	}
	if err := ValidateMembers(members); err != nil {
		return nil, err
	}

	cp := make([]MemberSpec, len(members))
	copy(cp, members)

	return &Specification{
		Designation: designation,
		Members:     cp,
		HasContext:  context != "",
		Context:     context,
	}, nil
}
