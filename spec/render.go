package spec

import "strings"

// Canonical renders s back into specification text that Parse would accept
// and that round-trips to an equal Specification. Non-core: a debugging and
// CLI-display convenience, not used by the parser or codec.
func (s *Specification) Canonical() string {
	var b strings.Builder
	b.WriteString(s.Designation)
	b.WriteByte('(')
	for i, m := range s.Members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}
	b.WriteByte(')')
	if s.HasContext {
		b.WriteString(" (\"")
		b.WriteString(escapeContext(s.Context))
		b.WriteString("\")")
	}
	b.WriteByte(';')
	return b.String()
}

// String satisfies fmt.Stringer with the same rendering as Canonical.
func (s *Specification) String() string {
	return s.Canonical()
}

func escapeContext(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
