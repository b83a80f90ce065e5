package capi

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/Neumenon/elucidator/spec"
)

// PrintSession implements print_session: a colored terminal dump of a
// session's registered designations in canonical form, for debugging
// a foreign caller's state from a Go-side console. Grounded on
// teranos-QNTX's pterm-colored error/context rendering (ats/parser/error.go).
func (a *API) PrintSession(h SessionHandle) {
	s, err := a.sessions.SessionForDebug(h.ID)
	if err != nil {
		pterm.Error.Printfln("session %d: %s", h.ID, err)
		return
	}

	pterm.DefaultSection.Printfln("session %d", h.ID)
	designations := s.Registry().Designations()
	if len(designations) == 0 {
		pterm.Println(pterm.LightCyan("(no designations registered)"))
		return
	}
	for _, d := range designations {
		sp, _ := s.Registry().Get(d)
		pterm.Printfln("  %s %s", pterm.Green("+"), sp.Canonical())
	}
}

// PrintDesignation implements print_designation: a colored rendering of a
// single registered Specification.
func (a *API) PrintDesignation(h SessionHandle, designation string) {
	s, err := a.sessions.SessionForDebug(h.ID)
	if err != nil {
		pterm.Error.Printfln("session %d: %s", h.ID, err)
		return
	}
	sp, err := s.Registry().Get(designation)
	if err != nil {
		pterm.Error.Printfln("designation %q: %s", designation, err)
		return
	}
	printSpec(sp)
}

func printSpec(sp *spec.Specification) {
	pterm.DefaultSection.Printfln("%s", sp.Designation)
	for _, m := range sp.Members {
		pterm.Printfln("  %s %s", pterm.Yellow(m.Identifier+":"), m.DType.String()+m.Array.String())
	}
	if sp.HasContext {
		pterm.Printfln("  %s %s", pterm.LightCyan("context:"), fmt.Sprintf("%q", sp.Context))
	}
	pterm.Printfln("  %s %s", pterm.LightCyan("digest:"), canonicalDigest(sp))
}

// canonicalDigest returns a SHA-256 hex digest of a Specification's
// canonical text, an operator-convenience identity check for "is this the
// designation I think it is" across two debug dumps. Grounded on
// Neumenon/glyph's Schema.Hash / ComputeHash (schema.go), which hashes a
// schema's canonical text the same way.
func canonicalDigest(sp *spec.Specification) string {
	sum := sha256.Sum256([]byte(sp.Canonical()))
	return hex.EncodeToString(sum[:])
}
