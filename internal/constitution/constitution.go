// Package constitution renders compact constitution codes such as
// "A3+W+E" from a constitution reference, for badges and comparison
// views. Missing parts render as "?" rather than failing.
package constitution

import (
	"strconv"
	"strings"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region initials

// PersonaInitials maps each persona to its code initial.
var PersonaInitials = map[vcp.Persona]string{
	vcp.PersonaAmbassador: "A",
	vcp.PersonaGodparent:  "G",
	vcp.PersonaMuse:       "M",
	vcp.PersonaSentinel:   "Se",
	vcp.PersonaAnchor:     "An",
	vcp.PersonaNanny:      "N",
	vcp.PersonaSteward:    "St",
}

// ScopeInitials maps each scope to its code initial.
var ScopeInitials = map[vcp.Scope]string{
	vcp.ScopeWork:         "W",
	vcp.ScopeEducation:    "E",
	vcp.ScopeCreativity:   "C",
	vcp.ScopeHealth:       "H",
	vcp.ScopePrivacy:      "P",
	vcp.ScopeFamily:       "F",
	vcp.ScopeFinance:      "Fi",
	vcp.ScopeSocial:       "So",
	vcp.ScopeLegal:        "L",
	vcp.ScopeSafety:       "Sa",
	vcp.ScopeStewardship:  "Sw",
	vcp.ScopeCommerce:     "Co",
	vcp.ScopeCompliance:   "Cm",
	vcp.ScopeEthics:       "Et",
	vcp.ScopeCoordination: "Cd",
	vcp.ScopeTransparency: "Tr",
	vcp.ScopeGovernance:   "Go",
	vcp.ScopeEpistemic:    "Ep",
	vcp.ScopeAccuracy:     "Ac",
}

// #endregion initials

// #region code

// Code renders a compact constitution code: persona initial, adherence,
// then "+"-joined scope initials. Unknown or missing parts become "?".
//
//	{muse, 3, [creativity health privacy]} → "M3+C+H+P"
func Code(ref vcp.ConstitutionReference) string {
	persona := "?"
	if ref.Persona != "" {
		if initial, ok := PersonaInitials[ref.Persona]; ok {
			persona = initial
		}
	}

	adherence := "?"
	if ref.Adherence != 0 {
		adherence = strconv.Itoa(ref.Adherence)
	}

	scopes := "?"
	if len(ref.Scopes) > 0 {
		initials := make([]string, len(ref.Scopes))
		for i, scope := range ref.Scopes {
			initial, ok := ScopeInitials[scope]
			if !ok {
				initial = "?"
			}
			initials[i] = initial
		}
		scopes = strings.Join(initials, "+")
	}

	return persona + adherence + "+" + scopes
}

// AppliesTo reports whether a constitution covers a scope. A reference
// with no scopes covers everything.
func AppliesTo(ref vcp.ConstitutionReference, scope vcp.Scope) bool {
	if len(ref.Scopes) == 0 {
		return true
	}
	for _, s := range ref.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// #endregion code
