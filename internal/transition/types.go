// Package transition classifies the change between two context snapshots
// into a severity tier, so callers can decide whether an adaptation is
// cosmetic, worth re-planning, or an immediate safety concern.
package transition

// #region severity

// Severity is the classified magnitude of a context change.
type Severity string

const (
	SeverityNone      Severity = "none"
	SeverityMinor     Severity = "minor"
	SeverityMajor     Severity = "major"
	SeverityEmergency Severity = "emergency"
)

// severityRank orders severities for promotion; higher wins.
var severityRank = map[Severity]int{
	SeverityNone:      0,
	SeverityMinor:     1,
	SeverityMajor:     2,
	SeverityEmergency: 3,
}

// maxSeverity returns the stronger of two severities.
func maxSeverity(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// #endregion severity

// #region result

// Change records one field's old and new value.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Result is the outcome of comparing two context snapshots.
type Result struct {
	Severity      Severity          `json:"severity"`
	Changes       map[string]Change `json:"changes"`
	AffectsSafety bool              `json:"affects_safety"`
}

// #endregion result
