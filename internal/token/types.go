// Package token implements the CSM-1 wire codec: a line-oriented compact
// encoding of a context for transmission, plus the tolerant parser,
// display formatting, and the transmission summary. Private-context
// values never appear in any output of this package; only category tags
// derived from key prefixes do.
package token

import "github.com/portablecontext/vcp-engine/internal/vcp"

// #region markers

// PrivateMarker tags withheld private categories on the S line.
const PrivateMarker = "🔒"

// SharedMarker tags explicitly shared fields in display output.
const SharedMarker = "✓"

// WireSeparator joins CSM-1 lines into a single-line wire token.
const WireSeparator = "‖"

// #endregion markers

// #region symbol-tables

// PersonalStateEmoji maps the five dimension keys to their R-line symbols.
var PersonalStateEmoji = map[string]string{
	vcp.DimCognitiveState:   "🧠",
	vcp.DimEmotionalTone:    "💭",
	vcp.DimEnergyLevel:      "🔋",
	vcp.DimPerceivedUrgency: "⚡",
	vcp.DimBodySignals:      "🩺",
}

// ProsaicEmoji maps the legacy four-axis dimensions to their symbols.
var ProsaicEmoji = map[string]string{
	"urgency":   "⚡",
	"health":    "💊",
	"cognitive": "🧩",
	"affect":    "💭",
}

// ConstraintEmoji maps the seven constraint flags to X-line shorthand codes.
var ConstraintEmoji = map[string]string{
	"noise_restricted":      "🔇",
	"budget_limited":        "💰lim",
	"energy_variable":       "⚡var",
	"time_limited":          "⏰lim",
	"schedule_irregular":    "📅irr",
	"mobility_limited":      "🚶lim",
	"health_considerations": "💊aware",
}

// constraintOrder fixes the X and F line ordering of constraint flags.
var constraintOrder = []string{
	"noise_restricted",
	"budget_limited",
	"energy_variable",
	"time_limited",
	"schedule_irregular",
	"mobility_limited",
	"health_considerations",
}

// TrackedFlags are the constraint flags carried on the F line.
var TrackedFlags = []string{
	"time_limited",
	"noise_restricted",
	"budget_limited",
	"energy_variable",
	"schedule_irregular",
}

// PreferenceEmoji maps portable-preference values to X-line shorthand codes.
var PreferenceEmoji = map[string]string{
	"quiet_preferred":   "🔇quiet",
	"silent_required":   "🔕silent",
	"low":               "💰low",
	"medium":            "💰med",
	"high":              "💰high",
	"free_only":         "🆓",
	"morning":           "🌅am",
	"evening":           "🌙pm",
	"flexible_schedule": "📅flex",
}

// preferenceKeys fixes which preference fields contribute X-line codes and
// their ordering. session_length is handled separately with the ⏱️ prefix.
var preferenceKeys = []string{"noise_mode", "budget_range"}

// #endregion symbol-tables

// #region summary-types

// TransmissionSummary describes what a token exposes: field names sent,
// private keys withheld, and signals that influence behavior without
// being transmitted verbatim.
type TransmissionSummary struct {
	Transmitted []string
	Withheld    []string
	Influencing []string
}

// LegendEntry pairs a token symbol with its human-readable meaning.
type LegendEntry struct {
	Emoji   string
	Meaning string
}

// #endregion summary-types
