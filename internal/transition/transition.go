package transition

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region emergency

var (
	emergencyOccasionKeywords    = []string{"emergency"}
	emergencyEnvironmentKeywords = []string{"dangerous", "fire"}
	emergencyConstraintKeywords  = []string{"emergency", "enforcement"}
)

// occasionText resolves the occasion description, preferring the private
// section over the top-level field.
func occasionText(ctx *vcp.VCPContext) string {
	if v, ok := ctx.PrivateContext["occasion"].(string); ok && v != "" {
		return v
	}
	return ctx.Occasion
}

func environmentText(ctx *vcp.VCPContext) string {
	if v, ok := ctx.PrivateContext["environment"].(string); ok && v != "" {
		return v
	}
	return ctx.Environment
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// hasEmergencyIndicators scans the new context's occasion, environment,
// and serialized constraints for emergency keywords. The constraint scan
// covers key names too, so a key like "noise_enforcement" triggers it.
func hasEmergencyIndicators(ctx *vcp.VCPContext) bool {
	if containsAny(occasionText(ctx), emergencyOccasionKeywords) {
		return true
	}
	if containsAny(environmentText(ctx), emergencyEnvironmentKeywords) {
		return true
	}
	return containsAny(serializeConstraints(ctx.Constraints), emergencyConstraintKeywords)
}

// serializeConstraints renders a constraints map deterministically;
// encoding/json sorts map keys.
func serializeConstraints(constraints map[string]bool) string {
	if constraints == nil {
		constraints = map[string]bool{}
	}
	b, err := json.Marshal(constraints)
	if err != nil {
		return fmt.Sprintf("%v", constraints)
	}
	return string(b)
}

// #endregion emergency

// #region personal-state

func dimValue(d *vcp.PersonalDimension) string {
	if d == nil {
		return ""
	}
	return d.Value
}

func dimIntensity(d *vcp.PersonalDimension) int {
	if d == nil {
		return vcp.DefaultIntensity
	}
	return d.IntensityOrDefault()
}

// detectPersonalStateTransition compares the five dimensions of two
// personal states. A newly appearing state counts each declared dimension
// as a change; severity scales with how many dimensions moved, with
// concerning body signals and large intensity jumps forcing major.
func detectPersonalStateTransition(oldState, newState *vcp.PersonalState) (Severity, map[string]Change) {
	changes := make(map[string]Change)

	if oldState == nil && newState == nil {
		return SeverityNone, changes
	}
	if oldState == nil {
		for _, key := range vcp.DimensionOrder {
			if dim := newState.Dimension(key); dim != nil {
				changes[key] = Change{Old: nil, New: dim}
			}
		}
		switch {
		case len(changes) >= 3:
			return SeverityMajor, changes
		case len(changes) > 0:
			return SeverityMinor, changes
		default:
			return SeverityNone, changes
		}
	}

	for _, key := range vcp.DimensionOrder {
		oldDim := oldState.Dimension(key)
		newDim := newState.Dimension(key)
		if dimValue(oldDim) != dimValue(newDim) || dimIntensity(oldDim) != dimIntensity(newDim) {
			changes[key] = Change{Old: oldDim, New: newDim}
		}
	}
	if len(changes) == 0 {
		return SeverityNone, changes
	}

	severity := SeverityNone

	if newBody := newState.Dimension(vcp.DimBodySignals); newBody != nil {
		intensity := newBody.IntensityOrDefault()
		if (newBody.Value == "pain" && intensity >= 4) || (newBody.Value == "unwell" && intensity >= 5) {
			severity = SeverityMajor
		}
	}

	for _, key := range vcp.DimensionOrder {
		delta := dimIntensity(newState.Dimension(key)) - dimIntensity(oldState.Dimension(key))
		if delta < 0 {
			delta = -delta
		}
		if delta >= 3 {
			severity = SeverityMajor
			break
		}
	}

	if severity == SeverityNone {
		if len(changes) >= 3 {
			severity = SeverityMajor
		} else {
			severity = SeverityMinor
		}
	}
	return severity, changes
}

// #endregion personal-state

// #region detect

// Detect compares two context snapshots and classifies the change. The
// emergency check on the new context short-circuits everything else;
// otherwise constraints, persona, and personal-state checks each
// contribute changes and the severities are promoted to the maximum.
func Detect(oldCtx, newCtx *vcp.VCPContext) Result {
	if hasEmergencyIndicators(newCtx) {
		return Result{
			Severity:      SeverityEmergency,
			Changes:       map[string]Change{"emergency": {Old: false, New: true}},
			AffectsSafety: true,
		}
	}

	changes := make(map[string]Change)
	severity := SeverityNone
	affectsSafety := false

	oldConstraints := serializeConstraints(oldCtx.Constraints)
	newConstraints := serializeConstraints(newCtx.Constraints)
	if oldConstraints != newConstraints {
		changes["constraints"] = Change{Old: oldCtx.Constraints, New: newCtx.Constraints}
		severity = SeverityMajor
		affectsSafety = true
	}

	if oldCtx.Constitution.Persona != newCtx.Constitution.Persona {
		changes["persona"] = Change{Old: oldCtx.Constitution.Persona, New: newCtx.Constitution.Persona}
		severity = SeverityMajor
	}

	stateSeverity, stateChanges := detectPersonalStateTransition(oldCtx.PersonalState, newCtx.PersonalState)
	for key, change := range stateChanges {
		changes[key] = change
	}
	severity = maxSeverity(severity, stateSeverity)

	// Concerning body signals raise the safety flag even when severity
	// stays below emergency.
	if newBody := newCtx.PersonalState.Dimension(vcp.DimBodySignals); newBody != nil {
		if (newBody.Value == "pain" || newBody.Value == "unwell") && newBody.IntensityOrDefault() >= 4 {
			affectsSafety = true
		}
	}

	if len(changes) == 0 {
		return Result{Severity: SeverityNone, Changes: changes, AffectsSafety: false}
	}
	return Result{Severity: severity, Changes: changes, AffectsSafety: affectsSafety}
}

// #endregion detect
