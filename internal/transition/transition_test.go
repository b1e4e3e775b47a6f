package transition

import (
	"testing"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

func baseContext() vcp.VCPContext {
	return vcp.VCPContext{
		VCPVersion:   "3.1",
		ProfileID:    "test-user",
		Constitution: vcp.ConstitutionReference{ID: "test", Version: "1.0", Persona: vcp.PersonaMuse},
	}
}

func dim(value string, intensity int) *vcp.PersonalDimension {
	return &vcp.PersonalDimension{Value: value, Intensity: intensity}
}

func TestDetectIdenticalContexts(t *testing.T) {
	a := baseContext()
	b := baseContext()
	result := Detect(&a, &b)
	if result.Severity != SeverityNone {
		t.Errorf("severity = %s, want none", result.Severity)
	}
	if len(result.Changes) != 0 {
		t.Errorf("changes = %v, want empty", result.Changes)
	}
	if result.AffectsSafety {
		t.Error("affects_safety = true for identical contexts")
	}
}

func TestDetectEmergencyShortCircuit(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*vcp.VCPContext)
	}{
		{"occasion keyword", func(c *vcp.VCPContext) {
			c.PrivateContext = map[string]any{"occasion": "medical emergency at home"}
		}},
		{"top-level occasion", func(c *vcp.VCPContext) {
			c.Occasion = "Emergency visit"
		}},
		{"environment dangerous", func(c *vcp.VCPContext) {
			c.PrivateContext = map[string]any{"environment": "dangerous neighborhood tonight"}
		}},
		{"environment fire", func(c *vcp.VCPContext) {
			c.Environment = "fire alarm going off"
		}},
		{"constraint key keyword", func(c *vcp.VCPContext) {
			c.Constraints = map[string]bool{"noise_enforcement": true}
		}},
		{"constraint emergency key", func(c *vcp.VCPContext) {
			c.Constraints = map[string]bool{"emergency_contact_only": true}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			oldCtx := baseContext()
			// Make the old context wildly different; the short circuit must
			// still win and report only the synthetic change.
			oldCtx.Constitution.Persona = vcp.PersonaSentinel
			newCtx := baseContext()
			tc.mutate(&newCtx)

			result := Detect(&oldCtx, &newCtx)
			if result.Severity != SeverityEmergency {
				t.Fatalf("severity = %s, want emergency", result.Severity)
			}
			if !result.AffectsSafety {
				t.Error("affects_safety = false")
			}
			if len(result.Changes) != 1 {
				t.Fatalf("changes = %v, want single synthetic entry", result.Changes)
			}
			change, ok := result.Changes["emergency"]
			if !ok || change.Old != false || change.New != true {
				t.Errorf("synthetic change = %+v", change)
			}
		})
	}
}

func TestDetectConstraintsChange(t *testing.T) {
	oldCtx := baseContext()
	oldCtx.Constraints = map[string]bool{"time_limited": true}
	newCtx := baseContext()
	newCtx.Constraints = map[string]bool{"time_limited": true, "noise_restricted": true}

	result := Detect(&oldCtx, &newCtx)
	if result.Severity != SeverityMajor {
		t.Errorf("severity = %s, want major", result.Severity)
	}
	if !result.AffectsSafety {
		t.Error("constraints change should affect safety")
	}
	if _, ok := result.Changes["constraints"]; !ok {
		t.Errorf("changes = %v, missing constraints entry", result.Changes)
	}
}

func TestDetectConstraintsNilVsEmpty(t *testing.T) {
	oldCtx := baseContext()
	newCtx := baseContext()
	newCtx.Constraints = map[string]bool{}
	if result := Detect(&oldCtx, &newCtx); result.Severity != SeverityNone {
		t.Errorf("nil vs empty constraints severity = %s, want none", result.Severity)
	}
}

func TestDetectPersonaChange(t *testing.T) {
	oldCtx := baseContext()
	newCtx := baseContext()
	newCtx.Constitution.Persona = vcp.PersonaSentinel

	result := Detect(&oldCtx, &newCtx)
	if result.Severity != SeverityMajor {
		t.Errorf("severity = %s, want major", result.Severity)
	}
	if result.AffectsSafety {
		t.Error("persona change alone should not affect safety")
	}
	change, ok := result.Changes["persona"]
	if !ok || change.Old != vcp.PersonaMuse || change.New != vcp.PersonaSentinel {
		t.Errorf("persona change = %+v", change)
	}
}

func TestDetectNewPersonalState(t *testing.T) {
	oldCtx := baseContext()

	one := baseContext()
	one.PersonalState = &vcp.PersonalState{CognitiveState: dim("focused", 4)}
	if result := Detect(&oldCtx, &one); result.Severity != SeverityMinor {
		t.Errorf("one new dimension severity = %s, want minor", result.Severity)
	}

	three := baseContext()
	three.PersonalState = &vcp.PersonalState{
		CognitiveState: dim("focused", 4),
		EmotionalTone:  dim("calm", 2),
		EnergyLevel:    dim("rested", 4),
	}
	if result := Detect(&oldCtx, &three); result.Severity != SeverityMajor {
		t.Errorf("three new dimensions severity = %s, want major", result.Severity)
	}

	empty := baseContext()
	empty.PersonalState = &vcp.PersonalState{}
	if result := Detect(&oldCtx, &empty); result.Severity != SeverityNone {
		t.Errorf("empty new state severity = %s, want none", result.Severity)
	}
}

func TestDetectPersonalStateDiffs(t *testing.T) {
	oldCtx := baseContext()
	oldCtx.PersonalState = &vcp.PersonalState{
		CognitiveState: dim("focused", 3),
		EnergyLevel:    dim("steady", 3),
	}

	// Single small change is minor.
	minor := baseContext()
	minor.PersonalState = &vcp.PersonalState{
		CognitiveState: dim("foggy", 3),
		EnergyLevel:    dim("steady", 3),
	}
	result := Detect(&oldCtx, &minor)
	if result.Severity != SeverityMinor {
		t.Errorf("single value change severity = %s, want minor", result.Severity)
	}
	if _, ok := result.Changes[vcp.DimCognitiveState]; !ok {
		t.Errorf("changes = %v, missing cognitive_state", result.Changes)
	}

	// Intensity jump of 3+ on any dimension is major.
	jump := baseContext()
	jump.PersonalState = &vcp.PersonalState{
		CognitiveState: dim("focused", 3),
		EnergyLevel:    dim("steady", 3),
		PerceivedUrgency: &vcp.PersonalDimension{
			Value: "pressured", Intensity: 5,
		},
	}
	oldJump := baseContext()
	oldJump.PersonalState = &vcp.PersonalState{
		CognitiveState:   dim("focused", 3),
		EnergyLevel:      dim("steady", 3),
		PerceivedUrgency: dim("unhurried", 2),
	}
	if result := Detect(&oldJump, &jump); result.Severity != SeverityMajor {
		t.Errorf("intensity jump severity = %s, want major", result.Severity)
	}

	// Three changed dimensions are major even with small deltas.
	wide := baseContext()
	wide.PersonalState = &vcp.PersonalState{
		CognitiveState: dim("foggy", 3),
		EnergyLevel:    dim("tired", 3),
		EmotionalTone:  dim("tense", 3),
	}
	if result := Detect(&oldCtx, &wide); result.Severity != SeverityMajor {
		t.Errorf("three-dimension change severity = %s, want major", result.Severity)
	}
}

func TestDetectMissingIntensityDefaultsToThree(t *testing.T) {
	oldCtx := baseContext()
	oldCtx.PersonalState = &vcp.PersonalState{CognitiveState: dim("focused", 3)}
	newCtx := baseContext()
	newCtx.PersonalState = &vcp.PersonalState{CognitiveState: &vcp.PersonalDimension{Value: "focused"}}

	result := Detect(&oldCtx, &newCtx)
	if result.Severity != SeverityNone {
		t.Errorf("severity = %s, want none when only default intensity differs", result.Severity)
	}
}

func TestDetectBodySignalsSafety(t *testing.T) {
	oldCtx := baseContext()
	oldCtx.PersonalState = &vcp.PersonalState{BodySignals: dim("fine", 1)}

	pain := baseContext()
	pain.PersonalState = &vcp.PersonalState{BodySignals: dim("pain", 5)}
	result := Detect(&oldCtx, &pain)
	if severityRank[result.Severity] < severityRank[SeverityMajor] {
		t.Errorf("pain:5 severity = %s, want at least major", result.Severity)
	}
	if !result.AffectsSafety {
		t.Error("pain:5 should affect safety")
	}

	// pain:4 forces major and the safety flag.
	pain4 := baseContext()
	pain4.PersonalState = &vcp.PersonalState{BodySignals: dim("pain", 4)}
	result = Detect(&oldCtx, &pain4)
	if result.Severity != SeverityMajor || !result.AffectsSafety {
		t.Errorf("pain:4 = %s/safety=%v, want major/true", result.Severity, result.AffectsSafety)
	}

	// unwell:4 raises the safety flag but does not force major on its own.
	oldUnwell := baseContext()
	oldUnwell.PersonalState = &vcp.PersonalState{BodySignals: dim("tired", 4)}
	unwell := baseContext()
	unwell.PersonalState = &vcp.PersonalState{BodySignals: dim("unwell", 4)}
	result = Detect(&oldUnwell, &unwell)
	if !result.AffectsSafety {
		t.Error("unwell:4 should affect safety")
	}
	if result.Severity != SeverityMinor {
		t.Errorf("unwell:4 single change severity = %s, want minor", result.Severity)
	}

	// unwell:5 forces major.
	unwell5 := baseContext()
	unwell5.PersonalState = &vcp.PersonalState{BodySignals: dim("unwell", 5)}
	result = Detect(&oldUnwell, &unwell5)
	if result.Severity != SeverityMajor || !result.AffectsSafety {
		t.Errorf("unwell:5 = %s/safety=%v, want major/true", result.Severity, result.AffectsSafety)
	}
}

func TestDetectSeverityPromotion(t *testing.T) {
	// Persona change (major) plus a minor state change stays major.
	oldCtx := baseContext()
	oldCtx.PersonalState = &vcp.PersonalState{EnergyLevel: dim("steady", 3)}
	newCtx := baseContext()
	newCtx.Constitution.Persona = vcp.PersonaAnchor
	newCtx.PersonalState = &vcp.PersonalState{EnergyLevel: dim("tired", 3)}

	result := Detect(&oldCtx, &newCtx)
	if result.Severity != SeverityMajor {
		t.Errorf("severity = %s, want major", result.Severity)
	}
	if _, ok := result.Changes["persona"]; !ok {
		t.Error("persona change missing")
	}
	if _, ok := result.Changes[vcp.DimEnergyLevel]; !ok {
		t.Error("energy_level change missing")
	}
}

func TestMaxSeverity(t *testing.T) {
	if got := maxSeverity(SeverityMinor, SeverityMajor); got != SeverityMajor {
		t.Errorf("maxSeverity(minor, major) = %s", got)
	}
	if got := maxSeverity(SeverityEmergency, SeverityNone); got != SeverityEmergency {
		t.Errorf("maxSeverity(emergency, none) = %s", got)
	}
	if got := maxSeverity(SeverityNone, SeverityNone); got != SeverityNone {
		t.Errorf("maxSeverity(none, none) = %s", got)
	}
}
