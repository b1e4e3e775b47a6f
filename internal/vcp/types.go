// Package vcp defines the data model for the portable context protocol:
// the root context aggregate, personal-state dimensions, decay policies,
// constitution references, and platform consent records. All types are
// value types; transforms elsewhere in the engine return new values
// rather than mutating in place.
package vcp

import (
	"sort"
	"strings"
	"time"
)

// #region constitution

// Persona identifies the behavioral persona a constitution binds.
type Persona string

const (
	PersonaAmbassador Persona = "ambassador"
	PersonaGodparent  Persona = "godparent"
	PersonaMuse       Persona = "muse"
	PersonaSentinel   Persona = "sentinel"
	PersonaAnchor     Persona = "anchor"
	PersonaNanny      Persona = "nanny"
	PersonaSteward    Persona = "steward"
)

// Scope names a domain a constitution applies to.
type Scope string

const (
	ScopeWork         Scope = "work"
	ScopeEducation    Scope = "education"
	ScopeCreativity   Scope = "creativity"
	ScopeHealth       Scope = "health"
	ScopePrivacy      Scope = "privacy"
	ScopeFamily       Scope = "family"
	ScopeFinance      Scope = "finance"
	ScopeSocial       Scope = "social"
	ScopeLegal        Scope = "legal"
	ScopeSafety       Scope = "safety"
	ScopeStewardship  Scope = "stewardship"
	ScopeCommerce     Scope = "commerce"
	ScopeCompliance   Scope = "compliance"
	ScopeEthics       Scope = "ethics"
	ScopeCoordination Scope = "coordination"
	ScopeTransparency Scope = "transparency"
	ScopeGovernance   Scope = "governance"
	ScopeEpistemic    Scope = "epistemic"
	ScopeAccuracy     Scope = "accuracy"
)

// ConstitutionReference identifies which constitution governs a context
// and how strictly it is applied.
type ConstitutionReference struct {
	ID        string  `json:"id"`
	Version   string  `json:"version,omitempty"`
	Persona   Persona `json:"persona,omitempty"`
	Adherence int     `json:"adherence,omitempty"`
	Scopes    []Scope `json:"scopes,omitempty"`
}

// #endregion constitution

// #region decay-policy

// DecayCurve selects the intensity-over-time shape of a decay policy.
type DecayCurve string

const (
	CurveExponential DecayCurve = "exponential"
	CurveLinear      DecayCurve = "linear"
	CurveStep        DecayCurve = "step"
)

// StepThreshold is one plateau of a step decay curve.
type StepThreshold struct {
	AfterSeconds float64 `json:"after_seconds"`
	Intensity    int     `json:"intensity"`
}

// DecayPolicy governs how a declared intensity fades toward its baseline.
// Policies are immutable configuration, not user data.
type DecayPolicy struct {
	Curve              DecayCurve      `json:"curve"`
	HalfLifeSeconds    float64         `json:"half_life_seconds"`
	Baseline           int             `json:"baseline"`
	StaleThreshold     float64         `json:"stale_threshold"`
	FreshWindowSeconds float64         `json:"fresh_window_seconds"`
	Pinned             bool            `json:"pinned,omitempty"`
	ResetOnEngagement  bool            `json:"reset_on_engagement,omitempty"`
	FullDecaySeconds   float64         `json:"full_decay_seconds,omitempty"`
	StepThresholds     []StepThreshold `json:"step_thresholds,omitempty"`
}

// #endregion decay-policy

// #region personal-state

// DefaultIntensity is assumed when a dimension omits its intensity.
const DefaultIntensity = 3

// PersonalDimension is one axis of self-reported state. A zero DeclaredAt
// means the dimension carries no temporal metadata.
type PersonalDimension struct {
	Value       string       `json:"value"`
	Intensity   int          `json:"intensity,omitempty"`
	DeclaredAt  time.Time    `json:"declared_at,omitzero"`
	Pinned      bool         `json:"pinned,omitempty"`
	Extended    string       `json:"extended,omitempty"`
	DecayPolicy *DecayPolicy `json:"decay_policy,omitempty"`
}

// IntensityOrDefault returns the declared intensity, or DefaultIntensity
// when unset.
func (d PersonalDimension) IntensityOrDefault() int {
	if d.Intensity == 0 {
		return DefaultIntensity
	}
	return d.Intensity
}

// Dimension keys, in canonical wire order.
const (
	DimCognitiveState   = "cognitive_state"
	DimEmotionalTone    = "emotional_tone"
	DimEnergyLevel      = "energy_level"
	DimPerceivedUrgency = "perceived_urgency"
	DimBodySignals      = "body_signals"
)

// DimensionOrder lists the five dimension keys in canonical wire order.
var DimensionOrder = []string{
	DimCognitiveState,
	DimEmotionalTone,
	DimEnergyLevel,
	DimPerceivedUrgency,
	DimBodySignals,
}

// PersonalState holds the five self-reported dimensions. Nil entries are
// undeclared.
type PersonalState struct {
	CognitiveState   *PersonalDimension `json:"cognitive_state,omitempty"`
	EmotionalTone    *PersonalDimension `json:"emotional_tone,omitempty"`
	EnergyLevel      *PersonalDimension `json:"energy_level,omitempty"`
	PerceivedUrgency *PersonalDimension `json:"perceived_urgency,omitempty"`
	BodySignals      *PersonalDimension `json:"body_signals,omitempty"`
}

// Dimension returns the dimension for a canonical key, or nil.
func (s *PersonalState) Dimension(key string) *PersonalDimension {
	if s == nil {
		return nil
	}
	switch key {
	case DimCognitiveState:
		return s.CognitiveState
	case DimEmotionalTone:
		return s.EmotionalTone
	case DimEnergyLevel:
		return s.EnergyLevel
	case DimPerceivedUrgency:
		return s.PerceivedUrgency
	case DimBodySignals:
		return s.BodySignals
	}
	return nil
}

// WithDimension returns a copy of the state with one dimension replaced.
// Unknown keys return the state unchanged.
func (s PersonalState) WithDimension(key string, d PersonalDimension) PersonalState {
	switch key {
	case DimCognitiveState:
		s.CognitiveState = &d
	case DimEmotionalTone:
		s.EmotionalTone = &d
	case DimEnergyLevel:
		s.EnergyLevel = &d
	case DimPerceivedUrgency:
		s.PerceivedUrgency = &d
	case DimBodySignals:
		s.BodySignals = &d
	}
	return s
}

// #endregion personal-state

// #region prosaic

// ProsaicDimensions is the legacy four-axis encoding, used only when no
// PersonalState is present. Values are 0..1.
type ProsaicDimensions struct {
	Urgency    float64           `json:"urgency,omitempty"`
	Health     float64           `json:"health,omitempty"`
	Cognitive  float64           `json:"cognitive,omitempty"`
	Affect     float64           `json:"affect,omitempty"`
	SubSignals map[string]string `json:"sub_signals,omitempty"`
}

// #endregion prosaic

// #region sharing

// SharingSetting is a per-stakeholder share/hide override list.
type SharingSetting struct {
	Share []string `json:"share,omitempty"`
	Hide  []string `json:"hide,omitempty"`
}

// ContextRequirements names the fields a platform asks for.
type ContextRequirements struct {
	Required []string `json:"required,omitempty"`
	Optional []string `json:"optional,omitempty"`
}

// PlatformManifest describes an external platform requesting context.
type PlatformManifest struct {
	PlatformID          string              `json:"platform_id"`
	PlatformName        string              `json:"platform_name,omitempty"`
	PlatformType        string              `json:"platform_type,omitempty"`
	Version             string              `json:"version,omitempty"`
	ContextRequirements ContextRequirements `json:"context_requirements"`
	Capabilities        []string            `json:"capabilities,omitempty"`
}

// ConsentRecord captures a grant of specific fields to a platform.
type ConsentRecord struct {
	PlatformID     string   `json:"platform_id"`
	GrantedAt      string   `json:"granted_at,omitempty"`
	RequiredFields []string `json:"required_fields,omitempty"`
	OptionalFields []string `json:"optional_fields,omitempty"`
}

// #endregion sharing

// #region context

// VCPContext is the root aggregate: identity, constitution, and the
// optional profile, constraint, privacy, and state sections.
type VCPContext struct {
	VCPVersion          string                    `json:"vcp_version"`
	ProfileID           string                    `json:"profile_id"`
	Constitution        ConstitutionReference     `json:"constitution"`
	PublicProfile       map[string]any            `json:"public_profile"`
	PortablePreferences map[string]any            `json:"portable_preferences,omitempty"`
	CurrentSkills       map[string]any            `json:"current_skills,omitempty"`
	Constraints         map[string]bool           `json:"constraints,omitempty"`
	Availability        map[string]any            `json:"availability,omitempty"`
	SharingSettings     map[string]SharingSetting `json:"sharing_settings,omitempty"`
	PrivateContext      map[string]any            `json:"private_context,omitempty"`
	PersonalState       *PersonalState            `json:"personal_state,omitempty"`
	Prosaic             *ProsaicDimensions        `json:"prosaic,omitempty"`
	SystemContext       string                    `json:"system_context,omitempty"`
	SharedWithManager   map[string]any            `json:"shared_with_manager,omitempty"`
	Occasion            string                    `json:"occasion,omitempty"`
	Environment         string                    `json:"environment,omitempty"`
}

// PrivateKeys returns the private-context key names in sorted order,
// excluding "_"-prefixed metadata keys. Values are never exposed through
// this path.
func (c *VCPContext) PrivateKeys() []string {
	if len(c.PrivateContext) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.PrivateContext))
	for k := range c.PrivateContext {
		if strings.HasPrefix(k, "_") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConstraintFlags is the derived boolean view transmitted in place of
// private circumstances. Flags can be raised by private indicators but the
// indicators themselves never leave the profile.
type ConstraintFlags struct {
	TimeLimited          bool `json:"time_limited"`
	BudgetLimited        bool `json:"budget_limited"`
	NoiseRestricted      bool `json:"noise_restricted"`
	EnergyVariable       bool `json:"energy_variable"`
	ScheduleIrregular    bool `json:"schedule_irregular"`
	HealthConsiderations bool `json:"health_considerations"`
	MobilityLimited      bool `json:"mobility_limited"`
}

// #endregion context
