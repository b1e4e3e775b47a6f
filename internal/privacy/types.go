// Package privacy implements the three-tier field classification and the
// transmission filters built on it. The guiding rule is a one-way diode:
// private circumstances may raise boolean constraint flags, but the
// circumstances themselves never cross a sharing boundary.
package privacy

// #region levels

// Level is a field's privacy classification.
type Level string

const (
	LevelPublic          Level = "public"
	LevelConsentRequired Level = "consent-required"
	LevelPrivate         Level = "private"
)

// #endregion levels

// #region stakeholders

// Stakeholder identifies a category of context recipient.
type Stakeholder string

const (
	StakeholderHR        Stakeholder = "hr"
	StakeholderManager   Stakeholder = "manager"
	StakeholderCommunity Stakeholder = "community"
	StakeholderEmployee  Stakeholder = "employee"
	StakeholderCoach     Stakeholder = "coach"
	StakeholderPlatforms Stakeholder = "platforms"
)

// #endregion stakeholders

// #region field-sets

// PublicFields are always shareable with any stakeholder.
var PublicFields = []string{
	"display_name",
	"goal",
	"experience",
	"pace",
	"motivation",
	"role",
	"team",
	"career_goal",
}

// ConsentRequiredFields are shareable only with an explicit grant.
// Unknown fields default to this tier.
var ConsentRequiredFields = []string{
	"noise_mode",
	"session_length",
	"budget_range",
	"feedback_style",
	"pressure_tolerance",
	"learning_style",
	"skills_acquired",
	"current_focus",
	"struggle_areas",
	"best_times",
	"avoid_times",
	"timezone",
}

// PrivateFields never cross a sharing boundary, regardless of settings
// or consent.
var PrivateFields = []string{
	"family_status",
	"dependents",
	"childcare_hours",
	"health_conditions",
	"health_appointments",
	"financial_constraint",
	"housing",
	"evening_available_after",
	"schedule",
	"neighbor_situation",
	"noise_sensitive",
}

// #endregion field-sets

// #region results

// SharePreview describes what sharing with a platform would expose,
// before any consent is granted.
type SharePreview struct {
	WouldShare      []string
	WouldWithhold   []string
	RequiresConsent []string
}

// FilteredContext is the platform-safe projection of a context: public
// fields, consented preference values, and derived boolean flags. It
// carries nothing from private_context.
type FilteredContext struct {
	Public      map[string]any  `json:"public"`
	Preferences map[string]any  `json:"preferences"`
	Constraints map[string]bool `json:"constraints"`
}

// #endregion results
