// Package audit persists a trail of sharing and transition decisions so
// a profile owner can review what crossed a boundary and why. Entries
// record field names and counts only, never private values.
package audit

import "time"

// #region event-types

// EventType classifies an audit entry.
type EventType string

const (
	EventContextShared      EventType = "context_shared"
	EventContextFiltered    EventType = "context_filtered"
	EventTransitionDetected EventType = "transition_detected"
	EventConsentGranted     EventType = "consent_granted"
	EventConsentRevoked     EventType = "consent_revoked"
)

// #endregion event-types

// #region entry

// Entry is one audit record. ID and Timestamp are filled by the store
// when left zero.
type Entry struct {
	ID                      string         `json:"id"`
	Timestamp               time.Time      `json:"timestamp"`
	EventType               EventType      `json:"event_type"`
	ProfileID               string         `json:"profile_id,omitempty"`
	PlatformID              string         `json:"platform_id,omitempty"`
	DataShared              []string       `json:"data_shared,omitempty"`
	DataWithheld            []string       `json:"data_withheld,omitempty"`
	PrivateFieldsInfluenced int            `json:"private_fields_influenced"`
	PrivateFieldsExposed    int            `json:"private_fields_exposed"`
	Reason                  string         `json:"reason,omitempty"`
	Details                 map[string]any `json:"details,omitempty"`
}

// #endregion entry

// #region stakeholder-view

// StakeholderEntry is the reduced per-audience projection of an entry:
// whether private context played a role, never which fields.
type StakeholderEntry struct {
	ID                 string           `json:"id"`
	Timestamp          time.Time        `json:"timestamp"`
	EventType          EventType        `json:"event_type"`
	PlatformID         string           `json:"platform_id,omitempty"`
	PrivateContextUsed bool             `json:"private_context_used"`
	Compliance         ComplianceStatus `json:"compliance_status"`
}

// ComplianceStatus carries the detail booleans audiences care about.
// Absent details default to compliant.
type ComplianceStatus struct {
	BudgetCompliant    bool `json:"budget_compliant"`
	MandatoryAddressed bool `json:"mandatory_addressed"`
}

// #endregion stakeholder-view

// #region day-summary

// DaySummary aggregates one day of audit activity.
type DaySummary struct {
	Day               string `json:"day"`
	Entries           int    `json:"entries"`
	FieldsShared      int    `json:"fields_shared"`
	FieldsWithheld    int    `json:"fields_withheld"`
	PrivateInfluenced int    `json:"private_influenced"`
}

// #endregion day-summary
