package privacy

import (
	"fmt"
	"strings"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region classification

// Classify returns a field's privacy tier. Private wins over public;
// anything unlisted requires consent.
func Classify(field string) Level {
	if inList(PrivateFields, field) {
		return LevelPrivate
	}
	if inList(PublicFields, field) {
		return LevelPublic
	}
	return LevelConsentRequired
}

// IsPrivateField reports whether a field must never be shared from this
// context: either it is in the static private set, or the profile holds
// a private_context entry under that key. Metadata keys count too; a key
// present in private_context is private no matter what it is called.
func IsPrivateField(ctx *vcp.VCPContext, field string) bool {
	if inList(PrivateFields, field) {
		return true
	}
	if ctx.PrivateContext != nil {
		if _, ok := ctx.PrivateContext[field]; ok {
			return true
		}
	}
	return false
}

// #endregion classification

// #region field-resolution

// FieldValue resolves a field across the shareable sections in fixed
// precedence order. private_context is deliberately absent from the
// search path; its values are unreachable here.
func FieldValue(ctx *vcp.VCPContext, field string) (any, bool) {
	sources := []map[string]any{
		ctx.PublicProfile,
		ctx.PortablePreferences,
		ctx.CurrentSkills,
	}
	for _, source := range sources {
		if v, ok := source[field]; ok && v != nil {
			return v, true
		}
	}
	if v, ok := ctx.Constraints[field]; ok {
		return v, true
	}
	for _, source := range []map[string]any{ctx.Availability, ctx.SharedWithManager} {
		if v, ok := source[field]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// #endregion field-resolution

// #region constraint-flags

// ExtractConstraintFlags derives the transmitted boolean flags from
// declared constraints and private circumstances. Output is booleans
// only; the indicators that raised a flag stay private.
func ExtractConstraintFlags(ctx *vcp.VCPContext) vcp.ConstraintFlags {
	priv := ctx.PrivateContext
	return vcp.ConstraintFlags{
		TimeLimited: ctx.Constraints["time_limited"] ||
			present(priv, "childcare_hours") ||
			truthy(priv["schedule_irregular"]),
		BudgetLimited: ctx.Constraints["budget_limited"] ||
			truthy(priv["financial_constraint"]),
		NoiseRestricted: ctx.Constraints["noise_restricted"] ||
			present(priv, "neighbor_situation") ||
			truthy(priv["noise_sensitive"]),
		EnergyVariable: ctx.Constraints["energy_variable"] ||
			present(priv, "health_conditions") ||
			priv["schedule"] == "shift_work",
		ScheduleIrregular: ctx.Constraints["schedule_irregular"] ||
			present(priv, "schedule") ||
			present(priv, "childcare_hours"),
		HealthConsiderations: ctx.Constraints["health_considerations"] ||
			present(priv, "health_conditions") ||
			present(priv, "health_appointments"),
		MobilityLimited: ctx.Constraints["mobility_limited"] ||
			truthy(priv["mobility_limited"]),
	}
}

// present reports whether a key holds a usable (non-nil, non-empty) value.
func present(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	return truthy(v)
}

// truthy follows loose-value semantics: false, nil, "", and 0 are falsy.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

// #endregion constraint-flags

// #region stakeholder-visibility

// StakeholderVisibleFields lists what a stakeholder may see: the public
// set, plus their explicit shares, minus their hides. Private fields are
// stripped even when explicitly shared.
func StakeholderVisibleFields(ctx *vcp.VCPContext, stakeholder Stakeholder) []string {
	visible := append([]string(nil), PublicFields...)

	settings, ok := ctx.SharingSettings[string(stakeholder)]
	if ok {
		for _, field := range settings.Share {
			if !inList(visible, field) {
				visible = append(visible, field)
			}
		}
		visible = without(visible, settings.Hide)
	}

	var safe []string
	for _, field := range visible {
		if !IsPrivateField(ctx, field) {
			safe = append(safe, field)
		}
	}
	return safe
}

// StakeholderHiddenFields lists what a stakeholder may not see: every
// private field, plus consent-required fields they were not granted.
func StakeholderHiddenFields(ctx *vcp.VCPContext, stakeholder Stakeholder) []string {
	visible := StakeholderVisibleFields(ctx, stakeholder)
	hidden := append([]string(nil), PrivateFields...)
	for _, field := range ConsentRequiredFields {
		if !inList(visible, field) && !inList(hidden, field) {
			hidden = append(hidden, field)
		}
	}
	return hidden
}

// #endregion stakeholder-visibility

// #region share-preview

// PreviewShare reports what sharing with a platform would expose before
// consent: public fields always go, required non-private fields need a
// grant, and everything private or hidden is withheld.
func PreviewShare(ctx *vcp.VCPContext, manifest vcp.PlatformManifest) SharePreview {
	preview := SharePreview{
		WouldShare:      []string{},
		WouldWithhold:   []string{},
		RequiresConsent: []string{},
	}
	share := func(field string) { preview.WouldShare = appendUnique(preview.WouldShare, field) }
	withhold := func(field string) { preview.WouldWithhold = appendUnique(preview.WouldWithhold, field) }
	consent := func(field string) { preview.RequiresConsent = appendUnique(preview.RequiresConsent, field) }

	for _, field := range PublicFields {
		share(field)
	}

	platformSettings := ctx.SharingSettings[string(StakeholderPlatforms)]

	for _, field := range manifest.ContextRequirements.Required {
		switch {
		case IsPrivateField(ctx, field):
			withhold(field)
		case inList(platformSettings.Hide, field):
			withhold(field)
		default:
			consent(field)
		}
	}

	for _, field := range manifest.ContextRequirements.Optional {
		switch {
		case IsPrivateField(ctx, field):
			withhold(field)
		case inList(platformSettings.Hide, field):
			withhold(field)
		case inList(platformSettings.Share, field):
			share(field)
		default:
			withhold(field)
		}
	}

	for _, key := range ctx.PrivateKeys() {
		withhold(key)
	}

	return preview
}

// #endregion share-preview

// #region platform-filter

// FilterForPlatform builds the platform-safe projection: public fields,
// consented preference values, and derived constraint flags. A preference
// is transmitted only where the manifest request and the consent grant
// agree; a grant for a field the platform never asked for sends nothing.
// Private fields stay out even when the consent record names them.
func FilterForPlatform(ctx *vcp.VCPContext, manifest vcp.PlatformManifest, consent vcp.ConsentRecord) FilteredContext {
	result := FilteredContext{
		Public:      make(map[string]any),
		Preferences: make(map[string]any),
	}

	for _, field := range PublicFields {
		if v, ok := FieldValue(ctx, field); ok {
			result.Public[field] = v
		}
	}

	consented := func(requested, granted []string) {
		for _, field := range requested {
			if !inList(granted, field) {
				continue
			}
			if IsPrivateField(ctx, field) {
				continue
			}
			if v, ok := FieldValue(ctx, field); ok {
				result.Preferences[field] = v
			}
		}
	}
	consented(manifest.ContextRequirements.Required, consent.RequiredFields)
	consented(manifest.ContextRequirements.Optional, consent.OptionalFields)

	flags := ExtractConstraintFlags(ctx)
	result.Constraints = map[string]bool{
		"time_limited":          flags.TimeLimited,
		"budget_limited":        flags.BudgetLimited,
		"noise_restricted":      flags.NoiseRestricted,
		"energy_variable":       flags.EnergyVariable,
		"schedule_irregular":    flags.ScheduleIrregular,
		"mobility_limited":      flags.MobilityLimited,
		"health_considerations": flags.HealthConsiderations,
	}

	return result
}

// #endregion platform-filter

// #region formatting

// FormatFieldName renders a snake_case field name as Title Case.
func FormatFieldName(field string) string {
	if field == "" {
		return ""
	}
	parts := strings.Split(field, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

// Summary describes a sharing decision in one line, clauses joined with
// a bullet. Empty when nothing was shared, withheld, or influenced.
func Summary(shared, withheld []string, privateInfluences int) string {
	var parts []string
	if len(shared) > 0 {
		parts = append(parts, fmt.Sprintf("%d fields shared", len(shared)))
	}
	if len(withheld) > 0 {
		parts = append(parts, fmt.Sprintf("%d fields kept private", len(withheld)))
	}
	if privateInfluences > 0 {
		parts = append(parts, fmt.Sprintf("%d private constraints influenced recommendations (details not exposed)", privateInfluences))
	}
	return strings.Join(parts, " • ")
}

// #endregion formatting

// #region helpers

func inList(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func appendUnique(list []string, field string) []string {
	if inList(list, field) {
		return list
	}
	return append(list, field)
}

func without(list, remove []string) []string {
	var kept []string
	for _, s := range list {
		if !inList(remove, s) {
			kept = append(kept, s)
		}
	}
	return kept
}

// #endregion helpers
