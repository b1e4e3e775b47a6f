package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/portablecontext/vcp-engine/internal/decay"
	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region encode

// Encode renders a context as a CSM-1 token: one line per concept in fixed
// order, each prefix appearing at most once. Returns the empty string when
// the context has no constitution identity, the one unrecoverable failure
// of this codec. Decay is evaluated against the supplied clock.
func Encode(ctx vcp.VCPContext, now time.Time) string {
	if ctx.Constitution.ID == "" {
		return ""
	}

	lines := []string{
		fmt.Sprintf("VCP:%s:%s", ctx.VCPVersion, ctx.ProfileID),
		fmt.Sprintf("C:%s@%s", ctx.Constitution.ID, ctx.Constitution.Version),
		encodePersonaLine(ctx.Constitution),
		encodeGoalLine(ctx.PublicProfile),
		encodeConstraintLine(ctx),
		encodeFlagsLine(ctx.Constraints),
		encodePrivateMarkersLine(&ctx),
	}

	if ctx.SystemContext != "" {
		lines = append(lines, "SC:"+ctx.SystemContext)
	}

	lines = append(lines, encodeStateLine(ctx, now))

	if lc := encodeLifecycleLine(ctx.PersonalState, now); lc != "" {
		lines = append(lines, lc)
	}

	return strings.Join(lines, "\n")
}

// ToWire renders the token as a single line, joining CSM-1 lines with the
// double-pipe separator. Splitting on the separator and rejoining with
// newlines reproduces the CSM-1 form exactly.
func ToWire(ctx vcp.VCPContext, now time.Time) string {
	csm1 := Encode(ctx, now)
	if csm1 == "" {
		return ""
	}
	return strings.ReplaceAll(csm1, "\n", WireSeparator)
}

// #endregion encode

// #region header-lines

// encodePersonaLine emits P:<persona>:<adherence>, defaulting to muse:3.
func encodePersonaLine(c vcp.ConstitutionReference) string {
	persona := c.Persona
	if persona == "" {
		persona = vcp.PersonaMuse
	}
	adherence := c.Adherence
	if adherence == 0 {
		adherence = 3
	}
	return fmt.Sprintf("P:%s:%d", persona, adherence)
}

// encodeGoalLine emits G:<goal>:<experience>:<style>. Newlines in the goal
// are replaced with spaces so user text cannot inject extra token lines.
func encodeGoalLine(profile map[string]any) string {
	goal := stringField(profile, "goal", "unset")
	goal = strings.ReplaceAll(goal, "\r", " ")
	goal = strings.ReplaceAll(goal, "\n", " ")
	experience := stringField(profile, "experience", "beginner")
	style := stringField(profile, "learning_style", "mixed")
	return fmt.Sprintf("G:%s:%s:%s", goal, experience, style)
}

// stringField reads a non-empty string value from a loosely-typed map.
func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// #endregion header-lines

// #region constraint-lines

// encodeConstraintLine emits X: with constraint shorthand codes followed
// by preference codes, colon-joined, or the literal "none".
func encodeConstraintLine(ctx vcp.VCPContext) string {
	var codes []string
	for _, key := range constraintOrder {
		if ctx.Constraints[key] {
			codes = append(codes, ConstraintEmoji[key])
		}
	}
	for _, key := range preferenceKeys {
		if v, ok := ctx.PortablePreferences[key].(string); ok {
			if code, known := PreferenceEmoji[v]; known {
				codes = append(codes, code)
			}
		}
	}
	if v, ok := ctx.PortablePreferences["session_length"].(string); ok && v != "" {
		codes = append(codes, "⏱️"+strings.ReplaceAll(v, "_", ""))
	}
	if len(codes) == 0 {
		return "X:none"
	}
	return "X:" + strings.Join(codes, ":")
}

// encodeFlagsLine emits F: with the currently-true tracked constraint
// flags, pipe-joined, or "none".
func encodeFlagsLine(constraints map[string]bool) string {
	var active []string
	for _, key := range TrackedFlags {
		if constraints[key] {
			active = append(active, key)
		}
	}
	if len(active) == 0 {
		return "F:none"
	}
	return "F:" + strings.Join(active, "|")
}

// encodePrivateMarkersLine emits S: with deduplicated category tags
// derived from private-context key prefixes. Only the first "_"-segment
// of each key is exposed, never the key itself and never its value.
func encodePrivateMarkersLine(ctx *vcp.VCPContext) string {
	seen := make(map[string]bool)
	var tags []string
	for _, key := range ctx.PrivateKeys() {
		prefix, _, _ := strings.Cut(key, "_")
		if prefix == "" || seen[prefix] {
			continue
		}
		seen[prefix] = true
		tags = append(tags, PrivateMarker+prefix)
	}
	if len(tags) == 0 {
		return "S:none"
	}
	return "S:" + strings.Join(tags, "|")
}

// #endregion constraint-lines

// #region state-lines

// encodeStateLine emits the R line: decay-evaluated personal state when
// any dimension is declared, the legacy prosaic encoding otherwise, or
// "R:none" when neither carries signal.
func encodeStateLine(ctx vcp.VCPContext, now time.Time) string {
	if entries := personalStateEntries(ctx.PersonalState, now); len(entries) > 0 {
		return "R:" + strings.Join(entries, "|")
	}
	if entries := prosaicEntries(ctx.Prosaic); len(entries) > 0 {
		return "R:" + strings.Join(entries, "|")
	}
	return "R:none"
}

func personalStateEntries(state *vcp.PersonalState, now time.Time) []string {
	if state == nil {
		return nil
	}
	var entries []string
	for _, key := range vcp.DimensionOrder {
		dim := state.Dimension(key)
		if dim == nil {
			continue
		}
		intensity := decay.DimensionEffectiveIntensity(key, *dim, now)
		entry := fmt.Sprintf("%s%s:%d", PersonalStateEmoji[key], dim.Value, intensity)
		if dim.Extended != "" {
			entry += ":" + dim.Extended
		}
		entries = append(entries, entry)
	}
	return entries
}

func prosaicEntries(p *vcp.ProsaicDimensions) []string {
	if p == nil {
		return nil
	}
	var entries []string
	add := func(emoji string, value float64, sub string) {
		if value <= 0 {
			return
		}
		entry := fmt.Sprintf("%s%.1f", emoji, value)
		if sub != "" {
			entry += ":" + sub
		}
		entries = append(entries, entry)
	}
	healthSub := p.SubSignals["physical_need"]
	if healthSub == "" {
		healthSub = p.SubSignals["condition"]
	}
	add(ProsaicEmoji["urgency"], p.Urgency, p.SubSignals["deadline_horizon"])
	add(ProsaicEmoji["health"], p.Health, healthSub)
	add(ProsaicEmoji["cognitive"], p.Cognitive, p.SubSignals["cognitive_state"])
	add(ProsaicEmoji["affect"], p.Affect, p.SubSignals["emotional_state"])
	return entries
}

// lifecycleCodes maps lifecycle states to their LC single-letter codes.
var lifecycleCodes = map[decay.Lifecycle]string{
	decay.LifecycleSet:      "S",
	decay.LifecycleActive:   "A",
	decay.LifecycleDecaying: "D",
	decay.LifecycleStale:    "T",
	decay.LifecycleExpired:  "X",
}

// encodeLifecycleLine emits the LC line with one entry per dimension
// carrying temporal metadata (a declared_at or a pin). Returns "" when no
// dimension does, and the line is omitted.
func encodeLifecycleLine(state *vcp.PersonalState, now time.Time) string {
	if state == nil {
		return ""
	}
	var entries []string
	for _, key := range vcp.DimensionOrder {
		dim := state.Dimension(key)
		if dim == nil {
			continue
		}
		pinned := dim.Pinned || (dim.DecayPolicy != nil && dim.DecayPolicy.Pinned)
		if dim.DeclaredAt.IsZero() && !pinned {
			continue
		}
		elapsed := 0
		if !dim.DeclaredAt.IsZero() {
			if secs := int(now.Sub(dim.DeclaredAt).Seconds()); secs > 0 {
				elapsed = secs
			}
		}
		code := "P"
		if !pinned {
			code = lifecycleCodes[decay.DimensionLifecycle(key, *dim, now)]
		}
		entries = append(entries, fmt.Sprintf("%s%s:%ds", PersonalStateEmoji[key], code, elapsed))
	}
	if len(entries) == 0 {
		return ""
	}
	return "LC:" + strings.Join(entries, "|")
}

// #endregion state-lines
