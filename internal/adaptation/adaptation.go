package adaptation

import (
	"strings"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region rules

// Rules is the behavioral adaptation table, ordered by dimension. Bands
// split where guidance escalates at intensity 5.
var Rules = []Rule{
	// Cognitive state
	{vcp.DimCognitiveState, "focused", 1, 0, "Support flow state, minimal interruption."},
	{vcp.DimCognitiveState, "distracted", 3, 0, "Structure clearly, use headings, shorter chunks."},
	{vcp.DimCognitiveState, "overloaded", 3, 4, "Reduce options, one thing at a time."},
	{vcp.DimCognitiveState, "overloaded", 5, 0, "Absolute minimum. Yes/no questions only. Make recommendations instead of listing options."},
	{vcp.DimCognitiveState, "foggy", 3, 0, "Very simple language. Repeat key points. Concrete examples. Shorter sentences."},
	{vcp.DimCognitiveState, "reflective", 1, 0, "Allow space for thought. Deeper engagement OK."},

	// Emotional tone
	{vcp.DimEmotionalTone, "calm", 1, 0, "Normal interaction."},
	{vcp.DimEmotionalTone, "tense", 3, 4, "Reassuring tone, break down problems, reduce uncertainty."},
	{vcp.DimEmotionalTone, "tense", 5, 0, "Grounding, safety-focused, calm anchor."},
	{vcp.DimEmotionalTone, "frustrated", 3, 4, "Acknowledge frustration. Skip preamble. Get to solutions."},
	{vcp.DimEmotionalTone, "frustrated", 5, 0, "Minimal text, direct answers, do not escalate."},
	{vcp.DimEmotionalTone, "uplifted", 1, 0, "Match energy appropriately, celebrate."},

	// Energy level
	{vcp.DimEnergyLevel, "rested", 1, 0, "Normal interaction, full engagement OK."},
	{vcp.DimEnergyLevel, "low_energy", 3, 4, "Keep concise, reduce demands."},
	{vcp.DimEnergyLevel, "low_energy", 5, 0, "Minimal demands, offer to defer."},
	{vcp.DimEnergyLevel, "fatigued", 3, 0, "Gentler tone, simplify, chunk, suggest breaks."},
	{vcp.DimEnergyLevel, "wired", 3, 0, "Calming tone, help channel energy productively."},
	{vcp.DimEnergyLevel, "depleted", 3, 4, "Very gentle, defer non-urgent."},
	{vcp.DimEnergyLevel, "depleted", 5, 0, "Absolute minimum, prioritize rest."},

	// Perceived urgency
	{vcp.DimPerceivedUrgency, "unhurried", 1, 0, "Normal pace, full explanations."},
	{vcp.DimPerceivedUrgency, "time_aware", 3, 0, "Efficient, prioritize key points."},
	{vcp.DimPerceivedUrgency, "pressured", 3, 4, "Concise, skip non-essential caveats."},
	{vcp.DimPerceivedUrgency, "pressured", 5, 0, "Minimal, direct answers only."},
	{vcp.DimPerceivedUrgency, "critical", 3, 0, "Absolute minimum. No pleasantries. Emergency mode."},

	// Body signals
	{vcp.DimBodySignals, "neutral", 1, 0, "Normal interaction."},
	{vcp.DimBodySignals, "discomfort", 3, 4, "Check in, offer to defer if needed."},
	{vcp.DimBodySignals, "discomfort", 5, 0, "Gentle, offer to postpone non-urgent."},
	{vcp.DimBodySignals, "pain", 3, 0, "Very gentle tone, minimal demands, offer deferrals."},
	{vcp.DimBodySignals, "unwell", 3, 4, "Gentler tone, simplify, acknowledge difficulty."},
	{vcp.DimBodySignals, "unwell", 5, 0, "Minimal interaction. Prioritize wellbeing. Suggest rest."},
	{vcp.DimBodySignals, "recovering", 1, 0, "Patient, acknowledge healing takes time."},
}

// ExtendedBodyRules maps body sub-signals to their guidance.
var ExtendedBodyRules = map[string]string{
	"bathroom":   "Wrap up gracefully. Suggest continuing later.",
	"hunger":     "Keep response brief. Acknowledge if conversation can wait.",
	"sensory":    "Reduce formatting, calmer presentation.",
	"medication": "Brief reminder, then continue normally.",
	"movement":   "Acknowledge need, suggest break.",
	"thirst":     "Keep brief.",
}

// #endregion rules

// #region guidance

// Guidance returns the guidance lines matching a personal state, in rule
// table order, with any extended body-signal guidance appended.
func Guidance(state *vcp.PersonalState) []string {
	if state == nil {
		return nil
	}

	var guidance []string
	for _, rule := range Rules {
		dim := state.Dimension(rule.Dimension)
		if dim == nil || dim.Value != rule.Value {
			continue
		}
		intensity := dim.IntensityOrDefault()
		if intensity < rule.MinIntensity {
			continue
		}
		if rule.MaxIntensity != 0 && intensity > rule.MaxIntensity {
			continue
		}
		guidance = append(guidance, rule.Guidance)
	}

	if body := state.BodySignals; body != nil && body.Extended != "" {
		if extended, ok := ExtendedBodyRules[body.Extended]; ok {
			guidance = append(guidance, extended)
		}
	}
	return guidance
}

// GuidanceBlock renders the matched guidance as a markdown section for
// injection into a system prompt. Empty when nothing matched.
func GuidanceBlock(state *vcp.PersonalState) string {
	lines := Guidance(state)
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n## Personal State Adaptations\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(line)
	}
	return b.String()
}

// #endregion guidance
