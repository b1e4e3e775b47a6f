package signals

import (
	"time"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region mappings

var phraseMappings = []phraseMapping{
	// Urgency
	{patterns(`\bin a hurry\b`, `\brushing\b`, `\bquick question\b`), vcp.DimPerceivedUrgency, "pressured", 4, true},
	{patterns(`\btake your time\b`, `\bno rush\b`), vcp.DimPerceivedUrgency, "unhurried", 2, true},

	// Energy
	{patterns(`\bexhausted\b`, `\bso tired\b`, `\bwiped out\b`), vcp.DimEnergyLevel, "depleted", 4, true},
	{patterns(`\bfeeling great\b`, `\benergized\b`), vcp.DimEnergyLevel, "rested", 4, true},

	// Cognitive
	{patterns(`\bcan'?t think straight\b`, `\bbrain fog\b`), vcp.DimCognitiveState, "foggy", 4, true},
	{patterns(`\boverwhelmed\b`, `\btoo much\b`), vcp.DimCognitiveState, "overloaded", 4, true},

	// Emotional
	{patterns(`\bfrustrated\b`, `\bannoyed\b`), vcp.DimEmotionalTone, "frustrated", 4, true},
	{patterns(`\bstressed\b`, `\banxious\b`), vcp.DimEmotionalTone, "tense", 4, true},
	{patterns(`\bfeeling great\b`, `\benergized\b`), vcp.DimEmotionalTone, "uplifted", 3, false},

	// Body signals
	{patterns(`\bnot feeling well\b`, `\bsick\b`), vcp.DimBodySignals, "unwell", 3, true},
	{patterns(`\bheadache\b`, `\bmigraine\b`), vcp.DimBodySignals, "pain", 3, true},
}

// #endregion mappings

// #region parse

// Parse scans free text against the phrase table and returns extracted
// signals. At most one signal per dimension:value pair survives, keeping
// the highest confidence; output order follows the phrase table.
func Parse(text string) []ParsedSignal {
	var signals []ParsedSignal
	for _, mapping := range phraseMappings {
		for _, pattern := range mapping.patterns {
			match := pattern.FindString(text)
			if match == "" {
				continue
			}
			confidence := inexactConfidence
			if mapping.exact {
				confidence = exactConfidence
			}
			signals = append(signals, ParsedSignal{
				Dimension:    mapping.dimension,
				Value:        mapping.value,
				Intensity:    mapping.intensity,
				Confidence:   confidence,
				SourcePhrase: match,
			})
			break
		}
	}

	var deduped []ParsedSignal
	index := make(map[string]int)
	for _, signal := range signals {
		key := signal.Dimension + ":" + signal.Value
		if at, ok := index[key]; ok {
			if signal.Confidence > deduped[at].Confidence {
				deduped[at] = signal
			}
			continue
		}
		index[key] = len(deduped)
		deduped = append(deduped, signal)
	}
	return deduped
}

// #endregion parse

// #region apply

// Apply merges parsed signals at or above the confidence threshold onto
// a copy of the state, overwriting matched dimensions and stamping a
// fresh declared_at. A zero threshold takes the default. The input state
// is never mutated.
func Apply(current vcp.PersonalState, parsed []ParsedSignal, threshold float64, now time.Time) vcp.PersonalState {
	if threshold == 0 {
		threshold = DefaultConfidenceThreshold
	}
	result := current
	for _, signal := range parsed {
		if signal.Confidence < threshold {
			continue
		}
		result = result.WithDimension(signal.Dimension, vcp.PersonalDimension{
			Value:      signal.Value,
			Intensity:  signal.Intensity,
			DeclaredAt: now,
		})
	}
	return result
}

// #endregion apply
