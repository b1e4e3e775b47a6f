// Package signals extracts personal-state declarations from free text
// using a static phrase table, and merges accepted signals onto an
// existing state. Parsing is deliberately dumb: no NLP, just anchored
// phrase matches with fixed values and confidences.
package signals

import "regexp"

// #region parsed-signal

// ParsedSignal is one extracted state declaration.
type ParsedSignal struct {
	Dimension    string  `json:"dimension"`
	Value        string  `json:"value"`
	Intensity    int     `json:"intensity"`
	Confidence   float64 `json:"confidence"`
	SourcePhrase string  `json:"source_phrase"`
}

// #endregion parsed-signal

// #region confidence

// Confidence assigned to exact phrase matches versus looser associations.
const (
	exactConfidence   = 0.8
	inexactConfidence = 0.6
)

// DefaultConfidenceThreshold is the minimum confidence Apply accepts
// when the caller passes 0.
const DefaultConfidenceThreshold = 0.70

// #endregion confidence

// #region phrase-table

// phraseMapping binds alternative patterns to one dimension declaration.
// The first matching pattern wins; the rest are skipped.
type phraseMapping struct {
	patterns  []*regexp.Regexp
	dimension string
	value     string
	intensity int
	exact     bool
}

func patterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return compiled
}

// #endregion phrase-table
