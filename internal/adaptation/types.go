// Package adaptation maps declared personal state onto response-shaping
// guidance. The rule table is fixed behavioral configuration; matching
// is by dimension value with an intensity band.
package adaptation

// #region rule

// Rule matches one dimension value within an intensity band and carries
// the guidance to emit. MaxIntensity zero means unbounded.
type Rule struct {
	Dimension    string
	Value        string
	MinIntensity int
	MaxIntensity int
	Guidance     string
}

// #endregion rule
