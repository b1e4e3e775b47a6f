package token

import (
	"fmt"
	"sort"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region summary

// Summarize reports what transmitting this context exposes: public field
// names sent, private keys withheld (names only, never values), and the
// signals that shape behavior without being sent verbatim.
func Summarize(ctx vcp.VCPContext) TransmissionSummary {
	summary := TransmissionSummary{
		Transmitted: []string{},
		Withheld:    []string{},
		Influencing: []string{},
	}

	var public []string
	for key, value := range ctx.PublicProfile {
		if value == nil {
			continue
		}
		public = append(public, key)
	}
	sort.Strings(public)
	summary.Transmitted = append(summary.Transmitted, public...)

	summary.Withheld = append(summary.Withheld, ctx.PrivateKeys()...)

	var flags []string
	for key, active := range ctx.Constraints {
		if active {
			flags = append(flags, key)
		}
	}
	sort.Strings(flags)
	summary.Influencing = append(summary.Influencing, flags...)

	if ctx.PersonalState != nil {
		for _, key := range vcp.DimensionOrder {
			dim := ctx.PersonalState.Dimension(key)
			if dim == nil {
				continue
			}
			summary.Influencing = append(summary.Influencing,
				fmt.Sprintf("%s %s:%d", PersonalStateEmoji[key], dim.Value, dim.IntensityOrDefault()))
		}
	} else if ctx.Prosaic != nil {
		p := ctx.Prosaic
		prosaic := []struct {
			name  string
			value float64
		}{
			{"urgency", p.Urgency},
			{"health", p.Health},
			{"cognitive", p.Cognitive},
			{"affect", p.Affect},
		}
		for _, dim := range prosaic {
			if dim.value > 0 {
				summary.Influencing = append(summary.Influencing,
					ProsaicEmoji[dim.name]+" "+dim.name)
			}
		}
	}

	return summary
}

// #endregion summary
