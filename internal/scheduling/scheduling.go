package scheduling

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/portablecontext/vcp-engine/internal/decay"
	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region defaults

const (
	defaultQuietStart    = 22
	defaultQuietEnd      = 8
	defaultRecoveryHours = 6
	maxWindows           = 5
	horizonHours         = 48
)

var defaultPreferredTimes = []string{"evening"}

// timePeriodHours maps a named time-of-day period to its [start, end)
// hour range.
var timePeriodHours = map[string][2]int{
	"morning":   {8, 12},
	"afternoon": {12, 17},
	"evening":   {17, 22},
}

// #endregion defaults

// #region helpers

func dayLabel(now time.Time, dayOffset int) string {
	switch dayOffset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	return now.AddDate(0, 0, dayOffset).Weekday().String()
}

func formatHour(hour int) string {
	switch {
	case hour == 0 || hour == 24:
		return "12am"
	case hour == 12:
		return "12pm"
	case hour < 12:
		return fmt.Sprintf("%dam", hour)
	}
	return fmt.Sprintf("%dpm", hour-12)
}

// inQuietHours handles both same-day ranges (1-6) and ranges that wrap
// midnight (22-8).
func inQuietHours(hour, quietStart, quietEnd int) bool {
	if quietStart <= quietEnd {
		return hour >= quietStart && hour < quietEnd
	}
	return hour >= quietStart || hour < quietEnd
}

func matchesPreferred(hour int, preferredTimes []string) bool {
	for _, pref := range preferredTimes {
		if span, ok := timePeriodHours[strings.ToLower(pref)]; ok {
			if hour >= span[0] && hour < span[1] {
				return true
			}
		}
	}
	return false
}

// #endregion helpers

// #region energy-projection

// workBlockedHours marks the hours a shift makes unavailable on a given
// day. Day shift blocks 06:00-14:00 today; night shift blocks late
// evening today plus post-shift sleep; recovery blocks the morning after
// a night shift; off blocks nothing.
func workBlockedHours(shift ShiftType, dayOffset, recoveryHours int) map[int]bool {
	blocked := make(map[int]bool)
	switch shift {
	case ShiftDay:
		if dayOffset == 0 {
			for h := 6; h < 14; h++ {
				blocked[h] = true
			}
		}
	case ShiftNight:
		if dayOffset == 0 {
			for h := 22; h < 24; h++ {
				blocked[h] = true
			}
			for h := 0; h < 14; h++ {
				blocked[h] = true
			}
		}
		if dayOffset == 1 {
			for h := 0; h < 6; h++ {
				blocked[h] = true
			}
		}
	case ShiftRecovery:
		if dayOffset == 0 {
			limit := recoveryHours + 6
			if limit > 24 {
				limit = 24
			}
			for h := 0; h < limit; h++ {
				blocked[h] = true
			}
		}
	}
	return blocked
}

// projectBaseEnergy estimates energy for a slot from shift context.
// Same-day projections anchor to the current declared energy; future
// days use fixed shift-specific heuristics.
func projectBaseEnergy(shift ShiftType, dayOffset, hour, currentEnergy int) int {
	if dayOffset == 0 {
		switch {
		case shift == ShiftRecovery || shift == ShiftNight:
			return min(currentEnergy, 2)
		case shift == ShiftDay && hour >= 14:
			return max(currentEnergy-1, 2)
		}
		return currentEnergy
	}

	switch shift {
	case ShiftRecovery:
		if dayOffset == 1 && hour < 12 {
			return 3
		}
		return 4
	case ShiftNight:
		if dayOffset == 1 && hour < 14 {
			return 2
		}
		return 3
	case ShiftOff:
		if hour >= 8 && hour < 12 {
			return 5
		}
		return 4
	}
	return 3
}

func confidenceFor(energy int) Confidence {
	switch {
	case energy >= 4:
		return ConfidenceHigh
	case energy >= 3:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// #endregion energy-projection

// #region reasoning

func buildReasoning(slot candidateSlot, shift ShiftType) string {
	parts := []string{
		fmt.Sprintf("%s %s-%s", slot.dayLabel, formatHour(slot.startHour), formatHour(slot.endHour)),
	}

	switch {
	case slot.projectedEnergy >= 4:
		if shift == ShiftOff || (shift == ShiftRecovery && slot.dayOffset >= 1) {
			parts = append(parts, "rested after recovery")
		} else {
			parts = append(parts, "good energy expected")
		}
	case slot.projectedEnergy == 3:
		parts = append(parts, "moderate energy")
	default:
		parts = append(parts, "limited energy — keep it light")
	}

	if slot.noiseOK {
		parts = append(parts, "noise-friendly")
	} else {
		parts = append(parts, "quiet practice only")
	}

	if slot.matchesPreferred {
		parts = append(parts, "matches your preferred time")
	}

	return strings.Join(parts, ", ")
}

// #endregion reasoning

// #region recommend

// RecommendPracticeWindows ranks one-hour practice slots over the next
// 48 hours. For each unblocked hour it blends the shift heuristic (60%)
// with the decay-projected energy (40%), discards slots below energy 2,
// scores by energy times noise and preference multipliers, and returns
// the top five.
func RecommendPracticeWindows(opts Options, now time.Time) []PracticeWindow {
	quietStart := defaultQuietStart
	if opts.QuietHoursStart != nil {
		quietStart = *opts.QuietHoursStart
	}
	quietEnd := defaultQuietEnd
	if opts.QuietHoursEnd != nil {
		quietEnd = *opts.QuietHoursEnd
	}
	recoveryHours := defaultRecoveryHours
	if opts.RecoveryHours != nil {
		recoveryHours = *opts.RecoveryHours
	}
	preferredTimes := opts.PreferredTimes
	if preferredTimes == nil {
		preferredTimes = defaultPreferredTimes
	}

	energyPolicy := decay.PolicyFor(vcp.DimEnergyLevel)

	var candidates []candidateSlot
	for dayOffset := 0; dayOffset < 3; dayOffset++ {
		blocked := workBlockedHours(opts.CurrentShift, dayOffset, recoveryHours)

		for hour := 0; hour < 24; hour++ {
			if blocked[hour] {
				continue
			}

			hoursFromNow := dayOffset*24 + hour - now.Hour()
			if hoursFromNow < 0 || hoursFromNow > horizonHours {
				continue
			}

			baseEnergy := projectBaseEnergy(opts.CurrentShift, dayOffset, hour, opts.CurrentEnergy)

			slotTime := now.Add(time.Duration(hoursFromNow) * time.Hour)
			decayed := decay.EffectiveIntensity(opts.CurrentEnergy, now, energyPolicy, slotTime)

			projected := int(math.Round(float64(baseEnergy)*0.6 + float64(decayed)*0.4))
			if projected < 1 {
				projected = 1
			}
			if projected > 5 {
				projected = 5
			}
			if projected < 2 {
				continue
			}

			candidates = append(candidates, candidateSlot{
				dayOffset:        dayOffset,
				startHour:        hour,
				endHour:          hour + 1,
				projectedEnergy:  projected,
				noiseOK:          !inQuietHours(hour, quietStart, quietEnd),
				matchesPreferred: matchesPreferred(hour, preferredTimes),
				dayLabel:         dayLabel(now, dayOffset),
			})
		}
	}

	type scored struct {
		slot  candidateSlot
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, slot := range candidates {
		score := float64(slot.projectedEnergy)
		if slot.noiseOK {
			score *= 1.5
		} else {
			score *= 0.8
		}
		if slot.matchesPreferred {
			score *= 1.3
		}
		ranked = append(ranked, scored{slot: slot, score: score})
	}
	// Stable sort keeps grid order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > maxWindows {
		ranked = ranked[:maxWindows]
	}

	windows := make([]PracticeWindow, 0, len(ranked))
	for _, entry := range ranked {
		slot := entry.slot
		windows = append(windows, PracticeWindow{
			Label:           fmt.Sprintf("%s %s-%s", slot.dayLabel, formatHour(slot.startHour), formatHour(slot.endHour)),
			StartHour:       slot.startHour,
			EndHour:         slot.endHour,
			DayOffset:       slot.dayOffset,
			EffectiveEnergy: slot.projectedEnergy,
			NoiseOK:         slot.noiseOK,
			Confidence:      confidenceFor(slot.projectedEnergy),
			Reasoning:       buildReasoning(slot, opts.CurrentShift),
		})
	}
	return windows
}

// #endregion recommend
