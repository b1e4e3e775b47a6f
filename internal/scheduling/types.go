// Package scheduling recommends practice windows for people with
// irregular schedules. It projects energy across candidate hours from a
// shift-aware heuristic blended with the decay model, then scores slots
// by energy, noise feasibility, and time-of-day preference.
package scheduling

// #region shift

// ShiftType is the caller's current work pattern.
type ShiftType string

const (
	ShiftDay      ShiftType = "day"
	ShiftNight    ShiftType = "night"
	ShiftOff      ShiftType = "off"
	ShiftRecovery ShiftType = "recovery"
)

// #endregion shift

// #region confidence

// Confidence is the recommendation tier derived from projected energy.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// #endregion confidence

// #region windows

// PracticeWindow is one recommended one-hour slot.
type PracticeWindow struct {
	Label           string     `json:"label"`
	StartHour       int        `json:"start_hour"`
	EndHour         int        `json:"end_hour"`
	DayOffset       int        `json:"day_offset"`
	EffectiveEnergy int        `json:"effective_energy"`
	NoiseOK         bool       `json:"noise_ok"`
	Confidence      Confidence `json:"confidence"`
	Reasoning       string     `json:"reasoning"`
}

// Options parameterizes a recommendation run. Zero values take defaults:
// quiet hours 22:00 to 08:00, preferred times ["evening"], recovery 6h.
type Options struct {
	CurrentShift    ShiftType
	CurrentEnergy   int
	QuietHoursStart *int
	QuietHoursEnd   *int
	PreferredTimes  []string
	RecoveryHours   *int
}

// candidateSlot is an internal pre-scoring candidate.
type candidateSlot struct {
	dayOffset        int
	startHour        int
	endHour          int
	projectedEnergy  int
	noiseOK          bool
	matchesPreferred bool
	dayLabel         string
}

// #endregion windows
