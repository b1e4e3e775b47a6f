// Package decay computes effective intensities and lifecycle states for
// declared personal-state dimensions. All functions are pure: they take an
// explicit clock and never mutate their inputs.
package decay

import (
	"math"
	"time"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region lifecycle

// Lifecycle is the coarse freshness label of a declared dimension.
type Lifecycle string

const (
	LifecycleSet      Lifecycle = "set"
	LifecycleActive   Lifecycle = "active"
	LifecycleDecaying Lifecycle = "decaying"
	LifecycleStale    Lifecycle = "stale"
	LifecycleExpired  Lifecycle = "expired"
)

// #endregion lifecycle

// #region defaults

// defaultPolicy builds the standard exponential policy for one dimension.
func defaultPolicy(halfLife float64, resetOnEngagement bool) vcp.DecayPolicy {
	return vcp.DecayPolicy{
		Curve:              vcp.CurveExponential,
		HalfLifeSeconds:    halfLife,
		Baseline:           1,
		StaleThreshold:     0.3,
		FreshWindowSeconds: 60,
		ResetOnEngagement:  resetOnEngagement,
	}
}

// DefaultPolicies returns the built-in policy per dimension key. Urgency
// fades fastest; body signals persist the longest.
func DefaultPolicies() map[string]vcp.DecayPolicy {
	return map[string]vcp.DecayPolicy{
		vcp.DimPerceivedUrgency: defaultPolicy(900, false),
		vcp.DimBodySignals:      defaultPolicy(14400, false),
		vcp.DimCognitiveState:   defaultPolicy(720, true),
		vcp.DimEmotionalTone:    defaultPolicy(1800, false),
		vcp.DimEnergyLevel:      defaultPolicy(7200, false),
	}
}

// PolicyFor returns the built-in policy for a dimension key. Unknown keys
// fall back to the perceived_urgency policy, the fastest-fading default.
func PolicyFor(dimension string) vcp.DecayPolicy {
	policies := DefaultPolicies()
	if p, ok := policies[dimension]; ok {
		return p
	}
	return policies[vcp.DimPerceivedUrgency]
}

// #endregion defaults

// #region effective-intensity

// EffectiveIntensity computes the decayed intensity of a declaration at
// the given instant. Pinned policies and future declarations return the
// declared value unchanged; unknown curves fail open to the declared
// value. The result never falls below the policy baseline.
func EffectiveIntensity(declared int, declaredAt time.Time, policy vcp.DecayPolicy, now time.Time) int {
	if policy.Pinned {
		return declared
	}
	elapsed := now.Sub(declaredAt).Seconds()
	if elapsed <= 0 {
		return declared
	}

	baseline := policy.Baseline
	rang := float64(declared - baseline)
	if rang <= 0 {
		return declared
	}

	var effective int
	switch policy.Curve {
	case vcp.CurveExponential:
		if policy.HalfLifeSeconds <= 0 {
			return declared
		}
		decayed := float64(baseline) + rang*math.Exp2(-elapsed/policy.HalfLifeSeconds)
		effective = int(math.Floor(decayed))
	case vcp.CurveLinear:
		fullDecay := policy.FullDecaySeconds
		if fullDecay <= 0 {
			fullDecay = policy.HalfLifeSeconds * 4
		}
		if fullDecay <= 0 {
			return declared
		}
		fraction := math.Min(1, elapsed/fullDecay)
		effective = int(math.Floor(float64(declared) - rang*fraction))
	case vcp.CurveStep:
		effective = declared
		for _, step := range policy.StepThresholds {
			if step.AfterSeconds <= elapsed {
				effective = step.Intensity
			}
		}
	default:
		return declared
	}

	if effective < baseline {
		return baseline
	}
	return effective
}

// #endregion effective-intensity

// #region lifecycle-state

// LifecycleState classifies the freshness of a declaration. Pinned
// policies are always active. A declaration already at baseline becomes
// expired as soon as it leaves the fresh window.
func LifecycleState(declared int, declaredAt time.Time, policy vcp.DecayPolicy, now time.Time) Lifecycle {
	if policy.Pinned {
		return LifecycleActive
	}
	elapsed := now.Sub(declaredAt).Seconds()
	if elapsed <= 0 {
		return LifecycleSet
	}
	if elapsed <= policy.FreshWindowSeconds {
		return LifecycleActive
	}

	effective := EffectiveIntensity(declared, declaredAt, policy, now)
	if effective <= policy.Baseline {
		return LifecycleExpired
	}
	staleLevel := float64(policy.Baseline) + float64(declared-policy.Baseline)*policy.StaleThreshold
	if float64(effective) <= math.Floor(staleLevel) {
		return LifecycleStale
	}
	return LifecycleDecaying
}

// #endregion lifecycle-state

// #region dimension-helpers

// DimensionEffectiveIntensity resolves the policy for a dimension (its
// own override, else the built-in for its key) and returns the decayed
// intensity. Dimensions without a declared_at keep their declared value.
func DimensionEffectiveIntensity(key string, dim vcp.PersonalDimension, now time.Time) int {
	declared := dim.IntensityOrDefault()
	if dim.Pinned {
		return declared
	}
	if dim.DeclaredAt.IsZero() {
		return declared
	}
	policy := PolicyFor(key)
	if dim.DecayPolicy != nil {
		policy = *dim.DecayPolicy
	}
	return EffectiveIntensity(declared, dim.DeclaredAt, policy, now)
}

// DimensionLifecycle resolves the policy for a dimension and classifies
// its freshness. Pinned dimensions are always active.
func DimensionLifecycle(key string, dim vcp.PersonalDimension, now time.Time) Lifecycle {
	policy := PolicyFor(key)
	if dim.DecayPolicy != nil {
		policy = *dim.DecayPolicy
	}
	if dim.Pinned {
		policy.Pinned = true
	}
	return LifecycleState(dim.IntensityOrDefault(), dim.DeclaredAt, policy, now)
}

// #endregion dimension-helpers
