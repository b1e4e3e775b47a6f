package decay

import (
	"testing"
	"time"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

var base = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func at(offsetSeconds int) time.Time {
	return base.Add(time.Duration(offsetSeconds) * time.Second)
}

func expPolicy(halfLife float64) vcp.DecayPolicy {
	return vcp.DecayPolicy{
		Curve:              vcp.CurveExponential,
		HalfLifeSeconds:    halfLife,
		Baseline:           1,
		StaleThreshold:     0.3,
		FreshWindowSeconds: 60,
	}
}

func TestDefaultPolicies(t *testing.T) {
	policies := DefaultPolicies()

	wantHalfLives := map[string]float64{
		vcp.DimPerceivedUrgency: 900,
		vcp.DimBodySignals:      14400,
		vcp.DimCognitiveState:   720,
		vcp.DimEmotionalTone:    1800,
		vcp.DimEnergyLevel:      7200,
	}
	for key, want := range wantHalfLives {
		p, ok := policies[key]
		if !ok {
			t.Fatalf("missing policy for %s", key)
		}
		if p.HalfLifeSeconds != want {
			t.Errorf("%s half-life = %v, want %v", key, p.HalfLifeSeconds, want)
		}
		if p.Curve != vcp.CurveExponential {
			t.Errorf("%s curve = %s, want exponential", key, p.Curve)
		}
		if p.Baseline != 1 {
			t.Errorf("%s baseline = %d, want 1", key, p.Baseline)
		}
		if got, want := p.ResetOnEngagement, key == vcp.DimCognitiveState; got != want {
			t.Errorf("%s reset_on_engagement = %v, want %v", key, got, want)
		}
	}
}

func TestPolicyForUnknownDimension(t *testing.T) {
	p := PolicyFor("unknown_dimension")
	if p.HalfLifeSeconds != 900 {
		t.Fatalf("fallback half-life = %v, want 900 (perceived_urgency)", p.HalfLifeSeconds)
	}
}

func TestEffectiveIntensityExponential(t *testing.T) {
	policy := expPolicy(900)

	cases := []struct {
		name     string
		declared int
		now      time.Time
		want     int
	}{
		{"time zero", 5, base, 5},
		{"one half-life", 5, at(900), 3},
		{"two half-lives", 5, at(1800), 2},
		{"24 hours floors at baseline", 5, at(86400), 1},
		{"declared equals baseline", 1, at(900), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectiveIntensity(tc.declared, base, policy, tc.now)
			if got != tc.want {
				t.Fatalf("EffectiveIntensity = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEffectiveIntensityFutureDeclaration(t *testing.T) {
	policy := expPolicy(900)
	if got := EffectiveIntensity(5, at(60), policy, base); got != 5 {
		t.Fatalf("future declaration = %d, want declared 5", got)
	}
}

func TestEffectiveIntensityLinear(t *testing.T) {
	policy := vcp.DecayPolicy{
		Curve:              vcp.CurveLinear,
		HalfLifeSeconds:    1000,
		Baseline:           1,
		StaleThreshold:     0.3,
		FreshWindowSeconds: 60,
		FullDecaySeconds:   4000,
	}

	if got := EffectiveIntensity(5, base, policy, base); got != 5 {
		t.Errorf("time zero = %d, want 5", got)
	}
	if got := EffectiveIntensity(5, base, policy, at(2000)); got != 3 {
		t.Errorf("halfway = %d, want 3", got)
	}
	if got := EffectiveIntensity(5, base, policy, at(4000)); got != 1 {
		t.Errorf("full decay = %d, want 1", got)
	}

	// full_decay_seconds defaults to half_life * 4
	policy.FullDecaySeconds = 0
	if got := EffectiveIntensity(5, base, policy, at(4000)); got != 1 {
		t.Errorf("default full decay = %d, want 1", got)
	}
}

func TestEffectiveIntensityStep(t *testing.T) {
	policy := vcp.DecayPolicy{
		Curve:              vcp.CurveStep,
		HalfLifeSeconds:    1000,
		Baseline:           1,
		StaleThreshold:     0.3,
		FreshWindowSeconds: 60,
		StepThresholds: []vcp.StepThreshold{
			{AfterSeconds: 300, Intensity: 4},
			{AfterSeconds: 600, Intensity: 3},
			{AfterSeconds: 1200, Intensity: 2},
			{AfterSeconds: 3600, Intensity: 1},
		},
	}

	cases := []struct {
		elapsed int
		want    int
	}{
		{100, 5},
		{300, 4},
		{700, 3},
		{3600, 1},
	}
	for _, tc := range cases {
		if got := EffectiveIntensity(5, base, policy, at(tc.elapsed)); got != tc.want {
			t.Errorf("elapsed %ds = %d, want %d", tc.elapsed, got, tc.want)
		}
	}

	policy.StepThresholds = nil
	if got := EffectiveIntensity(5, base, policy, at(1000)); got != 5 {
		t.Errorf("no thresholds = %d, want declared 5", got)
	}
}

func TestEffectiveIntensityUnknownCurve(t *testing.T) {
	policy := expPolicy(1000)
	policy.Curve = "unknown_curve"
	if got := EffectiveIntensity(5, base, policy, at(500)); got != 5 {
		t.Fatalf("unknown curve = %d, want declared 5", got)
	}
}

func TestEffectiveIntensityPinned(t *testing.T) {
	policy := expPolicy(100)
	policy.Pinned = true
	if got := EffectiveIntensity(5, base, policy, at(86400)); got != 5 {
		t.Fatalf("pinned = %d, want declared 5", got)
	}
}

func TestEffectiveIntensityMonotonic(t *testing.T) {
	policy := expPolicy(900)
	prev := 5
	for elapsed := 0; elapsed <= 7200; elapsed += 60 {
		got := EffectiveIntensity(5, base, policy, at(elapsed))
		if got > prev {
			t.Fatalf("intensity rose from %d to %d at elapsed %ds", prev, got, elapsed)
		}
		if got < policy.Baseline {
			t.Fatalf("intensity %d fell below baseline at elapsed %ds", got, elapsed)
		}
		prev = got
	}
}

func TestLifecycleState(t *testing.T) {
	policy := expPolicy(900)

	cases := []struct {
		name     string
		declared int
		now      time.Time
		want     Lifecycle
	}{
		{"set at time zero", 5, base, LifecycleSet},
		{"active within fresh window", 5, at(30), LifecycleActive},
		{"decaying after fresh window", 5, at(120), LifecycleDecaying},
		{"stale below threshold", 5, at(1350), LifecycleStale},
		{"expired at baseline", 5, at(86400), LifecycleExpired},
		{"week-old is expired", 5, at(604800), LifecycleExpired},
		{"declared at baseline expires after fresh window", 1, at(120), LifecycleExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LifecycleState(tc.declared, base, policy, tc.now)
			if got != tc.want {
				t.Fatalf("LifecycleState = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestLifecycleStatePinned(t *testing.T) {
	policy := expPolicy(900)
	policy.Pinned = true
	if got := LifecycleState(5, base, policy, at(86400)); got != LifecycleActive {
		t.Fatalf("pinned lifecycle = %s, want active", got)
	}
}

func TestLifecycleStateFutureDeclaration(t *testing.T) {
	policy := expPolicy(900)
	if got := LifecycleState(5, at(60), policy, base); got != LifecycleSet {
		t.Fatalf("future declaration lifecycle = %s, want set", got)
	}
}

func TestLifecycleOrdering(t *testing.T) {
	policy := expPolicy(900)
	order := map[Lifecycle]int{
		LifecycleSet:      0,
		LifecycleActive:   1,
		LifecycleDecaying: 2,
		LifecycleStale:    3,
		LifecycleExpired:  4,
	}
	prev := 0
	for elapsed := 0; elapsed <= 86400; elapsed += 30 {
		state := LifecycleState(5, base, policy, at(elapsed))
		rank, ok := order[state]
		if !ok {
			t.Fatalf("unknown lifecycle %q at elapsed %ds", state, elapsed)
		}
		if rank < prev {
			t.Fatalf("lifecycle regressed to %s at elapsed %ds", state, elapsed)
		}
		prev = rank
	}
}

func TestDimensionEffectiveIntensity(t *testing.T) {
	dim := vcp.PersonalDimension{Value: "pressured", Intensity: 5, DeclaredAt: base}
	if got := DimensionEffectiveIntensity(vcp.DimPerceivedUrgency, dim, at(900)); got != 3 {
		t.Errorf("urgency after one half-life = %d, want 3", got)
	}

	// No declared_at: keeps the declared value.
	bare := vcp.PersonalDimension{Value: "focused", Intensity: 4}
	if got := DimensionEffectiveIntensity(vcp.DimCognitiveState, bare, at(86400)); got != 4 {
		t.Errorf("no declared_at = %d, want 4", got)
	}

	// Missing intensity defaults to 3.
	def := vcp.PersonalDimension{Value: "tense", DeclaredAt: base}
	if got := DimensionEffectiveIntensity(vcp.DimEmotionalTone, def, base); got != 3 {
		t.Errorf("default intensity = %d, want 3", got)
	}

	// Per-dimension override wins over the built-in.
	override := expPolicy(60)
	withPolicy := vcp.PersonalDimension{Value: "pain", Intensity: 5, DeclaredAt: base, DecayPolicy: &override}
	if got := DimensionEffectiveIntensity(vcp.DimBodySignals, withPolicy, at(120)); got != 2 {
		t.Errorf("override policy = %d, want 2", got)
	}
}

func TestDimensionLifecyclePinned(t *testing.T) {
	dim := vcp.PersonalDimension{Value: "recovering", Intensity: 3, DeclaredAt: base, Pinned: true}
	if got := DimensionLifecycle(vcp.DimBodySignals, dim, at(604800)); got != LifecycleActive {
		t.Fatalf("pinned dimension lifecycle = %s, want active", got)
	}
}
