package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/portablecontext/vcp-engine/internal/decay"
	"github.com/portablecontext/vcp-engine/internal/vcp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ConfidenceThreshold != 0.70 {
		t.Errorf("confidence threshold = %v", cfg.ConfidenceThreshold)
	}
	if cfg.RateLimit.Limit != 30 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	// No overrides: built-in decay policies pass through.
	if got := cfg.PolicyFor(vcp.DimEnergyLevel); got.HalfLifeSeconds != 7200 {
		t.Errorf("energy policy = %+v", got)
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.ConfidenceThreshold != want.ConfidenceThreshold ||
		cfg.RateLimit != want.RateLimit || cfg.AuditPath != "" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
confidence_threshold = 0.5
audit_path = "  /var/lib/vcp/audit.db  "

[rate_limit]
limit = 10
window_seconds = 30
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfidenceThreshold != 0.5 {
		t.Errorf("confidence = %v", cfg.ConfidenceThreshold)
	}
	if cfg.AuditPath != "/var/lib/vcp/audit.db" {
		t.Errorf("audit path = %q", cfg.AuditPath)
	}
	if cfg.RateLimit.Limit != 10 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	// Undefined key keeps its default.
	if cfg.RateLimit.CleanupThreshold != Default().RateLimit.CleanupThreshold {
		t.Errorf("cleanup threshold = %d", cfg.RateLimit.CleanupThreshold)
	}
}

func TestLoadDecayOverlay(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[decay.energy_level]
curve = "linear"
full_decay_seconds = 3600
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	policy := cfg.PolicyFor(vcp.DimEnergyLevel)
	if policy.Curve != vcp.CurveLinear || policy.FullDecaySeconds != 3600 {
		t.Errorf("policy = %+v", policy)
	}
	// Untouched fields keep the built-in default values.
	base := decay.PolicyFor(vcp.DimEnergyLevel)
	if policy.HalfLifeSeconds != base.HalfLifeSeconds || policy.Baseline != base.Baseline {
		t.Errorf("policy = %+v, base = %+v", policy, base)
	}
	// Other dimensions are unaffected.
	if got := cfg.PolicyFor(vcp.DimPerceivedUrgency); !reflect.DeepEqual(got, decay.PolicyFor(vcp.DimPerceivedUrgency)) {
		t.Errorf("urgency policy = %+v", got)
	}
}

func TestLoadStepThresholds(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[decay.perceived_urgency]
curve = "step"
step_thresholds = [
  { after_seconds = 300, intensity = 4 },
  { after_seconds = 600, intensity = 2 },
]
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	policy := cfg.PolicyFor(vcp.DimPerceivedUrgency)
	if policy.Curve != vcp.CurveStep || len(policy.StepThresholds) != 2 {
		t.Fatalf("policy = %+v", policy)
	}
	if policy.StepThresholds[1] != (vcp.StepThreshold{AfterSeconds: 600, Intensity: 2}) {
		t.Errorf("steps = %+v", policy.StepThresholds)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	if _, err := Load(writeConfig(t, "confidence_threshold = 1.5\n")); err == nil {
		t.Error("out-of-range threshold accepted")
	}
	if _, err := Load(writeConfig(t, "[decay.energy_level]\ncurve = \"parabolic\"\n")); err == nil {
		t.Error("unknown curve accepted")
	}
	if _, err := Load(writeConfig(t, "confidence_threshold = \"not a number\"\n")); err == nil {
		t.Error("type mismatch accepted")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file accepted")
	}
}
