// Package config loads engine settings and decay-policy overrides from
// a TOML file, overlaying them onto built-in defaults. Only keys present
// in the file override; everything else keeps its default.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/portablecontext/vcp-engine/internal/decay"
	"github.com/portablecontext/vcp-engine/internal/ratelimit"
	"github.com/portablecontext/vcp-engine/internal/signals"
	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region config

// RateLimitConfig tunes the request limiter.
type RateLimitConfig struct {
	Limit            int
	Window           time.Duration
	CleanupThreshold int
}

// Config holds all runtime settings.
type Config struct {
	ConfidenceThreshold float64
	AuditPath           string
	RateLimit           RateLimitConfig
	// DecayPolicies maps dimension keys to overridden policies; absent
	// dimensions keep the built-in defaults.
	DecayPolicies map[string]vcp.DecayPolicy
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ConfidenceThreshold: signals.DefaultConfidenceThreshold,
		RateLimit: RateLimitConfig{
			Limit:            ratelimit.DefaultLimit,
			Window:           ratelimit.DefaultWindow,
			CleanupThreshold: ratelimit.DefaultCleanupThreshold,
		},
		DecayPolicies: map[string]vcp.DecayPolicy{},
	}
}

// PolicyFor resolves the decay policy for a dimension: the configured
// override if present, else the built-in default.
func (c Config) PolicyFor(dimension string) vcp.DecayPolicy {
	if p, ok := c.DecayPolicies[dimension]; ok {
		return p
	}
	return decay.PolicyFor(dimension)
}

// #endregion config

// #region file-format

type rawStep struct {
	AfterSeconds float64 `toml:"after_seconds"`
	Intensity    int     `toml:"intensity"`
}

type rawPolicy struct {
	Curve              string    `toml:"curve"`
	HalfLifeSeconds    float64   `toml:"half_life_seconds"`
	Baseline           int       `toml:"baseline"`
	StaleThreshold     float64   `toml:"stale_threshold"`
	FreshWindowSeconds float64   `toml:"fresh_window_seconds"`
	Pinned             bool      `toml:"pinned"`
	ResetOnEngagement  bool      `toml:"reset_on_engagement"`
	FullDecaySeconds   float64   `toml:"full_decay_seconds"`
	StepThresholds     []rawStep `toml:"step_thresholds"`
}

type rawRateLimit struct {
	Limit            int `toml:"limit"`
	WindowSeconds    int `toml:"window_seconds"`
	CleanupThreshold int `toml:"cleanup_threshold"`
}

type fileConfig struct {
	ConfidenceThreshold float64              `toml:"confidence_threshold"`
	AuditPath           string               `toml:"audit_path"`
	RateLimit           rawRateLimit         `toml:"rate_limit"`
	Decay               map[string]rawPolicy `toml:"decay"`
}

// #endregion file-format

// #region load

// Load reads a TOML config file and overlays it onto the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("confidence_threshold") {
		if raw.ConfidenceThreshold <= 0 || raw.ConfidenceThreshold > 1 {
			return Config{}, fmt.Errorf("load config: confidence_threshold %v out of (0, 1]", raw.ConfidenceThreshold)
		}
		cfg.ConfidenceThreshold = raw.ConfidenceThreshold
	}
	if meta.IsDefined("audit_path") {
		cfg.AuditPath = strings.TrimSpace(raw.AuditPath)
	}
	if meta.IsDefined("rate_limit", "limit") {
		cfg.RateLimit.Limit = raw.RateLimit.Limit
	}
	if meta.IsDefined("rate_limit", "window_seconds") {
		cfg.RateLimit.Window = time.Duration(raw.RateLimit.WindowSeconds) * time.Second
	}
	if meta.IsDefined("rate_limit", "cleanup_threshold") {
		cfg.RateLimit.CleanupThreshold = raw.RateLimit.CleanupThreshold
	}

	for dimension, rawPol := range raw.Decay {
		policy, err := overlayPolicy(decay.PolicyFor(dimension), rawPol, meta, dimension)
		if err != nil {
			return Config{}, err
		}
		cfg.DecayPolicies[dimension] = policy
	}

	return cfg, nil
}

// overlayPolicy applies defined keys of one [decay.<dimension>] section
// onto the dimension's default policy.
func overlayPolicy(base vcp.DecayPolicy, raw rawPolicy, meta toml.MetaData, dimension string) (vcp.DecayPolicy, error) {
	defined := func(key string) bool { return meta.IsDefined("decay", dimension, key) }

	if defined("curve") {
		curve := vcp.DecayCurve(strings.TrimSpace(raw.Curve))
		switch curve {
		case vcp.CurveExponential, vcp.CurveLinear, vcp.CurveStep:
			base.Curve = curve
		default:
			return vcp.DecayPolicy{}, fmt.Errorf("load config: decay.%s: unknown curve %q", dimension, raw.Curve)
		}
	}
	if defined("half_life_seconds") {
		base.HalfLifeSeconds = raw.HalfLifeSeconds
	}
	if defined("baseline") {
		base.Baseline = raw.Baseline
	}
	if defined("stale_threshold") {
		base.StaleThreshold = raw.StaleThreshold
	}
	if defined("fresh_window_seconds") {
		base.FreshWindowSeconds = raw.FreshWindowSeconds
	}
	if defined("pinned") {
		base.Pinned = raw.Pinned
	}
	if defined("reset_on_engagement") {
		base.ResetOnEngagement = raw.ResetOnEngagement
	}
	if defined("full_decay_seconds") {
		base.FullDecaySeconds = raw.FullDecaySeconds
	}
	if defined("step_thresholds") {
		steps := make([]vcp.StepThreshold, len(raw.StepThresholds))
		for i, s := range raw.StepThresholds {
			steps[i] = vcp.StepThreshold{AfterSeconds: s.AfterSeconds, Intensity: s.Intensity}
		}
		base.StepThresholds = steps
	}
	return base, nil
}

// #endregion load
