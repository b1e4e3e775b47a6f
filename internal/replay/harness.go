package replay

import (
	"fmt"
	"strings"
	"time"

	"github.com/portablecontext/vcp-engine/internal/token"
	"github.com/portablecontext/vcp-engine/internal/transition"
	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region types

// StepResult captures the outcome of one fixture step.
type StepResult struct {
	Name     string
	Token    string
	Severity transition.Severity
	Failures []string
}

// Passed reports whether the step met every expectation.
func (r StepResult) Passed() bool { return len(r.Failures) == 0 }

// Summary aggregates a fixture run.
type Summary struct {
	TotalSteps int
	Passed     int
	Failed     int
}

// #endregion types

// #region run

// Run replays every step of a fixture: encode the snapshot, compare the
// transition against the previous snapshot, and check the step's
// expectations. The private-value leak check runs on every step
// regardless of what the fixture asks for.
func Run(fixture *Fixture) []StepResult {
	results := make([]StepResult, 0, len(fixture.Steps))
	var previous *vcp.VCPContext

	for _, step := range fixture.Steps {
		step := step
		result := StepResult{Name: step.Name}
		ctx := step.Context

		result.Token = token.Encode(ctx, fixture.Now)
		checkToken(&result, ctx, step.Expect, fixture.Now)

		prev := previous
		if prev == nil && step.Expect.FromEmpty {
			prev = &vcp.VCPContext{}
		}
		if prev != nil {
			detected := transition.Detect(prev, &ctx)
			result.Severity = detected.Severity
			if step.Expect.Severity != "" && string(detected.Severity) != step.Expect.Severity {
				result.Failures = append(result.Failures,
					fmt.Sprintf("severity = %s, want %s", detected.Severity, step.Expect.Severity))
			}
			if step.Expect.AffectsSafety != nil && detected.AffectsSafety != *step.Expect.AffectsSafety {
				result.Failures = append(result.Failures,
					fmt.Sprintf("affects_safety = %v, want %v", detected.AffectsSafety, *step.Expect.AffectsSafety))
			}
		} else if step.Expect.Severity != "" {
			result.Failures = append(result.Failures,
				"severity expected on first step without from_empty")
		}

		previous = &step.Context
		results = append(results, result)
	}
	return results
}

func checkToken(result *StepResult, ctx vcp.VCPContext, expect Expectations, now time.Time) {
	encoded := result.Token

	if expect.TokenEmpty {
		if encoded != "" {
			result.Failures = append(result.Failures, "token not empty")
		}
		return
	}

	for _, want := range expect.TokenContains {
		if !strings.Contains(encoded, want) {
			result.Failures = append(result.Failures, fmt.Sprintf("token missing %q", want))
		}
	}

	if len(expect.TokenLines) > 0 {
		parsed := token.Parse(encoded)
		for key, want := range expect.TokenLines {
			if got, ok := parsed[key]; !ok || got != want {
				result.Failures = append(result.Failures,
					fmt.Sprintf("line %s = %q, want %q", key, got, want))
			}
		}
	}

	if expect.WireRoundTrip {
		wire := token.ToWire(ctx, now)
		if restored := token.FromWire(wire); restored != encoded {
			result.Failures = append(result.Failures, "wire round trip mismatch")
		}
	}

	// Private values must never surface in a token, whatever the
	// fixture asserts.
	for _, key := range ctx.PrivateKeys() {
		value, ok := ctx.PrivateContext[key].(string)
		if !ok || value == "" {
			continue
		}
		if strings.Contains(encoded, value) {
			result.Failures = append(result.Failures,
				fmt.Sprintf("private value of %s leaked into token", key))
		}
	}
}

// Summarize computes aggregate stats from step results.
func Summarize(results []StepResult) Summary {
	s := Summary{TotalSteps: len(results)}
	for _, r := range results {
		if r.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// #endregion run
