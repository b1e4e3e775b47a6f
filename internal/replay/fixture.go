// Package replay runs conformance fixtures through the engine: JSON
// sequences of context snapshots with expected transition severities and
// token assertions. Fixtures pin observed behavior so refactors cannot
// silently change the wire format or severity classification.
package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a conformance fixture.
type Fixture struct {
	Description string    `json:"description"`
	Now         time.Time `json:"now"`
	Steps       []Step    `json:"steps"`
}

// Step is one snapshot plus the expectations checked against it.
type Step struct {
	Name    string         `json:"name"`
	Context vcp.VCPContext `json:"context"`
	Expect  Expectations   `json:"expect"`
}

// Expectations lists the checks for one step. Zero-valued fields are
// skipped, except the leak check which always runs.
type Expectations struct {
	// Severity of the transition from the previous step's context.
	// Ignored on the first step unless FromEmpty is set.
	Severity      string `json:"severity,omitempty"`
	AffectsSafety *bool  `json:"affects_safety,omitempty"`
	FromEmpty     bool   `json:"from_empty,omitempty"`

	// Token assertions.
	TokenContains []string          `json:"token_contains,omitempty"`
	TokenLines    map[string]string `json:"token_lines,omitempty"`
	TokenEmpty    bool              `json:"token_empty,omitempty"`
	WireRoundTrip bool              `json:"wire_round_trip,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	f, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return f, nil
}

// ParseFixture parses fixture JSON and validates the minimum shape.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("fixture has no steps")
	}
	if f.Now.IsZero() {
		return nil, fmt.Errorf("fixture has no now timestamp")
	}
	return &f, nil
}

// #endregion fixture-loader
