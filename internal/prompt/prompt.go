// Package prompt defines the downstream prompt-building collaborator.
// The engine hands builders a filtered projection only; private context
// never reaches this boundary. Failures surface as a distinguishable
// sentinel rather than being swallowed.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/portablecontext/vcp-engine/internal/privacy"
	"github.com/portablecontext/vcp-engine/internal/vcp"
)

// ErrUnavailable signals that the downstream generation service could
// not produce a prompt. Callers must surface it, not swallow it.
var ErrUnavailable = errors.New("prompt builder unavailable")

// #region builder

// Request carries everything a builder may use.
type Request struct {
	Filtered       privacy.FilteredContext
	Persona        vcp.Persona
	ConstitutionID string
	Guidance       []string
}

// Builder turns a filtered context into instructional text.
type Builder interface {
	Build(ctx context.Context, req Request) (string, error)
}

// #endregion builder

// #region static-builder

// StaticBuilder renders a deterministic prompt from the request alone,
// with no external service. It doubles as the test builder.
type StaticBuilder struct{}

// Build renders the filtered context as a plain instructional block.
func (StaticBuilder) Build(_ context.Context, req Request) (string, error) {
	if req.ConstitutionID == "" {
		return "", fmt.Errorf("build prompt: missing constitution id: %w", ErrUnavailable)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Constitution: %s", req.ConstitutionID)
	if req.Persona != "" {
		fmt.Fprintf(&b, " (persona: %s)", req.Persona)
	}
	b.WriteByte('\n')

	writeSection(&b, "Profile", req.Filtered.Public)
	writeSection(&b, "Preferences", req.Filtered.Preferences)

	var active []string
	for flag, on := range req.Filtered.Constraints {
		if on {
			active = append(active, flag)
		}
	}
	sort.Strings(active)
	if len(active) > 0 {
		fmt.Fprintf(&b, "Constraints: %s\n", strings.Join(active, ", "))
	}

	for _, line := range req.Guidance {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String(), nil
}

func writeSection(b *strings.Builder, title string, fields map[string]any) {
	if len(fields) == 0 {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %v\n", privacy.FormatFieldName(k), fields[k])
	}
}

// #endregion static-builder

// #region mock

// MockBuilder is a test double recording every request it receives.
type MockBuilder struct {
	Response string
	Err      error
	Calls    []Request
}

// Build records the call and returns the configured response.
func (m *MockBuilder) Build(_ context.Context, req Request) (string, error) {
	m.Calls = append(m.Calls, req)
	return m.Response, m.Err
}

// #endregion mock
