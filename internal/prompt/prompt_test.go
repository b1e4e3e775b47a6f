package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/portablecontext/vcp-engine/internal/privacy"
	"github.com/portablecontext/vcp-engine/internal/vcp"
)

func TestStaticBuilderRequiresConstitution(t *testing.T) {
	_, err := StaticBuilder{}.Build(context.Background(), Request{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestStaticBuilderOutput(t *testing.T) {
	req := Request{
		Filtered: privacy.FilteredContext{
			Public:      map[string]any{"display_name": "Aisling", "goal": "Learn guitar"},
			Preferences: map[string]any{"noise_mode": "quiet_preferred"},
			Constraints: map[string]bool{"time_limited": true, "budget_limited": false, "noise_restricted": true},
		},
		Persona:        vcp.PersonaMuse,
		ConstitutionID: "personal-muse",
		Guidance:       []string{"Keep concise, reduce demands."},
	}
	out, err := StaticBuilder{}.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, want := range []string{
		"Constitution: personal-muse",
		"persona: muse",
		"Display Name: Aisling",
		"Noise Mode: quiet_preferred",
		"Constraints: noise_restricted, time_limited",
		"- Keep concise, reduce demands.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "budget_limited") {
		t.Errorf("inactive constraint listed:\n%s", out)
	}
}

func TestStaticBuilderDeterministic(t *testing.T) {
	req := Request{
		Filtered: privacy.FilteredContext{
			Public: map[string]any{"c": 1, "a": 2, "b": 3},
		},
		ConstitutionID: "test",
	}
	first, err := StaticBuilder{}.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := StaticBuilder{}.Build(context.Background(), req)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if again != first {
			t.Fatalf("output not deterministic:\n%s\nvs\n%s", first, again)
		}
	}
}

func TestMockBuilderRecordsCalls(t *testing.T) {
	mock := &MockBuilder{Response: "canned"}
	out, err := mock.Build(context.Background(), Request{ConstitutionID: "x"})
	if err != nil || out != "canned" {
		t.Fatalf("Build = %q/%v", out, err)
	}
	if len(mock.Calls) != 1 || mock.Calls[0].ConstitutionID != "x" {
		t.Errorf("calls = %+v", mock.Calls)
	}

	mock.Err = ErrUnavailable
	if _, err := mock.Build(context.Background(), Request{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v", err)
	}
}
