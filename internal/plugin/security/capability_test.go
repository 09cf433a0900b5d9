package security

import (
	"errors"
	"slices"
	"testing"
)

func TestKnown(t *testing.T) {
	want := []Capability{CapabilityEditor, CapabilityKeymap, CapabilityMode, CapabilityTextObject}
	if got := Known(); !slices.Equal(got, want) {
		t.Errorf("Known() = %v, want %v", got, want)
	}
	for _, c := range want {
		if !c.Valid() || c.Summary() == "" {
			t.Errorf("%q: Valid = %v, Summary = %q", c, c.Valid(), c.Summary())
		}
	}
	if Capability("shell").Valid() {
		t.Error("shell should not be valid")
	}
}

func TestCapabilityParent(t *testing.T) {
	tests := map[Capability]Capability{
		CapabilityTextObject: CapabilityEditor,
		CapabilityKeymap:     CapabilityEditor,
		CapabilityEditor:     "",
	}
	for c, want := range tests {
		if got := c.Parent(); got != want {
			t.Errorf("%q.Parent() = %q, want %q", c, got, want)
		}
	}
}

func TestCapabilityCovers(t *testing.T) {
	tests := []struct {
		have, need Capability
		want       bool
	}{
		{CapabilityEditor, CapabilityEditor, true},
		{CapabilityEditor, CapabilityTextObject, true},
		{CapabilityTextObject, CapabilityEditor, false},
		{CapabilityMode, CapabilityKeymap, false},
		{CapabilityEditor, "editorial", false},
	}
	for _, tt := range tests {
		if got := tt.have.Covers(tt.need); got != tt.want {
			t.Errorf("%q.Covers(%q) = %v, want %v", tt.have, tt.need, got, tt.want)
		}
	}
}

func TestRisk(t *testing.T) {
	if CapabilityKeymap.Risk() != RiskMedium || CapabilityMode.Risk() != RiskLow {
		t.Error("unexpected risk grades")
	}
	if RiskHigh.String() != "high" || Risk(9).String() != "unknown" {
		t.Error("unexpected Risk strings")
	}
}

func TestParse(t *testing.T) {
	caps, err := Parse([]string{"editor.textobject", " editor.mode "})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !slices.Equal(caps, []Capability{CapabilityTextObject, CapabilityMode}) {
		t.Errorf("Parse = %v", caps)
	}

	_, err = Parse([]string{"shell"})
	var denied *DeniedError
	if !errors.As(err, &denied) || denied.Capability != "shell" {
		t.Errorf("Parse(shell) error = %v, want DeniedError", err)
	}
	if err.Error() != `capability "shell": unknown capability` {
		t.Errorf("Error() = %q", err.Error())
	}
}
