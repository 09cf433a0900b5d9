package security

import (
	"fmt"
	"slices"
	"strings"
)

// Capability names a permission a script can be granted.
type Capability string

const (
	CapabilityEditor     Capability = "editor"
	CapabilityTextObject Capability = "editor.textobject"
	CapabilityMode       Capability = "editor.mode"
	CapabilityKeymap     Capability = "editor.keymap"
)

// Risk grades how much a capability lets a script change.
type Risk int

const (
	RiskLow Risk = iota
	RiskMedium
	RiskHigh
)

func (r Risk) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	}
	return "unknown"
}

type capabilityInfo struct {
	summary string
	risk    Risk
}

var known = map[Capability]capabilityInfo{
	CapabilityEditor:     {"every editor module", RiskMedium},
	CapabilityTextObject: {"resolve function text objects and change the selection", RiskLow},
	CapabilityMode:       {"read and switch the editor mode", RiskLow},
	CapabilityKeymap:     {"add and remove key bindings", RiskMedium},
}

// Known lists every capability in sorted order.
func Known() []Capability {
	caps := make([]Capability, 0, len(known))
	for c := range known {
		caps = append(caps, c)
	}
	slices.Sort(caps)
	return caps
}

// Valid reports whether c is a known capability.
func (c Capability) Valid() bool {
	_, ok := known[c]
	return ok
}

// Summary describes what c allows, or "" if c is unknown.
func (c Capability) Summary() string { return known[c].summary }

func (c Capability) Risk() Risk { return known[c].risk }

// Parent is the capability one level up, or "" at the top.
func (c Capability) Parent() Capability {
	i := strings.LastIndexByte(string(c), '.')
	if i < 0 {
		return ""
	}
	return c[:i]
}

// Covers reports whether holding c grants other: c equals other or is
// one of its ancestors.
func (c Capability) Covers(other Capability) bool {
	return c == other || strings.HasPrefix(string(other), string(c)+".")
}

// Parse converts names such as those given on the command line,
// rejecting unknown capabilities.
func Parse(names []string) ([]Capability, error) {
	caps := make([]Capability, 0, len(names))
	for _, name := range names {
		c := Capability(strings.TrimSpace(name))
		if !c.Valid() {
			return nil, &DeniedError{Capability: c, Reason: "unknown capability"}
		}
		caps = append(caps, c)
	}
	return caps, nil
}

// DeniedError is returned when a capability is unknown or not granted.
type DeniedError struct {
	Capability Capability
	Action     string // what was attempted, may be empty
	Reason     string
}

func (e *DeniedError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("capability %q: %s", e.Capability, e.Reason)
	}
	return fmt.Sprintf("%s needs capability %q: %s", e.Action, e.Capability, e.Reason)
}
