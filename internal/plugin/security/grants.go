package security

import "slices"

// Grants is the fixed set of capabilities one script runs with. The zero
// value grants nothing and is safe to use.
type Grants struct {
	owner string
	caps  []Capability
}

// NewGrants returns the grants for owner, usually a script name.
// Duplicates are dropped.
func NewGrants(owner string, caps ...Capability) Grants {
	set := slices.Clone(caps)
	slices.Sort(set)
	return Grants{owner: owner, caps: slices.Compact(set)}
}

func (g Grants) Owner() string { return g.owner }

// List returns the granted capabilities in sorted order.
func (g Grants) List() []Capability { return slices.Clone(g.caps) }

// Allows reports whether any granted capability covers c. The empty
// capability is always allowed.
func (g Grants) Allows(c Capability) bool {
	if c == "" {
		return true
	}
	return slices.ContainsFunc(g.caps, func(have Capability) bool {
		return have.Covers(c)
	})
}

// Check is Allows as an error. action names what needed c.
func (g Grants) Check(c Capability, action string) error {
	if g.Allows(c) {
		return nil
	}
	owner := g.owner
	if owner == "" {
		owner = "script"
	}
	return &DeniedError{Capability: c, Action: action, Reason: "not granted to " + owner}
}
