package textobject

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMatchMode is returned when a match mode name is not recognized.
var ErrInvalidMatchMode = errors.New("invalid match mode")

// MatchMode determines how a rule pattern is compared with a kind label.
type MatchMode uint8

const (
	// MatchExact requires the whole label to equal the pattern.
	MatchExact MatchMode = iota
	// MatchPrefix requires the label to start with the pattern.
	MatchPrefix
	// MatchSuffix requires the label to end with the pattern.
	MatchSuffix
	// MatchContains requires the label to contain the pattern.
	MatchContains
)

// String returns the mode name used in configuration files.
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	case MatchSuffix:
		return "suffix"
	case MatchContains:
		return "contains"
	default:
		return "unknown"
	}
}

// ParseMatchMode parses a mode name. Matching is case-insensitive and
// "substring" is accepted for MatchContains.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact", "":
		return MatchExact, nil
	case "prefix":
		return MatchPrefix, nil
	case "suffix":
		return MatchSuffix, nil
	case "contains", "substring":
		return MatchContains, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMatchMode, s)
	}
}

// Rule classifies kind labels by pattern.
type Rule struct {
	Pattern string
	Mode    MatchMode
}

// Exact returns a rule matching the whole label.
func Exact(pattern string) Rule { return Rule{Pattern: pattern, Mode: MatchExact} }

// Prefix returns a rule matching labels starting with pattern.
func Prefix(pattern string) Rule { return Rule{Pattern: pattern, Mode: MatchPrefix} }

// Suffix returns a rule matching labels ending with pattern.
func Suffix(pattern string) Rule { return Rule{Pattern: pattern, Mode: MatchSuffix} }

// Contains returns a rule matching labels containing pattern.
func Contains(pattern string) Rule { return Rule{Pattern: pattern, Mode: MatchContains} }

// String returns "mode:pattern".
func (r Rule) String() string {
	return r.Mode.String() + ":" + r.Pattern
}

// matches reports whether the upper-cased label satisfies the rule.
// pattern must already be upper-cased.
func (r Rule) matches(label string) bool {
	switch r.Mode {
	case MatchExact:
		return label == r.Pattern
	case MatchPrefix:
		return strings.HasPrefix(label, r.Pattern)
	case MatchSuffix:
		return strings.HasSuffix(label, r.Pattern)
	case MatchContains:
		return strings.Contains(label, r.Pattern)
	default:
		return false
	}
}

// RuleSet is an immutable, case-insensitive set of rules.
// The zero value matches nothing.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet builds a rule set. Empty patterns are rejected because they
// would match every label under prefix, suffix and contains.
func NewRuleSet(rules ...Rule) (RuleSet, error) {
	out := make([]Rule, 0, len(rules))
	for i, r := range rules {
		p := strings.ToUpper(strings.TrimSpace(r.Pattern))
		if p == "" {
			return RuleSet{}, fmt.Errorf("rule %d: empty pattern", i)
		}
		if r.Mode > MatchContains {
			return RuleSet{}, fmt.Errorf("rule %d (%s): %w", i, p, ErrInvalidMatchMode)
		}
		out = append(out, Rule{Pattern: p, Mode: r.Mode})
	}
	return RuleSet{rules: out}, nil
}

// MustRuleSet is like NewRuleSet but panics on error.
func MustRuleSet(rules ...Rule) RuleSet {
	rs, err := NewRuleSet(rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

// Match reports whether any rule matches label.
func (rs RuleSet) Match(label string) bool {
	if label == "" {
		return false
	}
	upper := strings.ToUpper(label)
	for _, r := range rs.rules {
		if r.matches(upper) {
			return true
		}
	}
	return false
}

// Rules returns a copy of the normalized rules.
func (rs RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules.
func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// Union returns a new set holding the rules of rs followed by other.
func (rs RuleSet) Union(other RuleSet) RuleSet {
	out := make([]Rule, 0, len(rs.rules)+len(other.rules))
	out = append(out, rs.rules...)
	out = append(out, other.rules...)
	return RuleSet{rules: out}
}
