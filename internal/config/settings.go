package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/funcobj/internal/config/layer"
	"github.com/dshills/funcobj/internal/textobject"
)

// Settings is a snapshot of the effective configuration.
type Settings struct {
	Logging    LoggingSettings
	TextObject TextObjectSettings
	Watch      WatchSettings
}

// LoggingSettings configures the logger.
type LoggingSettings struct {
	// Level is one of debug, info, warn, error.
	Level string
}

// WatchSettings configures reloading of changed files.
type WatchSettings struct {
	// Debounce is the quiet period before a changed file is reloaded.
	Debounce time.Duration
}

// TextObjectSettings configures the function text objects.
type TextObjectSettings struct {
	// FunctionChar is the trigger after i/a. Anything other than a single
	// character falls back to "f" when bindings are installed.
	FunctionChar string

	// TrimPolicy is text, language or none.
	TrimPolicy string

	// FunctionKinds and BodyKinds extend, or with ReplaceDefaults replace,
	// the built-in classification rules.
	FunctionKinds []RuleSetting
	BodyKinds     []RuleSetting

	// BraceLanguages extends or replaces the brace-language allow-list.
	BraceLanguages []string

	ReplaceDefaults bool

	// RulePack is the YAML rule pack the settings were merged with.
	RulePack string
}

// RuleSetting is one classification rule as written in configuration.
type RuleSetting struct {
	Pattern string `toml:"pattern" yaml:"pattern"`
	Match   string `toml:"match" yaml:"match"`
}

// decodeSettings extracts typed settings from a merged configuration map.
func decodeSettings(data map[string]any) (Settings, error) {
	d := decoder{data: data}

	s := Settings{
		Logging: LoggingSettings{
			Level: d.string(PathLogLevel),
		},
		TextObject: TextObjectSettings{
			FunctionChar:    d.string(PathFunctionChar),
			TrimPolicy:      d.string(PathTrimPolicy),
			FunctionKinds:   d.rules(PathFunctionKinds),
			BodyKinds:       d.rules(PathBodyKinds),
			BraceLanguages:  d.strings(PathBraceLanguages),
			ReplaceDefaults: d.bool(PathReplaceDefaults),
			RulePack:        d.string(PathRulePack),
		},
		Watch: WatchSettings{
			Debounce: time.Duration(d.int(PathWatchDebounce)) * time.Millisecond,
		},
	}
	if d.err != nil {
		return Settings{}, d.err
	}
	if s.Watch.Debounce < 0 {
		return Settings{}, &ValidationError{Path: PathWatchDebounce, Message: "must not be negative", Value: s.Watch.Debounce}
	}
	return s, nil
}

// decoder records the first type error and ignores missing paths.
type decoder struct {
	data map[string]any
	err  error
}

func (d *decoder) get(path string) (any, bool) {
	if d.err != nil {
		return nil, false
	}
	return layer.GetByPath(d.data, path)
}

func (d *decoder) fail(path, expected string, v any) {
	d.err = &TypeError{Path: path, Expected: expected, Value: v}
}

func (d *decoder) string(path string) string {
	v, ok := d.get(path)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(path, "string", v)
	}
	return s
}

func (d *decoder) bool(path string) bool {
	v, ok := d.get(path)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		if b == 0 || b == 1 {
			return b == 1
		}
	case int:
		if b == 0 || b == 1 {
			return b == 1
		}
	}
	d.fail(path, "bool", v)
	return false
}

func (d *decoder) int(path string) int64 {
	v, ok := d.get(path)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		if n == float64(int64(n)) {
			return int64(n)
		}
	}
	d.fail(path, "integer", v)
	return 0
}

func (d *decoder) strings(path string) []string {
	v, ok := d.get(path)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case string:
		return splitList(list)
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				d.fail(path, "[]string", v)
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	d.fail(path, "[]string", v)
	return nil
}

// rules accepts a list of {pattern, match} tables, or bare strings which
// are exact patterns.
func (d *decoder) rules(path string) []RuleSetting {
	v, ok := d.get(path)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail(path, "list of rules", v)
		return nil
	}

	out := make([]RuleSetting, 0, len(list))
	for i, item := range list {
		switch r := item.(type) {
		case string:
			out = append(out, RuleSetting{Pattern: r})
		case map[string]any:
			pattern, _ := r["pattern"].(string)
			match, _ := r["match"].(string)
			if _, ok := r["pattern"]; ok && pattern == "" {
				d.fail(fmt.Sprintf("%s[%d].pattern", path, i), "string", r["pattern"])
				return nil
			}
			if _, ok := r["match"]; ok && match == "" {
				d.fail(fmt.Sprintf("%s[%d].match", path, i), "string", r["match"])
				return nil
			}
			out = append(out, RuleSetting{Pattern: pattern, Match: match})
		default:
			d.fail(fmt.Sprintf("%s[%d]", path, i), "rule", item)
			return nil
		}
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Tables builds the immutable classification tables these settings
// describe.
func (s TextObjectSettings) Tables() (textobject.Tables, error) {
	trim, err := textobject.ParseTrimPolicy(s.TrimPolicy)
	if err != nil {
		return textobject.Tables{}, &ValidationError{Path: PathTrimPolicy, Message: "unknown trim policy", Value: s.TrimPolicy, Err: err}
	}

	functions, err := buildRuleSet(PathFunctionKinds, s.FunctionKinds)
	if err != nil {
		return textobject.Tables{}, err
	}
	bodies, err := buildRuleSet(PathBodyKinds, s.BodyKinds)
	if err != nil {
		return textobject.Tables{}, err
	}

	defaults := textobject.DefaultTables()
	tables := textobject.Tables{
		Ignore: defaults.Ignore,
		Trim:   trim,
	}

	if s.ReplaceDefaults {
		if functions.Len() == 0 {
			return textobject.Tables{}, &ValidationError{Path: PathFunctionKinds, Message: "must not be empty when replace_defaults is set", Value: s.FunctionKinds}
		}
		if bodies.Len() == 0 {
			return textobject.Tables{}, &ValidationError{Path: PathBodyKinds, Message: "must not be empty when replace_defaults is set", Value: s.BodyKinds}
		}
		tables.Functions = functions
		tables.Bodies = bodies
		tables.BraceLanguages = textobject.NewLanguageSet(s.BraceLanguages...)
		return tables, nil
	}

	tables.Functions = defaults.Functions.Union(functions)
	tables.Bodies = defaults.Bodies.Union(bodies)
	tables.BraceLanguages = textobject.NewLanguageSet(append(defaults.BraceLanguages.List(), s.BraceLanguages...)...)
	return tables, nil
}

func buildRuleSet(path string, settings []RuleSetting) (textobject.RuleSet, error) {
	rules := make([]textobject.Rule, 0, len(settings))
	for i, rs := range settings {
		mode, err := textobject.ParseMatchMode(rs.Match)
		if err != nil {
			return textobject.RuleSet{}, &ValidationError{Path: fmt.Sprintf("%s[%d].match", path, i), Message: "unknown match mode", Value: rs.Match, Err: err}
		}
		rules = append(rules, textobject.Rule{Pattern: rs.Pattern, Mode: mode})
	}

	set, err := textobject.NewRuleSet(rules...)
	if err != nil {
		return textobject.RuleSet{}, &ValidationError{Path: path, Message: "invalid rule", Value: settings, Err: err}
	}
	return set, nil
}
