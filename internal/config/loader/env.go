package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of recognized environment variables.
const DefaultEnvPrefix = "FUNCOBJ_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // e.g. "FUNCOBJ_"
	mapping map[string]string // env var -> config path
	raw     map[string]bool   // config paths kept as plain strings
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		raw:     defaultRawPaths(),
		environ: os.Environ,
	}
}

// NewEnvLoaderWithEnviron creates a loader reading from a fixed set of
// KEY=VALUE pairs instead of the process environment.
func NewEnvLoaderWithEnviron(prefix string, environ []string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.environ = func() []string { return environ }
	return l
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":                   "logging.level",
		prefix + "TEXTOBJECT_FUNCTION_CHAR":    "textobject.function_char",
		prefix + "TEXTOBJECT_TRIM_POLICY":      "textobject.trim_policy",
		prefix + "TEXTOBJECT_RULE_PACK":        "textobject.rule_pack",
		prefix + "TEXTOBJECT_REPLACE_DEFAULTS": "textobject.replace_defaults",
		prefix + "TEXTOBJECT_BRACE_LANGUAGES":  "textobject.brace_languages",
		prefix + "WATCH_DEBOUNCE_MS":           "watch.debounce_ms",
	}
}

// Settings whose values must never be coerced: "1" is a valid trigger
// character, not a boolean.
func defaultRawPaths() map[string]bool {
	return map[string]bool{
		"logging.level":            true,
		"textobject.function_char": true,
		"textobject.trim_policy":   true,
		"textobject.rule_pack":     true,
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values are kept: they are set, not unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}

		if l.raw[path] {
			SetByPath(config, path, value)
		} else {
			SetByPath(config, path, parseValue(value))
		}
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// envToPath converts FUNCOBJ_TEXTOBJECT_BODY_KINDS to
// textobject.body_kinds. The first segment names the section.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return ""
	}
	return section + "." + setting
}

// parseValue converts a string into a bool, integer, JSON list/object or
// leaves it as a string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}

	return s
}

// SetByPath sets a value in a nested map using a dot-separated path,
// creating intermediate maps as needed.
func SetByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
