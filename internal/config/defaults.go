package config

// Setting paths.
const (
	PathLogLevel        = "logging.level"
	PathFunctionChar    = "textobject.function_char"
	PathTrimPolicy      = "textobject.trim_policy"
	PathFunctionKinds   = "textobject.function_kinds"
	PathBodyKinds       = "textobject.body_kinds"
	PathBraceLanguages  = "textobject.brace_languages"
	PathReplaceDefaults = "textobject.replace_defaults"
	PathRulePack        = "textobject.rule_pack"
	PathWatchDebounce   = "watch.debounce_ms"
)

// defaultConfig returns the built-in defaults layer. Empty rule lists add
// nothing to the built-in grammar tables.
func defaultConfig() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": "info",
		},
		"textobject": map[string]any{
			"function_char":    "f",
			"trim_policy":      "text",
			"function_kinds":   []any{},
			"body_kinds":       []any{},
			"brace_languages":  []any{},
			"replace_defaults": false,
			"rule_pack":        "",
		},
		"watch": map[string]any{
			"debounce_ms": int64(100),
		},
	}
}
