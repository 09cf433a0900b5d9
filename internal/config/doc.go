// Package config provides layered configuration for function text objects.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  5. Command Line Overrides  │  ← Highest priority
//	├─────────────────────────────┤
//	│  4. Environment Variables   │  ← FUNCOBJ_TEXTOBJECT_FUNCTION_CHAR=m
//	├─────────────────────────────┤
//	│  3. Settings File (TOML)    │  ← config.toml
//	├─────────────────────────────┤
//	│  2. Rule Pack (YAML)        │  ← shared grammar tables
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Maps merge key by key; lists replace. A rule pack ranks below the
// settings file that names it, so explicit settings still win.
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment variable loading
//   - layer: layer stacking and merging
//
// # Settings
//
//	[logging]
//	level = "info"
//
//	[textobject]
//	function_char = "f"        # trigger after i / a
//	trim_policy = "text"       # text, language or none
//	replace_defaults = false   # extend (false) or replace the built-in tables
//	rule_pack = "psi.yaml"     # optional YAML rule pack
//	brace_languages = ["go"]
//
//	[[textobject.function_kinds]]
//	pattern = "FUNCTION_DECLARATION"
//	match = "suffix"           # exact, prefix, suffix or contains
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile(path))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	tables, _ := cfg.Tables()
//	resolver := textobject.NewResolver(tables)
package config
