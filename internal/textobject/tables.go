package textobject

import (
	"sort"
	"strings"
)

// Tables holds the classification data a Resolver works from.
// A Tables value is immutable once built.
type Tables struct {
	// Functions classifies function-like nodes.
	Functions RuleSet

	// Bodies classifies body children of a function node.
	Bodies RuleSet

	// Ignore lists child kinds never taken as a body even if Bodies
	// matches them (comments such as "block_comment").
	Ignore RuleSet

	// BraceLanguages lists languages whose bodies are brace-delimited.
	BraceLanguages LanguageSet

	// Trim selects how wrapping delimiters are detected.
	Trim TrimPolicy
}

// Function kinds. Suffix rules cover the many grammars whose label ends in
// a shared token; exact rules cover grammars with a distinct token.
var defaultFunctionRules = []Rule{
	Suffix("FUNCTION_DECLARATION"), // go, javascript, typescript, kotlin, PSI
	Suffix("METHOD_DECLARATION"),   // go, java, c#, php
	Exact("METHOD"),                // java PSI, ruby
	Exact("FUN"),                   // kotlin PSI
	Exact("FUNCTION"),              // rust PSI, javascript function expression
	Exact("FUNCTION_DEFINITION"),   // c, c++, python, php
	Exact("FUNCTION_ITEM"),         // rust
	Exact("METHOD_DEFINITION"),     // javascript, typescript
	Exact("FUNCTION_EXPRESSION"),
	Exact("ARROW_FUNCTION"),
	Exact("FUNC_LITERAL"), // go closures
	Exact("CONSTRUCTOR_DECLARATION"),
	Exact("LOCAL_FUNCTION_STATEMENT"), // c#
	Exact("SINGLETON_METHOD"),         // ruby
}

// Body kinds. Grammars label blocks as "block", "statement_block",
// "CODE_BLOCK", "function_body", "body_statement", ...
var defaultBodyRules = []Rule{
	Contains("BLOCK"),
	Contains("BODY"),
	Exact("COMPOUND_STATEMENT"), // c, c++, php
	Suffix("STATEMENT_LIST"),    // python PSI
}

var defaultIgnoreRules = []Rule{
	Suffix("COMMENT"),
}

var defaultBraceLanguages = []string{
	"c", "cpp", "csharp", "dart", "go", "groovy", "java", "javascript",
	"kotlin", "php", "rust", "scala", "swift", "tsx", "typescript",
}

var defaultTables = Tables{
	Functions:      MustRuleSet(defaultFunctionRules...),
	Bodies:         MustRuleSet(defaultBodyRules...),
	Ignore:         MustRuleSet(defaultIgnoreRules...),
	BraceLanguages: NewLanguageSet(defaultBraceLanguages...),
	Trim:           TrimByText,
}

// DefaultTables returns the built-in classification tables.
func DefaultTables() Tables {
	return defaultTables
}

// DefaultFunctionRules returns a copy of the built-in function rules.
func DefaultFunctionRules() []Rule {
	return append([]Rule(nil), defaultFunctionRules...)
}

// DefaultBodyRules returns a copy of the built-in body rules.
func DefaultBodyRules() []Rule {
	return append([]Rule(nil), defaultBodyRules...)
}

// DefaultBraceLanguages returns a copy of the built-in brace languages.
func DefaultBraceLanguages() []string {
	return append([]string(nil), defaultBraceLanguages...)
}

// LanguageSet is an immutable, case-insensitive set of language identifiers.
type LanguageSet struct {
	m map[string]struct{}
}

// NewLanguageSet builds a language set.
func NewLanguageSet(langs ...string) LanguageSet {
	m := make(map[string]struct{}, len(langs))
	for _, l := range langs {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			m[l] = struct{}{}
		}
	}
	return LanguageSet{m: m}
}

// Has reports whether lang is in the set.
func (s LanguageSet) Has(lang string) bool {
	_, ok := s.m[strings.ToLower(lang)]
	return ok
}

// Len returns the number of languages.
func (s LanguageSet) Len() int {
	return len(s.m)
}

// List returns the languages in sorted order.
func (s LanguageSet) List() []string {
	out := make([]string, 0, len(s.m))
	for l := range s.m {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
