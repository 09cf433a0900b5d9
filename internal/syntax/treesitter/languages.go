package treesitter

import (
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language identifiers reported by nodes of parsed trees.
const (
	LangC          = "c"
	LangCPP        = "cpp"
	LangCSharp     = "csharp"
	LangGo         = "go"
	LangJava       = "java"
	LangJavaScript = "javascript"
	LangKotlin     = "kotlin"
	LangPHP        = "php"
	LangPython     = "python"
	LangRuby       = "ruby"
	LangRust       = "rust"
	LangTSX        = "tsx"
	LangTypeScript = "typescript"
)

type language struct {
	grammar    func() *sitter.Language
	extensions []string
}

var languages = map[string]language{
	LangC:          {c.GetLanguage, []string{".c", ".h"}},
	LangCPP:        {cpp.GetLanguage, []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"}},
	LangCSharp:     {csharp.GetLanguage, []string{".cs"}},
	LangGo:         {golang.GetLanguage, []string{".go"}},
	LangJava:       {java.GetLanguage, []string{".java"}},
	LangJavaScript: {javascript.GetLanguage, []string{".js", ".mjs", ".cjs", ".jsx"}},
	LangKotlin:     {kotlin.GetLanguage, []string{".kt", ".kts"}},
	LangPHP:        {php.GetLanguage, []string{".php"}},
	LangPython:     {python.GetLanguage, []string{".py", ".pyi"}},
	LangRuby:       {ruby.GetLanguage, []string{".rb"}},
	LangRust:       {rust.GetLanguage, []string{".rs"}},
	LangTSX:        {tsx.GetLanguage, []string{".tsx"}},
	LangTypeScript: {typescript.GetLanguage, []string{".ts", ".mts", ".cts"}},
}

// extensionIndex maps a lowercase file extension to a language identifier.
var extensionIndex = func() map[string]string {
	idx := make(map[string]string)
	for id, l := range languages {
		for _, ext := range l.extensions {
			idx[ext] = id
		}
	}
	return idx
}()

// LanguageForPath returns the language identifier for a file path based on
// its extension.
func LanguageForPath(path string) (string, bool) {
	id, ok := extensionIndex[strings.ToLower(filepath.Ext(path))]
	return id, ok
}

// Languages returns the supported language identifiers in sorted order.
func Languages() []string {
	ids := make([]string, 0, len(languages))
	for id := range languages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsSupported returns true if lang is a supported language identifier.
func IsSupported(lang string) bool {
	_, ok := languages[lang]
	return ok
}
