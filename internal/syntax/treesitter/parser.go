// Package treesitter provides syntax.Tree implementations backed by
// tree-sitter grammars.
package treesitter

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
)

var (
	// ErrUnsupportedLanguage is returned for languages without a grammar.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNoTree is returned when the parser produced no tree.
	ErrNoTree = errors.New("parser returned no tree")
)

// Parser parses source files into syntax trees.
// A Parser is not safe for concurrent use.
type Parser struct {
	p *sitter.Parser
}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{p: sitter.NewParser()}
}

// Parse parses src as the given language.
// The caller must Close the returned tree.
func (p *Parser) Parse(ctx context.Context, lang string, src []byte) (*Tree, error) {
	l, ok := languages[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	p.p.SetLanguage(l.grammar())
	t, err := p.p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s source: %w", lang, err)
	}
	if t == nil {
		return nil, ErrNoTree
	}

	return &Tree{t: t, lang: lang, src: src}, nil
}

// ParseFile reads and parses the file at path, detecting the language from
// its extension.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Tree, error) {
	lang, ok := LanguageForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return p.Parse(ctx, lang, src)
}

// Close releases the parser's resources.
func (p *Parser) Close() {
	if p.p != nil {
		p.p.Close()
	}
}
