package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/funcobj/internal/syntax"
	"github.com/dshills/funcobj/internal/syntax/treesitter"
)

// Document is an open, parsed file with its caret and selection state.
type Document struct {
	// Path is the absolute file path, or a caller-chosen key for sources
	// that do not live on disk.
	Path string

	// Name is the display name.
	Name string

	// Language is the grammar identifier the document was parsed with.
	Language string

	source []byte
	tree   syntax.Tree

	mu        sync.RWMutex
	caret     int
	anchor    int
	selecting bool
	target    syntax.Range
	hasTarget bool
}

// NewDocument creates a document over an already parsed tree.
func NewDocument(path, language string, source []byte, tree syntax.Tree) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	return &Document{
		Path:     path,
		Name:     name,
		Language: language,
		source:   source,
		tree:     tree,
	}
}

// Source returns the document text.
func (d *Document) Source() []byte {
	return d.source
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.source)
}

// Tree returns the document's syntax tree.
func (d *Document) Tree() syntax.Tree {
	return d.tree
}

// Caret returns the caret offset.
func (d *Document) Caret() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.caret
}

// SetCaret moves the caret to offset, clamped to the document, and drops
// any selection.
func (d *Document) SetCaret(offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.caret = d.clamp(offset)
	d.selecting = false
}

// Selection returns the selected range. ok is false when nothing is
// selected.
func (d *Document) Selection() (r syntax.Range, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.selecting {
		return syntax.Range{}, false
	}
	if d.anchor <= d.caret {
		return syntax.NewRange(d.anchor, d.caret), true
	}
	return syntax.NewRange(d.caret, d.anchor), true
}

// OperatorTarget returns the range last registered for a pending operator.
func (d *Document) OperatorTarget() (r syntax.Range, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.target, d.hasTarget
}

// ClearSelection drops the selection, leaving the caret in place.
func (d *Document) ClearSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selecting = false
}

func (d *Document) setSelection(anchor, head int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.anchor = d.clamp(anchor)
	d.caret = d.clamp(head)
	d.selecting = true
}

func (d *Document) moveCaret(offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.caret = d.clamp(offset)
}

func (d *Document) setTarget(r syntax.Range) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = r
	d.hasTarget = true
}

func (d *Document) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.source) {
		return len(d.source)
	}
	return offset
}

func (d *Document) close() {
	if c, ok := d.tree.(interface{ Close() }); ok {
		c.Close()
	}
}

// DocumentManager manages all open documents.
type DocumentManager struct {
	mu        sync.RWMutex
	parser    *treesitter.Parser
	documents map[string]*Document // path -> document
	active    *Document
	order     []string // tracks open order
}

// NewDocumentManager creates a document manager parsing with parser.
func NewDocumentManager(parser *treesitter.Parser) *DocumentManager {
	return &DocumentManager{
		parser:    parser,
		documents: make(map[string]*Document),
		order:     make([]string, 0),
	}
}

// Open opens and parses a file, detecting its language from the extension.
// Returns the existing document if already open.
func (dm *DocumentManager) Open(ctx context.Context, path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	if doc, ok := dm.activate(absPath); ok {
		return doc, nil
	}

	lang, ok := treesitter.LanguageForPath(absPath)
	if !ok {
		return nil, NewOperationError("open", absPath, ErrUnsupportedFile)
	}

	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, NewOperationError("open", absPath, err)
	}

	return dm.OpenSource(ctx, absPath, lang, src)
}

// OpenSource parses src as lang and opens it under path. An already open
// document at path is replaced.
func (dm *DocumentManager) OpenSource(ctx context.Context, path, lang string, src []byte) (*Document, error) {
	if dm.parser == nil {
		return nil, NewOperationError("parse", path, ErrInvalidOperation).WithDetail("no parser")
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()

	tree, err := dm.parser.Parse(ctx, lang, src)
	if err != nil {
		return nil, NewOperationError("parse", path, err)
	}

	doc := NewDocument(path, lang, src, tree)
	dm.addLocked(doc)
	return doc, nil
}

// Reload re-reads and re-parses the file behind an open document. The
// caret carries over, clamped to the new length; selection and operator
// target are dropped. The document keeps its place and active status.
func (dm *DocumentManager) Reload(ctx context.Context, path string) (*Document, error) {
	if dm.parser == nil {
		return nil, NewOperationError("reload", path, ErrInvalidOperation).WithDetail("no parser")
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("reload", path, err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, NewOperationError("reload", path, err)
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()

	old, ok := dm.documents[path]
	if !ok {
		return nil, ErrDocumentNotFound
	}

	tree, err := dm.parser.Parse(ctx, old.Language, src)
	if err != nil {
		return nil, NewOperationError("reload", path, err)
	}

	doc := NewDocument(path, old.Language, src, tree)
	doc.SetCaret(old.Caret())

	dm.documents[path] = doc
	if dm.active == old {
		dm.active = doc
	}
	old.close()
	return doc, nil
}

// Add opens a document built elsewhere, replacing any document at the
// same path.
func (dm *DocumentManager) Add(doc *Document) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.addLocked(doc)
}

func (dm *DocumentManager) addLocked(doc *Document) {
	if old, exists := dm.documents[doc.Path]; exists {
		old.close()
		dm.removeOrder(doc.Path)
	}
	dm.documents[doc.Path] = doc
	dm.order = append(dm.order, doc.Path)
	dm.active = doc
}

func (dm *DocumentManager) activate(path string) (*Document, bool) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	doc, ok := dm.documents[path]
	if ok {
		dm.active = doc
	}
	return doc, ok
}

// Close closes a document by path.
func (dm *DocumentManager) Close(path string) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, exists := dm.documents[path]
	if !exists {
		return ErrDocumentNotFound
	}

	delete(dm.documents, path)
	dm.removeOrder(path)
	doc.close()

	if dm.active == doc {
		if len(dm.order) > 0 {
			dm.active = dm.documents[dm.order[len(dm.order)-1]]
		} else {
			dm.active = nil
		}
	}

	return nil
}

// CloseAll closes every document.
func (dm *DocumentManager) CloseAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	for _, doc := range dm.documents {
		doc.close()
	}
	dm.documents = make(map[string]*Document)
	dm.order = dm.order[:0]
	dm.active = nil
}

func (dm *DocumentManager) removeOrder(path string) {
	for i, p := range dm.order {
		if p == path {
			dm.order = append(dm.order[:i], dm.order[i+1:]...)
			return
		}
	}
}

// Active returns the currently active document.
func (dm *DocumentManager) Active() *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.active
}

// SetActive makes the document at path active.
func (dm *DocumentManager) SetActive(path string) error {
	if _, ok := dm.activate(path); !ok {
		return ErrDocumentNotFound
	}
	return nil
}

// Get returns a document by path.
func (dm *DocumentManager) Get(path string) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	doc, ok := dm.documents[path]
	return doc, ok
}

// All returns the open documents in open order.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.order))
	for _, p := range dm.order {
		docs = append(docs, dm.documents[p])
	}
	return docs
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.documents)
}

// SyntaxTree returns the tree of the document at path, or of the active
// document when path is empty.
func (dm *DocumentManager) SyntaxTree(path string) (syntax.Tree, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	doc := dm.active
	if path != "" {
		doc = dm.documents[path]
	}
	if doc == nil || doc.tree == nil {
		return nil, false
	}
	return doc.tree, true
}
