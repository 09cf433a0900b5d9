package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dshills/funcobj/internal/config"
	"github.com/dshills/funcobj/internal/dispatcher"
	"github.com/dshills/funcobj/internal/dispatcher/handler"
	"github.com/dshills/funcobj/internal/input"
	"github.com/dshills/funcobj/internal/input/keymap"
	"github.com/dshills/funcobj/internal/input/mode"
	"github.com/dshills/funcobj/internal/input/vim"
	"github.com/dshills/funcobj/internal/logging"
	"github.com/dshills/funcobj/internal/plugin"
	"github.com/dshills/funcobj/internal/syntax"
	"github.com/dshills/funcobj/internal/syntax/treesitter"
	"github.com/dshills/funcobj/internal/textobject"
)

// Application wires configuration, documents, modes, keymaps and the
// dispatcher into a headless host for the function text objects.
type Application struct {
	mu sync.Mutex

	config *config.Config
	log    *logging.Logger

	modes      *mode.Manager
	dispatcher *dispatcher.Dispatcher
	keymaps    *keymap.Registry
	objects    *vim.Table
	resolver   *textobject.Resolver

	parser    *treesitter.Parser
	documents *DocumentManager
	scripts   *plugin.Host

	input       *input.Context
	functionKey rune
	closed      bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML settings file. Empty means no file.
	ConfigPath string

	// RulePack is a YAML rule pack overriding the one named in settings.
	RulePack string

	// KeymapDirs are searched for user keymap files, registered ahead of
	// the defaults.
	KeymapDirs []string

	// Files are opened on startup; the last one is active.
	Files []string

	// LogLevel overrides the configured logging level.
	LogLevel string

	// LogOutput receives log output. Defaults to stderr.
	LogOutput io.Writer

	// Environ replaces the process environment for configuration.
	Environ []string

	// Overrides are applied as the highest configuration layer.
	Overrides map[string]any

	// ScriptCapabilities are granted to Lua scripts. Empty grants the
	// whole editor capability.
	ScriptCapabilities []string

	// ScriptOutput receives script print output. Defaults to discard.
	ScriptOutput io.Writer
}

// New creates and bootstraps an Application.
func New(ctx context.Context, opts Options) (*Application, error) {
	app := &Application{
		opts:  opts,
		input: input.NewContext(),
	}

	if err := app.bootstrap(ctx); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// Open opens and parses a file and makes it the active document.
func (app *Application) Open(ctx context.Context, path string) (*Document, error) {
	if app.isClosed() {
		return nil, ErrClosed
	}
	doc, err := app.documents.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	app.log.WithFields(map[string]any{
		"file":     doc.Path,
		"language": doc.Language,
	}).Debug("document opened")
	return doc, nil
}

// OpenSource parses src as lang under path and makes it the active
// document.
func (app *Application) OpenSource(ctx context.Context, path, lang string, src []byte) (*Document, error) {
	if app.isClosed() {
		return nil, ErrClosed
	}
	return app.documents.OpenSource(ctx, path, lang, src)
}

// SetCaret moves the caret of the active document.
func (app *Application) SetCaret(offset int) error {
	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	doc.SetCaret(offset)
	return nil
}

// Mode returns the current mode name.
func (app *Application) Mode() string {
	return app.modes.CurrentName()
}

// Operator makes op the pending operator and enters operator-pending mode.
func (app *Application) Operator(op string) error {
	if op == "" {
		return fmt.Errorf("%w: empty operator", ErrInvalidOperation)
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return ErrClosed
	}
	app.input.PendingOperator = op
	return app.modes.Switch(mode.ModeOperatorPending)
}

// PendingOperator returns the pending operator, or "".
func (app *Application) PendingOperator() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.input.PendingOperator
}

// Execute dispatches an action against the active document. A pending
// operator is consumed by the action and the host returns to normal mode.
func (app *Application) Execute(action input.Action) handler.Result {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return handler.Error(ErrClosed)
	}

	ictx := app.input.Clone()
	ictx.Mode = app.modes.CurrentName()
	if doc := app.documents.Active(); doc != nil {
		ictx.FilePath = doc.Path
		ictx.FileType = doc.Language
		_, ictx.HasSelection = doc.Selection()
	}
	pending := ictx.HasPendingOperator()

	result := app.dispatcher.DispatchWithContext(action, ictx)

	if pending {
		app.input.ClearPending()
		if app.modes.CurrentName() == mode.ModeOperatorPending {
			if err := app.modes.Switch(mode.ModeNormal); err != nil {
				app.log.Warn("leaving operator-pending mode: %v", err)
			}
		}
	}

	return result
}

// Keys resolves a key sequence such as "i f" in the current mode and
// executes the bound action.
func (app *Application) Keys(seq string) (handler.Result, error) {
	if app.isClosed() {
		return handler.Result{}, ErrClosed
	}

	current := app.modes.CurrentName()
	name, ok := app.keymaps.Resolve(seq, current)
	if !ok {
		return handler.Result{}, fmt.Errorf("%w: %q in %s mode", ErrUnboundKeys, keymap.NormalizeKeys(seq), current)
	}

	return app.Execute(input.Action{Name: name, Source: input.SourceKeyboard}), nil
}

// ApplyTextObject runs the function text object at the caret as if its
// prefix and object key had been typed, bypassing user keymaps.
func (app *Application) ApplyTextObject(m textobject.Mode, source input.ActionSource) handler.Result {
	prefix := vim.PrefixAround
	if m == textobject.Inner {
		prefix = vim.PrefixInner
	}

	action, ok := app.objects.Resolve(prefix.Key(), app.functionKey)
	if !ok {
		return handler.Errorf("no text object for %c%c", prefix.Key(), app.functionKey)
	}
	action.Source = source
	return app.Execute(action)
}

// SelectFunction resolves the function text object at offset in the active
// document without touching caret, selection or mode. The selection's nodes
// are detached copies, valid after the document is reloaded or closed.
func (app *Application) SelectFunction(offset int, m textobject.Mode) (textobject.Selection, textobject.MissReason) {
	app.mu.Lock()
	defer app.mu.Unlock()

	doc := app.documents.Active()
	if app.closed || doc == nil {
		return textobject.Selection{}, textobject.MissNoTree
	}
	sel, miss := app.resolver.Resolve(doc.Tree(), offset, m)
	sel.Function = syntax.Detach(sel.Function)
	sel.Body = syntax.Detach(sel.Body)
	return sel, miss
}

// RunScript runs the Lua script at path against the active document.
func (app *Application) RunScript(ctx context.Context, path string) error {
	if app.isClosed() {
		return ErrClosed
	}
	return app.scripts.RunFile(ctx, path)
}

// RunScriptSource runs Lua code as the script name.
func (app *Application) RunScriptSource(ctx context.Context, name, code string) error {
	if app.isClosed() {
		return ErrClosed
	}
	return app.scripts.Run(ctx, name, code)
}

// Close releases all documents and the parser. Safe to call more than once.
func (app *Application) Close() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return
	}
	app.closed = true

	if app.documents != nil {
		app.documents.CloseAll()
	}
	if app.parser != nil {
		app.parser.Close()
	}
}

func (app *Application) isClosed() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.closed
}

// onModeChange drops the selection whenever a non-visual mode is entered.
func (app *Application) onModeChange(from, to mode.Mode) {
	if to == nil || mode.IsVisual(to.Name()) {
		return
	}
	if doc := app.documents.Active(); doc != nil {
		doc.ClearSelection()
	}
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config { return app.config }

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger { return app.log }

// Modes returns the mode manager.
func (app *Application) Modes() *mode.Manager { return app.modes }

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher { return app.dispatcher }

// Keymaps returns the keymap registry.
func (app *Application) Keymaps() *keymap.Registry { return app.keymaps }

// Documents returns the document manager.
func (app *Application) Documents() *DocumentManager { return app.documents }

// Resolver returns the function text-object resolver.
func (app *Application) Resolver() *textobject.Resolver { return app.resolver }

// Scripts returns the Lua script host.
func (app *Application) Scripts() *plugin.Host { return app.scripts }

// FunctionKey returns the configured function text-object key.
func (app *Application) FunctionKey() rune { return app.functionKey }

// Bindings describes the function text-object bindings in m, one
// "keys -> action" line per binding.
func (app *Application) Bindings(m string) []string {
	var lines []string
	for _, b := range app.keymaps.AllBindings(m) {
		if strings.HasPrefix(b.Action, "textobject.") || b.IsPlug() {
			lines = append(lines, fmt.Sprintf("%s -> %s", b.Keys, b.Action))
		}
	}
	return lines
}
