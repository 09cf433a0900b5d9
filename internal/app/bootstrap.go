package app

import (
	"context"

	"github.com/dshills/funcobj/internal/config"
	"github.com/dshills/funcobj/internal/dispatcher"
	modehandler "github.com/dshills/funcobj/internal/dispatcher/handlers/mode"
	textobjhandler "github.com/dshills/funcobj/internal/dispatcher/handlers/textobject"
	"github.com/dshills/funcobj/internal/input/keymap"
	"github.com/dshills/funcobj/internal/input/mode"
	"github.com/dshills/funcobj/internal/input/vim"
	"github.com/dshills/funcobj/internal/logging"
	"github.com/dshills/funcobj/internal/plugin"
	"github.com/dshills/funcobj/internal/plugin/api"
	"github.com/dshills/funcobj/internal/plugin/security"
	"github.com/dshills/funcobj/internal/syntax/treesitter"
	"github.com/dshills/funcobj/internal/textobject"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap(ctx context.Context) error {
	// 1. Configuration
	if err := app.initConfig(ctx); err != nil {
		return initError("config", "load", err)
	}

	// 2. Logging
	app.initLogging()

	// 3. Classification tables
	if err := app.initResolver(); err != nil {
		return initError("textobject", "build tables", err)
	}

	// 4. Modes
	app.modes = mode.NewDefaultManager()
	app.modes.OnChange(app.onModeChange)

	// 5. Parser and documents
	app.parser = treesitter.NewParser()
	app.documents = NewDocumentManager(app.parser)

	// 6. Dispatcher
	app.initDispatcher()

	// 7. Keymaps and text objects
	if err := app.initKeymaps(); err != nil {
		return initError("keymap", "load", err)
	}

	// 8. Script host
	if err := app.initScripts(); err != nil {
		return initError("scripts", "grant", err)
	}

	// 9. Initial files
	if err := app.openFiles(ctx); err != nil {
		return initError("documents", "open", err)
	}

	return nil
}

func (app *Application) initConfig(ctx context.Context) error {
	var opts []config.Option
	if app.opts.ConfigPath != "" {
		opts = append(opts, config.WithFile(app.opts.ConfigPath))
	}
	if app.opts.RulePack != "" {
		opts = append(opts, config.WithRulePack(app.opts.RulePack))
	}
	if app.opts.Environ != nil {
		opts = append(opts, config.WithEnviron(app.opts.Environ))
	}
	for path, value := range app.opts.Overrides {
		opts = append(opts, config.WithOverride(path, value))
	}
	if app.opts.LogLevel != "" {
		opts = append(opts, config.WithOverride(config.PathLogLevel, app.opts.LogLevel))
	}

	cfg := config.New(opts...)
	if err := cfg.Load(ctx); err != nil {
		return err
	}
	app.config = cfg
	return nil
}

func (app *Application) initLogging() {
	app.log = logging.New(logging.Config{
		Level:  logging.ParseLevel(app.config.Settings().Logging.Level),
		Output: app.opts.LogOutput,
		Prefix: "funcobj",
	})
}

func (app *Application) initResolver() error {
	tables, err := app.config.Tables()
	if err != nil {
		return err
	}
	app.resolver = textobject.NewResolver(tables)

	app.log.WithFields(map[string]any{
		"functions": tables.Functions.Len(),
		"bodies":    tables.Bodies.Len(),
		"brace":     tables.BraceLanguages.Len(),
		"trim":      tables.Trim.String(),
		"rule_pack": app.config.Settings().TextObject.RulePack,
	}).Info("text object tables loaded")
	return nil
}

func (app *Application) initDispatcher() {
	d := dispatcher.New(
		dispatcher.WithLogger(app.log),
		dispatcher.WithSyntax(app.documents),
		dispatcher.WithEditor(NewEditorAdapter(app.documents)),
		dispatcher.WithModes(app.modes),
		dispatcher.WithOperator(NewOperatorAdapter(app.documents)),
	)

	d.RegisterNamespace(textobjhandler.NewFunctionHandler(app.resolver, app.log))
	d.RegisterNamespace(modehandler.NewModeHandler())

	d.Use(dispatcher.LogHook(app.log))

	app.dispatcher = d
}

// initKeymaps registers user keymaps first so the defaults only fill in
// what they leave unbound.
func (app *Application) initKeymaps() error {
	app.keymaps = keymap.NewRegistry()

	if err := keymap.NewLoader(app.opts.KeymapDirs...).RegisterAll(app.keymaps); err != nil {
		return err
	}

	app.functionKey = vim.FunctionKey(app.config.Settings().TextObject.FunctionChar)
	if err := keymap.LoadDefaults(app.keymaps, app.functionKey); err != nil {
		return err
	}
	for _, km := range defaultModeKeymaps() {
		if _, err := app.keymaps.AddIfMissing(km); err != nil {
			return err
		}
	}

	app.objects = vim.DefaultTable(app.functionKey)

	app.log.WithField("key", string(app.functionKey)).Debug("function text object bound")
	return nil
}

func (app *Application) initScripts() error {
	opts := []plugin.HostOption{
		plugin.WithLogger(app.log),
	}
	if len(app.opts.ScriptCapabilities) > 0 {
		caps, err := security.Parse(app.opts.ScriptCapabilities)
		if err != nil {
			return err
		}
		opts = append(opts, plugin.WithGrants(caps...))
	}
	if app.opts.ScriptOutput != nil {
		opts = append(opts, plugin.WithOutput(app.opts.ScriptOutput))
	}

	host, err := plugin.NewHost(&api.Context{
		TextObject: scriptTextObjects{app: app},
		Mode:       scriptModes{modes: app.modes},
		Keymap:     app.keymaps,
	}, opts...)
	if err != nil {
		return err
	}
	app.scripts = host
	return nil
}

func (app *Application) openFiles(ctx context.Context) error {
	var errs errorList
	for _, path := range app.opts.Files {
		if _, err := app.documents.Open(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errs.err()
}
