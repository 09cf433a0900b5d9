// Package main is the entry point for funcobj, which resolves the function
// text objects of a source file from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/tidwall/sjson"

	"github.com/dshills/funcobj/internal/app"
	"github.com/dshills/funcobj/internal/syntax"
	"github.com/dshills/funcobj/internal/textobject"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks errors that should print usage and exit 2.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type cliOptions struct {
	app app.Options

	file   string
	offset int
	pos    string
	mode   string
	format string
	script string
	caps   string
	watch  bool

	showVersion bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "funcobj %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	modes, err := parseModes(opts.mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	opts.app.Files = []string{opts.file}
	opts.app.LogOutput = stderr
	opts.app.ScriptOutput = stdout
	if opts.caps != "" {
		opts.app.ScriptCapabilities = strings.Split(opts.caps, ",")
	}

	application, err := app.New(ctx, opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	doc := application.Documents().Active()
	offset, err := resolveOffset(doc, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.script != "" {
		if err := application.SetCaret(offset); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if err := application.RunScript(ctx, opts.script); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := report(application, doc, offset, modes, opts.format, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !opts.watch {
		return 0
	}

	// Re-resolve after every reload so -pos tracks the edited text.
	err = application.Watch(ctx, func(doc *app.Document, err error) {
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return
		}
		offset, err := resolveOffset(doc, opts)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return
		}
		if err := report(application, doc, offset, modes, opts.format, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// report resolves every mode at offset in doc and writes the results.
// Reloads run on the goroutine that calls Watch's callback, so doc stays
// open while it is read.
func report(application *app.Application, doc *app.Document, offset int, modes []textobject.Mode, format string, w io.Writer) error {
	results := make([]result, 0, len(modes))
	for _, m := range modes {
		sel, reason := application.Resolver().Resolve(doc.Tree(), offset, m)
		results = append(results, newResult(doc, m, sel, reason))
	}

	var out string
	var err error
	switch format {
	case "json":
		out, err = formatJSON(doc, offset, results)
	default:
		out = formatText(results)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	var keymapDir string

	fs := flag.NewFlagSet("funcobj", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.app.ConfigPath, "config", "", "Path to TOML configuration file")
	fs.StringVar(&opts.app.ConfigPath, "c", "", "Path to TOML configuration file (shorthand)")
	fs.StringVar(&opts.app.RulePack, "rules", "", "Path to YAML rule pack")
	fs.StringVar(&keymapDir, "keymaps", "", "Directory of YAML keymap files")
	fs.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.IntVar(&opts.offset, "offset", -1, "Byte offset of the caret")
	fs.StringVar(&opts.pos, "pos", "", "Caret position as line:col (1-based)")
	fs.StringVar(&opts.mode, "mode", "", "Text object mode: inner or outer (default both)")
	fs.StringVar(&opts.format, "format", "text", "Output format: text or json")
	fs.StringVar(&opts.script, "script", "", "Run a Lua script with the caret at the position")
	fs.StringVar(&opts.caps, "caps", "", "Comma-separated capabilities granted to the script")
	fs.BoolVar(&opts.watch, "watch", false, "Print again whenever the file changes on disk")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "funcobj - function text objects for source files\n\n")
		fmt.Fprintf(stderr, "Usage: funcobj [options] file\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  funcobj -pos 3:5 main.go              Inner and outer function at line 3\n")
		fmt.Fprintf(stderr, "  funcobj -offset 120 -mode inner a.py  Inner function at byte 120\n")
		fmt.Fprintf(stderr, "  funcobj -pos 3:5 -format json main.go JSON output\n")
		fmt.Fprintf(stderr, "  funcobj -pos 3:5 -watch main.go       Reprint on every save\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.showVersion {
		return opts, nil
	}

	if keymapDir != "" {
		opts.app.KeymapDirs = []string{keymapDir}
	}

	switch opts.app.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.app.LogLevel)
	}
	switch opts.format {
	case "text", "json":
	default:
		return opts, fmt.Errorf("invalid format %q (must be text or json)", opts.format)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, fmt.Errorf("%w: expected exactly one file", errUsage)
	}
	opts.file = fs.Arg(0)

	if opts.pos != "" && opts.offset >= 0 {
		return opts, fmt.Errorf("%w: -offset and -pos are mutually exclusive", errUsage)
	}
	if opts.pos == "" && opts.offset < 0 {
		return opts, fmt.Errorf("%w: one of -offset or -pos is required", errUsage)
	}
	if opts.watch && opts.script != "" {
		return opts, fmt.Errorf("%w: -watch and -script are mutually exclusive", errUsage)
	}
	return opts, nil
}

func parseModes(s string) ([]textobject.Mode, error) {
	if s == "" {
		return []textobject.Mode{textobject.Inner, textobject.Outer}, nil
	}
	m, err := textobject.ParseMode(s)
	if err != nil {
		return nil, err
	}
	return []textobject.Mode{m}, nil
}

// parsePoint parses a 1-based "line:col" position.
func parsePoint(s string) (syntax.Point, error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return syntax.Point{}, fmt.Errorf("invalid position %q (want line:col)", s)
	}
	line, err := strconv.Atoi(strings.TrimSpace(lineStr))
	if err != nil || line < 1 {
		return syntax.Point{}, fmt.Errorf("invalid line in position %q", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil || col < 1 {
		return syntax.Point{}, fmt.Errorf("invalid column in position %q", s)
	}
	return syntax.Point{Line: line - 1, Column: col - 1}, nil
}

func resolveOffset(doc *app.Document, opts cliOptions) (int, error) {
	if doc == nil {
		return 0, app.ErrNoActiveDocument
	}
	if opts.pos == "" {
		return opts.offset, nil
	}
	p, err := parsePoint(opts.pos)
	if err != nil {
		return 0, err
	}
	return syntax.OffsetAt(string(doc.Source()), p)
}

// result is the outcome of one mode.
type result struct {
	mode  textobject.Mode
	rng   syntax.Range
	kind  string
	text  string
	miss  textobject.MissReason
	found bool
}

func newResult(doc *app.Document, m textobject.Mode, sel textobject.Selection, reason textobject.MissReason) result {
	r := result{mode: m, miss: reason}
	if reason != textobject.MissNone {
		return r
	}
	r.found = true
	r.rng = sel.Range
	r.kind = sel.Function.Kind()
	r.text = string(doc.Source()[sel.Range.Start:sel.Range.End])
	return r
}

func formatText(results []result) string {
	var b strings.Builder
	for _, r := range results {
		if !r.found {
			fmt.Fprintf(&b, "%s\tmiss\t%s\n", r.mode, r.miss)
			continue
		}
		fmt.Fprintf(&b, "%s\t%d\t%d\t%s\n", r.mode, r.rng.Start, r.rng.End, r.kind)
	}
	return b.String()
}

func formatJSON(doc *app.Document, offset int, results []result) (string, error) {
	out := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, value)
	}

	set("file", doc.Path)
	set("language", doc.Language)
	set("offset", offset)
	if p, perr := syntax.PointAt(string(doc.Source()), offset); perr == nil {
		set("position.line", p.Line+1)
		set("position.column", p.Column+1)
	}
	set("results", []any{})

	for i, r := range results {
		prefix := fmt.Sprintf("results.%d.", i)
		set(prefix+"mode", r.mode.String())
		if !r.found {
			set(prefix+"miss", r.miss.String())
			continue
		}
		set(prefix+"start", r.rng.Start)
		set(prefix+"end", r.rng.End)
		set(prefix+"kind", r.kind)
		set(prefix+"text", r.text)
	}
	if err != nil {
		return "", err
	}
	return out + "\n", nil
}
