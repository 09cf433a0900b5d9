package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/funcobj/internal/config/layer"
	"github.com/dshills/funcobj/internal/config/loader"
	"github.com/dshills/funcobj/internal/textobject"
)

// Config loads the layered configuration and holds the settings and
// classification tables derived from it. The tables are built once per
// Load and are immutable afterwards.
type Config struct {
	mu sync.RWMutex

	layers *layer.Manager
	fs     loader.FileSystem

	path      string         // TOML settings file
	rulePack  string         // explicit rule pack, overrides settings
	envPrefix string         // "" disables the environment layer
	environ   []string       // nil reads the process environment
	overrides map[string]any // command-line layer

	settings Settings
	tables   textobject.Tables
	loaded   bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the TOML settings file. A named file that does not exist
// is an error.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithRulePack sets a YAML rule pack, taking precedence over the
// textobject.rule_pack setting.
func WithRulePack(path string) Option {
	return func(c *Config) {
		c.rulePack = path
	}
}

// WithFS sets the file system used to read files.
func WithFS(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron reads environment overrides from KEY=VALUE pairs instead of
// the process environment.
func WithEnviron(environ []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// WithOverride sets a value in the command-line layer.
func WithOverride(path string, value any) Option {
	return func(c *Config) {
		loader.SetByPath(c.overrides, path, value)
	}
}

// New creates a new Config instance with the given options.
func New(opts ...Option) *Config {
	c := &Config{
		layers:    layer.NewManager(),
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		overrides: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load reads every layer, decodes the settings and builds the tables.
// On error the previously loaded state, if any, is kept.
func (c *Config) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	layers := layer.NewManager()
	layers.AddLayer(layer.NewLayer("defaults", layer.SourceBuiltin, defaultConfig()))

	if c.path != "" {
		data, err := c.loadSettingsFile()
		if err != nil {
			return err
		}
		layers.AddLayer(layer.NewLayer("file", layer.SourceFile, data).WithPath(c.path))
	}

	if c.envPrefix != "" {
		data, err := c.envLoader().Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		layers.AddLayer(layer.NewLayer("env", layer.SourceEnv, data))
	}

	if len(c.overrides) > 0 {
		layers.AddLayer(layer.NewLayer("args", layer.SourceArgs, c.overrides))
	}

	if pack := c.rulePackPath(layers); pack != "" {
		data, err := c.loadRulePack(pack)
		if err != nil {
			return err
		}
		layers.AddLayer(layer.NewLayer("rulepack", layer.SourceRulePack, data).WithPath(pack))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	settings, err := decodeSettings(layers.Merge())
	if err != nil {
		return err
	}
	tables, err := settings.TextObject.Tables()
	if err != nil {
		return err
	}

	c.layers = layers
	c.settings = settings
	c.tables = tables
	c.loaded = true
	return nil
}

func (c *Config) loadSettingsFile() (map[string]any, error) {
	if _, err := c.fs.Stat(c.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, c.path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", c.path, err)
	}
	return loader.ReadFile(c.fs, c.path, loader.TOML)
}

func (c *Config) envLoader() *loader.EnvLoader {
	if c.environ != nil {
		return loader.NewEnvLoaderWithEnviron(c.envPrefix, c.environ)
	}
	return loader.NewEnvLoader(c.envPrefix)
}

// rulePackPath resolves the pack to load. A relative path named in the
// settings file is relative to that file.
func (c *Config) rulePackPath(layers *layer.Manager) string {
	if c.rulePack != "" {
		return c.rulePack
	}

	v, from, ok := layers.Get(PathRulePack)
	pack, _ := v.(string)
	if !ok || pack == "" {
		return ""
	}
	if from == "file" && !filepath.IsAbs(pack) {
		return filepath.Join(filepath.Dir(c.path), pack)
	}
	return pack
}

// loadRulePack reads a pack, YAML unless the extension says TOML. Its
// top-level keys are textobject settings; "name" is informational.
func (c *Config) loadRulePack(path string) (map[string]any, error) {
	format, ok := loader.FormatOf(path)
	if !ok {
		format = loader.YAML
	}
	data, err := loader.ReadFile(c.fs, path, format)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: rule pack %s", ErrFileNotFound, path)
	}
	delete(data, "name")
	delete(data, "rule_pack")
	return map[string]any{"textobject": data}, nil
}

// Settings returns the effective settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Tables returns the classification tables built by the last Load.
func (c *Config) Tables() (textobject.Tables, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded {
		return textobject.Tables{}, ErrNotLoaded
	}
	return c.tables, nil
}

// Get returns the effective value at the given path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, _, ok := c.layers.Get(path)
	return v, ok
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Value: v}
	}
	return s, nil
}

// WhichLayer returns the name of the layer ("defaults", "rulepack",
// "file", "env", "args") supplying path, or "".
func (c *Config) WhichLayer(path string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layers.WhichLayer(path)
}

// Merged returns the fully merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layers.Merge()
}

// DefaultPath returns the conventional settings file location,
// $XDG_CONFIG_HOME/funcobj/config.toml, if it exists.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "funcobj", "config.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
