// Package layer stacks configuration sources with priority-based merging.
// Higher priority layers override values from lower priority layers.
package layer

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer (e.g., "defaults", "file", "env").
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path (if loaded from file).
	Path string

	// Data holds the configuration values as a nested map.
	Data map[string]any
}

// NewLayer creates a layer with the standard priority for its source.
func NewLayer(name string, source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: source.Priority(),
		Data:     data,
	}
}

// WithPath returns the layer with its source path set.
func (l *Layer) WithPath(path string) *Layer {
	l.Path = path
	return l
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents built-in default configuration.
	SourceBuiltin Source = iota
	// SourceRulePack represents a YAML grammar rule pack.
	SourceRulePack
	// SourceFile represents the TOML settings file.
	SourceFile
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceArgs represents command-line arguments.
	SourceArgs
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceRulePack:
		return "rulepack"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}

// Standard priority levels. A settings file may name a rule pack, but its
// own explicit settings still win over the pack.
const (
	PriorityBuiltin  = 0
	PriorityRulePack = 100
	PriorityFile     = 200
	PriorityEnv      = 500
	PriorityArgs     = 600
)

// Priority returns the standard priority for the source.
func (s Source) Priority() int {
	switch s {
	case SourceRulePack:
		return PriorityRulePack
	case SourceFile:
		return PriorityFile
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}
