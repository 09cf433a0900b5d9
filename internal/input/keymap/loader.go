package keymap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Keymap files are YAML. JSON files are accepted as well since every JSON
// document is also YAML.
var fileExtensions = []string{".yaml", ".yml", ".json"}

// Decode reads and validates one keymap document.
func Decode(r io.Reader) (*Keymap, error) {
	var km Keymap
	if err := yaml.NewDecoder(r).Decode(&km); err != nil {
		return nil, fmt.Errorf("decode keymap: %w", err)
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return &km, nil
}

// Encode writes km as YAML.
func Encode(w io.Writer, km *Keymap) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(km); err != nil {
		return err
	}
	return enc.Close()
}

// ReadFile decodes the keymap in path. Keymaps that do not name a source
// are tagged "user".
func ReadFile(path string) (*Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	km, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Source == "" {
		km.Source = "user"
	}
	return km, nil
}

// WriteFile saves km to path as YAML.
func WriteFile(path string, km *Keymap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, km); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Loader reads the keymap files found in a list of directories.
type Loader struct {
	Dirs []string
}

func NewLoader(dirs ...string) *Loader {
	return &Loader{Dirs: dirs}
}

// Load returns the keymaps of every directory in order, each directory's
// files sorted by name. Missing directories are skipped.
func (l *Loader) Load() ([]*Keymap, error) {
	var keymaps []*Keymap
	for _, dir := range l.Dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !slices.Contains(fileExtensions, filepath.Ext(e.Name())) {
				continue
			}
			km, err := ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, err
			}
			keymaps = append(keymaps, km)
		}
	}
	return keymaps, nil
}

// RegisterAll loads every keymap and registers it with r.
func (l *Loader) RegisterAll(r *Registry) error {
	keymaps, err := l.Load()
	if err != nil {
		return err
	}
	for _, km := range keymaps {
		if err := r.Register(km); err != nil {
			return fmt.Errorf("register keymap %q: %w", km.Name, err)
		}
	}
	return nil
}
