// Package loader turns configuration sources into nested maps that can be
// stacked as layers.
//
// Settings files are TOML, rule packs are YAML and the environment is the
// last layer. A map holds only strings, bools, int64, float64, []any and
// map[string]any values.
package loader

import (
	"io/fs"
	"os"
)

// FileSystem is the subset of file access the loaders need. Tests swap in
// an in-memory implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error)  { return os.ReadFile(path) }
func (osFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// DefaultFS reads from the real file system.
func DefaultFS() FileSystem { return osFS{} }
