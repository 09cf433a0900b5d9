package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration syntax.
type Format struct {
	Name      string
	unmarshal func([]byte, any) error
	position  func(error) (line, column int)
}

var (
	TOML = Format{Name: "toml", unmarshal: toml.Unmarshal, position: tomlPosition}
	YAML = Format{Name: "yaml", unmarshal: yaml.Unmarshal, position: yamlPosition}
)

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, true
	case ".yaml", ".yml":
		return YAML, true
	}
	return Format{}, false
}

// Parse decodes data. source names the input in errors. An empty
// document yields an empty, non-nil map.
func (f Format) Parse(source string, data []byte) (map[string]any, error) {
	var out map[string]any
	if err := f.unmarshal(data, &out); err != nil {
		line, col := f.position(err)
		return nil, &ParseError{
			Path:    source,
			Format:  f.Name,
			Line:    line,
			Column:  col,
			Message: err.Error(),
			Err:     err,
		}
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// Decode reads r to the end and parses it.
func (f Format) Decode(source string, r io.Reader) (map[string]any, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return f.Parse(source, buf.Bytes())
}

// ReadFile loads path from fsys. A missing file yields nil, nil so that
// optional sources can be skipped.
func ReadFile(fsys FileSystem, path string, f Format) (map[string]any, error) {
	data, err := fsys.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return f.Parse(path, data)
}

func tomlPosition(err error) (int, int) {
	var de *toml.DecodeError
	if errors.As(err, &de) {
		return de.Position()
	}
	return 0, 0
}

// yaml.v3 only reports positions inside its message text.
var yamlLine = regexp.MustCompile(`line (\d+)`)

func yamlPosition(err error) (int, int) {
	m := yamlLine.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, 0
	}
	line, _ := strconv.Atoi(m[1])
	return line, 0
}
