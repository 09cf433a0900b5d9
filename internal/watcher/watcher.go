// Package watcher reports external changes to the files behind open
// documents.
//
// Editors commonly save by writing a temporary file and renaming it over
// the original, which drops a watch placed on the file itself. The
// watcher therefore watches each tracked file's parent directory and
// filters the directory's events down to tracked paths. Rapid changes to
// one path are coalesced into a single event.
package watcher

import (
	"errors"
	"time"
)

// Errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrNotTracked    = errors.New("file is not tracked")
	ErrNotRegular    = errors.New("path is not a regular file")
)

// Op is a set of file operations.
type Op uint32

const (
	// OpCreate indicates the file was created, including by a rename onto
	// its path.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation set.
func (op Op) String() string {
	if op == 0 {
		return "NONE"
	}
	var out []byte
	for _, n := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
	} {
		if op.Has(n.op) {
			if len(out) > 0 {
				out = append(out, '|')
			}
			out = append(out, n.name...)
		}
	}
	return string(out)
}

// Has returns true if the set includes o.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Changed returns true if the file has new content at its path.
func (op Op) Changed() bool {
	return op&(OpCreate|OpWrite) != 0
}

// Event is a coalesced change to one tracked file.
type Event struct {
	// Path is the absolute path of the tracked file.
	Path string

	// Op holds every operation seen during the debounce window.
	Op Op

	// Time is when the last operation was seen.
	Time time.Time
}

// Config holds watcher configuration.
type Config struct {
	// Debounce is the quiet period before an event is delivered.
	// Default: 100ms
	Debounce time.Duration

	// BufferSize is the size of the event and error channels.
	// Default: 64
	BufferSize int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Debounce:   100 * time.Millisecond,
		BufferSize: 64,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.Debounce = d
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}
