package plugin

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/funcobj/internal/logging"
	"github.com/dshills/funcobj/internal/plugin/api"
	plua "github.com/dshills/funcobj/internal/plugin/lua"
	"github.com/dshills/funcobj/internal/plugin/security"
)

// Host runs scripts against a shared API context.
type Host struct {
	api    *api.Context
	log    *logging.Logger
	grants []security.Capability

	executionTimeout time.Duration
	output           io.Writer
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the host logger.
func WithLogger(log *logging.Logger) HostOption {
	return func(h *Host) {
		h.log = log
	}
}

// WithGrants sets the capabilities every script receives. By default
// scripts are granted the whole editor capability.
func WithGrants(caps ...security.Capability) HostOption {
	return func(h *Host) {
		h.grants = caps
	}
}

// WithExecutionTimeout bounds each run.
func WithExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.executionTimeout = d
	}
}

// WithOutput receives script print output.
func WithOutput(w io.Writer) HostOption {
	return func(h *Host) {
		h.output = w
	}
}

// NewHost creates a script host over apiCtx.
func NewHost(apiCtx *api.Context, opts ...HostOption) (*Host, error) {
	if apiCtx == nil {
		return nil, ErrNoAPI
	}

	h := &Host{
		api:              apiCtx,
		log:              logging.Discard(),
		grants:           []security.Capability{security.CapabilityEditor},
		executionTimeout: plua.DefaultTimeout,
		output:           io.Discard,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.WithComponent("script")
	return h, nil
}

// Grants returns the capabilities granted to scripts.
func (h *Host) Grants() []security.Capability {
	out := make([]security.Capability, len(h.grants))
	copy(out, h.grants)
	return out
}

// RunFile runs the script at path. The script is named after the file
// without its extension.
func (h *Host) RunFile(ctx context.Context, path string) error {
	if filepath.Ext(path) != ".lua" {
		return fmt.Errorf("%w: %s: not a .lua file", ErrInvalidScript, path)
	}
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScriptNotFound, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".lua")
	return h.Run(ctx, name, string(code))
}

// Run runs code as the script name in a fresh sandboxed state.
func (h *Host) Run(ctx context.Context, name, code string) error {
	if strings.TrimSpace(code) == "" {
		return &ScriptError{Script: name, Err: ErrInvalidScript}
	}

	runID := uuid.NewString()
	state := plua.NewState(plua.Config{Timeout: h.executionTimeout, Output: h.output})
	defer state.Close()

	grants := security.NewGrants(name, h.grants...)
	modules := api.DefaultRegistry(h.api, name).Install(state.Lua(), grants)

	log := h.log.WithFields(map[string]any{
		"script": name,
		"run":    runID,
	})
	log.WithFields(map[string]any{
		"grants":  grants.List(),
		"modules": modules,
	}).Debug("running script")

	start := time.Now()
	if err := state.Exec(ctx, name, code); err != nil {
		log.WithField("duration", time.Since(start)).Warn("script failed: %v", err)
		return &ScriptError{Script: name, RunID: runID, Err: err}
	}

	log.WithField("duration", time.Since(start)).Debug("script finished")
	return nil
}
