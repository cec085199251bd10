package usepackage

import (
	"context"
	"sync"

	"github.com/bodil/vscode-use-package/internal/errdefs"
	"github.com/bodil/vscode-use-package/internal/keymap"
	"github.com/bodil/vscode-use-package/internal/log"
)

// The package-level entry points operate on one process-wide manager with
// explicit init/teardown. Init must run before any of them; everything else
// is a setup error.
var (
	defaultMu      sync.RWMutex
	defaultManager *Manager
)

// Init installs the process-wide manager. It must be called exactly once
// before UsePackage, ConfigSet or KeymapSet.
func Init(m *Manager) {
	defaultMu.Lock()
	defaultManager = m
	defaultMu.Unlock()
}

// Teardown clears the process-wide manager.
func Teardown() {
	defaultMu.Lock()
	defaultManager = nil
	defaultMu.Unlock()
}

func active() (*Manager, error) {
	defaultMu.RLock()
	m := defaultManager
	defaultMu.RUnlock()
	if m == nil {
		log.Error(errdefs.ErrNotInitialized.Error())
		return nil, errdefs.ErrNotInitialized
	}
	return m, nil
}

// UsePackage runs the package pipeline on the process-wide manager.
func UsePackage(ctx context.Context, name string, opts *Options) error {
	m, err := active()
	if err != nil {
		return err
	}
	return m.UsePackage(ctx, name, opts)
}

// ConfigSet applies settings through the process-wide manager.
func ConfigSet(ctx context.Context, scope string, mapping map[string]any) error {
	m, err := active()
	if err != nil {
		return err
	}
	return m.ConfigSet(ctx, scope, mapping)
}

// KeymapSet merges keybindings through the process-wide manager.
func KeymapSet(ctx context.Context, bindings []keymap.Binding) error {
	m, err := active()
	if err != nil {
		return err
	}
	return m.KeymapSet(ctx, bindings)
}
