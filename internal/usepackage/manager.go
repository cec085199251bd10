// Package usepackage composes the install queue with the settings and
// keybinding appliers behind one declarative entry point, mirroring the
// use-package idiom: ensure a package is installed, then configure it.
package usepackage

import (
	"context"
	"fmt"
	"strings"

	"github.com/bodil/vscode-use-package/internal/keymap"
	"github.com/bodil/vscode-use-package/internal/log"
)

// Installer is the queue-facing contract: block until the named extension
// is installed, or fail.
type Installer interface {
	Install(ctx context.Context, id string) error
}

// SettingsApplier writes a settings mapping under an optional scope.
type SettingsApplier interface {
	Set(ctx context.Context, scope string, mapping map[string]any) error
}

// KeymapMerger upserts keybindings into the user keybindings file.
type KeymapMerger interface {
	Apply(ctx context.Context, bindings []keymap.Binding) error
}

// Options declares what should happen after a package is installed. Absent
// fields are no-ops, not errors.
type Options struct {
	// Scope overrides the settings namespace derived from the package id.
	Scope string
	// Config is applied namespaced under the scope.
	Config map[string]any
	// GlobalConfig is applied with fully-qualified keys.
	GlobalConfig map[string]any
	// Keymap entries are merged into the keybindings file.
	Keymap []keymap.Binding
	// Init runs last, once the package is installed and configured.
	Init func(ctx context.Context) error
}

// Manager owns the components a UsePackage call runs through.
type Manager struct {
	installer Installer
	settings  SettingsApplier
	keymap    KeymapMerger
}

func NewManager(installer Installer, settings SettingsApplier, merger KeymapMerger) *Manager {
	return &Manager{
		installer: installer,
		settings:  settings,
		keymap:    merger,
	}
}

// UsePackage runs the fixed pipeline for one package: install, package
// config, global config, keybindings, init hook. Each stage completes
// before the next starts, and the first failing stage aborts the rest.
//
// Concurrent UsePackage calls share the install queue, so their
// installations happen one at a time in submission order; their
// configuration stages are not ordered relative to each other. Callers that
// need full ordering must wait for each call before issuing the next.
func (m *Manager) UsePackage(ctx context.Context, name string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	if err := m.installer.Install(ctx, name); err != nil {
		return err
	}

	if len(opts.Config) > 0 {
		scope := opts.Scope
		if scope == "" {
			scope = DefaultScope(name)
		}
		if err := m.settings.Set(ctx, scope, opts.Config); err != nil {
			return fmt.Errorf("failed to configure %s: %w", name, err)
		}
	}

	if len(opts.GlobalConfig) > 0 {
		if err := m.settings.Set(ctx, "", opts.GlobalConfig); err != nil {
			return fmt.Errorf("failed to apply global config for %s: %w", name, err)
		}
	}

	if len(opts.Keymap) > 0 {
		if err := m.keymap.Apply(ctx, opts.Keymap); err != nil {
			return fmt.Errorf("failed to apply keybindings for %s: %w", name, err)
		}
	}

	if opts.Init != nil {
		if err := opts.Init(ctx); err != nil {
			return fmt.Errorf("init hook for %s failed: %w", name, err)
		}
	}

	log.Debugf("package %s is ready", name)
	return nil
}

// ConfigSet applies a settings mapping outside any package pipeline.
func (m *Manager) ConfigSet(ctx context.Context, scope string, mapping map[string]any) error {
	return m.settings.Set(ctx, scope, mapping)
}

// KeymapSet merges keybindings outside any package pipeline.
func (m *Manager) KeymapSet(ctx context.Context, bindings []keymap.Binding) error {
	return m.keymap.Apply(ctx, bindings)
}

// DefaultScope derives the settings namespace from a package identifier:
// the segment after the last dot, so "golang.go" configures under "go".
// Identifiers without a dot scope to themselves.
func DefaultScope(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
