package manifest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/bodil/vscode-use-package/internal/errdefs"
	"github.com/bodil/vscode-use-package/internal/keymap"
	"github.com/bodil/vscode-use-package/internal/log"
	"github.com/bodil/vscode-use-package/internal/usepackage"
)

// Package is one declarative entry of the manifest.
type Package struct {
	Name         string           `yaml:"name"`
	Scope        string           `yaml:"scope,omitempty"`
	Config       map[string]any   `yaml:"config,omitempty"`
	GlobalConfig map[string]any   `yaml:"globalConfig,omitempty"`
	Keymap       []keymap.Binding `yaml:"keymap,omitempty"`
	// Run is a shell command executed after the package is installed and
	// configured.
	Run string `yaml:"run,omitempty"`
}

// Manifest is the declarative package list applied by `vscup apply`.
type Manifest struct {
	Packages []Package `yaml:"packages"`
}

// DefaultPath is where apply looks for the manifest when no -f flag is
// given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vscup", "packages.yaml"), nil
}

// Load reads and validates a manifest file.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errdefs.NewCustomError(errdefs.ErrTypeManifest,
			fmt.Sprintf("failed to parse manifest %s: %v", path, err))
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate rejects manifests the orchestrator would choke on later.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Packages))
	for i, pkg := range m.Packages {
		if pkg.Name == "" {
			return errdefs.NewCustomError(errdefs.ErrTypeManifest,
				fmt.Sprintf("package %d has no name", i))
		}
		if seen[pkg.Name] {
			return errdefs.NewCustomError(errdefs.ErrTypeManifest,
				fmt.Sprintf("duplicate package %q", pkg.Name))
		}
		seen[pkg.Name] = true

		for _, binding := range pkg.Keymap {
			if binding.Key == "" || binding.Command == "" {
				return errdefs.NewCustomError(errdefs.ErrTypeManifest,
					fmt.Sprintf("package %q has a keybinding without key or command", pkg.Name))
			}
		}
	}
	return nil
}

// Options shapes the entry into orchestrator options. The run hook becomes
// the init callback.
func (p *Package) Options() *usepackage.Options {
	opts := &usepackage.Options{
		Scope:        p.Scope,
		Config:       p.Config,
		GlobalConfig: p.GlobalConfig,
		Keymap:       p.Keymap,
	}
	if p.Run != "" {
		command := p.Run
		name := p.Name
		opts.Init = func(ctx context.Context) error {
			log.Debugf("running hook for %s: %s", name, command)
			cmd := exec.CommandContext(ctx, "sh", "-c", command)
			output, err := cmd.CombinedOutput()
			if err != nil {
				return fmt.Errorf("run hook %q: %w: %s", command, err, output)
			}
			return nil
		}
	}
	return opts
}
