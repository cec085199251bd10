package manifest

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestPath = "/home/user/.config/vscup/packages.yaml"

func writeManifest(t *testing.T, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, manifestPath, []byte(content), 0644))
	return fs
}

func TestLoad(t *testing.T) {
	fs := writeManifest(t, `
packages:
  - name: golang.go
    config:
      useLanguageServer: true
      lintTool: golangci-lint
    keymap:
      - key: ctrl+t
        command: go.test.package
        when: editorLangId == go
  - name: esbenp.prettier-vscode
    scope: prettier
    globalConfig:
      editor.formatOnSave: true
    run: "echo configured"
`)

	m, err := Load(fs, manifestPath)
	require.NoError(t, err)
	require.Len(t, m.Packages, 2)

	first := m.Packages[0]
	assert.Equal(t, "golang.go", first.Name)
	assert.Equal(t, true, first.Config["useLanguageServer"])
	require.Len(t, first.Keymap, 1)
	assert.Equal(t, "ctrl+t", first.Keymap[0].Key)
	assert.Equal(t, "editorLangId == go", first.Keymap[0].When)

	second := m.Packages[1]
	assert.Equal(t, "prettier", second.Scope)
	assert.Equal(t, true, second.GlobalConfig["editor.formatOnSave"])
	assert.Equal(t, "echo configured", second.Run)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), manifestPath)
	assert.ErrorContains(t, err, "failed to read manifest")
}

func TestLoadInvalidYAML(t *testing.T) {
	fs := writeManifest(t, "packages: [\n")
	_, err := Load(fs, manifestPath)
	assert.ErrorContains(t, err, "failed to parse manifest")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "packages:\n  - config: {a: 1}\n",
			wantErr: "has no name",
		},
		{
			name:    "duplicate name",
			content: "packages:\n  - name: a.b\n  - name: a.b\n",
			wantErr: `duplicate package "a.b"`,
		},
		{
			name:    "keybinding without command",
			content: "packages:\n  - name: a.b\n    keymap:\n      - key: ctrl+t\n",
			wantErr: "without key or command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := writeManifest(t, tt.content)
			_, err := Load(fs, manifestPath)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestOptionsShaping(t *testing.T) {
	pkg := Package{
		Name:   "golang.go",
		Scope:  "go",
		Config: map[string]any{"useLanguageServer": true},
	}

	opts := pkg.Options()
	assert.Equal(t, "go", opts.Scope)
	assert.Equal(t, pkg.Config, opts.Config)
	assert.Nil(t, opts.Init)
}

func TestOptionsRunHook(t *testing.T) {
	pkg := Package{Name: "a.b", Run: "exit 0"}
	opts := pkg.Options()
	require.NotNil(t, opts.Init)
	assert.NoError(t, opts.Init(context.Background()))

	failing := Package{Name: "a.b", Run: "echo boom >&2; exit 3"}
	err := failing.Options().Init(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "run hook")
}

func TestFilter(t *testing.T) {
	m := &Manifest{Packages: []Package{
		{Name: "golang.go"},
		{Name: "ms-python.python"},
		{Name: "rust-lang.rust-analyzer"},
	}}

	assert.Len(t, m.Filter(""), 3)

	matches := m.Filter("python")
	require.Len(t, matches, 1)
	assert.Equal(t, "ms-python.python", matches[0].Name)

	// Fuzzy: subsequence match.
	matches = m.Filter("glg")
	require.Len(t, matches, 1)
	assert.Equal(t, "golang.go", matches[0].Name)

	assert.Empty(t, m.Filter("zzz"))
}
