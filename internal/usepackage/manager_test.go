package usepackage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodil/vscode-use-package/internal/errdefs"
	"github.com/bodil/vscode-use-package/internal/keymap"
)

// stageRecorder implements every pipeline dependency and records the order
// stages run in.
type stageRecorder struct {
	stages      []string
	installErr  error
	settingsErr error
}

func (r *stageRecorder) Install(ctx context.Context, id string) error {
	r.stages = append(r.stages, "install:"+id)
	return r.installErr
}

func (r *stageRecorder) Set(ctx context.Context, scope string, mapping map[string]any) error {
	r.stages = append(r.stages, fmt.Sprintf("config:%s", scope))
	return r.settingsErr
}

func (r *stageRecorder) Apply(ctx context.Context, bindings []keymap.Binding) error {
	r.stages = append(r.stages, fmt.Sprintf("keymap:%d", len(bindings)))
	return nil
}

func newTestManager() (*Manager, *stageRecorder) {
	rec := &stageRecorder{}
	return NewManager(rec, rec, rec), rec
}

func TestUsePackagePipelineOrder(t *testing.T) {
	m, rec := newTestManager()

	err := m.UsePackage(context.Background(), "golang.go", &Options{
		Config:       map[string]any{"useLanguageServer": true},
		GlobalConfig: map[string]any{"editor.formatOnSave": true},
		Keymap: []keymap.Binding{
			{Key: "ctrl+t", Command: "go.test.package"},
		},
		Init: func(ctx context.Context) error {
			rec.stages = append(rec.stages, "init")
			return nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"install:golang.go",
		"config:go",
		"config:",
		"keymap:1",
		"init",
	}, rec.stages)
}

func TestUsePackageNilOptions(t *testing.T) {
	m, rec := newTestManager()

	require.NoError(t, m.UsePackage(context.Background(), "a.b", nil))
	assert.Equal(t, []string{"install:a.b"}, rec.stages)
}

func TestUsePackageScopeOverride(t *testing.T) {
	m, rec := newTestManager()

	err := m.UsePackage(context.Background(), "ms-python.python", &Options{
		Scope:  "python",
		Config: map[string]any{"linting.enabled": true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"install:ms-python.python", "config:python"}, rec.stages)
}

func TestUsePackageInstallFailureAbortsPipeline(t *testing.T) {
	m, rec := newTestManager()
	rec.installErr = &errdefs.InstallTimeoutError{Extension: "a.b"}

	err := m.UsePackage(context.Background(), "a.b", &Options{
		Config: map[string]any{"x": 1},
	})

	var timeout *errdefs.InstallTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, []string{"install:a.b"}, rec.stages)
}

func TestUsePackageConfigFailureSkipsLaterStages(t *testing.T) {
	m, rec := newTestManager()
	rec.settingsErr = errors.New("disk full")

	err := m.UsePackage(context.Background(), "a.b", &Options{
		Config: map[string]any{"x": 1},
		Keymap: []keymap.Binding{{Key: "k", Command: "c"}},
	})

	require.ErrorContains(t, err, "disk full")
	assert.Equal(t, []string{"install:a.b", "config:b"}, rec.stages)
}

func TestUsePackageInitHookError(t *testing.T) {
	m, _ := newTestManager()

	err := m.UsePackage(context.Background(), "a.b", &Options{
		Init: func(ctx context.Context) error { return errors.New("hook blew up") },
	})
	require.ErrorContains(t, err, "hook blew up")
	require.ErrorContains(t, err, "a.b")
}

func TestDefaultScope(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"golang.go", "go"},
		{"ms-python.python", "python"},
		{"a.b.c", "c"},
		{"nodots", "nodots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultScope(tt.name))
		})
	}
}

func TestEntryPointsRequireInit(t *testing.T) {
	Teardown()
	ctx := context.Background()

	assert.ErrorIs(t, UsePackage(ctx, "a.b", nil), errdefs.ErrNotInitialized)
	assert.ErrorIs(t, ConfigSet(ctx, "", map[string]any{"x": 1}), errdefs.ErrNotInitialized)
	assert.ErrorIs(t, KeymapSet(ctx, nil), errdefs.ErrNotInitialized)
}

func TestEntryPointsAfterInit(t *testing.T) {
	m, rec := newTestManager()
	Init(m)
	defer Teardown()

	require.NoError(t, UsePackage(context.Background(), "a.b", nil))
	assert.Equal(t, []string{"install:a.b"}, rec.stages)
}
