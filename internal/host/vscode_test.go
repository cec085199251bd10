package host

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListContains(t *testing.T) {
	output := "golang.go\nms-python.python\nesbenp.prettier-vscode\n"

	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"exact match", "golang.go", true},
		{"case insensitive", "MS-Python.Python", true},
		{"no match", "rust-lang.rust-analyzer", false},
		{"partial id does not match", "golang", false},
		{"empty output", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listContains(output, tt.id))
		})
	}
}

func TestListContainsWindowsLineEndings(t *testing.T) {
	output := "golang.go\r\nms-python.python\r\n"
	assert.True(t, listContains(output, "ms-python.python"))
}

func TestNewCodeCLIBinaryOverride(t *testing.T) {
	t.Setenv("VSCUP_CODE_BIN", "code-insiders")
	assert.Equal(t, "code-insiders", NewCodeCLI().binary)

	t.Setenv("VSCUP_CODE_BIN", "")
	assert.Equal(t, "code", NewCodeCLI().binary)
}

func TestUserDirOverride(t *testing.T) {
	t.Setenv("VSCODE_USER_DIR", "/tmp/vscode-user")

	dir, err := UserDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/vscode-user", dir)

	settings, err := SettingsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/vscode-user", "settings.json"), settings)

	keybindings, err := KeybindingsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/vscode-user", "keybindings.json"), keybindings)
}
