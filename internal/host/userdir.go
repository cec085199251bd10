package host

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bodil/vscode-use-package/internal/errdefs"
)

// UserDir returns VS Code's per-user configuration directory, where
// settings.json and keybindings.json live. VSCODE_USER_DIR overrides the
// platform default for portable installs.
func UserDir() (string, error) {
	if dir := os.Getenv("VSCODE_USER_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "linux":
		return filepath.Join(home, ".config", "Code", "User"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Code", "User"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Code", "User"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "Code", "User"), nil
	default:
		return "", errdefs.NewCustomError(errdefs.ErrTypeUnsupportedPlatform,
			fmt.Sprintf("no known VS Code user directory on %s", runtime.GOOS))
	}
}

// SettingsPath returns the path of the user-level settings file.
func SettingsPath() (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// KeybindingsPath returns the path of the user-level keybindings file.
func KeybindingsPath() (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keybindings.json"), nil
}
