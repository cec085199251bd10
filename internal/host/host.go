package host

import (
	"context"

	"github.com/bodil/vscode-use-package/internal/log"
)

// Host is the editor-side surface the installer depends on. Installation is
// asynchronous on the host's side: InstallExtension returning nil means the
// request was accepted, not that the extension is usable yet. Callers that
// need completion must poll IsExtensionInstalled.
type Host interface {
	// IsExtensionInstalled reports whether the extension is currently
	// visible to the host. Query failures count as not installed.
	IsExtensionInstalled(ctx context.Context, id string) bool

	// InstallExtension issues the host's install command and returns once
	// the request has been handed off.
	InstallExtension(ctx context.Context, id string) error
}

// Notifier is the user-facing notification surface.
type Notifier interface {
	Info(message string)
	Error(message string)
}

// LogNotifier routes notifications to the process logger. Used when no
// interactive surface is attached.
type LogNotifier struct{}

func (LogNotifier) Info(message string)  { log.Info(message) }
func (LogNotifier) Error(message string) { log.Error(message) }
