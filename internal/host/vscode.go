package host

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bodil/vscode-use-package/internal/log"
)

const defaultCodeBinary = "code"

// CodeCLI drives VS Code through its command line interface.
type CodeCLI struct {
	binary string
}

// NewCodeCLI resolves the VS Code binary, honoring the VSCUP_CODE_BIN
// override for forks like code-insiders or codium.
func NewCodeCLI() *CodeCLI {
	binary := os.Getenv("VSCUP_CODE_BIN")
	if binary == "" {
		binary = defaultCodeBinary
	}
	return &CodeCLI{binary: binary}
}

func (c *CodeCLI) IsExtensionInstalled(ctx context.Context, id string) bool {
	cmd := exec.CommandContext(ctx, c.binary, "--list-extensions")
	output, err := cmd.Output()
	if err != nil {
		log.Debugf("listing extensions failed: %v", err)
		return false
	}
	return listContains(string(output), id)
}

// InstallExtension hands the install request to VS Code. It deliberately does
// not wait for the command to finish: the CLI exiting is no guarantee the
// extension is loaded, so completion is observed by polling the extension
// list instead.
func (c *CodeCLI) InstallExtension(ctx context.Context, id string) error {
	cmd := exec.CommandContext(ctx, c.binary, "--install-extension", id)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run %s --install-extension %s: %w", c.binary, id, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debugf("install command for %s exited: %v", id, err)
		}
	}()
	return nil
}

// listContains matches an extension id against --list-extensions output.
// Extension identifiers are case-insensitive.
func listContains(output, id string) bool {
	for _, line := range strings.Split(output, "\n") {
		if strings.EqualFold(strings.TrimSpace(line), id) {
			return true
		}
	}
	return false
}
