package installer

import (
	"context"
	"time"

	"github.com/bodil/vscode-use-package/internal/errdefs"
	"github.com/bodil/vscode-use-package/internal/host"
)

const (
	// DefaultAttempts is the poll retry budget after the install request is
	// accepted. The extension failing to appear within attempts+1 checks is
	// a timeout.
	DefaultAttempts = 20

	// DefaultStep is how much the poll delay grows after each failed check.
	// The delay starts at zero, so the common fast-install case resolves on
	// the first check with no waiting at all.
	DefaultStep = 100 * time.Millisecond
)

// Poller issues the host's install command and waits for the extension to
// become visible. The host gives no completion event for installs, so
// polling the extension list with a linearly growing delay is the only
// available signal; the linear schedule bounds the total wait while staying
// responsive for fast installs.
type Poller struct {
	host     host.Host
	attempts int
	step     time.Duration
}

func NewPoller(h host.Host) *Poller {
	return &Poller{host: h, attempts: DefaultAttempts, step: DefaultStep}
}

// NewPollerWithSchedule is NewPoller with an explicit retry schedule.
func NewPollerWithSchedule(h host.Host, attempts int, step time.Duration) *Poller {
	return &Poller{host: h, attempts: attempts, step: step}
}

// Install requests installation of the extension and blocks until it is
// visible to the host or the retry budget runs out, in which case it returns
// an InstallTimeoutError carrying the extension id.
func (p *Poller) Install(ctx context.Context, id string) error {
	if err := p.host.InstallExtension(ctx, id); err != nil {
		return err
	}

	delay := time.Duration(0)
	for attempt := 0; attempt <= p.attempts; attempt++ {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if p.host.IsExtensionInstalled(ctx, id) {
			return nil
		}
		delay += p.step
	}

	return &errdefs.InstallTimeoutError{Extension: id}
}
