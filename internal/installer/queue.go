package installer

import (
	"context"
	"fmt"
	"sync"

	"github.com/bodil/vscode-use-package/internal/host"
	"github.com/bodil/vscode-use-package/internal/log"
	"github.com/bodil/vscode-use-package/internal/progress"
)

// QueueState is the state of the queue as a whole, not of any one item.
type QueueState int

const (
	// StateIdle means no drain loop is running.
	StateIdle QueueState = iota
	// StateDraining means exactly one drain loop is processing requests.
	StateDraining
)

// request is one pending install. It is owned by the queue from enqueue
// until its done channel is signalled.
type request struct {
	ctx  context.Context
	id   string
	done chan error
}

// Queue serializes extension installs. Requests from any goroutine are
// processed strictly one at a time in arrival order by a single drain loop;
// an enqueue that arrives while a drain is running appends to the pending
// list instead of spawning a second loop. Each drain cycle owns one progress
// session and ends with a single aggregate notification.
type Queue struct {
	poller   *Poller
	detector host.Host
	notifier host.Notifier
	sink     progress.Sink

	mu        sync.Mutex
	state     QueueState
	pending   []*request
	scheduled int
	failed    int
	session   *progress.Session
}

func NewQueue(h host.Host, poller *Poller, notifier host.Notifier, sink progress.Sink) *Queue {
	return &Queue{
		poller:   poller,
		detector: h,
		notifier: notifier,
		sink:     sink,
	}
}

// Install ensures the extension is installed. Extensions already visible to
// the host resolve immediately without touching the queue; everything else
// is enqueued and the call blocks until its turn completes.
func (q *Queue) Install(ctx context.Context, id string) error {
	if q.detector.IsExtensionInstalled(ctx, id) {
		log.Debugf("%s is already installed", id)
		return nil
	}

	done := q.enqueue(ctx, id)
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueue appends a request and starts the drain loop when the queue is
// idle. The state flag is the sole gate keeping a second loop from starting.
func (q *Queue) enqueue(ctx context.Context, id string) <-chan error {
	req := &request{ctx: ctx, id: id, done: make(chan error, 1)}

	q.mu.Lock()
	q.pending = append(q.pending, req)
	q.scheduled++
	if q.state == StateIdle {
		q.state = StateDraining
		q.session = progress.NewSession(q.sink, "Installing extensions", len(q.pending))
		go q.drain()
	} else {
		// Arrived mid-cycle: grow the progress denominator instead of
		// leaving the percentage to overshoot.
		q.session.AddTotal(1)
	}
	q.mu.Unlock()

	return req.done
}

// drain processes pending requests until the queue empties. A failed install
// never aborts the rest of the queue.
func (q *Queue) drain() {
	for {
		req, session := q.next()

		session.Report(fmt.Sprintf("Installing %s", req.id))
		err := q.poller.Install(req.ctx, req.id)
		if err != nil {
			q.mu.Lock()
			q.failed++
			q.mu.Unlock()
			log.Errorf("failed to install %s: %v", req.id, err)
			q.notifier.Error(fmt.Sprintf("Failed to install %s: %v", req.id, err))
		} else {
			log.Infof("installed %s", req.id)
		}
		session.Increment()
		req.done <- err

		if q.settle() {
			return
		}
	}
}

// next dequeues the head request. Being called with nothing pending or
// without an active session is a logic bug in the queue itself.
func (q *Queue) next() (*request, *progress.Session) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		panic("install queue: drain step with empty queue")
	}
	if q.session == nil {
		panic("install queue: drain step without a progress session")
	}
	req := q.pending[0]
	q.pending = q.pending[1:]
	return req, q.session
}

// settle transitions the queue back to idle when no work remains, tearing
// down the progress session and emitting the aggregate notification. The
// scheduled/failed counters reset only here, on a full drain.
func (q *Queue) settle() bool {
	q.mu.Lock()
	if len(q.pending) > 0 {
		q.mu.Unlock()
		return false
	}
	message := summaryMessage(q.scheduled, q.failed)
	session := q.session
	q.scheduled = 0
	q.failed = 0
	q.session = nil
	q.state = StateIdle
	q.mu.Unlock()

	session.Done()
	q.notifier.Info(message)
	return true
}

// summaryMessage renders the per-drain aggregate notification.
func summaryMessage(scheduled, failed int) string {
	installed := scheduled - failed
	switch {
	case failed == 0:
		return fmt.Sprintf("Installed %d %s", installed, pluralize("extension", installed))
	case installed == 0:
		return fmt.Sprintf("%d %s failed to install", failed, pluralize("extension", failed))
	default:
		return fmt.Sprintf("Installed %d %s, and %d failed", installed, pluralize("extension", installed), failed)
	}
}

func pluralize(noun string, count int) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}
