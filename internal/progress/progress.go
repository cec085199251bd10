package progress

import (
	"sync"

	"github.com/bodil/vscode-use-package/internal/log"
)

// Event is a single progress update pushed to a Sink.
type Event struct {
	Title   string
	Message string
	Percent int
	Done    bool
}

// Sink receives progress events. Implementations must not block for long;
// the install queue reports from its drain loop.
type Sink interface {
	Progress(event Event)
}

// Session tracks completion of one queue drain cycle. The denominator grows
// when items are enqueued mid-cycle, so the reported percentage never
// overshoots 100.
type Session struct {
	sink  Sink
	title string

	mu        sync.Mutex
	total     int
	completed int
	message   string
}

func NewSession(sink Sink, title string, total int) *Session {
	s := &Session{sink: sink, title: title, total: total}
	s.push()
	return s
}

// Report updates the status text without advancing completion.
func (s *Session) Report(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
	s.push()
}

// Increment marks one item as completed.
func (s *Session) Increment() {
	s.mu.Lock()
	s.completed++
	s.mu.Unlock()
	s.push()
}

// AddTotal grows the denominator for items that arrived mid-cycle.
func (s *Session) AddTotal(n int) {
	s.mu.Lock()
	s.total += n
	s.mu.Unlock()
	s.push()
}

// Done tears down the session.
func (s *Session) Done() {
	s.sink.Progress(Event{Title: s.title, Percent: 100, Done: true})
}

func (s *Session) Percent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.percentLocked()
}

func (s *Session) percentLocked() int {
	if s.total == 0 {
		return 0
	}
	return s.completed * 100 / s.total
}

func (s *Session) push() {
	s.mu.Lock()
	event := Event{
		Title:   s.title,
		Message: s.message,
		Percent: s.percentLocked(),
	}
	s.mu.Unlock()
	s.sink.Progress(event)
}

// LogSink reports progress through the process logger. Used for
// non-interactive runs.
type LogSink struct{}

func (LogSink) Progress(event Event) {
	if event.Done {
		return
	}
	if event.Message != "" {
		log.Infof("[%3d%%] %s", event.Percent, event.Message)
	}
}
