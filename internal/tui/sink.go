package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bodil/vscode-use-package/internal/progress"
)

// Sink bridges the install queue's progress events and notifications into
// the running bubbletea program. It satisfies both progress.Sink and
// host.Notifier.
type Sink struct {
	ch chan tea.Msg
}

func NewSink() *Sink {
	// Buffered so the queue's drain loop never stalls on rendering.
	return &Sink{ch: make(chan tea.Msg, 256)}
}

func (s *Sink) Progress(event progress.Event) {
	s.ch <- progressMsg(event)
}

func (s *Sink) Info(message string) {
	s.ch <- noticeMsg{level: noticeInfo, text: message}
}

func (s *Sink) Error(message string) {
	s.ch <- noticeMsg{level: noticeError, text: message}
}

// Done ends the program once the apply run has finished.
func (s *Sink) Done(failures int) {
	s.ch <- applyDoneMsg{failures: failures}
}

// wait is the tea command that feeds the next queued message into Update.
func (s *Sink) wait() tea.Cmd {
	return func() tea.Msg {
		return <-s.ch
	}
}
