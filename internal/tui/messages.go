package tui

import "github.com/bodil/vscode-use-package/internal/progress"

type progressMsg progress.Event

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeError
)

type notice struct {
	level noticeLevel
	text  string
}

type noticeMsg notice

// applyDoneMsg signals that the apply run driving this program finished.
type applyDoneMsg struct {
	failures int
}
