package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const maxVisibleNotices = 8

// Model renders one apply run: a spinner and progress bar while the install
// queue drains, notifications as they arrive, and a final summary.
type Model struct {
	styles  Styles
	spinner spinner.Model
	sink    *Sink

	title    string
	message  string
	percent  int
	active   bool
	notices  []notice
	done     bool
	failures int
}

func NewModel(title string, sink *Sink) Model {
	styles := NewStyles(BlueTheme())
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		styles:  styles,
		spinner: sp,
		sink:    sink,
		title:   title,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.sink.wait())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		if msg.Done {
			m.active = false
		} else {
			m.active = true
			m.percent = msg.Percent
			if msg.Message != "" {
				m.message = msg.Message
			}
		}
		return m, m.sink.wait()

	case noticeMsg:
		m.notices = append(m.notices, notice(msg))
		return m, m.sink.wait()

	case applyDoneMsg:
		m.done = true
		m.failures = msg.failures
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")

	if m.active {
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.styles.Normal.Render(m.message)))
		b.WriteString("\n")
		bar := m.styles.NewThemedProgress(40)
		b.WriteString(bar.ViewAs(float64(m.percent) / 100))
		b.WriteString("\n")
	}

	if len(m.notices) > 0 {
		b.WriteString("\n")
		start := 0
		if len(m.notices) > maxVisibleNotices {
			start = len(m.notices) - maxVisibleNotices
		}
		for _, n := range m.notices[start:] {
			switch n.level {
			case noticeError:
				b.WriteString(m.styles.Error.Render("✗ " + n.text))
			default:
				b.WriteString(m.styles.Normal.Render("• " + n.text))
			}
			b.WriteString("\n")
		}
	}

	if m.done {
		b.WriteString("\n")
		if m.failures > 0 {
			b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Finished with %d failed package(s).", m.failures)))
		} else {
			b.WriteString(m.styles.Success.Render("✓ All packages applied."))
		}
		b.WriteString("\n")
	}

	return b.String()
}
