package java

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type scanFinishedMsg struct{}

type scannerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func newScannerModel(message string) scannerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	return scannerModel{
		spinner: s,
		message: message,
	}
}

func (m scannerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m scannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case scanFinishedMsg:
		m.quitting = true
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m scannerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf(" %s %s\n", m.spinner.View(), m.message)
}

// WithScanner runs fn behind a spinner and waits for it to finish,
// even if the spinner is dismissed early.
func WithScanner(message string, fn func()) error {
	p := tea.NewProgram(newScannerModel(message))
	done := make(chan struct{})

	go func() {
		defer close(done)
		time.Sleep(50 * time.Millisecond) // Give UI time to start
		fn()
		p.Send(scanFinishedMsg{})
	}()

	_, err := p.Run()
	<-done
	return err
}
