// Package tui is the interactive terminal client for the analysis server:
// a prompt editor, the rendered critique, and copy/reuse of the improved
// prompt.
package tui

import (
	"context"
	"strings"
	"time"

	"promptcoach/models"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const copiedFlashDuration = 1500 * time.Millisecond

type analysisMsg struct {
	analysis models.Analysis
}

type analysisErrMsg struct {
	err error
}

type copyExpiredMsg struct{}

// Model holds the client state: the editable prompt, the last critique, and
// the busy/error/copied indicators.
type Model struct {
	textarea textarea.Model
	spinner  spinner.Model
	client   *Client

	analysis *models.Analysis
	busy     bool
	errText  string
	copied   bool
	width    int
}

func New(client *Client) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a prompt to analyze..."
	ta.SetHeight(6)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		textarea: ta,
		spinner:  sp,
		client:   client,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textarea.SetWidth(min(msg.Width-4, 100))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			return m.startAnalysis()
		case "ctrl+u":
			m.useImprovedPrompt()
			return m, nil
		case "ctrl+y":
			return m.copyImprovedPrompt()
		}

	case analysisMsg:
		analysis := msg.analysis
		m.busy = false
		m.analysis = &analysis
		m.copied = false
		m.errText = ""
		return m, nil

	case analysisErrMsg:
		// Keep the previous analysis on screen, only surface the error.
		m.busy = false
		m.errText = msg.err.Error()
		return m, nil

	case copyExpiredMsg:
		m.copied = false
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// startAnalysis kicks off an analysis unless one is already in flight. An
// empty prompt is rejected locally without a network call.
func (m Model) startAnalysis() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	prompt := m.textarea.Value()
	if strings.TrimSpace(prompt) == "" {
		m.errText = "Enter a prompt before analyzing"
		return m, nil
	}
	m.busy = true
	m.errText = ""
	return m, tea.Batch(m.spinner.Tick, analyzeCmd(m.client, prompt))
}

func analyzeCmd(client *Client, prompt string) tea.Cmd {
	return func() tea.Msg {
		analysis, err := client.Analyze(context.Background(), prompt)
		if err != nil {
			return analysisErrMsg{err}
		}
		return analysisMsg{analysis}
	}
}

// useImprovedPrompt replaces the editor content with the improved prompt from
// the last analysis. No-op when there is none or it is blank.
func (m *Model) useImprovedPrompt() {
	if m.analysis == nil || strings.TrimSpace(m.analysis.ImprovedPrompt) == "" {
		return
	}
	m.textarea.SetValue(m.analysis.ImprovedPrompt)
}

// copyImprovedPrompt writes the improved prompt to the system clipboard and
// flashes the copied indicator. Clipboard failures are silent.
func (m Model) copyImprovedPrompt() (tea.Model, tea.Cmd) {
	if m.analysis == nil || m.analysis.ImprovedPrompt == "" {
		return m, nil
	}
	if err := clipboard.WriteAll(m.analysis.ImprovedPrompt); err != nil {
		return m, nil
	}
	m.copied = true
	return m, tea.Tick(copiedFlashDuration, func(time.Time) tea.Msg {
		return copyExpiredMsg{}
	})
}
