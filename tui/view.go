package tui

import (
	"fmt"
	"strings"

	"promptcoach/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	copiedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	improvedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	levelStyles = map[string]lipgloss.Style{
		"missing": lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		"weak":    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"ok":      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		"strong":  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Prompt Coach"))
	b.WriteString("\n\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.spinner.View() + " Analyzing...\n")
	}
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderAnalysis())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+s analyze · ctrl+u use improved · ctrl+y copy improved · ctrl+c quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderAnalysis() string {
	analysis := models.PlaceholderAnalysis()
	if m.analysis != nil {
		analysis = *m.analysis
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Overall: %d/100 (%s)", analysis.OverallScore, analysis.OverallLabel)))
	b.WriteString("\n\n")

	for _, criterion := range analysis.Criteria {
		level := levelStyles[criterion.Level].Render(criterion.Level)
		b.WriteString(fmt.Sprintf("  %-12s %3d/100 [%s]", criterion.Label, criterion.Score, level))
		if criterion.Feedback != "" {
			b.WriteString("  " + criterion.Feedback)
		}
		b.WriteString("\n")
	}

	if len(analysis.Suggestions) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Suggestions") + "\n")
		for _, suggestion := range analysis.Suggestions {
			b.WriteString("  - " + suggestion + "\n")
		}
	}

	if analysis.ImprovedPrompt != "" {
		header := "Improved prompt"
		if m.copied {
			header += " " + copiedStyle.Render("(copied)")
		}
		b.WriteString("\n" + sectionStyle.Render(header) + "\n")
		b.WriteString(improvedStyle.Render(analysis.ImprovedPrompt) + "\n")
	}

	return b.String()
}
