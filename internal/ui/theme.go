package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/pickx/internal/config"
)

// Styles holds the resolved lipgloss styles for every prompt element.
// Built once from the theme config; NoColor swaps every style for the
// identity so snapshot tests and dumb terminals see plain text.
type Styles struct {
	QMark   lipgloss.Style
	Message lipgloss.Style
	Prompt  lipgloss.Style
	Match   lipgloss.Style
	Pointer lipgloss.Style
	Marker  lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
	Answer  lipgloss.Style
	NoColor bool
}

// NewStyles builds Styles from a theme. Unset colors render unstyled.
func NewStyles(t config.ThemeConfig, noColor bool) Styles {
	if noColor {
		return Styles{NoColor: true}
	}
	fg := func(c string) lipgloss.Style {
		s := lipgloss.NewStyle()
		if c != "" {
			s = s.Foreground(lipgloss.Color(c))
		}
		return s
	}
	return Styles{
		QMark:   fg(t.QMark).Bold(true),
		Message: lipgloss.NewStyle().Bold(true),
		Prompt:  fg(t.Prompt).Bold(true),
		Match:   fg(t.Match).Bold(true),
		Pointer: fg(t.Pointer).Bold(true),
		Marker:  fg(t.Marker).Bold(true),
		Info:    fg(t.Info),
		Error:   fg(t.Error),
		Answer:  fg(t.Answer),
	}
}
