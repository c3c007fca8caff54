package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
)

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

// render builds the full prompt frame as plain text plus styling. Kept
// separate from View so tests can assert on the string form.
func (m Model) render() string {
	if m.done {
		answer := strings.Join(m.resultNames(), ", ")
		return fmt.Sprintf("%s %s %s\n",
			m.Styles.QMark.Render(m.Cfg.Symbols.QMark),
			m.Styles.Message.Render(m.Message),
			m.Styles.Answer.Render(answer))
	}
	if m.canceled {
		return fmt.Sprintf("%s %s\n",
			m.Styles.QMark.Render(m.Cfg.Symbols.QMark),
			m.Styles.Message.Render(m.Message))
	}

	var b strings.Builder
	b.WriteString(m.Styles.QMark.Render(m.Cfg.Symbols.QMark))
	b.WriteString(" ")
	b.WriteString(m.Styles.Message.Render(m.Message))
	b.WriteString("\n")

	body := m.renderInputLine() + "\n" + m.renderRows()
	if m.Cfg.Behavior.Border {
		border := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(m.innerWidth())
		body = border.Render(body)
	}
	b.WriteString(body)
	b.WriteString("\n")

	if invalid, msg := m.Session.Invalid(); invalid {
		b.WriteString(m.Styles.Error.Render("✗ " + msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) innerWidth() int {
	w := m.WinWidth - 4
	if w < 20 {
		w = 20
	}
	return w
}

// renderInputLine renders the query input with the filtered/total info
// as virtual text after it, the way the original prompt shows counts.
func (m Model) renderInputLine() string {
	line := m.Input.View()
	if m.Cfg.Behavior.Info {
		c := m.Session.Counts()
		info := fmt.Sprintf("%d/%d", c.Filtered, c.Total)
		if m.Session.Multiselect() {
			info += fmt.Sprintf(" (%d)", c.Enabled)
		}
		line += "  " + m.Styles.Info.Render(info)
	}
	return line
}

// maxVisibleRows bounds the candidate window: the configured height,
// shrunk further when the terminal itself is short.
func (m Model) maxVisibleRows() int {
	max := m.Cfg.Behavior.Height
	if avail := m.WinHeight - 5; max <= 0 || avail < max {
		max = avail
	}
	if max < 1 {
		max = 1
	}
	return max
}

func (m Model) renderRows() string {
	rows := m.Session.Rows()
	if len(rows) == 0 {
		return m.Styles.Info.Render("  (no matches)")
	}

	maxVisible := m.maxVisibleRows()
	start := 0
	if cur := m.Session.Cursor(); cur >= maxVisible {
		start = cur - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(rows) {
		end = len(rows)
	}

	pointerPad := strings.Repeat(" ", runewidth.StringWidth(m.Cfg.Symbols.Pointer))
	lines := make([]string, 0, end-start)
	for _, r := range rows[start:end] {
		pointer := pointerPad
		if r.IsCursor {
			pointer = m.Styles.Pointer.Render(m.Cfg.Symbols.Pointer)
		}
		marker := " "
		if m.Session.Multiselect() && r.Enabled {
			marker = m.Styles.Marker.Render(m.Cfg.Symbols.Marker)
		}
		budget := m.innerWidth() - runewidth.StringWidth(pointerPad) - 3
		lines = append(lines, pointer+marker+" "+m.highlightName(r.Name, r.Matched, budget))
	}
	return strings.Join(lines, "\n")
}

// highlightName styles the matched rune positions of name. The name is
// truncated by display width before styling so width math never has to
// see ANSI sequences.
func (m Model) highlightName(name string, matched []int, budget int) string {
	truncated := false
	if budget > 1 && runewidth.StringWidth(name) > budget {
		name = runewidth.Truncate(name, budget, "")
		truncated = true
	}
	runes := []rune(name)

	if len(matched) == 0 || m.Styles.NoColor {
		if truncated {
			return string(runes) + "…"
		}
		return string(runes)
	}

	set := make(map[int]struct{}, len(matched))
	for _, i := range matched {
		set[i] = struct{}{}
	}
	var b strings.Builder
	for i, r := range runes {
		if _, ok := set[i]; ok {
			b.WriteString(m.Styles.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	if truncated {
		b.WriteString("…")
	}
	return b.String()
}

func (m Model) resultNames() []string {
	if m.result.Multi {
		return m.result.Names
	}
	if m.result.Name == "" {
		return nil
	}
	return []string{m.result.Name}
}
