package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TermDelegate renders glossary terms in the directory list.
type TermDelegate struct {
	Theme Theme
}

func (d TermDelegate) Height() int {
	return 1
}

func (d TermDelegate) Spacing() int {
	return 0
}

func (d TermDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render draws one row: [sel] [class dot] [term...] [tags] [degree]
func (d TermDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(TermItem)
	if !ok {
		return
	}

	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	// Reduce width by 1 to prevent terminal wrapping on the exact edge
	width = width - 1

	isSelected := index == m.Index()

	rightWidth := 0
	var rightParts []string
	if width > 40 {
		deg := fmt.Sprintf("%3d↔", i.Degree)
		rightParts = append(rightParts, t.MutedText.Render(deg))
		rightWidth += lipgloss.Width(deg) + 1
	}
	if width > 70 {
		if tags := i.Entry.Tags(); len(tags) > 0 {
			tagStr := truncateRunesHelper(strings.Join(tags, ", "), 24, "…")
			rightParts = append([]string{t.Tag.Render(tagStr)}, rightParts...)
			rightWidth += lipgloss.Width(tagStr) + 1
		}
	}

	// selector(2) + dot(1) + space(1)
	leftFixedWidth := 4
	termWidth := width - leftFixedWidth - rightWidth
	if termWidth < 5 {
		termWidth = 5
	}
	term := padRight(truncate(i.Entry.Term(), termWidth), termWidth)

	var row strings.Builder
	if isSelected {
		row.WriteString(t.PrimaryBold.Render("▸ "))
	} else {
		row.WriteString("  ")
	}
	row.WriteString(t.ClassStyle(i.Entry.Class()).Render("■"))
	row.WriteString(" ")

	termStyle := t.Base
	if isSelected {
		termStyle = t.PrimaryBold
	}
	row.WriteString(termStyle.Render(term))
	for _, p := range rightParts {
		row.WriteString(" ")
		row.WriteString(p)
	}

	fmt.Fprint(w, row.String())
}
