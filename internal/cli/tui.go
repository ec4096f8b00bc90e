package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pyscan/pkg/analyze"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listExcludedStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// ExcludeModel - Interactive exclude-list selection
// =============================================================================

// ExcludeModel is the bubbletea model for picking excluded packages from
// the frequency table.
type ExcludeModel struct {
	Freqs    []analyze.Frequency
	Excluded map[string]bool
	Cursor   int
	Height   int
	Offset   int
	Aborted  bool
}

// NewExcludeModel creates an exclude picker over the given frequencies.
// Packages in preselected start out excluded.
func NewExcludeModel(freqs []analyze.Frequency, preselected []string) ExcludeModel {
	excluded := make(map[string]bool, len(preselected))
	for _, name := range preselected {
		excluded[name] = true
	}
	return ExcludeModel{
		Freqs:    freqs,
		Excluded: excluded,
		Height:   15,
	}
}

func (m ExcludeModel) Init() tea.Cmd {
	return nil
}

func (m ExcludeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Freqs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			name := m.Freqs[m.Cursor].Name
			if m.Excluded[name] {
				delete(m.Excluded, name)
			} else {
				m.Excluded[name] = true
			}
		case "enter":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ExcludeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Exclude Packages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  ⏎ confirm  q abort"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Freqs) {
		end = len(m.Freqs)
	}

	for i := m.Offset; i < end; i++ {
		f := m.Freqs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = listSelectedStyle.Render("> ")
		}

		mark := "[ ]"
		nameStyle := listNormalStyle
		if m.Excluded[f.Name] {
			mark = "[x]"
			nameStyle = listExcludedStyle
		}

		line := fmt.Sprintf("%s %s %-30s %4d", cursor, mark, f.Name, f.Count)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(nameStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.Freqs) > end {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("\n… %d more", len(m.Freqs)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

// Selected returns the excluded package names.
func (m ExcludeModel) Selected() []string {
	out := make([]string, 0, len(m.Excluded))
	for _, f := range m.Freqs {
		if m.Excluded[f.Name] {
			out = append(out, f.Name)
		}
	}
	return out
}

// pickExcludes runs the exclude picker and returns the chosen list.
// Aborting keeps the preselected excludes.
func pickExcludes(freqs []analyze.Frequency, preselected []string) ([]string, error) {
	model := NewExcludeModel(freqs, preselected)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("run exclude picker: %w", err)
	}

	result, ok := final.(ExcludeModel)
	if !ok || result.Aborted {
		return preselected, nil
	}
	return result.Selected(), nil
}
