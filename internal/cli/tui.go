package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphbash/pkg/config"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// TargetPickerModel - Interactive target selection
// =============================================================================

// TargetPickerModel is the bubbletea model for choosing route targets.
// Non-optional targets start out chosen.
type TargetPickerModel struct {
	Targets   []config.Target
	Chosen    []bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewTargetPickerModel creates a picker over targets.
func NewTargetPickerModel(targets []config.Target) TargetPickerModel {
	chosen := make([]bool, len(targets))
	for i, t := range targets {
		chosen[i] = !t.Optional
	}
	return TargetPickerModel{
		Targets: targets,
		Chosen:  chosen,
		Height:  15,
	}
}

// Selected returns the names of the chosen targets in list order.
func (m TargetPickerModel) Selected() []string {
	var names []string
	for i, t := range m.Targets {
		if m.Chosen[i] {
			names = append(names, t.Name)
		}
	}
	return names
}

func (m TargetPickerModel) Init() tea.Cmd {
	return nil
}

func (m TargetPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Targets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Targets) > 0 {
				m.Chosen = toggled(m.Chosen, m.Cursor)
			}
		case "a":
			all := !allChosen(m.Chosen)
			chosen := make([]bool, len(m.Chosen))
			for i := range chosen {
				chosen[i] = all
			}
			m.Chosen = chosen
		case "enter":
			if len(m.Selected()) == 0 {
				return m, nil
			}
			m.Confirmed = true
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

func (m TargetPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Targets"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  a all  ⏎ route  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Targets))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := m.Targets[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Chosen[i] {
			box = "[x]"
		}
		rows = append(rows, []string{cursor + box, t.Name, strconv.Itoa(int(t.Node)), t.Description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Target", "Panel", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Targets) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.Chosen[idx] {
				base = base.Foreground(colorGreen)
			} else {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d targets chosen", len(m.Selected()), len(m.Targets))))

	return b.String()
}

// pickTargets runs the picker and returns the chosen target names, or nil
// when the user quits.
func pickTargets(targets []config.Target) ([]string, error) {
	finalModel, err := tea.NewProgram(NewTargetPickerModel(targets)).Run()
	if err != nil {
		return nil, err
	}
	fm, ok := finalModel.(TargetPickerModel)
	if !ok || !fm.Confirmed {
		return nil, nil
	}
	return fm.Selected(), nil
}

// =============================================================================
// Helpers
// =============================================================================

func toggled(chosen []bool, i int) []bool {
	out := make([]bool, len(chosen))
	copy(out, chosen)
	out[i] = !out[i]
	return out
}

func allChosen(chosen []bool) bool {
	for _, c := range chosen {
		if !c {
			return false
		}
	}
	return true
}
