package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wricardo/supergroups/game/engine"
)

const (
	microCellWidth = 14
	superCellWidth = 30
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle  = lipgloss.NewStyle().Faint(true)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1).MarginRight(1)
	tileStyle    = cellStyle.Border(lipgloss.NormalBorder())
	tokenStyle   = cellStyle.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39"))
	pickedStyle  = cellStyle.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("205")).Bold(true)
	superStyle   = cellStyle.Border(lipgloss.DoubleBorder()).Bold(true).Foreground(lipgloss.Color("0"))
	messageStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("220"))
	wonStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// Render draws the board with 1-based slot numbers that Play accepts as
// toggle targets.
func Render(state *engine.GameState) string {
	if state == nil {
		return ""
	}

	columns := state.Columns
	if columns <= 0 {
		columns = engine.MicroColumns
	}
	width := microCellWidth
	if state.Phase == engine.PhaseSuper {
		width = superCellWidth
	}

	var rows []string
	var row []string
	for i, item := range state.Items {
		row = append(row, renderItem(i+1, item, width))
		if len(row) == columns || i == len(state.Items)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SUPER GROUPS"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(statusLine(state)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")
	if state.Won {
		b.WriteString(wonStyle.Render("Solved! Every super-group found."))
		b.WriteString("\n")
	} else if state.Message != "" {
		b.WriteString(messageStyle.Render(state.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func statusLine(state *engine.GameState) string {
	return fmt.Sprintf("phase %s · categories %d/16 · super-groups %d/4 · selected %d/%d · wrong guesses %d",
		state.Phase,
		len(state.SolvedCategories),
		len(state.SolvedSuperGroups),
		len(state.Selection), engine.SelectionSize,
		state.IncorrectGuesses)
}

func renderItem(slot int, item engine.Item, width int) string {
	label := fmt.Sprintf("%d %s", slot, truncate(item.Label, width-6))

	switch {
	case item.Kind == engine.KindSuperTile:
		color := item.Color
		if color == "" {
			color = "#888"
		}
		return superStyle.Width(width).Background(lipgloss.Color(color)).Render(label)
	case item.State == engine.StateSelected:
		return pickedStyle.Width(width).Render(withWords(label, item, width))
	case item.Kind == engine.KindToken:
		return tokenStyle.Width(width).Render(withWords(label, item, width))
	default:
		return tileStyle.Width(width).Render(label)
	}
}

func withWords(label string, item engine.Item, width int) string {
	if item.Kind != engine.KindToken {
		return label
	}
	return label + "\n" + truncate(strings.Join(item.Words, ", "), width-3)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
