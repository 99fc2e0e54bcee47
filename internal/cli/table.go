package cli

import (
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ringstack/pkg/resonator"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// stackTable renders one row per resonator, outermost first. Resonators
// listed in overlapping are flagged.
func stackTable(stack resonator.Stack, overlapping []int) string {
	rows := make([][]string, 0, stack.Len())
	for i, spec := range stack.All() {
		note := ""
		if slices.Contains(overlapping, i) {
			note = "overlaps"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(spec.Size),
			strconv.Itoa(spec.FrameWidth),
			strconv.Itoa(spec.GapSize),
			spec.Side.String(),
			note,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Size", "Frame", "Gap", "Side", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return tableHeaderStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorDim)
			case col == 4:
				return base.Foreground(colorCyan)
			case col == 5:
				return base.Foreground(colorYellow)
			}
			return base.Foreground(colorWhite)
		})

	return t.Render()
}
