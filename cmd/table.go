package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	tableHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCell   = lipgloss.NewStyle().Padding(0, 1)
	tableBorder = lipgloss.NewStyle().Faint(true)
)

// printTable writes rows as a bordered table. Columns listed in right are
// right-aligned.
func printTable(headers []string, rows [][]string, right ...int) {
	align := make(map[int]bool, len(right))
	for _, c := range right {
		align[c] = true
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := tableCell
			if row == table.HeaderRow {
				s = tableHeader
			}
			if align[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	fmt.Println(t.Render())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
