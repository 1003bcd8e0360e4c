// Package report formats grouped timings for the terminal.
package report

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/plottimings/internal/timings"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Headers are the columns of the summary table.
var Headers = []string{"Compiler", "Version", "Variant", "Points", "Threads", "Best (s)", "@ Threads", "Mean (s)", "Speedup"}

// Rows turns summaries into table cells.
func Rows(sums []timings.Summary) [][]string {
	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []string{
			s.Compiler,
			s.Version,
			s.Variant,
			strconv.Itoa(s.Points),
			threadRange(s),
			seconds(s.Best),
			strconv.Itoa(s.BestThreads),
			seconds(s.Mean),
			fmt.Sprintf("%.2fx", s.Speedup),
		})
	}
	return rows
}

// Table renders summaries as a bordered lipgloss table.
func Table(sums []timings.Summary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(Headers...).
		Rows(Rows(sums)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 3:
				return numberStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

func threadRange(s timings.Summary) string {
	if s.MinThreads == s.MaxThreads {
		return strconv.Itoa(s.MinThreads)
	}
	return fmt.Sprintf("%d-%d", s.MinThreads, s.MaxThreads)
}

func seconds(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
