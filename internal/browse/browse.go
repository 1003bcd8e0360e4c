// internal/browse/browse.go
package browse

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/plottimings/internal/timings"
)

// viewState represents the current screen of the browser.
type viewState int

const (
	viewSeriesList   viewState = iota // viewSeriesList lists every (compiler, variant) series.
	viewSeriesDetail                  // viewSeriesDetail shows the points of the selected series.
)

// model is the Bubble Tea model for the series browser.
type model struct {
	state viewState

	seriesList list.Model     // Bubble Tea list of series.
	viewport   viewport.Model // Bubble Tea viewport for the selected series.
	selected   *item          // The series shown in the detail view.

	width, height int // Current width and height of the terminal.
}

// item is one series in the list.
type item struct {
	series  *timings.Series
	version string
	summary timings.Summary
	label   string
}

// Title returns the legend label of the series.
func (i item) Title() string { return i.label }

// Description summarises the series in one line.
func (i item) Description() string {
	if i.summary.Best == 0 {
		return fmt.Sprintf("%d points, no positive times", i.summary.Points)
	}
	return fmt.Sprintf("%d points, best %.4gs @ %d threads, speedup %.2fx",
		i.summary.Points, i.summary.Best, i.summary.BestThreads, i.summary.Speedup)
}

// FilterValue returns the label, used for filtering in the list.
func (i item) FilterValue() string { return i.label }

// initialModel builds the list of series in table order.
func initialModel(t *timings.Table) *model {
	qualify := len(t.Compilers) > 1
	sums := timings.Summarize(t)

	var items []list.Item
	k := 0
	for _, g := range t.Compilers {
		for _, s := range g.Variants {
			items = append(items, item{
				series:  s,
				version: g.Version,
				summary: sums[k],
				label:   timings.Label(g.Name, s.Variant, qualify),
			})
			k++
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Timing series"

	return &model{
		state:      viewSeriesList,
		seriesList: l,
		viewport:   viewport.New(80, 20),
	}
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd { return nil }

// Update handles key and resize messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.seriesList.FilterState() != list.Filtering {
				return m, tea.Quit
			}
		case "esc":
			if m.state == viewSeriesDetail {
				m.state = viewSeriesList
				m.selected = nil
				return m, nil
			}
		case "enter":
			if m.state == viewSeriesList && m.seriesList.FilterState() != list.Filtering {
				if it, ok := m.seriesList.SelectedItem().(item); ok {
					m.selected = &it
					m.state = viewSeriesDetail
					m.viewport.SetContent(detail(it))
					m.viewport.GotoTop()
					return m, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.seriesList.SetSize(msg.Width-2, msg.Height-2)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
	}

	switch m.state {
	case viewSeriesList:
		m.seriesList, cmd = m.seriesList.Update(msg)
	case viewSeriesDetail:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// View renders the current screen.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	switch m.state {
	case viewSeriesDetail:
		headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
		help := lipgloss.NewStyle().Faint(true).Render(" (esc to go back, q to quit)")
		return headerStyle.Render(m.selected.label) + help + "\n\n" + m.viewport.View()
	default:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.seriesList.View())
	}
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// detail lists the points of a series in file order followed by its summary.
func detail(it item) string {
	var b strings.Builder
	s := it.series
	b.WriteString(labelStyle.Render("Compiler: ") + s.Compiler + " " + it.version + "\n")
	b.WriteString(labelStyle.Render("Variant:  ") + s.Variant + "\n\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("%8s  %12s", "threads", "time (s)")) + "\n")
	for i := range s.Threads {
		b.WriteString(fmt.Sprintf("%8d  %12s\n", s.Threads[i], strconv.FormatFloat(s.Seconds[i], 'g', 6, 64)))
	}

	sum := it.summary
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("mean %.4gs  std %.4gs  p50 %.4gs\n", sum.Mean, sum.Std, sum.P50))
	if sum.Best > 0 {
		b.WriteString(fmt.Sprintf("best %.4gs @ %d threads, speedup %.2fx\n", sum.Best, sum.BestThreads, sum.Speedup))
	}
	return b.String()
}

// Run starts the browser over t and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, t *timings.Table) error {
	if t.Empty() {
		return timings.ErrNoSeries
	}
	p := tea.NewProgram(initialModel(t), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
