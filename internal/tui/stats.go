package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/edvall/taskdeck/internal/store"
)

const unfiledLabel = "Unfiled"

// statsModel renders a per-folder breakdown of the task collection as a
// bar chart. It is rebuilt from the store on every refresh, so cross-tab
// snapshots show up without extra plumbing.
type statsModel struct {
	store  *store.Store
	width  int
	height int

	chart barchart.Model
	rows  []statsRow
}

type statsRow struct {
	name  string
	color string
	count int
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// refresh recomputes the folder breakdown and redraws the chart. Tasks whose
// folderId points at a deleted folder count toward the unfiled bucket.
func (s *statsModel) refresh() {
	tasks := s.store.Tasks.All()
	folders := s.store.Folders.All()

	known := folderIndex(folders)
	counts := make(map[string]int)
	for _, t := range tasks {
		id := t.FolderID
		if _, ok := known[id]; id == "" || !ok {
			id = ""
		}
		counts[id]++
	}

	s.rows = s.rows[:0]
	for _, f := range folders {
		if f.ID == store.DefaultFolderID {
			continue
		}
		s.rows = append(s.rows, statsRow{name: f.Name, color: f.Color, count: counts[f.ID]})
	}
	if counts[""] > 0 {
		s.rows = append(s.rows, statsRow{name: unfiledLabel, color: string(colorSubtle), count: counts[""]})
	}

	s.buildChart()
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, row := range s.rows {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(row.color))
		bars = append(bars, barchart.BarData{
			Label: truncate(row.name, 10),
			Values: []barchart.BarValue{
				{Name: row.name, Value: float64(row.count), Style: style},
			},
		})
	}
	if len(bars) == 0 {
		bars = append(bars, barchart.BarData{
			Label:  "none",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		mutedStyle.Render(fmt.Sprintf("%d tasks, %d folders", s.store.Tasks.Len(), len(s.store.Folders.All()))),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", s.chart.View(), "", s.renderTable(w), "", s.renderLegend(),
		),
	)
}

func (s statsModel) renderTable(w int) string {
	if len(s.rows) == 0 {
		return mutedStyle.Render("  Nothing to chart yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %8s", "Folder", "Tasks")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 30))))
	for _, row := range s.rows {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(row.color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-18s %8d", dot, truncate(row.name, 18), row.count))
	}
	return strings.Join(rows, "\n")
}

func (s statsModel) renderLegend() string {
	var items []string
	for _, row := range s.rows {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(row.color)).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, row.name))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}
