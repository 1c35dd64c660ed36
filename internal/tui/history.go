package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/store"
)

const historyWindowDays = 7

type historyModel struct {
	records *store.Records
	userID  string
	width   int
	height  int

	days   []store.DayRecords
	offset int // 7-day blocks back from the latest archived window

	chart barchart.Model
}

func newHistoryModel(r *store.Records, userID string) historyModel {
	return historyModel{
		records: r,
		userID:  userID,
		chart:   barchart.New(60, 12),
	}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type historyDataMsg struct {
	days []store.DayRecords
}

// dateRange is the 7-day window ending yesterday (today's records are still
// live, not archived), shifted back by offset windows.
func (h historyModel) dateRange() (string, string) {
	end := time.Now().AddDate(0, 0, -1-historyWindowDays*h.offset)
	start := end.AddDate(0, 0, -(historyWindowDays - 1))
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		start, end := h.dateRange()
		days, _ := h.records.History(h.userID, start, end)
		return historyDataMsg{days: days}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.days = msg.days
		h.buildChart()
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			h.offset++
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.offset > 0 {
				h.offset--
			}
			return h, h.refresh()
		}
	}
	return h, nil
}

func (h *historyModel) buildChart() {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if h.height > 30 {
		chartHeight = 16
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, day := range h.days {
		d, _ := time.Parse("2006-01-02", day.Date)
		label := d.Format("Mon 02")

		calories := 0.0
		for _, m := range day.Meals {
			calories += m.Calories
		}

		value := barchart.BarValue{
			Name:  "kcal",
			Value: calories,
			Style: lipgloss.NewStyle().Foreground(colorPrimary),
		}
		if calories == 0 {
			value = barchart.BarValue{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{value},
		})
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	start, end := h.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", start, end))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ", dateLabel,
	)

	chartView := h.chart.View()
	tableView := h.renderDayTable(w)
	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (h historyModel) renderDayTable(w int) string {
	if len(h.days) == 0 {
		return mutedStyle.Render("  No data for this period")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %10s %10s %10s", "Date", "Workouts", "Meals", "Calories"))
	rows = append(rows, headerRow)
	width := min(w-6, 46)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", width)))

	for _, day := range h.days {
		calories := 0.0
		for _, m := range day.Meals {
			calories += m.Calories
		}
		line := fmt.Sprintf("  %-12s %10d %10d %10.0f", day.Date, len(day.Workouts), len(day.Meals), calories)
		if len(day.Workouts) == 0 && len(day.Meals) == 0 {
			line = mutedStyle.Render(line)
		}
		rows = append(rows, line)
	}

	return strings.Join(rows, "\n")
}
