package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/store"
)

type dashboardModel struct {
	records *store.Records
	userID  string
	width   int
	height  int

	workouts   []store.Workout
	meals      []store.Meal
	goals      store.Goals
	hasProfile bool
}

func newDashboardModel(r *store.Records, userID string) dashboardModel {
	return dashboardModel{records: r, userID: userID}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.refresh()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	workouts   []store.Workout
	meals      []store.Meal
	goals      store.Goals
	hasProfile bool
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		workouts, _ := d.records.LoadWorkouts(d.userID)
		meals, _ := d.records.LoadMeals(d.userID)
		goals, _ := d.records.LoadGoals(d.userID)
		hasProfile, _ := d.records.HasProfile(d.userID)
		return dashboardDataMsg{
			workouts:   workouts,
			meals:      meals,
			goals:      goals,
			hasProfile: hasProfile,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.workouts = msg.workouts
		d.meals = msg.meals
		d.goals = msg.goals
		d.hasProfile = msg.hasProfile
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) totalCalories() float64 {
	total := 0.0
	for _, m := range d.meals {
		total += m.Calories
	}
	return total
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	top := d.renderTodayPanel(contentWidth)
	workouts := d.renderWorkoutsPanel(contentWidth)
	meals := d.renderMealsPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, top, workouts, meals)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today") + "  " + mutedStyle.Render(today())

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if !d.hasProfile {
		rows = append(rows, warningStyle.Render("  No profile yet — press 5 to set one up"))
	}

	calories := d.totalCalories()
	target := float64(d.goals.DailyCalories)
	calLine := fmt.Sprintf("  Calories   %s / %s", formatCalories(calories), formatCalories(target))
	switch {
	case calories > target*1.1:
		calLine = errorStyle.Render(calLine)
	case calories > target*0.9:
		calLine = warningStyle.Render(calLine)
	default:
		calLine = successStyle.Render(calLine)
	}
	rows = append(rows, calLine)
	rows = append(rows, fmt.Sprintf("  Workouts   %d logged today", len(d.workouts)))
	rows = append(rows, fmt.Sprintf("  Meals      %d logged today", len(d.meals)))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Goals: %d workouts/week, %d kcal/day, %d min activity/day",
		d.goals.WeeklyWorkouts, d.goals.DailyCalories, d.goals.DailyActivityMinutes)))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderWorkoutsPanel(w int) string {
	title := titleStyle.Render("Today's Workouts")
	if len(d.workouts) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing logged yet. Press 2 to add a workout."),
		))
	}

	var rows []string
	rows = append(rows, title)
	for _, wk := range d.workouts {
		detail := workoutDetail(wk)
		rows = append(rows, fmt.Sprintf("  %s %-24s %s",
			successStyle.Render("✓"), wk.Name, mutedStyle.Render(detail)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderMealsPanel(w int) string {
	title := titleStyle.Render("Today's Meals")
	if len(d.meals) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing logged yet. Press 3 to add a meal."),
		))
	}

	var rows []string
	rows = append(rows, title)
	for _, m := range d.meals {
		rows = append(rows, fmt.Sprintf("  %-10s %-24s %s",
			highlightStyle.Render(string(m.Type)), m.Name, mutedStyle.Render(formatCalories(m.Calories))))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func workoutDetail(w store.Workout) string {
	var parts []string
	if w.Sets != "" && w.Reps != "" {
		parts = append(parts, fmt.Sprintf("%s×%s", w.Sets, w.Reps))
	}
	if w.Weight != "" {
		parts = append(parts, w.Weight+"kg")
	}
	if w.Duration != "" {
		parts = append(parts, w.Duration+"min")
	}
	if w.Category != "" {
		parts = append(parts, w.Category)
	}
	return strings.Join(parts, "  ")
}
