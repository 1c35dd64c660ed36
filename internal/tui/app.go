package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/ai"
	"github.com/sadopc/fitlog/internal/export"
	"github.com/sadopc/fitlog/internal/store"
)

const exportRangeDays = 30

// App is the root Bubble Tea model.
type App struct {
	records  *store.Records
	rollover *store.Rollover
	userID   string
	width    int
	height   int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	workouts  workoutsModel
	meals     mealsModel
	history   historyModel
	profile   profileModel
	coach     coachModel

	help   help.Model
	status string
}

func NewApp(records *store.Records, rollover *store.Rollover, coach *ai.Coach, userID string) App {
	h := help.New()
	h.ShowAll = false

	return App{
		records:    records,
		rollover:   rollover,
		userID:     userID,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(records, userID),
		workouts:   newWorkoutsModel(records, userID),
		meals:      newMealsModel(records, userID),
		history:    newHistoryModel(records, userID),
		profile:    newProfileModel(records, userID),
		coach:      newCoachModel(records, coach, userID),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.checkRollover(),
		a.dashboard.Init(),
		tickCmd(),
	)
}

// tickCmd fires once a minute so a session left open over midnight still
// rolls its records over.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) checkRollover() tea.Cmd {
	return func() tea.Msg {
		happened, err := a.rollover.CheckAndReset(a.userID)
		return rolloverMsg{happened: happened, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.workouts.setSize(a.width, contentHeight)
		a.meals.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		a.coach.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewWorkouts
			return a, a.workouts.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewMeals
			return a, a.meals.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewHistory
			return a, a.history.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewProfile
			return a, a.profile.refresh()
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewCoach
			return a, a.coach.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 6
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		return a, tea.Batch(tickCmd(), a.checkRollover())

	case rolloverMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("Rollover error: %v", msg.err)
			return a, nil
		}
		if msg.happened {
			a.status = "New day — yesterday's records were archived"
			return a, tea.Batch(a.dashboard.refresh(), a.refreshCurrentView())
		}
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewWorkouts:
		a.workouts, cmd = a.workouts.update(msg)
	case viewMeals:
		a.meals, cmd = a.meals.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	case viewCoach:
		a.coach, cmd = a.coach.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewWorkouts:
		return a.workouts.formActive
	case viewMeals:
		return a.meals.formActive
	case viewProfile:
		return a.profile.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.refresh()
	case viewWorkouts:
		return a.workouts.refresh()
	case viewMeals:
		return a.meals.refresh()
	case viewHistory:
		return a.history.refresh()
	case viewProfile:
		return a.profile.refresh()
	case viewCoach:
		return a.coach.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewWorkouts:
		content = a.workouts.view()
	case viewMeals:
		content = a.meals.view()
	case viewHistory:
		content = a.history.view()
	case viewProfile:
		content = a.profile.view()
	case viewCoach:
		content = a.coach.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("fitlog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	right := status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		end := time.Now()
		start := end.AddDate(0, 0, -(exportRangeDays - 1))
		days, err := a.records.History(a.userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := end.Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("fitlog-export-%s.csv", dateStr))
			if err := export.ToCSV(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("fitlog-export-%s.json", dateStr))
			if err := export.ToJSON(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
