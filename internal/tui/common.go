package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewWorkouts
	viewMeals
	viewHistory
	viewProfile
	viewCoach
)

var viewNames = []string{"Dashboard", "Workouts", "Meals", "History", "Profile", "Coach"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type rolloverMsg struct {
	happened bool
	err      error
}

type exportDoneMsg struct {
	path string
}

type tickMsg time.Time

// --- Helpers ---

func today() string {
	return time.Now().Format("2006-01-02")
}

func newID() int64 {
	return time.Now().UnixMilli()
}

func formatCalories(v float64) string {
	return fmt.Sprintf("%.0f kcal", v)
}

func clampCursor(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func statusError(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}
