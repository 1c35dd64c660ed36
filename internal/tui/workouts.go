package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/store"
)

var workoutCategories = []string{"strength", "cardio", "flexibility", "sports", "other"}

type workoutsModel struct {
	records *store.Records
	userID  string
	width   int
	height  int

	workouts []store.Workout
	cursor   int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName     *string
	formCategory *string
	formSets     *string
	formReps     *string
	formWeight   *string
	formDuration *string
	formMuscles  *string
}

func newWorkoutsModel(r *store.Records, userID string) workoutsModel {
	name, cat := "", workoutCategories[0]
	sets, reps, weight, duration, muscles := "", "", "", "", ""
	return workoutsModel{
		records:      r,
		userID:       userID,
		formName:     &name,
		formCategory: &cat,
		formSets:     &sets,
		formReps:     &reps,
		formWeight:   &weight,
		formDuration: &duration,
		formMuscles:  &muscles,
	}
}

func (w *workoutsModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

type workoutsDataMsg struct {
	workouts []store.Workout
}

func (w workoutsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		workouts, _ := w.records.LoadWorkouts(w.userID)
		return workoutsDataMsg{workouts: workouts}
	}
}

func (w workoutsModel) update(msg tea.Msg) (workoutsModel, tea.Cmd) {
	if w.formActive && w.form != nil {
		return w.updateForm(msg)
	}

	switch msg := msg.(type) {
	case workoutsDataMsg:
		w.workouts = msg.workouts
		w.cursor = clampCursor(w.cursor, len(w.workouts))
		return w, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if w.cursor > 0 {
				w.cursor--
			}
		case key.Matches(msg, keys.Down):
			if w.cursor < len(w.workouts)-1 {
				w.cursor++
			}
		case key.Matches(msg, keys.New):
			return w.showForm()
		case key.Matches(msg, keys.Delete):
			if len(w.workouts) > 0 {
				id := w.workouts[w.cursor].ID
				if err := w.records.DeleteWorkout(w.userID, id); err != nil {
					return w, statusError(err)
				}
				return w, w.refresh()
			}
		}
	}
	return w, nil
}

func (w workoutsModel) showForm() (workoutsModel, tea.Cmd) {
	*w.formName = ""
	*w.formCategory = workoutCategories[0]
	*w.formSets = ""
	*w.formReps = ""
	*w.formWeight = ""
	*w.formDuration = ""
	*w.formMuscles = ""

	catOptions := make([]huh.Option[string], len(workoutCategories))
	for i, c := range workoutCategories {
		catOptions[i] = huh.NewOption(c, c)
	}

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Exercise").Value(w.formName),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(w.formCategory),
			huh.NewInput().Title("Sets").Value(w.formSets),
			huh.NewInput().Title("Reps").Value(w.formReps),
			huh.NewInput().Title("Weight (kg)").Value(w.formWeight),
			huh.NewInput().Title("Duration (min)").Value(w.formDuration),
			huh.NewInput().Title("Muscle groups (comma separated)").Value(w.formMuscles),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutsModel) updateForm(msg tea.Msg) (workoutsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			w.formActive = false
			w.form = nil
			return w, nil
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.formActive = false
		if *w.formName != "" {
			workout := store.Workout{
				ID:           newID(),
				Name:         *w.formName,
				Category:     *w.formCategory,
				Sets:         *w.formSets,
				Reps:         *w.formReps,
				Weight:       *w.formWeight,
				Duration:     *w.formDuration,
				MuscleGroups: splitList(*w.formMuscles),
				Date:         today(),
			}
			if err := w.records.AppendWorkout(w.userID, workout); err != nil {
				return w, statusError(err)
			}
		}
		return w, w.refresh()
	}

	return w, cmd
}

// splitList turns "chest, triceps" into {"chest", "triceps"}.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (w workoutsModel) view() string {
	width := w.width - 4

	if w.formActive && w.form != nil {
		title := titleStyle.Render("Log Workout")
		return panelStyle.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", w.form.View()),
		)
	}

	title := titleStyle.Render("Today's Workouts")

	if len(w.workouts) == 0 {
		return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No workouts today. Press n to log one."),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	header := mutedStyle.Render(fmt.Sprintf("  %-24s %-12s %-10s %-10s", "Exercise", "Category", "Sets×Reps", "More"))
	rows = append(rows, header)

	for i, wk := range w.workouts {
		cursor := "  "
		style := normalItemStyle
		if i == w.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		setsReps := ""
		if wk.Sets != "" || wk.Reps != "" {
			setsReps = fmt.Sprintf("%s×%s", wk.Sets, wk.Reps)
		}
		more := ""
		if wk.Weight != "" {
			more = wk.Weight + "kg"
		} else if wk.Duration != "" {
			more = wk.Duration + "min"
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %-12s %-10s %-10s", cursor, wk.Name, wk.Category, setsReps, more)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: log workout  d: delete"))

	return panelStyle.Width(width).Render(strings.Join(rows, "\n"))
}
