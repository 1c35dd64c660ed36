package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/store"
)

type profileModel struct {
	records *store.Records
	userID  string
	width   int
	height  int

	profile    store.Profile
	hasProfile bool
	goals      store.Goals
	progress   []store.ProgressEntry

	formActive bool
	form       *huh.Form
	formType   string // "profile", "goals", "progress"

	// Profile form fields
	formAge      *string
	formGender   *string
	formHeight   *string
	formWeight   *string
	formGoal     *string
	formActivity *string

	// Goals form fields
	formWeeklyWorkouts *string
	formDailyCalories  *string
	formDailyActivity  *string
	formWeightGoal     *string

	// Progress form fields
	formProgWeight *string
	formBodyFat    *string
	formNotes      *string
}

func newProfileModel(r *store.Records, userID string) profileModel {
	age, gender, height, weight := "", "male", "", ""
	goal, activity := "maintenance", "moderately_active"
	ww, dc, da, wg := "", "", "", ""
	pw, bf, notes := "", "", ""
	return profileModel{
		records:            r,
		userID:             userID,
		formAge:            &age,
		formGender:         &gender,
		formHeight:         &height,
		formWeight:         &weight,
		formGoal:           &goal,
		formActivity:       &activity,
		formWeeklyWorkouts: &ww,
		formDailyCalories:  &dc,
		formDailyActivity:  &da,
		formWeightGoal:     &wg,
		formProgWeight:     &pw,
		formBodyFat:        &bf,
		formNotes:          &notes,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type profileDataMsg struct {
	profile    store.Profile
	hasProfile bool
	goals      store.Goals
	progress   []store.ProgressEntry
}

func (p profileModel) refresh() tea.Cmd {
	return func() tea.Msg {
		profile, found, _ := p.records.LoadProfile(p.userID)
		goals, _ := p.records.LoadGoals(p.userID)
		progress, _ := p.records.LoadProgress(p.userID)
		return profileDataMsg{
			profile:    profile,
			hasProfile: found,
			goals:      goals,
			progress:   progress,
		}
	}
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case profileDataMsg:
		p.profile = msg.profile
		p.hasProfile = msg.hasProfile
		p.goals = msg.goals
		p.progress = msg.progress
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "g" {
			return p.showGoalsForm()
		}
		switch {
		case key.Matches(msg, keys.Enter):
			return p.showProfileForm()
		case key.Matches(msg, keys.New):
			return p.showProgressForm()
		}
	}
	return p, nil
}

func (p profileModel) showProfileForm() (profileModel, tea.Cmd) {
	*p.formAge = formatInt(p.profile.Age)
	*p.formGender = orDefault(p.profile.Gender, "male")
	*p.formHeight = formatFloat(p.profile.Height)
	*p.formWeight = formatFloat(p.profile.Weight)
	*p.formGoal = orDefault(p.profile.FitnessGoal, "maintenance")
	*p.formActivity = orDefault(p.profile.ActivityLevel, "moderately_active")
	p.formType = "profile"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Age").Value(p.formAge),
			huh.NewSelect[string]().Title("Gender").
				Options(
					huh.NewOption("Male", "male"),
					huh.NewOption("Female", "female"),
					huh.NewOption("Other", "other"),
				).Value(p.formGender),
			huh.NewInput().Title("Height (cm)").Value(p.formHeight),
			huh.NewInput().Title("Weight (kg)").Value(p.formWeight),
			huh.NewSelect[string]().Title("Fitness goal").
				Options(
					huh.NewOption("Weight loss", "weight_loss"),
					huh.NewOption("Muscle gain", "muscle_gain"),
					huh.NewOption("Maintenance", "maintenance"),
				).Value(p.formGoal),
			huh.NewSelect[string]().Title("Activity level").
				Options(
					huh.NewOption("Sedentary", "sedentary"),
					huh.NewOption("Moderately active", "moderately_active"),
					huh.NewOption("Very active", "very_active"),
				).Value(p.formActivity),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) showGoalsForm() (profileModel, tea.Cmd) {
	*p.formWeeklyWorkouts = formatInt(p.goals.WeeklyWorkouts)
	*p.formDailyCalories = formatInt(p.goals.DailyCalories)
	*p.formDailyActivity = formatInt(p.goals.DailyActivityMinutes)
	*p.formWeightGoal = formatFloat(p.goals.WeightGoal)
	p.formType = "goals"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Workouts per week").Value(p.formWeeklyWorkouts),
			huh.NewInput().Title("Daily calories").Value(p.formDailyCalories),
			huh.NewInput().Title("Daily activity (min)").Value(p.formDailyActivity),
			huh.NewInput().Title("Target weight (kg)").Value(p.formWeightGoal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) showProgressForm() (profileModel, tea.Cmd) {
	*p.formProgWeight = ""
	*p.formBodyFat = ""
	*p.formNotes = ""
	p.formType = "progress"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Weight (kg)").Value(p.formProgWeight),
			huh.NewInput().Title("Body fat (%)").Value(p.formBodyFat),
			huh.NewInput().Title("Notes").Value(p.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		if err := p.saveForm(); err != nil {
			return p, statusError(err)
		}
		return p, p.refresh()
	}

	return p, cmd
}

func (p profileModel) saveForm() error {
	switch p.formType {
	case "profile":
		profile := store.Profile{
			Age:           parseIntField(*p.formAge),
			Gender:        *p.formGender,
			Height:        parseMacro(*p.formHeight),
			Weight:        parseMacro(*p.formWeight),
			FitnessGoal:   *p.formGoal,
			ActivityLevel: *p.formActivity,
		}
		if err := p.records.SaveProfile(p.userID, profile); err != nil {
			return err
		}
		return p.records.SetHasProfile(p.userID, true)

	case "goals":
		goals := store.Goals{
			WeeklyWorkouts:       parseIntField(*p.formWeeklyWorkouts),
			DailyCalories:        parseIntField(*p.formDailyCalories),
			DailyActivityMinutes: parseIntField(*p.formDailyActivity),
			WeightGoal:           parseMacro(*p.formWeightGoal),
		}
		return p.records.SaveGoals(p.userID, goals)

	case "progress":
		if *p.formProgWeight == "" {
			return nil
		}
		entry := store.ProgressEntry{
			ID:      newID(),
			Weight:  parseMacro(*p.formProgWeight),
			BodyFat: *p.formBodyFat,
			Notes:   *p.formNotes,
			Date:    today(),
		}
		return p.records.AppendProgress(p.userID, entry)
	}
	return nil
}

func (p profileModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		titles := map[string]string{
			"profile":  "Edit Profile",
			"goals":    "Edit Goals",
			"progress": "Log Measurement",
		}
		title := titleStyle.Render(titles[p.formType])
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	profilePanel := p.renderProfilePanel(w)
	goalsPanel := p.renderGoalsPanel(w)
	progressPanel := p.renderProgressPanel(w)

	return lipgloss.JoinVertical(lipgloss.Left, profilePanel, goalsPanel, progressPanel)
}

func (p profileModel) renderProfilePanel(w int) string {
	title := titleStyle.Render("Profile")

	if !p.hasProfile {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No profile yet. Press enter to create one."),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Age", highlightStyle.Render(formatInt(p.profile.Age))))
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Gender", highlightStyle.Render(p.profile.Gender)))
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Height", highlightStyle.Render(formatFloat(p.profile.Height)+" cm")))
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Weight", highlightStyle.Render(formatFloat(p.profile.Weight)+" kg")))
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Fitness goal", highlightStyle.Render(p.profile.FitnessGoal)))
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Activity level", highlightStyle.Render(p.profile.ActivityLevel)))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit profile"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p profileModel) renderGoalsPanel(w int) string {
	title := titleStyle.Render("Goals")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %-22s %s", "Workouts per week", highlightStyle.Render(formatInt(p.goals.WeeklyWorkouts))))
	rows = append(rows, fmt.Sprintf("  %-22s %s", "Daily calories", highlightStyle.Render(formatInt(p.goals.DailyCalories))))
	rows = append(rows, fmt.Sprintf("  %-22s %s", "Daily activity (min)", highlightStyle.Render(formatInt(p.goals.DailyActivityMinutes))))
	rows = append(rows, fmt.Sprintf("  %-22s %s", "Target weight (kg)", highlightStyle.Render(formatFloat(p.goals.WeightGoal))))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  g: edit goals"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p profileModel) renderProgressPanel(w int) string {
	title := titleStyle.Render("Measurements")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if len(p.progress) == 0 {
		rows = append(rows, mutedStyle.Render("  No measurements yet. Press n to log one."))
	} else {
		// Newest last; show the most recent handful
		start := 0
		if len(p.progress) > 5 {
			start = len(p.progress) - 5
		}
		for _, e := range p.progress[start:] {
			line := fmt.Sprintf("  %-12s %6.1f kg", e.Date, e.Weight)
			if e.BodyFat != "" {
				line += mutedStyle.Render("  " + e.BodyFat + "% bf")
			}
			if e.Notes != "" {
				line += mutedStyle.Render("  " + e.Notes)
			}
			rows = append(rows, line)
		}
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  n: log measurement"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func parseIntField(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
