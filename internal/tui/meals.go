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

type mealsModel struct {
	records *store.Records
	userID  string
	width   int
	height  int

	meals  []store.Meal
	cursor int

	formActive bool
	form       *huh.Form

	formName        *string
	formType        *string
	formCalories    *string
	formProtein     *string
	formCarbs       *string
	formFats        *string
	formIngredients *string
}

func newMealsModel(r *store.Records, userID string) mealsModel {
	name, mealType := "", string(store.MealBreakfast)
	cal, protein, carbs, fats, ingredients := "", "", "", "", ""
	return mealsModel{
		records:         r,
		userID:          userID,
		formName:        &name,
		formType:        &mealType,
		formCalories:    &cal,
		formProtein:     &protein,
		formCarbs:       &carbs,
		formFats:        &fats,
		formIngredients: &ingredients,
	}
}

func (m *mealsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type mealsDataMsg struct {
	meals []store.Meal
}

func (m mealsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		meals, _ := m.records.LoadMeals(m.userID)
		return mealsDataMsg{meals: meals}
	}
}

func (m mealsModel) update(msg tea.Msg) (mealsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case mealsDataMsg:
		m.meals = msg.meals
		m.cursor = clampCursor(m.cursor, len(m.meals))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.meals)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm()
		case key.Matches(msg, keys.Delete):
			if len(m.meals) > 0 {
				id := m.meals[m.cursor].ID
				if err := m.records.DeleteMeal(m.userID, id); err != nil {
					return m, statusError(err)
				}
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m mealsModel) showForm() (mealsModel, tea.Cmd) {
	*m.formName = ""
	*m.formType = string(store.MealBreakfast)
	*m.formCalories = ""
	*m.formProtein = ""
	*m.formCarbs = ""
	*m.formFats = ""
	*m.formIngredients = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Meal").Value(m.formName),
			huh.NewSelect[string]().Title("Type").
				Options(
					huh.NewOption("Breakfast", string(store.MealBreakfast)),
					huh.NewOption("Lunch", string(store.MealLunch)),
					huh.NewOption("Dinner", string(store.MealDinner)),
					huh.NewOption("Snack", string(store.MealSnack)),
				).Value(m.formType),
			huh.NewInput().Title("Calories").Value(m.formCalories),
			huh.NewInput().Title("Protein (g)").Value(m.formProtein),
			huh.NewInput().Title("Carbs (g)").Value(m.formCarbs),
			huh.NewInput().Title("Fats (g)").Value(m.formFats),
			huh.NewInput().Title("Ingredients").Value(m.formIngredients),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m mealsModel) updateForm(msg tea.Msg) (mealsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if *m.formName != "" {
			meal := store.Meal{
				ID:          newID(),
				Name:        *m.formName,
				Type:        store.MealType(*m.formType),
				Calories:    parseMacro(*m.formCalories),
				Protein:     parseMacro(*m.formProtein),
				Carbs:       parseMacro(*m.formCarbs),
				Fats:        parseMacro(*m.formFats),
				Ingredients: *m.formIngredients,
				Date:        today(),
			}
			if err := m.records.AppendMeal(m.userID, meal); err != nil {
				return m, statusError(err)
			}
		}
		return m, m.refresh()
	}

	return m, cmd
}

func parseMacro(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func (m mealsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Log Meal")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Today's Meals")

	if len(m.meals) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No meals today. Press n to log one."),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	header := mutedStyle.Render(fmt.Sprintf("  %-10s %-24s %10s %8s %8s %8s", "Type", "Meal", "Calories", "Protein", "Carbs", "Fats"))
	rows = append(rows, header)

	total := 0.0
	for i, meal := range m.meals {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		total += meal.Calories
		rows = append(rows, style.Render(fmt.Sprintf("%s%-10s %-24s %10.0f %7.0fg %7.0fg %7.0fg",
			cursor, meal.Type, meal.Name, meal.Calories, meal.Protein, meal.Carbs, meal.Fats)))
	}

	rows = append(rows, "")
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  Total: %s", formatCalories(total))))
	rows = append(rows, mutedStyle.Render("  n: log meal  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
