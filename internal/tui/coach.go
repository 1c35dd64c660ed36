package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/ai"
	"github.com/sadopc/fitlog/internal/store"
)

var equipmentChoices = []string{"bodyweight", "dumbbells", "gym"}

type coachModel struct {
	records *store.Records
	coach   *ai.Coach
	userID  string
	width   int
	height  int

	profile store.Profile
	goals   store.Goals
	meals   []store.Meal

	equipment int // index into equipmentChoices
	loading   bool

	workoutPlan *ai.WorkoutPlan
	meal        *ai.MealSuggestion
	insights    []string
}

func newCoachModel(r *store.Records, coach *ai.Coach, userID string) coachModel {
	return coachModel{records: r, coach: coach, userID: userID}
}

func (c *coachModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type coachDataMsg struct {
	profile store.Profile
	goals   store.Goals
	meals   []store.Meal
}

type workoutPlanMsg struct {
	plan ai.WorkoutPlan
}

type mealSuggestionMsg struct {
	meal ai.MealSuggestion
}

type insightsMsg struct {
	insights []string
}

func (c coachModel) refresh() tea.Cmd {
	return func() tea.Msg {
		profile, _, _ := c.records.LoadProfile(c.userID)
		goals, _ := c.records.LoadGoals(c.userID)
		meals, _ := c.records.LoadMeals(c.userID)
		return coachDataMsg{profile: profile, goals: goals, meals: meals}
	}
}

func (c coachModel) suggestWorkout() tea.Cmd {
	profile := c.profile
	prefs := ai.WorkoutPrefs{Equipment: equipmentChoices[c.equipment]}
	coach := c.coach
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return workoutPlanMsg{plan: coach.SuggestWorkout(ctx, profile, prefs)}
	}
}

// nextMealType picks the first daily slot not yet logged today.
func nextMealType(meals []store.Meal) store.MealType {
	logged := make(map[store.MealType]bool)
	for _, m := range meals {
		logged[m.Type] = true
	}
	for _, t := range []store.MealType{store.MealBreakfast, store.MealLunch, store.MealDinner} {
		if !logged[t] {
			return t
		}
	}
	return store.MealSnack
}

func (c coachModel) suggestMeal() tea.Cmd {
	profile, goals, coach := c.profile, c.goals, c.coach
	mealType := nextMealType(c.meals)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return mealSuggestionMsg{meal: coach.SuggestMeal(ctx, profile, goals, mealType)}
	}
}

func (c coachModel) loadInsights() tea.Cmd {
	profile, goals, coach := c.profile, c.goals, c.coach
	userID, records := c.userID, c.records
	return func() tea.Msg {
		workouts, _ := records.LoadWorkouts(userID)
		meals, _ := records.LoadMeals(userID)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return insightsMsg{insights: coach.Insights(ctx, profile, goals, workouts, meals)}
	}
}

func (c coachModel) update(msg tea.Msg) (coachModel, tea.Cmd) {
	switch msg := msg.(type) {
	case coachDataMsg:
		c.profile = msg.profile
		c.goals = msg.goals
		c.meals = msg.meals
		return c, nil

	case workoutPlanMsg:
		c.loading = false
		plan := msg.plan
		c.workoutPlan = &plan
		c.meal = nil
		return c, nil

	case mealSuggestionMsg:
		c.loading = false
		meal := msg.meal
		c.meal = &meal
		c.workoutPlan = nil
		return c, nil

	case insightsMsg:
		c.loading = false
		c.insights = msg.insights
		return c, nil

	case tea.KeyMsg:
		if msg.String() == "m" {
			c.loading = true
			return c, c.suggestMeal()
		}
		switch {
		case key.Matches(msg, keys.Suggest):
			c.loading = true
			return c, c.suggestWorkout()
		case key.Matches(msg, keys.Insights):
			c.loading = true
			return c, c.loadInsights()
		case key.Matches(msg, keys.Left):
			if c.equipment > 0 {
				c.equipment--
			}
		case key.Matches(msg, keys.Right):
			if c.equipment < len(equipmentChoices)-1 {
				c.equipment++
			}
		case key.Matches(msg, keys.Accept):
			return c.acceptSuggestion()
		}
	}
	return c, nil
}

// acceptSuggestion logs the current suggestion into today's records.
func (c coachModel) acceptSuggestion() (coachModel, tea.Cmd) {
	switch {
	case c.meal != nil:
		meal := store.Meal{
			ID:          newID(),
			Name:        c.meal.Name,
			Type:        c.meal.Type,
			Calories:    c.meal.Calories,
			Ingredients: c.meal.Ingredients,
			Date:        today(),
		}
		if err := c.records.AppendMeal(c.userID, meal); err != nil {
			return c, statusError(err)
		}
		c.meal = nil
		return c, tea.Batch(c.refresh(), func() tea.Msg {
			return statusMsg{text: "Meal added to today's log"}
		})

	case c.workoutPlan != nil:
		for _, ex := range c.workoutPlan.Exercises {
			workout := store.Workout{
				ID:       newID(),
				Name:     ex.Name,
				Category: "strength",
				Sets:     strconv.Itoa(ex.Sets),
				Reps:     ex.Reps,
				Date:     today(),
			}
			if err := c.records.AppendWorkout(c.userID, workout); err != nil {
				return c, statusError(err)
			}
		}
		c.workoutPlan = nil
		return c, tea.Batch(c.refresh(), func() tea.Msg {
			return statusMsg{text: "Workout added to today's log"}
		})
	}
	return c, nil
}

func (c coachModel) view() string {
	w := c.width - 4

	title := titleStyle.Render("Coach")
	equipment := c.renderEquipmentPicker()
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", equipment)

	var body string
	switch {
	case c.loading:
		body = mutedStyle.Render("  Thinking...")
	case c.workoutPlan != nil:
		body = c.renderWorkoutPlan()
	case c.meal != nil:
		body = c.renderMealSuggestion()
	default:
		body = mutedStyle.Render("  s: suggest workout  m: suggest meal  i: insights")
	}

	insights := c.renderInsights()
	hint := mutedStyle.Render("  ←/→: equipment  a: accept  s/m/i: suggest")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", insights, "", hint),
	)
}

func (c coachModel) renderEquipmentPicker() string {
	var items []string
	for i, e := range equipmentChoices {
		if i == c.equipment {
			items = append(items, selectedItemStyle.Render(e))
		} else {
			items = append(items, mutedStyle.Render(e))
		}
	}
	return strings.Join(items, "  ")
}

func (c coachModel) renderWorkoutPlan() string {
	plan := c.workoutPlan
	source := accentStyle.Render("built-in plan")
	if plan.AIGenerated {
		source = successStyle.Render("AI generated")
	}
	if plan.RateLimited {
		source = warningStyle.Render("rate limited — built-in plan")
	}

	var rows []string
	rows = append(rows, fmt.Sprintf("  %s  %s", titleStyle.Render(plan.Title), source))
	rows = append(rows, "")
	for _, ex := range plan.Exercises {
		rows = append(rows, fmt.Sprintf("  %-24s %d×%-14s %s",
			highlightStyle.Render(ex.Name), ex.Sets, ex.Reps, mutedStyle.Render(ex.Instructions)))
	}
	return strings.Join(rows, "\n")
}

func (c coachModel) renderMealSuggestion() string {
	meal := c.meal
	source := accentStyle.Render("built-in suggestion")
	if meal.AIGenerated {
		source = successStyle.Render("AI generated")
	}
	if meal.RateLimited {
		source = warningStyle.Render("rate limited — built-in suggestion")
	}

	var rows []string
	rows = append(rows, fmt.Sprintf("  %s (%s)  %s", titleStyle.Render(meal.Name), meal.Type, source))
	rows = append(rows, fmt.Sprintf("  %s", formatCalories(meal.Calories)))
	if meal.Ingredients != "" {
		rows = append(rows, mutedStyle.Render("  "+meal.Ingredients))
	}
	return strings.Join(rows, "\n")
}

func (c coachModel) renderInsights() string {
	if len(c.insights) == 0 {
		return ""
	}
	var rows []string
	rows = append(rows, titleStyle.Render("  Insights"))
	for _, insight := range c.insights {
		rows = append(rows, "  • "+insight)
	}
	return strings.Join(rows, "\n")
}
