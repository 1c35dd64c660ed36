package ai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sadopc/fitlog/internal/store"
)

// Exercise is one movement in a suggested workout.
type Exercise struct {
	Name         string
	Sets         int
	Reps         string
	Instructions string
}

// WorkoutPlan is a suggested session. AIGenerated is false when the plan
// came from the built-in tables.
type WorkoutPlan struct {
	Title       string
	Duration    int
	Exercises   []Exercise
	AIGenerated bool
	RateLimited bool
}

// MealSuggestion is one suggested meal.
type MealSuggestion struct {
	Name        string
	Ingredients string
	Calories    float64
	Type        store.MealType
	AIGenerated bool
	RateLimited bool
}

// WorkoutPrefs narrows workout generation.
type WorkoutPrefs struct {
	Equipment string // bodyweight, dumbbells, gym
	Focus     string
	Duration  int // minutes
}

// Coach turns profile and progress data into suggestions. All methods
// degrade to deterministic fallbacks on any client error, so the caller
// always gets a usable result.
type Coach struct {
	client *Client
}

func NewCoach(client *Client) *Coach {
	return &Coach{client: client}
}

// SuggestWorkout asks for a session matched to the profile.
func (c *Coach) SuggestWorkout(ctx context.Context, p store.Profile, prefs WorkoutPrefs) WorkoutPlan {
	if prefs.Duration == 0 {
		prefs.Duration = 30
	}
	if prefs.Equipment == "" {
		prefs.Equipment = "bodyweight"
	}
	if prefs.Focus == "" {
		prefs.Focus = "general"
	}

	prompt := fmt.Sprintf(`Create a personalized %d minute workout for:
- Age: %d years old
- Gender: %s
- Height: %.0fcm, Weight: %.0fkg
- Fitness Goal: %s
- Activity Level: %s
- Equipment: %s
- Focus: %s

Generate 4-5 specific exercises with sets, reps, and detailed instructions tailored to this profile.`,
		prefs.Duration, p.Age, p.Gender, p.Height, p.Weight, p.FitnessGoal, p.ActivityLevel, prefs.Equipment, prefs.Focus)

	text, err := c.client.Complete(ctx, prompt, 0.7, 200)
	if err != nil {
		plan := fallbackWorkout(prefs)
		plan.RateLimited = errors.Is(err, ErrRateLimited)
		return plan
	}

	plan, ok := parseWorkoutResponse(text, prefs)
	if !ok {
		return fallbackWorkout(prefs)
	}
	return plan
}

// SuggestMeal asks for a meal of the given type.
func (c *Coach) SuggestMeal(ctx context.Context, p store.Profile, goals store.Goals, mealType store.MealType) MealSuggestion {
	prompt := fmt.Sprintf(`Create a personalized %s meal for:
- Age: %d years, Gender: %s
- Height: %.0fcm, Weight: %.0fkg
- Fitness Goal: %s
- Activity Level: %s
- Target Calories: %d per day

Suggest a specific meal with name, ingredients, and calorie count tailored to this profile.`,
		mealType, p.Age, p.Gender, p.Height, p.Weight, p.FitnessGoal, p.ActivityLevel, goals.DailyCalories)

	text, err := c.client.Complete(ctx, prompt, 0.6, 150)
	if err != nil {
		meal := fallbackMeal(p.FitnessGoal, mealType)
		meal.RateLimited = errors.Is(err, ErrRateLimited)
		return meal
	}
	return parseMealResponse(text, p.FitnessGoal, mealType)
}

// Insights returns 2-3 short observations about recent activity.
func (c *Coach) Insights(ctx context.Context, p store.Profile, goals store.Goals, workouts []store.Workout, meals []store.Meal) []string {
	avg := averageCalories(meals)
	prompt := fmt.Sprintf(`Analyze fitness data for personalized insights:
User Profile:
- Age: %d, Gender: %s
- Height: %.0fcm, Weight: %.0fkg
- Fitness Goal: %s
- Activity Level: %s

Current Progress:
- Workouts completed: %d/%d weekly goal
- Meals tracked: %d
- Average calories: %.0f

Provide 2-3 specific, actionable insights based on this profile and progress.`,
		p.Age, p.Gender, p.Height, p.Weight, p.FitnessGoal, p.ActivityLevel,
		len(workouts), goals.WeeklyWorkouts, len(meals), avg)

	text, err := c.client.Complete(ctx, prompt, 0.6, 180)
	if err != nil {
		insights := fallbackInsights(p, goals, workouts, meals)
		if errors.Is(err, ErrRateLimited) {
			insights = append([]string{"AI is temporarily rate-limited. Using smart recommendations based on your profile."}, insights...)
		}
		return capInsights(insights)
	}

	insights := parseInsightsResponse(text)
	if len(insights) == 0 {
		return capInsights(fallbackInsights(p, goals, workouts, meals))
	}
	return insights
}

// --- response parsing ---

// parseWorkoutResponse scans the free-text reply for exercise-looking
// lines. ok is false when nothing usable was found.
func parseWorkoutResponse(text string, prefs WorkoutPrefs) (WorkoutPlan, bool) {
	var exercises []Exercise
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, "sets") && !strings.Contains(line, "reps") && !strings.Contains(line, ":") {
			continue
		}
		parts := strings.FieldsFunc(line, func(r rune) bool { return r == ':' || r == '-' })
		if len(parts) < 2 {
			continue
		}
		ex := Exercise{
			Name:         strings.TrimSpace(parts[0]),
			Sets:         3,
			Reps:         strings.TrimSpace(parts[1]),
			Instructions: "Perform with proper form",
		}
		if ex.Reps == "" {
			ex.Reps = "10-15"
		}
		if len(parts) > 2 {
			if instr := strings.TrimSpace(parts[2]); instr != "" {
				ex.Instructions = instr
			}
		}
		exercises = append(exercises, ex)
	}
	if len(exercises) == 0 {
		return WorkoutPlan{}, false
	}
	if len(exercises) > 5 {
		exercises = exercises[:5]
	}
	return WorkoutPlan{
		Title:       fmt.Sprintf("AI Generated %s Workout", capitalize(prefs.Equipment)),
		Duration:    prefs.Duration,
		Exercises:   exercises,
		AIGenerated: true,
	}, true
}

var calorieRe = regexp.MustCompile(`(?i)(\d+)\s*(cal|kcal|calories)`)

func parseMealResponse(text, fitnessGoal string, mealType store.MealType) MealSuggestion {
	lines := nonEmptyLines(text)

	name := ""
	for i := 0; i < len(lines) && i < 3; i++ {
		line := lines[i]
		lower := strings.ToLower(line)
		if strings.Contains(lower, "here") || strings.Contains(lower, "breakdown") {
			continue
		}
		cleaned := line
		for _, prefix := range []string{"meal:", "recipe:", "suggestion:"} {
			if strings.HasPrefix(strings.ToLower(cleaned), prefix) {
				cleaned = cleaned[len(prefix):]
			}
		}
		cleaned = strings.Trim(strings.NewReplacer("*", "", "#", "", "-", "").Replace(cleaned), " ")
		if len(cleaned) > 5 {
			name = cleaned
			break
		}
	}

	ingredients := ""
	for _, line := range lines {
		lower := strings.ToLower(line)
		looksLikeList := strings.Contains(lower, "ingredients") || strings.Contains(lower, "recipe") || strings.Contains(line, ",")
		if looksLikeList && !strings.Contains(lower, "calorie") && len(line) > 10 {
			cleaned := strings.NewReplacer("Ingredients:", "", "ingredients:", "", "Recipe:", "", "recipe:", "").Replace(line)
			ingredients = strings.TrimSpace(cleaned)
		}
	}

	calories := 0.0
	if m := calorieRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		calories = float64(n)
	}

	if len(ingredients) < 5 {
		meal := fallbackMeal(fitnessGoal, mealType)
		if name != "" {
			meal.Name = name
		}
		if calories > 0 {
			meal.Calories = calories
		}
		meal.AIGenerated = true
		return meal
	}
	if name == "" {
		name = fmt.Sprintf("AI %s", capitalize(string(mealType)))
	}
	if calories == 0 {
		calories = 400
	}
	return MealSuggestion{
		Name:        name,
		Ingredients: ingredients,
		Calories:    calories,
		Type:        mealType,
		AIGenerated: true,
	}
}

func parseInsightsResponse(text string) []string {
	var insights []string
	for _, line := range nonEmptyLines(text) {
		if len(line) <= 20 || !strings.Contains(line, ".") {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "workout") || strings.Contains(lower, "nutrition") || strings.Contains(lower, "goal") {
			insights = append(insights, line)
		}
	}
	return capInsights(insights)
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func capInsights(insights []string) []string {
	if len(insights) > 3 {
		return insights[:3]
	}
	return insights
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func averageCalories(meals []store.Meal) float64 {
	if len(meals) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range meals {
		sum += m.Calories
	}
	return sum / float64(len(meals))
}
