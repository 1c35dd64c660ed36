package ai

import (
	"fmt"

	"github.com/sadopc/fitlog/internal/store"
)

// fallbackWorkout picks a canned session by equipment. Served when the API
// is unavailable or its reply could not be parsed.
func fallbackWorkout(prefs WorkoutPrefs) WorkoutPlan {
	exercises, ok := workoutsByEquipment[prefs.Equipment]
	equipment := prefs.Equipment
	if !ok {
		exercises = workoutsByEquipment["bodyweight"]
		equipment = "bodyweight"
	}
	return WorkoutPlan{
		Title:     fmt.Sprintf("%d-Min %s Workout", prefs.Duration, capitalize(equipment)),
		Duration:  prefs.Duration,
		Exercises: exercises,
	}
}

var workoutsByEquipment = map[string][]Exercise{
	"bodyweight": {
		{Name: "Push-ups", Sets: 3, Reps: "8-15", Instructions: "Keep body straight, modify on knees if needed"},
		{Name: "Squats", Sets: 3, Reps: "12-20", Instructions: "Feet shoulder-width apart, sit back like sitting in chair"},
		{Name: "Plank", Sets: 3, Reps: "20-60 seconds", Instructions: "Hold straight line from head to heels"},
		{Name: "Lunges", Sets: 3, Reps: "10 each leg", Instructions: "Step forward, lower back knee toward ground"},
	},
	"dumbbells": {
		{Name: "Dumbbell Press", Sets: 3, Reps: "8-12", Instructions: "Press weights overhead, control the movement"},
		{Name: "Dumbbell Rows", Sets: 3, Reps: "10-15", Instructions: "Pull weights to chest, squeeze shoulder blades"},
		{Name: "Goblet Squats", Sets: 3, Reps: "12-15", Instructions: "Hold weight at chest, squat down"},
		{Name: "Dumbbell Deadlifts", Sets: 3, Reps: "10-12", Instructions: "Hinge at hips, keep back straight"},
	},
	"gym": {
		{Name: "Bench Press", Sets: 3, Reps: "8-12", Instructions: "Control weight down to chest, press up"},
		{Name: "Lat Pulldowns", Sets: 3, Reps: "10-15", Instructions: "Pull bar to chest, squeeze back muscles"},
		{Name: "Leg Press", Sets: 3, Reps: "12-20", Instructions: "Press weight with legs, full range of motion"},
		{Name: "Cable Rows", Sets: 3, Reps: "10-15", Instructions: "Pull handle to torso, keep back straight"},
	},
}

// fallbackMeal picks a canned meal by fitness goal and slot.
func fallbackMeal(fitnessGoal string, mealType store.MealType) MealSuggestion {
	goalMeals, ok := mealsByGoal[fitnessGoal]
	if !ok {
		goalMeals = mealsByGoal["maintenance"]
	}
	meal, ok := goalMeals[mealType]
	if !ok {
		meal = goalMeals[store.MealLunch]
	}
	meal.Type = mealType
	return meal
}

var mealsByGoal = map[string]map[store.MealType]MealSuggestion{
	"weight_loss": {
		store.MealBreakfast: {Name: "Greek Yogurt Bowl", Calories: 280, Ingredients: "Greek yogurt, berries, chia seeds, honey"},
		store.MealLunch:     {Name: "Grilled Chicken Salad", Calories: 350, Ingredients: "Chicken breast, mixed greens, vegetables, olive oil dressing"},
		store.MealDinner:    {Name: "Baked Fish with Vegetables", Calories: 400, Ingredients: "White fish, steamed broccoli, quinoa"},
		store.MealSnack:     {Name: "Celery with Almond Butter", Calories: 150, Ingredients: "Celery sticks, natural almond butter"},
	},
	"muscle_gain": {
		store.MealBreakfast: {Name: "Protein Pancakes", Calories: 450, Ingredients: "Oats, protein powder, banana, eggs, milk"},
		store.MealLunch:     {Name: "Chicken Rice Bowl", Calories: 600, Ingredients: "Chicken breast, brown rice, vegetables, avocado"},
		store.MealDinner:    {Name: "Salmon with Sweet Potato", Calories: 650, Ingredients: "Salmon fillet, roasted sweet potato, asparagus"},
		store.MealSnack:     {Name: "Protein Smoothie", Calories: 300, Ingredients: "Protein powder, banana, peanut butter, milk"},
	},
	"maintenance": {
		store.MealBreakfast: {Name: "Oatmeal with Fruits", Calories: 350, Ingredients: "Oats, mixed berries, nuts, honey"},
		store.MealLunch:     {Name: "Turkey Sandwich", Calories: 450, Ingredients: "Whole grain bread, turkey, vegetables, hummus"},
		store.MealDinner:    {Name: "Lean Beef Stir-fry", Calories: 500, Ingredients: "Lean beef, mixed vegetables, brown rice"},
		store.MealSnack:     {Name: "Apple with Peanut Butter", Calories: 200, Ingredients: "Apple slices, natural peanut butter"},
	},
}

// fallbackInsights builds observations from the numbers alone.
func fallbackInsights(p store.Profile, goals store.Goals, workouts []store.Workout, meals []store.Meal) []string {
	var insights []string

	weekly := goals.WeeklyWorkouts
	if weekly == 0 {
		weekly = 3
	}
	switch {
	case len(workouts) == 0:
		insights = append(insights, "Ready to start your fitness journey? Begin with 2-3 workouts this week to build momentum!")
	case len(workouts) < weekly:
		insights = append(insights, fmt.Sprintf("Great start! You've completed %d workouts. Try to reach your goal of %d workouts this week.", len(workouts), weekly))
	default:
		insights = append(insights, "Excellent consistency with your workouts! Consider gradually increasing intensity or trying new exercises.")
	}

	avg := averageCalories(meals)
	target := float64(goals.DailyCalories)
	if target == 0 {
		target = 2000
	}
	switch {
	case len(meals) == 0:
		insights = append(insights, "Start tracking your meals to get personalized nutrition insights and reach your goals faster!")
	case avg < target*0.8:
		insights = append(insights, "Consider adding more nutrient-dense calories to fuel your workouts and recovery.")
	case avg > target*1.2:
		insights = append(insights, "Focus on portion control and choosing nutrient-dense foods to align with your goals.")
	default:
		insights = append(insights, "Your nutrition tracking is on point! Keep maintaining this balanced approach.")
	}

	switch p.FitnessGoal {
	case "weight_loss":
		insights = append(insights, "For weight loss, combine regular cardio with strength training and maintain a slight caloric deficit.")
	case "muscle_gain":
		insights = append(insights, "Focus on progressive overload in your workouts and ensure adequate protein intake for muscle growth.")
	default:
		insights = append(insights, "Maintain a balanced approach with both cardio and strength training for overall fitness.")
	}

	return insights
}
