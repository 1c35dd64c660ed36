package store

// MealType slots a meal into one of the four daily slots.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Workout is one logged exercise session. IDs are creation timestamps
// (unix milliseconds), unique per user in practice. Numeric-looking fields
// are kept as the strings the user typed; only the UI validates them.
type Workout struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Sets         string   `json:"sets,omitempty"`
	Reps         string   `json:"reps,omitempty"`
	Weight       string   `json:"weight,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	MuscleGroups []string `json:"muscleGroups,omitempty"`
	Date         string   `json:"date"`
}

// Meal is one logged meal.
type Meal struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Type        MealType `json:"type"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fats        float64  `json:"fats"`
	Ingredients string   `json:"ingredients,omitempty"`
	Date        string   `json:"date"`
}

// Goals is the single live goal set per user. Goals are never archived;
// they persist across day boundaries.
type Goals struct {
	WeeklyWorkouts       int     `json:"weeklyWorkouts"`
	DailyCalories        int     `json:"dailyCalories"`
	DailyActivityMinutes int     `json:"dailyActivityMinutes"`
	WeightGoal           float64 `json:"weightGoal"`
}

// DefaultGoals is returned whenever no goal set was stored for a user.
var DefaultGoals = Goals{
	WeeklyWorkouts:       5,
	DailyCalories:        2000,
	DailyActivityMinutes: 30,
	WeightGoal:           70, // kg
}

// Profile holds the user attributes the coach prompts are built from.
type Profile struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	Height        float64 `json:"height"` // cm
	Weight        float64 `json:"weight"` // kg
	FitnessGoal   string  `json:"fitnessGoal"`   // weight_loss, muscle_gain, maintenance
	ActivityLevel string  `json:"activityLevel"` // sedentary, moderately_active, very_active
}

// ProgressEntry is a body measurement logged over time.
type ProgressEntry struct {
	ID      int64   `json:"id"`
	Weight  float64 `json:"weight"`
	BodyFat string  `json:"bodyFat,omitempty"`
	Notes   string  `json:"notes,omitempty"`
	Date    string  `json:"date"`
}

// DayRecords is one calendar day of archived records. Days the user never
// opened the app have no archive bucket; range queries still produce an
// entry for them with empty slices.
type DayRecords struct {
	Date     string    `json:"date"`
	Workouts []Workout `json:"workouts"`
	Meals    []Meal    `json:"meals"`
}
