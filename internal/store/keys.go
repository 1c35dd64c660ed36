package store

import "fmt"

// Category tags which logical collection a stored value belongs to.
// The constant values double as the key prefixes in the underlying store,
// so they must never change once data has been written.
type Category string

const (
	CategoryProfile    Category = "userProfile"
	CategoryWorkouts   Category = "workouts"
	CategoryMeals      Category = "meals"
	CategoryProgress   Category = "progress"
	CategoryGoals      Category = "goals"
	CategoryHasProfile Category = "hasProfile"
	CategoryLastReset  Category = "last_reset_date"
)

// liveCategories is everything ClearUser must remove besides archives.
var liveCategories = []Category{
	CategoryProfile,
	CategoryWorkouts,
	CategoryMeals,
	CategoryProgress,
	CategoryGoals,
	CategoryHasProfile,
	CategoryLastReset,
}

const archivePrefix = "archive_"

// userKey builds the live-record key for a category: "workouts_u1".
func userKey(c Category, userID string) string {
	return fmt.Sprintf("%s_%s", c, userID)
}

// archiveUserKey builds the key of an archived day's bucket:
// "archive_2024-01-01_workouts_u1". date is the calendar day being
// closed out (YYYY-MM-DD), or the first-run sentinel.
func archiveUserKey(date string, c Category, userID string) string {
	return fmt.Sprintf("%s%s_%s_%s", archivePrefix, date, c, userID)
}
