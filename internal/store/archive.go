package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ArchivedWorkouts returns the workout bucket archived for one calendar day.
// found is false when no bucket exists for that day.
func (r *Records) ArchivedWorkouts(userID, date string) ([]Workout, bool, error) {
	var workouts []Workout
	found, err := r.loadArchive(userID, date, CategoryWorkouts, &workouts)
	return workouts, found, err
}

// ArchivedMeals returns the meal bucket archived for one calendar day.
func (r *Records) ArchivedMeals(userID, date string) ([]Meal, bool, error) {
	var meals []Meal
	found, err := r.loadArchive(userID, date, CategoryMeals, &meals)
	return meals, found, err
}

func (r *Records) loadArchive(userID, date string, c Category, out any) (bool, error) {
	if userID == "" {
		return false, ErrInvalidUser
	}
	raw, err := r.kv.Get(archiveUserKey(date, c, userID))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, nil
	}
	return true, nil
}

// History returns one DayRecords per calendar day from start to end
// inclusive, oldest first. Days without an archive bucket appear with
// empty slices, so charts and exports always see a contiguous range.
func (r *Records) History(userID, start, end string) ([]DayRecords, error) {
	if userID == "" {
		return nil, ErrInvalidUser
	}
	from, err := time.ParseInLocation(dateLayout, start, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parse start date %q: %w", start, err)
	}
	to, err := time.ParseInLocation(dateLayout, end, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parse end date %q: %w", end, err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s before start date %s", end, start)
	}

	var days []DayRecords
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		day := DayRecords{Date: date, Workouts: []Workout{}, Meals: []Meal{}}

		workouts, found, err := r.ArchivedWorkouts(userID, date)
		if err != nil {
			return nil, err
		}
		if found && workouts != nil {
			day.Workouts = workouts
		}

		meals, found, err := r.ArchivedMeals(userID, date)
		if err != nil {
			return nil, err
		}
		if found && meals != nil {
			day.Meals = meals
		}

		days = append(days, day)
	}
	return days, nil
}

// ArchivedDates lists every calendar day for which the user has at least
// one archive bucket, sorted ascending. The first-run bucket is skipped.
func (r *Records) ArchivedDates(userID string) ([]string, error) {
	if userID == "" {
		return nil, ErrInvalidUser
	}
	keys, err := r.kv.Keys(archivePrefix)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var dates []string
	for _, k := range keys {
		date, uid, ok := parseArchiveKey(k)
		if !ok || uid != userID || date == firstRunDate {
			continue
		}
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}
	return dates, nil
}

// parseArchiveKey splits "archive_{date}_{category}_{userID}". The date is
// either YYYY-MM-DD or the first-run sentinel; neither contains an
// underscore, and neither does a category, so splitting on the first and
// second underscores after the prefix is unambiguous even when the user id
// contains underscores.
func parseArchiveKey(key string) (date, userID string, ok bool) {
	rest := key[len(archivePrefix):]
	i := strings.IndexByte(rest, '_')
	if i < 0 {
		return "", "", false
	}
	date = rest[:i]
	rest = rest[i+1:]
	j := strings.IndexByte(rest, '_')
	if j < 0 {
		return "", "", false
	}
	return date, rest[j+1:], true
}
