package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidUser is returned when a record operation is attempted without
// a user id. Operating on an empty id would silently read and write shared
// keys, so every entry point rejects it.
var ErrInvalidUser = errors.New("empty user id")

// Records provides per-user, per-category access to the key-value store.
// Every save is an immediate write-through; there is no buffering.
type Records struct {
	kv *Store
}

func NewRecords(kv *Store) *Records {
	return &Records{kv: kv}
}

func (r *Records) save(userID string, c Category, v any) error {
	if userID == "" {
		return ErrInvalidUser
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	return r.kv.Put(userKey(c, userID), string(data))
}

// load reports found=false both for keys never written and for stored
// values that no longer decode. A corrupt record must not wedge the
// session; the caller proceeds with the zero value. Storage failures
// propagate.
func (r *Records) load(userID string, c Category, out any) (bool, error) {
	if userID == "" {
		return false, ErrInvalidUser
	}
	raw, err := r.kv.Get(userKey(c, userID))
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

// Remove deletes the live value of one category for a user.
func (r *Records) Remove(userID string, c Category) error {
	if userID == "" {
		return ErrInvalidUser
	}
	return r.kv.Delete(userKey(c, userID))
}

// ClearUser removes every live category and every archive bucket for the
// user. Used on account deletion.
func (r *Records) ClearUser(userID string) error {
	if userID == "" {
		return ErrInvalidUser
	}
	for _, c := range liveCategories {
		if err := r.kv.Delete(userKey(c, userID)); err != nil {
			return err
		}
	}
	keys, err := r.kv.Keys(archivePrefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if _, uid, ok := parseArchiveKey(k); ok && uid == userID {
			if err := r.kv.Delete(k); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- Profile ---

func (r *Records) SaveProfile(userID string, p Profile) error {
	return r.save(userID, CategoryProfile, p)
}

func (r *Records) LoadProfile(userID string) (Profile, bool, error) {
	var p Profile
	found, err := r.load(userID, CategoryProfile, &p)
	return p, found, err
}

func (r *Records) SetHasProfile(userID string, has bool) error {
	return r.save(userID, CategoryHasProfile, has)
}

func (r *Records) HasProfile(userID string) (bool, error) {
	var has bool
	_, err := r.load(userID, CategoryHasProfile, &has)
	return has, err
}

// --- Workouts ---

func (r *Records) SaveWorkouts(userID string, workouts []Workout) error {
	if workouts == nil {
		workouts = []Workout{}
	}
	return r.save(userID, CategoryWorkouts, workouts)
}

// LoadWorkouts returns the live workout set. Absent and malformed values
// both come back as an empty set.
func (r *Records) LoadWorkouts(userID string) ([]Workout, error) {
	var workouts []Workout
	if _, err := r.load(userID, CategoryWorkouts, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *Records) AppendWorkout(userID string, w Workout) error {
	workouts, err := r.LoadWorkouts(userID)
	if err != nil {
		return err
	}
	return r.SaveWorkouts(userID, append(workouts, w))
}

func (r *Records) DeleteWorkout(userID string, id int64) error {
	workouts, err := r.LoadWorkouts(userID)
	if err != nil {
		return err
	}
	kept := workouts[:0]
	for _, w := range workouts {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	return r.SaveWorkouts(userID, kept)
}

// --- Meals ---

func (r *Records) SaveMeals(userID string, meals []Meal) error {
	if meals == nil {
		meals = []Meal{}
	}
	return r.save(userID, CategoryMeals, meals)
}

func (r *Records) LoadMeals(userID string) ([]Meal, error) {
	var meals []Meal
	if _, err := r.load(userID, CategoryMeals, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *Records) AppendMeal(userID string, m Meal) error {
	meals, err := r.LoadMeals(userID)
	if err != nil {
		return err
	}
	return r.SaveMeals(userID, append(meals, m))
}

func (r *Records) DeleteMeal(userID string, id int64) error {
	meals, err := r.LoadMeals(userID)
	if err != nil {
		return err
	}
	kept := meals[:0]
	for _, m := range meals {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return r.SaveMeals(userID, kept)
}

// --- Progress ---

func (r *Records) SaveProgress(userID string, entries []ProgressEntry) error {
	if entries == nil {
		entries = []ProgressEntry{}
	}
	return r.save(userID, CategoryProgress, entries)
}

func (r *Records) LoadProgress(userID string) ([]ProgressEntry, error) {
	var entries []ProgressEntry
	if _, err := r.load(userID, CategoryProgress, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Records) AppendProgress(userID string, e ProgressEntry) error {
	entries, err := r.LoadProgress(userID)
	if err != nil {
		return err
	}
	return r.SaveProgress(userID, append(entries, e))
}

func (r *Records) DeleteProgress(userID string, id int64) error {
	entries, err := r.LoadProgress(userID)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return r.SaveProgress(userID, kept)
}

// --- Goals ---

func (r *Records) SaveGoals(userID string, g Goals) error {
	return r.save(userID, CategoryGoals, g)
}

// LoadGoals returns the stored goal set, or DefaultGoals when none exists.
func (r *Records) LoadGoals(userID string) (Goals, error) {
	var g Goals
	found, err := r.load(userID, CategoryGoals, &g)
	if err != nil {
		return Goals{}, err
	}
	if !found {
		return DefaultGoals, nil
	}
	return g, nil
}
