package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// firstRunDate keys the archive bucket written by a user's very first
// rollover, when there is no prior reset date to close out.
const firstRunDate = "old"

// Clock returns the current time. Injected so tests can simulate day
// boundaries.
type Clock func() time.Time

// Rollover archives stale live records and resets them for a new day.
//
// Rollover is lazy: nothing runs at midnight. The next CheckAndReset call
// after the local calendar date has changed performs the archive and reset.
// A user who never opens the app on a given day gets no archive bucket for
// it — an absent bucket means "did not use the app", not "zero activity".
type Rollover struct {
	records *Records
	clock   Clock
}

// NewRollover builds a rollover engine. A nil clock means wall time.
func NewRollover(r *Records, clock Clock) *Rollover {
	if clock == nil {
		clock = time.Now
	}
	return &Rollover{records: r, clock: clock}
}

// CheckAndReset archives the live workout and meal sets under the date of
// the last reset and clears them, if the local calendar day has changed
// since that reset. It reports whether a rollover happened.
//
// The reset marker is only advanced after the archive and reset writes
// succeed, and only with a conditional write against the value read at the
// start — so concurrent callers cannot both archive, and a failed write
// leaves the marker untouched for the next attempt.
func (ro *Rollover) CheckAndReset(userID string) (bool, error) {
	if userID == "" {
		return false, ErrInvalidUser
	}

	today := ro.clock().Format(dateLayout)

	markerKey := userKey(CategoryLastReset, userID)
	raw, err := ro.records.kv.Get(markerKey)
	var observed *string
	lastReset := ""
	switch {
	case errors.Is(err, ErrNotFound):
		// First-ever run for this user.
	case err != nil:
		return false, fmt.Errorf("read reset marker: %w", err)
	default:
		observed = &raw
		// Marker values are JSON-encoded like every other record; a value
		// that does not decode is treated as absent.
		json.Unmarshal([]byte(raw), &lastReset)
	}

	if lastReset == today {
		return false, nil
	}

	// Live records correspond to an earlier day. Close that day out.
	closedDate := lastReset
	if closedDate == "" {
		closedDate = firstRunDate
	}

	workouts, err := ro.records.LoadWorkouts(userID)
	if err != nil {
		return false, fmt.Errorf("load live workouts: %w", err)
	}
	meals, err := ro.records.LoadMeals(userID)
	if err != nil {
		return false, fmt.Errorf("load live meals: %w", err)
	}

	if err := ro.archiveDay(userID, closedDate, workouts, meals); err != nil {
		return false, err
	}

	if err := ro.records.SaveWorkouts(userID, nil); err != nil {
		return false, fmt.Errorf("reset workouts: %w", err)
	}
	if err := ro.records.SaveMeals(userID, nil); err != nil {
		return false, fmt.Errorf("reset meals: %w", err)
	}

	next, err := json.Marshal(today)
	if err != nil {
		return false, fmt.Errorf("encode reset marker: %w", err)
	}
	wrote, err := ro.records.kv.PutIf(markerKey, observed, string(next))
	if err != nil {
		return false, fmt.Errorf("advance reset marker: %w", err)
	}
	if !wrote {
		// A concurrent caller already closed the day; its archive won and
		// the live sets are empty either way.
		return false, nil
	}
	return true, nil
}

// archiveDay snapshots the live sets under the closed date. Buckets are
// written once: a bucket that already exists for that date is left alone,
// so a crash-and-retry cannot clobber data that was already archived.
func (ro *Rollover) archiveDay(userID, closedDate string, workouts []Workout, meals []Meal) error {
	if workouts == nil {
		workouts = []Workout{}
	}
	if meals == nil {
		meals = []Meal{}
	}

	wdata, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("encode workout archive: %w", err)
	}
	if _, err := ro.records.kv.PutIf(archiveUserKey(closedDate, CategoryWorkouts, userID), nil, string(wdata)); err != nil {
		return fmt.Errorf("write workout archive: %w", err)
	}

	mdata, err := json.Marshal(meals)
	if err != nil {
		return fmt.Errorf("encode meal archive: %w", err)
	}
	if _, err := ro.records.kv.PutIf(archiveUserKey(closedDate, CategoryMeals, userID), nil, string(mdata)); err != nil {
		return fmt.Errorf("write meal archive: %w", err)
	}
	return nil
}
