package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/fitlog/internal/ai"
	"github.com/sadopc/fitlog/internal/store"
)

const testUser = "u1"

func newTestRecords(t *testing.T) *store.Records {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return store.NewRecords(s)
}

func newTestApp(t *testing.T) App {
	t.Helper()
	r := newTestRecords(t)
	rollover := store.NewRollover(r, nil)
	coach := ai.NewCoach(ai.NewClient("http://localhost", "", "m"))
	return NewApp(r, rollover, coach, testUser)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// Common helpers
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 6 {
		t.Fatalf("expected 6 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Workouts", "Meals", "History", "Profile", "Coach"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewWorkouts != 1 || viewMeals != 2 || viewHistory != 3 || viewProfile != 4 || viewCoach != 5 {
		t.Fatal("view state constants out of order")
	}
}

func TestToday(t *testing.T) {
	d := today()
	if len(d) != 10 || d[4] != '-' || d[7] != '-' {
		t.Fatalf("unexpected date format: %q", d)
	}
}

func TestNewID(t *testing.T) {
	if newID() == 0 {
		t.Fatal("expected non-zero id")
	}
}

func TestClampCursor(t *testing.T) {
	tests := []struct {
		cursor, length, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{2, 3, 2},
		{3, 3, 2},
		{5, 1, 0},
	}
	for _, tt := range tests {
		if got := clampCursor(tt.cursor, tt.length); got != tt.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.cursor, tt.length, got, tt.want)
		}
	}
}

func TestFormatCalories(t *testing.T) {
	if got := formatCalories(420.4); got != "420 kcal" {
		t.Fatalf("formatCalories = %q", got)
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardRefresh(t *testing.T) {
	r := newTestRecords(t)
	r.AppendWorkout(testUser, store.Workout{ID: 1, Name: "Squats"})
	r.AppendMeal(testUser, store.Meal{ID: 2, Name: "Oats", Type: store.MealBreakfast, Calories: 350})

	d := newDashboardModel(r, testUser)
	msg := d.refresh()()
	d, _ = d.update(msg)

	if len(d.workouts) != 1 || len(d.meals) != 1 {
		t.Fatalf("dashboard did not load data: %d workouts, %d meals", len(d.workouts), len(d.meals))
	}
	if d.goals != store.DefaultGoals {
		t.Fatalf("expected default goals, got %+v", d.goals)
	}
	if d.totalCalories() != 350 {
		t.Fatalf("totalCalories = %v", d.totalCalories())
	}
}

func TestDashboardViewRenders(t *testing.T) {
	r := newTestRecords(t)
	d := newDashboardModel(r, testUser)
	d.setSize(100, 30)

	out := d.view()
	if out == "" {
		t.Fatal("empty dashboard view")
	}
	if !strings.Contains(out, "Today") {
		t.Fatal("dashboard missing Today panel")
	}
}

func TestWorkoutDetail(t *testing.T) {
	w := store.Workout{Sets: "3", Reps: "12", Weight: "60", Category: "strength"}
	detail := workoutDetail(w)
	if !strings.Contains(detail, "3×12") || !strings.Contains(detail, "60kg") {
		t.Fatalf("unexpected detail: %q", detail)
	}
}

// ============================================================
// Workouts model
// ============================================================

func TestWorkoutsRefreshAndDelete(t *testing.T) {
	r := newTestRecords(t)
	r.AppendWorkout(testUser, store.Workout{ID: 1, Name: "Squats"})
	r.AppendWorkout(testUser, store.Workout{ID: 2, Name: "Running"})

	w := newWorkoutsModel(r, testUser)
	msg := w.refresh()()
	w, _ = w.update(msg)
	if len(w.workouts) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(w.workouts))
	}

	// Delete the first workout under the cursor
	w, cmd := w.update(keyRune('d'))
	if cmd == nil {
		t.Fatal("delete should trigger a refresh")
	}
	left, _ := r.LoadWorkouts(testUser)
	if len(left) != 1 || left[0].ID != 2 {
		t.Fatalf("unexpected workouts after delete: %+v", left)
	}
}

func TestWorkoutsFormOpens(t *testing.T) {
	r := newTestRecords(t)
	w := newWorkoutsModel(r, testUser)

	w, _ = w.update(keyRune('n'))
	if !w.formActive || w.form == nil {
		t.Fatal("n should open the log form")
	}

	// Escape closes it
	w, _ = w.update(tea.KeyMsg{Type: tea.KeyEsc})
	if w.formActive {
		t.Fatal("esc should close the form")
	}
}

func TestWorkoutsCursorBounds(t *testing.T) {
	r := newTestRecords(t)
	r.AppendWorkout(testUser, store.Workout{ID: 1, Name: "A"})
	r.AppendWorkout(testUser, store.Workout{ID: 2, Name: "B"})

	w := newWorkoutsModel(r, testUser)
	msg := w.refresh()()
	w, _ = w.update(msg)

	w, _ = w.update(keyRune('k'))
	if w.cursor != 0 {
		t.Fatal("cursor should not go above 0")
	}
	w, _ = w.update(keyRune('j'))
	w, _ = w.update(keyRune('j'))
	if w.cursor != 1 {
		t.Fatalf("cursor should stop at last item, got %d", w.cursor)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"chest, triceps", 2},
		{"legs", 1},
		{"", 0},
		{" , ", 0},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); len(got) != tt.want {
			t.Errorf("splitList(%q) = %v, want %d items", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// Meals model
// ============================================================

func TestMealsRefreshAndDelete(t *testing.T) {
	r := newTestRecords(t)
	r.AppendMeal(testUser, store.Meal{ID: 1, Name: "Oats", Type: store.MealBreakfast, Calories: 350})

	m := newMealsModel(r, testUser)
	msg := m.refresh()()
	m, _ = m.update(msg)
	if len(m.meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(m.meals))
	}

	m, _ = m.update(keyRune('d'))
	left, _ := r.LoadMeals(testUser)
	if len(left) != 0 {
		t.Fatalf("meal should be deleted, got %+v", left)
	}
}

func TestParseMacro(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"420", 420},
		{" 18.5 ", 18.5},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parseMacro(tt.in); got != tt.want {
			t.Errorf("parseMacro(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// History model
// ============================================================

func TestHistoryDateRange(t *testing.T) {
	r := newTestRecords(t)
	h := newHistoryModel(r, testUser)

	start, end := h.dateRange()
	if start >= end {
		t.Fatalf("start %s should precede end %s", start, end)
	}

	// Moving back a window shifts both ends earlier
	h.offset = 1
	prevStart, prevEnd := h.dateRange()
	if prevStart >= start || prevEnd >= start {
		t.Fatalf("offset window should be strictly earlier: %s-%s vs %s", prevStart, prevEnd, start)
	}
}

func TestHistoryLoadsArchivedDays(t *testing.T) {
	r := newTestRecords(t)
	h := newHistoryModel(r, testUser)
	h.setSize(100, 30)

	msg := h.refresh()()
	h, _ = h.update(msg)

	if len(h.days) != historyWindowDays {
		t.Fatalf("expected %d days, got %d", historyWindowDays, len(h.days))
	}
	if out := h.view(); out == "" {
		t.Fatal("empty history view")
	}
}

// ============================================================
// Profile model
// ============================================================

func TestProfileSaveForms(t *testing.T) {
	r := newTestRecords(t)
	p := newProfileModel(r, testUser)

	*p.formAge = "30"
	*p.formGender = "female"
	*p.formHeight = "170"
	*p.formWeight = "65"
	*p.formGoal = "weight_loss"
	*p.formActivity = "very_active"
	p.formType = "profile"
	if err := p.saveForm(); err != nil {
		t.Fatal(err)
	}

	profile, found, _ := r.LoadProfile(testUser)
	if !found || profile.Age != 30 || profile.FitnessGoal != "weight_loss" {
		t.Fatalf("profile not saved: %+v", profile)
	}
	has, _ := r.HasProfile(testUser)
	if !has {
		t.Fatal("hasProfile flag should be set")
	}

	*p.formWeeklyWorkouts = "4"
	*p.formDailyCalories = "1800"
	*p.formDailyActivity = "45"
	*p.formWeightGoal = "60"
	p.formType = "goals"
	if err := p.saveForm(); err != nil {
		t.Fatal(err)
	}
	goals, _ := r.LoadGoals(testUser)
	if goals.WeeklyWorkouts != 4 || goals.DailyCalories != 1800 {
		t.Fatalf("goals not saved: %+v", goals)
	}

	*p.formProgWeight = "64.5"
	*p.formBodyFat = "22"
	*p.formNotes = "feeling good"
	p.formType = "progress"
	if err := p.saveForm(); err != nil {
		t.Fatal(err)
	}
	entries, _ := r.LoadProgress(testUser)
	if len(entries) != 1 || entries[0].Weight != 64.5 {
		t.Fatalf("progress not saved: %+v", entries)
	}
}

func TestProfileProgressRequiresWeight(t *testing.T) {
	r := newTestRecords(t)
	p := newProfileModel(r, testUser)

	*p.formProgWeight = ""
	p.formType = "progress"
	if err := p.saveForm(); err != nil {
		t.Fatal(err)
	}
	entries, _ := r.LoadProgress(testUser)
	if len(entries) != 0 {
		t.Fatal("empty weight should not create an entry")
	}
}

func TestParseIntField(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"30", 30},
		{" 5 ", 5},
		{"", 0},
		{"x", 0},
	}
	for _, tt := range tests {
		if got := parseIntField(tt.in); got != tt.want {
			t.Errorf("parseIntField(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// Coach model
// ============================================================

func TestNextMealType(t *testing.T) {
	if got := nextMealType(nil); got != store.MealBreakfast {
		t.Fatalf("empty day should suggest breakfast, got %s", got)
	}
	meals := []store.Meal{{Type: store.MealBreakfast}, {Type: store.MealLunch}}
	if got := nextMealType(meals); got != store.MealDinner {
		t.Fatalf("expected dinner, got %s", got)
	}
	meals = append(meals, store.Meal{Type: store.MealDinner})
	if got := nextMealType(meals); got != store.MealSnack {
		t.Fatalf("full day should suggest snack, got %s", got)
	}
}

func TestCoachAcceptMeal(t *testing.T) {
	r := newTestRecords(t)
	coach := ai.NewCoach(ai.NewClient("http://localhost", "", "m"))
	c := newCoachModel(r, coach, testUser)

	c.meal = &ai.MealSuggestion{Name: "Oatmeal with Fruits", Type: store.MealBreakfast, Calories: 350}
	c, _ = c.acceptSuggestion()

	if c.meal != nil {
		t.Fatal("suggestion should be cleared after accept")
	}
	meals, _ := r.LoadMeals(testUser)
	if len(meals) != 1 || meals[0].Name != "Oatmeal with Fruits" {
		t.Fatalf("meal not logged: %+v", meals)
	}
}

func TestCoachAcceptWorkoutPlan(t *testing.T) {
	r := newTestRecords(t)
	coach := ai.NewCoach(ai.NewClient("http://localhost", "", "m"))
	c := newCoachModel(r, coach, testUser)

	c.workoutPlan = &ai.WorkoutPlan{
		Title: "30-Min Bodyweight Workout",
		Exercises: []ai.Exercise{
			{Name: "Push-ups", Sets: 3, Reps: "8-15"},
			{Name: "Squats", Sets: 3, Reps: "12-20"},
		},
	}
	c, _ = c.acceptSuggestion()

	if c.workoutPlan != nil {
		t.Fatal("plan should be cleared after accept")
	}
	workouts, _ := r.LoadWorkouts(testUser)
	if len(workouts) != 2 || workouts[0].Name != "Push-ups" {
		t.Fatalf("workouts not logged: %+v", workouts)
	}
}

func TestCoachEquipmentCycle(t *testing.T) {
	r := newTestRecords(t)
	coach := ai.NewCoach(ai.NewClient("http://localhost", "", "m"))
	c := newCoachModel(r, coach, testUser)

	c, _ = c.update(keyRune('l'))
	if c.equipment != 1 {
		t.Fatalf("expected equipment index 1, got %d", c.equipment)
	}
	c, _ = c.update(keyRune('h'))
	if c.equipment != 0 {
		t.Fatalf("expected equipment index 0, got %d", c.equipment)
	}
	c, _ = c.update(keyRune('h'))
	if c.equipment != 0 {
		t.Fatal("equipment index should not go negative")
	}
}

func TestCoachSuggestWorkoutFallback(t *testing.T) {
	r := newTestRecords(t)
	coach := ai.NewCoach(ai.NewClient("http://localhost", "", "m"))
	c := newCoachModel(r, coach, testUser)

	msg := c.suggestWorkout()()
	planMsg, ok := msg.(workoutPlanMsg)
	if !ok {
		t.Fatalf("expected workoutPlanMsg, got %T", msg)
	}
	if planMsg.plan.AIGenerated {
		t.Fatal("no api key should produce a fallback plan")
	}
	if len(planMsg.plan.Exercises) == 0 {
		t.Fatal("fallback plan should have exercises")
	}
}

// ============================================================
// App
// ============================================================

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app := newTestApp(t)
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40

	views := []viewState{viewDashboard, viewWorkouts, viewMeals, viewHistory, viewProfile, viewCoach}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newTestApp(t)
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppRolloverMessage(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(rolloverMsg{happened: true})
	app = model.(App)
	if !strings.Contains(app.status, "archived") {
		t.Fatalf("rollover should set status, got %q", app.status)
	}

	app.status = ""
	model, _ = app.Update(rolloverMsg{happened: false})
	app = model.(App)
	if app.status != "" {
		t.Fatal("no-op rollover should not set status")
	}
}

func TestAppInitRunsRollover(t *testing.T) {
	r := newTestRecords(t)
	rollover := store.NewRollover(r, nil)
	coach := ai.NewCoach(ai.NewClient("http://localhost", "", "m"))
	app := NewApp(r, rollover, coach, testUser)

	msg := app.checkRollover()()
	rm, ok := msg.(rolloverMsg)
	if !ok {
		t.Fatalf("expected rolloverMsg, got %T", msg)
	}
	if rm.err != nil {
		t.Fatal(rm.err)
	}
	if !rm.happened {
		t.Fatal("first check should roll over")
	}
}

func TestAppExportPicker(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40
	app.exportPicking = true

	picker := app.renderExportPicker()
	if !strings.Contains(picker, "CSV") || !strings.Contains(picker, "JSON") {
		t.Fatal("export picker should list formats")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
