package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flexr/internal/catalog"
	"github.com/sadopc/flexr/internal/isoweek"
	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/store"
	"github.com/sadopc/flexr/internal/workout"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addRoutine(t *testing.T, s *store.Store, exercise, muscle string, g muscles.Group) *store.RoutineItem {
	t.Helper()
	it, err := s.AddRoutineItem(exercise, muscle, g)
	if err != nil {
		t.Fatalf("add routine item: %v", err)
	}
	return it
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// ============================================================
// Timer model
// ============================================================

func TestTimerStartRequiresRoutine(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s)

	if err := tm.start(); err != errEmptyRoutine {
		t.Fatalf("start on empty routine = %v, want errEmptyRoutine", err)
	}
	if tm.running() {
		t.Fatal("timer should stay stopped")
	}
}

func TestTimerStartStop(t *testing.T) {
	s := newTestStore(t)
	addRoutine(t, s, "Bench Press", "pectoralis_major", muscles.GroupChest)
	addRoutine(t, s, "Squats", "quadriceps", muscles.GroupLegs)

	tm := newTimerModel(s)
	if tm.running() {
		t.Fatal("timer should start stopped")
	}
	if err := tm.start(); err != nil {
		t.Fatal(err)
	}
	if !tm.running() || tm.paused() {
		t.Fatal("timer should be running after start")
	}
	if tm.exercises != 2 {
		t.Fatalf("exercises = %d, want 2", tm.exercises)
	}

	if n, _ := s.CountLogs(); n != 0 {
		t.Fatalf("start should not write a log, found %d", n)
	}

	rec, err := tm.stop("Push Day", "felt good")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Fatal("stop should return the saved log")
	}
	if tm.running() {
		t.Fatal("timer should be stopped")
	}

	logs, err := s.ListLogs(store.LogFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	got := logs[0]
	if got.Name != "Push Day" || got.Notes != "felt good" {
		t.Fatalf("unexpected log: %+v", got)
	}
	if strings.Join(got.Muscles, ",") != "pectoralis_major,quadriceps" {
		t.Fatalf("muscles = %v", got.Muscles)
	}
}

func TestTimerStopWhenStopped(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s)

	rec, err := tm.stop("", "")
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Fatal("stop on stopped timer should return nil")
	}
}

func TestTimerDiscard(t *testing.T) {
	s := newTestStore(t)
	addRoutine(t, s, "Bench Press", "pectoralis_major", muscles.GroupChest)

	tm := newTimerModel(s)
	tm.start()
	tm.discard()

	if tm.running() {
		t.Fatal("discard should stop the timer")
	}
	if n, _ := s.CountLogs(); n != 0 {
		t.Fatalf("discard should not save, found %d logs", n)
	}
}

func TestTimerPauseResume(t *testing.T) {
	s := newTestStore(t)
	addRoutine(t, s, "Bench Press", "pectoralis_major", muscles.GroupChest)

	tm := newTimerModel(s)
	tm.start()

	tm.pause()
	if !tm.paused() {
		t.Fatal("timer should be paused")
	}
	if !tm.running() {
		t.Fatal("paused timer is still 'running' (not stopped)")
	}

	tm.resume()
	if tm.paused() {
		t.Fatal("timer should not be paused after resume")
	}

	tm.toggle()
	if !tm.paused() {
		t.Fatal("toggle should pause")
	}
	tm.toggle()
	if tm.paused() {
		t.Fatal("toggle should resume")
	}
}

func TestTimerPauseWhenNotRunning(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s)

	tm.pause()
	if tm.paused() {
		t.Fatal("should not be paused when stopped")
	}
	tm.toggle()
	if tm.running() {
		t.Fatal("toggle should not start a stopped timer")
	}
}

func TestTimerElapsedExcludesPause(t *testing.T) {
	s := newTestStore(t)
	addRoutine(t, s, "Bench Press", "pectoralis_major", muscles.GroupChest)

	tm := newTimerModel(s)
	tm.start()
	tm.startTime = time.Now().Add(-10 * time.Minute)
	tm.pauseGap = 4 * time.Minute

	el := tm.currentElapsed()
	if el < 6*time.Minute-time.Second || el > 6*time.Minute+time.Second {
		t.Fatalf("elapsed = %v, want ~6m", el)
	}

	tm.tick()
	if tm.elapsed < 6*time.Minute-time.Second {
		t.Fatalf("tick elapsed = %v", tm.elapsed)
	}

	if got := newTimerModel(s).currentElapsed(); got != 0 {
		t.Fatalf("stopped elapsed = %v, want 0", got)
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Second, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Fatalf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := formatClock(90 * time.Second); got != "01:30" {
		t.Fatalf("formatClock(90s) = %q", got)
	}
	if got := formatClock(-time.Second); got != "00:00" {
		t.Fatalf("formatClock(-1s) = %q", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := formatMinutes(0); got != "-" {
		t.Fatalf("formatMinutes(0) = %q", got)
	}
	if got := formatMinutes(45*time.Minute + 20*time.Second); got != "45 min" {
		t.Fatalf("formatMinutes = %q", got)
	}
}

func TestLeadingInt(t *testing.T) {
	tests := map[string]int{"3-4": 3, "4": 4, "12-15": 12, "": 0, "AMRAP": 0}
	for in, want := range tests {
		if got := leadingInt(in); got != want {
			t.Fatalf("leadingInt(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	if viewNames[viewWorkout] != "Workout" || viewNames[viewSettings] != "Settings" {
		t.Fatalf("view names out of order: %v", viewNames)
	}
}

func TestErrorStatus(t *testing.T) {
	msg := errorStatus("load logs", os.ErrNotExist)()
	st, ok := msg.(statusMsg)
	if !ok || !st.isError {
		t.Fatalf("expected error statusMsg, got %#v", msg)
	}
	if !strings.Contains(st.text, "load logs") {
		t.Fatalf("status text = %q", st.text)
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardLoadsWeek(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	if _, err := s.CreateLog(workout.LogRecord{
		Name:        "Push",
		PerformedAt: now,
		Muscles:     []string{"pectoralis_major", "triceps_brachii"},
	}, store.SourceManual); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateLog(workout.LogRecord{
		Name:        "Old Legs",
		PerformedAt: now.AddDate(0, 0, -21),
		Muscles:     []string{"quadriceps"},
	}, store.SourceManual); err != nil {
		t.Fatal(err)
	}

	d := newDashboardModel(s, muscles.Default())
	d, _ = d.update(d.loadData()())

	if len(d.result.Logs) != 1 || d.result.Logs[0].Name != "Push" {
		t.Fatalf("expected only this week's log, got %+v", d.result.Logs)
	}
	if !d.result.Highlighted.Has("chest-pec-major") || !d.result.Highlighted.Has("arm-triceps") {
		t.Fatalf("highlighted = %v", d.result.Highlighted.IDs())
	}
	if d.result.Highlighted.Has("leg-quads") {
		t.Fatal("last month's legs should not be highlighted")
	}
}

func TestDashboardIgnoresStaleWeek(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, muscles.Default())

	other, _ := isoweek.Prev(d.week)
	d, _ = d.update(dashboardDataMsg{
		week:      other,
		result:    workout.Result{Logs: []workout.LogRecord{{Name: "stale"}}},
		highlight: "#000000",
	})
	if len(d.result.Logs) != 0 {
		t.Fatal("data for another week should be ignored")
	}
}

func TestDashboardWeekNavigation(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, muscles.Default())
	d.now = func() time.Time { return time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC) }
	d.week = isoweek.Week{Year: 2026, Week: 5}

	d, cmd := d.update(tea.KeyMsg{Type: tea.KeyLeft})
	if d.week != (isoweek.Week{Year: 2026, Week: 4}) {
		t.Fatalf("left: week = %v", d.week)
	}
	if cmd == nil {
		t.Fatal("changing week should reload")
	}

	d.week = isoweek.Week{Year: 2025, Week: 52}
	d, _ = d.update(tea.KeyMsg{Type: tea.KeyRight})
	if d.week != (isoweek.Week{Year: 2026, Week: 1}) {
		t.Fatalf("right across year: week = %v", d.week)
	}

	d, _ = d.update(runeKey("t"))
	if d.week != (isoweek.Week{Year: 2026, Week: 5}) {
		t.Fatalf("this week: week = %v", d.week)
	}
}

func TestDashboardWeekLabelUpcoming(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, muscles.Default())
	d.now = func() time.Time { return time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC) }

	d.week = isoweek.Week{Year: 2026, Week: 5}
	if !strings.Contains(d.weekLabel(), "(this week)") {
		t.Fatalf("label = %q", d.weekLabel())
	}
	d.week = isoweek.Week{Year: 2026, Week: 6}
	if !strings.Contains(d.weekLabel(), "(upcoming)") {
		t.Fatalf("label = %q", d.weekLabel())
	}
	d.week = isoweek.Week{Year: 2026, Week: 4}
	if l := d.weekLabel(); strings.Contains(l, "(upcoming)") || strings.Contains(l, "(this week)") {
		t.Fatalf("label = %q", l)
	}
}

func TestDashboardDeleteLog(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateLog(workout.LogRecord{Name: "Push", PerformedAt: time.Now()}, store.SourceManual); err != nil {
		t.Fatal(err)
	}

	d := newDashboardModel(s, muscles.Default())
	d, _ = d.update(d.loadData()())

	_, cmd := d.update(runeKey("d"))
	if cmd == nil {
		t.Fatal("delete should return a command")
	}
	if _, ok := cmd().(logsChangedMsg); !ok {
		t.Fatal("delete should report logsChangedMsg")
	}
	if n, _ := s.CountLogs(); n != 0 {
		t.Fatalf("expected 0 logs after delete, got %d", n)
	}
}

func TestDashboardFormsActivate(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, muscles.Default())

	d2, _ := d.update(runeKey("n"))
	if !d2.formActive() || d2.formKind != formLog {
		t.Fatal("n should open the log form")
	}
	d2, _ = d2.update(tea.KeyMsg{Type: tea.KeyEsc})
	if d2.formActive() {
		t.Fatal("esc should close the form")
	}

	d3, _ := d.update(runeKey("g"))
	if d3.formKind != formGoTo {
		t.Fatal("g should open the go-to form")
	}
}

func TestDashboardSaveLog(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, muscles.Default())
	*d.fName = "Legs"
	*d.fDate = "2026-01-20"
	*d.fDuration = "45"
	*d.fMuscles = []string{"quadriceps", "hamstrings"}

	rec, err := d.saveLog()
	if err != nil {
		t.Fatal(err)
	}
	if isoweek.Of(rec.PerformedAt) != (isoweek.Week{Year: 2026, Week: 4}) {
		t.Fatalf("performed at %v", rec.PerformedAt)
	}
	if rec.Duration != 45*time.Minute {
		t.Fatalf("duration = %v", rec.Duration)
	}
}

func TestDashboardLogFormUsesUTCDay(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, muscles.Default())
	// 08:30 on Jan 27 at UTC+10 is still Jan 26 in UTC.
	now := time.Date(2026, 1, 27, 8, 30, 0, 0, time.FixedZone("UTC+10", 10*3600))
	d.now = func() time.Time { return now }

	d, _ = d.showLogForm()
	if *d.fDate != "2026-01-26" {
		t.Fatalf("default date = %q, want the UTC day", *d.fDate)
	}

	*d.fName = "Early"
	*d.fMuscles = []string{"quadriceps"}
	rec, err := d.saveLog()
	if err != nil {
		t.Fatal(err)
	}
	if !rec.PerformedAt.Equal(now) {
		t.Fatalf("performed at %v, want %v", rec.PerformedAt, now.UTC())
	}
}

func TestValidators(t *testing.T) {
	if validateDate("2026-02-30") == nil {
		t.Fatal("expected invalid date")
	}
	if validateDate("2026-01-27") != nil {
		t.Fatal("expected valid date")
	}
	if validateMinutes("abc") == nil || validateMinutes("-5") == nil {
		t.Fatal("expected invalid minutes")
	}
	if validateRequired("  ") == nil {
		t.Fatal("expected required error")
	}
}

func TestDashboardView(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, muscles.Default())
	d.setSize(120, 40)
	d, _ = d.update(d.loadData()())

	if !strings.Contains(d.view(), "Week") {
		t.Fatal("dashboard should show the week label")
	}
}

// ============================================================
// Anatomy
// ============================================================

func TestRenderLegend(t *testing.T) {
	agg := workout.NewAggregator(muscles.Default())
	w := isoweek.Week{Year: 2026, Week: 5}

	empty, _ := agg.Aggregate(nil, w)
	if got := renderLegend(empty, colorPrimary); !strings.Contains(got, "No muscles trained this week") {
		t.Fatalf("empty legend = %q", got)
	}

	logs := []workout.LogRecord{{
		PerformedAt: time.Date(2026, 1, 27, 10, 0, 0, 0, time.UTC),
		Muscles:     []string{"pectoralis_major", "biceps_brachii"},
	}}
	res, _ := agg.Aggregate(logs, w)
	if got := renderLegend(res, colorPrimary); !strings.Contains(got, "Trained (2)") {
		t.Fatalf("legend = %q", got)
	}
}

func TestRenderAnatomyListsTrainedMuscles(t *testing.T) {
	m := muscles.Default()
	res, _ := workout.NewAggregator(m).Aggregate([]workout.LogRecord{{
		PerformedAt: time.Date(2026, 1, 27, 10, 0, 0, 0, time.UTC),
		Muscles:     []string{"quadriceps"},
	}}, isoweek.Week{Year: 2026, Week: 5})

	out := renderAnatomy(res, m, lipgloss.Color("#FF6B9D"))
	if !strings.Contains(out, "Quadriceps") {
		t.Fatal("anatomy should list trained muscles")
	}
	if !strings.Contains(out, "Front") || !strings.Contains(out, "Back") {
		t.Fatal("anatomy should render both figures")
	}
}

func TestRenderAnatomySharedDisplayID(t *testing.T) {
	m := muscles.MustNewMapping([]muscles.Muscle{
		{Key: "lats", Name: "Lats", DisplayID: "back-lats", Group: muscles.GroupBack},
		{Key: "latissimus_dorsi", Name: "Latissimus Dorsi", DisplayID: "back-lats", Group: muscles.GroupBack},
	})
	res, _ := workout.NewAggregator(m).Aggregate([]workout.LogRecord{{
		PerformedAt: time.Date(2026, 1, 27, 10, 0, 0, 0, time.UTC),
		Muscles:     []string{"lats", "latissimus_dorsi"},
	}}, isoweek.Week{Year: 2026, Week: 5})

	out := renderAnatomy(res, m, lipgloss.Color("#FF6B9D"))
	if strings.Count(out, "Lats") != 1 {
		t.Fatalf("shared region should be listed once:\n%s", out)
	}
	if strings.Contains(out, "Latissimus Dorsi") {
		t.Fatal("the region should be named after its first muscle")
	}
}

// ============================================================
// Muscles browser
// ============================================================

func TestBrowseDrillDownAndAdd(t *testing.T) {
	s := newTestStore(t)
	b := newMusclesModel(s, muscles.Default(), catalog.Default())
	b.setSize(120, 40)

	if b.level != levelGroups {
		t.Fatal("browser should start at groups")
	}
	if cmd := b.addSelected(); cmd != nil {
		t.Fatal("add should be a no-op at group level")
	}

	b, _ = b.update(tea.KeyMsg{Type: tea.KeyEnter})
	if b.level != levelMuscles {
		t.Fatalf("level = %d, want muscles", b.level)
	}
	b, _ = b.update(tea.KeyMsg{Type: tea.KeyEnter})
	if b.level != levelExercises {
		t.Fatalf("level = %d, want exercises", b.level)
	}

	mu, _ := b.selectedMuscle()
	ex := b.exercises()[0]

	_, cmd := b.update(runeKey("a"))
	if cmd == nil {
		t.Fatal("add should return a command")
	}
	msg, ok := cmd().(routineChangedMsg)
	if !ok {
		t.Fatal("add should report routineChangedMsg")
	}
	if !strings.Contains(msg.note, ex.Name) {
		t.Fatalf("note = %q", msg.note)
	}

	items, _ := s.ListRoutine()
	if len(items) != 1 || items[0].Exercise != ex.Name || items[0].Muscle != mu.Key {
		t.Fatalf("routine = %+v", items)
	}

	b, _ = b.update(b.refresh()())
	if !b.inRoutine[routineKey(ex.Name, mu.Key)] {
		t.Fatal("added exercise should be marked in routine")
	}

	b, _ = b.update(tea.KeyMsg{Type: tea.KeyEnter})
	if b.level != levelDetail {
		t.Fatal("enter on an exercise should show its detail")
	}
	if b.view() == "" {
		t.Fatal("detail view rendered empty")
	}

	b, _ = b.update(tea.KeyMsg{Type: tea.KeyEsc})
	b, _ = b.update(tea.KeyMsg{Type: tea.KeyEsc})
	if b.level != levelMuscles {
		t.Fatalf("esc twice should return to muscles, level = %d", b.level)
	}
}

func TestBrowseDetailAlsoTrains(t *testing.T) {
	c, err := catalog.Parse([]byte(`{
		"exercises": {
			"quadriceps": [{"name": "Leg Extensions", "sets": "3", "reps": "12", "difficulty": "beginner"}],
			"quadriceps_upper": [{"name": "Leg Extensions", "sets": "3", "reps": "12", "difficulty": "beginner"}]
		},
		"details": {}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	m := muscles.Default()
	b := newMusclesModel(newTestStore(t), m, c)
	b.setSize(120, 60)

	for i, gi := range muscles.Groups() {
		if gi.Key == muscles.GroupLegs {
			b.groupCursor = i
		}
	}
	for i, mu := range m.InGroup(muscles.GroupLegs) {
		if mu.Key == "quadriceps" {
			b.muscleCursor = i
		}
	}
	b.level = levelDetail

	want := []string{m.DisplayName("quadriceps_upper")}
	if got := b.alsoTrains("Leg Extensions"); len(got) != 1 || got[0] != want[0] {
		t.Fatalf("alsoTrains = %v, want %v", got, want)
	}
	out := b.view()
	if !strings.Contains(out, "Also for") {
		t.Fatal("detail should list other muscles")
	}
	if !strings.Contains(out, "general advice") {
		t.Fatal("detail without a written guide should say so")
	}
}

// ============================================================
// Workout session
// ============================================================

func TestSessionCompleteSetAndAdvance(t *testing.T) {
	s := newTestStore(t)
	first := addRoutine(t, s, "Bench Press", "pectoralis_major", muscles.GroupChest)
	addRoutine(t, s, "Squats", "quadriceps", muscles.GroupLegs)

	m := newSessionModel(s, muscles.Default(), catalog.Default())
	m, _ = m.update(m.refresh()())
	if len(m.items) != 2 {
		t.Fatalf("expected 2 routine items, got %d", len(m.items))
	}

	// Sets don't count before the workout starts.
	m, _ = m.completeSet()
	if m.sets[first.ID] != 0 {
		t.Fatal("completeSet should be ignored while stopped")
	}

	m, cmd := m.update(runeKey("s"))
	if !m.isRunning() {
		t.Fatal("s should start the workout")
	}
	if _, ok := cmd().(sessionStartedMsg); !ok {
		t.Fatal("start should report sessionStartedMsg")
	}

	target := m.targetSets(m.items[0])
	if target != 4 {
		t.Fatalf("bench press target = %d, want 4", target)
	}

	m, _ = m.completeSet()
	if m.sets[first.ID] != 1 {
		t.Fatalf("sets = %d, want 1", m.sets[first.ID])
	}
	if !m.resting || m.remaining != m.restDuration {
		t.Fatal("completing a set should start the rest countdown")
	}
	if m.cursor != 0 {
		t.Fatal("cursor should stay until the target is reached")
	}

	for i := 1; i < target; i++ {
		m, _ = m.completeSet()
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1 after reaching target", m.cursor)
	}
}

func TestSessionStartEmptyRoutine(t *testing.T) {
	s := newTestStore(t)
	m := newSessionModel(s, muscles.Default(), catalog.Default())

	m, cmd := m.update(runeKey("s"))
	if m.isRunning() {
		t.Fatal("empty routine should not start")
	}
	st, ok := cmd().(statusMsg)
	if !ok || !st.isError {
		t.Fatal("empty routine should report an error status")
	}
}

func TestSessionRestTick(t *testing.T) {
	s := newTestStore(t)
	m := newSessionModel(s, muscles.Default(), catalog.Default())

	m.resting = true
	m.restEnd = time.Now().Add(30 * time.Second)
	m, cmd := m.update(tickMsg(time.Now()))
	if !m.resting || cmd != nil {
		t.Fatal("rest should continue before the deadline")
	}
	if m.remaining <= 0 || m.remaining > 30*time.Second {
		t.Fatalf("remaining = %v", m.remaining)
	}

	m.restEnd = time.Now().Add(-time.Second)
	m, cmd = m.update(tickMsg(time.Now()))
	if m.resting {
		t.Fatal("rest should end after the deadline")
	}
	if cmd == nil {
		t.Fatal("rest end should notify")
	}
}

func TestSessionSkipRest(t *testing.T) {
	s := newTestStore(t)
	m := newSessionModel(s, muscles.Default(), catalog.Default())

	m, _ = m.update(runeKey("r"))
	if !m.resting {
		t.Fatal("r should start resting")
	}
	m, _ = m.update(runeKey("r"))
	if m.resting {
		t.Fatal("r again should skip the rest")
	}
}

func TestSessionDiscard(t *testing.T) {
	s := newTestStore(t)
	addRoutine(t, s, "Bench Press", "pectoralis_major", muscles.GroupChest)

	m := newSessionModel(s, muscles.Default(), catalog.Default())
	m, _ = m.update(m.refresh()())
	m, _ = m.startSession()

	m, cmd := m.update(runeKey("c"))
	if m.isRunning() {
		t.Fatal("c should discard a running workout")
	}
	if msg, ok := cmd().(sessionStoppedMsg); !ok || msg.log != nil {
		t.Fatal("discard should report sessionStoppedMsg without a log")
	}
	if items, _ := s.ListRoutine(); len(items) != 1 {
		t.Fatal("discard should keep the routine")
	}
}

func TestSessionFinishFormCancelResumes(t *testing.T) {
	s := newTestStore(t)
	addRoutine(t, s, "Bench Press", "pectoralis_major", muscles.GroupChest)

	m := newSessionModel(s, muscles.Default(), catalog.Default())
	m, _ = m.startSession()

	m, _ = m.update(runeKey("x"))
	if !m.formActive || !m.isPaused() {
		t.Fatal("x should pause and open the finish form")
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive || m.isPaused() {
		t.Fatal("esc should close the form and resume")
	}
}

func TestSessionRemoveAndClear(t *testing.T) {
	s := newTestStore(t)
	addRoutine(t, s, "Bench Press", "pectoralis_major", muscles.GroupChest)
	addRoutine(t, s, "Squats", "quadriceps", muscles.GroupLegs)

	m := newSessionModel(s, muscles.Default(), catalog.Default())
	m, _ = m.update(m.refresh()())

	_, cmd := m.update(runeKey("d"))
	cmd()
	if items, _ := s.ListRoutine(); len(items) != 1 || items[0].Exercise != "Squats" {
		t.Fatalf("after remove: %+v", items)
	}

	_, cmd = m.update(runeKey("c"))
	cmd()
	if items, _ := s.ListRoutine(); len(items) != 0 {
		t.Fatal("clear should empty the routine")
	}
}

// ============================================================
// Reports
// ============================================================

func TestReportsRefreshAndModes(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	s.CreateLog(workout.LogRecord{Name: "A", PerformedAt: now, Muscles: []string{"pectoralis_major"}}, store.SourceManual)
	s.CreateLog(workout.LogRecord{Name: "B", PerformedAt: now.AddDate(0, 0, -7), Muscles: []string{"quadriceps"}}, store.SourceManual)

	r := newReportsModel(s, muscles.Default())
	r.setSize(120, 40)
	r, _ = r.update(r.refresh()())

	if len(r.weeks) != s.ReportWeeks() || len(r.counts) != len(r.weeks) {
		t.Fatalf("weeks = %d, counts = %d", len(r.weeks), len(r.counts))
	}
	last := len(r.counts) - 1
	if r.counts[last] != 1 || r.counts[last-1] != 1 {
		t.Fatalf("counts = %v", r.counts)
	}
	if r.result.GroupCounts[muscles.GroupChest] != 1 {
		t.Fatalf("group counts = %v", r.result.GroupCounts)
	}
	if r.chart.View() == "" {
		t.Fatal("chart should render")
	}

	r, _ = r.update(runeKey("m"))
	if r.mode != reportTrend {
		t.Fatal("m should switch to the trend chart")
	}
	if r.view() == "" {
		t.Fatal("trend view rendered empty")
	}
	r, _ = r.update(runeKey("m"))
	if r.mode != reportGroups {
		t.Fatal("m should switch back to groups")
	}
}

func TestReportsWeekStepError(t *testing.T) {
	s := newTestStore(t)
	r := newReportsModel(s, muscles.Default())
	r.week = isoweek.Week{Year: 2026, Week: 4}

	r, cmd := r.update(tea.KeyMsg{Type: tea.KeyLeft})
	if r.week != (isoweek.Week{Year: 2026, Week: 3}) || cmd == nil {
		t.Fatalf("left: week = %v", r.week)
	}

	bad := isoweek.Week{Year: 2026, Week: 99}
	r.week = bad
	r, cmd = r.update(tea.KeyMsg{Type: tea.KeyRight})
	if r.week != bad {
		t.Fatalf("week changed to %v on error", r.week)
	}
	if cmd == nil {
		t.Fatal("expected an error status")
	}
	if st, ok := cmd().(statusMsg); !ok || !st.isError || !strings.Contains(st.text, "change week") {
		t.Fatalf("msg = %#v", cmd())
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsSave(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)
	*sm.weightUnit = "lb"
	*sm.highlightColor = "#00ff00"
	*sm.restSeconds = "120"
	*sm.reportWeeks = "12"

	if err := sm.saveSettings(); err != nil {
		t.Fatal(err)
	}
	if got := s.SettingOr(store.SettingHighlightColor, ""); got != "#00FF00" {
		t.Fatalf("highlight = %q", got)
	}
	if s.RestDuration() != 2*time.Minute || s.ReportWeeks() != 12 {
		t.Fatalf("rest = %v, weeks = %d", s.RestDuration(), s.ReportWeeks())
	}
}

func TestSettingsSaveBodyStats(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)
	*sm.weightUnit = "kg"
	*sm.weight = "80.5"
	*sm.bodyFat = ""

	if err := sm.saveBodyStats(); err != nil {
		t.Fatal(err)
	}
	b, err := s.LatestBodyStats()
	if err != nil || b == nil {
		t.Fatalf("latest body stats: %v %v", b, err)
	}
	if b.Weight != 80.5 || b.BodyFat != nil {
		t.Fatalf("unexpected body stats: %+v", b)
	}

	sm, _ = sm.update(sm.refresh()())
	if len(sm.history) != 1 {
		t.Fatalf("history = %d, want 1", len(sm.history))
	}
}

func TestSettingsDeleteBodyStats(t *testing.T) {
	s := newTestStore(t)
	older, _ := s.RecordBodyStats(80, "kg", nil, time.Now().Add(-48*time.Hour))
	if _, err := s.RecordBodyStats(79, "kg", nil, time.Now()); err != nil {
		t.Fatal(err)
	}

	sm := newSettingsModel(s)
	sm, _ = sm.update(sm.refresh()())
	sm, _ = sm.update(tea.KeyMsg{Type: tea.KeyDown})
	if sm.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", sm.cursor)
	}

	_, cmd := sm.update(runeKey("d"))
	if cmd == nil {
		t.Fatal("delete should return a command")
	}
	if _, ok := cmd().(logsChangedMsg); !ok {
		t.Fatal("delete should report logsChangedMsg")
	}
	left, _ := s.ListBodyStats(0)
	if len(left) != 1 || left[0].ID == older.ID {
		t.Fatalf("remaining = %+v", left)
	}

	sm, cmd = sm.update(logsChangedMsg{})
	sm, _ = sm.update(cmd())
	if len(sm.history) != 1 || sm.cursor != 0 {
		t.Fatalf("history = %d, cursor = %d", len(sm.history), sm.cursor)
	}
}

func TestSettingsValidators(t *testing.T) {
	if validateColor("#FF6B9D") != nil || validateColor("red") == nil || validateColor("#GGGGGG") == nil {
		t.Fatal("color validation wrong")
	}
	if validatePositiveInt("0") == nil || validatePositiveInt("90") != nil {
		t.Fatal("positive int validation wrong")
	}
	if validateWeight("0") == nil || validateWeight("72.3") != nil {
		t.Fatal("weight validation wrong")
	}
	if validateBodyFat("") != nil || validateBodyFat("101") == nil {
		t.Fatal("body fat validation wrong")
	}
}

func TestSettingsFormKeys(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)

	sm2, _ := sm.update(tea.KeyMsg{Type: tea.KeyEnter})
	if sm2.formKind != settingsFormPrefs {
		t.Fatal("enter should open the settings form")
	}
	if *sm2.restSeconds != "90" {
		t.Fatalf("rest prefill = %q", *sm2.restSeconds)
	}

	sm3, _ := sm.update(runeKey("b"))
	if sm3.formKind != settingsFormBody {
		t.Fatal("b should open the body stats form")
	}
	sm3, _ = sm3.update(tea.KeyMsg{Type: tea.KeyEsc})
	if sm3.formActive() {
		t.Fatal("esc should close the form")
	}
}

func TestFormatSettingValue(t *testing.T) {
	if got := formatSettingValue(store.SettingRestSeconds, "90"); got != "01:30" {
		t.Fatalf("rest = %q", got)
	}
	if got := formatSettingValue(store.SettingReportWeeks, "8"); got != "8 weeks" {
		t.Fatalf("weeks = %q", got)
	}
}

// ============================================================
// App model
// ============================================================

func newTestApp(t *testing.T) (App, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	app := NewApp(s, muscles.Default(), catalog.Default())
	app.width = 120
	app.height = 40
	return app, s
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp || app.exportPicking {
		t.Fatal("help and export picker should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t)

	for i := range viewNames {
		app.activeView = viewState(i)
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", i)
		}
	}
}

func TestAppTabCycles(t *testing.T) {
	app, _ := newTestApp(t)

	for i := 1; i <= len(viewNames); i++ {
		model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
		app = model.(App)
		if want := viewState(i % len(viewNames)); app.activeView != want {
			t.Fatalf("after %d tabs view = %d, want %d", i, app.activeView, want)
		}
	}

	model, _ := app.Update(runeKey("3"))
	if model.(App).activeView != viewWorkout {
		t.Fatal("3 should open the workout view")
	}
}

func TestAppRoutesDataToOwner(t *testing.T) {
	app, s := newTestApp(t)
	addRoutine(t, s, "Bench Press", "pectoralis_major", muscles.GroupChest)

	app.activeView = viewReports
	model, _ := app.Update(app.session.refresh()())
	app = model.(App)
	if len(app.session.items) != 1 {
		t.Fatal("routine data should reach the session while another view is active")
	}
}

func TestAppRoutineChangedSetsStatus(t *testing.T) {
	app, _ := newTestApp(t)

	model, cmd := app.Update(routineChangedMsg{note: "Added Dips to routine"})
	app = model.(App)
	if app.status != "Added Dips to routine" || app.statusIsError {
		t.Fatalf("status = %q", app.status)
	}
	if cmd == nil {
		t.Fatal("routine change should refresh dependent views")
	}
}

func TestAppSessionStoppedStatus(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(sessionStoppedMsg{log: &workout.LogRecord{Name: "Push", Duration: 50 * time.Minute}})
	app = model.(App)
	if !strings.Contains(app.status, "Push") || !strings.Contains(app.status, "50 min") {
		t.Fatalf("status = %q", app.status)
	}

	model, _ = app.Update(sessionStoppedMsg{})
	if model.(App).status != "Workout discarded" {
		t.Fatalf("status = %q", model.(App).status)
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t)

	header := app.renderHeader()
	if !strings.Contains(header, "flexr") {
		t.Fatal("header should contain the app title")
	}
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppRenderFooterStatus(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(statusMsg{text: "something broke", isError: true})
	app = model.(App)
	if !app.statusIsError {
		t.Fatal("error status should be flagged")
	}
	if !strings.Contains(app.renderFooter(), "something broke") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, muscles.Default(), catalog.Default())
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppExportPicker(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(runeKey("e"))
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	if !strings.Contains(app.View(), "JSON") {
		t.Fatal("picker should list formats")
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(App)
	if app.exportCursor != 1 {
		t.Fatalf("cursor = %d, want 1", app.exportCursor)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(App).exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestExportPath(t *testing.T) {
	day := time.Date(2026, 1, 27, 9, 0, 0, 0, time.UTC)
	if got := exportPath("/tmp", 0, day); got != filepath.Join("/tmp", "flexr-export-2026-01-27.csv") {
		t.Fatalf("csv path = %q", got)
	}
	if got := exportPath("/tmp", 1, day); got != filepath.Join("/tmp", "flexr-export-2026-01-27.json") {
		t.Fatalf("json path = %q", got)
	}
}

func TestAppDoExport(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	app, s := newTestApp(t)
	if _, err := s.CreateLog(workout.LogRecord{Name: "Push", PerformedAt: time.Now(), Muscles: []string{"pectoralis_major"}}, store.SourceManual); err != nil {
		t.Fatal(err)
	}

	msg := app.doExport(1)()
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %#v", msg)
	}
	if filepath.Dir(done.path) != home {
		t.Fatalf("export written to %q, want under %q", done.path, home)
	}
	data, err := os.ReadFile(done.path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "pectoralis_major") {
		t.Fatal("export should contain the log's muscles")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
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
// Styles (smoke test, just verify they don't panic)
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
		{"timer", func() string { return timerStyle.Render("test") }},
		{"timerRunning", func() string { return timerRunningStyle.Render("test") }},
		{"timerPaused", func() string { return timerPausedStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"secondary", func() string { return secondaryStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
		{"group", func() string { return groupStyle(muscles.GroupLegs).Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
