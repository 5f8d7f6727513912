package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flexr/internal/isoweek"
	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/store"
	"github.com/sadopc/flexr/internal/workout"
)

type dashboardForm int

const (
	formNone dashboardForm = iota
	formLog
	formGoTo
	formNotes
)

type dashboardModel struct {
	store  *store.Store
	agg    *workout.Aggregator
	width  int
	height int
	now    func() time.Time

	week      isoweek.Week
	result    workout.Result
	body      *store.BodyStats
	highlight lipgloss.Color
	cursor    int

	formKind  dashboardForm
	form      *huh.Form
	editingID string

	// Form values as pointers (survive value copies)
	fName     *string
	fDate     *string
	fMuscles  *[]string
	fDuration *string
	fNotes    *string
}

func newDashboardModel(s *store.Store, m *muscles.Mapping) dashboardModel {
	name, date, dur, notes := "", "", "", ""
	var ms []string
	return dashboardModel{
		store:     s,
		agg:       workout.NewAggregator(m),
		now:       time.Now,
		week:      isoweek.Of(time.Now()),
		highlight: colorPrimary,
		fName:     &name,
		fDate:     &date,
		fMuscles:  &ms,
		fDuration: &dur,
		fNotes:    &notes,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) formActive() bool { return d.formKind != formNone }

type dashboardDataMsg struct {
	week      isoweek.Week
	result    workout.Result
	body      *store.BodyStats
	highlight string
}

func (d dashboardModel) loadData() tea.Cmd {
	week := d.week
	return func() tea.Msg {
		start, end, err := isoweek.Range(week)
		if err != nil {
			return errorStatus("load week", err)()
		}
		to := end.Add(time.Nanosecond)
		logs, err := d.store.ListLogs(store.LogFilter{From: &start, To: &to})
		if err != nil {
			return errorStatus("load logs", err)()
		}
		res, err := d.agg.Aggregate(logs, week)
		if err != nil {
			return errorStatus("aggregate week", err)()
		}
		body, err := d.store.LatestBodyStats()
		if err != nil {
			return errorStatus("load body stats", err)()
		}
		return dashboardDataMsg{
			week:      week,
			result:    res,
			body:      body,
			highlight: d.store.SettingOr(store.SettingHighlightColor, string(colorPrimary)),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive() && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		if msg.week != d.week {
			return d, nil
		}
		d.result = msg.result
		d.body = msg.body
		d.highlight = lipgloss.Color(msg.highlight)
		if d.cursor >= len(d.result.Logs) {
			d.cursor = max(0, len(d.result.Logs)-1)
		}
		return d, nil

	case logsChangedMsg:
		return d, d.loadData()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			return d.stepWeek(isoweek.Prev)
		case key.Matches(msg, keys.Right):
			return d.stepWeek(isoweek.Next)
		case key.Matches(msg, keys.ThisWeek):
			return d.showWeek(isoweek.Of(d.now()))
		case key.Matches(msg, keys.GoTo):
			return d.showGoToForm()
		case key.Matches(msg, keys.New):
			return d.showLogForm()
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.result.Logs)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Edit):
			if len(d.result.Logs) > 0 {
				return d.showNotesForm(d.result.Logs[d.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if len(d.result.Logs) > 0 {
				return d, d.deleteLog(d.result.Logs[d.cursor].ID)
			}
		}
	}
	return d, nil
}

func (d dashboardModel) stepWeek(step func(isoweek.Week) (isoweek.Week, error)) (dashboardModel, tea.Cmd) {
	w, err := step(d.week)
	if err != nil {
		return d, errorStatus("change week", err)
	}
	return d.showWeek(w)
}

func (d dashboardModel) showWeek(w isoweek.Week) (dashboardModel, tea.Cmd) {
	d.week = w
	d.cursor = 0
	return d, d.loadData()
}

func (d dashboardModel) deleteLog(id string) tea.Cmd {
	return func() tea.Msg {
		if err := d.store.DeleteLog(id); err != nil {
			return errorStatus("delete log", err)()
		}
		return logsChangedMsg{}
	}
}

// --- Forms ---

func validateDate(s string) error {
	_, err := isoweek.ParseDate(strings.TrimSpace(s))
	return err
}

func validateMinutes(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter whole minutes")
	}
	return nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func (d dashboardModel) muscleOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, gi := range muscles.Groups() {
		for _, mu := range d.agg.Mapping().InGroup(gi.Key) {
			opts = append(opts, huh.NewOption(gi.Title+" · "+mu.Name, mu.Key))
		}
	}
	return opts
}

func (d dashboardModel) showLogForm() (dashboardModel, tea.Cmd) {
	*d.fName = ""
	*d.fDate = d.today().Format(time.DateOnly)
	*d.fMuscles = nil
	*d.fDuration = ""
	*d.fNotes = ""
	d.formKind = formLog

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Workout name").Value(d.fName).Validate(validateRequired),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(d.fDate).Validate(validateDate),
			huh.NewInput().Title("Duration (min)").Value(d.fDuration).Validate(validateMinutes),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Muscles trained").
				Options(d.muscleOptions()...).
				Value(d.fMuscles).
				Height(12),
		),
		huh.NewGroup(
			huh.NewText().Title("Notes").Value(d.fNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return d, d.form.Init()
}

func (d dashboardModel) showGoToForm() (dashboardModel, tea.Cmd) {
	start, _ := isoweek.Start(d.week)
	*d.fDate = start.Format(time.DateOnly)
	d.formKind = formGoTo

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Show week containing (YYYY-MM-DD)").Value(d.fDate).Validate(validateDate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return d, d.form.Init()
}

func (d dashboardModel) showNotesForm(l workout.LogRecord) (dashboardModel, tea.Cmd) {
	*d.fNotes = l.Notes
	d.editingID = l.ID
	d.formKind = formNotes

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Notes for " + l.Name).Value(d.fNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formKind = formNone
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State != huh.StateCompleted {
		return d, cmd
	}

	kind := d.formKind
	d.formKind = formNone
	d.form = nil

	switch kind {
	case formGoTo:
		date, err := isoweek.ParseDate(strings.TrimSpace(*d.fDate))
		if err != nil {
			return d, errorStatus("go to date", err)
		}
		return d.showWeek(isoweek.Of(date))

	case formNotes:
		id, notes := d.editingID, strings.TrimSpace(*d.fNotes)
		return d, func() tea.Msg {
			if err := d.store.UpdateLogNotes(id, notes); err != nil {
				return errorStatus("update notes", err)()
			}
			return logsChangedMsg{}
		}

	case formLog:
		rec, err := d.saveLog()
		if err != nil {
			return d, errorStatus("log workout", err)
		}
		var load tea.Cmd
		d, load = d.showWeek(isoweek.Of(rec.PerformedAt))
		return d, tea.Batch(load, infoStatus("Logged "+rec.Name))
	}
	return d, nil
}

// today is midnight of the current UTC day, the calendar weeks are keyed on.
func (d dashboardModel) today() time.Time {
	now := d.now().UTC()
	t, err := isoweek.FromDate(now.Year(), now.Month(), now.Day())
	if err != nil {
		return now.Truncate(24 * time.Hour)
	}
	return t
}

func (d dashboardModel) saveLog() (*workout.LogRecord, error) {
	date, err := isoweek.ParseDate(strings.TrimSpace(*d.fDate))
	if err != nil {
		return nil, err
	}
	performed := date.Add(12 * time.Hour)
	if date.Equal(d.today()) {
		performed = d.now().UTC()
	}
	var dur time.Duration
	if s := strings.TrimSpace(*d.fDuration); s != "" {
		mins, _ := strconv.Atoi(s)
		dur = time.Duration(mins) * time.Minute
	}
	return d.store.CreateLog(workout.LogRecord{
		Name:        strings.TrimSpace(*d.fName),
		PerformedAt: performed,
		Muscles:     *d.fMuscles,
		Notes:       strings.TrimSpace(*d.fNotes),
		Duration:    dur,
	}, store.SourceManual)
}

// --- View ---

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	if d.formActive() && d.form != nil {
		title := map[dashboardForm]string{
			formLog:   "Log Workout",
			formGoTo:  "Go To Date",
			formNotes: "Edit Notes",
		}[d.formKind]
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", d.form.View()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderWeekPanel(w),
		d.renderLogsPanel(w),
		d.renderBodyPanel(w),
	)
}

func (d dashboardModel) weekLabel() string {
	start, err := isoweek.Start(d.week)
	if err != nil {
		return d.week.String()
	}
	label := fmt.Sprintf("Week %d, %d  %s", d.week.Week, d.week.Year, isoweek.FormatRange(start))
	switch current := isoweek.Of(d.now()); {
	case d.week == current:
		label += "  (this week)"
	case current.Before(d.week):
		label += "  (upcoming)"
	}
	return label
}

func (d dashboardModel) renderWeekPanel(w int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(d.weekLabel()),
		mutedStyle.Render("   ←/→ week  t today  g go to"),
	)
	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		renderAnatomy(d.result, d.agg.Mapping(), d.highlight),
		"",
		renderLegend(d.result, d.highlight),
	)
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderLogsPanel(w int) string {
	title := titleStyle.Render(fmt.Sprintf("Workouts (%d)", len(d.result.Logs)))
	if len(d.result.Logs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No workouts this week. Press n to log one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for i, l := range d.result.Logs {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		when := l.PerformedAt.Local().Format("Mon Jan 2")
		row := style.Render(fmt.Sprintf("%s%-11s %-24s", cursor, when, l.Name)) +
			mutedStyle.Render(fmt.Sprintf(" %2d muscles  %s", len(l.Muscles), formatMinutes(l.Duration)))
		if l.Notes != "" {
			row += secondaryStyle.Render("  " + l.Notes)
		}
		rows = append(rows, row)
	}
	rows = append(rows, "", mutedStyle.Render("  n: log  enter: notes  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderBodyPanel(w int) string {
	if d.body == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("No body stats yet. Record them in Settings with b."))
	}
	parts := []string{
		titleStyle.Render("Body"),
		highlightStyle.Render(fmt.Sprintf("%.1f %s", d.body.Weight, d.body.Unit)),
	}
	if d.body.BodyFat != nil {
		parts = append(parts, highlightStyle.Render(fmt.Sprintf("%.1f%% body fat", *d.body.BodyFat)))
	}
	parts = append(parts, mutedStyle.Render("updated "+d.body.RecordedAt.Local().Format("Jan 2, 2006")))
	return panelStyle.Width(w).Render(strings.Join(parts, "   "))
}
