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

	"github.com/sadopc/flexr/internal/catalog"
	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/store"
)

// sessionModel is the Workout view: the routine, the session timer, and a
// rest countdown between sets.
type sessionModel struct {
	store   *store.Store
	mapping *muscles.Mapping
	catalog *catalog.Catalog
	width   int
	height  int

	timer  timerModel
	items  []store.RoutineItem
	cursor int
	sets   map[int64]int

	restDuration time.Duration
	resting      bool
	restEnd      time.Time
	remaining    time.Duration

	formActive bool
	form       *huh.Form
	formName   *string
	formNotes  *string
}

func newSessionModel(s *store.Store, mp *muscles.Mapping, c *catalog.Catalog) sessionModel {
	name, notes := "", ""
	return sessionModel{
		store:        s,
		mapping:      mp,
		catalog:      c,
		timer:        newTimerModel(s),
		sets:         make(map[int64]int),
		restDuration: s.RestDuration(),
		formName:     &name,
		formNotes:    &notes,
	}
}

func (m *sessionModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m sessionModel) isRunning() bool { return m.timer.running() }
func (m sessionModel) isPaused() bool  { return m.timer.paused() }
func (m sessionModel) elapsed() time.Duration {
	return m.timer.currentElapsed()
}

type routineDataMsg struct {
	items []store.RoutineItem
	rest  time.Duration
}

func (m sessionModel) refresh() tea.Cmd {
	return func() tea.Msg {
		items, err := m.store.ListRoutine()
		if err != nil {
			return errorStatus("load routine", err)()
		}
		return routineDataMsg{items: items, rest: m.store.RestDuration()}
	}
}

func (m sessionModel) update(msg tea.Msg) (sessionModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case routineDataMsg:
		m.items = msg.items
		m.restDuration = msg.rest
		if m.cursor >= len(m.items) {
			m.cursor = max(0, len(m.items)-1)
		}
		return m, nil

	case routineChangedMsg:
		return m, m.refresh()

	case tickMsg:
		m.timer.tick()
		if m.resting {
			m.remaining = time.Until(m.restEnd)
			if m.remaining <= 0 {
				m.resting = false
				m.remaining = 0
				return m, tea.Batch(
					func() tea.Msg { return restDoneMsg{} },
					infoStatus("Rest over, next set! \a"),
				)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Start):
			return m.startSession()
		case key.Matches(msg, keys.Pause):
			m.timer.toggle()
		case key.Matches(msg, keys.Enter):
			return m.completeSet()
		case key.Matches(msg, keys.Rest):
			if m.resting {
				m.resting = false
				m.remaining = 0
				return m, nil
			}
			m = m.startRest()
		case key.Matches(msg, keys.Stop):
			if m.timer.running() {
				return m.showFinishForm()
			}
		case key.Matches(msg, keys.Delete):
			if len(m.items) > 0 && !m.timer.running() {
				id := m.items[m.cursor].ID
				return m, m.removeItem(id)
			}
		case key.Matches(msg, keys.Clear):
			if m.timer.running() {
				m.timer.discard()
				m.resting = false
				m.sets = make(map[int64]int)
				return m, func() tea.Msg { return sessionStoppedMsg{} }
			}
			if len(m.items) > 0 {
				return m, m.clearRoutine()
			}
		}
	}
	return m, nil
}

func (m sessionModel) startSession() (sessionModel, tea.Cmd) {
	if m.timer.running() {
		return m, nil
	}
	if err := m.timer.start(); err != nil {
		return m, errorStatus("start workout", err)
	}
	m.sets = make(map[int64]int)
	m.resting = false
	return m, func() tea.Msg { return sessionStartedMsg{} }
}

func (m sessionModel) startRest() sessionModel {
	m.resting = true
	m.remaining = m.restDuration
	m.restEnd = time.Now().Add(m.restDuration)
	return m
}

// completeSet records one set of the selected exercise and starts resting.
func (m sessionModel) completeSet() (sessionModel, tea.Cmd) {
	if len(m.items) == 0 || !m.timer.running() {
		return m, nil
	}
	it := m.items[m.cursor]
	m.sets[it.ID]++
	target := m.targetSets(it)
	if target > 0 && m.sets[it.ID] >= target && m.cursor < len(m.items)-1 {
		m.cursor++
	}
	return m.startRest(), nil
}

// targetSets is the lower bound of the catalog's set range for the item.
func (m sessionModel) targetSets(it store.RoutineItem) int {
	if m.catalog == nil {
		return 0
	}
	for _, ex := range m.catalog.ForMuscle(it.Muscle) {
		if ex.Name == it.Exercise {
			return leadingInt(ex.Sets)
		}
	}
	return 0
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

func (m sessionModel) removeItem(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.RemoveRoutineItem(id); err != nil {
			return errorStatus("remove exercise", err)()
		}
		return routineChangedMsg{}
	}
}

func (m sessionModel) clearRoutine() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.ClearRoutine(); err != nil {
			return errorStatus("clear routine", err)()
		}
		return routineChangedMsg{}
	}
}

func (m sessionModel) showFinishForm() (sessionModel, tea.Cmd) {
	m.timer.pause()
	*m.formName = "Routine Workout"
	*m.formNotes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Workout name").Value(m.formName),
			huh.NewText().Title("Notes").Value(m.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m sessionModel) updateForm(msg tea.Msg) (sessionModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			m.timer.resume()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		rec, err := m.timer.stop(strings.TrimSpace(*m.formName), strings.TrimSpace(*m.formNotes))
		if err != nil {
			m.timer.resume()
			return m, errorStatus("save workout", err)
		}
		m.resting = false
		m.sets = make(map[int64]int)
		return m, tea.Batch(
			func() tea.Msg { return sessionStoppedMsg{log: rec} },
			func() tea.Msg { return logsChangedMsg{} },
		)
	}

	return m, cmd
}

func (m sessionModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Finish Workout")
		info := mutedStyle.Render("Duration " + formatDuration(m.timer.currentElapsed()))
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, info, "", m.form.View()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTimerPanel(w),
		m.renderRoutine(w),
	)
}

func (m sessionModel) renderTimerPanel(w int) string {
	if !m.timer.running() {
		content := lipgloss.JoinVertical(lipgloss.Center,
			timerStyle.Width(w-6).Render("00:00:00"),
			mutedStyle.Render("■  NOT STARTED"),
			mutedStyle.Render("Press s to start the routine"),
		)
		return panelStyle.Width(w).Render(content)
	}

	timeStr := formatDuration(m.timer.currentElapsed())
	var timeDisplay, indicator string
	if m.timer.paused() {
		timeDisplay = timerPausedStyle.Width(w - 6).Render(timeStr)
		indicator = warningStyle.Render("⏸  PAUSED")
	} else {
		timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
		indicator = successStyle.Render("●  IN PROGRESS")
	}

	rest := mutedStyle.Render(fmt.Sprintf("Rest %s  (r to start)", formatClock(m.restDuration)))
	if m.resting {
		rest = accentStyle.Bold(true).Render("REST " + formatClock(m.remaining))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, "", rest)
	return activePanelStyle.Width(w).Render(content)
}

func (m sessionModel) renderRoutine(w int) string {
	title := titleStyle.Render(fmt.Sprintf("Routine (%d)", len(m.items)))
	if len(m.items) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No exercises yet. Press 2 and add some with a."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")
	for i, it := range m.items {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dot := groupStyle(it.Group).Render("●")
		row := style.Render(fmt.Sprintf("%s%-28s", cursor, it.Exercise)) + " " + dot + " " +
			mutedStyle.Render(fmt.Sprintf("%-22s", m.mapping.DisplayName(it.Muscle)))
		if m.timer.running() {
			row += "  " + m.renderProgress(it)
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	if m.timer.running() {
		rows = append(rows, mutedStyle.Render("  enter: set done  space: pause  r: rest/skip  x: finish  c: discard"))
	} else {
		rows = append(rows, mutedStyle.Render("  s: start  d: remove  c: clear"))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m sessionModel) renderProgress(it store.RoutineItem) string {
	done := m.sets[it.ID]
	target := m.targetSets(it)
	if target == 0 {
		return mutedStyle.Render(fmt.Sprintf("%d sets", done))
	}
	var parts []string
	for i := 0; i < max(target, done); i++ {
		if i < done {
			parts = append(parts, successStyle.Render("●"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	return strings.Join(parts, " ") + mutedStyle.Render(fmt.Sprintf("  %d/%d", done, target))
}
