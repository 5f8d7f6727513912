package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flexr/internal/catalog"
	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/store"
)

type browseLevel int

const (
	levelGroups browseLevel = iota
	levelMuscles
	levelExercises
	levelDetail
)

// musclesModel browses groups, their muscles, the exercises for a muscle,
// and an exercise's instructions.
type musclesModel struct {
	store   *store.Store
	mapping *muscles.Mapping
	catalog *catalog.Catalog
	width   int
	height  int

	level          browseLevel
	groupCursor    int
	muscleCursor   int
	exerciseCursor int

	inRoutine map[string]bool // exercise|muscle
}

func newMusclesModel(s *store.Store, m *muscles.Mapping, c *catalog.Catalog) musclesModel {
	return musclesModel{
		store:     s,
		mapping:   m,
		catalog:   c,
		inRoutine: map[string]bool{},
	}
}

func (b *musclesModel) setSize(w, h int) {
	b.width = w
	b.height = h
}

type musclesDataMsg struct {
	items []store.RoutineItem
}

func (b musclesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		items, err := b.store.ListRoutine()
		if err != nil {
			return errorStatus("load routine", err)()
		}
		return musclesDataMsg{items: items}
	}
}

func routineKey(exercise, muscle string) string { return exercise + "|" + muscle }

func (b musclesModel) group() muscles.GroupInfo {
	return muscles.Groups()[b.groupCursor]
}

func (b musclesModel) muscleList() []muscles.Muscle {
	return b.mapping.InGroup(b.group().Key)
}

func (b musclesModel) selectedMuscle() (muscles.Muscle, bool) {
	ms := b.muscleList()
	if b.muscleCursor >= len(ms) {
		return muscles.Muscle{}, false
	}
	return ms[b.muscleCursor], true
}

func (b musclesModel) exercises() []catalog.Exercise {
	mu, ok := b.selectedMuscle()
	if !ok {
		return nil
	}
	return b.catalog.ForMuscle(mu.Key)
}

func (b musclesModel) update(msg tea.Msg) (musclesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case musclesDataMsg:
		b.inRoutine = make(map[string]bool, len(msg.items))
		for _, it := range msg.items {
			b.inRoutine[routineKey(it.Exercise, it.Muscle)] = true
		}
		return b, nil

	case routineChangedMsg:
		return b, b.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			b.moveCursor(-1)
		case key.Matches(msg, keys.Down):
			b.moveCursor(1)
		case key.Matches(msg, keys.Enter):
			b.drillDown()
		case key.Matches(msg, keys.Back):
			if b.level > levelGroups {
				b.level--
			}
		case key.Matches(msg, keys.Add):
			return b, b.addSelected()
		}
	}
	return b, nil
}

func (b *musclesModel) moveCursor(delta int) {
	clamp := func(v, n int) int {
		return max(0, min(v, n-1))
	}
	switch b.level {
	case levelGroups:
		b.groupCursor = clamp(b.groupCursor+delta, len(muscles.Groups()))
	case levelMuscles:
		b.muscleCursor = clamp(b.muscleCursor+delta, len(b.muscleList()))
	case levelExercises:
		b.exerciseCursor = clamp(b.exerciseCursor+delta, len(b.exercises()))
	}
}

func (b *musclesModel) drillDown() {
	switch b.level {
	case levelGroups:
		b.level = levelMuscles
		b.muscleCursor = 0
	case levelMuscles:
		if _, ok := b.selectedMuscle(); ok {
			b.level = levelExercises
			b.exerciseCursor = 0
		}
	case levelExercises:
		if len(b.exercises()) > 0 {
			b.level = levelDetail
		}
	}
}

func (b musclesModel) addSelected() tea.Cmd {
	if b.level != levelExercises && b.level != levelDetail {
		return nil
	}
	exs := b.exercises()
	mu, ok := b.selectedMuscle()
	if !ok || b.exerciseCursor >= len(exs) {
		return nil
	}
	ex := exs[b.exerciseCursor]
	return func() tea.Msg {
		if _, err := b.store.AddRoutineItem(ex.Name, mu.Key, mu.Group); err != nil {
			return errorStatus("add to routine", err)()
		}
		return routineChangedMsg{note: "Added " + ex.Name + " to routine"}
	}
}

func (b musclesModel) view() string {
	w := b.width - 4
	switch b.level {
	case levelMuscles:
		return b.renderMuscles(w)
	case levelExercises:
		return b.renderExercises(w)
	case levelDetail:
		return b.renderDetail(w)
	}
	return b.renderGroups(w)
}

func cursorRow(selected bool, text string) string {
	if selected {
		return selectedItemStyle.Render("> " + text)
	}
	return normalItemStyle.Render("  " + text)
}

func (b musclesModel) renderGroups(w int) string {
	rows := []string{titleStyle.Render("Muscle Groups"), ""}
	for i, gi := range muscles.Groups() {
		dot := groupStyle(gi.Key).Render("●")
		count := mutedStyle.Render(fmt.Sprintf("%d muscles", len(b.mapping.InGroup(gi.Key))))
		rows = append(rows, cursorRow(i == b.groupCursor, fmt.Sprintf("%-12s", gi.Title))+" "+dot+" "+count)
	}
	rows = append(rows, "", mutedStyle.Render("  enter: browse"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (b musclesModel) renderMuscles(w int) string {
	gi := b.group()
	rows := []string{groupStyle(gi.Key).Bold(true).Render(gi.Title), ""}
	for i, mu := range b.muscleList() {
		n := len(b.catalog.ForMuscle(mu.Key))
		info := mutedStyle.Render("no exercises")
		if n > 0 {
			info = secondaryStyle.Render(fmt.Sprintf("%d exercises", n))
		}
		rows = append(rows, cursorRow(i == b.muscleCursor, fmt.Sprintf("%-28s", mu.Name))+" "+info)
	}
	rows = append(rows, "", mutedStyle.Render("  enter: exercises  esc: back"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (b musclesModel) renderExercises(w int) string {
	mu, _ := b.selectedMuscle()
	title := groupStyle(mu.Group).Render(groupTitle(mu.Group)+" / ") + titleStyle.Render(mu.Name)
	exs := b.exercises()
	if len(exs) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No exercises catalogued for this muscle."), "",
			mutedStyle.Render("  esc: back"),
		))
	}

	rows := []string{title, ""}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-30s %-6s %-8s %s", "Exercise", "Sets", "Reps", "Level")))
	for i, ex := range exs {
		mark := "  "
		if b.inRoutine[routineKey(ex.Name, mu.Key)] {
			mark = successStyle.Render("✓ ")
		}
		line := cursorRow(i == b.exerciseCursor, fmt.Sprintf("%-30s %-6s %-8s", ex.Name, ex.Sets, ex.Reps))
		rows = append(rows, line+" "+difficultyStyle(string(ex.Difficulty)).Render(string(ex.Difficulty))+" "+mark)
	}
	rows = append(rows, "", mutedStyle.Render("  enter: details  a: add to routine  esc: back"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (b musclesModel) renderDetail(w int) string {
	exs := b.exercises()
	if b.exerciseCursor >= len(exs) {
		return panelStyle.Width(w).Render(mutedStyle.Render("Nothing selected"))
	}
	ex := exs[b.exerciseCursor]
	det := b.catalog.Detail(ex.Name)

	rows := []string{
		titleStyle.Render(ex.Name),
		mutedStyle.Render(fmt.Sprintf("%s sets × %s reps  ", ex.Sets, ex.Reps)) +
			difficultyStyle(string(ex.Difficulty)).Render(string(ex.Difficulty)),
		"",
		lipgloss.NewStyle().Width(max(20, w-6)).Render(det.Description),
		"",
		highlightStyle.Render("How to"),
	}
	for i, step := range det.Execution {
		rows = append(rows, fmt.Sprintf("  %d. %s", i+1, step))
	}
	rows = append(rows, "", highlightStyle.Render("Form tips"))
	for _, tip := range det.FormTips {
		rows = append(rows, "  • "+tip)
	}
	rows = append(rows, "",
		mutedStyle.Render("Targets:   ")+det.TargetMuscles,
		mutedStyle.Render("Equipment: ")+det.Equipment,
	)
	if also := b.alsoTrains(ex.Name); len(also) > 0 {
		rows = append(rows, mutedStyle.Render("Also for:  ")+strings.Join(also, ", "))
	}
	if !b.catalog.HasDetail(ex.Name) {
		rows = append(rows, "", mutedStyle.Render("No written guide for this exercise yet; showing general advice."))
	}
	rows = append(rows, "", mutedStyle.Render("  a: add to routine  esc: back"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// alsoTrains lists the other muscles whose exercise lists include name,
// using display names.
func (b musclesModel) alsoTrains(name string) []string {
	current, _ := b.selectedMuscle()
	var out []string
	for _, key := range b.catalog.MusclesFor(name) {
		if key == current.Key {
			continue
		}
		out = append(out, b.mapping.DisplayName(key))
	}
	return out
}
