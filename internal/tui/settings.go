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

	"github.com/sadopc/flexr/internal/store"
)

type settingsForm int

const (
	settingsFormNone settingsForm = iota
	settingsFormPrefs
	settingsFormBody
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings []store.Setting
	history  []store.BodyStats
	cursor   int

	formKind settingsForm
	form     *huh.Form

	// Form values as pointers (survive value copies)
	weightUnit     *string
	highlightColor *string
	restSeconds    *string
	reportWeeks    *string
	weight         *string
	bodyFat        *string
}

func newSettingsModel(s *store.Store) settingsModel {
	wu, hc, rs, rw, w, bf := "", "", "", "", "", ""
	return settingsModel{
		store:          s,
		weightUnit:     &wu,
		highlightColor: &hc,
		restSeconds:    &rs,
		reportWeeks:    &rw,
		weight:         &w,
		bodyFat:        &bf,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) formActive() bool { return s.formKind != settingsFormNone }

type settingsDataMsg struct {
	settings []store.Setting
	history  []store.BodyStats
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.store.GetAllSettings()
		if err != nil {
			return errorStatus("load settings", err)()
		}
		history, err := s.store.ListBodyStats(5)
		if err != nil {
			return errorStatus("load body stats", err)()
		}
		return settingsDataMsg{settings: settings, history: history}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive() && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.history = msg.history
		if s.cursor >= len(s.history) {
			s.cursor = max(0, len(s.history)-1)
		}
		return s, nil

	case logsChangedMsg:
		return s, s.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < len(s.history)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if len(s.history) > 0 {
				return s, s.deleteBodyStats(s.history[s.cursor].ID)
			}
		case key.Matches(msg, keys.Enter):
			return s.showPrefsForm()
		case key.Matches(msg, keys.Body):
			return s.showBodyForm()
		}
	}
	return s, nil
}

func (s settingsModel) deleteBodyStats(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := s.store.DeleteBodyStats(id); err != nil {
			return errorStatus("delete body stats", err)()
		}
		return logsChangedMsg{}
	}
}

func validatePositiveInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number above zero")
	}
	return nil
}

func validateColor(v string) error {
	v = strings.TrimSpace(v)
	if len(v) != 7 || !strings.HasPrefix(v, "#") {
		return fmt.Errorf("use #RRGGBB")
	}
	if _, err := strconv.ParseUint(v[1:], 16, 32); err != nil {
		return fmt.Errorf("use #RRGGBB")
	}
	return nil
}

func validateWeight(v string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("enter a weight above zero")
	}
	return nil
}

func validateBodyFat(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 100 {
		return fmt.Errorf("enter a percentage from 0 to 100")
	}
	return nil
}

func (s settingsModel) showPrefsForm() (settingsModel, tea.Cmd) {
	*s.weightUnit = s.store.SettingOr(store.SettingWeightUnit, "kg")
	*s.highlightColor = s.store.SettingOr(store.SettingHighlightColor, string(colorPrimary))
	*s.restSeconds = strconv.Itoa(int(s.store.RestDuration().Seconds()))
	*s.reportWeeks = strconv.Itoa(s.store.ReportWeeks())

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Weight unit").
				Options(
					huh.NewOption("Kilograms", "kg"),
					huh.NewOption("Pounds", "lb"),
				).Value(s.weightUnit),
			huh.NewInput().Title("Highlight color").Value(s.highlightColor).Validate(validateColor),
		).Title("Display"),
		huh.NewGroup(
			huh.NewInput().Title("Rest between sets (sec)").Value(s.restSeconds).Validate(validatePositiveInt),
			huh.NewInput().Title("Weeks in trend chart").Value(s.reportWeeks).Validate(validatePositiveInt),
		).Title("Training"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formKind = settingsFormPrefs
	return s, s.form.Init()
}

func (s settingsModel) showBodyForm() (settingsModel, tea.Cmd) {
	*s.weight = ""
	*s.bodyFat = ""
	*s.weightUnit = s.store.SettingOr(store.SettingWeightUnit, "kg")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("Weight (%s)", *s.weightUnit)).Value(s.weight).Validate(validateWeight),
			huh.NewInput().Title("Body fat % (optional)").Value(s.bodyFat).Validate(validateBodyFat),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formKind = settingsFormBody
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formKind = settingsFormNone
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		kind := s.formKind
		s.formKind = settingsFormNone
		s.form = nil
		var err error
		if kind == settingsFormBody {
			err = s.saveBodyStats()
		} else {
			err = s.saveSettings()
		}
		if err != nil {
			return s, errorStatus("save settings", err)
		}
		return s, func() tea.Msg { return logsChangedMsg{} }
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	values := []store.Setting{
		{Key: store.SettingWeightUnit, Value: *s.weightUnit},
		{Key: store.SettingHighlightColor, Value: strings.ToUpper(strings.TrimSpace(*s.highlightColor))},
		{Key: store.SettingRestSeconds, Value: strings.TrimSpace(*s.restSeconds)},
		{Key: store.SettingReportWeeks, Value: strings.TrimSpace(*s.reportWeeks)},
	}
	for _, v := range values {
		if err := s.store.SetSetting(v.Key, v.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s settingsModel) saveBodyStats() error {
	weight, err := strconv.ParseFloat(strings.TrimSpace(*s.weight), 64)
	if err != nil {
		return err
	}
	var fat *float64
	if v := strings.TrimSpace(*s.bodyFat); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		fat = &f
	}
	_, err = s.store.RecordBodyStats(weight, *s.weightUnit, fat, time.Now())
	return err
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive() && s.form != nil {
		title := titleStyle.Render("Settings")
		if s.formKind == settingsFormBody {
			title = titleStyle.Render("Record Body Stats")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"), "")
	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "", titleStyle.Render("Body Stats"), "")
	if len(s.history) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing recorded yet"))
	}
	for i, b := range s.history {
		fat := "-"
		if b.BodyFat != nil {
			fat = fmt.Sprintf("%.1f%%", *b.BodyFat)
		}
		rows = append(rows, cursorRow(i == s.cursor, fmt.Sprintf("%-14s %8.1f %-3s %8s",
			b.RecordedAt.Local().Format("Jan 2, 2006"), b.Weight, b.Unit, fat)))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: edit settings  b: record body stats  d: delete entry"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingRestSeconds:
		if secs, err := strconv.Atoi(v); err == nil {
			return formatClock(time.Duration(secs) * time.Second)
		}
	case store.SettingReportWeeks:
		return v + " weeks"
	case store.SettingHighlightColor:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(v)).Render("■ ") + v
	}
	return v
}
