package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/sadopc/flexr/internal/catalog"
	"github.com/sadopc/flexr/internal/export"
	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	mapping *muscles.Mapping
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	muscles   musclesModel
	session   sessionModel
	reports   reportsModel
	settings  settingsModel

	help          help.Model
	status        string
	statusIsError bool
}

func NewApp(s *store.Store, m *muscles.Mapping, c *catalog.Catalog) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		mapping:    m,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s, m),
		muscles:    newMusclesModel(s, m, c),
		session:    newSessionModel(s, m, c),
		reports:    newReportsModel(s, m),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		a.muscles.refresh(),
		a.session.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.muscles.setSize(a.width, contentHeight)
		a.session.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewMuscles
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewWorkout
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewReports
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// Ticks drive the workout clock and rest countdown in every view.
		var cmd tea.Cmd
		a.session, cmd = a.session.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	// Data messages go to their owner even if the user switched tabs
	// while the load was in flight.
	case dashboardDataMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	case musclesDataMsg:
		var cmd tea.Cmd
		a.muscles, cmd = a.muscles.update(msg)
		return a, cmd
	case routineDataMsg:
		var cmd tea.Cmd
		a.session, cmd = a.session.update(msg)
		return a, cmd
	case reportsDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd
	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd

	case logsChangedMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		cmds = append(cmds, cmd)
		a.reports, cmd = a.reports.update(msg)
		cmds = append(cmds, cmd)
		a.settings, cmd = a.settings.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case routineChangedMsg:
		if msg.note != "" {
			a.setStatus(msg.note, false)
		}
		var cmd tea.Cmd
		a.muscles, cmd = a.muscles.update(msg)
		cmds = append(cmds, cmd)
		a.session, cmd = a.session.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case sessionStartedMsg:
		a.setStatus("Workout started", false)
		return a, nil

	case sessionStoppedMsg:
		if msg.log != nil {
			a.setStatus(fmt.Sprintf("Saved workout %q (%s)", msg.log.Name, formatMinutes(msg.log.Duration)), false)
		} else {
			a.setStatus("Workout discarded", false)
		}
		return a, nil

	case restDoneMsg:
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusIsError = isError
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewMuscles:
		a.muscles, cmd = a.muscles.update(msg)
	case viewWorkout:
		a.session, cmd = a.session.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive()
	case viewWorkout:
		return a.session.formActive
	case viewSettings:
		return a.settings.formActive()
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewMuscles:
		return a.muscles.refresh()
	case viewWorkout:
		return a.session.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewMuscles:
		content = a.muscles.view()
	case viewWorkout:
		content = a.session.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("flexr")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusIsError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	timerInfo := ""
	if a.session.isRunning() {
		elapsed := a.session.elapsed()
		timerInfo = successStyle.Render(" ● " + formatDuration(elapsed))
		if a.session.isPaused() {
			timerInfo = warningStyle.Render(" ⏸ " + formatDuration(elapsed))
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export Workout Logs"), "")
	for i, f := range exportFormats {
		rows = append(rows, cursorRow(i == a.exportCursor, f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func exportPath(dir string, format int, now time.Time) string {
	ext := "csv"
	if format == 1 {
		ext = "json"
	}
	return filepath.Join(dir, fmt.Sprintf("flexr-export-%s.%s", now.Format("2006-01-02"), ext))
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		logs, err := a.store.ListLogs(store.LogFilter{})
		if err != nil {
			return errorStatus("export", err)()
		}

		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path := exportPath(home, format, time.Now())

		if format == 0 {
			err = export.ToCSV(logs, a.mapping, path)
		} else {
			err = export.ToJSON(logs, a.mapping, path)
		}
		if err != nil {
			return errorStatus("export", err)()
		}

		log.WithFields(log.Fields{"path": path, "logs": len(logs)}).Info("exported workout logs")
		return exportDoneMsg{path: path}
	}
}
