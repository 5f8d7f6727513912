package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/sadopc/flexr/internal/workout"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewMuscles
	viewWorkout
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Muscles", "Workout", "Reports", "Settings"}

// --- Messages ---

type sessionStartedMsg struct{}

type sessionStoppedMsg struct {
	log *workout.LogRecord
}

// logsChangedMsg is sent after any write to workout logs so views showing
// them can reload.
type logsChangedMsg struct{}

type routineChangedMsg struct {
	note string
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type restDoneMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func errorStatus(op string, err error) tea.Cmd {
	log.WithError(err).WithField("op", op).Warn("command failed")
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("%s: %v", op, err), isError: true}
	}
}

func infoStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatClock renders a countdown as mm:ss.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatMinutes(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d min", int(d.Round(time.Minute).Minutes()))
}
