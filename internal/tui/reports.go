package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flexr/internal/isoweek"
	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/store"
	"github.com/sadopc/flexr/internal/workout"
)

type reportMode int

const (
	reportGroups reportMode = iota
	reportTrend
)

type reportsModel struct {
	store  *store.Store
	agg    *workout.Aggregator
	width  int
	height int

	mode   reportMode
	week   isoweek.Week
	result workout.Result
	weeks  []isoweek.Week
	counts []int

	chart barchart.Model
}

func newReportsModel(s *store.Store, m *muscles.Mapping) reportsModel {
	return reportsModel{
		store: s,
		agg:   workout.NewAggregator(m),
		week:  isoweek.Of(time.Now()),
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	week   isoweek.Week
	result workout.Result
	weeks  []isoweek.Week
	counts []int
}

func (r reportsModel) refresh() tea.Cmd {
	week := r.week
	return func() tea.Msg {
		n := r.store.ReportWeeks()
		weeks, _, err := workout.WeeklyCounts(nil, week, n)
		if err != nil {
			return errorStatus("load report", err)()
		}
		from, err := isoweek.Start(weeks[0])
		if err != nil {
			return errorStatus("load report", err)()
		}
		_, end, err := isoweek.Range(week)
		if err != nil {
			return errorStatus("load report", err)()
		}
		to := end.Add(time.Nanosecond)
		logs, err := r.store.ListLogs(store.LogFilter{From: &from, To: &to})
		if err != nil {
			return errorStatus("load report", err)()
		}

		res, err := r.agg.Aggregate(logs, week)
		if err != nil {
			return errorStatus("load report", err)()
		}
		weeks, counts, err := workout.WeeklyCounts(logs, week, n)
		if err != nil {
			return errorStatus("load report", err)()
		}
		return reportsDataMsg{week: week, result: res, weeks: weeks, counts: counts}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		if msg.week != r.week {
			return r, nil
		}
		r.result = msg.result
		r.weeks = msg.weeks
		r.counts = msg.counts
		r.buildChart()
		return r, nil

	case logsChangedMsg:
		return r, r.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			return r.stepWeek(isoweek.Prev)
		case key.Matches(msg, keys.Right):
			return r.stepWeek(isoweek.Next)
		case key.Matches(msg, keys.ThisWeek):
			r.week = isoweek.Of(time.Now())
			return r, r.refresh()
		case key.Matches(msg, keys.Mode):
			if r.mode == reportGroups {
				r.mode = reportTrend
			} else {
				r.mode = reportGroups
			}
			r.buildChart()
			return r, nil
		}
	}
	return r, nil
}

func (r reportsModel) stepWeek(step func(isoweek.Week) (isoweek.Week, error)) (reportsModel, tea.Cmd) {
	w, err := step(r.week)
	if err != nil {
		return r, errorStatus("change week", err)
	}
	r.week = w
	return r, r.refresh()
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	switch r.mode {
	case reportTrend:
		for i, w := range r.weeks {
			bars = append(bars, barchart.BarData{
				Label: fmt.Sprintf("W%02d", w.Week),
				Values: []barchart.BarValue{{
					Name:  w.String(),
					Value: float64(r.counts[i]),
					Style: lipgloss.NewStyle().Foreground(colorPrimary),
				}},
			})
		}
	default:
		for _, gi := range muscles.Groups() {
			bars = append(bars, barchart.BarData{
				Label: gi.Title,
				Values: []barchart.BarValue{{
					Name:  gi.Title,
					Value: float64(r.result.GroupCounts[gi.Key]),
					Style: groupStyle(gi.Key),
				}},
			})
		}
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	groupsTab := inactiveTabStyle.Render("Muscle Groups")
	trendTab := inactiveTabStyle.Render("Weekly Trend")
	if r.mode == reportGroups {
		groupsTab = activeTabStyle.Render("Muscle Groups")
	} else {
		trendTab = activeTabStyle.Render("Weekly Trend")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, groupsTab, trendTab)

	dateLabel := mutedStyle.Render(r.week.String())
	if start, err := isoweek.Start(r.week); err == nil {
		dateLabel = mutedStyle.Render(fmt.Sprintf("%s  %s", r.week, isoweek.FormatRange(start)))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", dateLabel,
	)

	var table string
	if r.mode == reportTrend {
		table = r.renderTrendTable()
	} else {
		table = r.renderGroupTable(w)
	}

	nav := mutedStyle.Render("  ←/→: week  t: this week  m: switch chart")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", table, "", nav,
		),
	)
}

func (r reportsModel) renderGroupTable(w int) string {
	if r.result.Highlighted.Len() == 0 {
		return mutedStyle.Render("  No muscles trained this week")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s %8s %9s", "Group", "Trained", "Muscles", "Coverage")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 40))))

	m := r.agg.Mapping()
	for _, gi := range muscles.Groups() {
		total := len(m.InGroup(gi.Key))
		trained := r.result.GroupCounts[gi.Key]
		coverage := 0.0
		if total > 0 {
			coverage = float64(trained) / float64(total) * 100
		}
		dot := groupStyle(gi.Key).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-10s %8d %8d %8.0f%%", dot, gi.Title, trained, total, coverage))
	}
	rows = append(rows, "", fmt.Sprintf("  %d workouts, %d distinct muscles", len(r.result.Logs), r.result.Highlighted.Len()))
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderTrendTable() string {
	if len(r.weeks) == 0 {
		return mutedStyle.Render("  No data for this period")
	}
	total := 0
	for _, c := range r.counts {
		total += c
	}
	avg := float64(total) / float64(len(r.weeks))
	return fmt.Sprintf("  %d workouts over %d weeks, %.1f per week (%s to %s)",
		total, len(r.weeks), avg, r.weeks[0], r.weeks[len(r.weeks)-1])
}
