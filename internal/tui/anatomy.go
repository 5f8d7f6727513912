package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/workout"
)

// Figure cells: each letter marks a region owned by a muscle group.
var (
	frontFigure = []string{
		"    .-.    ",
		"    '-'    ",
		" SSSSSSSSS ",
		"A CCCCCCC A",
		"A CCCCCCC A",
		"A  KKKKK  A",
		"a  KKKKK  a",
		"   LL LL   ",
		"   LL LL   ",
		"   LL LL   ",
		"   ll ll   ",
	}
	backFigure = []string{
		"    .-.    ",
		"    '-'    ",
		" SSSSSSSSS ",
		"A BBBBBBB A",
		"A BBBBBBB A",
		"A  BBBBB  A",
		"a  LLLLL  a",
		"   LL LL   ",
		"   LL LL   ",
		"   LL LL   ",
		"   ll ll   ",
	}
	regionGroups = map[rune]muscles.Group{
		'S': muscles.GroupShoulders,
		'C': muscles.GroupChest,
		'B': muscles.GroupBack,
		'K': muscles.GroupCore,
		'A': muscles.GroupArms,
		'a': muscles.GroupArms,
		'L': muscles.GroupLegs,
		'l': muscles.GroupLegs,
	}
)

// renderFigure draws one body outline, filling the regions of groups with at
// least one trained muscle.
func renderFigure(lines []string, counts map[muscles.Group]int, on lipgloss.Style) string {
	off := lipgloss.NewStyle().Foreground(colorSubtle)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, r := range line {
			g, ok := regionGroups[r]
			switch {
			case !ok:
				b.WriteString(mutedStyle.Render(string(r)))
			case counts[g] > 0:
				b.WriteString(on.Render("█"))
			default:
				b.WriteString(off.Render("░"))
			}
		}
	}
	return b.String()
}

// renderAnatomy shows the week's highlight: front and back figures beside a
// per-group list of trained muscles.
func renderAnatomy(res workout.Result, m *muscles.Mapping, highlight lipgloss.Color) string {
	on := lipgloss.NewStyle().Foreground(highlight)

	figures := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Center, subtitleStyle.Render("Front"), renderFigure(frontFigure, res.GroupCounts, on)),
		"   ",
		lipgloss.JoinVertical(lipgloss.Center, subtitleStyle.Render("Back"), renderFigure(backFigure, res.GroupCounts, on)),
	)

	byGroup := make(map[muscles.Group][]string)
	for _, id := range res.Highlighted.IDs() {
		if mu, ok := m.ByDisplayID(id); ok {
			byGroup[mu.Group] = append(byGroup[mu.Group], mu.Name)
		}
	}

	var rows []string
	for _, gi := range muscles.Groups() {
		trained := byGroup[gi.Key]
		title := groupStyle(gi.Key).Bold(true).Render(fmt.Sprintf("%-10s", gi.Title))
		count := mutedStyle.Render(fmt.Sprintf("%2d", res.GroupCounts[gi.Key]))
		names := mutedStyle.Render("-")
		if len(trained) > 0 {
			names = on.Render(strings.Join(trained, ", "))
		}
		rows = append(rows, fmt.Sprintf("%s %s  %s", title, count, names))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, figures, "    ", strings.Join(rows, "\n"))
}

// renderLegend is the summary line under the figure.
func renderLegend(res workout.Result, highlight lipgloss.Color) string {
	n := res.Highlighted.Len()
	if n == 0 {
		return mutedStyle.Render("No muscles trained this week")
	}
	dot := lipgloss.NewStyle().Foreground(highlight).Render("●")
	return fmt.Sprintf("%s Trained (%d)", dot, n)
}
