package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sadopc/flexr/internal/isoweek"
	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/workout"
)

func ToCSV(logs []workout.LogRecord, m *muscles.Mapping, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Performed", "Week", "Name", "Muscles", "Groups", "Duration (s)", "Duration", "Notes"}); err != nil {
		return err
	}

	for _, l := range logs {
		secs := int64(l.Duration.Seconds())
		row := []string{
			l.ID,
			l.PerformedAt.Local().Format(time.RFC3339),
			isoweek.Of(l.PerformedAt).String(),
			l.Name,
			strings.Join(l.Muscles, ";"),
			strings.Join(groupsOf(l.Muscles, m), ";"),
			fmt.Sprintf("%d", secs),
			formatDuration(secs),
			l.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// groupsOf lists the distinct groups of the mapped muscles in first-seen
// order. Unmapped names are skipped.
func groupsOf(names []string, m *muscles.Mapping) []string {
	if m == nil {
		return nil
	}
	seen := make(map[muscles.Group]bool)
	var out []string
	for _, n := range names {
		mu, ok := m.Muscle(n)
		if !ok || seen[mu.Group] {
			continue
		}
		seen[mu.Group] = true
		out = append(out, string(mu.Group))
	}
	return out
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
