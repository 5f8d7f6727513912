package store

import (
	"fmt"
	"time"

	"github.com/sadopc/flexr/internal/isoweek"
	"github.com/sadopc/flexr/internal/workout"
)

func demoLogs() []workout.LogRecord {
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	return []workout.LogRecord{
		{
			PerformedAt: at("2026-01-27T10:30:00Z"),
			Name:        "Upper Body Power",
			Muscles:     []string{"pectoralis_major", "deltoid_anterior", "triceps_brachii", "biceps_brachii"},
			Notes:       "Great pump today!",
		},
		{
			PerformedAt: at("2026-01-25T14:15:00Z"),
			Name:        "Leg Destruction",
			Muscles:     []string{"quadriceps", "hamstrings", "gluteus_maximus", "gastrocnemius"},
			Notes:       "Struggled with squats",
		},
		{
			PerformedAt: at("2026-01-23T09:00:00Z"),
			Name:        "Back & Core Strength",
			Muscles:     []string{"latissimus_dorsi", "erector_spinae", "rectus_abdominis", "obliques_external"},
			Notes:       "New PR on deadlifts!",
		},
		{
			PerformedAt: at("2026-01-20T11:00:00Z"),
			Name:        "Full Body Circuit",
			Muscles:     []string{"pectoralis_major", "latissimus_dorsi", "quadriceps", "deltoid_anterior"},
		},
		{
			PerformedAt: at("2026-01-15T16:30:00Z"),
			Name:        "Arms & Shoulders",
			Muscles:     []string{"biceps_brachii", "triceps_brachii", "deltoid_lateral", "forearm_flexors"},
			Notes:       "Focused on form",
		},
	}
}

// SeedDemo inserts the demo workout logs and a body stats entry. When anchor
// is non-zero the logs are moved by whole weeks so the newest one falls in
// anchor's ISO week, keeping weekdays and times intact. It returns the
// number of logs inserted.
func (s *Store) SeedDemo(anchor time.Time) (int, error) {
	logs := demoLogs()

	var shift time.Duration
	if !anchor.IsZero() {
		from, err := isoweek.Start(isoweek.Of(logs[0].PerformedAt))
		if err != nil {
			return 0, fmt.Errorf("seed demo: %w", err)
		}
		to, err := isoweek.Start(isoweek.Of(anchor))
		if err != nil {
			return 0, fmt.Errorf("seed demo: %w", err)
		}
		shift = to.Sub(from)
	}

	for _, l := range logs {
		l.PerformedAt = l.PerformedAt.Add(shift)
		if _, err := s.CreateLog(l, SourceDemo); err != nil {
			return 0, fmt.Errorf("seed demo log %q: %w", l.Name, err)
		}
	}

	fat := 15.2
	if _, err := s.RecordBodyStats(75.5, "kg", &fat, logs[0].PerformedAt.Add(shift)); err != nil {
		return 0, fmt.Errorf("seed demo body stats: %w", err)
	}
	return len(logs), nil
}
