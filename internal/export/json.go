package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/flexr/internal/isoweek"
	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/workout"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Logs       []jsonLog `json:"logs"`
}

type jsonLog struct {
	ID          string   `json:"id"`
	PerformedAt string   `json:"performed_at"`
	Week        string   `json:"week"`
	Name        string   `json:"name"`
	Muscles     []string `json:"muscles"`
	Groups      []string `json:"groups,omitempty"`
	DurationSec int64    `json:"duration_seconds"`
	Duration    string   `json:"duration"`
	Notes       string   `json:"notes,omitempty"`
}

func ToJSON(logs []workout.LogRecord, m *muscles.Mapping, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(logs),
	}

	for _, l := range logs {
		secs := int64(l.Duration.Seconds())
		ms := l.Muscles
		if ms == nil {
			ms = []string{}
		}
		export.Logs = append(export.Logs, jsonLog{
			ID:          l.ID,
			PerformedAt: l.PerformedAt.UTC().Format(time.RFC3339),
			Week:        isoweek.Of(l.PerformedAt).String(),
			Name:        l.Name,
			Muscles:     ms,
			Groups:      groupsOf(l.Muscles, m),
			DurationSec: secs,
			Duration:    formatDuration(secs),
			Notes:       l.Notes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
