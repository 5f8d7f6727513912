package store

import (
	"time"

	"github.com/sadopc/flexr/internal/muscles"
)

// Log sources.
const (
	SourceManual  = "manual"
	SourceRoutine = "routine"
	SourceFIT     = "fit"
	SourceDemo    = "demo"
)

type RoutineItem struct {
	ID        int64
	Exercise  string
	Muscle    string
	Group     muscles.Group
	Position  int
	CreatedAt time.Time
}

type BodyStats struct {
	ID         int64
	Weight     float64
	Unit       string
	BodyFat    *float64
	RecordedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// LogFilter is used to filter workout logs in queries. From is inclusive,
// To is exclusive.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
