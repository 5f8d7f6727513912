package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/workout"
)

// AddRoutineItem appends an exercise to the end of the routine.
func (s *Store) AddRoutineItem(exercise, muscle string, group muscles.Group) (*RoutineItem, error) {
	if strings.TrimSpace(exercise) == "" || strings.TrimSpace(muscle) == "" {
		return nil, fmt.Errorf("add routine item: exercise and muscle are required")
	}
	var next int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(position), -1) + 1 FROM routine_items`).Scan(&next); err != nil {
		return nil, fmt.Errorf("next routine position: %w", err)
	}
	now := formatTime(time.Now())
	res, err := s.db.Exec(
		`INSERT INTO routine_items (exercise, muscle, muscle_group, position, created_at) VALUES (?, ?, ?, ?, ?)`,
		exercise, muscle, string(group), next, now,
	)
	if err != nil {
		return nil, fmt.Errorf("add routine item: %w", err)
	}
	id, _ := res.LastInsertId()
	return &RoutineItem{
		ID:        id,
		Exercise:  exercise,
		Muscle:    muscle,
		Group:     group,
		Position:  next,
		CreatedAt: parseTime(now),
	}, nil
}

func (s *Store) ListRoutine() ([]RoutineItem, error) {
	rows, err := s.db.Query(
		`SELECT id, exercise, muscle, muscle_group, position, created_at FROM routine_items ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list routine: %w", err)
	}
	defer rows.Close()

	var items []RoutineItem
	for rows.Next() {
		var it RoutineItem
		var group, createdAt string
		if err := rows.Scan(&it.ID, &it.Exercise, &it.Muscle, &group, &it.Position, &createdAt); err != nil {
			return nil, err
		}
		it.Group = muscles.Group(group)
		it.CreatedAt = parseTime(createdAt)
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) RemoveRoutineItem(id int64) error {
	res, err := s.db.Exec(`DELETE FROM routine_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove routine item: %w", err)
	}
	return expectOne(res, "remove routine item", fmt.Sprint(id))
}

func (s *Store) ClearRoutine() error {
	if _, err := s.db.Exec(`DELETE FROM routine_items`); err != nil {
		return fmt.Errorf("clear routine: %w", err)
	}
	return nil
}

// RoutineMuscles returns the routine's muscles in routine order with
// duplicates removed.
func (s *Store) RoutineMuscles() ([]string, error) {
	items, err := s.ListRoutine()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if seen[it.Muscle] {
			continue
		}
		seen[it.Muscle] = true
		out = append(out, it.Muscle)
	}
	return out, nil
}

// LogRoutine records the current routine as a completed workout, notes
// included, in a single insert. The routine itself is left intact.
func (s *Store) LogRoutine(name, notes string, performedAt time.Time, duration time.Duration) (*workout.LogRecord, error) {
	ms, err := s.RoutineMuscles()
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, fmt.Errorf("log routine: routine is empty")
	}
	if strings.TrimSpace(name) == "" {
		name = "Routine Workout"
	}
	return s.CreateLog(workout.LogRecord{
		Name:        name,
		PerformedAt: performedAt,
		Muscles:     ms,
		Notes:       strings.TrimSpace(notes),
		Duration:    duration,
	}, SourceRoutine)
}
