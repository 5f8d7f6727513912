package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/flexr/internal/workout"
)

// CreateLog persists a workout log together with its muscle list. An empty
// ID is replaced by a fresh UUID; a zero PerformedAt becomes now.
func (s *Store) CreateLog(rec workout.LogRecord, source string) (*workout.LogRecord, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return nil, fmt.Errorf("create log: empty name")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PerformedAt.IsZero() {
		rec.PerformedAt = time.Now()
	}
	if source == "" {
		source = SourceManual
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create log: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO workout_logs (id, name, performed_at, duration, notes, source) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, formatTime(rec.PerformedAt), int64(rec.Duration.Seconds()), rec.Notes, source,
	)
	if err != nil {
		return nil, fmt.Errorf("create log: %w", err)
	}
	for i, m := range rec.Muscles {
		if _, err := tx.Exec(
			`INSERT INTO workout_log_muscles (log_id, position, muscle) VALUES (?, ?, ?)`,
			rec.ID, i, m,
		); err != nil {
			return nil, fmt.Errorf("create log muscle %q: %w", m, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create log: %w", err)
	}
	return s.GetLog(rec.ID)
}

func (s *Store) GetLog(id string) (*workout.LogRecord, error) {
	var rec workout.LogRecord
	var performedAt string
	var duration int64
	err := s.db.QueryRow(
		`SELECT id, name, performed_at, duration, notes FROM workout_logs WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Name, &performedAt, &duration, &rec.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get log %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get log %s: %w", id, err)
	}
	rec.PerformedAt = parseTime(performedAt)
	rec.Duration = time.Duration(duration) * time.Second

	rec.Muscles, err = s.logMuscles(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListLogs returns logs newest first.
func (s *Store) ListLogs(f LogFilter) ([]workout.LogRecord, error) {
	query := `SELECT id, name, performed_at, duration, notes FROM workout_logs WHERE 1=1`
	var args []any

	if f.From != nil {
		query += ` AND performed_at >= ?`
		args = append(args, formatTime(*f.From))
	}
	if f.To != nil {
		query += ` AND performed_at < ?`
		args = append(args, formatTime(*f.To))
	}
	query += ` ORDER BY performed_at DESC, id`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	logs, err := s.scanLogs(query, args...)
	if err != nil {
		return nil, err
	}
	// Rows must be closed before the muscle queries run on the single connection.
	for i := range logs {
		logs[i].Muscles, err = s.logMuscles(logs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return logs, nil
}

func (s *Store) scanLogs(query string, args ...any) ([]workout.LogRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []workout.LogRecord
	for rows.Next() {
		var rec workout.LogRecord
		var performedAt string
		var duration int64
		if err := rows.Scan(&rec.ID, &rec.Name, &performedAt, &duration, &rec.Notes); err != nil {
			return nil, err
		}
		rec.PerformedAt = parseTime(performedAt)
		rec.Duration = time.Duration(duration) * time.Second
		logs = append(logs, rec)
	}
	return logs, rows.Err()
}

func (s *Store) logMuscles(id string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT muscle FROM workout_log_muscles WHERE log_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("list log muscles: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) UpdateLogNotes(id, notes string) error {
	res, err := s.db.Exec(`UPDATE workout_logs SET notes = ? WHERE id = ?`, notes, id)
	if err != nil {
		return fmt.Errorf("update log notes: %w", err)
	}
	return expectOne(res, "update log notes", id)
}

func (s *Store) DeleteLog(id string) error {
	res, err := s.db.Exec(`DELETE FROM workout_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	return expectOne(res, "delete log", id)
}

func (s *Store) CountLogs() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM workout_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count logs: %w", err)
	}
	return n, nil
}

func expectOne(res sql.Result, op, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t.UTC()
}
