package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) RecordBodyStats(weight float64, unit string, bodyFat *float64, at time.Time) (*BodyStats, error) {
	if weight <= 0 {
		return nil, fmt.Errorf("record body stats: weight must be positive")
	}
	if unit != "kg" && unit != "lb" {
		return nil, fmt.Errorf("record body stats: unknown unit %q", unit)
	}
	if bodyFat != nil && (*bodyFat < 0 || *bodyFat > 100) {
		return nil, fmt.Errorf("record body stats: body fat %.1f out of range", *bodyFat)
	}
	if at.IsZero() {
		at = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO body_stats (weight, unit, body_fat, recorded_at) VALUES (?, ?, ?, ?)`,
		weight, unit, bodyFat, formatTime(at),
	)
	if err != nil {
		return nil, fmt.Errorf("record body stats: %w", err)
	}
	id, _ := res.LastInsertId()
	return &BodyStats{ID: id, Weight: weight, Unit: unit, BodyFat: bodyFat, RecordedAt: parseTime(formatTime(at))}, nil
}

// LatestBodyStats returns the most recent entry, or nil when none exist.
func (s *Store) LatestBodyStats() (*BodyStats, error) {
	stats, err := s.ListBodyStats(1)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, nil
	}
	return &stats[0], nil
}

func (s *Store) ListBodyStats(limit int) ([]BodyStats, error) {
	query := `SELECT id, weight, unit, body_fat, recorded_at FROM body_stats ORDER BY recorded_at DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list body stats: %w", err)
	}
	defer rows.Close()

	var out []BodyStats
	for rows.Next() {
		var b BodyStats
		var fat sql.NullFloat64
		var recordedAt string
		if err := rows.Scan(&b.ID, &b.Weight, &b.Unit, &fat, &recordedAt); err != nil {
			return nil, err
		}
		if fat.Valid {
			v := fat.Float64
			b.BodyFat = &v
		}
		b.RecordedAt = parseTime(recordedAt)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) DeleteBodyStats(id int64) error {
	res, err := s.db.Exec(`DELETE FROM body_stats WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete body stats: %w", err)
	}
	return expectOne(res, "delete body stats", fmt.Sprint(id))
}
