package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Setting keys.
const (
	SettingWeightUnit     = "weight_unit"
	SettingHighlightColor = "highlight_color"
	SettingReportWeeks    = "report_weeks"
	SettingRestSeconds    = "rest_seconds"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// SeedSettings stores values for keys that have never been set. Existing
// values are left alone.
func (s *Store) SeedSettings(values map[string]string) error {
	for k, v := range values {
		if _, err := s.db.Exec(`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("seed setting %q: %w", k, err)
		}
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// SettingOr returns the stored value for key, or def when it is unset.
func (s *Store) SettingOr(key, def string) string {
	v, err := s.GetSetting(key)
	if err != nil || v == "" {
		return def
	}
	return v
}

// ReportWeeks is the number of weeks shown in the weekly workout chart.
func (s *Store) ReportWeeks() int {
	n, err := strconv.Atoi(s.SettingOr(SettingReportWeeks, "8"))
	if err != nil || n < 1 {
		return 8
	}
	return n
}

// RestDuration is the default rest between sets.
func (s *Store) RestDuration() time.Duration {
	n, err := strconv.Atoi(s.SettingOr(SettingRestSeconds, "90"))
	if err != nil || n < 1 {
		return 90 * time.Second
	}
	return time.Duration(n) * time.Second
}
