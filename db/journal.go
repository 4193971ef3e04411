package db

import (
	"database/sql"
	"fmt"
	"time"
)

// BatteryReading is one sampled battery level.
type BatteryReading struct {
	RecordedAt time.Time
	Percent    int
	LitCells   int
}

// PanelEvent is a state change on one panel, e.g. enabled, disabled or heart.
type PanelEvent struct {
	RecordedAt time.Time
	Panel      string
	Event      string
}

func InsertBatteryReading(db *sql.DB, r BatteryReading) error {
	_, err := db.Exec(`INSERT INTO battery_readings (recorded_at, percent, lit_cells) VALUES (?, ?, ?)`,
		r.RecordedAt.Format(time.RFC3339), r.Percent, r.LitCells)
	if err != nil {
		return fmt.Errorf("insert battery reading: %w", err)
	}
	return nil
}

func InsertPanelEvent(db *sql.DB, e PanelEvent) error {
	_, err := db.Exec(`INSERT INTO panel_events (recorded_at, panel, event) VALUES (?, ?, ?)`,
		e.RecordedAt.Format(time.RFC3339), e.Panel, e.Event)
	if err != nil {
		return fmt.Errorf("insert panel event: %w", err)
	}
	return nil
}

// GetRecentBatteryReadings returns up to limit readings, newest first.
func GetRecentBatteryReadings(db *sql.DB, limit int) ([]BatteryReading, error) {
	rows, err := db.Query(`SELECT recorded_at, percent, lit_cells FROM battery_readings ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query battery readings: %w", err)
	}
	defer rows.Close()

	var readings []BatteryReading
	for rows.Next() {
		var r BatteryReading
		var recordedAt string
		if err := rows.Scan(&recordedAt, &r.Percent, &r.LitCells); err != nil {
			return nil, fmt.Errorf("failed to scan battery reading: %w", err)
		}
		r.RecordedAt, err = time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse battery reading time %q: %w", recordedAt, err)
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// GetRecentPanelEvents returns up to limit events, newest first.
func GetRecentPanelEvents(db *sql.DB, limit int) ([]PanelEvent, error) {
	rows, err := db.Query(`SELECT recorded_at, panel, event FROM panel_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query panel events: %w", err)
	}
	defer rows.Close()

	var events []PanelEvent
	for rows.Next() {
		var e PanelEvent
		var recordedAt string
		if err := rows.Scan(&recordedAt, &e.Panel, &e.Event); err != nil {
			return nil, fmt.Errorf("failed to scan panel event: %w", err)
		}
		e.RecordedAt, err = time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse panel event time %q: %w", recordedAt, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
