package database

import (
	"context"
	"fmt"
)

func (d *Database) InsertAttendanceFlush(ctx context.Context, flush AttendanceFlush) error {
	query := `
		INSERT INTO attendance_flushes (attendance_flush_device_id, attendance_flush_event_id, attendance_flush_marked, attendance_flush_unmarked)
		VALUES (:attendance_flush_device_id, :attendance_flush_event_id, :attendance_flush_marked, :attendance_flush_unmarked)
	`
	if _, err := d.db.NamedExecContext(ctx, query, flush); err != nil {
		return fmt.Errorf("failed to insert attendance flush: %w", err)
	}
	return nil
}

func (d *Database) GetAttendanceFlushes(ctx context.Context, eventID string, limit int) ([]AttendanceFlush, error) {
	query := `
		SELECT * FROM attendance_flushes
		WHERE attendance_flush_event_id = $1
		ORDER BY attendance_flush_flushed_at DESC
		LIMIT $2
	`

	var flushes []AttendanceFlush
	if err := d.db.SelectContext(ctx, &flushes, query, eventID, limit); err != nil {
		return nil, fmt.Errorf("failed to get attendance flushes: %w", err)
	}
	return flushes, nil
}
