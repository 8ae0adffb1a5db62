package database

import (
	"context"
	"fmt"
)

func (d *Database) InsertCheckin(ctx context.Context, checkin Checkin) error {
	query := `
		INSERT INTO checkins (checkin_device_id, checkin_event_id, checkin_event_name)
		VALUES (:checkin_device_id, :checkin_event_id, :checkin_event_name)
	`
	if _, err := d.db.NamedExecContext(ctx, query, checkin); err != nil {
		return fmt.Errorf("failed to insert checkin: %w", err)
	}
	return nil
}

func (d *Database) GetCheckins(ctx context.Context, deviceID string, limit int) ([]Checkin, error) {
	query := `
		SELECT * FROM checkins
		WHERE checkin_device_id = $1
		ORDER BY checkin_checked_in_at DESC
		LIMIT $2
	`

	var checkins []Checkin
	if err := d.db.SelectContext(ctx, &checkins, query, deviceID, limit); err != nil {
		return nil, fmt.Errorf("failed to get checkins: %w", err)
	}
	return checkins, nil
}
