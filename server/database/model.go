package database

import (
	"time"

	"github.com/lib/pq"
)

type DeviceToken struct {
	DeviceID  string    `db:"device_token_device_id" json:"deviceId"`
	Token     string    `db:"device_token_token" json:"-"`
	CreatedAt time.Time `db:"device_token_created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"device_token_updated_at" json:"updatedAt"`
}

type Checkin struct {
	ID          int64     `db:"checkin_id" json:"id"`
	DeviceID    string    `db:"checkin_device_id" json:"deviceId"`
	EventID     string    `db:"checkin_event_id" json:"eventId"`
	EventName   string    `db:"checkin_event_name" json:"eventName"`
	CheckedInAt time.Time `db:"checkin_checked_in_at" json:"checkedInAt"`
}

type AttendanceFlush struct {
	ID        int64          `db:"attendance_flush_id" json:"id"`
	DeviceID  string         `db:"attendance_flush_device_id" json:"deviceId"`
	EventID   string         `db:"attendance_flush_event_id" json:"eventId"`
	Marked    pq.StringArray `db:"attendance_flush_marked" json:"marked"`
	Unmarked  pq.StringArray `db:"attendance_flush_unmarked" json:"unmarked"`
	FlushedAt time.Time      `db:"attendance_flush_flushed_at" json:"flushedAt"`
}
