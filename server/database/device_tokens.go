package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/topi314/church-tools/server/auth"
)

func (d *Database) GetDeviceToken(ctx context.Context, deviceID string) (*DeviceToken, error) {
	var token DeviceToken
	if err := d.db.GetContext(ctx, &token, "SELECT * FROM device_tokens WHERE device_token_device_id = $1", deviceID); err != nil {
		return nil, fmt.Errorf("failed to get device token: %w", err)
	}
	return &token, nil
}

func (d *Database) UpsertDeviceToken(ctx context.Context, deviceID string, token string) error {
	query := `
		INSERT INTO device_tokens (device_token_device_id, device_token_token)
		VALUES ($1, $2)
		ON CONFLICT (device_token_device_id) DO UPDATE SET
			device_token_token = EXCLUDED.device_token_token,
			device_token_updated_at = NOW()
	`
	if _, err := d.db.ExecContext(ctx, query, deviceID, token); err != nil {
		return fmt.Errorf("failed to upsert device token: %w", err)
	}
	return nil
}

func (d *Database) DeleteDeviceToken(ctx context.Context, deviceID string) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM device_tokens WHERE device_token_device_id = $1", deviceID); err != nil {
		return fmt.Errorf("failed to delete device token: %w", err)
	}
	return nil
}

func (d *Database) DeleteStaleDeviceTokens(ctx context.Context, before time.Time) (int64, error) {
	res, err := d.db.ExecContext(ctx, "DELETE FROM device_tokens WHERE device_token_updated_at < $1", before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale device tokens: %w", err)
	}
	return res.RowsAffected()
}

// TokenStore returns the session store of one device.
func (d *Database) TokenStore(deviceID string) auth.Store {
	return &TokenStore{
		db:       d,
		deviceID: deviceID,
	}
}

// TokenStore is an auth.Store backed by the device_tokens table.
type TokenStore struct {
	db       *Database
	deviceID string
}

var _ auth.Store = (*TokenStore)(nil)

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.db.GetDeviceToken(ctx, s.deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", auth.ErrNoToken
		}
		return "", err
	}
	return token.Token, nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	return s.db.UpsertDeviceToken(ctx, s.deviceID, token)
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.db.DeleteDeviceToken(ctx, s.deviceID)
}
