package database

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/topi314/gomigrate"
	"github.com/topi314/gomigrate/drivers/postgres"
)

//go:embed migrations/*.sql
var migrations embed.FS

const defaultTokenTTL = 30 * 24 * time.Hour

func New(cfg Config) (*Database, error) {
	dbx, err := sqlx.Connect("pgx", cfg.DataSourceName())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = gomigrate.Migrate(ctx, dbx, postgres.New, migrations); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	db := &Database{
		db:       dbx,
		tokenTTL: cfg.TokenTTL.OrDefault(defaultTokenTTL),
		cancel:   cleanupCancel,
	}

	go db.cleanupTokens(cleanupCtx)

	return db, nil
}

type Database struct {
	db       *sqlx.DB
	tokenTTL time.Duration
	cancel   context.CancelFunc
}

func (d *Database) Close() error {
	d.cancel()
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

func (d *Database) cleanupTokens(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		d.doCleanupTokens(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (d *Database) doCleanupTokens(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	deleted, err := d.DeleteStaleDeviceTokens(ctx, time.Now().Add(-d.tokenTTL))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to cleanup stale device tokens", slog.Any("err", err))
		return
	}
	if deleted > 0 {
		slog.InfoContext(ctx, "Deleted stale device tokens", slog.Int64("count", deleted))
	}
}
