package server

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/topi314/church-tools/internal/xtime"
	"github.com/topi314/church-tools/server/attendance"
	"github.com/topi314/church-tools/server/checkin"
	"github.com/topi314/church-tools/server/community"
	"github.com/topi314/church-tools/server/database"
)

func LoadConfig(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	cfg := defaultConfig()
	if _, err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     slog.LevelInfo,
			Format:    LogFormatText,
			AddSource: false,
		},
		Server: ServerConfig{
			Addr:          ":8085",
			ScreenTimeout: xtime.Duration(30 * time.Minute),
		},
		Database: database.Config{
			Host:     "localhost",
			Port:     5432,
			Username: "postgres",
			Password: "password",
			Database: "church-tools",
			TokenTTL: xtime.Duration(30 * 24 * time.Hour),
		},
		Community: community.Config{
			BaseURL: "http://localhost:3000",
			Timeout: xtime.Duration(15 * time.Second),
			Every:   xtime.Duration(50 * time.Millisecond),
			Burst:   20,
		},
		Attendance: attendance.Config{
			RosterSource:      attendance.RosterSourceAttendance,
			UnmarkConcurrency: 1,
		},
		Checkin: checkin.Config{
			AutoCloseDelay: xtime.Duration(checkin.DefaultAutoCloseDelay),
		},
	}
}

type Config struct {
	Dev           bool                `toml:"dev"`
	Log           LogConfig           `toml:"log"`
	Server        ServerConfig        `toml:"server"`
	Database      database.Config     `toml:"database"`
	Community     community.Config    `toml:"community"`
	Attendance    attendance.Config   `toml:"attendance"`
	Checkin       checkin.Config      `toml:"checkin"`
	Notifications NotificationsConfig `toml:"notifications"`
}

func (c Config) String() string {
	return fmt.Sprintf("Dev: %t\nLog: %s\nServer: %s\nDatabase: %s\nCommunity: %s\nAttendance: %s\nCheckin: %s\nNotifications: %s",
		c.Dev,
		c.Log,
		c.Server,
		c.Database,
		c.Community,
		c.Attendance,
		c.Checkin,
		c.Notifications,
	)
}

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    LogFormat  `toml:"format"`
	AddSource bool       `toml:"add_source"`
	Mute      []string   `toml:"mute"`
}

func (c LogConfig) String() string {
	return fmt.Sprintf("\n Level: %s\n Format: %s\n AddSource: %t\n Mute: %s",
		c.Level,
		c.Format,
		c.AddSource,
		strings.Join(c.Mute, ", "),
	)
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// ScreenTimeout closes attendance screens and check-in dialogs nobody used for this long.
	ScreenTimeout xtime.Duration `toml:"screen_timeout"`
	SecureCookies bool           `toml:"secure_cookies"`
}

func (c ServerConfig) String() string {
	return fmt.Sprintf("\n Address: %s\n ScreenTimeout: %s\n SecureCookies: %t",
		c.Addr,
		c.ScreenTimeout,
		c.SecureCookies,
	)
}

type NotificationsConfig struct {
	Enabled    bool   `toml:"enabled"`
	WebhookURL string `toml:"webhook_url"`
}

func (c NotificationsConfig) String() string {
	webhookURL := c.WebhookURL
	if i := strings.LastIndex(webhookURL, "/"); i != -1 {
		webhookURL = webhookURL[:i+1] + strings.Repeat("*", len(webhookURL)-i-1)
	}
	return fmt.Sprintf("\n Enabled: %t\n WebhookURL: %s",
		c.Enabled,
		webhookURL,
	)
}
