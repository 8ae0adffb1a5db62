package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/topi314/church-tools/internal/xtime"
	"github.com/topi314/church-tools/server/auth"
	"github.com/topi314/church-tools/server/community"
	"github.com/topi314/church-tools/server/messages"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Command failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "church-cli",
		Usage: "Take attendance, check into events and inspect ministries from the terminal.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "base URL of the community API",
				Value:   "http://localhost:3000",
				EnvVars: []string{"CHURCH_API_URL"},
			},
			&cli.StringFlag{
				Name:    "session-file",
				Usage:   "file the session token is stored in",
				Value:   defaultSessionFile(),
				EnvVars: []string{"CHURCH_SESSION_FILE"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "timeout of a single API request",
				Value: 15 * time.Second,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			slog.SetDefault(setupLogger(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			attendanceCommand(),
			checkinCommand(),
			qrCommand(),
			tabsCommand(),
		},
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "church-tools-session.json"
	}
	return filepath.Join(dir, "church-tools", "session.json")
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		logLevel = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func newClient(c *cli.Context) *community.Client {
	cfg := community.Config{
		BaseURL: c.String("api-url"),
		Timeout: xtime.Duration(c.Duration("timeout")),
	}
	return community.NewFactory(cfg, &http.Client{}).Client(auth.NewFileStore(c.String("session-file")))
}

// userError turns err into the message a member should read and an exit code.
func userError(op messages.Op, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return cli.Exit("", 130)
	}

	slog.Debug("Command failed", slog.Any("err", err))
	msg := messages.For(op, err)
	return cli.Exit(msg.Message, exitCode(msg.Status))
}

func exitCode(status int) int {
	switch status {
	case http.StatusUnauthorized:
		return 3
	case http.StatusNotFound:
		return 4
	case http.StatusUnprocessableEntity, http.StatusConflict:
		return 5
	}
	return 1
}

func printf(c *cli.Context, format string, args ...any) {
	_, _ = fmt.Fprintf(c.App.Writer, format, args...)
}
