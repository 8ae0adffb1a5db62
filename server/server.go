package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/topi314/church-tools/server/auth"
	"github.com/topi314/church-tools/server/community"
	"github.com/topi314/church-tools/server/database"
)

func New(cfg Config) (*Server, error) {
	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	httpClient := &http.Client{
		Timeout: cfg.Community.Timeout.OrDefault(15 * time.Second),
	}

	webhookClient, err := newWebhook(cfg.Notifications, httpClient)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		Cfg:        cfg,
		DB:         db,
		HTTPClient: httpClient,
		Webhook:    webhookClient,
		Community:  community.NewFactory(cfg.Community, httpClient),
		Screens:    NewScreens(cfg.Attendance, cfg.Checkin, cfg.Server.ScreenTimeout.Std()),
		cancel:     cancel,
	}

	go s.cleanup(ctx)

	return s, nil
}

// Database is the storage behind the server.
type Database interface {
	TokenStore(deviceID string) auth.Store
	InsertCheckin(ctx context.Context, checkin database.Checkin) error
	GetCheckins(ctx context.Context, deviceID string, limit int) ([]database.Checkin, error)
	InsertAttendanceFlush(ctx context.Context, flush database.AttendanceFlush) error
	GetAttendanceFlushes(ctx context.Context, eventID string, limit int) ([]database.AttendanceFlush, error)
	Close() error
}

var _ Database = (*database.Database)(nil)

type Server struct {
	Cfg        Config
	DB         Database
	HTTPClient *http.Client
	Webhook    Webhook
	Community  *community.Factory
	Screens    *Screens

	server *http.Server
	cancel context.CancelFunc
}

// Client returns the community client authenticated as deviceID.
func (s *Server) Client(deviceID string) *community.Client {
	return s.Community.Client(s.DB.TokenStore(deviceID))
}

func (s *Server) Start(handler http.Handler) {
	s.server = &http.Server{
		Addr:    s.Cfg.Server.Addr,
		Handler: handler,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.Any("err", err))
		}
	}()
}

func (s *Server) Stop() {
	s.cancel()
	s.Screens.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown failed", slog.Any("err", err))
		}
	}

	if s.Webhook != nil {
		s.Webhook.Close(ctx)
	}

	if err := s.DB.Close(); err != nil {
		slog.Error("Failed to close database", slog.Any("err", err))
	}
}
