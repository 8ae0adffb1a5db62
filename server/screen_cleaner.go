package server

import (
	"context"
	"log/slog"
	"time"
)

func (s *Server) cleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.doCleanupScreens(ctx)
		}
	}
}

func (s *Server) doCleanupScreens(ctx context.Context) {
	if closed := s.Screens.CloseIdle(); closed > 0 {
		slog.DebugContext(ctx, "Closed idle screens", slog.Int("count", closed))
	}
}
