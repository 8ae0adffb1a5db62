package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/disgo/webhook"

	"github.com/topi314/church-tools/server/attendance"
)

// Webhook is the part of the Discord webhook client notifications need.
type Webhook interface {
	CreateContent(content string, opts ...rest.RequestOpt) (*discord.Message, error)
	Close(ctx context.Context)
}

func newWebhook(cfg NotificationsConfig, httpClient *http.Client) (Webhook, error) {
	if !cfg.Enabled || cfg.WebhookURL == "" {
		return nil, nil
	}

	client, err := webhook.NewWithURL(cfg.WebhookURL,
		webhook.WithRestClientConfigOpts(rest.WithHTTPClient(httpClient)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}
	return client, nil
}

// SendNotification posts content to the configured Discord webhook. Failures are only logged.
func (s *Server) SendNotification(ctx context.Context, content string) {
	if s.Webhook == nil {
		return
	}

	if _, err := s.Webhook.CreateContent(content, rest.WithCtx(ctx)); err != nil {
		slog.ErrorContext(ctx, "Failed to send notification", slog.Any("err", err))
	}
}

func FlushNotification(eventName string, flush attendance.Flush, at time.Time) string {
	return fmt.Sprintf("Presenças de **%s** confirmadas em %s: `%d` marcadas, `%d` desmarcadas",
		eventName,
		discord.NewTimestamp(discord.TimestampStyleShortDateTime, at).String(),
		len(flush.Marked),
		len(flush.Unmarked),
	)
}

func CheckinNotification(eventName string, at time.Time) string {
	return fmt.Sprintf("Novo check-in em **%s** %s",
		eventName,
		discord.NewTimestamp(discord.TimestampStyleRelative, at).String(),
	)
}
