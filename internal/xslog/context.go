package xslog

import (
	"context"
	"log/slog"
)

var _ slog.Handler = (*ContextHandler)(nil)

type attrsKey struct{}

// WithAttrs returns a context carrying attrs. Records logged with that context through a
// ContextHandler get the attrs appended.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(existing)+len(attrs))
	merged = append(merged, existing...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

type ContextHandler struct {
	handler slog.Handler
}

func (c *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return c.handler.Enabled(ctx, level)
}

func (c *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := ctx.Value(attrsKey{}).([]slog.Attr); ok {
		record = record.Clone()
		record.AddAttrs(attrs...)
	}
	return c.handler.Handle(ctx, record)
}

func (c *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(c.handler.WithAttrs(attrs))
}

func (c *ContextHandler) WithGroup(name string) slog.Handler {
	return NewContextHandler(c.handler.WithGroup(name))
}
