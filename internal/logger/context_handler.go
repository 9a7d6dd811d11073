package logger

import (
	"context"
	"log/slog"

	"dataflow-backend/internal/middleware"
)

// correlationHandler adds the request correlation id to every record logged
// with a context that carries one
type correlationHandler struct {
	slog.Handler
}

func (h correlationHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String(middleware.CorrelationIDKey, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h correlationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return correlationHandler{h.Handler.WithAttrs(attrs)}
}

func (h correlationHandler) WithGroup(name string) slog.Handler {
	return correlationHandler{h.Handler.WithGroup(name)}
}
