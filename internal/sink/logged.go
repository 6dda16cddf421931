package sink

import (
	"context"

	"credo/internal/domain"

	"go.uber.org/zap"
)

// Logged decorates another sink, mirroring every append to a zap logger.
// Read-back delegates untouched.
type Logged struct {
	inner  domain.AuditSink
	logger *zap.Logger
}

func NewLogged(inner domain.AuditSink, logger *zap.Logger) *Logged {
	return &Logged{inner: inner, logger: logger}
}

func (l *Logged) Append(ctx context.Context, event domain.AuditEvent) error {
	if err := l.inner.Append(ctx, event); err != nil {
		return err
	}
	l.logger.Debug("audit event",
		zap.String("event_type", event.Type),
		zap.Any("payload", event.Payload))
	return nil
}

func (l *Logged) Events(ctx context.Context) ([]domain.AuditEvent, error) {
	return l.inner.Events(ctx)
}
