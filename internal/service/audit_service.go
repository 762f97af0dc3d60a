package service

import (
	"context"
	"fmt"

	"greenwatch-be/internal/dto"
	"greenwatch-be/internal/pkg/logger"
	"greenwatch-be/pkg/events"
	pktNats "greenwatch-be/pkg/nats"
)

const auditModule = "AUDIT"

type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

type IAuditService interface {
	Start(ctx context.Context) error
	ListEvents(ctx context.Context, level string, limit, offset int) ([]dto.AuditEventResponse, error)
}

// auditService keeps a local trail of every bus event in its own log file
// and serves it back, newest first.
type auditService struct {
	subscriber EventSubscriber
	trail      logger.ILogger
	reader     logger.ILogReader
	logger     logger.ILogger
}

func NewAuditService(subscriber EventSubscriber, trail logger.ILogger, reader logger.ILogReader, log logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		trail:      trail,
		reader:     reader,
		logger:     log,
	}
}

func (s *auditService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		s.logger.Warn(auditModule, "No event subscriber, audit trail disabled", nil)
		return nil
	}
	subject := pktNats.SubjectPrefix + ".>"
	if err := s.subscriber.Subscribe(ctx, subject, "greenwatch-audit-trail", s.handleEvent); err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.logger.Info(auditModule, "Audit trail listening", map[string]interface{}{"subject": subject})
	return nil
}

func (s *auditService) handleEvent(_ context.Context, event events.Event) error {
	if event.EventType() == events.RunnerFailed {
		s.trail.Error(auditModule, event.EventType(), event.Payload())
		return nil
	}
	s.trail.Info(auditModule, event.EventType(), event.Payload())
	return nil
}

func (s *auditService) ListEvents(_ context.Context, level string, limit, offset int) ([]dto.AuditEventResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := s.reader.GetLogs(level, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditEventResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEventResponse{
			Id:        e.Id,
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Type:      e.Message,
			Details:   e.Details,
		})
	}
	return out, nil
}
