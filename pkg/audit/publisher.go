// Package audit records the lifecycle of intake sessions on the event bus:
// session starts, every transcript message, completed turns and logs, and
// runner failures.
package audit

import (
	"context"

	"greenwatch-be/internal/pkg/logger"
	"greenwatch-be/pkg/events"
	"greenwatch-be/pkg/intake"
	pktNats "greenwatch-be/pkg/nats"
)

type Publisher interface {
	PublishSessionStarted(ctx context.Context, sessionID, ownerID, mode, documentName string)
	PublishMessageRecorded(ctx context.Context, sessionID string, msg intake.Message)
	PublishTurnCompleted(ctx context.Context, sessionID string, turn Turn)
	PublishLogCompleted(ctx context.Context, sessionID, label string, answers map[string]string)
	PublishRunnerFailed(ctx context.Context, sessionID, operation string, err error)
}

// Turn describes the state after one processed user message.
type Turn struct {
	Mode     string
	Phase    string
	Progress float64
	Done     bool
}

// NatsPublisher publishes through JetStream. A nil bus turns every method
// into a no-op; publish failures are logged and never returned.
type NatsPublisher struct {
	publisher events.Publisher
	logger    logger.ILogger
}

var _ Publisher = (*NatsPublisher)(nil)

func NewNatsPublisher(publisher *pktNats.Publisher, log logger.ILogger) *NatsPublisher {
	if publisher == nil {
		return newPublisher(nil, log)
	}
	return newPublisher(publisher, log)
}

func newPublisher(publisher events.Publisher, log logger.ILogger) *NatsPublisher {
	return &NatsPublisher{publisher: publisher, logger: log}
}

func (p *NatsPublisher) publish(ctx context.Context, evt events.SessionEvent) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("AUDIT", "Failed to publish "+evt.Type+" event", map[string]interface{}{
			"error":      err.Error(),
			"session_id": evt.Data["session_id"],
		})
	}
}

func (p *NatsPublisher) PublishSessionStarted(ctx context.Context, sessionID, ownerID, mode, documentName string) {
	p.publish(ctx, events.New(events.SessionStarted, sessionID, map[string]interface{}{
		"owner_id":      ownerID,
		"mode":          mode,
		"document_name": documentName,
	}))
}

func (p *NatsPublisher) PublishMessageRecorded(ctx context.Context, sessionID string, msg intake.Message) {
	p.publish(ctx, events.New(events.MessageRecorded, sessionID, map[string]interface{}{
		"message_id": msg.ID,
		"role":       string(msg.Role),
		"text":       msg.Text,
		"timestamp":  msg.Timestamp,
	}))
}

func (p *NatsPublisher) PublishTurnCompleted(ctx context.Context, sessionID string, turn Turn) {
	p.publish(ctx, events.New(events.TurnCompleted, sessionID, map[string]interface{}{
		"mode":     turn.Mode,
		"phase":    turn.Phase,
		"progress": turn.Progress,
		"done":     turn.Done,
	}))
}

func (p *NatsPublisher) PublishLogCompleted(ctx context.Context, sessionID, label string, answers map[string]string) {
	p.publish(ctx, events.New(events.LogCompleted, sessionID, map[string]interface{}{
		"label":   label,
		"answers": answers,
	}))
}

func (p *NatsPublisher) PublishRunnerFailed(ctx context.Context, sessionID, operation string, err error) {
	p.publish(ctx, events.New(events.RunnerFailed, sessionID, map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	}))
}
