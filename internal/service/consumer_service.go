package service

import (
	"context"
	"encoding/json"

	"greenwatch-be/internal/dto"
	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/pkg/logger"
	"greenwatch-be/internal/pkg/mailer"
	"greenwatch-be/internal/repository/specification"
	"greenwatch-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the completion topic: each completed log is stored
// and, when a recipient is configured, mailed out.
type consumerService struct {
	subscriber       message.Subscriber
	topicName        string
	uowFactory       unitofwork.RepositoryFactory
	emailService     mailer.IEmailService
	summaryRecipient string
	logger           logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	summaryRecipient string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:       subscriber,
		topicName:        topicName,
		uowFactory:       uowFactory,
		emailService:     emailService,
		summaryRecipient: summaryRecipient,
		logger:           log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	ctx := msg.Context()

	var payload dto.LogCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal completed log", map[string]interface{}{"error": err.Error()})
		msg.Ack() // never retry a malformed payload
		return
	}

	if err := cs.storeLog(ctx, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to store completed log", map[string]interface{}{
			"error":      err.Error(),
			"session_id": payload.SessionId,
		})
		msg.Nack()
		return
	}

	if cs.emailService != nil && cs.summaryRecipient != "" {
		// Mail failures are not retried; the log itself is already stored.
		if err := cs.emailService.SendLogSummary(cs.summaryRecipient, payload.Label, payload.Summary); err != nil {
			cs.logger.Warn("CONSUMER", "Failed to mail log summary", map[string]interface{}{
				"error":      err.Error(),
				"session_id": payload.SessionId,
			})
		}
	}

	cs.logger.Info("CONSUMER", "Completed log processed", map[string]interface{}{"session_id": payload.SessionId})
	msg.Ack()
}

func (cs *consumerService) storeLog(ctx context.Context, payload *dto.LogCompletedMessage) error {
	if cs.uowFactory == nil {
		return nil
	}
	sessionID, err := uuid.Parse(payload.SessionId)
	if err != nil {
		return nil
	}

	return cs.uowFactory.WithinTransaction(ctx, func(uow unitofwork.UnitOfWork) error {
		err := uow.IntakeLogRepository().Upsert(ctx, &entity.IntakeLog{
			IntakeSessionId: sessionID,
			OwnerId:         payload.OwnerId,
			Label:           payload.Label,
			Answers:         payload.Answers,
			Fields:          payload.Fields,
			Summary:         payload.Summary,
			CompletedAt:     payload.CompletedAt,
		})
		if err != nil {
			return err
		}

		session, err := uow.IntakeSessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
		if err != nil {
			return err
		}
		if session != nil && !session.LogCompleted {
			session.LogCompleted = true
			return uow.IntakeSessionRepository().Update(ctx, session)
		}
		return nil
	})
}
