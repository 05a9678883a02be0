package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"pii-redaction-be/internal/dto"
	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the audit topic and persists each message as an
// audit log row, keeping the write off the request path.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	row := entity.AuditLog{
		Id:         uuid.New(),
		Action:     entity.AuditAction(payload.Action),
		DocumentId: payload.DocumentId,
		Details:    payload.Details,
		CreatedAt:  time.Now(),
	}
	if err := uow.AuditLogRepository().Create(ctx, &row); err != nil {
		log.Printf("[ERROR] Failed to persist audit log (%s): %v", payload.Action, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
