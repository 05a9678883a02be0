package service

import (
	"context"
	"encoding/json"
	"time"

	"pii-redaction-be/internal/dto"
	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/pkg/logger"
	"pii-redaction-be/internal/repository/memory"
	"pii-redaction-be/internal/repository/specification"
	"pii-redaction-be/internal/repository/unitofwork"
	"pii-redaction-be/pkg/events"
	pktNats "pii-redaction-be/pkg/nats"
	"pii-redaction-be/pkg/redactor"
	"pii-redaction-be/pkg/review"

	"github.com/google/uuid"
)

type IRedactionService interface {
	Apply(ctx context.Context, documentId uuid.UUID) (*dto.ApplyRedactionResponse, error)
}

type redactionService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessions         *memory.SessionRepository
	engine           redactor.Engine
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewRedactionService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	engine redactor.Engine,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IRedactionService {
	return &redactionService{
		uowFactory:       uowFactory,
		sessions:         sessions,
		engine:           engine,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

// Apply projects the current review selection into an apply request and
// hands it to the redaction engine. The request is built from a frozen
// snapshot, so edits made while the engine call is in flight cannot leak
// into it. The session store is left untouched when the engine fails.
func (c *redactionService) Apply(ctx context.Context, documentId uuid.UUID) (*dto.ApplyRedactionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &review.NotFoundError{Kind: "document", ID: documentId.String()}
	}

	store, found := c.sessions.Get(documentId)
	if !found {
		return nil, &review.NotFoundError{Kind: "review session", ID: documentId.String()}
	}

	applyReq, err := review.Project(store.Snapshot())
	if err != nil {
		return nil, err
	}
	applyReq.DocumentID = documentId.String()

	result, err := c.engine.Apply(ctx, &applyReq)
	if err != nil {
		c.log.Error("redaction", "engine apply failed", map[string]interface{}{
			"document_id": documentId,
			"error":       err.Error(),
		})
		return nil, err
	}

	doc.Status = entity.DocumentRedacted
	doc.RedactedStoragePath = &result.RedactedPath
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	c.publishAudit(ctx, documentId, applyReq, result)

	if c.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "REDACTION_APPLIED",
			Data: map[string]interface{}{
				"document_id":    documentId,
				"total_redacted": result.Stats.TotalRedacted,
				"redacted_path":  result.RedactedPath,
			},
			OccurredAt: time.Now(),
		}
		// Downstream consumers are auxiliary; the request already succeeded.
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			c.log.Warn("redaction", "failed to publish REDACTION_APPLIED event", map[string]interface{}{
				"document_id": documentId,
				"error":       err.Error(),
			})
		}
	}

	return &dto.ApplyRedactionResponse{
		DocumentId:   documentId,
		RedactedPath: result.RedactedPath,
		Stats: dto.ApplyRedactionStats{
			TotalRedacted:    result.Stats.TotalRedacted,
			TotalPages:       result.Stats.TotalPages,
			ProcessedPages:   result.Stats.ProcessedPages,
			FailedPages:      result.Stats.FailedPages,
			OriginalFileSize: result.Stats.OriginalFileSize,
			RedactedFileSize: result.Stats.RedactedFileSize,
			ProcessingTimeMs: result.Stats.ProcessingTimeMs,
		},
	}, nil
}

func (c *redactionService) publishAudit(ctx context.Context, documentId uuid.UUID, applyReq review.ApplyRequest, result *redactor.Result) {
	msg := dto.PublishAuditMessage{
		Action:     string(entity.AuditRedactionApplied),
		DocumentId: &documentId,
		Details: map[string]interface{}{
			"approved_entities": len(applyReq.ApprovedEntityIDs),
			"custom_redactions": len(applyReq.CustomRedactions),
			"total_redacted":    result.Stats.TotalRedacted,
			"processing_ms":     result.Stats.ProcessingTimeMs,
		},
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = c.publisherService.Publish(ctx, msgJson)
}
