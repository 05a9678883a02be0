package service

import (
	"context"
	"encoding/json"
	"time"

	"pii-redaction-be/internal/dto"
	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/repository/memory"
	"pii-redaction-be/internal/repository/specification"
	"pii-redaction-be/internal/repository/unitofwork"
	"pii-redaction-be/pkg/geometry"
	"pii-redaction-be/pkg/review"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Register(ctx context.Context, req *dto.RegisterDocumentRequest) (*dto.RegisterDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context) (*dto.ListDocumentsResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IngestEntities(ctx context.Context, documentId uuid.UUID, req *dto.IngestEntitiesRequest) (*dto.IngestEntitiesResponse, error)
	ListAuditLogs(ctx context.Context, documentId uuid.UUID) (*dto.ListAuditLogsResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	sessions         *memory.SessionRepository
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	sessions *memory.SessionRepository,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		sessions:         sessions,
	}
}

func (c *documentService) Register(ctx context.Context, req *dto.RegisterDocumentRequest) (*dto.RegisterDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc := entity.Document{
		Id:               uuid.New(),
		OriginalFilename: req.OriginalFilename,
		FileSize:         req.FileSize,
		MimeType:         req.MimeType,
		StoragePath:      req.StoragePath,
		Status:           entity.DocumentUploaded,
		PageCount:        req.PageCount,
		Metadata:         req.Metadata,
		CreatedAt:        time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	return &dto.RegisterDocumentResponse{Id: doc.Id}, nil
}

func (c *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &review.NotFoundError{Kind: "document", ID: id.String()}
	}

	count, err := uow.DetectedEntityRepository().Count(ctx, specification.ByDocumentID{DocumentID: id})
	if err != nil {
		return nil, err
	}

	res := c.toShowResponse(doc)
	res.EntityCount = count
	return res, nil
}

func (c *documentService) List(ctx context.Context) (*dto.ListDocumentsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	res := dto.ListDocumentsResponse{
		Documents: make([]dto.ShowDocumentResponse, 0, len(docs)),
		Total:     int64(len(docs)),
	}
	for _, doc := range docs {
		res.Documents = append(res.Documents, *c.toShowResponse(doc))
	}
	return &res, nil
}

func (c *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return &review.NotFoundError{Kind: "document", ID: id.String()}
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DetectedEntityRepository().DeleteAllByDocumentId(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	c.sessions.Delete(id)
	c.publishAudit(ctx, entity.AuditDocumentDelete, &id, map[string]interface{}{
		"filename": doc.OriginalFilename,
	})
	return nil
}

func (c *documentService) IngestEntities(ctx context.Context, documentId uuid.UUID, req *dto.IngestEntitiesRequest) (*dto.IngestEntitiesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &review.NotFoundError{Kind: "document", ID: documentId.String()}
	}

	entities := make([]*entity.DetectedEntity, 0, len(req.Entities))
	for _, item := range req.Entities {
		var bounds *geometry.Rect
		if item.Bbox != nil {
			bounds = &geometry.Rect{
				X:      item.Bbox.X,
				Y:      item.Bbox.Y,
				Width:  item.Bbox.Width,
				Height: item.Bbox.Height,
			}
		}
		entities = append(entities, &entity.DetectedEntity{
			Id:         uuid.New(),
			DocumentId: documentId,
			Label:      item.Label,
			Text:       item.Text,
			Confidence: item.Confidence,
			Page:       item.Page,
			Bounds:     bounds,
			CreatedAt:  time.Now(),
		})
	}

	if err := uow.DetectedEntityRepository().CreateBatch(ctx, entities); err != nil {
		return nil, err
	}

	doc.Status = entity.DocumentReady
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	// A new detection pass invalidates any live review session.
	c.sessions.Delete(documentId)

	c.publishAudit(ctx, entity.AuditPiiDetection, &documentId, map[string]interface{}{
		"entity_count": len(entities),
	})

	return &dto.IngestEntitiesResponse{
		DocumentId: documentId,
		Ingested:   len(entities),
	}, nil
}

func (c *documentService) ListAuditLogs(ctx context.Context, documentId uuid.UUID) (*dto.ListAuditLogsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.AuditLogRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := dto.ListAuditLogsResponse{
		Logs:  make([]dto.AuditLogResponse, 0, len(logs)),
		Total: int64(len(logs)),
	}
	for _, l := range logs {
		res.Logs = append(res.Logs, dto.AuditLogResponse{
			Id:         l.Id,
			Action:     string(l.Action),
			DocumentId: l.DocumentId,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt,
		})
	}
	return &res, nil
}

func (c *documentService) toShowResponse(doc *entity.Document) *dto.ShowDocumentResponse {
	return &dto.ShowDocumentResponse{
		Id:                  doc.Id,
		OriginalFilename:    doc.OriginalFilename,
		FileSize:            doc.FileSize,
		MimeType:            doc.MimeType,
		Status:              string(doc.Status),
		PageCount:           doc.PageCount,
		RedactedStoragePath: doc.RedactedStoragePath,
		CreatedAt:           doc.CreatedAt,
		UpdatedAt:           doc.UpdatedAt,
	}
}

func (c *documentService) publishAudit(ctx context.Context, action entity.AuditAction, documentId *uuid.UUID, details map[string]interface{}) {
	msg := dto.PublishAuditMessage{
		Action:     string(action),
		DocumentId: documentId,
		Details:    details,
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return
	}
	// Audit persistence is auxiliary; a failed publish never fails the request.
	_ = c.publisherService.Publish(ctx, msgJson)
}
