package service

import (
	"context"
	"encoding/json"

	"pii-redaction-be/internal/dto"
	"pii-redaction-be/internal/entity"
	"pii-redaction-be/internal/pkg/logger"
	"pii-redaction-be/internal/repository/memory"
	"pii-redaction-be/internal/repository/specification"
	"pii-redaction-be/internal/repository/unitofwork"
	"pii-redaction-be/pkg/geometry"
	"pii-redaction-be/pkg/review"
	"pii-redaction-be/pkg/textmatch"

	"github.com/google/uuid"
)

type IReviewService interface {
	StartSession(ctx context.Context, documentId uuid.UUID) (*dto.StartReviewSessionResponse, error)
	State(ctx context.Context, documentId uuid.UUID) (*dto.ReviewStateResponse, error)
	Approve(ctx context.Context, documentId uuid.UUID, entityId uuid.UUID) error
	Reject(ctx context.Context, documentId uuid.UUID, entityId uuid.UUID) error
	BulkApprove(ctx context.Context, documentId uuid.UUID, entityIds []uuid.UUID) error
	BulkReject(ctx context.Context, documentId uuid.UUID, entityIds []uuid.UUID) error
	AddCustomRedaction(ctx context.Context, documentId uuid.UUID, req *dto.AddCustomRedactionRequest) (*dto.AddCustomRedactionResponse, error)
	RemoveCustomRedaction(ctx context.Context, documentId uuid.UUID, redactionId uuid.UUID) error
	ModifyEntity(ctx context.Context, documentId uuid.UUID, req *dto.ModifyEntityRequest) error
	Undo(ctx context.Context, documentId uuid.UUID) (*dto.UndoRedoResponse, error)
	Redo(ctx context.Context, documentId uuid.UUID) (*dto.UndoRedoResponse, error)
	ResolvePositions(ctx context.Context, documentId uuid.UUID, req *dto.ResolvePositionsRequest) (*dto.ResolvePositionsResponse, error)
}

type reviewService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessions         *memory.SessionRepository
	publisherService IPublisherService
	log              logger.ILogger
}

func NewReviewService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	publisherService IPublisherService,
	log logger.ILogger,
) IReviewService {
	return &reviewService{
		uowFactory:       uowFactory,
		sessions:         sessions,
		publisherService: publisherService,
		log:              log,
	}
}

func (c *reviewService) StartSession(ctx context.Context, documentId uuid.UUID) (*dto.StartReviewSessionResponse, error) {
	if store, found := c.sessions.Get(documentId); found {
		return &dto.StartReviewSessionResponse{
			DocumentId:  documentId,
			EntityCount: len(store.Entities()),
			Resumed:     true,
		}, nil
	}

	store, err := c.buildSession(ctx, documentId)
	if err != nil {
		return nil, err
	}

	c.publishAudit(ctx, entity.AuditReviewSessionOpen, documentId, nil)

	return &dto.StartReviewSessionResponse{
		DocumentId:  documentId,
		EntityCount: len(store.Entities()),
		Resumed:     false,
	}, nil
}

// session returns the live store for a document, rebuilding it from the
// persisted entity rows when the cached one has been evicted.
func (c *reviewService) session(ctx context.Context, documentId uuid.UUID) (*review.Store, error) {
	if store, found := c.sessions.Get(documentId); found {
		return store, nil
	}
	return c.buildSession(ctx, documentId)
}

func (c *reviewService) buildSession(ctx context.Context, documentId uuid.UUID) (*review.Store, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &review.NotFoundError{Kind: "document", ID: documentId.String()}
	}

	rows, err := uow.DetectedEntityRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	entities := make([]review.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, review.Entity{
			ID:         row.Id,
			Type:       review.EntityType(row.Label),
			Text:       row.Text,
			Confidence: row.Confidence,
			Page:       row.Page,
			Bounds:     row.Bounds,
		})
	}

	store := review.NewStore(entities)
	c.sessions.Save(documentId, store)
	return store, nil
}

func (c *reviewService) State(ctx context.Context, documentId uuid.UUID) (*dto.ReviewStateResponse, error) {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return nil, err
	}

	res := dto.ReviewStateResponse{
		DocumentId:       documentId,
		Entities:         make([]dto.ReviewEntityResponse, 0),
		CustomRedactions: make([]dto.CustomRedactionResponse, 0),
		TotalRedactions:  store.TotalRedactions(),
		CanUndo:          store.CanUndo(),
		CanRedo:          store.CanRedo(),
	}

	for _, e := range store.Entities() {
		status, _ := store.Status(e.ID)
		item := dto.ReviewEntityResponse{
			Id:         e.ID,
			Label:      string(e.Type),
			Text:       e.Text,
			Confidence: e.Confidence,
			Page:       e.Page,
			Status:     status.String(),
		}
		if bounds, ok := store.EffectiveBounds(e.ID); ok {
			item.Bbox = rectToBody(bounds)
		}
		res.Entities = append(res.Entities, item)
	}

	for _, r := range store.CustomRedactions() {
		res.CustomRedactions = append(res.CustomRedactions, dto.CustomRedactionResponse{
			Id:        r.ID,
			Page:      r.Page,
			Bbox:      *rectToBody(r.Bounds),
			Type:      string(r.Type),
			Label:     r.Label,
			CreatedAt: r.CreatedAt,
		})
	}

	return &res, nil
}

func (c *reviewService) Approve(ctx context.Context, documentId uuid.UUID, entityId uuid.UUID) error {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return err
	}
	return store.Approve(entityId)
}

func (c *reviewService) Reject(ctx context.Context, documentId uuid.UUID, entityId uuid.UUID) error {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return err
	}
	return store.Reject(entityId)
}

func (c *reviewService) BulkApprove(ctx context.Context, documentId uuid.UUID, entityIds []uuid.UUID) error {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return err
	}
	return store.BulkApprove(entityIds)
}

func (c *reviewService) BulkReject(ctx context.Context, documentId uuid.UUID, entityIds []uuid.UUID) error {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return err
	}
	return store.BulkReject(entityIds)
}

func (c *reviewService) AddCustomRedaction(ctx context.Context, documentId uuid.UUID, req *dto.AddCustomRedactionRequest) (*dto.AddCustomRedactionResponse, error) {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return nil, err
	}

	region, err := store.AddCustom(req.Page, bodyToRect(req.Bbox), req.Label)
	if err != nil {
		return nil, err
	}
	return &dto.AddCustomRedactionResponse{Id: region.ID}, nil
}

func (c *reviewService) RemoveCustomRedaction(ctx context.Context, documentId uuid.UUID, redactionId uuid.UUID) error {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return err
	}
	store.RemoveCustom(redactionId)
	return nil
}

func (c *reviewService) ModifyEntity(ctx context.Context, documentId uuid.UUID, req *dto.ModifyEntityRequest) error {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return err
	}

	mod := review.Modification{
		Kind: review.ModificationKind(req.Kind),
		Text: req.Text,
	}
	if req.Bbox != nil {
		r := bodyToRect(*req.Bbox)
		mod.Bounds = &r
	}
	return store.Modify(req.EntityId, mod)
}

func (c *reviewService) Undo(ctx context.Context, documentId uuid.UUID) (*dto.UndoRedoResponse, error) {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return nil, err
	}
	applied := store.Undo()
	return &dto.UndoRedoResponse{
		Applied: applied,
		CanUndo: store.CanUndo(),
		CanRedo: store.CanRedo(),
	}, nil
}

func (c *reviewService) Redo(ctx context.Context, documentId uuid.UUID) (*dto.UndoRedoResponse, error) {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return nil, err
	}
	applied := store.Redo()
	return &dto.UndoRedoResponse{
		Applied: applied,
		CanUndo: store.CanUndo(),
		CanRedo: store.CanRedo(),
	}, nil
}

// ResolvePositions matches entity texts against a page's text runs and
// publishes the resulting geometry back into the session in one atomic
// update. Resolved rectangles are also persisted so a rebuilt session
// does not need another resolution pass.
func (c *reviewService) ResolvePositions(ctx context.Context, documentId uuid.UUID, req *dto.ResolvePositionsRequest) (*dto.ResolvePositionsResponse, error) {
	store, err := c.session(ctx, documentId)
	if err != nil {
		return nil, err
	}

	queries := make([]textmatch.Query, 0)
	for _, e := range store.Entities() {
		if e.Page != req.Page {
			continue
		}
		queries = append(queries, textmatch.Query{
			ID:   e.ID.String(),
			Text: e.Text,
		})
	}

	runs := make([]textmatch.Run, 0, len(req.TextRuns))
	for _, r := range req.TextRuns {
		runs = append(runs, textmatch.Run{
			Text:   r.Text,
			X:      r.X,
			Y:      r.Y,
			Width:  r.Width,
			Height: r.Height,
		})
	}

	result := textmatch.ResolvePositions(runs, queries)

	resolved := make(map[uuid.UUID]geometry.Rect, len(result.Bounds))
	for idStr, rect := range result.Bounds {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			continue
		}
		resolved[id] = rect
	}
	store.SetResolvedBounds(resolved)

	// Persisting the geometry is auxiliary to the in-session update, but a
	// failure means a rebuilt session would need another resolution pass,
	// so it is worth a warning.
	uow := c.uowFactory.NewUnitOfWork(ctx)
	for id, rect := range resolved {
		row, findErr := uow.DetectedEntityRepository().FindOne(ctx, specification.ByID{ID: id})
		if findErr != nil {
			c.log.Warn("review", "failed to load entity for resolved bounds", map[string]interface{}{
				"entity_id": id,
				"error":     findErr.Error(),
			})
			continue
		}
		if row == nil {
			continue
		}
		r := rect
		row.Bounds = &r
		if updErr := uow.DetectedEntityRepository().Update(ctx, row); updErr != nil {
			c.log.Warn("review", "failed to persist resolved bounds", map[string]interface{}{
				"entity_id": id,
				"error":     updErr.Error(),
			})
		}
	}

	c.publishAudit(ctx, entity.AuditPositionResolve, documentId, map[string]interface{}{
		"page":      req.Page,
		"resolved":  len(resolved),
		"unmatched": len(result.Unmatched),
	})

	return &dto.ResolvePositionsResponse{
		Resolved:  len(resolved),
		Unmatched: result.Unmatched,
	}, nil
}

func (c *reviewService) publishAudit(ctx context.Context, action entity.AuditAction, documentId uuid.UUID, details map[string]interface{}) {
	msg := dto.PublishAuditMessage{
		Action:     string(action),
		DocumentId: &documentId,
		Details:    details,
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = c.publisherService.Publish(ctx, msgJson)
}

func rectToBody(r geometry.Rect) *dto.RectBody {
	return &dto.RectBody{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func bodyToRect(b dto.RectBody) geometry.Rect {
	return geometry.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}
